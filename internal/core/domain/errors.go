package domain

import "errors"

// ErrInvalidCredentials covers both "unknown email" and "wrong password" on
// sign-in. The two cases share one error so responses cannot be used to
// enumerate registered accounts.
var ErrInvalidCredentials = errors.New("incorrect email or password")

// ErrUnauthenticated marks an expected authentication rejection: a missing,
// malformed, tampered, revoked or expired session token. It is a signal, not
// an infrastructure failure; storage errors are never folded into it.
var ErrUnauthenticated = errors.New("authentication required")

var ErrEmailTaken = errors.New("email already in use")
var ErrUserNotFound = errors.New("user not found")
var ErrSessionNotFound = errors.New("session not found")

// ErrTaskNotFound is returned both when a task id does not exist and when it
// exists but belongs to another user. The two cases are indistinguishable on
// purpose, so task ids cannot be probed across accounts.
var ErrTaskNotFound = errors.New("task not found")

var ErrInvalidStatus = errors.New("invalid task status")

// ErrTooManyAttempts is returned when sign-in attempts for an account exceed
// the failure budget inside the limiter window.
var ErrTooManyAttempts = errors.New("too many sign-in attempts, try again later")
