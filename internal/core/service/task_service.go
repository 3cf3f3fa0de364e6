package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskdeck/taskdeck-api/internal/core/domain"
	"github.com/taskdeck/taskdeck-api/internal/core/ports"
)

// TaskService implements owner-scoped task operations. The owner always comes
// from the verified Identity in the request context, so no operation can ever
// touch another user's rows.
type TaskService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewTaskService(repo ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger, now: time.Now}
}

// Create stores a new task owned by the caller. Status defaults to pending;
// a blank description is stored as no description at all.
func (s *TaskService) Create(ctx context.Context, owner domain.Identity, input ports.CreateTaskInput) (*domain.Task, error) {
	status := input.Status
	if status == "" {
		status = domain.StatusPending
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	now := s.now().UTC()
	task := &domain.Task{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: normalizeDescription(input.Description),
		Status:      status,
		UserID:      owner.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		s.logger.Error().Err(err).Str("user_id", owner.UserID).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task_id", task.ID).Str("user_id", owner.UserID).Msg("task created")
	return task, nil
}

// List returns the caller's tasks, newest-first.
func (s *TaskService) List(ctx context.Context, owner domain.Identity) ([]domain.Task, error) {
	return s.repo.ListByOwner(ctx, owner.UserID)
}

// Update applies a partial update to a task the caller owns. The task is
// re-fetched scoped by (id, owner); a miss reads as plain "not found" whether
// the id is unknown or the task belongs to someone else. Only fields present
// in the input change; transitions between statuses are unrestricted.
func (s *TaskService) Update(ctx context.Context, owner domain.Identity, id string, input ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.repo.FindByIDAndOwner(ctx, id, owner.UserID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = normalizeDescription(input.Description)
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	task.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, task); err != nil {
		s.logger.Error().Err(err).Str("task_id", id).Msg("failed to update task")
		return nil, err
	}

	return task, nil
}

// Delete removes a task the caller owns, with the same "not found" masking
// as Update.
func (s *TaskService) Delete(ctx context.Context, owner domain.Identity, id string) error {
	if _, err := s.repo.FindByIDAndOwner(ctx, id, owner.UserID); err != nil {
		return err
	}
	if err := s.repo.DeleteByIDAndOwner(ctx, id, owner.UserID); err != nil {
		s.logger.Error().Err(err).Str("task_id", id).Msg("failed to delete task")
		return err
	}
	s.logger.Info().Str("task_id", id).Str("user_id", owner.UserID).Msg("task deleted")
	return nil
}

// Stats derives total and per-status counts for the caller's tasks. Missing
// statuses count as zero; a storage failure propagates unmasked.
func (s *TaskService) Stats(ctx context.Context, owner domain.Identity) (*domain.TaskStats, error) {
	counts, err := s.repo.CountByStatus(ctx, owner.UserID)
	if err != nil {
		return nil, err
	}

	stats := &domain.TaskStats{
		Pending:   counts[domain.StatusPending],
		Started:   counts[domain.StatusStarted],
		Completed: counts[domain.StatusCompleted],
	}
	stats.Total = stats.Pending + stats.Started + stats.Completed
	return stats, nil
}

// normalizeDescription maps an absent or blank description to nil so the
// column stores NULL instead of an empty string.
func normalizeDescription(desc *string) *string {
	if desc == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*desc)
	if trimmed == "" {
		return nil
	}
	return desc
}
