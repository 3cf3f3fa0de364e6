package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/taskdeck/taskdeck-api/internal/core/domain"
)

func TestTaskRepository_Create(t *testing.T) {
	mock, db := newMockDB(t)
	defer db.Close()
	repo := NewTaskRepository(db)

	now := time.Now().UTC()
	desc := "write the report"
	task := &domain.Task{
		ID:          "t-1",
		Title:       "Report",
		Description: &desc,
		Status:      domain.StatusPending,
		UserID:      "u-1",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	mock.ExpectExec(`INSERT INTO tasks`).
		WithArgs(task.ID, task.Title, task.Description, "pending", task.UserID, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), task); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTaskRepository_ListByOwner(t *testing.T) {
	mock, db := newMockDB(t)
	defer db.Close()
	repo := NewTaskRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "title", "description", "status", "user_id", "created_at", "updated_at"}).
		AddRow("t-2", "Newer", nil, "started", "u-1", now, now).
		AddRow("t-1", "Older", "notes", "pending", "u-1", now.Add(-time.Hour), now.Add(-time.Hour))
	mock.ExpectQuery(`SELECT .* FROM tasks\s+WHERE user_id .* ORDER BY created_at DESC`).
		WithArgs("u-1").
		WillReturnRows(rows)

	tasks, err := repo.ListByOwner(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Description != nil {
		t.Fatalf("expected nil description on first task, got %q", *tasks[0].Description)
	}
	if tasks[1].Description == nil || *tasks[1].Description != "notes" {
		t.Fatalf("unexpected second task description: %+v", tasks[1].Description)
	}
	if tasks[0].Status != domain.StatusStarted {
		t.Fatalf("unexpected status: %s", tasks[0].Status)
	}
}

func TestTaskRepository_FindByIDAndOwner_NotFound(t *testing.T) {
	mock, db := newMockDB(t)
	defer db.Close()
	repo := NewTaskRepository(db)

	mock.ExpectQuery(`SELECT .* FROM tasks\s+WHERE id .* AND user_id`).
		WithArgs("t-1", "intruder").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.FindByIDAndOwner(context.Background(), "t-1", "intruder"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskRepository_Update_NoRowMatched(t *testing.T) {
	mock, db := newMockDB(t)
	defer db.Close()
	repo := NewTaskRepository(db)

	now := time.Now().UTC()
	task := &domain.Task{
		ID:        "t-1",
		Title:     "Report",
		Status:    domain.StatusCompleted,
		UserID:    "intruder",
		UpdatedAt: now,
	}
	mock.ExpectExec(`UPDATE tasks\s+SET`).
		WithArgs(task.Title, task.Description, "completed", now, task.ID, task.UserID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Update(context.Background(), task); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskRepository_DeleteByIDAndOwner(t *testing.T) {
	mock, db := newMockDB(t)
	defer db.Close()
	repo := NewTaskRepository(db)

	mock.ExpectExec(`DELETE FROM tasks\s+WHERE id .* AND user_id`).
		WithArgs("t-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteByIDAndOwner(context.Background(), "t-1", "u-1"); err != nil {
		t.Fatalf("DeleteByIDAndOwner error: %v", err)
	}

	mock.ExpectExec(`DELETE FROM tasks\s+WHERE id .* AND user_id`).
		WithArgs("t-1", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteByIDAndOwner(context.Background(), "t-1", "intruder"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskRepository_CountByStatus(t *testing.T) {
	mock, db := newMockDB(t)
	defer db.Close()
	repo := NewTaskRepository(db)

	rows := sqlmock.NewRows([]string{"status", "count"}).
		AddRow("pending", 2).
		AddRow("completed", 1)
	mock.ExpectQuery(`SELECT status, COUNT\(\*\)\s+FROM tasks\s+WHERE user_id\s+.*GROUP BY status`).
		WithArgs("u-1").
		WillReturnRows(rows)

	counts, err := repo.CountByStatus(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("CountByStatus error: %v", err)
	}
	if counts[domain.StatusPending] != 2 || counts[domain.StatusCompleted] != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
	if _, ok := counts[domain.StatusStarted]; ok {
		t.Fatalf("did not expect a started bucket: %+v", counts)
	}
}
