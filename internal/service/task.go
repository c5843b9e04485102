package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marcos/task-tracker-project/internal/domain"
	"github.com/marcos/task-tracker-project/internal/policy"
	"github.com/marcos/task-tracker-project/internal/repository"
	"github.com/marcos/task-tracker-project/pkg/logger"
)

// TaskRegistry handles business logic for tasks
type TaskRegistry struct {
	taskRepo    repository.TaskRepository
	accountRepo repository.AccountRepository
}

// NewTaskRegistry creates a new TaskRegistry
func NewTaskRegistry(taskRepo repository.TaskRepository, accountRepo repository.AccountRepository) *TaskRegistry {
	return &TaskRegistry{
		taskRepo:    taskRepo,
		accountRepo: accountRepo,
	}
}

// CreateTaskInput represents the fields of a task creation request
type CreateTaskInput struct {
	Title       string
	AssigneeIDs []string
}

// Create registers a new task owned by the caller. Admin-only.
func (s *TaskRegistry) Create(ctx context.Context, caller domain.Caller, in CreateTaskInput) (*domain.Task, error) {
	if d := policy.CanCreateTask(caller); !d.Allowed {
		s.logDenied(ctx, "task create denied", caller, "", d)
		return nil, domain.ErrForbidden
	}

	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.ErrTitleRequired
	}

	task := &domain.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Status:      domain.StatusPending,
		CreatorID:   caller.ID,
		AssigneeIDs: dedupe(in.AssigneeIDs),
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// List returns the tasks visible to the caller: admins see the tasks they
// created, regular users the tasks they are assigned to. Each task carries
// the resolved assignee summaries; unresolvable assignee ids are skipped.
func (s *TaskRegistry) List(ctx context.Context, caller domain.Caller) ([]*domain.TaskWithAssignees, error) {
	var (
		tasks []*domain.Task
		err   error
	)
	if caller.IsAdmin {
		tasks, err = s.taskRepo.ListByCreator(ctx, caller.ID)
	} else {
		tasks, err = s.taskRepo.ListByAssignee(ctx, caller.ID)
	}
	if err != nil {
		return nil, err
	}

	enriched := make([]*domain.TaskWithAssignees, 0, len(tasks))
	for _, task := range tasks {
		enriched = append(enriched, s.enrich(ctx, task))
	}

	return enriched, nil
}

func (s *TaskRegistry) enrich(ctx context.Context, task *domain.Task) *domain.TaskWithAssignees {
	assignees := make([]domain.AccountSummary, 0, len(task.AssigneeIDs))
	for _, id := range task.AssigneeIDs {
		account, err := s.accountRepo.GetByID(ctx, id)
		if err != nil {
			// Stale assignee id; the task list must not fail because of it.
			logger.FromContext(ctx).Debug("skipping unresolvable assignee",
				zap.String("task_id", task.ID),
				zap.String("account_id", id),
			)
			continue
		}
		assignees = append(assignees, account.Summary())
	}

	return &domain.TaskWithAssignees{Task: *task, Assignees: assignees}
}

// UpdateTaskInput represents the mutable task details; nil fields retain
// their stored value
type UpdateTaskInput struct {
	Title *string
}

// UpdateDetails modifies task details. Creator-only, regardless of the
// caller's admin flag.
func (s *TaskRegistry) UpdateDetails(ctx context.Context, caller domain.Caller, taskID string, in UpdateTaskInput) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if d := policy.CanEditTaskDetails(caller, task); !d.Allowed {
		s.logDenied(ctx, "task update denied", caller, taskID, d)
		return nil, domain.ErrForbidden
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, domain.ErrTitleRequired
		}
		task.Title = *in.Title
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// AssignUsers unions the given account ids into the task's assignee set.
// There is no removal path; repeated assignment is idempotent.
func (s *TaskRegistry) AssignUsers(ctx context.Context, caller domain.Caller, taskID string, accountIDs []string) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if d := policy.CanAssignUsers(caller, task); !d.Allowed {
		s.logDenied(ctx, "task assign denied", caller, taskID, d)
		return nil, domain.ErrForbidden
	}

	task.AssigneeIDs = dedupe(append(task.AssigneeIDs, accountIDs...))

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// UpdateStatus sets the task status. Assignee-only; any member of the valid
// status set is accepted regardless of the current status.
func (s *TaskRegistry) UpdateStatus(ctx context.Context, caller domain.Caller, taskID string, status domain.TaskStatus) (*domain.Task, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if d := policy.CanChangeTaskStatus(caller, task); !d.Allowed {
		s.logDenied(ctx, "status change denied", caller, taskID, d)
		return nil, domain.ErrForbidden
	}

	task.Status = status

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Delete removes a task. Creator-only. The returned flag reports whether the
// store actually removed a document; false after the lookup above means the
// collection changed underneath us.
func (s *TaskRegistry) Delete(ctx context.Context, caller domain.Caller, taskID string) (bool, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return false, err
	}

	if d := policy.CanDeleteTask(caller, task); !d.Allowed {
		s.logDenied(ctx, "task delete denied", caller, taskID, d)
		return false, domain.ErrForbidden
	}

	removed, err := s.taskRepo.Delete(ctx, taskID)
	if err != nil {
		return false, err
	}
	if !removed {
		logger.FromContext(ctx).Warn("task vanished between lookup and delete",
			zap.String("task_id", taskID))
	}

	return removed, nil
}

func (s *TaskRegistry) logDenied(ctx context.Context, msg string, caller domain.Caller, taskID string, d policy.Decision) {
	fields := []zap.Field{
		zap.String("caller_id", caller.ID),
		zap.String("reason", string(d.Reason)),
	}
	if taskID != "" {
		fields = append(fields, zap.String("task_id", taskID))
	}
	logger.FromContext(ctx).Warn(msg, fields...)
}

// dedupe collapses duplicates preserving first-seen order
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
