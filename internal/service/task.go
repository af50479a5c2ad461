package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/aidar/task-manager-project/internal/domain"
	"github.com/aidar/task-manager-project/internal/repository"
)

// MutationHook is invoked after every successful task mutation. The hook
// owns its own error handling; mutation results never depend on it.
type MutationHook func(ctx context.Context)

// TaskService handles business logic for tasks and their volunteers
type TaskService struct {
	taskRepo   repository.TaskRepository
	onMutation MutationHook
}

// NewTaskService creates a new TaskService. The hook may be nil.
func NewTaskService(taskRepo repository.TaskRepository, onMutation MutationHook) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		onMutation: onMutation,
	}
}

// Create creates a new uncompleted task with an empty volunteer list
func (s *TaskService) Create(ctx context.Context, title, description, ownerID string) (*domain.Task, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return nil, fmt.Errorf("%w: title and description are required", domain.ErrValidation)
	}

	task := &domain.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		OwnerID:     ownerID,
		Completed:   false,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.notifyMutation(ctx)
	return task, nil
}

// ListOwned returns all tasks owned by the user
func (s *TaskService) ListOwned(ctx context.Context, userID string) ([]*domain.Task, error) {
	return s.taskRepo.ListByOwner(ctx, userID)
}

// ListOpenFor returns uncompleted tasks of other users that the user has
// not volunteered for yet
func (s *TaskService) ListOpenFor(ctx context.Context, userID string) ([]*domain.Task, error) {
	return s.taskRepo.ListOpenForUser(ctx, userID)
}

// ListVolunteered returns tasks the user volunteered for, completed ones
// included
func (s *TaskService) ListVolunteered(ctx context.Context, userID string) ([]*domain.Task, error) {
	return s.taskRepo.ListByVolunteer(ctx, userID)
}

// Volunteer adds the user to the task's volunteer list. The add is
// idempotent; owners cannot volunteer for their own tasks.
func (s *TaskService) Volunteer(ctx context.Context, taskID, userID string) error {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	if task.IsOwnedBy(userID) {
		return domain.ErrOwnTask
	}
	if task.Completed {
		return domain.ErrTaskCompleted
	}

	if err := s.taskRepo.AddVolunteer(ctx, taskID, userID); err != nil {
		return err
	}

	s.notifyMutation(ctx)
	return nil
}

// RemoveVolunteer removes a volunteer from a task. Allowed for the task
// owner and for the volunteer themself; removal is idempotent.
func (s *TaskService) RemoveVolunteer(ctx context.Context, taskID, volunteerID, requesterID string) error {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	if !task.IsOwnedBy(requesterID) && requesterID != volunteerID {
		return domain.ErrForbidden
	}

	if err := s.taskRepo.RemoveVolunteer(ctx, taskID, volunteerID); err != nil {
		return err
	}

	s.notifyMutation(ctx)
	return nil
}

// ToggleCompletion flips the task's completed flag. Only the owner may
// toggle. There is no optimistic version check: two concurrent toggles on
// the same task are last-write-wins, acceptable at this scale.
func (s *TaskService) ToggleCompletion(ctx context.Context, taskID, requesterID string) error {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	if !task.IsOwnedBy(requesterID) {
		return domain.ErrForbidden
	}

	if err := s.taskRepo.SetCompleted(ctx, taskID, !task.Completed); err != nil {
		return err
	}

	s.notifyMutation(ctx)
	return nil
}

// Delete removes a task. Only the owner may delete.
func (s *TaskService) Delete(ctx context.Context, taskID, requesterID string) error {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	if !task.IsOwnedBy(requesterID) {
		return domain.ErrForbidden
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return err
	}

	s.notifyMutation(ctx)
	return nil
}

func (s *TaskService) notifyMutation(ctx context.Context) {
	if s.onMutation != nil {
		s.onMutation(ctx)
	}
}
