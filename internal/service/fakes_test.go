package service

import (
	"context"
	"sync"
	"time"

	"github.com/aidar/task-manager-project/internal/domain"
)

// Простые in-memory реализации репозиториев для юнит-тестов сервисов.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // по ID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	user.CreatedAt = time.Now()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) UsernamesByID(_ context.Context, userIDs []string) (map[string]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make(map[string]string, len(userIDs))
	for _, id := range userIDs {
		if user, ok := r.users[id]; ok {
			names[id] = user.Username
		}
	}
	return names, nil
}

type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[string]*domain.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*domain.Task)}
}

func copyTask(task *domain.Task) *domain.Task {
	copied := *task
	copied.Volunteers = append([]string(nil), task.Volunteers...)
	return &copied
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task.CreatedAt = time.Now()
	r.tasks[task.ID] = copyTask(task)
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, taskID string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return copyTask(task), nil
}

func (r *fakeTaskRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := []*domain.Task{}
	for _, task := range r.tasks {
		if task.OwnerID == ownerID {
			tasks = append(tasks, copyTask(task))
		}
	}
	return tasks, nil
}

func (r *fakeTaskRepo) ListOpenForUser(_ context.Context, userID string) ([]*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := []*domain.Task{}
	for _, task := range r.tasks {
		if task.OwnerID != userID && !task.Completed && !task.HasVolunteer(userID) {
			tasks = append(tasks, copyTask(task))
		}
	}
	return tasks, nil
}

func (r *fakeTaskRepo) ListByVolunteer(_ context.Context, userID string) ([]*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := []*domain.Task{}
	for _, task := range r.tasks {
		if task.HasVolunteer(userID) {
			tasks = append(tasks, copyTask(task))
		}
	}
	return tasks, nil
}

func (r *fakeTaskRepo) AddVolunteer(_ context.Context, taskID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	if !task.HasVolunteer(userID) {
		task.Volunteers = append(task.Volunteers, userID)
	}
	return nil
}

func (r *fakeTaskRepo) RemoveVolunteer(_ context.Context, taskID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok {
		return nil
	}
	volunteers := task.Volunteers[:0]
	for _, v := range task.Volunteers {
		if v != userID {
			volunteers = append(volunteers, v)
		}
	}
	task.Volunteers = volunteers
	return nil
}

func (r *fakeTaskRepo) SetCompleted(_ context.Context, taskID string, completed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	task.Completed = completed
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[taskID]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, taskID)
	return nil
}

func (r *fakeTaskRepo) Exists(_ context.Context, taskID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.tasks[taskID]
	return ok, nil
}

// fakeStatsRepo агрегирует по связанному fakeTaskRepo,
// повторяя SQL агрегат из postgres реализации
type fakeStatsRepo struct {
	mu        sync.Mutex
	tasks     *fakeTaskRepo
	snapshots map[string]*domain.StatsSnapshot
}

func newFakeStatsRepo(tasks *fakeTaskRepo) *fakeStatsRepo {
	return &fakeStatsRepo{
		tasks:     tasks,
		snapshots: make(map[string]*domain.StatsSnapshot),
	}
}

func (r *fakeStatsRepo) Aggregate(_ context.Context) (*domain.StatsSnapshot, error) {
	r.tasks.mu.Lock()
	defer r.tasks.mu.Unlock()

	snapshot := &domain.StatsSnapshot{UpdatedAt: time.Now()}
	unique := make(map[string]bool)
	for _, task := range r.tasks.tasks {
		if task.Completed {
			continue
		}
		snapshot.ActiveTaskCount++
		snapshot.TotalVolunteerSlots += len(task.Volunteers)
		for _, v := range task.Volunteers {
			unique[v] = true
		}
	}
	snapshot.UniqueVolunteerCount = len(unique)
	return snapshot, nil
}

func (r *fakeStatsRepo) Upsert(_ context.Context, name string, snapshot *domain.StatsSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *snapshot
	r.snapshots[name] = &copied
	return nil
}

func (r *fakeStatsRepo) Get(_ context.Context, name string) (*domain.StatsSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot, ok := r.snapshots[name]
	if !ok {
		return &domain.StatsSnapshot{}, nil
	}
	copied := *snapshot
	return &copied, nil
}
