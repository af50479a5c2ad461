package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aidar/task-manager-project/internal/domain"
	"github.com/aidar/task-manager-project/internal/middleware"
	"github.com/aidar/task-manager-project/internal/service"
	"github.com/aidar/task-manager-project/internal/view"
)

// TaskHandler обрабатывает страницы задач
type TaskHandler struct {
	taskService  *service.TaskService
	userService  *service.UserService
	statsService *service.StatsService
}

// NewTaskHandler создает новый TaskHandler
func NewTaskHandler(
	taskService *service.TaskService,
	userService *service.UserService,
	statsService *service.StatsService,
) *TaskHandler {
	return &TaskHandler{
		taskService:  taskService,
		userService:  userService,
		statsService: statsService,
	}
}

// Dashboard обрабатывает GET /tasks
func (h *TaskHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.renderDashboard(w, r, http.StatusOK, "")
}

// AddTask обрабатывает POST /add-task
func (h *TaskHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderDashboard(w, r, http.StatusBadRequest, "Invalid form submission")
		return
	}

	userID := middleware.GetUserIDFromContext(r.Context())
	_, err := h.taskService.Create(r.Context(), r.PostFormValue("title"), r.PostFormValue("description"), userID)
	if err != nil {
		h.mutationError(w, r, err)
		return
	}

	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

// ToggleTask обрабатывает POST /toggle-task/{id}
func (h *TaskHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if err := h.taskService.ToggleCompletion(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		h.mutationError(w, r, err)
		return
	}

	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

// DeleteTask обрабатывает POST /delete-task/{id}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if err := h.taskService.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		h.mutationError(w, r, err)
		return
	}

	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

// Volunteer обрабатывает POST /volunteer/{id}
func (h *TaskHandler) Volunteer(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if err := h.taskService.Volunteer(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		h.mutationError(w, r, err)
		return
	}

	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

// RemoveVolunteer обрабатывает POST /remove-volunteer/{taskID}/{volunteerID}
func (h *TaskHandler) RemoveVolunteer(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	taskID := chi.URLParam(r, "taskID")
	volunteerID := chi.URLParam(r, "volunteerID")

	if err := h.taskService.RemoveVolunteer(r.Context(), taskID, volunteerID, userID); err != nil {
		h.mutationError(w, r, err)
		return
	}

	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

// renderDashboard собирает данные дашборда и рендерит страницу
func (h *TaskHandler) renderDashboard(w http.ResponseWriter, r *http.Request, statusCode int, errMsg string) {
	ctx := r.Context()
	userID := middleware.GetUserIDFromContext(ctx)
	username := middleware.GetUsernameFromContext(ctx)

	page, err := h.buildDashboard(ctx, userID, username)
	if err != nil {
		RespondWithHTML(w, http.StatusInternalServerError, func(w io.Writer) error {
			return view.Error(w, view.ErrorPage{Message: "Failed to load tasks, please try again"})
		})
		return
	}
	page.Error = errMsg

	RespondWithHTML(w, statusCode, func(w io.Writer) error {
		return view.Dashboard(w, page)
	})
}

// buildDashboard загружает все списки задач, статистику и имена волонтеров
func (h *TaskHandler) buildDashboard(ctx context.Context, userID, username string) (view.DashboardPage, error) {
	var page view.DashboardPage
	page.Username = username

	owned, err := h.taskService.ListOwned(ctx, userID)
	if err != nil {
		return page, err
	}

	open, err := h.taskService.ListOpenFor(ctx, userID)
	if err != nil {
		return page, err
	}

	volunteered, err := h.taskService.ListVolunteered(ctx, userID)
	if err != nil {
		return page, err
	}

	names, err := h.volunteerNames(ctx, owned, volunteered)
	if err != nil {
		return page, err
	}

	page.Owned = toTaskItems(owned, names)
	page.Open = toTaskItems(open, names)
	page.Volunteered = toTaskItems(volunteered, names)

	stats, err := h.statsService.Current(ctx)
	if err != nil {
		return page, err
	}
	page.Stats = view.StatsLine{
		ActiveTasks:      stats.ActiveTaskCount,
		VolunteerSlots:   stats.TotalVolunteerSlots,
		UniqueVolunteers: stats.UniqueVolunteerCount,
		UpdatedAt:        stats.UpdatedAt,
	}

	return page, nil
}

// volunteerNames разрешает имена всех волонтеров из отображаемых списков
func (h *TaskHandler) volunteerNames(ctx context.Context, lists ...[]*domain.Task) (map[string]string, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, tasks := range lists {
		for _, task := range tasks {
			for _, v := range task.Volunteers {
				if !seen[v] {
					seen[v] = true
					ids = append(ids, v)
				}
			}
		}
	}

	return h.userService.UsernamesByID(ctx, ids)
}

// toTaskItems преобразует доменные задачи в модели страницы
func toTaskItems(tasks []*domain.Task, names map[string]string) []view.TaskItem {
	items := make([]view.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		item := view.TaskItem{
			ID:          task.ID,
			Title:       task.Title,
			Description: task.Description,
			Completed:   task.Completed,
		}
		for _, v := range task.Volunteers {
			item.Volunteers = append(item.Volunteers, view.Volunteer{
				ID:       v,
				Username: names[v],
			})
		}
		items = append(items, item)
	}
	return items
}

// mutationError рендерит результат неудачной мутации: ошибки валидации и
// прав показываются на дашборде, остальное уходит на страницу ошибки
func (h *TaskHandler) mutationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		h.renderDashboard(w, r, http.StatusBadRequest, "Title and description are required")
	case errors.Is(err, domain.ErrOwnTask):
		h.renderDashboard(w, r, http.StatusBadRequest, "You cannot volunteer for your own task")
	case errors.Is(err, domain.ErrTaskCompleted):
		h.renderDashboard(w, r, http.StatusBadRequest, "This task is already completed")
	case errors.Is(err, domain.ErrForbidden):
		h.renderDashboard(w, r, http.StatusForbidden, "Only the task owner can do that")
	case errors.Is(err, domain.ErrTaskNotFound):
		RespondWithHTML(w, http.StatusNotFound, func(w io.Writer) error {
			return view.Error(w, view.ErrorPage{Message: "This task no longer exists"})
		})
	default:
		RespondWithHTML(w, http.StatusInternalServerError, func(w io.Writer) error {
			return view.Error(w, view.ErrorPage{Message: "Something went wrong, please try again"})
		})
	}
}
