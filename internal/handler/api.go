package handler

import (
	"net/http"

	"github.com/aidar/task-manager-project/internal/domain"
	"github.com/aidar/task-manager-project/internal/middleware"
	"github.com/aidar/task-manager-project/internal/service"
)

// APIHandler обрабатывает JSON эндпоинты
type APIHandler struct {
	taskService  *service.TaskService
	statsService *service.StatsService
}

// NewAPIHandler создает новый APIHandler
func NewAPIHandler(taskService *service.TaskService, statsService *service.StatsService) *APIHandler {
	return &APIHandler{
		taskService:  taskService,
		statsService: statsService,
	}
}

// TasksResponse представляет JSON ответ со списками задач пользователя
type TasksResponse struct {
	Owned       []*domain.Task `json:"owned"`
	Open        []*domain.Task `json:"open"`
	Volunteered []*domain.Task `json:"volunteered"`
}

// GetStats обрабатывает GET /api/stats
func (h *APIHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.Current(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, stats)
}

// GetTasks обрабатывает GET /api/tasks
func (h *APIHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserIDFromContext(ctx)

	owned, err := h.taskService.ListOwned(ctx, userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	open, err := h.taskService.ListOpenFor(ctx, userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	volunteered, err := h.taskService.ListVolunteered(ctx, userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, TasksResponse{
		Owned:       owned,
		Open:        open,
		Volunteered: volunteered,
	})
}
