package handler

import (
	"encoding/json"
	"net/http"

	"task_portal/internal/api/middleware"
	"task_portal/internal/app/service"
	"task_portal/internal/common"

	"github.com/go-chi/chi/v5"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(ts *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: ts}
}

func (h *TaskHandler) RegisterRoutes(r chi.Router, authn func(http.Handler) http.Handler) {
	r.Use(authn)
	r.Get("/", h.listTasks)

	r.Group(func(adminRouter chi.Router) {
		adminRouter.Use(middleware.AdminOnly)
		adminRouter.Post("/", h.createTask)
		adminRouter.Patch("/{taskID}", h.updateTask)
		adminRouter.Delete("/{taskID}", h.deleteTask)
	})
}

func (h *TaskHandler) listTasks(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	callerRole, _ := middleware.GetUserRoleFromContext(r.Context())

	tasks, err := h.taskService.List(r.Context(), callerRole, callerID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) createTask(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	callerRole, _ := middleware.GetUserRoleFromContext(r.Context())

	var req service.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	task, err := h.taskService.Create(r.Context(), callerRole, callerID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) updateTask(w http.ResponseWriter, r *http.Request) {
	callerRole, _ := middleware.GetUserRoleFromContext(r.Context())

	var req service.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	task, err := h.taskService.Update(r.Context(), callerRole, chi.URLParam(r, "taskID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) deleteTask(w http.ResponseWriter, r *http.Request) {
	callerRole, _ := middleware.GetUserRoleFromContext(r.Context())
	if err := h.taskService.Delete(r.Context(), callerRole, chi.URLParam(r, "taskID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
