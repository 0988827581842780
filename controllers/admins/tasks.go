package admins

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/GleritasToken/gleritas-token-manager/middleware"
	"github.com/GleritasToken/gleritas-token-manager/models"
	"github.com/GleritasToken/gleritas-token-manager/store"
	"github.com/GleritasToken/gleritas-token-manager/utils"

	"github.com/gorilla/mux"
)

type TaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Points      int    `json:"points"`
	TaskType    string `json:"taskType" validate:"required"`
	IsActive    *bool  `json:"isActive"`
}

func validTaskType(t string) bool {
	switch t {
	case models.TaskTypeReferral, models.TaskTypeTelegram, models.TaskTypeTwitter,
		models.TaskTypeYoutube, models.TaskTypeOther:
		return true
	}
	return false
}

// GET /api/admin/tasks — includes inactive tasks, unlike the user listing.
func TaskListHandler(w http.ResponseWriter, r *http.Request) {
	tasks, err := store.GetAllTasks(r.Context())
	if err != nil {
		log.Printf("[admin tasks] list error: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, tasks)
}

// POST /api/admin/tasks
func CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	req.TaskType = strings.ToLower(strings.TrimSpace(req.TaskType))
	if !validTaskType(req.TaskType) {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid task type")
		return
	}
	if req.Points <= 0 {
		utils.WriteMessage(w, http.StatusBadRequest, "Points must be positive")
		return
	}

	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		Points:      req.Points,
		TaskType:    req.TaskType,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if err := store.CreateTask(r.Context(), &task); err != nil {
		log.Printf("[admin tasks] create error: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, task)
}

// UpdateTaskRequest carries a partial update; absent fields keep their
// current value.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Points      *int    `json:"points"`
	TaskType    *string `json:"taskType"`
	IsActive    *bool   `json:"isActive"`
}

// PUT /api/admin/tasks/{id}
func UpdateTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid task id")
		return
	}

	var req UpdateTaskRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			utils.WriteMessage(w, http.StatusBadRequest, "Title must not be empty")
			return
		}
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			utils.WriteMessage(w, http.StatusBadRequest, "Description must not be empty")
			return
		}
		updates["description"] = *req.Description
	}
	if req.Points != nil {
		if *req.Points <= 0 {
			utils.WriteMessage(w, http.StatusBadRequest, "Points must be positive")
			return
		}
		updates["points"] = *req.Points
	}
	if req.TaskType != nil {
		taskType := strings.ToLower(strings.TrimSpace(*req.TaskType))
		if !validTaskType(taskType) {
			utils.WriteMessage(w, http.StatusBadRequest, "Invalid task type")
			return
		}
		updates["task_type"] = taskType
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		utils.WriteMessage(w, http.StatusBadRequest, "No fields to update")
		return
	}

	task, err := store.UpdateTask(r.Context(), uint(id), updates)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Task not found")
			return
		}
		log.Printf("[admin tasks] update error: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, task)
}

// DELETE /api/admin/tasks/{id}
func DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid task id")
		return
	}

	if err := store.DeleteTask(r.Context(), uint(id)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Task not found")
			return
		}
		log.Printf("[admin tasks] delete error: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Task deleted successfully")
}
