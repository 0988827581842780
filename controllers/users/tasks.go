package users

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/GleritasToken/gleritas-token-manager/store"
	"github.com/GleritasToken/gleritas-token-manager/utils"

	"github.com/gorilla/mux"
)

// GET /api/tasks
func TaskListHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	tasks, err := store.GetUserTasks(r.Context(), uid)
	if err != nil {
		log.Printf("[tasks] list error: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, tasks)
}

// POST /api/tasks/{taskId}/complete
func CompleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	taskID, err := strconv.ParseUint(mux.Vars(r)["taskId"], 10, 64)
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid task id")
		return
	}

	userTask, err := store.CompleteTask(r.Context(), uid, uint(taskID))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrWalletRequired):
			utils.WriteMessage(w, http.StatusBadRequest, "Wallet must be connected to complete tasks")
		case errors.Is(err, store.ErrTaskCompleted):
			utils.WriteMessage(w, http.StatusBadRequest, "Task already completed")
		case errors.Is(err, store.ErrNotFound):
			utils.WriteMessage(w, http.StatusNotFound, "Task not found")
		default:
			log.Printf("[tasks] complete error: %v", err)
			utils.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	user, err := store.GetUser(r.Context(), uid)
	if err != nil {
		log.Printf("[tasks] reload user error: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"userTask": userTask,
		"user":     user,
		"message":  "Task completed successfully",
	})
}
