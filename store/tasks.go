package store

import (
	"context"
	"errors"
	"time"

	"github.com/GleritasToken/gleritas-token-manager/database"
	"github.com/GleritasToken/gleritas-token-manager/models"

	"gorm.io/gorm"
)

// UserTaskWithTask is a task assignment joined with its task definition.
type UserTaskWithTask struct {
	models.UserTask
	Task models.Task `json:"task"`
}

// GetUserTasks returns the user's assignments for active tasks, each with
// the full task attached.
func GetUserTasks(ctx context.Context, userID uint) ([]UserTaskWithTask, error) {
	var assignments []models.UserTask
	err := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("task_id ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return []UserTaskWithTask{}, nil
	}

	taskIDs := make([]uint, 0, len(assignments))
	for _, ut := range assignments {
		taskIDs = append(taskIDs, ut.TaskID)
	}
	var tasks []models.Task
	if err := database.DB.WithContext(ctx).Where("id IN ?", taskIDs).Find(&tasks).Error; err != nil {
		return nil, err
	}
	taskMap := make(map[uint]models.Task, len(tasks))
	for _, t := range tasks {
		taskMap[t.ID] = t
	}

	out := make([]UserTaskWithTask, 0, len(assignments))
	for _, ut := range assignments {
		out = append(out, UserTaskWithTask{UserTask: ut, Task: taskMap[ut.TaskID]})
	}
	return out, nil
}

// CompleteTask marks the assignment complete and credits the task's points,
// atomically. The guard on completed = false makes repeat calls (double
// clicks, retries) credit at most once.
func CompleteTask(ctx context.Context, userID, taskID uint) (*models.UserTask, error) {
	var userTask models.UserTask
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return notFound(err)
		}
		if !user.WalletConnected {
			return ErrWalletRequired
		}

		var task models.Task
		if err := tx.First(&task, taskID).Error; err != nil {
			return notFound(err)
		}

		now := time.Now()
		res := tx.Model(&models.UserTask{}).
			Where("user_id = ? AND task_id = ? AND completed = ?", userID, taskID, false).
			Updates(map[string]interface{}{"completed": true, "completed_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			err := tx.Where("user_id = ? AND task_id = ?", userID, taskID).First(&userTask).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			if err != nil {
				return err
			}
			return ErrTaskCompleted
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("points", gorm.Expr("points + ?", task.Points)).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ? AND task_id = ?", userID, taskID).First(&userTask).Error
	})
	if err != nil {
		return nil, err
	}
	return &userTask, nil
}

// Admin task management

func GetAllTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := database.DB.WithContext(ctx).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func CreateTask(ctx context.Context, task *models.Task) error {
	return database.DB.WithContext(ctx).Create(task).Error
}

func UpdateTask(ctx context.Context, id uint, updates map[string]interface{}) (*models.Task, error) {
	var task models.Task
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Model(&task).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&task, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task and any assignments pointing at it.
func DeleteTask(ctx context.Context, id uint) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Task{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("task_id = ?", id).Delete(&models.UserTask{}).Error
	})
}
