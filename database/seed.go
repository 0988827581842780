package database

import (
	"fmt"
	"log"
	"os"

	"github.com/GleritasToken/gleritas-token-manager/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultTasks is the promotional task set a fresh install starts with.
var DefaultTasks = []models.Task{
	{Title: "Referral Task", Description: "Refer at least 3 users", Points: 500, TaskType: models.TaskTypeReferral, IsActive: true},
	{Title: "Join Telegram Group", Description: "Join our official Telegram group", Points: 100, TaskType: models.TaskTypeTelegram, IsActive: true},
	{Title: "Join Telegram Channel", Description: "Join our official Telegram channel", Points: 100, TaskType: models.TaskTypeTelegram, IsActive: true},
	{Title: "Follow Twitter Page", Description: "Follow our Twitter account", Points: 150, TaskType: models.TaskTypeTwitter, IsActive: true},
	{Title: "Subscribe to Youtube Channel", Description: "Subscribe to our YouTube channel", Points: 200, TaskType: models.TaskTypeYoutube, IsActive: true},
	{Title: "Like Youtube Video", Description: "Like our latest YouTube video", Points: 50, TaskType: models.TaskTypeYoutube, IsActive: true},
}

// Seed inserts the default tasks and the administrator account, but only
// into empty tables. It is safe to call on every start; a populated table
// is left alone so admin edits and deletions survive restarts.
func Seed(db *gorm.DB) error {
	var taskCount int64
	if err := db.Model(&models.Task{}).Count(&taskCount).Error; err != nil {
		return err
	}
	if taskCount == 0 {
		tasks := make([]models.Task, len(DefaultTasks))
		copy(tasks, DefaultTasks)
		if err := db.Create(&tasks).Error; err != nil {
			return err
		}
		log.Printf("[seed] created %d default tasks", len(tasks))
	}

	var adminCount int64
	if err := db.Model(&models.Admin{}).Count(&adminCount).Error; err != nil {
		return err
	}
	if adminCount == 0 {
		username := os.Getenv("ADMIN_USERNAME")
		password := os.Getenv("ADMIN_PASSWORD")
		if username == "" || password == "" {
			return fmt.Errorf("no admin account exists and ADMIN_USERNAME/ADMIN_PASSWORD are not set")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := models.Admin{Username: username, Password: string(hashed)}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		log.Printf("[seed] created admin account %q", username)
	}

	return nil
}
