package models

import "time"

// Task types shown in the app. "referral" tasks are completed like any other;
// the type only drives presentation.
const (
	TaskTypeReferral = "referral"
	TaskTypeTelegram = "telegram"
	TaskTypeTwitter  = "twitter"
	TaskTypeYoutube  = "youtube"
	TaskTypeOther    = "other"
)

type Task struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Points      int       `gorm:"not null" json:"points"`
	TaskType    string    `gorm:"size:50;not null" json:"taskType"`
	IsActive    bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserTask is the per-user completion record. One row exists per
// (user, task active at signup time); tasks created later are not
// assigned retroactively.
type UserTask struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;uniqueIndex:idx_user_task" json:"userId"`
	TaskID      uint       `gorm:"not null;uniqueIndex:idx_user_task" json:"taskId"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}
