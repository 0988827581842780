package models

import "time"

// Session is an opaque user-session token. Expired rows are rejected on
// lookup but not actively purged.
type Session struct {
	Token     string    `gorm:"primaryKey;size:64" json:"token"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// AdminSession mirrors Session for the admin panel. The admin cookie carries
// this token, never an admin id.
type AdminSession struct {
	Token     string    `gorm:"primaryKey;size:64" json:"token"`
	AdminID   uint      `gorm:"not null;index" json:"adminId"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}
