package models

import "time"

type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Username        string    `gorm:"size:255;uniqueIndex;not null" json:"username"`
	Email           string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password        string    `gorm:"size:255;not null" json:"-"`
	Points          int       `gorm:"not null;default:0" json:"points"`
	WalletAddress   *string   `gorm:"size:255" json:"walletAddress"`
	WalletConnected bool      `gorm:"not null;default:false" json:"walletConnected"`
	ReferralCode    string    `gorm:"size:20;uniqueIndex;not null" json:"referralCode"`
	ReferredBy      *string   `gorm:"size:20" json:"referredBy"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
