package models

import "time"

// Referral links a referrer to a referred signup. Rows are append-only.
type Referral struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ReferrerID     uint      `gorm:"not null;index" json:"referrerId"`
	ReferredUserID uint      `gorm:"not null" json:"referredUserId"`
	PointsEarned   int       `gorm:"not null" json:"pointsEarned"`
	CreatedAt      time.Time `json:"createdAt"`
}
