package store

import (
	"context"

	"github.com/GleritasToken/gleritas-token-manager/database"
	"github.com/GleritasToken/gleritas-token-manager/models"

	"gorm.io/gorm"
)

// ReferralWithUser is a referral joined with the referred account.
type ReferralWithUser struct {
	models.Referral
	ReferredUser models.User `json:"referredUser"`
}

// CreateReferral records a referral and credits the referrer's balance in
// the same transaction.
func CreateReferral(ctx context.Context, referrerID, referredUserID uint, points int) (*models.Referral, error) {
	referral := models.Referral{
		ReferrerID:     referrerID,
		ReferredUserID: referredUserID,
		PointsEarned:   points,
	}
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&referral).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", referrerID).
			Update("points", gorm.Expr("points + ?", points)).Error
	})
	if err != nil {
		return nil, err
	}
	return &referral, nil
}

// GetReferralsByUser lists the user's referrals newest first, each with the
// referred account attached (password never serializes).
func GetReferralsByUser(ctx context.Context, userID uint) ([]ReferralWithUser, error) {
	var referrals []models.Referral
	err := database.DB.WithContext(ctx).
		Where("referrer_id = ?", userID).
		Order("created_at DESC").
		Find(&referrals).Error
	if err != nil {
		return nil, err
	}
	if len(referrals) == 0 {
		return []ReferralWithUser{}, nil
	}

	userIDs := make([]uint, 0, len(referrals))
	for _, ref := range referrals {
		userIDs = append(userIDs, ref.ReferredUserID)
	}
	var users []models.User
	if err := database.DB.WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, err
	}
	userMap := make(map[uint]models.User, len(users))
	for _, u := range users {
		userMap[u.ID] = u
	}

	out := make([]ReferralWithUser, 0, len(referrals))
	for _, ref := range referrals {
		out = append(out, ReferralWithUser{Referral: ref, ReferredUser: userMap[ref.ReferredUserID]})
	}
	return out, nil
}

func GetReferralCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := database.DB.WithContext(ctx).
		Model(&models.Referral{}).
		Where("referrer_id = ?", userID).
		Count(&count).Error
	return count, err
}
