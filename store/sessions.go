package store

import (
	"context"
	"time"

	"github.com/GleritasToken/gleritas-token-manager/database"
	"github.com/GleritasToken/gleritas-token-manager/models"
	"github.com/GleritasToken/gleritas-token-manager/utils"
)

const (
	SessionTTL      = 7 * 24 * time.Hour
	AdminSessionTTL = 24 * time.Hour
)

// CreateSession issues a fresh opaque token valid for SessionTTL.
func CreateSession(ctx context.Context, userID uint) (*models.Session, error) {
	token, err := utils.SessionToken()
	if err != nil {
		return nil, err
	}
	session := models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(SessionTTL),
	}
	if err := database.DB.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// GetSession returns the session only while its expiry is strictly in the
// future. Expired rows are left in place; lookups simply stop matching them.
func GetSession(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	err := database.DB.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, time.Now()).
		First(&session).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &session, nil
}

// DeleteSession is idempotent; deleting an unknown token is not an error.
func DeleteSession(ctx context.Context, token string) error {
	return database.DB.WithContext(ctx).
		Where("token = ?", token).
		Delete(&models.Session{}).Error
}

func CreateAdminSession(ctx context.Context, adminID uint) (*models.AdminSession, error) {
	token, err := utils.SessionToken()
	if err != nil {
		return nil, err
	}
	session := models.AdminSession{
		Token:     token,
		AdminID:   adminID,
		ExpiresAt: time.Now().Add(AdminSessionTTL),
	}
	if err := database.DB.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func GetAdminSession(ctx context.Context, token string) (*models.AdminSession, error) {
	var session models.AdminSession
	err := database.DB.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, time.Now()).
		First(&session).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &session, nil
}

func DeleteAdminSession(ctx context.Context, token string) error {
	return database.DB.WithContext(ctx).
		Where("token = ?", token).
		Delete(&models.AdminSession{}).Error
}
