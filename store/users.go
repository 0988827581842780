package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/GleritasToken/gleritas-token-manager/database"
	"github.com/GleritasToken/gleritas-token-manager/models"
	"github.com/GleritasToken/gleritas-token-manager/utils"

	"gorm.io/gorm"
)

// CreateUser registers a user with the signup bonus, a fresh unique referral
// code and one incomplete UserTask per currently-active task, all in one
// transaction. referredBy is stored as given; resolving it to a referrer is
// the caller's concern. The unique constraints on email/username are the
// authoritative duplicate guard; the pre-insert lookups only pick the error.
func CreateUser(ctx context.Context, username, email, passwordHash string, referredBy *string) (*models.User, error) {
	var user models.User
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateEmail
		}
		if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateUsername
		}

		code, err := generateUniqueReferralCode(tx)
		if err != nil {
			return err
		}

		user = models.User{
			Username:     username,
			Email:        email,
			Password:     passwordHash,
			Points:       SignupBonus,
			ReferralCode: code,
			ReferredBy:   referredBy,
		}
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// lost the race between check and insert; re-classify
				return classifyDuplicate(tx, username, email)
			}
			return err
		}

		var active []models.Task
		if err := tx.Where("is_active = ?", true).Order("id ASC").Find(&active).Error; err != nil {
			return err
		}
		if len(active) > 0 {
			assignments := make([]models.UserTask, 0, len(active))
			for _, t := range active {
				assignments = append(assignments, models.UserTask{UserID: user.ID, TaskID: t.ID})
			}
			if err := tx.Create(&assignments).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func classifyDuplicate(tx *gorm.DB, username, email string) error {
	var count int64
	if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err == nil && count > 0 {
		return ErrDuplicateEmail
	}
	if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err == nil && count > 0 {
		return ErrDuplicateUsername
	}
	return gorm.ErrDuplicatedKey
}

func generateUniqueReferralCode(tx *gorm.DB) (string, error) {
	const maxAttempts = 100
	for attempt := 0; attempt < maxAttempts; attempt++ {
		code, err := utils.ReferralCode()
		if err != nil {
			return "", err
		}
		var count int64
		if err := tx.Model(&models.User{}).Where("referral_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique referral code after %d attempts", maxAttempts)
}

// ConnectWallet stores the wallet address and awards the connection bonus.
// The bonus is granted only on the first connection; reconnecting just
// updates the stored address.
func ConnectWallet(ctx context.Context, userID uint, address string) (*models.User, error) {
	if len(address) != 42 {
		return nil, ErrInvalidWallet
	}
	var user models.User
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND wallet_connected = ?", userID, false).
			Updates(map[string]interface{}{
				"wallet_address":   address,
				"wallet_connected": true,
				"points":           gorm.Expr("points + ?", WalletBonus),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// already connected (or missing): update the address only, no
			// bonus. MySQL reports changed rows, not matched rows, so a
			// same-address resubmit affects 0 rows; existence has to be
			// checked directly instead of read off the row count.
			if err := tx.First(&user, userID).Error; err != nil {
				return notFound(err)
			}
			if err := tx.Model(&models.User{}).
				Where("id = ?", userID).
				Update("wallet_address", address).Error; err != nil {
				return err
			}
		}
		return tx.First(&user, userID).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := database.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := database.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := database.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func GetUserByReferralCode(ctx context.Context, code string) (*models.User, error) {
	var user models.User
	if err := database.DB.WithContext(ctx).Where("referral_code = ?", code).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func GetAllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := database.DB.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser removes a user together with their sessions, task assignments
// and referral rows. Dependent rows are never left orphaned.
func DeleteUser(ctx context.Context, id uint) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.UserTask{}).Error; err != nil {
			return err
		}
		return tx.Where("referrer_id = ? OR referred_user_id = ?", id, id).
			Delete(&models.Referral{}).Error
	})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
