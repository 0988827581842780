package store

import (
	"context"

	"github.com/GleritasToken/gleritas-token-manager/database"
	"github.com/GleritasToken/gleritas-token-manager/models"
)

func GetAdmin(ctx context.Context, id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := database.DB.WithContext(ctx).First(&admin, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &admin, nil
}

func GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	if err := database.DB.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, notFound(err)
	}
	return &admin, nil
}
