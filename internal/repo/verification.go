package repo

import (
	"context"

	"github.com/swapmart/auth-service/internal/models"
)

func (r *GormVerifications) FindByOwner(ctx context.Context, ownerID string) (*models.VerificationToken, error) {
	var token models.VerificationToken
	if err := r.DB.WithContext(ctx).Where("owner_id = ?", ownerID).First(&token).Error; err != nil {
		return nil, translate(err)
	}
	return &token, nil
}

func (r *GormVerifications) Create(ctx context.Context, t *models.VerificationToken) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *GormVerifications) DeleteByOwner(ctx context.Context, ownerID string) error {
	return r.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Delete(&models.VerificationToken{}).Error
}

func (r *GormVerifications) DeleteByID(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.VerificationToken{}).Error
}
