package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/swapmart/auth-service/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepo is the credential store contract consumed by the service layer.
type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	UpdateVerified(ctx context.Context, id string, verified bool) error
	UpdateTokens(ctx context.Context, id string, tokens models.StringSlice) error
}

// VerificationTokenRepo stores hashed one-time email-verification secrets.
type VerificationTokenRepo interface {
	FindByOwner(ctx context.Context, ownerID string) (*models.VerificationToken, error)
	Create(ctx context.Context, t *models.VerificationToken) error
	DeleteByOwner(ctx context.Context, ownerID string) error
	DeleteByID(ctx context.Context, id uint) error
}

type GormUsers struct {
	DB *gorm.DB
}

type GormVerifications struct {
	DB *gorm.DB
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}
