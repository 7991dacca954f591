package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/calmasana/calmasana-backend/internal/domain"
	"github.com/calmasana/calmasana-backend/internal/platform/logger"
)

type UserProfileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, profile *domain.UserProfile) (*domain.UserProfile, error)
	GetLatestByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*domain.UserProfile, error)
}

type userProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserProfileRepo(db *gorm.DB, baseLog *logger.Logger) UserProfileRepo {
	return &userProfileRepo{db: db, log: baseLog.With("repo", "UserProfileRepo")}
}

func (r *userProfileRepo) Create(ctx context.Context, tx *gorm.DB, profile *domain.UserProfile) (*domain.UserProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if profile == nil {
		return nil, nil
	}
	if err := transaction.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *userProfileRepo) GetLatestByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*domain.UserProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result domain.UserProfile
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
