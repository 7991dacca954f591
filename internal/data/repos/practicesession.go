package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/calmasana/calmasana-backend/internal/domain"
	"github.com/calmasana/calmasana-backend/internal/platform/logger"
)

type PracticeSessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, session *domain.PracticeSession) (*domain.PracticeSession, error)
	GetRecentByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*domain.PracticeSession, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type practiceSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPracticeSessionRepo(db *gorm.DB, baseLog *logger.Logger) PracticeSessionRepo {
	return &practiceSessionRepo{db: db, log: baseLog.With("repo", "PracticeSessionRepo")}
}

func (r *practiceSessionRepo) Create(ctx context.Context, tx *gorm.DB, session *domain.PracticeSession) (*domain.PracticeSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if session == nil {
		return nil, nil
	}
	if err := transaction.WithContext(ctx).Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (r *practiceSessionRepo) GetRecentByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*domain.PracticeSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 {
		limit = 10
	}

	var results []*domain.PracticeSession
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *practiceSessionRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.PracticeSession{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
