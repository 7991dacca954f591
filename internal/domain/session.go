package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SessionSummary is the single artifact a completed practice session hands to
// the persistence layer.
type SessionSummary struct {
	Pose            string    `json:"pose"`
	DurationMinutes int       `json:"duration"`
	AverageAccuracy float64   `json:"average_accuracy"`
	Timestamp       time.Time `json:"timestamp"`
}

// UserProfile is the stored questionnaire submission: the answers, the BMI
// derived from them, and the pose names that were recommended at that moment.
type UserProfile struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
	Questionnaire  datatypes.JSON `gorm:"column:questionnaire" json:"questionnaire"`
	BMI            datatypes.JSON `gorm:"column:bmi" json:"bmi"`
	SuggestedPoses datatypes.JSON `gorm:"column:suggested_poses" json:"suggested_poses"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (UserProfile) TableName() string {
	return "user_profile"
}

// PracticeSession is one stored SessionSummary.
type PracticeSession struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
	Pose            string    `gorm:"not null;column:pose" json:"pose"`
	DurationMinutes int       `gorm:"column:duration_minutes" json:"duration"`
	AverageAccuracy float64   `gorm:"column:average_accuracy" json:"average_accuracy"`
	Timestamp       time.Time `gorm:"index;not null;column:timestamp" json:"timestamp"`
}

func (PracticeSession) TableName() string {
	return "practice_session"
}
