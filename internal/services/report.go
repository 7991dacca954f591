package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/calmasana/calmasana-backend/internal/data/repos"
	"github.com/calmasana/calmasana-backend/internal/domain"
	"github.com/calmasana/calmasana-backend/internal/platform/logger"
)

const (
	reportSessionLimit = 10
	reportRecentShown  = 5
	reportWindowDays   = 30
)

// ActivityDay is one day of the trailing practice-activity window.
type ActivityDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Report aggregates a user's recent practice history.
type Report struct {
	TotalSessions  int                       `json:"total_sessions"`
	UniquePoses    int                       `json:"unique_poses"`
	Consistency    float64                   `json:"consistency"`
	Activity       []ActivityDay             `json:"activity"`
	RecentSessions []*domain.PracticeSession `json:"recent_sessions"`
	Improvements   []string                  `json:"improvements"`
}

type ReportService interface {
	Build(ctx context.Context, userID uuid.UUID) (*Report, error)
}

type reportService struct {
	db   *gorm.DB
	log  *logger.Logger
	repo repos.PracticeSessionRepo

	now func() time.Time
}

func NewReportService(db *gorm.DB, log *logger.Logger, repo repos.PracticeSessionRepo) ReportService {
	return &reportService{
		db:   db,
		log:  log.With("service", "ReportService"),
		repo: repo,
		now:  time.Now,
	}
}

func (s *reportService) Build(ctx context.Context, userID uuid.UUID) (*Report, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id is required")
	}
	sessions, err := s.repo.GetRecentByUser(ctx, nil, userID, reportSessionLimit)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	now := s.now()
	windowStart := now.AddDate(0, 0, -reportWindowDays)

	var inWindow []*domain.PracticeSession
	uniquePoses := map[string]struct{}{}
	for _, sess := range sessions {
		uniquePoses[sess.Pose] = struct{}{}
		if !sess.Timestamp.Before(windowStart) {
			inWindow = append(inWindow, sess)
		}
	}

	// Average sessions per week over the trailing 30 days, one decimal.
	consistency := math.Round(float64(len(inWindow))/4*10) / 10

	report := &Report{
		TotalSessions:  len(sessions),
		UniquePoses:    len(uniquePoses),
		Consistency:    consistency,
		Activity:       activityByDay(inWindow, now),
		RecentSessions: sessions,
		Improvements:   buildImprovements(sessions, consistency),
	}
	if len(report.RecentSessions) > reportRecentShown {
		report.RecentSessions = report.RecentSessions[:reportRecentShown]
	}
	return report, nil
}

func activityByDay(sessions []*domain.PracticeSession, now time.Time) []ActivityDay {
	days := make([]ActivityDay, 0, reportWindowDays)
	for i := reportWindowDays - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		count := 0
		for _, sess := range sessions {
			if sess.Timestamp.Format("2006-01-02") == date {
				count++
			}
		}
		days = append(days, ActivityDay{Date: date, Count: count})
	}
	return days
}

// buildImprovements turns session history into coaching suggestions.
func buildImprovements(sessions []*domain.PracticeSession, consistency float64) []string {
	var out []string
	for _, sess := range sessions {
		if sess.AverageAccuracy < 80 {
			out = append(out, fmt.Sprintf(
				"Focus on aligning your joints in %s. Your accuracy was %.1f%%.",
				sess.Pose, sess.AverageAccuracy))
		}
		if sess.DurationMinutes < 5 {
			out = append(out, fmt.Sprintf(
				"Try to hold %s for longer. Your session was only %d minutes. Aim for at least 5 minutes.",
				sess.Pose, sess.DurationMinutes))
		}
	}
	if consistency < 1 {
		out = append(out, "Increase your practice frequency to at least once per week for better progress.")
	}
	if len(out) == 0 {
		out = append(out, "Keep up the great work! No major improvements needed.")
	}
	return out
}
