package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/calmasana/calmasana-backend/internal/domain"
)

func TestBuildImprovements_LowAccuracy(t *testing.T) {
	sessions := []*domain.PracticeSession{
		{Pose: "Warrior II", AverageAccuracy: 65.5, DurationMinutes: 8},
	}
	out := buildImprovements(sessions, 2.0)
	if len(out) != 1 {
		t.Fatalf("expected one suggestion, got %v", out)
	}
	if out[0] != "Focus on aligning your joints in Warrior II. Your accuracy was 65.5%." {
		t.Fatalf("unexpected suggestion %q", out[0])
	}
}

func TestBuildImprovements_ShortSession(t *testing.T) {
	sessions := []*domain.PracticeSession{
		{Pose: "Child's Pose", AverageAccuracy: 92, DurationMinutes: 3},
	}
	out := buildImprovements(sessions, 2.0)
	if len(out) != 1 {
		t.Fatalf("expected one suggestion, got %v", out)
	}
	if !strings.Contains(out[0], "Try to hold Child's Pose for longer") {
		t.Fatalf("unexpected suggestion %q", out[0])
	}
	if !strings.Contains(out[0], "only 3 minutes") {
		t.Fatalf("unexpected suggestion %q", out[0])
	}
}

func TestBuildImprovements_LowConsistency(t *testing.T) {
	out := buildImprovements(nil, 0.5)
	if len(out) != 1 {
		t.Fatalf("expected one suggestion, got %v", out)
	}
	if !strings.Contains(out[0], "practice frequency") {
		t.Fatalf("unexpected suggestion %q", out[0])
	}
}

func TestBuildImprovements_NothingToImprove(t *testing.T) {
	sessions := []*domain.PracticeSession{
		{Pose: "Mountain Pose", AverageAccuracy: 95, DurationMinutes: 12},
	}
	out := buildImprovements(sessions, 3.0)
	if len(out) != 1 || out[0] != "Keep up the great work! No major improvements needed." {
		t.Fatalf("unexpected suggestions %v", out)
	}
}

func TestReportBuild_AggregatesRecentSessions(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	repo := &fakePracticeSessionRepo{created: []*domain.PracticeSession{
		{Pose: "Mountain Pose", AverageAccuracy: 95, DurationMinutes: 10, Timestamp: now.AddDate(0, 0, -1)},
		{Pose: "Child's Pose", AverageAccuracy: 90, DurationMinutes: 8, Timestamp: now.AddDate(0, 0, -3)},
		{Pose: "Mountain Pose", AverageAccuracy: 88, DurationMinutes: 9, Timestamp: now.AddDate(0, 0, -10)},
		{Pose: "Cat-Cow Pose", AverageAccuracy: 91, DurationMinutes: 6, Timestamp: now.AddDate(0, 0, -20)},
		{Pose: "Warrior II", AverageAccuracy: 85, DurationMinutes: 7, Timestamp: now.AddDate(0, 0, -40)},
	}}
	svc := NewReportService(nil, testLogger(t), repo).(*reportService)
	svc.now = func() time.Time { return now }

	report, err := svc.Build(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.TotalSessions != 5 {
		t.Fatalf("expected 5 total sessions, got %d", report.TotalSessions)
	}
	if report.UniquePoses != 4 {
		t.Fatalf("expected 4 unique poses, got %d", report.UniquePoses)
	}
	// 4 sessions inside the trailing 30 days, over 4 weeks.
	if report.Consistency != 1.0 {
		t.Fatalf("expected consistency=1.0 got %v", report.Consistency)
	}
	if len(report.Activity) != 30 {
		t.Fatalf("expected 30 activity days, got %d", len(report.Activity))
	}
	active := 0
	for _, day := range report.Activity {
		active += day.Count
	}
	if active != 4 {
		t.Fatalf("expected 4 active-day counts, got %d", active)
	}
	if len(report.RecentSessions) != 5 {
		t.Fatalf("expected 5 recent sessions, got %d", len(report.RecentSessions))
	}
	if len(report.Improvements) != 1 || !strings.Contains(report.Improvements[0], "Keep up the great work") {
		t.Fatalf("unexpected improvements %v", report.Improvements)
	}
}

func TestReportBuild_CapsRecentSessionsShown(t *testing.T) {
	now := time.Now()
	repo := &fakePracticeSessionRepo{}
	for i := 0; i < 8; i++ {
		repo.created = append(repo.created, &domain.PracticeSession{
			Pose:            "Mountain Pose",
			AverageAccuracy: 95,
			DurationMinutes: 10,
			Timestamp:       now.AddDate(0, 0, -i),
		})
	}
	svc := NewReportService(nil, testLogger(t), repo).(*reportService)
	svc.now = func() time.Time { return now }

	report, err := svc.Build(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.TotalSessions != 8 {
		t.Fatalf("expected 8 total sessions, got %d", report.TotalSessions)
	}
	if len(report.RecentSessions) != 5 {
		t.Fatalf("expected shown sessions capped at 5, got %d", len(report.RecentSessions))
	}
}

func TestReportBuild_RequiresUserID(t *testing.T) {
	svc := NewReportService(nil, testLogger(t), &fakePracticeSessionRepo{})
	if _, err := svc.Build(context.Background(), uuid.Nil); err == nil {
		t.Fatalf("expected error for missing user id")
	}
}
