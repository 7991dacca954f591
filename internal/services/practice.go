package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/calmasana/calmasana-backend/internal/alignment"
	"github.com/calmasana/calmasana-backend/internal/data/repos"
	"github.com/calmasana/calmasana-backend/internal/domain"
	"github.com/calmasana/calmasana-backend/internal/platform/envutil"
	"github.com/calmasana/calmasana-backend/internal/platform/logger"
	"github.com/calmasana/calmasana-backend/internal/poses"
	"github.com/calmasana/calmasana-backend/internal/practice"
)

// FrameRequest is one detector frame as submitted by the client: raw pixel
// keypoints plus the frame dimensions they were measured in.
type FrameRequest struct {
	Keypoints []domain.Keypoint `json:"keypoints"`
	Width     float64           `json:"width"`
	Height    float64           `json:"height"`
}

// FrameFeedback is the per-frame verdict handed back to the client. Spoken
// is only set while voice guidance is enabled; the caller feeds it to the
// voice collaborator.
type FrameFeedback struct {
	Feedback string   `json:"feedback"`
	Lines    []string `json:"lines"`
	Accuracy int      `json:"accuracy"`
	Spoken   string   `json:"spoken,omitempty"`
}

type PracticeService interface {
	Start(ctx context.Context, userID uuid.UUID, poseName string) (uuid.UUID, domain.Pose, error)
	EvaluateFrame(sessionID uuid.UUID, req FrameRequest) (*FrameFeedback, error)
	SetVoice(sessionID uuid.UUID, enabled bool) (string, error)
	Complete(ctx context.Context, sessionID uuid.UUID) (*domain.SessionSummary, error)
}

// activeSession is the in-memory state of one running practice session. The
// accuracy samples live here until Complete persists their summary.
type activeSession struct {
	userID  uuid.UUID
	pose    domain.Pose
	agg     *practice.Aggregator
	start   time.Time
	voice   bool
	pending *domain.SessionSummary
}

type practiceService struct {
	db      *gorm.DB
	log     *logger.Logger
	catalog *poses.Catalog
	repo    repos.PracticeSessionRepo

	minConfidence float64
	threshold     float64

	mu       sync.Mutex
	sessions map[uuid.UUID]*activeSession

	now func() time.Time
}

func NewPracticeService(db *gorm.DB, log *logger.Logger, catalog *poses.Catalog, repo repos.PracticeSessionRepo) PracticeService {
	return &practiceService{
		db:            db,
		log:           log.With("service", "PracticeService"),
		catalog:       catalog,
		repo:          repo,
		minConfidence: envutil.Float("ALIGNMENT_MIN_CONFIDENCE", alignment.DefaultMinConfidence),
		threshold:     envutil.Float("ALIGNMENT_THRESHOLD", alignment.DefaultThreshold),
		sessions:      make(map[uuid.UUID]*activeSession),
		now:           time.Now,
	}
}

func (s *practiceService) Start(ctx context.Context, userID uuid.UUID, poseName string) (uuid.UUID, domain.Pose, error) {
	if userID == uuid.Nil {
		return uuid.Nil, domain.Pose{}, fmt.Errorf("user id is required")
	}
	pose, ok := s.catalog.ByName(poseName)
	if !ok {
		return uuid.Nil, domain.Pose{}, fmt.Errorf("unknown pose %q", poseName)
	}
	if len(pose.TargetGeometry) == 0 {
		return uuid.Nil, domain.Pose{}, fmt.Errorf("pose %q has no target geometry", poseName)
	}

	sessionID := uuid.New()
	s.mu.Lock()
	s.sessions[sessionID] = &activeSession{
		userID: userID,
		pose:   pose,
		agg:    &practice.Aggregator{},
		start:  s.now(),
	}
	s.mu.Unlock()

	s.log.Info("Practice session started", "session_id", sessionID, "user_id", userID, "pose", pose.Name)
	return sessionID, pose, nil
}

func (s *practiceService) EvaluateFrame(sessionID uuid.UUID, req FrameRequest) (*FrameFeedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("no active session %s", sessionID)
	}

	sample := alignment.Normalize(req.Keypoints, req.Width, req.Height, s.minConfidence)
	res := alignment.Evaluate(sample, sess.pose.TargetGeometry, s.threshold)
	sess.agg.Record(res.Accuracy)

	feedback := &FrameFeedback{
		Feedback: res.Text(),
		Lines:    res.Lines,
		Accuracy: res.Accuracy,
	}
	if sess.voice {
		feedback.Spoken = res.SpokenPhrase()
	}
	return feedback, nil
}

func (s *practiceService) SetVoice(sessionID uuid.UUID, enabled bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return "", fmt.Errorf("no active session %s", sessionID)
	}
	sess.voice = enabled
	if enabled {
		return practice.VoiceEnabledPhrase, nil
	}
	return practice.VoiceDisabledPhrase, nil
}

// Complete summarizes the session and persists it. When persistence fails
// the summary stays pending in memory, so a retry resubmits the same
// summary instead of losing the samples.
func (s *practiceService) Complete(ctx context.Context, sessionID uuid.UUID) (*domain.SessionSummary, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("no active session %s", sessionID)
	}
	if sess.pending == nil {
		summary := sess.agg.Summarize(sess.start, s.now(), sess.pose.Name)
		sess.pending = &summary
	}
	summary := *sess.pending
	userID := sess.userID
	s.mu.Unlock()

	record := &domain.PracticeSession{
		UserID:          userID,
		Pose:            summary.Pose,
		DurationMinutes: summary.DurationMinutes,
		AverageAccuracy: summary.AverageAccuracy,
		Timestamp:       summary.Timestamp,
	}
	if _, err := s.repo.Create(ctx, nil, record); err != nil {
		s.log.Warn("Persisting session failed, summary kept for retry", "session_id", sessionID, "error", err)
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	s.log.Info("Practice session completed", "session_id", sessionID, "pose", summary.Pose, "duration_minutes", summary.DurationMinutes)
	return &summary, nil
}
