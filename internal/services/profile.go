package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/calmasana/calmasana-backend/internal/data/repos"
	"github.com/calmasana/calmasana-backend/internal/domain"
	"github.com/calmasana/calmasana-backend/internal/platform/logger"
	"github.com/calmasana/calmasana-backend/internal/poses"
	"github.com/calmasana/calmasana-backend/internal/recommend"
)

// SubmissionResult is what a finalized questionnaire produces: the derived
// BMI and the ranked pose shortlist. The shortlist may be empty.
type SubmissionResult struct {
	BMI   *domain.BMIResult      `json:"bmi"`
	Poses []recommend.ScoredPose `json:"poses"`
}

type ProfileService interface {
	Submit(ctx context.Context, userID uuid.UUID, profile domain.Profile) (*SubmissionResult, error)
}

type profileService struct {
	db      *gorm.DB
	log     *logger.Logger
	catalog *poses.Catalog
	repo    repos.UserProfileRepo
}

func NewProfileService(db *gorm.DB, log *logger.Logger, catalog *poses.Catalog, repo repos.UserProfileRepo) ProfileService {
	return &profileService{
		db:      db,
		log:     log.With("service", "ProfileService"),
		catalog: catalog,
		repo:    repo,
	}
}

// Submit validates and finalizes the questionnaire, derives the BMI, runs
// the recommender, and persists the submission together with the ranked pose
// names.
func (s *profileService) Submit(ctx context.Context, userID uuid.UUID, profile domain.Profile) (*SubmissionResult, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id is required")
	}
	p, err := finalizeProfile(profile)
	if err != nil {
		return nil, err
	}

	bmi := recommend.ComputeBMI(floatAnswer(p.Height), floatAnswer(p.Weight))
	scored := recommend.Recommend(p, bmi, s.catalog.All())

	names := make([]string, 0, len(scored))
	for _, sp := range scored {
		names = append(names, sp.Name)
	}

	record, err := buildProfileRecord(userID, p, bmi, names)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.Create(ctx, nil, record); err != nil {
		s.log.Warn("Persisting questionnaire failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("save questionnaire: %w", err)
	}

	s.log.Info("Questionnaire submitted", "user_id", userID, "recommended", len(names))
	return &SubmissionResult{BMI: bmi, Poses: scored}, nil
}

// finalizeProfile applies the questionnaire's own validation rules and
// returns a normalized copy. The pregnancy flag is only meaningful for
// profiles that were asked the question; everyone else gets an explicit
// false.
func finalizeProfile(p domain.Profile) (domain.Profile, error) {
	if age := answerInt(p.Age); age < 18 {
		return p, fmt.Errorf("you must be 18 or older")
	}
	switch p.Gender {
	case "male":
		pregnant := false
		p.IsPregnant = &pregnant
	case "female":
		if p.IsPregnant == nil {
			return p, fmt.Errorf("the pregnancy question must be answered")
		}
	case "":
		return p, fmt.Errorf("gender is required")
	}
	if floatAnswer(p.Height) <= 0 || floatAnswer(p.Weight) <= 0 {
		return p, fmt.Errorf("height and weight must be greater than 0")
	}
	if p.FitnessLevel == "" {
		return p, fmt.Errorf("fitness level is required")
	}
	if strings.TrimSpace(p.YogaExperience) == "" {
		return p, fmt.Errorf("yoga experience is required")
	}
	if p.FlexibilityLevel == "" {
		return p, fmt.Errorf("flexibility level is required")
	}
	if len(p.FocusAreas) == 0 {
		return p, fmt.Errorf("select at least one focus area")
	}
	if len(p.PracticeEnvironment) == 0 {
		return p, fmt.Errorf("select at least one practice environment option")
	}
	if p.PracticeFrequency == "" {
		return p, fmt.Errorf("practice frequency is required")
	}
	if p.PreferredTime == "" {
		return p, fmt.Errorf("preferred practice time is required")
	}
	if p.DurationPreference == "" {
		return p, fmt.Errorf("session duration preference is required")
	}
	if p.EnergyLevel == "" {
		return p, fmt.Errorf("energy level is required")
	}
	if len(p.Goals) == 0 {
		return p, fmt.Errorf("select at least one goal")
	}
	return p, nil
}

func buildProfileRecord(userID uuid.UUID, p domain.Profile, bmi *domain.BMIResult, poseNames []string) (*domain.UserProfile, error) {
	questionnaire, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode questionnaire: %w", err)
	}
	record := &domain.UserProfile{
		UserID:        userID,
		Questionnaire: questionnaire,
		CreatedAt:     time.Now(),
	}
	if bmi != nil {
		encoded, err := json.Marshal(bmi)
		if err != nil {
			return nil, fmt.Errorf("encode bmi: %w", err)
		}
		record.BMI = encoded
	}
	if len(poseNames) > 0 {
		encoded, err := json.Marshal(poseNames)
		if err != nil {
			return nil, fmt.Errorf("encode pose names: %w", err)
		}
		record.SuggestedPoses = encoded
	}
	return record, nil
}

// answerInt parses a numeric questionnaire answer, 0 when malformed.
func answerInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func floatAnswer(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
