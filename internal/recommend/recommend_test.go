package recommend

import (
	"testing"

	"github.com/calmasana/calmasana-backend/internal/domain"
)

func testCatalog() []domain.Pose {
	return []domain.Pose{
		{
			Name:       "Mountain Pose",
			Level:      domain.LevelBeginner,
			Intensity:  domain.IntensityLow,
			Goals:      []string{domain.GoalStressRelief, domain.GoalBalance},
			FocusAreas: []string{"full body"},
			Environment: []string{
				"indoor", "outdoor",
			},
			SafeFor: []string{
				domain.ConditionBackPain, domain.ConditionPregnant,
				domain.ConditionHighBloodPressure, domain.ConditionDiabetes,
			},
		},
		{
			Name:        "Child's Pose",
			Level:       domain.LevelBeginner,
			Intensity:   domain.IntensityLow,
			Goals:       []string{domain.GoalStressRelief, domain.GoalSleep},
			FocusAreas:  []string{"back", "hips"},
			Environment: []string{"indoor"},
			SafeFor:     []string{domain.ConditionBackPain, domain.ConditionDiabetes},
		},
		{
			Name:              "Downward Dog",
			Level:             domain.LevelIntermediate,
			Intensity:         domain.IntensityModerate,
			Goals:             []string{domain.GoalFitness, domain.GoalFlexibility},
			FocusAreas:        []string{"arms", "legs", "back"},
			Environment:       []string{"indoor", "outdoor"},
			SafeFor:           []string{domain.ConditionDiabetes},
			Contraindications: []string{domain.ConditionHighBloodPressure},
		},
		{
			Name:        "Warrior II",
			Level:       domain.LevelIntermediate,
			Intensity:   domain.IntensityHigh,
			Goals:       []string{domain.GoalFitness, domain.GoalStrength},
			FocusAreas:  []string{"legs", "core"},
			Environment: []string{"indoor", "outdoor"},
			SafeFor:     []string{domain.ConditionDiabetes},
		},
	}
}

func TestRecommend_AgeOver60KeepsOnlyLowIntensity(t *testing.T) {
	p := domain.Profile{
		Age:   "65",
		Goals: []string{domain.GoalStressRelief, domain.GoalFitness},
	}
	out := Recommend(p, nil, testCatalog())
	if len(out) == 0 {
		t.Fatalf("expected at least one pose")
	}
	for _, sp := range out {
		if sp.Intensity != domain.IntensityLow {
			t.Fatalf("expected only low intensity, got %q (%s)", sp.Intensity, sp.Name)
		}
	}
}

func TestRecommend_PregnantRequiresSafeFor(t *testing.T) {
	preg := true
	p := domain.Profile{
		IsPregnant: &preg,
		Goals:      []string{domain.GoalStressRelief, domain.GoalFitness},
	}
	out := Recommend(p, nil, testCatalog())
	if len(out) != 1 || out[0].Name != "Mountain Pose" {
		t.Fatalf("expected only Mountain Pose, got %v", names(out))
	}
}

func TestRecommend_HighBloodPressureVetoesContraindicated(t *testing.T) {
	p := domain.Profile{
		HealthConditions: domain.HealthConditions{HighBloodPressure: true},
		Goals:            []string{domain.GoalFitness},
	}
	out := Recommend(p, nil, testCatalog())
	for _, sp := range out {
		if sp.Name == "Downward Dog" {
			t.Fatalf("Downward Dog is contraindicated for high blood pressure")
		}
	}
}

func TestRecommend_BeginnerFitnessFiltersLevel(t *testing.T) {
	p := domain.Profile{
		FitnessLevel: domain.LevelBeginner,
		Goals:        []string{domain.GoalStressRelief, domain.GoalFitness},
	}
	out := Recommend(p, nil, testCatalog())
	if len(out) == 0 {
		t.Fatalf("expected at least one pose")
	}
	for _, sp := range out {
		if sp.Level != domain.LevelBeginner {
			t.Fatalf("expected only beginner poses, got %q (%s)", sp.Level, sp.Name)
		}
	}
}

func TestRecommend_EmptyResultIsValid(t *testing.T) {
	p := domain.Profile{
		Goals: []string{"no such goal"},
	}
	out := Recommend(p, nil, testCatalog())
	if len(out) != 0 {
		t.Fatalf("expected empty result, got %v", names(out))
	}
}

func TestRecommend_CapsAtThreeSortedDescending(t *testing.T) {
	p := domain.Profile{
		Age:                 "25",
		FitnessLevel:        domain.LevelIntermediate,
		EnergyLevel:         "high",
		FocusAreas:          []string{"legs", "back"},
		PracticeEnvironment: []string{"indoor"},
		Goals:               []string{domain.GoalFitness, domain.GoalStressRelief, domain.GoalStrength},
	}
	out := Recommend(p, nil, testCatalog())
	if len(out) > 3 {
		t.Fatalf("expected at most 3 results, got %d", len(out))
	}
	for i := 1; i < len(out); i++ {
		if out[i-1].Score < out[i].Score {
			t.Fatalf("expected non-increasing scores, got %d before %d", out[i-1].Score, out[i].Score)
		}
	}
}

func TestRecommend_TiesKeepCatalogOrder(t *testing.T) {
	catalog := []domain.Pose{
		{Name: "First", Level: domain.LevelBeginner, Intensity: domain.IntensityLow, Goals: []string{domain.GoalSleep}},
		{Name: "Second", Level: domain.LevelBeginner, Intensity: domain.IntensityLow, Goals: []string{domain.GoalSleep}},
	}
	p := domain.Profile{Goals: []string{domain.GoalSleep}}
	out := Recommend(p, nil, catalog)
	if len(out) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out))
	}
	if out[0].Score != out[1].Score {
		t.Fatalf("expected a tie, got %d vs %d", out[0].Score, out[1].Score)
	}
	if out[0].Name != "First" || out[1].Name != "Second" {
		t.Fatalf("expected catalog order on tie, got %v", names(out))
	}
}

func TestRecommend_WeightLossAdviceBoostsFitnessPoses(t *testing.T) {
	p := domain.Profile{Goals: []string{domain.GoalFitness}}
	bmi := &domain.BMIResult{Value: 31.0, Category: "Obese", Advice: "Significant weight loss recommended"}

	with := Recommend(p, bmi, testCatalog())
	without := Recommend(p, nil, testCatalog())
	if len(with) == 0 || len(without) == 0 {
		t.Fatalf("expected results in both runs")
	}
	if with[0].Score != without[0].Score+20 {
		t.Fatalf("expected +20 for weight loss advice, got %d vs %d", with[0].Score, without[0].Score)
	}
}

func TestRecommend_MalformedNumericAnswersCountAsZero(t *testing.T) {
	p := domain.Profile{
		Age:   "not a number",
		Goals: []string{domain.GoalFitness},
	}
	// Age parses as 0, so the over-60 filter must not fire.
	out := Recommend(p, nil, testCatalog())
	found := false
	for _, sp := range out {
		if sp.Intensity != domain.IntensityLow {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected non-low poses to survive, got %v", names(out))
	}
}

func names(out []ScoredPose) []string {
	var n []string
	for _, sp := range out {
		n = append(n, sp.Name)
	}
	return n
}
