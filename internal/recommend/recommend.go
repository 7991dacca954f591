package recommend

import (
	"sort"
	"strconv"
	"strings"

	"github.com/calmasana/calmasana-backend/internal/domain"
)

// maxResults caps the shortlist handed back to the caller.
const maxResults = 3

// ScoredPose is a catalog pose plus its ranking score; it exists only inside
// and at the boundary of this pipeline.
type ScoredPose struct {
	domain.Pose
	Score int `json:"score"`
}

// rule is one eligibility predicate. Rules are independent: each one only
// ever shrinks the candidate set.
type rule struct {
	name string
	keep func(domain.Pose) bool
}

// Recommend filters the catalog against the profile and ranks the survivors,
// highest score first, catalog order on ties. An empty result is a valid
// outcome, not an error.
func Recommend(p domain.Profile, bmi *domain.BMIResult, catalog []domain.Pose) []ScoredPose {
	eligible := applyRules(catalog, eligibilityRules(p))

	scored := make([]ScoredPose, 0, len(eligible))
	for _, pose := range eligible {
		scored = append(scored, ScoredPose{Pose: pose, Score: score(p, bmi, pose)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > maxResults {
		scored = scored[:maxResults]
	}
	return scored
}

func applyRules(candidates []domain.Pose, rules []rule) []domain.Pose {
	out := candidates
	for _, r := range rules {
		kept := make([]domain.Pose, 0, len(out))
		for _, pose := range out {
			if r.keep(pose) {
				kept = append(kept, pose)
			}
		}
		out = kept
	}
	return out
}

// eligibilityRules builds the predicate pipeline in its fixed order. A rule
// is only emitted when the profile answer that drives it is present, so a
// blank answer skips the rule instead of failing every pose.
func eligibilityRules(p domain.Profile) []rule {
	var rules []rule
	hc := p.HealthConditions

	if atoi(p.Age) > 60 {
		rules = append(rules, rule{"age over 60", func(pose domain.Pose) bool {
			return pose.Intensity == domain.IntensityLow
		}})
	}
	if p.Pregnant() {
		rules = append(rules, rule{"pregnant", func(pose domain.Pose) bool {
			return pose.SafeForCondition(domain.ConditionPregnant)
		}})
	}
	if hc.BackPain {
		rules = append(rules, rule{"back pain", func(pose domain.Pose) bool {
			return pose.SafeForCondition(domain.ConditionBackPain)
		}})
	}
	if hc.BoneFractures {
		rules = append(rules, rule{"bone fractures", func(pose domain.Pose) bool {
			return pose.Level == domain.LevelBeginner && !pose.ContraindicatedFor(domain.ConditionBoneFractures)
		}})
	}
	if hc.HighBloodPressure {
		rules = append(rules, rule{"high blood pressure", func(pose domain.Pose) bool {
			return !pose.ContraindicatedFor(domain.ConditionHighBloodPressure)
		}})
	}
	if hc.Diabetes {
		rules = append(rules, rule{"diabetes", func(pose domain.Pose) bool {
			return pose.SafeForCondition(domain.ConditionDiabetes)
		}})
	}
	if strings.TrimSpace(hc.OtherIllnesses) != "" || strings.TrimSpace(hc.Injuries) != "" {
		rules = append(rules, rule{"other illnesses or injuries", func(pose domain.Pose) bool {
			return pose.Intensity != domain.IntensityHigh
		}})
	}
	switch p.FitnessLevel {
	case domain.LevelBeginner:
		rules = append(rules, rule{"beginner fitness", func(pose domain.Pose) bool {
			return pose.Level == domain.LevelBeginner
		}})
	case domain.LevelIntermediate:
		rules = append(rules, rule{"intermediate fitness", func(pose domain.Pose) bool {
			return pose.Level != domain.LevelAdvanced
		}})
	}
	if p.FlexibilityLevel == domain.LevelBeginner {
		rules = append(rules, rule{"beginner flexibility", func(pose domain.Pose) bool {
			return pose.Level == domain.LevelBeginner
		}})
	}
	if p.PracticeFrequency == "1-2 times/week" {
		rules = append(rules, rule{"infrequent practice", func(pose domain.Pose) bool {
			return pose.Intensity == domain.IntensityLow
		}})
	}
	switch p.PreferredTime {
	case "morning":
		rules = append(rules, rule{"morning practice", func(pose domain.Pose) bool {
			return pose.Intensity != domain.IntensityLow
		}})
	case "evening":
		rules = append(rules, rule{"evening practice", func(pose domain.Pose) bool {
			return pose.HasGoal(domain.GoalStressRelief)
		}})
	}
	switch p.DurationPreference {
	case "15 min":
		rules = append(rules, rule{"short sessions", func(pose domain.Pose) bool {
			return pose.Intensity == domain.IntensityLow
		}})
	case "60 min":
		rules = append(rules, rule{"long sessions", func(pose domain.Pose) bool {
			return pose.Intensity != domain.IntensityLow
		}})
	}
	switch p.EnergyLevel {
	case "low":
		rules = append(rules, rule{"low energy", func(pose domain.Pose) bool {
			return pose.HasGoal(domain.GoalStressRelief)
		}})
	case "high":
		rules = append(rules, rule{"high energy", func(pose domain.Pose) bool {
			return pose.HasGoal(domain.GoalFitness) || pose.HasGoal(domain.GoalStrength)
		}})
	}
	if len(p.FocusAreas) > 0 {
		rules = append(rules, rule{"focus areas", func(pose domain.Pose) bool {
			return intersects(pose.FocusAreas, p.FocusAreas)
		}})
	}
	if len(p.PracticeEnvironment) > 0 {
		rules = append(rules, rule{"practice environment", func(pose domain.Pose) bool {
			return intersects(pose.Environment, p.PracticeEnvironment)
		}})
	}
	// Goal overlap is always required.
	rules = append(rules, rule{"goals", func(pose domain.Pose) bool {
		return intersects(pose.Goals, p.Goals)
	}})

	return rules
}

// score accumulates the additive ranking signals for one eligible pose.
func score(p domain.Profile, bmi *domain.BMIResult, pose domain.Pose) int {
	total := 0
	hc := p.HealthConditions
	age := atoi(p.Age)

	total += 30 * sharedCount(pose.Goals, p.Goals)
	total += 20 * sharedCount(pose.FocusAreas, p.FocusAreas)
	total += 10 * sharedCount(pose.Environment, p.PracticeEnvironment)

	if bmi != nil {
		advice := strings.ToLower(bmi.Advice)
		if strings.Contains(advice, "weight loss") && pose.HasGoal(domain.GoalFitness) {
			total += 20
		} else if strings.Contains(advice, "healthy weight") && pose.Intensity == domain.IntensityModerate {
			total += 10
		}
	}

	if age < 30 && pose.Intensity == domain.IntensityHigh {
		total += 10
	}
	if age > 50 && pose.Intensity == domain.IntensityLow {
		total += 15
	}

	switch {
	case p.FitnessLevel == domain.LevelBeginner && pose.Level == domain.LevelBeginner:
		total += 20
	case p.FitnessLevel == domain.LevelIntermediate && pose.Level == domain.LevelIntermediate:
		total += 15
	case p.FitnessLevel == domain.LevelAdvanced && pose.Level == domain.LevelIntermediate:
		total += 10
	}

	years := atoi(p.YogaExperience)
	switch {
	case years < 1 && pose.Level == domain.LevelBeginner:
		total += 20
	case years >= 1 && years < 3 && pose.Level != domain.LevelAdvanced:
		total += 15
	case years >= 3 && pose.Level == domain.LevelIntermediate:
		total += 10
	}

	if p.FlexibilityLevel == domain.LevelBeginner && pose.Level == domain.LevelBeginner {
		total += 15
	}
	if p.FlexibilityLevel == domain.LevelIntermediate && pose.Level != domain.LevelAdvanced {
		total += 10
	}

	if p.PracticeFrequency == "1-2 times/week" && pose.Intensity == domain.IntensityLow {
		total += 15
	}

	if p.PreferredTime == "morning" && (pose.HasGoal(domain.GoalFitness) || pose.HasGoal(domain.GoalStrength)) {
		total += 15
	}
	if p.PreferredTime == "evening" && pose.HasGoal(domain.GoalStressRelief) {
		total += 15
	}

	if p.DurationPreference == "15 min" && pose.Intensity == domain.IntensityLow {
		total += 10
	}
	if p.DurationPreference == "60 min" && pose.Intensity == domain.IntensityHigh {
		total += 10
	}

	if p.EnergyLevel == "low" && pose.HasGoal(domain.GoalStressRelief) {
		total += 15
	}
	if p.EnergyLevel == "high" && (pose.HasGoal(domain.GoalFitness) || pose.HasGoal(domain.GoalStrength)) {
		total += 15
	}

	if hc.BackPain && pose.SafeForCondition(domain.ConditionBackPain) {
		total += 15
	}
	if p.Pregnant() && pose.SafeForCondition(domain.ConditionPregnant) {
		total += 15
	}
	if hc.HighBloodPressure && !pose.ContraindicatedFor(domain.ConditionHighBloodPressure) {
		total += 10
	}
	if hc.Diabetes && pose.SafeForCondition(domain.ConditionDiabetes) {
		total += 10
	}

	return total
}

// atoi parses questionnaire numerics leniently: malformed input counts as 0.
func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func sharedCount(a, b []string) int {
	n := 0
	for _, x := range a {
		for _, y := range b {
			if x == y {
				n++
				break
			}
		}
	}
	return n
}
