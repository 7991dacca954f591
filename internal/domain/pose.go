package domain

// Pose difficulty levels.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Pose intensities.
const (
	IntensityLow      = "low"
	IntensityModerate = "moderate"
	IntensityHigh     = "high"
)

// Goal tags used by both poses and profiles.
const (
	GoalFitness      = "fitness"
	GoalStressRelief = "stress relief"
	GoalSleep        = "sleep"
	GoalFlexibility  = "flexibility"
	GoalStrength     = "strength"
	GoalBalance      = "balance"
)

// Health-condition tags. Presence in a pose's Contraindications is an
// absolute veto regardless of SafeFor.
const (
	ConditionBackPain          = "backPain"
	ConditionBoneFractures     = "boneFractures"
	ConditionHighBloodPressure = "highBloodPressure"
	ConditionDiabetes          = "diabetes"
	ConditionPregnant          = "pregnant"
)

// Point is a keypoint position normalized to [0,1] frame coordinates.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Keypoint is one skeletal landmark as produced by the external detector,
// in pixel coordinates, with a confidence score in [0,1].
type Keypoint struct {
	Name  string  `json:"name"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Score float64 `json:"score"`
}

// Pose is one immutable entry of the pose catalog.
type Pose struct {
	Name              string           `json:"name" yaml:"name"`
	Level             string           `json:"level" yaml:"level"`
	Intensity         string           `json:"intensity" yaml:"intensity"`
	Goals             []string         `json:"goals" yaml:"goals"`
	FocusAreas        []string         `json:"focus_areas,omitempty" yaml:"focusAreas"`
	Environment       []string         `json:"environment,omitempty" yaml:"environment"`
	SafeFor           []string         `json:"safe_for" yaml:"safeFor"`
	Contraindications []string         `json:"contraindications,omitempty" yaml:"contraindications"`
	Benefits          string           `json:"benefits" yaml:"benefits"`
	Instructions      string           `json:"instructions" yaml:"instructions"`
	TargetGeometry    map[string]Point `json:"target_geometry,omitempty" yaml:"targetGeometry"`
}

// HasGoal reports whether the pose carries the given goal tag.
func (p Pose) HasGoal(goal string) bool {
	for _, g := range p.Goals {
		if g == goal {
			return true
		}
	}
	return false
}

// SafeForCondition reports whether the pose is explicitly declared safe for
// the given health condition.
func (p Pose) SafeForCondition(tag string) bool {
	for _, s := range p.SafeFor {
		if s == tag {
			return true
		}
	}
	return false
}

// ContraindicatedFor reports whether the pose is explicitly flagged unsafe
// for the given health condition.
func (p Pose) ContraindicatedFor(tag string) bool {
	for _, c := range p.Contraindications {
		if c == tag {
			return true
		}
	}
	return false
}
