package domain

// HealthConditions is the health sub-record of the questionnaire. The two
// text fields are free-form and treated as opaque.
type HealthConditions struct {
	BackPain          bool   `json:"back_pain"`
	BoneFractures     bool   `json:"bone_fractures"`
	HighBloodPressure bool   `json:"high_blood_pressure"`
	Diabetes          bool   `json:"diabetes"`
	OtherIllnesses    string `json:"other_illnesses"`
	Injuries          string `json:"injuries"`
}

// Profile holds the finalized questionnaire answers. Numeric answers stay as
// the raw strings the questionnaire collected; consumers parse them leniently
// and treat malformed values as zero.
type Profile struct {
	Age                 string           `json:"age"`
	Gender              string           `json:"gender"`
	IsPregnant          *bool            `json:"is_pregnant"`
	FitnessLevel        string           `json:"fitness_level"`
	YogaExperience      string           `json:"yoga_experience"`
	Height              string           `json:"height"`
	Weight              string           `json:"weight"`
	FlexibilityLevel    string           `json:"flexibility_level"`
	FocusAreas          []string         `json:"focus_areas"`
	StressRelief        bool             `json:"stress_relief"`
	PracticeEnvironment []string         `json:"practice_environment"`
	PracticeFrequency   string           `json:"practice_frequency"`
	PreferredTime       string           `json:"preferred_time"`
	DurationPreference  string           `json:"duration_preference"`
	EnergyLevel         string           `json:"energy_level"`
	Goals               []string         `json:"goals"`
	HealthConditions    HealthConditions `json:"health_conditions"`
}

// Pregnant reports the pregnancy flag, false when the question was never
// asked or answered.
func (p Profile) Pregnant() bool {
	return p.IsPregnant != nil && *p.IsPregnant
}

// HasGoal reports whether the profile selected the given goal.
func (p Profile) HasGoal(goal string) bool {
	for _, g := range p.Goals {
		if g == goal {
			return true
		}
	}
	return false
}

// BMIResult is derived from height and weight. Value carries one decimal
// place; Category is one of Underweight, Normal, Overweight, Obese.
type BMIResult struct {
	Value      float64 `json:"bmi"`
	Category   string  `json:"category"`
	Advice     string  `json:"advice"`
	HealthNote string  `json:"health_note"`
}
