package recommend

import (
	"math"

	"github.com/calmasana/calmasana-backend/internal/domain"
)

// ComputeBMI derives the BMI classification from height in centimeters and
// weight in kilograms. Returns nil when either input is not positive; the
// result is recomputed from scratch whenever the inputs change.
func ComputeBMI(heightCm, weightKg float64) *domain.BMIResult {
	if heightCm <= 0 || weightKg <= 0 {
		return nil
	}
	meters := heightCm / 100
	value := math.Round(weightKg/(meters*meters)*10) / 10

	r := &domain.BMIResult{Value: value}
	switch {
	case value < 18.5:
		r.Category = "Underweight"
		r.Advice = "Weight gain recommended"
		r.HealthNote = "Being underweight may lead to nutritional deficiencies or a weakened immune system. Consider consulting a healthcare provider for guidance."
	case value < 25:
		r.Category = "Normal"
		r.Advice = "Healthy weight"
		r.HealthNote = "Your weight is within a healthy range, which is associated with lower risks of chronic diseases. Maintain a balanced diet and active lifestyle."
	case value < 30:
		r.Category = "Overweight"
		r.Advice = "Weight loss recommended"
		r.HealthNote = "Being overweight can increase the risk of conditions like heart disease and diabetes. Regular exercise and a balanced diet may help."
	default:
		r.Category = "Obese"
		r.Advice = "Significant weight loss recommended"
		r.HealthNote = "Obesity may lead to serious health issues, including heart disease, diabetes, and joint problems. Consult a healthcare provider for a personalized plan."
	}
	return r
}
