package recommend

import (
	"testing"
)

func TestComputeBMI_NormalCategory(t *testing.T) {
	res := ComputeBMI(170, 70)
	if res == nil {
		t.Fatalf("expected a result")
	}
	if res.Value != 24.2 {
		t.Fatalf("expected value=24.2 got %v", res.Value)
	}
	if res.Category != "Normal" {
		t.Fatalf("expected category=Normal got %q", res.Category)
	}
}

func TestComputeBMI_ObeseCategory(t *testing.T) {
	res := ComputeBMI(160, 90)
	if res == nil {
		t.Fatalf("expected a result")
	}
	if res.Value != 35.2 {
		t.Fatalf("expected value=35.2 got %v", res.Value)
	}
	if res.Category != "Obese" {
		t.Fatalf("expected category=Obese got %q", res.Category)
	}
}

func TestComputeBMI_CategoriesOnRoundedValue(t *testing.T) {
	cases := []struct {
		name     string
		height   float64
		weight   float64
		category string
	}{
		{"underweight", 180, 55, "Underweight"},
		{"boundary rounds into normal", 180, 60, "Normal"},
		{"normal", 175, 70, "Normal"},
		{"overweight", 170, 80, "Overweight"},
		{"obese", 165, 85, "Obese"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := ComputeBMI(tc.height, tc.weight)
			if res == nil {
				t.Fatalf("expected a result")
			}
			if res.Category != tc.category {
				t.Fatalf("expected %q got %q (value %v)", tc.category, res.Category, res.Value)
			}
		})
	}
}

func TestComputeBMI_InvalidInputs(t *testing.T) {
	if res := ComputeBMI(0, 70); res != nil {
		t.Fatalf("expected nil for zero height, got %+v", res)
	}
	if res := ComputeBMI(170, 0); res != nil {
		t.Fatalf("expected nil for zero weight, got %+v", res)
	}
	if res := ComputeBMI(-170, 70); res != nil {
		t.Fatalf("expected nil for negative height, got %+v", res)
	}
}
