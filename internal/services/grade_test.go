package services

import "testing"

func TestClassifyGrade(t *testing.T) {
	tests := []struct {
		accuracy float64
		want     string
	}{
		{100, "A+"},
		{97, "A+"},
		{96.999, "A"},
		{93, "A"},
		{92.5, "B"},
		{85, "B"},
		{84.9, "C"},
		{70, "C"},
		{69.9, "D"},
		{60, "D"},
		{59.999, "F"},
		{42, "F"},
		{0, "F"},
	}

	for _, tc := range tests {
		if got := ClassifyGrade(tc.accuracy); got.Label != tc.want {
			t.Errorf("ClassifyGrade(%v) = %s, want %s", tc.accuracy, got.Label, tc.want)
		}
	}
}

func TestClassifyGradeAcceptsFractions(t *testing.T) {
	tests := []struct {
		accuracy float64
		want     string
	}{
		{1.0, "A+"},
		{0.97, "A+"},
		{0.95, "A"},
		{0.86, "B"},
		{0.75, "C"},
		{0.61, "D"},
		{0.3, "F"},
	}

	for _, tc := range tests {
		if got := ClassifyGrade(tc.accuracy); got.Label != tc.want {
			t.Errorf("ClassifyGrade(%v) = %s, want %s", tc.accuracy, got.Label, tc.want)
		}
	}
}

func TestClassifyGradeCarriesDisplayFields(t *testing.T) {
	g := ClassifyGrade(98)
	if g.Key != "a_plus" || g.Color == "" {
		t.Errorf("grade = %+v, want key and color populated", g)
	}
}
