package services

import "recall-backend/internal/models"

// gradeBand is one row of the grading scale, highest threshold first.
type gradeBand struct {
	min   float64 // inclusive lower bound, percent
	key   string
	label string
	color string
}

var gradeBands = []gradeBand{
	{97, "a_plus", "A+", "#16a34a"},
	{93, "a", "A", "#22c55e"},
	{85, "b", "B", "#84cc16"},
	{70, "c", "C", "#eab308"},
	{60, "d", "D", "#f97316"},
}

var gradeF = models.Grade{Key: "f", Label: "F", Color: "#ef4444"}

// ClassifyGrade maps an accuracy value to a letter grade. It accepts
// either a 0..1 fraction or a 0..100 percentage and is total: every
// finite in-range value lands on exactly one grade, with anything under
// the lowest threshold mapping to F. The minimum-sample policy lives in
// the caller, not here.
func ClassifyGrade(accuracy float64) models.Grade {
	pct := accuracy
	if pct <= 1.0 {
		pct *= 100
	}
	for _, band := range gradeBands {
		if pct >= band.min {
			return models.Grade{Key: band.key, Label: band.label, Color: band.color}
		}
	}
	return gradeF
}
