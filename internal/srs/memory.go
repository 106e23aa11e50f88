package srs

import "time"

// MemoryState is the scheduling state of one card for one learner.
// It is always materialized as the snapshot carried by the card's most
// recent review event; a card with no events is implicitly NewMemoryState.
type MemoryState struct {
	Stability     float64    `json:"stability"`      // expected days until recall decays to the reference threshold
	Difficulty    float64    `json:"difficulty"`     // intrinsic hardness, clamped to [1, 10]
	ElapsedDays   int        `json:"elapsed_days"`   // days since the previous review, at review time
	ScheduledDays int        `json:"scheduled_days"` // interval that was scheduled by this review
	Reps          int        `json:"reps"`
	Lapses        int        `json:"lapses"`
	State         CardState  `json:"state"`
	LearningSteps int        `json:"learning_steps"` // progress within sub-day learning/relearning steps
	Due           time.Time  `json:"due"`
	LastReview    *time.Time `json:"last_review,omitempty"`
}

// NewMemoryState returns the implicit state of a never-reviewed card:
// due immediately, zero counters, no stability or difficulty yet.
func NewMemoryState(now time.Time) MemoryState {
	return MemoryState{State: StateNew, Due: now}
}
