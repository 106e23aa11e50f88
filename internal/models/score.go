package models

import (
	"time"

	"github.com/google/uuid"
)

// Score windows. Only WindowD30 is updated at review time; the other two
// are recomputed by the background refresher.
const (
	WindowD7  = "d7"
	WindowD30 = "d30"
	WindowD90 = "d90"
)

// DeckScore is the rolling mastery signal for one user, deck and window.
type DeckScore struct {
	UserID       uuid.UUID `json:"user_id"`
	DeckID       uuid.UUID `json:"deck_id"`
	Window       string    `json:"window"`
	AccuracyPct  float64   `json:"accuracy_pct"` // EMA in [0, 1]
	StabilityAvg float64   `json:"stability_avg"`
	Lapses       int       `json:"lapses"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DeckScoreReport pairs the d30 score with the review volume behind it.
// Grade is omitted below the review-count floor.
type DeckScoreReport struct {
	Score            *DeckScore `json:"score"`
	ReviewCount      int        `json:"review_count"`
	Grade            *Grade     `json:"grade,omitempty"`
	InsufficientData bool       `json:"insufficient_data"`
}

// Grade is a display value derived from an accuracy percentage. Never
// persisted.
type Grade struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// StudyQueue is a request-scoped due/new split. The two lists never
// interleave so callers can report composition.
type StudyQueue struct {
	Due []uuid.UUID `json:"due"`
	New []uuid.UUID `json:"new"`
}

// LoadWarning tells the learner today's volume is unusually high.
// Advisory only; it never blocks queue construction.
type LoadWarning struct {
	Reason      string  `json:"reason"`
	TodayCount  int     `json:"today_count"`
	TrailingAvg float64 `json:"trailing_avg"`
	Ratio       float64 `json:"ratio"`
}

// QuizQueue is the lighter-weight quiz composition built on the study
// queue: a single ordered item list plus counts and the optional
// daily-load warning.
type QuizQueue struct {
	Items      []uuid.UUID  `json:"items"`
	DueCount   int          `json:"due_count"`
	NewCount   int          `json:"new_count"`
	TotalCount int          `json:"total_count"`
	Warning    *LoadWarning `json:"warning,omitempty"`
}
