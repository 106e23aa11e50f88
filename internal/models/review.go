package models

import (
	"time"

	"github.com/google/uuid"

	"recall-backend/internal/srs"
)

// ReviewEvent is one row of the append-only review log. Each event
// carries the full memory snapshot produced by the rating, so the latest
// event per (user, card) is sufficient to resume scheduling.
type ReviewEvent struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	CardID     uuid.UUID       `json:"card_id"`
	DeckID     uuid.UUID       `json:"deck_id"`
	Rating     srs.Rating      `json:"rating"`
	ReviewedAt time.Time       `json:"reviewed_at"`
	Memory     srs.MemoryState `json:"memory"`
}

type ReviewRequest struct {
	CardID string `json:"card_id"`
	Rating string `json:"rating"` // again | hard | good | easy
}

type ReviewResult struct {
	Success      bool      `json:"success"`
	NextDue      time.Time `json:"next_due"`
	IntervalDays int       `json:"interval_days"`
	Stability    float64   `json:"stability"`
}
