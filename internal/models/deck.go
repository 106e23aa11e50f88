package models

import (
	"time"

	"github.com/google/uuid"
)

type Deck struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CardCount   int       `json:"card_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateDeckRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DeckStats is the composition of a deck by card learning stage,
// derived from each card's latest review event.
type DeckStats struct {
	TotalCards int `json:"total_cards"`
	New        int `json:"new"`
	Learning   int `json:"learning"`
	Review     int `json:"review"`
	Relearning int `json:"relearning"`
	DueToday   int `json:"due_today"`
}
