package models

import (
	"time"

	"github.com/google/uuid"
)

type Card struct {
	ID        uuid.UUID `json:"id"`
	DeckID    uuid.UUID `json:"deck_id"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	CreatedAt time.Time `json:"created_at"`
}

type NewCard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type CreateCardsRequest struct {
	Cards []NewCard `json:"cards"`
}
