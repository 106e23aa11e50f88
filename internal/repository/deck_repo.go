package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"recall-backend/internal/models"
)

type DeckRepo struct {
	pool *pgxpool.Pool
}

func NewDeckRepo(pool *pgxpool.Pool) *DeckRepo {
	return &DeckRepo{pool: pool}
}

func (r *DeckRepo) Create(ctx context.Context, d *models.Deck) error {
	d.ID = uuid.New()
	query := `INSERT INTO decks (id, user_id, title, description, card_count)
		VALUES ($1, $2, $3, $4, $5) RETURNING created_at`

	return r.pool.QueryRow(ctx, query, d.ID, d.UserID, d.Title, d.Description, d.CardCount).Scan(&d.CreatedAt)
}

func (r *DeckRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Deck, error) {
	d := &models.Deck{}
	query := `SELECT id, user_id, title, description, card_count, created_at FROM decks WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.UserID, &d.Title, &d.Description, &d.CardCount, &d.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DeckRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Deck, error) {
	query := `SELECT id, user_id, title, description, card_count, created_at
		FROM decks WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decks []*models.Deck
	for rows.Next() {
		d := &models.Deck{}
		err := rows.Scan(&d.ID, &d.UserID, &d.Title, &d.Description, &d.CardCount, &d.CreatedAt)
		if err != nil {
			return nil, err
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

// Delete removes the deck; cards, review events and deck scores cascade.
func (r *DeckRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM decks WHERE id = $1", id)
	return err
}

// Stats counts cards by learning stage, using each card's latest review
// event for this user. Cards with no events count as new.
func (r *DeckRepo) Stats(ctx context.Context, userID, deckID uuid.UUID, now time.Time) (*models.DeckStats, error) {
	stats := &models.DeckStats{}

	query := `
		WITH latest AS (
			SELECT DISTINCT ON (card_id) card_id, state, scheduled_at
			FROM review_events
			WHERE user_id = $1 AND deck_id = $2
			ORDER BY card_id, reviewed_at DESC
		)
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE l.card_id IS NULL),
			COUNT(*) FILTER (WHERE l.state = 'learning'),
			COUNT(*) FILTER (WHERE l.state = 'review'),
			COUNT(*) FILTER (WHERE l.state = 'relearning'),
			COUNT(*) FILTER (WHERE l.scheduled_at <= $3)
		FROM cards c
		LEFT JOIN latest l ON l.card_id = c.id
		WHERE c.deck_id = $2`

	err := r.pool.QueryRow(ctx, query, userID, deckID, now).Scan(
		&stats.TotalCards, &stats.New, &stats.Learning, &stats.Review, &stats.Relearning, &stats.DueToday,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
