package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"recall-backend/internal/models"
)

type CardRepo struct {
	pool *pgxpool.Pool
}

func NewCardRepo(pool *pgxpool.Pool) *CardRepo {
	return &CardRepo{pool: pool}
}

func (r *CardRepo) CreateCards(ctx context.Context, deckID uuid.UUID, cards []models.Card) error {
	for i := range cards {
		cards[i].ID = uuid.New()
		cards[i].DeckID = deckID

		err := r.pool.QueryRow(ctx,
			`INSERT INTO cards (id, deck_id, front, back) VALUES ($1, $2, $3, $4) RETURNING created_at`,
			cards[i].ID, deckID, cards[i].Front, cards[i].Back,
		).Scan(&cards[i].CreatedAt)
		if err != nil {
			return err
		}
	}

	_, err := r.pool.Exec(ctx,
		"UPDATE decks SET card_count = (SELECT COUNT(*) FROM cards WHERE deck_id = $1) WHERE id = $1",
		deckID,
	)
	return err
}

func (r *CardRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Card, error) {
	c := &models.Card{}
	query := `SELECT id, deck_id, front, back, created_at FROM cards WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.DeckID, &c.Front, &c.Back, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CardRepo) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]models.Card, error) {
	query := `SELECT id, deck_id, front, back, created_at
		FROM cards WHERE deck_id = $1 ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, deckID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		c := models.Card{}
		if err := rows.Scan(&c.ID, &c.DeckID, &c.Front, &c.Back, &c.CreatedAt); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// UnseenCards returns cards in the deck with no review event at all for
// this user, in stable creation order.
func (r *CardRepo) UnseenCards(ctx context.Context, userID, deckID uuid.UUID, limit int) ([]uuid.UUID, error) {
	query := `
		SELECT c.id
		FROM cards c
		WHERE c.deck_id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM review_events e
			WHERE e.card_id = c.id AND e.user_id = $2
		  )
		ORDER BY c.created_at ASC, c.id ASC
		LIMIT $3`

	rows, err := r.pool.Query(ctx, query, deckID, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *CardRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM cards WHERE id = $1", id)
	return err
}
