package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"recall-backend/internal/models"
)

type ScoreRepo struct {
	pool *pgxpool.Pool
}

func NewScoreRepo(pool *pgxpool.Pool) *ScoreRepo {
	return &ScoreRepo{pool: pool}
}

// ApplyReview folds one review sample into the d30 score as a single
// atomic upsert. The EMA is computed server-side in the conflict branch,
// so concurrent reviews of the same deck never lose updates to a
// read-modify-write race. A missing row is seeded with the raw sample.
func (r *ScoreRepo) ApplyReview(ctx context.Context, userID, deckID uuid.UUID, sample, stability, alpha float64, lapse bool) (*models.DeckScore, error) {
	lapseInc := 0
	if lapse {
		lapseInc = 1
	}

	query := `
		INSERT INTO deck_scores (user_id, deck_id, win, accuracy_pct, stability_avg, lapses, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (user_id, deck_id, win) DO UPDATE SET
			accuracy_pct  = deck_scores.accuracy_pct * (1 - $7) + $4 * $7,
			stability_avg = $5,
			lapses        = deck_scores.lapses + $6,
			updated_at    = NOW()
		RETURNING user_id, deck_id, win, accuracy_pct, stability_avg, lapses, updated_at`

	s := &models.DeckScore{}
	err := r.pool.QueryRow(ctx, query,
		userID, deckID, models.WindowD30, sample, stability, lapseInc, alpha,
	).Scan(&s.UserID, &s.DeckID, &s.Window, &s.AccuracyPct, &s.StabilityAvg, &s.Lapses, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the score row for (user, deck, window), or nil if the deck
// has never been reviewed.
func (r *ScoreRepo) Get(ctx context.Context, userID, deckID uuid.UUID, window string) (*models.DeckScore, error) {
	query := `SELECT user_id, deck_id, win, accuracy_pct, stability_avg, lapses, updated_at
		FROM deck_scores WHERE user_id = $1 AND deck_id = $2 AND win = $3`

	s := &models.DeckScore{}
	err := r.pool.QueryRow(ctx, query, userID, deckID, window).Scan(
		&s.UserID, &s.DeckID, &s.Window, &s.AccuracyPct, &s.StabilityAvg, &s.Lapses, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ReplaceWindow overwrites a recomputed window row. Used by the
// background refresher, which rebuilds d7/d90 from the raw log rather
// than folding samples incrementally.
func (r *ScoreRepo) ReplaceWindow(ctx context.Context, s *models.DeckScore) error {
	query := `
		INSERT INTO deck_scores (user_id, deck_id, win, accuracy_pct, stability_avg, lapses, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (user_id, deck_id, win) DO UPDATE SET
			accuracy_pct  = $4,
			stability_avg = $5,
			lapses        = $6,
			updated_at    = NOW()`

	_, err := r.pool.Exec(ctx, query,
		s.UserID, s.DeckID, s.Window, s.AccuracyPct, s.StabilityAvg, s.Lapses,
	)
	return err
}
