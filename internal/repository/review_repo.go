package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"recall-backend/internal/models"
	"recall-backend/internal/srs"
)

type ReviewRepo struct {
	pool *pgxpool.Pool
}

func NewReviewRepo(pool *pgxpool.Pool) *ReviewRepo {
	return &ReviewRepo{pool: pool}
}

// Append inserts a review event. Events are never updated or deleted
// except by deck/card cascade; the log is the single source of truth for
// a card's memory state.
func (r *ReviewRepo) Append(ctx context.Context, e *models.ReviewEvent) error {
	e.ID = uuid.New()
	query := `INSERT INTO review_events
		(id, user_id, card_id, deck_id, rating, reviewed_at, scheduled_at,
		 interval_days, elapsed_days, stability, difficulty, reps, lapses, state, learning_steps)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.pool.Exec(ctx, query,
		e.ID, e.UserID, e.CardID, e.DeckID, e.Rating.String(), e.ReviewedAt,
		e.Memory.Due, e.Memory.ScheduledDays, e.Memory.ElapsedDays,
		e.Memory.Stability, e.Memory.Difficulty, e.Memory.Reps, e.Memory.Lapses,
		e.Memory.State.String(), e.Memory.LearningSteps,
	)
	return err
}

// LatestByCard returns the most recent event for (user, card), or nil if
// the card has never been reviewed.
func (r *ReviewRepo) LatestByCard(ctx context.Context, userID, cardID uuid.UUID) (*models.ReviewEvent, error) {
	query := `SELECT id, user_id, card_id, deck_id, rating, reviewed_at, scheduled_at,
			interval_days, elapsed_days, stability, difficulty, reps, lapses, state, learning_steps
		FROM review_events
		WHERE user_id = $1 AND card_id = $2
		ORDER BY reviewed_at DESC
		LIMIT 1`

	e := &models.ReviewEvent{}
	var rating, state string
	err := r.pool.QueryRow(ctx, query, userID, cardID).Scan(
		&e.ID, &e.UserID, &e.CardID, &e.DeckID, &rating, &e.ReviewedAt,
		&e.Memory.Due, &e.Memory.ScheduledDays, &e.Memory.ElapsedDays,
		&e.Memory.Stability, &e.Memory.Difficulty, &e.Memory.Reps, &e.Memory.Lapses,
		&state, &e.Memory.LearningSteps,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if e.Rating, err = srs.ParseRating(rating); err != nil {
		return nil, err
	}
	if e.Memory.State, err = srs.ParseCardState(state); err != nil {
		return nil, err
	}
	e.Memory.LastReview = &e.ReviewedAt
	return e, nil
}

// DueCards returns card ids in the deck whose latest event is due at or
// before now, most overdue first, up to limit.
func (r *ReviewRepo) DueCards(ctx context.Context, userID, deckID uuid.UUID, now time.Time, limit int) ([]uuid.UUID, error) {
	query := `
		SELECT card_id FROM (
			SELECT DISTINCT ON (card_id) card_id, scheduled_at
			FROM review_events
			WHERE user_id = $1 AND deck_id = $2
			ORDER BY card_id, reviewed_at DESC
		) latest
		WHERE scheduled_at <= $3
		ORDER BY scheduled_at ASC
		LIMIT $4`

	rows, err := r.pool.Query(ctx, query, userID, deckID, now, limit)
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

// CountByDeck returns the total number of review events for (user, deck).
func (r *ReviewRepo) CountByDeck(ctx context.Context, userID, deckID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM review_events WHERE user_id = $1 AND deck_id = $2",
		userID, deckID,
	).Scan(&n)
	return n, err
}

// CountBetween counts events with from <= reviewed_at < to.
func (r *ReviewRepo) CountBetween(ctx context.Context, userID, deckID uuid.UUID, from, to time.Time) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM review_events
		 WHERE user_id = $1 AND deck_id = $2 AND reviewed_at >= $3 AND reviewed_at < $4`,
		userID, deckID, from, to,
	).Scan(&n)
	return n, err
}

// WindowAggregate recomputes a score window from the raw log: mean
// accuracy sample, lapse count and last stability since the cutoff.
// Used by the background refresher for d7/d90.
func (r *ReviewRepo) WindowAggregate(ctx context.Context, userID, deckID uuid.UUID, since time.Time) (count int, accuracy float64, lapses int, lastStability float64, err error) {
	err = r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
			COALESCE(AVG(CASE rating WHEN 'again' THEN 0.0 WHEN 'hard' THEN 0.6 ELSE 1.0 END), 0),
			COUNT(*) FILTER (WHERE rating = 'again')
		FROM review_events
		WHERE user_id = $1 AND deck_id = $2 AND reviewed_at >= $3`,
		userID, deckID, since,
	).Scan(&count, &accuracy, &lapses)
	if err != nil || count == 0 {
		return count, accuracy, lapses, 0, err
	}

	err = r.pool.QueryRow(ctx, `
		SELECT stability FROM review_events
		WHERE user_id = $1 AND deck_id = $2 AND reviewed_at >= $3
		ORDER BY reviewed_at DESC LIMIT 1`,
		userID, deckID, since,
	).Scan(&lastStability)
	return count, accuracy, lapses, lastStability, err
}
