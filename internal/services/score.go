package services

import (
	"context"

	"github.com/google/uuid"

	"recall-backend/internal/models"
)

// ScoreService reads deck mastery and applies the minimum-sample policy
// before attaching a grade.
type ScoreService struct {
	decks      DeckStore
	reviews    ReviewStore
	scores     ScoreStore
	minReviews int
}

func NewScoreService(decks DeckStore, reviews ReviewStore, scores ScoreStore, minReviews int) *ScoreService {
	return &ScoreService{
		decks:      decks,
		reviews:    reviews,
		scores:     scores,
		minReviews: minReviews,
	}
}

// DeckScore returns the rolling d30 score with its derived grade. Below
// the review-count floor the report flags insufficient data instead of
// grading; a deck with no reviews at all has a nil score.
func (s *ScoreService) DeckScore(ctx context.Context, userID, deckID uuid.UUID) (*models.DeckScoreReport, error) {
	deck, err := s.decks.GetByID(ctx, deckID)
	if err != nil {
		return nil, storageError("load deck", err)
	}
	if deck == nil || deck.UserID != userID {
		return nil, &NotFoundError{Message: "Deck not found"}
	}

	score, err := s.scores.Get(ctx, userID, deckID, models.WindowD30)
	if err != nil {
		return nil, storageError("load deck score", err)
	}

	count, err := s.reviews.CountByDeck(ctx, userID, deckID)
	if err != nil {
		return nil, storageError("count reviews", err)
	}

	report := &models.DeckScoreReport{
		Score:       score,
		ReviewCount: count,
	}
	if score == nil || count < s.minReviews {
		report.InsufficientData = true
		return report, nil
	}

	grade := ClassifyGrade(score.AccuracyPct)
	report.Grade = &grade
	return report, nil
}

// WindowScore exposes the batch-maintained d7/d90 rows.
func (s *ScoreService) WindowScore(ctx context.Context, userID, deckID uuid.UUID, window string) (*models.DeckScore, error) {
	switch window {
	case models.WindowD7, models.WindowD30, models.WindowD90:
	default:
		return nil, validationError("window", "window must be d7, d30, or d90")
	}

	score, err := s.scores.Get(ctx, userID, deckID, window)
	if err != nil {
		return nil, storageError("load deck score", err)
	}
	return score, nil
}
