package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"recall-backend/internal/models"
)

func TestDeckScoreNoReviews(t *testing.T) {
	userID := uuid.New()
	deck := testDeck(userID)

	svc := NewScoreService(newFakeDecks(deck), newFakeReviews(), &fakeScores{}, 10)

	report, err := svc.DeckScore(context.Background(), userID, deck.ID)
	if err != nil {
		t.Fatalf("DeckScore: %v", err)
	}
	if !report.InsufficientData {
		t.Errorf("deck with no reviews must report insufficient data")
	}
	if report.Score != nil || report.Grade != nil {
		t.Errorf("report = %+v, want no score and no grade", report)
	}
}

func TestDeckScoreBelowReviewFloor(t *testing.T) {
	userID := uuid.New()
	deck := testDeck(userID)

	scores := &fakeScores{score: &models.DeckScore{
		UserID: userID, DeckID: deck.ID, Window: models.WindowD30, AccuracyPct: 0.95,
	}}
	reviews := newFakeReviews()
	reviews.total = 4

	svc := NewScoreService(newFakeDecks(deck), reviews, scores, 10)

	report, err := svc.DeckScore(context.Background(), userID, deck.ID)
	if err != nil {
		t.Fatalf("DeckScore: %v", err)
	}
	if !report.InsufficientData {
		t.Errorf("4 reviews below the floor of 10 must report insufficient data")
	}
	if report.Grade != nil {
		t.Errorf("grade must be withheld below the floor, got %+v", report.Grade)
	}
	if report.Score == nil {
		t.Errorf("score itself is still reported below the floor")
	}
}

func TestDeckScoreGraded(t *testing.T) {
	userID := uuid.New()
	deck := testDeck(userID)

	scores := &fakeScores{score: &models.DeckScore{
		UserID: userID, DeckID: deck.ID, Window: models.WindowD30, AccuracyPct: 0.88,
	}}
	reviews := newFakeReviews()
	reviews.total = 42

	svc := NewScoreService(newFakeDecks(deck), reviews, scores, 10)

	report, err := svc.DeckScore(context.Background(), userID, deck.ID)
	if err != nil {
		t.Fatalf("DeckScore: %v", err)
	}
	if report.InsufficientData {
		t.Fatalf("42 reviews should be enough for a grade")
	}
	if report.Grade == nil || report.Grade.Label != "B" {
		t.Errorf("grade = %+v, want B for 88%%", report.Grade)
	}
	if report.ReviewCount != 42 {
		t.Errorf("review count = %d, want 42", report.ReviewCount)
	}
}

func TestDeckScoreUnknownDeck(t *testing.T) {
	svc := NewScoreService(newFakeDecks(), newFakeReviews(), &fakeScores{}, 10)

	_, err := svc.DeckScore(context.Background(), uuid.New(), uuid.New())
	if _, ok := err.(*NotFoundError); !ok {
		t.Errorf("got %v, want NotFoundError", err)
	}
}

func TestWindowScoreValidation(t *testing.T) {
	userID := uuid.New()
	deck := testDeck(userID)
	svc := NewScoreService(newFakeDecks(deck), newFakeReviews(), &fakeScores{}, 10)

	for _, window := range []string{"", "d14", "weekly"} {
		_, err := svc.WindowScore(context.Background(), userID, deck.ID, window)
		if _, ok := err.(*ValidationError); !ok {
			t.Errorf("window %q: got %v, want ValidationError", window, err)
		}
	}

	score, err := svc.WindowScore(context.Background(), userID, deck.ID, models.WindowD7)
	if err != nil {
		t.Fatalf("WindowScore(d7): %v", err)
	}
	if score != nil {
		t.Errorf("unseen window should return nil, got %+v", score)
	}
}
