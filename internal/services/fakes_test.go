package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"recall-backend/internal/models"
)

// In-memory fakes for the storage contracts. Lookups mirror the pgx
// repositories: nil result means not found.

type fakeDecks struct {
	decks map[uuid.UUID]*models.Deck
}

func newFakeDecks(decks ...*models.Deck) *fakeDecks {
	m := make(map[uuid.UUID]*models.Deck)
	for _, d := range decks {
		m[d.ID] = d
	}
	return &fakeDecks{decks: m}
}

func (f *fakeDecks) GetByID(_ context.Context, id uuid.UUID) (*models.Deck, error) {
	return f.decks[id], nil
}

type fakeCards struct {
	cards  map[uuid.UUID]*models.Card
	unseen []uuid.UUID
}

func newFakeCards(cards ...*models.Card) *fakeCards {
	m := make(map[uuid.UUID]*models.Card)
	for _, c := range cards {
		m[c.ID] = c
	}
	return &fakeCards{cards: m}
}

func (f *fakeCards) GetByID(_ context.Context, id uuid.UUID) (*models.Card, error) {
	return f.cards[id], nil
}

func (f *fakeCards) UnseenCards(_ context.Context, _, _ uuid.UUID, limit int) ([]uuid.UUID, error) {
	if limit > len(f.unseen) {
		limit = len(f.unseen)
	}
	return f.unseen[:limit], nil
}

type fakeReviews struct {
	latest   map[uuid.UUID]*models.ReviewEvent // keyed by card
	due      []uuid.UUID
	appended []*models.ReviewEvent
	total    int
	daily    map[string]int // keyed by from-date, for CountBetween
}

func newFakeReviews() *fakeReviews {
	return &fakeReviews{
		latest: make(map[uuid.UUID]*models.ReviewEvent),
		daily:  make(map[string]int),
	}
}

func (f *fakeReviews) Append(_ context.Context, e *models.ReviewEvent) error {
	f.appended = append(f.appended, e)
	f.latest[e.CardID] = e
	f.total++
	return nil
}

func (f *fakeReviews) LatestByCard(_ context.Context, _, cardID uuid.UUID) (*models.ReviewEvent, error) {
	return f.latest[cardID], nil
}

func (f *fakeReviews) DueCards(_ context.Context, _, _ uuid.UUID, _ time.Time, limit int) ([]uuid.UUID, error) {
	if limit > len(f.due) {
		limit = len(f.due)
	}
	return f.due[:limit], nil
}

func (f *fakeReviews) CountByDeck(_ context.Context, _, _ uuid.UUID) (int, error) {
	return f.total, nil
}

func (f *fakeReviews) CountBetween(_ context.Context, _, _ uuid.UUID, from, _ time.Time) (int, error) {
	return f.daily[from.Format("2006-01-02")], nil
}

type appliedSample struct {
	sample    float64
	stability float64
	alpha     float64
	lapse     bool
}

type fakeScores struct {
	score   *models.DeckScore
	applied []appliedSample
}

func (f *fakeScores) ApplyReview(_ context.Context, userID, deckID uuid.UUID, sample, stability, alpha float64, lapse bool) (*models.DeckScore, error) {
	f.applied = append(f.applied, appliedSample{sample, stability, alpha, lapse})
	if f.score == nil {
		f.score = &models.DeckScore{
			UserID: userID, DeckID: deckID, Window: models.WindowD30,
			AccuracyPct: sample, StabilityAvg: stability,
		}
	} else {
		f.score.AccuracyPct = f.score.AccuracyPct*(1-alpha) + sample*alpha
		f.score.StabilityAvg = stability
	}
	if lapse {
		f.score.Lapses++
	}
	return f.score, nil
}

func (f *fakeScores) Get(_ context.Context, _, _ uuid.UUID, window string) (*models.DeckScore, error) {
	if f.score == nil || f.score.Window != window {
		return nil, nil
	}
	return f.score, nil
}

type fakeCounter struct {
	n     int
	ok    bool
	incrs int
}

func (f *fakeCounter) IncrToday(_ context.Context, _, _ uuid.UUID, _ string) error {
	f.incrs++
	return nil
}

func (f *fakeCounter) GetToday(_ context.Context, _, _ uuid.UUID, _ string) (int, bool, error) {
	return f.n, f.ok, nil
}

type fakeRefresher struct {
	enqueued int
}

func (f *fakeRefresher) Enqueue(_ context.Context, _, _ uuid.UUID) error {
	f.enqueued++
	return nil
}
