package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"recall-backend/internal/models"
)

// QueueService assembles bounded study and quiz queues: overdue cards
// first (most overdue leading), then never-seen cards in creation order.
type QueueService struct {
	decks    DeckStore
	cards    CardStore
	reviews  ReviewStore
	load     *LoadService
	maxLimit int
	now      func() time.Time
}

func NewQueueService(decks DeckStore, cards CardStore, reviews ReviewStore, load *LoadService, maxLimit int) *QueueService {
	return &QueueService{
		decks:    decks,
		cards:    cards,
		reviews:  reviews,
		load:     load,
		maxLimit: maxLimit,
		now:      time.Now,
	}
}

// BuildStudyQueue returns up to limit card ids split into due and new.
// The partition is total and non-overlapping: a card with any review
// history can only appear in due, a card with none only in new. An empty
// deck yields two empty lists.
func (s *QueueService) BuildStudyQueue(ctx context.Context, userID, deckID uuid.UUID, limit int) (*models.StudyQueue, error) {
	if limit <= 0 {
		return nil, validationError("limit", "limit must be greater than 0")
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	deck, err := s.decks.GetByID(ctx, deckID)
	if err != nil {
		return nil, storageError("load deck", err)
	}
	if deck == nil || deck.UserID != userID {
		return nil, &NotFoundError{Message: "Deck not found"}
	}

	now := s.now()

	due, err := s.reviews.DueCards(ctx, userID, deckID, now, limit)
	if err != nil {
		return nil, storageError("query due cards", err)
	}

	queue := &models.StudyQueue{
		Due: due,
		New: []uuid.UUID{},
	}
	if queue.Due == nil {
		queue.Due = []uuid.UUID{}
	}

	if remaining := limit - len(due); remaining > 0 {
		fresh, err := s.cards.UnseenCards(ctx, userID, deckID, remaining)
		if err != nil {
			return nil, storageError("query unseen cards", err)
		}
		if fresh != nil {
			queue.New = fresh
		}
	}

	return queue, nil
}

// BuildQuizQueue composes the study queue into a single item list with
// presentation counts and the daily-load warning. It has no scheduling
// logic of its own.
func (s *QueueService) BuildQuizQueue(ctx context.Context, userID, deckID uuid.UUID, limit int) (*models.QuizQueue, error) {
	queue, err := s.BuildStudyQueue(ctx, userID, deckID, limit)
	if err != nil {
		return nil, err
	}

	items := make([]uuid.UUID, 0, len(queue.Due)+len(queue.New))
	items = append(items, queue.Due...)
	items = append(items, queue.New...)

	quiz := &models.QuizQueue{
		Items:      items,
		DueCount:   len(queue.Due),
		NewCount:   len(queue.New),
		TotalCount: len(items),
	}

	if s.load != nil {
		warning, err := s.load.DailyLoadWarning(ctx, userID, deckID)
		if err != nil {
			// Advisory only; a failed load check never blocks the queue.
			log.Printf("quiz queue: daily load check failed: %v", err)
			return quiz, nil
		}
		quiz.Warning = warning
	}

	return quiz, nil
}
