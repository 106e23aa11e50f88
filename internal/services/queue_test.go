package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"recall-backend/internal/models"
)

func testDeck(userID uuid.UUID) *models.Deck {
	return &models.Deck{ID: uuid.New(), UserID: userID, Title: "Biology"}
}

func TestBuildStudyQueuePartition(t *testing.T) {
	userID := uuid.New()
	deck := testDeck(userID)

	due := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	unseen := []uuid.UUID{uuid.New(), uuid.New()}

	reviews := newFakeReviews()
	reviews.due = due
	cards := newFakeCards()
	cards.unseen = unseen

	svc := NewQueueService(newFakeDecks(deck), cards, reviews, nil, 200)

	queue, err := svc.BuildStudyQueue(context.Background(), userID, deck.ID, 10)
	if err != nil {
		t.Fatalf("BuildStudyQueue: %v", err)
	}

	if len(queue.Due) != 3 {
		t.Errorf("due = %d cards, want 3", len(queue.Due))
	}
	if len(queue.New) != 2 {
		t.Errorf("new = %d cards, want 2", len(queue.New))
	}
	for i, id := range due {
		if queue.Due[i] != id {
			t.Errorf("due[%d] = %v, want %v (order must be preserved)", i, queue.Due[i], id)
		}
	}
}

func TestBuildStudyQueueDueFillsLimitFirst(t *testing.T) {
	userID := uuid.New()
	deck := testDeck(userID)

	reviews := newFakeReviews()
	for i := 0; i < 5; i++ {
		reviews.due = append(reviews.due, uuid.New())
	}
	cards := newFakeCards()
	cards.unseen = []uuid.UUID{uuid.New(), uuid.New()}

	svc := NewQueueService(newFakeDecks(deck), cards, reviews, nil, 200)

	queue, err := svc.BuildStudyQueue(context.Background(), userID, deck.ID, 5)
	if err != nil {
		t.Fatalf("BuildStudyQueue: %v", err)
	}

	if len(queue.Due) != 5 || len(queue.New) != 0 {
		t.Errorf("due=%d new=%d, want due to fill the limit with no new cards",
			len(queue.Due), len(queue.New))
	}
}

func TestBuildStudyQueueEmptyDeck(t *testing.T) {
	userID := uuid.New()
	deck := testDeck(userID)

	svc := NewQueueService(newFakeDecks(deck), newFakeCards(), newFakeReviews(), nil, 200)

	queue, err := svc.BuildStudyQueue(context.Background(), userID, deck.ID, 10)
	if err != nil {
		t.Fatalf("BuildStudyQueue: %v", err)
	}

	if queue.Due == nil || queue.New == nil {
		t.Fatalf("empty deck must yield empty lists, not nil")
	}
	if len(queue.Due) != 0 || len(queue.New) != 0 {
		t.Errorf("due=%d new=%d, want both empty", len(queue.Due), len(queue.New))
	}
}

func TestBuildStudyQueueRejectsBadLimit(t *testing.T) {
	userID := uuid.New()
	deck := testDeck(userID)
	svc := NewQueueService(newFakeDecks(deck), newFakeCards(), newFakeReviews(), nil, 200)

	for _, limit := range []int{0, -5} {
		_, err := svc.BuildStudyQueue(context.Background(), userID, deck.ID, limit)
		if _, ok := err.(*ValidationError); !ok {
			t.Errorf("limit %d: got %v, want ValidationError", limit, err)
		}
	}
}

func TestBuildStudyQueueClampsLimit(t *testing.T) {
	userID := uuid.New()
	deck := testDeck(userID)

	cards := newFakeCards()
	for i := 0; i < 50; i++ {
		cards.unseen = append(cards.unseen, uuid.New())
	}

	svc := NewQueueService(newFakeDecks(deck), cards, newFakeReviews(), nil, 20)

	queue, err := svc.BuildStudyQueue(context.Background(), userID, deck.ID, 1000)
	if err != nil {
		t.Fatalf("BuildStudyQueue: %v", err)
	}
	if got := len(queue.Due) + len(queue.New); got != 20 {
		t.Errorf("queue size = %d, want clamped to 20", got)
	}
}

func TestBuildStudyQueueUnknownDeck(t *testing.T) {
	userID := uuid.New()
	svc := NewQueueService(newFakeDecks(), newFakeCards(), newFakeReviews(), nil, 200)

	_, err := svc.BuildStudyQueue(context.Background(), userID, uuid.New(), 10)
	if _, ok := err.(*NotFoundError); !ok {
		t.Errorf("got %v, want NotFoundError", err)
	}
}

func TestBuildStudyQueueForeignDeck(t *testing.T) {
	deck := testDeck(uuid.New())
	svc := NewQueueService(newFakeDecks(deck), newFakeCards(), newFakeReviews(), nil, 200)

	_, err := svc.BuildStudyQueue(context.Background(), uuid.New(), deck.ID, 10)
	if _, ok := err.(*NotFoundError); !ok {
		t.Errorf("got %v, want NotFoundError for another user's deck", err)
	}
}

func TestBuildQuizQueueComposition(t *testing.T) {
	userID := uuid.New()
	deck := testDeck(userID)

	reviews := newFakeReviews()
	reviews.due = []uuid.UUID{uuid.New(), uuid.New()}
	cards := newFakeCards()
	cards.unseen = []uuid.UUID{uuid.New()}

	svc := NewQueueService(newFakeDecks(deck), cards, reviews, nil, 200)

	quiz, err := svc.BuildQuizQueue(context.Background(), userID, deck.ID, 10)
	if err != nil {
		t.Fatalf("BuildQuizQueue: %v", err)
	}

	if quiz.DueCount != 2 || quiz.NewCount != 1 || quiz.TotalCount != 3 {
		t.Errorf("counts due=%d new=%d total=%d, want 2/1/3",
			quiz.DueCount, quiz.NewCount, quiz.TotalCount)
	}
	if len(quiz.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(quiz.Items))
	}
	// Due items lead, never interleaved with new ones.
	if quiz.Items[0] != reviews.due[0] || quiz.Items[1] != reviews.due[1] || quiz.Items[2] != cards.unseen[0] {
		t.Errorf("items not in due-then-new order: %v", quiz.Items)
	}
}

// brokenCountReviews fails the queries the load monitor depends on while
// leaving the queue-building queries intact.
type brokenCountReviews struct {
	*fakeReviews
}

func (b *brokenCountReviews) CountBetween(_ context.Context, _, _ uuid.UUID, _, _ time.Time) (int, error) {
	return 0, errors.New("connection reset")
}

func TestBuildQuizQueueSurvivesLoadCheckFailure(t *testing.T) {
	userID := uuid.New()
	deck := testDeck(userID)

	reviews := newFakeReviews()
	reviews.due = []uuid.UUID{uuid.New()}
	broken := &brokenCountReviews{fakeReviews: reviews}

	load := NewLoadService(broken, nil, 2.0, 10)
	svc := NewQueueService(newFakeDecks(deck), newFakeCards(), broken, load, 200)

	quiz, err := svc.BuildQuizQueue(context.Background(), userID, deck.ID, 10)
	if err != nil {
		t.Fatalf("a failed load check must not block the queue: %v", err)
	}
	if quiz == nil || len(quiz.Items) != 1 {
		t.Fatalf("quiz = %+v, want the due card despite the load failure", quiz)
	}
	if quiz.Warning != nil {
		t.Errorf("warning = %+v, want none when the check cannot run", quiz.Warning)
	}
}
