package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"recall-backend/internal/models"
	"recall-backend/internal/repository"
)

const scoreRefreshQueue = "queue:score-refresh"

// refreshJob asks for the d7/d90 score windows of one (user, deck) pair
// to be rebuilt from the raw review log.
type refreshJob struct {
	UserID uuid.UUID `json:"user_id"`
	DeckID uuid.UUID `json:"deck_id"`
}

// Pool consumes score-refresh jobs. The d30 window is folded forward on
// every review; the wider windows are cheaper to rebuild wholesale here,
// off the request path.
type Pool struct {
	redis       *redis.Client
	reviewRepo  *repository.ReviewRepo
	scoreRepo   *repository.ScoreRepo
	workerCount int
	stopChan    chan struct{}
}

func NewPool(redisClient *redis.Client, reviewRepo *repository.ReviewRepo, scoreRepo *repository.ScoreRepo, workerCount int) *Pool {
	return &Pool{
		redis:       redisClient,
		reviewRepo:  reviewRepo,
		scoreRepo:   scoreRepo,
		workerCount: workerCount,
		stopChan:    make(chan struct{}),
	}
}

// Enqueue schedules a window refresh for (user, deck).
func (p *Pool) Enqueue(ctx context.Context, userID, deckID uuid.UUID) error {
	payload, err := json.Marshal(refreshJob{UserID: userID, DeckID: deckID})
	if err != nil {
		return err
	}
	return p.redis.LPush(ctx, scoreRefreshQueue, string(payload)).Err()
}

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		go p.worker(i)
	}
	log.Printf("Started %d score refresh workers", p.workerCount)
}

func (p *Pool) Stop() {
	close(p.stopChan)
}

func (p *Pool) worker(id int) {
	for {
		select {
		case <-p.stopChan:
			log.Printf("Score worker %d shutting down", id)
			return
		default:
		}

		ctx := context.Background()

		// BLPOP with 30s timeout
		result, err := p.redis.BLPop(ctx, 30*time.Second, scoreRefreshQueue).Result()
		if err != nil {
			continue // Timeout or error, retry
		}

		if len(result) < 2 {
			continue
		}

		var job refreshJob
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			log.Printf("Score worker %d: failed to parse job: %v", id, err)
			continue
		}

		// Coalesce bursts: skip if another worker refreshed this pair
		// within the last minute.
		lockKey := fmt.Sprintf("score_lock:%s:%s", job.UserID, job.DeckID)
		locked, err := p.redis.SetNX(ctx, lockKey, "1", time.Minute).Result()
		if err != nil || !locked {
			continue
		}

		if err := p.refreshWindows(ctx, job); err != nil {
			log.Printf("Score worker %d: refresh failed for deck %s: %v", id, job.DeckID, err)
		}
	}
}

// refreshWindows rebuilds the d7 and d90 rows from the review log.
func (p *Pool) refreshWindows(ctx context.Context, job refreshJob) error {
	now := time.Now()
	windows := []struct {
		name string
		days int
	}{
		{models.WindowD7, 7},
		{models.WindowD90, 90},
	}

	for _, w := range windows {
		since := now.AddDate(0, 0, -w.days)
		count, accuracy, lapses, lastStability, err := p.reviewRepo.WindowAggregate(ctx, job.UserID, job.DeckID, since)
		if err != nil {
			return err
		}
		if count == 0 {
			continue
		}

		score := &models.DeckScore{
			UserID:       job.UserID,
			DeckID:       job.DeckID,
			Window:       w.name,
			AccuracyPct:  accuracy,
			StabilityAvg: lastStability,
			Lapses:       lapses,
		}
		if err := p.scoreRepo.ReplaceWindow(ctx, score); err != nil {
			return err
		}
	}
	return nil
}
