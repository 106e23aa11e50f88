package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recall-backend/internal/cache"
	"recall-backend/internal/config"
	"recall-backend/internal/database"
	"recall-backend/internal/handlers"
	"recall-backend/internal/middleware"
	"recall-backend/internal/repository"
	"recall-backend/internal/router"
	"recall-backend/internal/services"
	"recall-backend/internal/srs"
	"recall-backend/internal/worker"
)

func main() {
	log.Println("🚀 Starting Recall Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Client ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	deckRepo := repository.NewDeckRepo(pool)
	cardRepo := repository.NewCardRepo(pool)
	reviewRepo := repository.NewReviewRepo(pool)
	scoreRepo := repository.NewScoreRepo(pool)

	// ──── Step 5: Initialize Scheduling Engine ────
	params := srs.DefaultParams()
	params.DesiredRetention = cfg.DesiredRetention
	params.MaximumInterval = cfg.MaxIntervalDays
	engine, err := srs.NewEngine(params)
	if err != nil {
		log.Fatalf("✗ Scheduler initialization failed: %v", err)
	}
	log.Println("✓ Scheduling engine initialized")

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, jwtAuth)

	reviewCounter := cache.NewReviewCounter(redisClient)
	scoreRefresher := worker.NewPool(redisClient, reviewRepo, scoreRepo, cfg.ScoreWorkers)

	loadService := services.NewLoadService(reviewRepo, reviewCounter, cfg.LoadWarnMultiplier, cfg.LoadWarnMinReviews)
	reviewService := services.NewReviewService(engine, deckRepo, cardRepo, reviewRepo, scoreRepo, reviewCounter, scoreRefresher, cfg.ScoreEMAAlpha)
	queueService := services.NewQueueService(deckRepo, cardRepo, reviewRepo, loadService, cfg.MaxQueueLimit)
	scoreService := services.NewScoreService(deckRepo, reviewRepo, scoreRepo, cfg.GradeMinReviews)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService, userRepo)
	deckHandler := handlers.NewDeckHandler(deckRepo, cardRepo)
	studyHandler := handlers.NewStudyHandler(reviewService, queueService, scoreService, cfg.StudyQueueLimit, cfg.QuizQueueLimit)

	// ──── Step 6: Start Score Refresh Workers ────
	scoreRefresher.Start()
	log.Printf("✓ Score refresh workers started (%d goroutines)", cfg.ScoreWorkers)

	// ──── Step 7: Start HTTP Server ────
	r := router.New(jwtAuth, authHandler, deckHandler, studyHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		scoreRefresher.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Recall Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
