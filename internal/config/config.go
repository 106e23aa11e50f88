package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// JWT
	JWTSecret string

	// Scheduling
	DesiredRetention float64 // target recall probability at due time
	MaxIntervalDays  int

	// Scoring
	ScoreEMAAlpha   float64 // smoothing weight for the d30 accuracy EMA
	GradeMinReviews int     // review-count floor before a grade is meaningful

	// Daily load
	LoadWarnMultiplier float64 // warn when today > trailing avg * multiplier
	LoadWarnMinReviews int     // and today is at least this many reviews

	// Queues
	StudyQueueLimit int // default study queue size
	QuizQueueLimit  int // default quiz queue size
	MaxQueueLimit   int // hard cap on client-supplied limits

	// Workers
	ScoreWorkers int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		Env:         getEnvOrDefault("ENV", "development"),
		DatabaseURL: mustGetEnv("DATABASE_URL"),
		RedisURL:    mustGetEnv("REDIS_URL"),
		JWTSecret:   mustGetEnv("JWT_SECRET"),

		DesiredRetention: getEnvAsFloatOrDefault("SRS_DESIRED_RETENTION", 0.9),
		MaxIntervalDays:  getEnvAsIntOrDefault("SRS_MAX_INTERVAL_DAYS", 36500),

		ScoreEMAAlpha:   getEnvAsFloatOrDefault("SCORE_EMA_ALPHA", 0.1),
		GradeMinReviews: getEnvAsIntOrDefault("GRADE_MIN_REVIEWS", 10),

		LoadWarnMultiplier: getEnvAsFloatOrDefault("LOAD_WARN_MULTIPLIER", 2.0),
		LoadWarnMinReviews: getEnvAsIntOrDefault("LOAD_WARN_MIN_REVIEWS", 10),

		StudyQueueLimit: getEnvAsIntOrDefault("STUDY_QUEUE_LIMIT", 20),
		QuizQueueLimit:  getEnvAsIntOrDefault("QUIZ_QUEUE_LIMIT", 10),
		MaxQueueLimit:   getEnvAsIntOrDefault("MAX_QUEUE_LIMIT", 200),

		ScoreWorkers: getEnvAsIntOrDefault("SCORE_WORKERS", 3),

		FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsFloatOrDefault(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}
