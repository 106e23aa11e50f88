package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"recall-backend/internal/middleware"
	"recall-backend/internal/models"
	"recall-backend/internal/services"
)

// StudyHandler serves the scheduling surface of a deck: rating cards,
// building study and quiz queues, and reading the mastery score.
type StudyHandler struct {
	reviewService   *services.ReviewService
	queueService    *services.QueueService
	scoreService    *services.ScoreService
	studyQueueLimit int
	quizQueueLimit  int
}

func NewStudyHandler(
	reviewService *services.ReviewService,
	queueService *services.QueueService,
	scoreService *services.ScoreService,
	studyQueueLimit, quizQueueLimit int,
) *StudyHandler {
	return &StudyHandler{
		reviewService:   reviewService,
		queueService:    queueService,
		scoreService:    scoreService,
		studyQueueLimit: studyQueueLimit,
		quizQueueLimit:  quizQueueLimit,
	}
}

func deckIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	deckID, err := uuid.Parse(chi.URLParam(r, "deckID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid deck id", r))
		return uuid.Nil, false
	}
	return deckID, true
}

func limitParam(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func (h *StudyHandler) RateCard(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	deckID, ok := deckIDParam(w, r)
	if !ok {
		return
	}

	var req models.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	result, err := h.reviewService.RecordReview(r.Context(), userID, deckID, req.CardID, req.Rating)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *StudyHandler) StudyQueue(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	deckID, ok := deckIDParam(w, r)
	if !ok {
		return
	}

	queue, err := h.queueService.BuildStudyQueue(r.Context(), userID, deckID, limitParam(r, h.studyQueueLimit))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, queue)
}

func (h *StudyHandler) QuizQueue(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	deckID, ok := deckIDParam(w, r)
	if !ok {
		return
	}

	queue, err := h.queueService.BuildQuizQueue(r.Context(), userID, deckID, limitParam(r, h.quizQueueLimit))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, queue)
}

func (h *StudyHandler) DeckScore(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	deckID, ok := deckIDParam(w, r)
	if !ok {
		return
	}

	if window := r.URL.Query().Get("window"); window != "" && window != models.WindowD30 {
		score, err := h.scoreService.WindowScore(r.Context(), userID, deckID, window)
		if err != nil {
			handleServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"score": score})
		return
	}

	report, err := h.scoreService.DeckScore(r.Context(), userID, deckID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}
