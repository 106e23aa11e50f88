package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"recall-backend/internal/middleware"
	"recall-backend/internal/models"
	"recall-backend/internal/repository"
)

type DeckHandler struct {
	deckRepo *repository.DeckRepo
	cardRepo *repository.CardRepo
}

func NewDeckHandler(deckRepo *repository.DeckRepo, cardRepo *repository.CardRepo) *DeckHandler {
	return &DeckHandler{deckRepo: deckRepo, cardRepo: cardRepo}
}

// ownDeck loads the deck from the URL and checks it belongs to the
// caller. Writes the error response itself and returns nil on failure.
func (h *DeckHandler) ownDeck(w http.ResponseWriter, r *http.Request) *models.Deck {
	userID := middleware.GetUserID(r.Context())

	deckID, err := uuid.Parse(chi.URLParam(r, "deckID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid deck id", r))
		return nil
	}

	deck, err := h.deckRepo.GetByID(r.Context(), deckID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Something went wrong", r))
		return nil
	}
	if deck == nil || deck.UserID != userID {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Deck not found", r))
		return nil
	}
	return deck
}

func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.CreateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"title": "title is required"}, r))
		return
	}

	deck := &models.Deck{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := h.deckRepo.Create(r.Context(), deck); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create deck", r))
		return
	}

	writeJSON(w, http.StatusCreated, deck)
}

func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	decks, err := h.deckRepo.ListByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list decks", r))
		return
	}
	if decks == nil {
		decks = []*models.Deck{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"decks": decks})
}

func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	deck := h.ownDeck(w, r)
	if deck == nil {
		return
	}

	cards, err := h.cardRepo.ListByDeck(r.Context(), deck.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load cards", r))
		return
	}
	if cards == nil {
		cards = []models.Card{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"deck":  deck,
		"cards": cards,
	})
}

func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	deck := h.ownDeck(w, r)
	if deck == nil {
		return
	}

	if err := h.deckRepo.Delete(r.Context(), deck.ID); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete deck", r))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *DeckHandler) CreateCards(w http.ResponseWriter, r *http.Request) {
	deck := h.ownDeck(w, r)
	if deck == nil {
		return
	}

	var req models.CreateCardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if len(req.Cards) == 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"cards": "at least one card is required"}, r))
		return
	}

	cards := make([]models.Card, 0, len(req.Cards))
	for _, c := range req.Cards {
		front := strings.TrimSpace(c.Front)
		back := strings.TrimSpace(c.Back)
		if front == "" || back == "" {
			writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
				map[string]string{"cards": "every card needs a front and a back"}, r))
			return
		}
		cards = append(cards, models.Card{Front: front, Back: back})
	}

	if err := h.cardRepo.CreateCards(r.Context(), deck.ID, cards); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create cards", r))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"cards": cards})
}

func (h *DeckHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	deck := h.ownDeck(w, r)
	if deck == nil {
		return
	}

	cardID, err := uuid.Parse(chi.URLParam(r, "cardID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid card id", r))
		return
	}

	card, err := h.cardRepo.GetByID(r.Context(), cardID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Something went wrong", r))
		return
	}
	if card == nil || card.DeckID != deck.ID {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Card not found", r))
		return
	}

	if err := h.cardRepo.Delete(r.Context(), cardID); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete card", r))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *DeckHandler) DeckStats(w http.ResponseWriter, r *http.Request) {
	deck := h.ownDeck(w, r)
	if deck == nil {
		return
	}

	userID := middleware.GetUserID(r.Context())
	stats, err := h.deckRepo.Stats(r.Context(), userID, deck.ID, time.Now())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load deck stats", r))
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
