package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"recall-backend/internal/models"
	"recall-backend/internal/services"
)

// ─── Response Helper Tests ───

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	writeJSON(rr, http.StatusCreated, map[string]string{"status": "ok"})

	if rr.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q, want application/json", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v, want status ok", body)
	}
}

func TestErrorRespCarriesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/decks", nil)
	req.Header.Set("X-Request-ID", "req-123")

	resp := errorResp("NOT_FOUND", "Deck not found", req)

	if resp.Error.Code != "NOT_FOUND" {
		t.Errorf("code = %q, want NOT_FOUND", resp.Error.Code)
	}
	if resp.Error.RequestID != "req-123" {
		t.Errorf("request id = %q, want req-123", resp.Error.RequestID)
	}
}

func TestHandleServiceErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", &services.ValidationError{Fields: map[string]string{"rating": "bad"}}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"not found", &services.NotFoundError{Message: "Deck not found"}, http.StatusNotFound, "NOT_FOUND"},
		{"forbidden", &services.ForbiddenError{Message: "nope"}, http.StatusForbidden, "FORBIDDEN"},
		{"unauthorized", &services.UnauthorizedError{Message: "bad creds"}, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"conflict", &services.ConflictError{Message: "email taken"}, http.StatusConflict, "CONFLICT"},
		{"storage", &services.StorageError{Op: "insert", Err: http.ErrBodyNotAllowed}, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()

			handleServiceError(rr, req, tc.err)

			if rr.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tc.wantStatus)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if resp.Error.Code != tc.wantCode {
				t.Errorf("code = %q, want %q", resp.Error.Code, tc.wantCode)
			}
		})
	}
}

func TestHandleServiceErrorIncludesFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rr := httptest.NewRecorder()

	handleServiceError(rr, req, &services.ValidationError{
		Fields: map[string]string{"card_id": "card_id is required"},
	})

	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.Error.Fields["card_id"] != "card_id is required" {
		t.Errorf("fields = %v, want card_id message", resp.Error.Fields)
	}
}

// ─── Request Shape Tests ───

func TestReviewRequestShape(t *testing.T) {
	body := map[string]string{
		"card_id": "5f4c1c1a-8d4f-4ba0-b1e8-1f2a3b4c5d6e",
		"rating":  "good",
	}
	jsonBody, _ := json.Marshal(body)

	var parsed models.ReviewRequest
	if err := json.NewDecoder(bytes.NewReader(jsonBody)).Decode(&parsed); err != nil {
		t.Fatalf("failed to parse request body: %v", err)
	}

	if parsed.CardID != body["card_id"] {
		t.Errorf("card_id = %q, want %q", parsed.CardID, body["card_id"])
	}
	if parsed.Rating != "good" {
		t.Errorf("rating = %q, want good", parsed.Rating)
	}
}

func TestReviewResultShape(t *testing.T) {
	result := models.ReviewResult{Success: true, IntervalDays: 3, Stability: 4.2}
	jsonBody, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("failed to marshal result: %v", err)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(jsonBody, &body); err != nil {
		t.Fatalf("failed to parse result body: %v", err)
	}

	for _, key := range []string{"success", "next_due", "interval_days", "stability"} {
		if _, ok := body[key]; !ok {
			t.Errorf("response body missing %q: %s", key, jsonBody)
		}
	}
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
}

func TestLimitParam(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 20},
		{"?limit=5", 5},
		{"?limit=abc", 20},
		{"?limit=-3", -3}, // service rejects, not the parser
	}

	for _, tc := range tests {
		req := httptest.NewRequest(http.MethodGet, "/queue"+tc.query, nil)
		if got := limitParam(req, 20); got != tc.want {
			t.Errorf("limitParam(%q) = %d, want %d", tc.query, got, tc.want)
		}
	}
}
