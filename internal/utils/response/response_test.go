package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestErrorWritesMessageEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()

	if err := Error(rec, errors.New("database is locked")); err != nil {
		t.Fatalf("write: %v", err)
	}

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected JSON content type, got %q", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(body) != 1 || body["message"] != "database is locked" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestWriteJSONStatus(t *testing.T) {
	rec := httptest.NewRecorder()

	if err := WriteJSON(rec, http.StatusOK, Status{Status: StatusOK}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if rec.Code != http.StatusOK || rec.Body.String() != "{\"status\":\"ok\"}\n" {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}
}
