package res_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskflow-service/pkg/res"
)

func TestJson(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	res.Json(rec, map[string]string{"hello": "world"}, http.StatusCreated)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %q", ct)
	}

	var out map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if out["hello"] != "world" {
		t.Fatalf("unexpected body: %v", out)
	}
}

func TestError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	res.Error(rec, "tag already exists", http.StatusBadRequest)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var out map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if out["message"] != "tag already exists" {
		t.Fatalf("unexpected message: %q", out["message"])
	}
}

func TestNoContent(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	res.NoContent(rec)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
}
