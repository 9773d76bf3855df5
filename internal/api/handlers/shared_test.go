package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func timeDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestParseJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("decodes valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"btc"}`))

		got, err := parseJSON[payload](req)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got.Name != "btc" {
			t.Errorf("Expected name btc, got %q", got.Name)
		}
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"btc","bogus":1}`))

		if _, err := parseJSON[payload](req); err == nil {
			t.Error("Expected error for unknown field, got nil")
		}
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{name}`))

		if _, err := parseJSON[payload](req); err == nil {
			t.Error("Expected error for malformed body, got nil")
		}
	})
}
