package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/monkroe/crypto-tracker-sub000/internal/api/request"
	"github.com/monkroe/crypto-tracker-sub000/internal/testutil"
)

func TestSystemHandler_Health(t *testing.T) {
	t.Run("returns healthy when database is reachable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewSystemHandler(testutil.NewTestSystemService(t, db), testutil.NewTestSettingsService(t, db))

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		w := httptest.NewRecorder()

		handler.Health(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response HealthResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Status != "healthy" {
			t.Errorf("Expected status healthy, got %s", response.Status)
		}
		if response.Database != "connected" {
			t.Errorf("Expected database connected, got %s", response.Database)
		}
	})

	t.Run("returns 503 when database is closed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewSystemHandler(testutil.NewTestSystemService(t, db), testutil.NewTestSettingsService(t, db))
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		w := httptest.NewRecorder()

		handler.Health(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("Expected 503, got %d: %s", w.Code, w.Body.String())
		}

		var response HealthResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Status != "unhealthy" {
			t.Errorf("Expected status unhealthy, got %s", response.Status)
		}
	})
}

func TestSystemHandler_StoreOracleKey(t *testing.T) {
	t.Run("stores an encrypted key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewSystemHandler(testutil.NewTestSystemService(t, db), testutil.NewTestSettingsService(t, db))

		body := request.StoreOracleKeyRequest{APIKey: "CG-demo-key"}
		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/system/oracle-key", body, nil)
		w := httptest.NewRecorder()

		handler.StoreOracleKey(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}

		testutil.AssertRowCount(t, db, "system_setting", 1)

		// The stored value is a fernet token, never the plaintext key.
		var stored string
		if err := db.QueryRow(`SELECT value FROM system_setting`).Scan(&stored); err != nil {
			t.Fatalf("Failed to read stored setting: %v", err)
		}
		if stored == "CG-demo-key" {
			t.Error("Expected encrypted value, found plaintext key")
		}
	})

	t.Run("returns 400 for empty key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewSystemHandler(testutil.NewTestSystemService(t, db), testutil.NewTestSettingsService(t, db))

		req := httptest.NewRequest(http.MethodPut, "/api/system/oracle-key", strings.NewReader(`{"apiKey":""}`))
		w := httptest.NewRecorder()

		handler.StoreOracleKey(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}
