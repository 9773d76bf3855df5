package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/monkroe/crypto-tracker-sub000/internal/api/request"
	"github.com/monkroe/crypto-tracker-sub000/internal/model"
	"github.com/monkroe/crypto-tracker-sub000/internal/testutil"
)

func setupGoalHandler(t *testing.T, db *sql.DB) *GoalHandler {
	t.Helper()
	svc, _, _ := testutil.NewTestLedgerService(t, db)
	return NewGoalHandler(svc)
}

func TestGoalHandler_Goals(t *testing.T) {
	t.Run("returns all goals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		goal := testutil.NewGoal().WithDescription("1 BTC stack").Build(t, db)
		handler := setupGoalHandler(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/goal", nil)
		w := httptest.NewRecorder()

		handler.Goals(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.Goal
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 1 {
			t.Fatalf("Expected 1 goal, got %d", len(response))
		}
		if response[0].ID != goal.ID {
			t.Errorf("Expected goal %s, got %s", goal.ID, response[0].ID)
		}
	})
}

func TestGoalHandler_CreateGoal(t *testing.T) {
	t.Run("creates goal successfully", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := setupGoalHandler(t, db)

		body := request.CreateGoalRequest{Description: "100k portfolio", TargetAmount: 100000}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/goal", body, nil)
		w := httptest.NewRecorder()

		handler.CreateGoal(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Goal
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.ID == "" {
			t.Error("Expected generated ID, got empty string")
		}
		if response.Achieved {
			t.Error("Expected new goal to start unachieved")
		}

		testutil.AssertRowCount(t, db, "goal", 1)
	})

	t.Run("returns 400 for missing description", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := setupGoalHandler(t, db)

		body := request.CreateGoalRequest{TargetAmount: 100000}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/goal", body, nil)
		w := httptest.NewRecorder()

		handler.CreateGoal(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for non-positive target", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := setupGoalHandler(t, db)

		body := request.CreateGoalRequest{Description: "broken", TargetAmount: 0}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/goal", body, nil)
		w := httptest.NewRecorder()

		handler.CreateGoal(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestGoalHandler_UpdateGoal(t *testing.T) {
	t.Run("toggles achieved flag", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		goal := testutil.NewGoal().Build(t, db)
		handler := setupGoalHandler(t, db)

		achieved := true
		body := request.UpdateGoalRequest{Achieved: &achieved}
		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/goal/"+goal.ID, body,
			map[string]string{"uuid": goal.ID})
		w := httptest.NewRecorder()

		handler.UpdateGoal(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Goal
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if !response.Achieved {
			t.Error("Expected goal to be marked achieved")
		}
		if response.Description != goal.Description {
			t.Errorf("Expected description unchanged (%q), got %q", goal.Description, response.Description)
		}
	})

	t.Run("returns 404 for unknown goal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := setupGoalHandler(t, db)

		id := testutil.MakeID()
		achieved := true
		body := request.UpdateGoalRequest{Achieved: &achieved}
		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/goal/"+id, body,
			map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.UpdateGoal(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestGoalHandler_DeleteGoal(t *testing.T) {
	t.Run("deletes goal successfully", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		goal := testutil.NewGoal().Build(t, db)
		handler := setupGoalHandler(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/goal/"+goal.ID,
			map[string]string{"uuid": goal.ID},
		)
		w := httptest.NewRecorder()

		handler.DeleteGoal(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}

		testutil.AssertRowCount(t, db, "goal", 0)
	})

	t.Run("returns 404 for unknown goal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := setupGoalHandler(t, db)

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/goal/"+id,
			map[string]string{"uuid": id},
		)
		w := httptest.NewRecorder()

		handler.DeleteGoal(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}
