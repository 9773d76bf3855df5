package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/monkroe/crypto-tracker-sub000/internal/api/request"
	"github.com/monkroe/crypto-tracker-sub000/internal/api/response"
	"github.com/monkroe/crypto-tracker-sub000/internal/apperrors"
	"github.com/monkroe/crypto-tracker-sub000/internal/service"
	"github.com/monkroe/crypto-tracker-sub000/internal/validation"
)

// GoalHandler handles HTTP requests for portfolio goal endpoints.
type GoalHandler struct {
	ledgerService *service.LedgerService
}

// NewGoalHandler creates a new GoalHandler with the provided service dependency.
func NewGoalHandler(ledgerService *service.LedgerService) *GoalHandler {
	return &GoalHandler{
		ledgerService: ledgerService,
	}
}

// Goals handles GET requests to retrieve all goals.
//
// Endpoint: GET /api/goal
// Response: 200 OK with array of Goal
func (h *GoalHandler) Goals(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.ledgerService.Goals())
}

// CreateGoal handles POST requests to create a new goal.
//
// Endpoint: POST /api/goal
// Request Body: CreateGoalRequest (description, targetAmount)
// Response: 201 Created with Goal
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateGoalRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateGoal(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	goal, err := h.ledgerService.CreateGoal(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create goal", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, goal)
}

// UpdateGoal handles PUT requests to update an existing goal, including
// toggling its achieved flag.
//
// Endpoint: PUT /api/goal/{uuid}
// Request Body: UpdateGoalRequest (all fields optional)
// Response: 200 OK with updated Goal
// Error: 400 Bad Request if goal ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if goal not found
// Error: 500 Internal Server Error if update fails
func (h *GoalHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	goalID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateGoalRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateGoal(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	goal, err := h.ledgerService.UpdateGoal(r.Context(), goalID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrGoalNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrGoalNotFound.Error(), err.Error())
			return
		}

		response.RespondError(w, http.StatusInternalServerError, "failed to update goal", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, goal)
}

// DeleteGoal handles DELETE requests to remove a goal.
//
// Endpoint: DELETE /api/goal/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if goal ID is invalid (validated by middleware)
// Error: 404 Not Found if goal not found
// Error: 500 Internal Server Error if deletion fails
func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	goalID := chi.URLParam(r, "uuid")

	err := h.ledgerService.DeleteGoal(r.Context(), goalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrGoalNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrGoalNotFound.Error(), err.Error())
			return
		}

		response.RespondError(w, http.StatusInternalServerError, "failed to delete goal", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
