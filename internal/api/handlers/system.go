package handlers

import (
	"net/http"

	"github.com/monkroe/crypto-tracker-sub000/internal/api/request"
	"github.com/monkroe/crypto-tracker-sub000/internal/api/response"
	"github.com/monkroe/crypto-tracker-sub000/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService   *service.SystemService
	settingsService *service.SettingsService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService, settingsService *service.SettingsService) *SystemHandler {
	return &SystemHandler{
		systemService:   systemService,
		settingsService: settingsService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Health checks the health of the system and database connectivity
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	// Check database health
	if err := h.systemService.CheckHealth(); err != nil {
		response := HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		}
		respondJSON(w, http.StatusServiceUnavailable, response)
		return
	}

	// System is healthy
	response := HealthResponse{
		Status:   "healthy",
		Database: "connected",
	}
	respondJSON(w, http.StatusOK, response)
}

// StoreOracleKey handles PUT requests to store the price-oracle API key.
// The key is encrypted before it reaches the settings store.
//
// Endpoint: PUT /api/system/oracle-key
// Request Body: StoreOracleKeyRequest (apiKey)
// Response: 204 No Content on success
// Error: 400 Bad Request if the body is invalid or the key is empty
// Error: 500 Internal Server Error if the encrypted store is disabled or persistence fails
func (h *SystemHandler) StoreOracleKey(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.StoreOracleKeyRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.APIKey == "" {
		response.RespondError(w, http.StatusBadRequest, "apiKey is required", "")
		return
	}

	if err := h.settingsService.StoreOracleAPIKey(r.Context(), req.APIKey); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to store oracle key", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
