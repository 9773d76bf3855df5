package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/monkroe/crypto-tracker-sub000/internal/api/response"
	"github.com/monkroe/crypto-tracker-sub000/internal/apperrors"
	"github.com/monkroe/crypto-tracker-sub000/internal/coingecko"
	"github.com/monkroe/crypto-tracker-sub000/internal/service"
)

// CoinHandler handles HTTP requests for the coin directory and per-coin
// price charts.
type CoinHandler struct {
	ledgerService *service.LedgerService
	priceService  *service.PriceService
}

// NewCoinHandler creates a new CoinHandler with the provided service dependencies.
func NewCoinHandler(ledgerService *service.LedgerService, priceService *service.PriceService) *CoinHandler {
	return &CoinHandler{
		ledgerService: ledgerService,
		priceService:  priceService,
	}
}

// Coins handles GET requests to retrieve the coin directory.
//
// Endpoint: GET /api/coin
// Response: 200 OK with array of Coin
func (h *CoinHandler) Coins(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.ledgerService.Coins())
}

// Chart handles GET requests for a coin's historical price sequence over a
// fixed window. The points are passed through untouched; rendering is the
// caller's concern.
//
// Endpoint: GET /api/coin/{id}/chart?range=30d
// Response: 200 OK with array of PricePoint
// Error: 400 Bad Request if the range selector is unknown
// Error: 503 Service Unavailable if the oracle is rate limited
// Error: 500 Internal Server Error if the oracle request fails
func (h *CoinHandler) Chart(w http.ResponseWriter, r *http.Request) {
	coingeckoID := chi.URLParam(r, "id")

	window := coingecko.Range30d
	if raw := r.URL.Query().Get("range"); raw != "" {
		var err error
		window, err = coingecko.ParseRange(raw)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidRange.Error(), err.Error())
			return
		}
	}

	points, err := h.priceService.Chart(r.Context(), coingeckoID, window)
	if err != nil {
		if errors.Is(err, apperrors.ErrOracleRateLimited) {
			response.RespondError(w, http.StatusServiceUnavailable, apperrors.ErrOracleRateLimited.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetChart.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, points)
}
