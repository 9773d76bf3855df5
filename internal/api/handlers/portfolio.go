package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/monkroe/crypto-tracker-sub000/internal/api/response"
	"github.com/monkroe/crypto-tracker-sub000/internal/apperrors"
	"github.com/monkroe/crypto-tracker-sub000/internal/service"
)

// defaultHistoryWindow is how far back the history series reaches when the
// caller does not pass a cutoff.
const defaultHistoryWindow = 30 * 24 * time.Hour

// PortfolioHandler handles HTTP requests for derived portfolio views:
// holdings, the cumulative-invested series, and the manual price refresh.
type PortfolioHandler struct {
	ledgerService *service.LedgerService
	priceService  *service.PriceService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependencies.
func NewPortfolioHandler(ledgerService *service.LedgerService, priceService *service.PriceService) *PortfolioHandler {
	return &PortfolioHandler{
		ledgerService: ledgerService,
		priceService:  priceService,
	}
}

// Holdings handles GET requests for the current holdings snapshot. Stale
// prices are refreshed first; an unreachable or rate-limited oracle degrades
// to the last cached prices rather than failing the request.
//
// Endpoint: GET /api/portfolio/holdings
// Response: 200 OK with HoldingsSnapshot
func (h *PortfolioHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	if err := h.priceService.RefreshStale(r.Context()); err != nil {
		// Serve the snapshot on cached prices; value fields may be stale.
		log.Printf("price refresh failed, serving cached prices: %v", err)
	}

	response.RespondJSON(w, http.StatusOK, h.ledgerService.Holdings())
}

// History handles GET requests for the cumulative-invested series. The series
// is seeded with the pre-cutoff balance at the cutoff date and closed with a
// final point at the current time.
//
// Endpoint: GET /api/portfolio/history?cutoff=2024-01-01
// Response: 200 OK with array of SeriesPoint
// Error: 400 Bad Request if the cutoff cannot be parsed
func (h *PortfolioHandler) History(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	cutoff := now.Add(-defaultHistoryWindow)

	if raw := r.URL.Query().Get("cutoff"); raw != "" {
		parsed, err := parseCutoff(raw)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid cutoff date", err.Error())
			return
		}
		cutoff = parsed
	}

	response.RespondJSON(w, http.StatusOK, h.ledgerService.History(cutoff, now))
}

// RefreshPrices handles POST requests to discard the price cache and refetch
// everything from the oracle.
//
// Endpoint: POST /api/portfolio/prices/refresh
// Response: 200 OK with the recomputed HoldingsSnapshot
// Error: 500 Internal Server Error if the refresh fails outright
func (h *PortfolioHandler) RefreshPrices(w http.ResponseWriter, r *http.Request) {
	if err := h.priceService.ResetAndRefresh(r.Context()); err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRefreshPrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, h.ledgerService.Holdings())
}

func parseCutoff(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(time.RFC3339, raw)
}
