package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/monkroe/crypto-tracker-sub000/internal/portfolio"
	"github.com/monkroe/crypto-tracker-sub000/internal/pricecache"
	"github.com/monkroe/crypto-tracker-sub000/internal/repository"
	"github.com/monkroe/crypto-tracker-sub000/internal/secrets"
	"github.com/monkroe/crypto-tracker-sub000/internal/service"
)

// NewTestTracker creates a Tracker and the price cache it reads from.
func NewTestTracker(t *testing.T) (*portfolio.Tracker, *pricecache.Cache) {
	t.Helper()
	cache := pricecache.New()
	return portfolio.NewTracker(cache), cache
}

// NewTestLedgerService wires a LedgerService against the given database and a
// fresh tracker, then bootstraps it from whatever the database holds.
func NewTestLedgerService(t *testing.T, db *sql.DB) (*service.LedgerService, *portfolio.Tracker, *pricecache.Cache) {
	t.Helper()

	tracker, cache := NewTestTracker(t)
	coinRepo := repository.NewCoinRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	goalRepo := repository.NewGoalRepository(db)

	svc := service.NewLedgerService(tracker, coinRepo, txRepo, goalRepo)
	if err := svc.Bootstrap(); err != nil {
		t.Fatalf("Failed to bootstrap ledger service: %v", err)
	}

	return svc, tracker, cache
}

// NewTestPriceService wires a PriceService against the given oracle and tracker.
func NewTestPriceService(t *testing.T, oracle service.Oracle, tracker *portfolio.Tracker, cache *pricecache.Cache) *service.PriceService {
	t.Helper()
	return service.NewPriceService(cache, oracle, tracker)
}

// NewTestSystemService creates a SystemService for the given database.
func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db)
}

// NewTestSettingsService creates a SettingsService with a generated fernet key.
func NewTestSettingsService(t *testing.T, db *sql.DB) *service.SettingsService {
	t.Helper()

	keeper, err := secrets.NewKeeper(TestFernetKey)
	if err != nil {
		t.Fatalf("Failed to create test keeper: %v", err)
	}

	return service.NewSettingsService(repository.NewSettingRepository(db), keeper)
}

// TestFernetKey is a fixed base64 fernet key for tests. Not a production secret.
const TestFernetKey = "cw64XGPXSmhscpEbindxC9I7Ck8YBuMhVcCu2Fh6hmc="

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeSymbol generates a unique coin symbol for testing.
//
// Example usage:
//
//	symbol := testutil.MakeSymbol("BTC")
//	// Returns: "BTC1A2B"
func MakeSymbol(base string) string {
	if base == "" {
		base = "TST"
	}
	return base + randomAlphanumeric(4)
}

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// randomAlphanumeric returns a random uppercase alphanumeric string.
func randomAlphanumeric(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphanumeric[rand.Intn(len(alphanumeric))] //nolint:gosec // test data, not crypto
	}
	return string(b)
}
