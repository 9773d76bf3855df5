package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/monkroe/crypto-tracker-sub000/internal/api/request"
	"github.com/monkroe/crypto-tracker-sub000/internal/model"
	"github.com/monkroe/crypto-tracker-sub000/internal/service"
	"github.com/monkroe/crypto-tracker-sub000/internal/testutil"
)

func setupTransactionHandler(t *testing.T, db *sql.DB) *TransactionHandler {
	t.Helper()
	svc, _, _ := testutil.NewTestLedgerService(t, db)
	return NewTransactionHandler(svc)
}

func TestTransactionHandler_AllTransactions(t *testing.T) {
	t.Run("returns empty array when no transactions exist", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := setupTransactionHandler(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
		w := httptest.NewRecorder()

		handler.AllTransactions(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 0 {
			t.Errorf("Expected empty array, got %d transactions", len(response))
		}
	})

	t.Run("returns all transactions successfully", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		tx1 := testutil.NewTransaction("BTC").Build(t, db)
		tx2 := testutil.NewTransaction("ETH").Build(t, db)
		handler := setupTransactionHandler(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
		w := httptest.NewRecorder()

		handler.AllTransactions(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 2 {
			t.Errorf("Expected 2 transactions, got %d", len(response))
		}

		found := make(map[string]bool)
		for _, tx := range response {
			found[tx.ID] = true
		}
		if !found[tx1.ID] {
			t.Error("Expected to find tx1 in response")
		}
		if !found[tx2.ID] {
			t.Error("Expected to find tx2 in response")
		}
	})
}

func TestTransactionHandler_GetTransaction(t *testing.T) {
	t.Run("returns transaction by id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		tx := testutil.NewTransaction("BTC").WithNotes("dca").Build(t, db)
		handler := setupTransactionHandler(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/transaction/"+tx.ID,
			map[string]string{"uuid": tx.ID},
		)
		w := httptest.NewRecorder()

		handler.GetTransaction(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.ID != tx.ID {
			t.Errorf("Expected transaction %s, got %s", tx.ID, response.ID)
		}
		if response.Notes != "dca" {
			t.Errorf("Expected notes 'dca', got %q", response.Notes)
		}
	})

	t.Run("returns 404 for unknown transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := setupTransactionHandler(t, db)

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/transaction/"+id,
			map[string]string{"uuid": id},
		)
		w := httptest.NewRecorder()

		handler.GetTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("creates transaction successfully", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := setupTransactionHandler(t, db)

		body := request.CreateTransactionRequest{
			Date:         "2024-01-15",
			Type:         "Buy",
			CoinSymbol:   "BTC",
			Amount:       0.5,
			PricePerCoin: 40000,
			TotalCostUSD: 20000,
			FeeUSD:       10,
			Exchange:     "Coinbase",
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transaction", body, nil)
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.ID == "" {
			t.Error("Expected generated ID, got empty string")
		}
		if response.CoinSymbol != "BTC" {
			t.Errorf("Expected coin symbol BTC, got %s", response.CoinSymbol)
		}

		testutil.AssertRowCount(t, db, "transaction", 1)
	})

	t.Run("returns 400 for invalid body", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := setupTransactionHandler(t, db)

		req := httptest.NewRequest(http.MethodPost, "/api/transaction", strings.NewReader("{not json"))
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for unknown transaction type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := setupTransactionHandler(t, db)

		body := request.CreateTransactionRequest{
			Date:       "2024-01-15",
			Type:       "Borrow",
			CoinSymbol: "BTC",
			Amount:     1,
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transaction", body, nil)
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for missing coin symbol", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := setupTransactionHandler(t, db)

		body := request.CreateTransactionRequest{
			Date:   "2024-01-15",
			Type:   "Buy",
			Amount: 1,
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transaction", body, nil)
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 500 on database error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := setupTransactionHandler(t, db)
		db.Close()

		body := request.CreateTransactionRequest{
			Date:       "2024-01-15",
			Type:       "Buy",
			CoinSymbol: "BTC",
			Amount:     1,
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transaction", body, nil)
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_UpdateTransaction(t *testing.T) {
	t.Run("updates provided fields only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		tx := testutil.NewTransaction("BTC").Build(t, db)
		handler := setupTransactionHandler(t, db)

		amount := 0.75
		body := request.UpdateTransactionRequest{Amount: &amount}
		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/transaction/"+tx.ID, body,
			map[string]string{"uuid": tx.ID})
		w := httptest.NewRecorder()

		handler.UpdateTransaction(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Amount != 0.75 {
			t.Errorf("Expected amount 0.75, got %v", response.Amount)
		}
		if response.CoinSymbol != tx.CoinSymbol {
			t.Errorf("Expected coin symbol unchanged (%s), got %s", tx.CoinSymbol, response.CoinSymbol)
		}
	})

	t.Run("returns 404 for unknown transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := setupTransactionHandler(t, db)

		id := testutil.MakeID()
		amount := 1.0
		body := request.UpdateTransactionRequest{Amount: &amount}
		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/transaction/"+id, body,
			map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.UpdateTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("deletes transaction successfully", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		tx := testutil.NewTransaction("BTC").Build(t, db)
		handler := setupTransactionHandler(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/transaction/"+tx.ID,
			map[string]string{"uuid": tx.ID},
		)
		w := httptest.NewRecorder()

		handler.DeleteTransaction(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}

		testutil.AssertRowCount(t, db, "transaction", 0)
	})

	t.Run("returns 404 for unknown transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := setupTransactionHandler(t, db)

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/transaction/"+id,
			map[string]string{"uuid": id},
		)
		w := httptest.NewRecorder()

		handler.DeleteTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_ImportTransactions(t *testing.T) {
	t.Run("imports csv and reports rejected rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := setupTransactionHandler(t, db)

		csv := strings.Join([]string{
			"Date;Type;Coin;Amount;Price;Total;Fee;Exchange;Method;Notes",
			"2024-01-15;Buy;BTC;0,5;40000;20000;10;Coinbase;Bank;first",
			"2024-01-16;Sell;;0,1;42000;4200;5;Coinbase;Bank;no symbol",
			"2024-01-17;Buy;ETH;abc;2500;2500;2;Kraken;Bank;bad amount",
		}, "\n")

		req := httptest.NewRequest(http.MethodPost, "/api/transaction/import", strings.NewReader(csv))
		req.Header.Set("Content-Type", "text/csv")
		w := httptest.NewRecorder()

		handler.ImportTransactions(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var summary service.ImportSummary
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&summary)

		if summary.Imported != 1 {
			t.Errorf("Expected 1 imported row, got %d", summary.Imported)
		}
		if len(summary.Rejected) != 2 {
			t.Errorf("Expected 2 rejected rows, got %d", len(summary.Rejected))
		}

		testutil.AssertRowCount(t, db, "transaction", 1)
	})

	t.Run("returns 400 for empty body", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := setupTransactionHandler(t, db)

		req := httptest.NewRequest(http.MethodPost, "/api/transaction/import", strings.NewReader(""))
		w := httptest.NewRecorder()

		handler.ImportTransactions(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 500 when persistence fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := setupTransactionHandler(t, db)
		db.Close()

		csv := "Date;Type;Coin;Amount\n2024-01-15;Buy;BTC;0.5"
		req := httptest.NewRequest(http.MethodPost, "/api/transaction/import", strings.NewReader(csv))
		w := httptest.NewRecorder()

		handler.ImportTransactions(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d: %s", w.Code, w.Body.String())
		}
	})
}
