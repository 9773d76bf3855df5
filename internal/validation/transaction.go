package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/monkroe/crypto-tracker-sub000/internal/api/request"
	"github.com/monkroe/crypto-tracker-sub000/internal/apperrors"
	"github.com/monkroe/crypto-tracker-sub000/internal/model"
)

// ValidTransactionType contains the allowed transaction type values.
var ValidTransactionType = func() map[string]bool {
	types := make(map[string]bool, len(model.TransactionTypes))
	for _, t := range model.TransactionTypes {
		types[string(t)] = true
	}
	return types
}()

// ValidateCreateTransaction validates a transaction creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - date: Must be in YYYY-MM-DD format
//   - type: Must be a known transaction type
//   - coinSymbol: Must be non-empty
//   - amount: Must be non-negative
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !ValidTransactionType[req.Type] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if strings.TrimSpace(req.CoinSymbol) == "" {
		errors["coinSymbol"] = "coinSymbol is required"
	}

	if req.Amount < 0.0 {
		errors["amount"] = apperrors.ErrNegativeAmount.Error()
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateTransaction validates a transaction update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.Date != nil {
		if strings.TrimSpace(*req.Date) == "" {
			errors["date"] = "date is required"
		} else if _, err := time.Parse("2006-01-02", *req.Date); err != nil {
			errors["date"] = err.Error()
		}
	}
	if req.Type != nil {
		if strings.TrimSpace(*req.Type) == "" {
			errors["type"] = "type is required"
		} else if !ValidTransactionType[*req.Type] {
			errors["type"] = fmt.Sprintf("invalid type: %s", *req.Type)
		}
	}
	if req.CoinSymbol != nil {
		if strings.TrimSpace(*req.CoinSymbol) == "" {
			errors["coinSymbol"] = "coinSymbol is required"
		}
	}
	if req.Amount != nil {
		if *req.Amount < 0.0 {
			errors["amount"] = apperrors.ErrNegativeAmount.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
