package request

type CreateTransactionRequest struct {
	Date         string  `json:"date"`
	Type         string  `json:"type"`
	CoinSymbol   string  `json:"coinSymbol"`
	Amount       float64 `json:"amount"`
	PricePerCoin float64 `json:"pricePerCoin"`
	TotalCostUSD float64 `json:"totalCostUsd"`
	FeeUSD       float64 `json:"feeUsd"`
	Exchange     string  `json:"exchange"`
	Method       string  `json:"method"`
	Notes        string  `json:"notes"`
}

type UpdateTransactionRequest struct {
	Date         *string  `json:"date,omitempty"`
	Type         *string  `json:"type,omitempty"`
	CoinSymbol   *string  `json:"coinSymbol,omitempty"`
	Amount       *float64 `json:"amount,omitempty"`
	PricePerCoin *float64 `json:"pricePerCoin,omitempty"`
	TotalCostUSD *float64 `json:"totalCostUsd,omitempty"`
	FeeUSD       *float64 `json:"feeUsd,omitempty"`
	Exchange     *string  `json:"exchange,omitempty"`
	Method       *string  `json:"method,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
}
