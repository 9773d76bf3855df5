package model

import "time"

// Goal is a user-defined target, e.g. a total portfolio value to reach.
// Goals live independently of transactions.
type Goal struct {
	ID           string    `json:"id"`
	Description  string    `json:"description"`
	TargetAmount float64   `json:"targetAmount"`
	Achieved     bool      `json:"achieved"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}
