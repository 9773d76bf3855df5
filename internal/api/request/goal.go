package request

type CreateGoalRequest struct {
	Description  string  `json:"description"`
	TargetAmount float64 `json:"targetAmount"`
}

type UpdateGoalRequest struct {
	Description  *string  `json:"description,omitempty"`
	TargetAmount *float64 `json:"targetAmount,omitempty"`
	Achieved     *bool    `json:"achieved,omitempty"`
}
