package validation

import (
	"strings"

	"github.com/monkroe/crypto-tracker-sub000/internal/api/request"
)

// ValidateCreateGoal validates a goal creation request.
func ValidateCreateGoal(req request.CreateGoalRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Description) == "" {
		errors["description"] = "description is required"
	}

	if req.TargetAmount <= 0.0 {
		errors["targetAmount"] = "targetAmount must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateGoal validates a goal update request.
func ValidateUpdateGoal(req request.UpdateGoalRequest) error {
	errors := make(map[string]string)

	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		errors["description"] = "description is required"
	}

	if req.TargetAmount != nil && *req.TargetAmount <= 0.0 {
		errors["targetAmount"] = "targetAmount must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
