package server

import (
	"strings"

	"github.com/adstack/meta-ads-agent/internal/apierr"
)

// validateBudget enforces the budget invariants shared by campaigns and ad
// sets: daily and lifetime budgets are mutually exclusive, a lifetime budget
// requires an end time, and amounts are positive integers in cents.
func validateBudget(daily, lifetime *int64, endTime, endField string) error {
	if daily != nil && lifetime != nil {
		return apierr.Validation("dailyBudget and lifetimeBudget are mutually exclusive")
	}
	if daily != nil && *daily <= 0 {
		return apierr.Validation("dailyBudget must be a positive amount in cents")
	}
	if lifetime != nil {
		if *lifetime <= 0 {
			return apierr.Validation("lifetimeBudget must be a positive amount in cents")
		}
		if strings.TrimSpace(endTime) == "" {
			return apierr.Validation("lifetimeBudget requires %s", endField)
		}
	}
	return nil
}

func requireField(value, name string) error {
	if strings.TrimSpace(value) == "" {
		return apierr.Validation("%s is required", name)
	}
	return nil
}
