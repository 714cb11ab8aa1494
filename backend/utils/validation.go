package utils

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/raidledger/raidledger/backend/models"
	"github.com/raidledger/raidledger/internal/domain/requirements"
)

// QueryBool reads a boolean query flag. "1", "true" and "yes" are true.
func QueryBool(c *fiber.Ctx, key string) bool {
	switch strings.ToLower(c.Query(key)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// ParseScope reads ?scope=, ?kappa= and ?lightkeeper= into an aggregation scope.
func ParseScope(c *fiber.Ctx, scope string) (requirements.Scope, []models.FieldValidationError) {
	mode, ok := requirements.ParseScopeMode(scope)
	if !ok {
		return requirements.Scope{}, []models.FieldValidationError{{
			Field:   "scope",
			Message: "scope must be one of all, active, outstanding",
		}}
	}
	return requirements.Scope{
		Mode:            mode,
		KappaOnly:       QueryBool(c, "kappa"),
		LightkeeperOnly: QueryBool(c, "lightkeeper"),
	}, nil
}

// ParseFilter reads ?tab=, ?fir= and ?q= into an item filter.
func ParseFilter(c *fiber.Ctx) (requirements.Filter, []models.FieldValidationError) {
	tab := requirements.Tab(strings.ToLower(c.Query("tab")))
	switch tab {
	case "":
		tab = requirements.TabAll
	case requirements.TabAll, requirements.TabNeeded, requirements.TabFound:
	default:
		return requirements.Filter{}, []models.FieldValidationError{{
			Field:   "tab",
			Message: "tab must be one of all, needed, found",
		}}
	}
	return requirements.Filter{
		Tab:     tab,
		FIROnly: QueryBool(c, "fir"),
		Query:   strings.TrimSpace(c.Query("q")),
	}, nil
}

// ValidateAdjustRequest checks that exactly one change is requested.
func ValidateAdjustRequest(req *models.AdjustRequest) []models.FieldValidationError {
	var errs []models.FieldValidationError
	switch {
	case req.Delta == nil && req.MarkAll == "":
		errs = append(errs, models.FieldValidationError{Field: "delta", Message: "delta or markAll is required"})
	case req.Delta != nil && req.MarkAll != "":
		errs = append(errs, models.FieldValidationError{Field: "markAll", Message: "markAll cannot be combined with delta"})
	case req.Delta != nil && *req.Delta == 0:
		errs = append(errs, models.FieldValidationError{Field: "delta", Message: "delta must not be zero"})
	case req.MarkAll != "" && req.MarkAll != models.MarkAllFound && req.MarkAll != models.MarkAllNeeded:
		errs = append(errs, models.FieldValidationError{Field: "markAll", Message: "markAll must be found or needed"})
	}
	return errs
}

// ValidateCredentials checks the request is complete. Format rules are
// enforced by the auth service.
func ValidateCredentials(req *models.CredentialsRequest) []models.FieldValidationError {
	var errs []models.FieldValidationError
	if strings.TrimSpace(req.Username) == "" {
		errs = append(errs, models.FieldValidationError{Field: "username", Message: "Username is required"})
	}
	if req.Password == "" {
		errs = append(errs, models.FieldValidationError{Field: "password", Message: "Password is required"})
	}
	return errs
}
