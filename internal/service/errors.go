package service

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/octobees/employee-search/api/internal/provider"
)

// Category is the normalized failure class of a search.
type Category string

const (
	CategoryInvalidParams         Category = "InvalidParams"
	CategoryAuthFailure           Category = "AuthFailure"
	CategoryCreditsExhausted      Category = "CreditsExhausted"
	CategoryAccessDenied          Category = "AccessDenied"
	CategoryRateLimited           Category = "RateLimited"
	CategoryProviderMisconfigured Category = "ProviderMisconfigured"
	CategoryUpstreamError         Category = "UpstreamError"
)

// User-facing messages per category.
var categoryMessages = map[Category]string{
	CategoryInvalidParams:         "Invalid search parameters",
	CategoryAuthFailure:           "Invalid or missing provider API key",
	CategoryCreditsExhausted:      "Provider credits exhausted",
	CategoryAccessDenied:          "Provider access denied for this query",
	CategoryRateLimited:           "Provider rate limit exceeded",
	CategoryProviderMisconfigured: "Search provider is not configured",
	CategoryUpstreamError:         "Employee data extraction failed",
}

var statusCategories = map[int]Category{
	http.StatusBadRequest:      CategoryInvalidParams,
	http.StatusUnauthorized:    CategoryAuthFailure,
	http.StatusPaymentRequired: CategoryCreditsExhausted,
	http.StatusForbidden:       CategoryAccessDenied,
	http.StatusTooManyRequests: CategoryRateLimited,
}

var (
	bearerTokenRe = regexp.MustCompile(`(?i)\bBearer\s+[^\s"']+`)
	apiKeyKVRe    = regexp.MustCompile(`(?i)\b(x-api-key|api[_-]?key|app[_-]?key)\b(["']?\s*[:=]\s*["']?)[^\s"'&,}]+`)
)

// NormalizedError is the single failure shape returned by SearchService.
type NormalizedError struct {
	Category   Category
	HTTPStatus int
	Message    string
	Details    string
	cause      error
}

func (e *NormalizedError) Error() string {
	if e.Details == "" {
		return string(e.Category) + ": " + e.Message
	}
	return string(e.Category) + ": " + e.Message + ": " + e.Details
}

func (e *NormalizedError) Unwrap() error {
	return e.cause
}

// Classify maps a provider or pre-flight failure onto a NormalizedError. Details carry
// the provider's error text when present, otherwise the local error text.
func Classify(err error) *NormalizedError {
	if err == nil {
		return nil
	}
	var existing *NormalizedError
	if errors.As(err, &existing) {
		return existing
	}

	category := CategoryUpstreamError
	status := http.StatusInternalServerError
	details := err.Error()

	var httpErr *provider.HTTPError
	switch {
	case errors.Is(err, provider.ErrMissingCredential):
		category = CategoryProviderMisconfigured
	case errors.As(err, &httpErr):
		if c, ok := statusCategories[httpErr.StatusCode]; ok {
			category = c
			status = httpErr.StatusCode
		}
		if httpErr.Message != "" {
			details = httpErr.Message
		} else if httpErr.Body != "" {
			details = httpErr.Body
		}
	case errors.Is(err, context.DeadlineExceeded):
		details = "provider request timed out: " + details
	}

	return &NormalizedError{
		Category:   category,
		HTTPStatus: status,
		Message:    categoryMessages[category],
		Details:    redactSecrets(details),
		cause:      err,
	}
}

func redactSecrets(s string) string {
	s = bearerTokenRe.ReplaceAllString(s, "Bearer [REDACTED]")
	s = apiKeyKVRe.ReplaceAllString(s, "${1}${2}[REDACTED]")
	return strings.TrimSpace(s)
}
