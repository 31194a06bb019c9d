package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/octobees/employee-search/api/internal/provider"
)

func TestClassify(t *testing.T) {
	tests := map[string]struct {
		err      error
		category Category
		status   int
		details  string
	}{
		"bad request": {
			err:      &provider.HTTPError{Provider: "pdl", StatusCode: 400, Message: "invalid field"},
			category: CategoryInvalidParams, status: 400, details: "invalid field",
		},
		"unauthorized": {
			err:      &provider.HTTPError{Provider: "pdl", StatusCode: 401, Message: "bad key"},
			category: CategoryAuthFailure, status: 401, details: "bad key",
		},
		"payment required": {
			err:      &provider.HTTPError{Provider: "pdl", StatusCode: 402, Message: "out of credits"},
			category: CategoryCreditsExhausted, status: 402, details: "out of credits",
		},
		"forbidden": {
			err:      &provider.HTTPError{Provider: "pdl", StatusCode: 403, Body: "plan does not include search"},
			category: CategoryAccessDenied, status: 403, details: "plan does not include search",
		},
		"rate limited wrapped": {
			err:      fmt.Errorf("search: %w", &provider.HTTPError{Provider: "pdl", StatusCode: 429, Message: "slow down"}),
			category: CategoryRateLimited, status: 429, details: "slow down",
		},
		"other status": {
			err:      &provider.HTTPError{Provider: "pdl", StatusCode: 503, Message: "maintenance"},
			category: CategoryUpstreamError, status: 500, details: "maintenance",
		},
		"not found is upstream": {
			err:      &provider.HTTPError{Provider: "pdl", StatusCode: 404, Message: "No records were found matching your search"},
			category: CategoryUpstreamError, status: 500, details: "No records were found matching your search",
		},
		"missing credential": {
			err:      provider.ErrMissingCredential,
			category: CategoryProviderMisconfigured, status: 500, details: provider.ErrMissingCredential.Error(),
		},
		"network failure": {
			err:      errors.New("dial tcp: connection refused"),
			category: CategoryUpstreamError, status: 500, details: "dial tcp: connection refused",
		},
		"timeout": {
			err:      fmt.Errorf("pdl: request failed: %w", context.DeadlineExceeded),
			category: CategoryUpstreamError, status: 500, details: "provider request timed out: pdl: request failed: context deadline exceeded",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := Classify(tt.err)
			if got.Category != tt.category || got.HTTPStatus != tt.status {
				t.Fatalf("expected %s/%d, got %s/%d", tt.category, tt.status, got.Category, got.HTTPStatus)
			}
			if got.Details != tt.details {
				t.Fatalf("expected details %q, got %q", tt.details, got.Details)
			}
			if got.Message != categoryMessages[tt.category] || got.Message == "" {
				t.Fatalf("unexpected message %q", got.Message)
			}
			if !errors.Is(got, tt.err) {
				t.Fatalf("expected cause to be preserved")
			}
		})
	}
}

func TestClassifyNilAndIdempotent(t *testing.T) {
	if Classify(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
	first := Classify(&provider.HTTPError{StatusCode: http.StatusTooManyRequests})
	if Classify(first) != first {
		t.Fatalf("expected normalized errors to pass through")
	}
}

func TestClassifyRedactsSecrets(t *testing.T) {
	err := errors.New(`Get "https://api.example/search?api_key=abc123": Authorization: Bearer sk-live-xyz`)
	got := Classify(err)
	if strings.Contains(got.Details, "abc123") || strings.Contains(got.Details, "sk-live-xyz") {
		t.Fatalf("expected secrets to be redacted, got %q", got.Details)
	}
	if !strings.Contains(got.Details, "api_key=[REDACTED]") {
		t.Fatalf("expected redaction marker, got %q", got.Details)
	}
}
