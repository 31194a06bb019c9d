package provider

import (
	"encoding/json"
	"fmt"
	"strings"
)

// maxErrorBody bounds how much of a failed response is kept.
const maxErrorBody = 4096

// HTTPError is a non-2xx provider response.
type HTTPError struct {
	Provider   string
	StatusCode int
	// Message is the provider's own error text when it could be found in the body.
	Message string
	// Body is the raw response body, truncated to maxErrorBody bytes.
	Body string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "provider http error"
	}
	msg := e.Message
	if msg == "" {
		msg = e.Body
	}
	if msg == "" {
		return fmt.Sprintf("%s: API error (%d)", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s: API error (%d): %s", e.Provider, e.StatusCode, msg)
}

func newHTTPError(provider string, status int, body []byte) *HTTPError {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return &HTTPError{
		Provider:   provider,
		StatusCode: status,
		Message:    errorMessage(body),
		Body:       strings.TrimSpace(string(body)),
	}
}

// errorMessage finds the human-readable error in the envelopes providers use:
// {"error": "..."}, {"error": {"message": "..."}}, {"message": "..."} and
// {"description": "..."}.
func errorMessage(body []byte) string {
	var envelope struct {
		Error       json.RawMessage `json:"error"`
		Message     string          `json:"message"`
		Description string          `json:"description"`
	}
	if len(body) == 0 || json.Unmarshal(body, &envelope) != nil {
		return ""
	}

	if len(envelope.Error) > 0 {
		var s string
		if json.Unmarshal(envelope.Error, &s) == nil && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
		var nested struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		}
		if json.Unmarshal(envelope.Error, &nested) == nil {
			if m := strings.TrimSpace(nested.Message); m != "" {
				return m
			}
			if t := strings.TrimSpace(nested.Type); t != "" {
				return t
			}
		}
	}
	if m := strings.TrimSpace(envelope.Message); m != "" {
		return m
	}
	return strings.TrimSpace(envelope.Description)
}
