// Package provider translates canonical searches into the request shape of one
// third-party people-data API and decodes its responses back into raw records.
package provider

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/octobees/employee-search/api/internal/people"
)

// Style identifies how a provider expects its query.
type Style string

const (
	StyleQueryDSL    Style = "query_dsl"
	StyleQueryParams Style = "query_params"
	StyleJSONFilter  Style = "json_filter"
)

// Provider names accepted by New.
const (
	NamePDL        = "pdl"
	NameEnrichment = "enrichment"
	NameContacts   = "contacts"
)

const defaultTimeout = 20 * time.Second

var (
	// ErrMissingCredential is returned before any network call when no API key is
	// available for the provider.
	ErrMissingCredential = errors.New("provider credential is not configured")
	// ErrUnknownProvider is returned by New for an unsupported provider name.
	ErrUnknownProvider = errors.New("unknown search provider")
)

// Config describes the provider a deployment talks to. It is built once at startup
// and shared read-only.
type Config struct {
	Name           string
	CredentialRef  string
	Endpoint       string
	PageSize       int
	DefaultCountry string
	Timeout        time.Duration
}

// Request is a provider-native outbound call.
type Request struct {
	Method string
	URL    string
	Body   []byte
}

// Adapter is the per-provider strategy used by the search service.
type Adapter interface {
	Name() string
	Style() Style
	// BuildRequest never adds a filter for an empty SearchParams field.
	BuildRequest(params people.SearchParams) (Request, error)
	// Authorize attaches the credential to an outbound request.
	Authorize(req *http.Request, credential string)
	// Decode extracts records in provider order and the provider-reported total.
	Decode(body []byte) ([]people.RawRecord, int, error)
}

// New returns the adapter for cfg.Name with defaults applied.
func New(cfg Config) (Adapter, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Name))
	switch name {
	case NamePDL, "":
		return newPDLAdapter(cfg)
	case NameEnrichment:
		return newEnrichmentAdapter(cfg)
	case NameContacts:
		return newContactsAdapter(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Name)
	}
}

// TimeoutOrDefault returns the configured outbound timeout or the default.
func (c Config) TimeoutOrDefault() time.Duration {
	if c.Timeout <= 0 {
		return defaultTimeout
	}
	return c.Timeout
}

// pageSize clamps the configured size to (0, max].
func pageSize(configured, max int) int {
	if configured <= 0 || configured > max {
		return max
	}
	return configured
}

func endpoint(configured, fallback string) (string, error) {
	raw := strings.TrimSpace(configured)
	if raw == "" {
		raw = fallback
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid provider endpoint %q", raw)
	}
	return u.String(), nil
}

// objectEntries decodes the elements of a provider result array that are JSON objects.
// Anything else in the array is skipped so one bad entry does not sink the page.
func objectEntries(items []json.RawMessage) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		var obj map[string]any
		if err := json.Unmarshal(item, &obj); err != nil || obj == nil {
			continue
		}
		out = append(out, obj)
	}
	return out
}
