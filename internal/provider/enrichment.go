package provider

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/octobees/employee-search/api/internal/people"
)

const (
	enrichmentDefaultEndpoint = "https://nubela.co/proxycurl/api/v2/search/person"
	enrichmentDefaultCountry  = "us"
	// Enriched results are billed per profile, so the page stays small.
	enrichmentMaxPageSize = 10
)

// enrichmentAdapter talks to a profile-enrichment person search API driven by query
// string parameters.
type enrichmentAdapter struct {
	endpoint string
	country  string
	size     int
}

type enrichmentSearchResponse struct {
	Results          []json.RawMessage `json:"results"`
	TotalResultCount int               `json:"total_result_count"`
}

func newEnrichmentAdapter(cfg Config) (*enrichmentAdapter, error) {
	ep, err := endpoint(cfg.Endpoint, enrichmentDefaultEndpoint)
	if err != nil {
		return nil, err
	}
	country := strings.ToLower(strings.TrimSpace(cfg.DefaultCountry))
	if country == "" {
		country = enrichmentDefaultCountry
	}
	return &enrichmentAdapter{
		endpoint: ep,
		country:  country,
		size:     pageSize(cfg.PageSize, enrichmentMaxPageSize),
	}, nil
}

func (a *enrichmentAdapter) Name() string { return NameEnrichment }

func (a *enrichmentAdapter) Style() Style { return StyleQueryParams }

func (a *enrichmentAdapter) BuildRequest(params people.SearchParams) (Request, error) {
	u, err := url.Parse(a.endpoint)
	if err != nil {
		return Request{}, fmt.Errorf("enrichment: parse endpoint: %w", err)
	}

	values := u.Query()
	if params.Company != "" {
		values.Set("current_company_name", params.Company)
	}
	if params.JobTitle != "" {
		values.Set("current_role_title", params.JobTitle)
	}
	if params.Location != "" {
		values.Set("city", params.Location)
	}
	values.Set("country", a.country)
	values.Set("enrich_profiles", "enrich")
	values.Set("page_size", strconv.Itoa(a.size))

	u.RawQuery = values.Encode()
	return Request{Method: http.MethodGet, URL: u.String()}, nil
}

func (a *enrichmentAdapter) Authorize(req *http.Request, credential string) {
	req.Header.Set("Authorization", "Bearer "+credential)
}

// Decode flattens each nested profile onto the raw record keys.
func (a *enrichmentAdapter) Decode(body []byte) ([]people.RawRecord, int, error) {
	var payload enrichmentSearchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, 0, fmt.Errorf("enrichment: decode response: %w", err)
	}

	entries := objectEntries(payload.Results)
	records := make([]people.RawRecord, 0, len(entries))
	for _, res := range entries {
		records = append(records, flattenProfile(res))
	}
	return records, payload.TotalResultCount, nil
}

func flattenProfile(res map[string]any) people.RawRecord {
	p, _ := res["profile"].(map[string]any)
	if p == nil {
		p = map[string]any{}
	}

	rec := people.RawRecord{
		people.KeyFirstName:      p["first_name"],
		people.KeyLastName:       p["last_name"],
		people.KeyLinkedInURL:    res["linkedin_profile_url"],
		people.KeyProfilePicURL:  p["profile_pic_url"],
		people.KeyPersonalEmails: p["personal_emails"],
		people.KeyPhoneNumbers:   p["personal_numbers"],
	}
	for _, key := range []string{people.KeyWorkEmail, people.KeyEmail, people.KeyEmails} {
		if v, ok := p[key]; ok {
			rec[key] = v
		}
	}

	title, _ := p["occupation"].(string)
	company := ""
	if exp := currentExperience(p["experiences"]); exp != nil {
		company, _ = exp["company"].(string)
		if t, _ := exp["title"].(string); t != "" {
			title = t
		}
	}
	rec[people.KeyJobTitle] = title
	rec[people.KeyCompanyName] = company
	return rec
}

// currentExperience returns the first experience without an end date, falling back to
// the first one listed.
func currentExperience(v any) map[string]any {
	list, _ := v.([]any)
	var first map[string]any
	for _, item := range list {
		exp, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if first == nil {
			first = exp
		}
		if exp["ends_at"] == nil {
			return exp
		}
	}
	return first
}

var _ Adapter = (*enrichmentAdapter)(nil)
