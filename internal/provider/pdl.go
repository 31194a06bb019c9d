package provider

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/octobees/employee-search/api/internal/people"
)

const (
	pdlDefaultEndpoint = "https://api.peopledatalabs.com/v5/person/search"
	pdlMaxPageSize     = 20
)

// pdlAdapter talks to the People Data Labs person search API, which takes an
// Elasticsearch boolean query.
type pdlAdapter struct {
	endpoint string
	size     int
}

type pdlMatch struct {
	Match map[string]string `json:"match"`
}

type pdlBool struct {
	Must []pdlMatch `json:"must"`
}

type pdlQuery struct {
	Bool pdlBool `json:"bool"`
}

type pdlSearchRequest struct {
	Query  pdlQuery `json:"query"`
	Size   int      `json:"size"`
	Pretty bool     `json:"pretty"`
}

type pdlSearchResponse struct {
	Status int               `json:"status"`
	Data   []json.RawMessage `json:"data"`
	Total  int               `json:"total"`
}

func newPDLAdapter(cfg Config) (*pdlAdapter, error) {
	ep, err := endpoint(cfg.Endpoint, pdlDefaultEndpoint)
	if err != nil {
		return nil, err
	}
	return &pdlAdapter{endpoint: ep, size: pageSize(cfg.PageSize, pdlMaxPageSize)}, nil
}

func (a *pdlAdapter) Name() string { return NamePDL }

func (a *pdlAdapter) Style() Style { return StyleQueryDSL }

// BuildRequest emits one match clause per non-empty field. Empty params yield
// "must": [], which the provider treats as unconstrained.
func (a *pdlAdapter) BuildRequest(params people.SearchParams) (Request, error) {
	must := make([]pdlMatch, 0, 3)
	add := func(field, value string) {
		if value != "" {
			must = append(must, pdlMatch{Match: map[string]string{field: value}})
		}
	}
	add("job_company_name", params.Company)
	add("job_title", params.JobTitle)
	add("location_name", params.Location)

	body, err := json.Marshal(pdlSearchRequest{
		Query:  pdlQuery{Bool: pdlBool{Must: must}},
		Size:   a.size,
		Pretty: true,
	})
	if err != nil {
		return Request{}, fmt.Errorf("pdl: marshal query: %w", err)
	}
	return Request{Method: http.MethodPost, URL: a.endpoint, Body: body}, nil
}

func (a *pdlAdapter) Authorize(req *http.Request, credential string) {
	req.Header.Set("X-Api-Key", credential)
}

// Decode returns PDL records as-is; their field names already match the raw keys.
// Entries that are not objects are dropped.
func (a *pdlAdapter) Decode(body []byte) ([]people.RawRecord, int, error) {
	var payload pdlSearchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, 0, fmt.Errorf("pdl: decode response: %w", err)
	}
	entries := objectEntries(payload.Data)
	records := make([]people.RawRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, people.RawRecord(e))
	}
	return records, payload.Total, nil
}

var _ Adapter = (*pdlAdapter)(nil)
