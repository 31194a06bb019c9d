package provider

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/octobees/employee-search/api/internal/people"
)

const (
	contactsDefaultEndpoint = "https://api.apollo.io/api/v1/mixed_people/search"
	contactsMaxPageSize     = 25
)

// contactsAdapter talks to a contact-search API that takes a JSON filter object.
type contactsAdapter struct {
	endpoint string
	size     int
}

// contactsFilter leaves unset filters out of the encoded body; the API rejects null keys.
type contactsFilter struct {
	OrganizationName string   `json:"q_organization_name,omitempty"`
	PersonTitles     []string `json:"person_titles,omitempty"`
	PersonLocations  []string `json:"person_locations,omitempty"`
	Page             int      `json:"page"`
	PerPage          int      `json:"per_page"`
}

type contactsSearchResponse struct {
	People     []json.RawMessage `json:"people"`
	Pagination struct {
		TotalEntries int `json:"total_entries"`
	} `json:"pagination"`
}

func newContactsAdapter(cfg Config) (*contactsAdapter, error) {
	ep, err := endpoint(cfg.Endpoint, contactsDefaultEndpoint)
	if err != nil {
		return nil, err
	}
	return &contactsAdapter{endpoint: ep, size: pageSize(cfg.PageSize, contactsMaxPageSize)}, nil
}

func (a *contactsAdapter) Name() string { return NameContacts }

func (a *contactsAdapter) Style() Style { return StyleJSONFilter }

func (a *contactsAdapter) BuildRequest(params people.SearchParams) (Request, error) {
	filter := contactsFilter{
		OrganizationName: params.Company,
		Page:             1,
		PerPage:          a.size,
	}
	if params.JobTitle != "" {
		filter.PersonTitles = []string{params.JobTitle}
	}
	if params.Location != "" {
		filter.PersonLocations = []string{params.Location}
	}

	body, err := json.Marshal(filter)
	if err != nil {
		return Request{}, fmt.Errorf("contacts: marshal filter: %w", err)
	}
	return Request{Method: http.MethodPost, URL: a.endpoint, Body: body}, nil
}

func (a *contactsAdapter) Authorize(req *http.Request, credential string) {
	req.Header.Set("X-Api-Key", credential)
	req.Header.Set("Cache-Control", "no-cache")
}

func (a *contactsAdapter) Decode(body []byte) ([]people.RawRecord, int, error) {
	var payload contactsSearchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, 0, fmt.Errorf("contacts: decode response: %w", err)
	}

	entries := objectEntries(payload.People)
	records := make([]people.RawRecord, 0, len(entries))
	for _, p := range entries {
		records = append(records, flattenContact(p))
	}
	return records, payload.Pagination.TotalEntries, nil
}

func flattenContact(p map[string]any) people.RawRecord {
	company, _ := p["organization_name"].(string)
	if org, ok := p["organization"].(map[string]any); ok {
		if name, _ := org["name"].(string); name != "" {
			company = name
		}
	}

	phones := make([]any, 0)
	if list, ok := p["phone_numbers"].([]any); ok {
		for _, item := range list {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if n, _ := entry["sanitized_number"].(string); n != "" {
				phones = append(phones, n)
			} else if n, _ := entry["raw_number"].(string); n != "" {
				phones = append(phones, n)
			}
		}
	}

	return people.RawRecord{
		people.KeyFirstName:      p["first_name"],
		people.KeyLastName:       p["last_name"],
		people.KeyJobTitle:       p["title"],
		people.KeyCompanyName:    company,
		people.KeyLinkedInURL:    p["linkedin_url"],
		people.KeyProfilePicURL:  p["photo_url"],
		people.KeyEmail:          p["email"],
		people.KeyPersonalEmails: p["personal_emails"],
		people.KeyPhoneNumbers:   phones,
	}
}

var _ Adapter = (*contactsAdapter)(nil)
