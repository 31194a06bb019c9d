// Package people holds the provider-independent employee search contract and the
// rules that turn raw provider records into it.
package people

import "strings"

// SearchParams is the canonical employee search input. An empty field applies no filter
// on that dimension.
type SearchParams struct {
	Company  string `json:"company,omitempty"`
	JobTitle string `json:"jobTitle,omitempty"`
	Location string `json:"location,omitempty"`
}

// NewSearchParams trims every field so that whitespace-only input counts as absent.
func NewSearchParams(company, jobTitle, location string) SearchParams {
	return SearchParams{
		Company:  strings.TrimSpace(company),
		JobTitle: strings.TrimSpace(jobTitle),
		Location: strings.TrimSpace(location),
	}
}

// IsEmpty reports whether no filter is set.
func (p SearchParams) IsEmpty() bool {
	return p.Company == "" && p.JobTitle == "" && p.Location == ""
}

// RawRecord is one person as returned by a provider, flattened onto the well-known keys
// below. Values keep whatever JSON type the provider used.
type RawRecord map[string]any

// Well-known raw record keys.
const (
	KeyFirstName      = "first_name"
	KeyLastName       = "last_name"
	KeyJobTitle       = "job_title"
	KeyCompanyName    = "job_company_name"
	KeyLinkedInURL    = "linkedin_url"
	KeyProfilePicURL  = "profile_pic_url"
	KeyWorkEmail      = "work_email"
	KeyEmail          = "email"
	KeyEmails         = "emails"
	KeyBusinessEmail  = "business_email"
	KeyPersonalEmails = "personal_emails"
	KeyMobilePhone    = "mobile_phone"
	KeyPhoneNumbers   = "phone_numbers"
)

// EmployeeRecord is the canonical employee shape returned to clients.
// WorkEmail is nil or an address containing "@".
type EmployeeRecord struct {
	FirstName         string  `json:"first_name"`
	LastName          string  `json:"last_name"`
	JobTitle          string  `json:"job_title"`
	JobCompanyName    string  `json:"job_company_name"`
	LinkedInURL       string  `json:"linkedin_url"`
	WorkEmail         *string `json:"work_email"`
	ProfilePicURL     *string `json:"profile_pic_url"`
	PhoneNumber       *string `json:"phone_number"`
	WorkEmailWithheld bool    `json:"work_email_withheld,omitempty"`
}

// SearchResult wraps one page of normalized records.
//
// Total is the match count reported by the provider and may exceed len(Data).
// CreditsUsed is an estimate (records returned), not the provider's billed cost.
type SearchResult struct {
	Data        []EmployeeRecord `json:"data"`
	Total       int              `json:"total"`
	CreditsUsed int              `json:"credits_used"`
	Provider    string           `json:"provider"`
}
