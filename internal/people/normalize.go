package people

import (
	"context"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"go.uber.org/zap"

	"github.com/octobees/employee-search/api/internal/logger"
)

const defaultPhoneRegion = "US"

// Normalizer maps raw provider records onto EmployeeRecord. It never fails: missing or
// mistyped fields degrade to empty values.
type Normalizer struct {
	phoneRegion string
}

// NewNormalizer builds a normalizer that parses national phone numbers in region.
func NewNormalizer(phoneRegion string) *Normalizer {
	region := strings.ToUpper(strings.TrimSpace(phoneRegion))
	if region == "" {
		region = defaultPhoneRegion
	}
	return &Normalizer{phoneRegion: region}
}

// Normalize converts records in provider order and wraps them with batch metadata.
// total is the provider-reported match count.
func (n *Normalizer) Normalize(ctx context.Context, records []RawRecord, total int, params SearchParams, provider string) SearchResult {
	log := logger.FromContext(ctx)

	data := make([]EmployeeRecord, 0, len(records))
	withEmail := 0
	for i, raw := range records {
		rec, source := n.record(raw, params)
		if rec.WorkEmail != nil {
			withEmail++
		}
		log.Debug("normalized provider record",
			zap.Int("index", i),
			zap.String("email_source", source),
			zap.Bool("email_withheld", rec.WorkEmailWithheld),
		)
		data = append(data, rec)
	}

	if total < 0 {
		total = 0
	}

	log.Debug("normalized provider batch",
		zap.String("provider", provider),
		zap.Int("records", len(data)),
		zap.Int("with_email", withEmail),
		zap.Int("total", total),
	)

	return SearchResult{
		Data:        data,
		Total:       total,
		CreditsUsed: len(data),
		Provider:    provider,
	}
}

// Record converts a single raw record.
func (n *Normalizer) Record(raw RawRecord, params SearchParams) EmployeeRecord {
	rec, _ := n.record(raw, params)
	return rec
}

func (n *Normalizer) record(raw RawRecord, params SearchParams) (EmployeeRecord, string) {
	email, source := extractWorkEmail(raw)

	company := stringField(raw, KeyCompanyName)
	if company == "" {
		company = params.Company
	}

	return EmployeeRecord{
		FirstName:         stringField(raw, KeyFirstName),
		LastName:          stringField(raw, KeyLastName),
		JobTitle:          stringField(raw, KeyJobTitle),
		JobCompanyName:    company,
		LinkedInURL:       stringField(raw, KeyLinkedInURL),
		WorkEmail:         email,
		ProfilePicURL:     optionalString(raw, KeyProfilePicURL),
		PhoneNumber:       n.phoneNumber(raw),
		WorkEmailWithheld: email == nil && EmailWithheld(raw),
	}, source
}

func (n *Normalizer) phoneNumber(raw RawRecord) *string {
	candidates := []any{raw[KeyMobilePhone]}
	candidates = append(candidates, asList(raw[KeyPhoneNumbers])...)

	for _, c := range candidates {
		s, ok := c.(string)
		if !ok {
			continue
		}
		if formatted := normalizePhone(s, n.phoneRegion); formatted != "" {
			return &formatted
		}
	}
	return nil
}

func normalizePhone(raw, region string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	number, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsValidNumber(number) {
		return ""
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

func stringField(raw RawRecord, key string) string {
	s, _ := raw[key].(string)
	return strings.TrimSpace(s)
}

func optionalString(raw RawRecord, key string) *string {
	s := stringField(raw, key)
	if s == "" {
		return nil
	}
	return &s
}
