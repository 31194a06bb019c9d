package people

import (
	"strings"

	"golang.org/x/net/idna"
)

// withheldToken is what some providers put in an email field when an address exists
// but the account is not entitled to see it.
const withheldToken = "true"

// lockedEmailPrefix marks a masked address returned by contact-search providers for
// records that have not been unlocked.
const lockedEmailPrefix = "email_not_unlocked@"

var (
	idnaProfile = idna.Lookup

	workEmailTypes = map[string]struct{}{
		"work":                 {},
		"professional":         {},
		"business":             {},
		"current_professional": {},
	}
)

// ExtractWorkEmail returns the best-effort work email of a raw record, or nil.
//
// Sources are tried in order: work_email, email, typed emails array (work-typed entry
// first, then the first usable entry), business_email, personal_emails. Boolean flags
// and withheld placeholders never count as an address. The record is not modified.
func ExtractWorkEmail(r RawRecord) *string {
	email, _ := extractWorkEmail(r)
	return email
}

// extractWorkEmail also reports which key the address came from.
func extractWorkEmail(r RawRecord) (*string, string) {
	if v, ok := usableAddress(r[KeyWorkEmail]); ok {
		return &v, KeyWorkEmail
	}
	if v, ok := usableAddress(r[KeyEmail]); ok {
		return &v, KeyEmail
	}
	if v, ok := typedEmail(r[KeyEmails]); ok {
		return &v, KeyEmails
	}
	if v, ok := usableAddress(r[KeyBusinessEmail]); ok {
		return &v, KeyBusinessEmail
	}
	for _, item := range asList(r[KeyPersonalEmails]) {
		if v, ok := usableAddress(item); ok {
			return &v, KeyPersonalEmails
		}
	}
	return nil, ""
}

// EmailWithheld reports whether the provider signalled that an email exists without
// returning a usable address.
func EmailWithheld(r RawRecord) bool {
	if ExtractWorkEmail(r) != nil {
		return false
	}
	for _, key := range []string{KeyWorkEmail, KeyEmail, KeyBusinessEmail} {
		if isWithheld(r[key]) {
			return true
		}
	}
	for _, item := range asList(r[KeyEmails]) {
		if entry, ok := item.(map[string]any); ok {
			if isWithheld(entry["address"]) || isWithheld(entry["email"]) {
				return true
			}
			continue
		}
		if isWithheld(item) {
			return true
		}
	}
	return false
}

func typedEmail(v any) (string, bool) {
	var fallback string
	for _, item := range asList(v) {
		addr, kind := emailEntry(item)
		usable, ok := usableAddress(addr)
		if !ok {
			continue
		}
		if _, work := workEmailTypes[strings.ToLower(strings.TrimSpace(kind))]; work {
			return usable, true
		}
		if fallback == "" {
			fallback = usable
		}
	}
	return fallback, fallback != ""
}

func emailEntry(item any) (address, kind string) {
	switch v := item.(type) {
	case string:
		return v, ""
	case map[string]any:
		address, _ = v["address"].(string)
		if address == "" {
			address, _ = v["email"].(string)
		}
		kind, _ = v["type"].(string)
		if kind == "" {
			kind, _ = v["email_type"].(string)
		}
		return address, kind
	}
	return "", ""
}

func usableAddress(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" || isWithheld(s) {
		return "", false
	}
	// Both sides of the last "@" must be non-empty.
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return "", false
	}
	return normalizeAddress(s), true
}

func isWithheld(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		return s == withheldToken || strings.HasPrefix(s, lockedEmailPrefix)
	}
	return false
}

// normalizeAddress lowercases the domain and converts it to its ASCII form. The input
// is returned unchanged when the domain is not a valid IDNA name.
func normalizeAddress(addr string) string {
	at := strings.LastIndex(addr, "@")
	local, domain := addr[:at], addr[at+1:]
	ascii, err := idnaProfile.ToASCII(domain)
	if err != nil || ascii == "" {
		return addr
	}
	return local + "@" + ascii
}

func asList(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, m := range t {
			out[i] = m
		}
		return out
	}
	return nil
}
