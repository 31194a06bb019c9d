package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/octobees/employee-search/api/internal/entity"
	"github.com/octobees/employee-search/api/internal/people"
	"github.com/octobees/employee-search/api/internal/provider"
)

type executorStub struct {
	body       []byte
	err        error
	calls      int
	credential string
	req        provider.Request
}

func (s *executorStub) Execute(ctx context.Context, req provider.Request, credential string) ([]byte, error) {
	s.calls++
	s.req = req
	s.credential = credential
	if s.err != nil {
		return nil, s.err
	}
	return s.body, nil
}

type recorderStub struct {
	entries []entity.SearchLog
	err     error
}

func (r *recorderStub) Record(ctx context.Context, entry entity.SearchLog) error {
	r.entries = append(r.entries, entry)
	return r.err
}

func newPDL(t *testing.T) provider.Adapter {
	t.Helper()
	adapter, err := provider.New(provider.Config{Name: provider.NamePDL})
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	return adapter
}

const pdlBody = `{"status":200,"total":500,"data":[
	{"first_name":"Ann","last_name":"Lee","job_title":"CTO","linkedin_url":"linkedin.com/in/ann","work_email":true,
	 "emails":[{"address":"a@x.com","type":"personal"},{"address":"b@x.com","type":"work"}]},
	{"first_name":"Bo","work_email":"true","job_company_name":"Acme Corp"},
	{"first_name":"Cy","work_email":"cy@acme.com","profile_pic_url":"https://img/cy.png"}
]}`

func TestSearchServiceRunSuccess(t *testing.T) {
	exec := &executorStub{body: []byte(pdlBody)}
	recorder := &recorderStub{}
	svc := NewSearchService(newPDL(t), exec, people.NewNormalizer("US"), "server-key", WithRecorder(recorder))

	result, err := svc.Run(context.Background(), people.NewSearchParams("Acme", "", ""), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if exec.calls != 1 || exec.credential != "server-key" {
		t.Fatalf("expected one call with server key, got %d calls key=%q", exec.calls, exec.credential)
	}
	if result.Total != 500 || result.CreditsUsed != 3 || result.Provider != "pdl" {
		t.Fatalf("unexpected metadata: %+v", result)
	}

	names := []string{"Ann", "Bo", "Cy"}
	for i, rec := range result.Data {
		if rec.FirstName != names[i] {
			t.Fatalf("order not preserved at %d", i)
		}
		if rec.WorkEmail != nil && !strings.Contains(*rec.WorkEmail, "@") {
			t.Fatalf("record %d violates email invariant", i)
		}
	}
	if result.Data[0].WorkEmail == nil || *result.Data[0].WorkEmail != "b@x.com" {
		t.Fatalf("expected work-typed email, got %v", result.Data[0].WorkEmail)
	}
	if result.Data[1].WorkEmail != nil || !result.Data[1].WorkEmailWithheld {
		t.Fatalf("expected withheld email for placeholder token")
	}
	if result.Data[1].JobCompanyName != "Acme Corp" || result.Data[0].JobCompanyName != "Acme" {
		t.Fatalf("unexpected company names: %q %q", result.Data[0].JobCompanyName, result.Data[1].JobCompanyName)
	}

	if len(recorder.entries) != 1 {
		t.Fatalf("expected one audit entry")
	}
	entry := recorder.entries[0]
	if entry.Status != http.StatusOK || entry.Returned != 3 || entry.Total != 500 || entry.Company != "Acme" {
		t.Fatalf("unexpected audit entry: %+v", entry)
	}
}

func TestSearchServiceMissingCredential(t *testing.T) {
	exec := &executorStub{body: []byte(pdlBody)}
	recorder := &recorderStub{}
	svc := NewSearchService(newPDL(t), exec, nil, "", WithRecorder(recorder))

	_, err := svc.Run(context.Background(), people.SearchParams{}, "  ")

	var nerr *NormalizedError
	if !errors.As(err, &nerr) {
		t.Fatalf("expected NormalizedError, got %v", err)
	}
	if nerr.Category != CategoryProviderMisconfigured || nerr.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unexpected classification: %+v", nerr)
	}
	if exec.calls != 0 {
		t.Fatalf("expected no network call, got %d", exec.calls)
	}
	if len(recorder.entries) != 1 || recorder.entries[0].Category != string(CategoryProviderMisconfigured) {
		t.Fatalf("expected failure audit entry, got %+v", recorder.entries)
	}
}

func TestSearchServiceCredentialResolution(t *testing.T) {
	tests := map[string]struct {
		serverKey  string
		requestKey string
		allow      bool
		expect     string
	}{
		"request key preferred":      {serverKey: "server", requestKey: "client", allow: true, expect: "client"},
		"server key fallback":        {serverKey: "server", requestKey: "", allow: true, expect: "server"},
		"request keys disabled":      {serverKey: "server", requestKey: "client", allow: false, expect: "server"},
		"request key without server": {serverKey: "", requestKey: "client", allow: true, expect: "client"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			exec := &executorStub{body: []byte(`{"data":[]}`)}
			svc := NewSearchService(newPDL(t), exec, nil, tt.serverKey, WithRequestKeys(tt.allow))
			if _, err := svc.Run(context.Background(), people.SearchParams{}, tt.requestKey); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if exec.credential != tt.expect {
				t.Fatalf("expected credential %q, got %q", tt.expect, exec.credential)
			}
		})
	}
}

func TestSearchServiceProviderFailure(t *testing.T) {
	exec := &executorStub{err: &provider.HTTPError{Provider: "pdl", StatusCode: http.StatusTooManyRequests, Message: "rate limit reached"}}
	svc := NewSearchService(newPDL(t), exec, nil, "key")

	result, err := svc.Run(context.Background(), people.NewSearchParams("Acme", "", ""), "")

	var nerr *NormalizedError
	if !errors.As(err, &nerr) {
		t.Fatalf("expected NormalizedError, got %v", err)
	}
	if nerr.Category != CategoryRateLimited || nerr.HTTPStatus != http.StatusTooManyRequests {
		t.Fatalf("unexpected classification: %+v", nerr)
	}
	if nerr.Details != "rate limit reached" {
		t.Fatalf("expected provider details, got %q", nerr.Details)
	}
	if result.Data != nil {
		t.Fatalf("expected no partial data on failure")
	}
}

func TestSearchServiceDecodeFailure(t *testing.T) {
	exec := &executorStub{body: []byte("<html>gateway</html>")}
	svc := NewSearchService(newPDL(t), exec, nil, "key")

	_, err := svc.Run(context.Background(), people.SearchParams{}, "")
	var nerr *NormalizedError
	if !errors.As(err, &nerr) || nerr.Category != CategoryUpstreamError {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestSearchServiceRecorderFailureDoesNotFailSearch(t *testing.T) {
	exec := &executorStub{body: []byte(`{"data":[{"first_name":"a"}],"total":1}`)}
	svc := NewSearchService(newPDL(t), exec, nil, "key", WithRecorder(&recorderStub{err: errors.New("db down")}))

	result, err := svc.Run(context.Background(), people.SearchParams{}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Data) != 1 {
		t.Fatalf("expected result despite audit failure")
	}
	if svc.ProviderName() != "pdl" {
		t.Fatalf("unexpected provider name")
	}
}
