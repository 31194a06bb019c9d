package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/octobees/employee-search/api/internal/entity"
	"github.com/octobees/employee-search/api/internal/logger"
	"github.com/octobees/employee-search/api/internal/metrics"
	"github.com/octobees/employee-search/api/internal/people"
	"github.com/octobees/employee-search/api/internal/provider"
)

const recordTimeout = 3 * time.Second

// Executor performs the outbound provider call.
type Executor interface {
	Execute(ctx context.Context, req provider.Request, credential string) ([]byte, error)
}

// SearchRecorder stores search audit entries.
type SearchRecorder interface {
	Record(ctx context.Context, entry entity.SearchLog) error
}

// SearchService runs one employee search against the configured provider. It holds
// only read-only configuration and is safe for concurrent use.
type SearchService struct {
	adapter         provider.Adapter
	client          Executor
	normalizer      *people.Normalizer
	serverKey       string
	allowRequestKey bool
	recorder        SearchRecorder
	now             func() time.Time
}

// SearchOption configures optional behaviour.
type SearchOption func(*SearchService)

// WithRecorder enables the search audit log.
func WithRecorder(r SearchRecorder) SearchOption {
	return func(s *SearchService) {
		s.recorder = r
	}
}

// WithRequestKeys controls whether a caller-supplied API key may be used.
func WithRequestKeys(allow bool) SearchOption {
	return func(s *SearchService) {
		s.allowRequestKey = allow
	}
}

// NewSearchService wires the service. serverKey may be empty when callers supply keys.
func NewSearchService(adapter provider.Adapter, client Executor, normalizer *people.Normalizer, serverKey string, opts ...SearchOption) *SearchService {
	s := &SearchService{
		adapter:         adapter,
		client:          client,
		normalizer:      normalizer,
		serverKey:       strings.TrimSpace(serverKey),
		allowRequestKey: true,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.normalizer == nil {
		s.normalizer = people.NewNormalizer("")
	}
	return s
}

// ProviderName returns the active provider.
func (s *SearchService) ProviderName() string {
	return s.adapter.Name()
}

// Run searches the provider. On failure the returned error is always a
// *NormalizedError.
func (s *SearchService) Run(ctx context.Context, params people.SearchParams, apiKey string) (people.SearchResult, error) {
	start := s.now()
	name := s.adapter.Name()
	log := logger.FromContext(ctx).With(zap.String("provider", name))

	result, err := s.run(ctx, params, apiKey)
	latency := s.now().Sub(start)

	var nerr *NormalizedError
	category := "ok"
	if err != nil {
		nerr = Classify(err)
		category = string(nerr.Category)
		log.Warn("employee search failed",
			zap.String("category", category),
			zap.Int("status", nerr.HTTPStatus),
			zap.String("details", nerr.Details),
			zap.Duration("latency", latency),
		)
	} else {
		log.Info("employee search completed",
			zap.Int("returned", len(result.Data)),
			zap.Int("total", result.Total),
			zap.Duration("latency", latency),
		)
		s.countRecords(result)
	}
	metrics.SearchesTotal.WithLabelValues(name, category).Inc()
	s.record(ctx, params, result, nerr, latency)

	if nerr != nil {
		return people.SearchResult{}, nerr
	}
	return result, nil
}

func (s *SearchService) run(ctx context.Context, params people.SearchParams, apiKey string) (people.SearchResult, error) {
	credential := s.resolveCredential(apiKey)
	if credential == "" {
		return people.SearchResult{}, provider.ErrMissingCredential
	}

	req, err := s.adapter.BuildRequest(params)
	if err != nil {
		return people.SearchResult{}, err
	}

	body, err := s.client.Execute(ctx, req, credential)
	if err != nil {
		return people.SearchResult{}, err
	}

	records, total, err := s.adapter.Decode(body)
	if err != nil {
		return people.SearchResult{}, fmt.Errorf("normalize %s response: %w", s.adapter.Name(), err)
	}

	return s.normalizer.Normalize(ctx, records, total, params, s.adapter.Name()), nil
}

func (s *SearchService) resolveCredential(apiKey string) string {
	if key := strings.TrimSpace(apiKey); key != "" && s.allowRequestKey {
		return key
	}
	return s.serverKey
}

func (s *SearchService) countRecords(result people.SearchResult) {
	for _, rec := range result.Data {
		label := "none"
		switch {
		case rec.WorkEmail != nil:
			label = "found"
		case rec.WorkEmailWithheld:
			label = "withheld"
		}
		metrics.RecordsReturnedTotal.WithLabelValues(result.Provider, label).Inc()
	}
}

func (s *SearchService) record(ctx context.Context, params people.SearchParams, result people.SearchResult, nerr *NormalizedError, latency time.Duration) {
	if s.recorder == nil {
		return
	}

	entry := entity.SearchLog{
		Provider:  s.adapter.Name(),
		Company:   params.Company,
		JobTitle:  params.JobTitle,
		Location:  params.Location,
		Status:    http.StatusOK,
		Total:     result.Total,
		Returned:  len(result.Data),
		LatencyMS: latency.Milliseconds(),
		CreatedAt: s.now().UTC(),
	}
	if nerr != nil {
		entry.Status = nerr.HTTPStatus
		entry.Category = string(nerr.Category)
	}

	// The audit write outlives a client disconnect but not a stalled database.
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := s.recorder.Record(recordCtx, entry); err != nil {
		logger.FromContext(ctx).Warn("failed to record search audit entry", zap.Error(err))
	}
}
