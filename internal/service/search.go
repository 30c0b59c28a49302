package service

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/kontorly/worksearch/internal/domain"
	"github.com/kontorly/worksearch/internal/provider"
	"github.com/kontorly/worksearch/internal/telemetry"
	"golang.org/x/sync/errgroup"
)

const defaultProviderTimeout = 10 * time.Second

// WorkspaceResourceLister supplies a workspace's allow-listed resources.
type WorkspaceResourceLister interface {
	ListResources(ctx context.Context, workspaceID string) ([]domain.WorkspaceResource, error)
}

// Suggester computes a spelling-correction suggestion for a raw query.
type Suggester interface {
	Suggest(query string) string
}

// SearchService fans a query out across the registered providers, merges
// the results and attaches a spelling suggestion.
type SearchService struct {
	providers  []provider.SearchProvider
	files      provider.SearchProvider
	workspaces WorkspaceResourceLister
	corrector  Suggester
	logs       SearchLogRecorder
	timeout    time.Duration
}

// SearchServiceConfig wires the service's collaborators. Files must also be
// present in Providers; it is referenced separately for the site-scoped
// path. Workspaces and Logs are optional.
type SearchServiceConfig struct {
	Providers       []provider.SearchProvider
	Files           provider.SearchProvider
	Workspaces      WorkspaceResourceLister
	Corrector       Suggester
	Logs            SearchLogRecorder
	ProviderTimeout time.Duration
}

func NewSearchService(cfg SearchServiceConfig) *SearchService {
	timeout := cfg.ProviderTimeout
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}
	return &SearchService{
		providers:  cfg.Providers,
		files:      cfg.Files,
		workspaces: cfg.Workspaces,
		corrector:  cfg.Corrector,
		logs:       cfg.Logs,
		timeout:    timeout,
	}
}

// SearchInput is the parsed query parameters of a unified search request.
type SearchInput struct {
	Query          string
	UserID         string
	SiteID         string
	WorkspaceID    string
	ContentTypes   []domain.ContentType
	FileExtensions []string
}

// SearchOutput is the response envelope: merged results plus an optional
// corrected query. SuggestedQuery is nil when nothing clears the similarity
// bar or the query is empty.
type SearchOutput struct {
	Results        []domain.SearchResult `json:"results"`
	SuggestedQuery *string               `json:"suggestedQuery"`
}

// Search runs the unified search. Site-scoped searches use the file
// provider alone and fail on its error; unscoped searches fan out across
// every selected provider and degrade a failed provider to zero results.
func (s *SearchService) Search(ctx context.Context, input SearchInput) (*SearchOutput, error) {
	if input.UserID == "" {
		return nil, domain.ErrMissingUserID
	}

	ctx, span := telemetry.StartSpan(ctx, "SearchService.Search", telemetry.SpanAttributes{
		UserID:      input.UserID,
		WorkspaceID: input.WorkspaceID,
	})
	defer span.Finish()

	start := time.Now()

	var results []domain.SearchResult
	var failed []string
	var err error

	if input.SiteID != "" {
		results, err = s.searchSite(ctx, input)
		if err != nil {
			return nil, err
		}
	} else {
		results, failed = s.searchAll(ctx, input)
	}

	results = excludePlanner(results)

	if input.WorkspaceID != "" {
		if s.workspaces == nil {
			return nil, domain.NewDomainError(domain.ErrCodeInternalError, "workspace filtering not configured")
		}
		resources, err := s.workspaces.ListResources(ctx, input.WorkspaceID)
		if err != nil {
			return nil, domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to load workspace resources", err)
		}
		results = FilterByWorkspaceResources(results, resources)
	}

	out := &SearchOutput{Results: results}
	if strings.TrimSpace(input.Query) != "" && s.corrector != nil {
		if suggestion := s.corrector.Suggest(input.Query); suggestion != "" {
			out.SuggestedQuery = &suggestion
		}
	}

	s.recordSearch(ctx, input, len(results), failed, time.Since(start))
	return out, nil
}

// searchSite invokes only the file provider, scoped to the site, with
// folder always included in the type filter so browsing UIs can
// distinguish containers from leaves.
func (s *SearchService) searchSite(ctx context.Context, input SearchInput) ([]domain.SearchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ctx, span := telemetry.StartSpan(ctx, "SearchProvider.Search", telemetry.SpanAttributes{
		UserID:   input.UserID,
		Provider: s.files.Name(),
	})
	defer span.Finish()

	opts := provider.Options{
		SiteID:         input.SiteID,
		ContentTypes:   forceFolder(input.ContentTypes),
		FileExtensions: input.FileExtensions,
	}
	results, err := s.files.Search(ctx, input.UserID, input.Query, opts)
	if err != nil {
		log.Printf("site search failed provider=%s user=%s query=%q: %v", s.files.Name(), input.UserID, input.Query, err)
		return nil, err
	}
	return results, nil
}

// searchAll fans out across every provider selected by the content-type
// filter and settles each call independently: a failed or timed-out
// provider contributes zero results and a warning instead of failing the
// request. Per-provider slots keep tie-break order independent of
// completion order.
func (s *SearchService) searchAll(ctx context.Context, input SearchInput) ([]domain.SearchResult, []string) {
	selected := make([]provider.SearchProvider, 0, len(s.providers))
	for _, p := range s.providers {
		if provider.Selected(p, input.ContentTypes) {
			selected = append(selected, p)
		}
	}

	opts := provider.Options{
		ContentTypes:   input.ContentTypes,
		FileExtensions: input.FileExtensions,
	}

	slots := make([][]domain.SearchResult, len(selected))
	errs := make([]error, len(selected))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range selected {
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(gctx, s.timeout)
			defer cancel()
			callCtx, span := telemetry.StartSpan(callCtx, "SearchProvider.Search", telemetry.SpanAttributes{
				UserID:   input.UserID,
				Provider: p.Name(),
			})
			defer span.Finish()
			results, err := p.Search(callCtx, input.UserID, input.Query, opts)
			if err != nil {
				errs[i] = err
				return nil
			}
			slots[i] = results
			return nil
		})
	}
	_ = g.Wait()

	var merged []domain.SearchResult
	var failed []string
	for i, p := range selected {
		if errs[i] != nil {
			failed = append(failed, p.Name())
			log.Printf("search provider %s failed user=%s query=%q: %v", p.Name(), input.UserID, input.Query, errs[i])
			telemetry.CaptureError(ctx, errs[i])
			continue
		}
		merged = append(merged, slots[i]...)
	}

	// stable: equal scores keep provider output order
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})
	return merged, failed
}

func (s *SearchService) recordSearch(ctx context.Context, input SearchInput, resultCount int, failed []string, elapsed time.Duration) {
	if s.logs == nil {
		return
	}
	entry := SearchLogEntry{
		UserID:          input.UserID,
		Query:           input.Query,
		SiteID:          input.SiteID,
		WorkspaceID:     input.WorkspaceID,
		ContentTypes:    input.ContentTypes,
		FileExtensions:  input.FileExtensions,
		ResultCount:     resultCount,
		FailedProviders: failed,
		DurationMs:      elapsed.Milliseconds(),
	}
	if _, err := s.logs.CreateSearchLog(ctx, entry); err != nil {
		log.Printf("failed to record search log: %v", err)
	}
}

// forceFolder ensures the folder type is part of the filter. An empty
// filter means "file and folder" on the site path, matching what the file
// provider is expected to receive.
func forceFolder(types []domain.ContentType) []domain.ContentType {
	if len(types) == 0 {
		return []domain.ContentType{domain.ContentTypeFile, domain.ContentTypeFolder}
	}
	for _, t := range types {
		if t == domain.ContentTypeFolder {
			return types
		}
	}
	out := make([]domain.ContentType, len(types), len(types)+1)
	copy(out, types)
	return append(out, domain.ContentTypeFolder)
}

// excludePlanner removes planner entries from the final list regardless of
// input filters.
func excludePlanner(results []domain.SearchResult) []domain.SearchResult {
	out := results[:0]
	for _, r := range results {
		if r.Type != domain.ContentTypePlanner {
			out = append(out, r)
		}
	}
	return out
}
