// Package search orchestrates one hybrid search request: filter extraction, explicit
// override merging, query embedding, and the concurrent ranked page + count queries.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/launchdex/launchdex/internal/domain"
	"github.com/launchdex/launchdex/internal/domain/search/filters"
	"github.com/launchdex/launchdex/internal/domain/search/request"
	"github.com/launchdex/launchdex/internal/domain/search/result"
	"github.com/launchdex/launchdex/internal/metrics"
)

// Service handles hybrid company search.
type Service struct {
	repo    Repository
	extract Extractor
	embed   Embedder
}

// New creates a search service.
func New(repo Repository, extract Extractor, embed Embedder) *Service {
	return &Service{repo: repo, extract: extract, embed: embed}
}

// Search executes one search request end to end. The request is already validated;
// extraction is pure and never fails. The embedding call is the first suspension
// point and honors ctx; after it, the page query and the count query run
// concurrently with identical filters and gate. No retries happen here.
func (s *Service) Search(ctx context.Context, req request.Request) (result.Page, error) {
	start := time.Now()

	page, err := s.search(ctx, req)

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.SearchRequestsTotal.WithLabelValues(status).Inc()
	metrics.SearchDuration.WithLabelValues("total").Observe(time.Since(start).Seconds())

	return page, err
}

func (s *Service) search(ctx context.Context, req request.Request) (result.Page, error) {
	inferred, cleaned := s.extract.Extract(req.Query())
	merged := filters.Merge(inferred, req.Overrides())
	metrics.SearchFiltersExtracted.Observe(float64(inferred.Count()))

	// An all-filter query ("w24 hiring") leaves nothing to embed; fall back to the
	// raw text so the semantic signal still has something to work with.
	embedText := cleaned
	if embedText == "" {
		embedText = req.Query()
	}

	embStart := time.Now()
	emb, err := s.embed.Embed(ctx, embedText)
	metrics.SearchDuration.WithLabelValues("embedding").Observe(time.Since(embStart).Seconds())
	if err != nil {
		return result.Page{}, s.wrapEmbedError(ctx, err)
	}

	storageStart := time.Now()
	page, err := s.queryConcurrently(ctx, req, cleaned, merged, emb.Embedding)
	metrics.SearchDuration.WithLabelValues("storage").Observe(time.Since(storageStart).Seconds())
	if err != nil {
		return result.Page{}, err
	}

	metrics.SearchResultsReturned.Observe(float64(len(page.Results)))
	return page, nil
}

// queryConcurrently issues the ranked page query and the count query as two
// independent read-only operations sharing the same predicates and embedding.
func (s *Service) queryConcurrently(
	ctx context.Context, req request.Request,
	cleaned string, f filters.ParsedFilters, embedding []float32,
) (result.Page, error) {
	type pageOut struct {
		results []result.Result
		err     error
	}
	type countOut struct {
		total int
		err   error
	}

	pageCh := make(chan pageOut, 1)
	countCh := make(chan countOut, 1)

	go func() {
		results, err := s.repo.Search(
			ctx, req.Query(), cleaned, f, embedding, req.Limit(), req.Offset(),
		)
		pageCh <- pageOut{results: results, err: err}
	}()
	go func() {
		total, err := s.repo.Count(ctx, req.Query(), cleaned, f, embedding)
		countCh <- countOut{total: total, err: err}
	}()

	p := <-pageCh
	c := <-countCh

	if p.err != nil {
		return result.Page{}, s.wrapStorageError(ctx, p.err)
	}
	if c.err != nil {
		return result.Page{}, s.wrapStorageError(ctx, c.err)
	}

	return result.Page{Results: p.results, TotalCount: c.total}, nil
}

// wrapEmbedError distinguishes a caller abort from a provider failure. Everything
// else is an EmbeddingUnavailable: search never silently degrades to keyword-only
// ranking.
func (s *Service) wrapEmbedError(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return fmt.Errorf("embed query: %w", domain.ErrCancelled)
	}
	if errors.Is(err, domain.ErrEmbeddingUnavailable) {
		return fmt.Errorf("embed query: %w", err)
	}
	return fmt.Errorf("embed query: %v: %w", err, domain.ErrEmbeddingUnavailable)
}

// wrapStorageError keeps the driver detail in the chain for logging while tagging
// the error with the storage sentinel (or Cancelled on caller abort).
func (s *Service) wrapStorageError(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return fmt.Errorf("query companies: %w", domain.ErrCancelled)
	}
	return fmt.Errorf("query companies: %v: %w", err, domain.ErrStorage)
}
