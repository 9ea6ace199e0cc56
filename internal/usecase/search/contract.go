package search

import (
	"context"

	"github.com/launchdex/launchdex/internal/domain"
	"github.com/launchdex/launchdex/internal/domain/search/filters"
	"github.com/launchdex/launchdex/internal/domain/search/result"
)

// Repository is the storage contract for hybrid search. Search and Count must apply
// identical predicates and the same inclusion gate so page contents and the total
// count never diverge.
type Repository interface {
	Search(
		ctx context.Context, rawQuery, cleanedQuery string,
		f filters.ParsedFilters, embedding []float32, limit, offset int,
	) ([]result.Result, error)

	Count(
		ctx context.Context, rawQuery, cleanedQuery string,
		f filters.ParsedFilters, embedding []float32,
	) (int, error)
}

// Extractor parses free text into structured filters plus a cleaned residual query.
type Extractor interface {
	Extract(rawQuery string) (filters.ParsedFilters, string)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
