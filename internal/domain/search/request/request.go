// Package request validates and normalizes the public search parameters.
package request

import (
	"fmt"
	"strings"

	"github.com/launchdex/launchdex/internal/domain"
	"github.com/launchdex/launchdex/internal/domain/search/filters"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 512
	DefaultLimit   = 20
	MaxLimit       = 100
	MaxOffset      = 10000
)

// Request is a validated search request. Overrides are explicit caller-supplied
// filters (UI controls), kept separate from anything inferred from the query text.
type Request struct {
	query     string
	overrides filters.ParsedFilters
	limit     int
	offset    int
}

// New validates and normalizes search parameters. The query must be non-empty after
// trimming; validation failures are rejected here, before extraction or any I/O.
func New(query string, overrides filters.ParsedFilters, limit, offset int) (Request, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, fmt.Errorf("%w: query is required", domain.ErrValidation)
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrValidation, MaxQueryLength)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		return Request{}, fmt.Errorf("%w: offset must not be negative", domain.ErrValidation)
	}
	if offset > MaxOffset {
		return Request{}, fmt.Errorf("%w: offset too large (max %d)", domain.ErrValidation, MaxOffset)
	}

	return Request{query: query, overrides: overrides, limit: limit, offset: offset}, nil
}

// Query returns the trimmed raw query text.
func (r *Request) Query() string { return r.query }

// Overrides returns the explicit caller-supplied filters.
func (r *Request) Overrides() filters.ParsedFilters { return r.overrides }

// Limit returns the page size.
func (r *Request) Limit() int { return r.limit }

// Offset returns the page offset.
func (r *Request) Offset() int { return r.offset }
