// Package result defines a single ranked search hit.
package result

import (
	"github.com/launchdex/launchdex/internal/domain/company"
	"github.com/launchdex/launchdex/internal/domain/search/tier"
)

// Result is one ranked row: the company plus its per-signal scores and tier.
// SemanticScore and NameScore are roughly 0..1; TextScore may exceed 1 for documents
// that repeat the query terms heavily. FinalScore is the boosted blend used for ordering.
type Result struct {
	Company company.Company

	SemanticScore float64
	NameScore     float64
	TextScore     float64
	FinalScore    float64

	Tier      tier.Tier
	TierLabel string
	TierOrder int
}

// Page is one page of results together with the total match count across all pages.
type Page struct {
	Results    []Result
	TotalCount int
}
