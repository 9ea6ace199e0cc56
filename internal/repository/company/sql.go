package company

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/launchdex/launchdex/internal/domain/search/filters"
	"github.com/launchdex/launchdex/internal/domain/search/tier"
	"github.com/launchdex/launchdex/internal/predicate"
	"github.com/launchdex/launchdex/internal/scoring"
)

// Positional parameters shared by the ranked query and the count query. Predicates
// start right after them so both queries bind identically.
const (
	paramVector    = 1 // query embedding as a pgvector literal
	paramRaw       = 2 // raw query text (trigram name similarity, prefix check)
	paramCleaned   = 3 // cleaned residual query (full-text rank)
	firstPredParam = 4
)

const companyColumns = `id, name, one_liner, website, batch, stage, status, team_size,
		founded_at, is_hiring, is_nonprofit, location, tags, industries, regions`

// scoredCTE computes the three ranking signals and the exact-prefix flag per row.
// The filter predicates and the embedding gate live in this CTE so the page query
// and the count query can never diverge on which rows are candidates.
func scoredCTE(where string) string {
	return fmt.Sprintf(`WITH scored AS (
	SELECT %s,
		(1 - (embedding <=> $%d::vector)) AS semantic_score,
		similarity(name, $%d) AS name_score,
		ts_rank(search_tsv, plainto_tsquery('english', $%d)) AS text_score,
		(char_length($%d) >= %d AND lower($%d) LIKE lower(name) || '%%') AS exact_prefix
	FROM companies
	WHERE %s
)`,
		companyColumns,
		paramVector, paramRaw, paramCleaned,
		paramRaw, scoring.MinPrefixQueryLen, paramRaw,
		where,
	)
}

// finalScoreExpr renders the blended, tier-boosted score. The CASE ladder mirrors
// scoring.Classify exactly; weights and boosts are compile-time constants, so they
// are formatted into the SQL text rather than bound as parameters.
func finalScoreExpr(w scoring.Weights) string {
	boost := func(t tier.Tier) string { return f(tier.Lookup(t).Boost) }

	return fmt.Sprintf(`(s.semantic_score * %s + s.name_score * %s + s.text_score * %s) * CASE
		WHEN s.name_score >= %s OR s.exact_prefix THEN %s
		WHEN s.semantic_score >= %s THEN %s
		WHEN s.semantic_score >= %s THEN %s
		WHEN s.semantic_score >= %s THEN %s
		ELSE %s
	END`,
		f(w.Semantic), f(w.Name), f(w.Text),
		f(scoring.ExactNameScore), boost(tier.ExactMatch),
		f(scoring.HighSemanticScore), boost(tier.HighConfidence),
		f(scoring.StrongSemanticScore), boost(tier.StrongMatch),
		f(scoring.RelevantSemanticScore), boost(tier.Relevant),
		boost(tier.KeywordMatch),
	)
}

// inclusionGate is the semantic-floor / name-floor eligibility check, applied to the
// page query and the count query alike.
func inclusionGate() string {
	return fmt.Sprintf("s.semantic_score >= %s OR s.name_score >= %s",
		f(scoring.MinSemanticScore), f(scoring.MinNameScore))
}

// buildSearchSQL renders the ranked page query. Ordering is final score descending
// with id ascending as the deterministic tie-break, so pagination is reproducible.
func buildSearchSQL(q Query) (string, []any) {
	where, predArgs := predicate.Build(q.Filters).Where(firstPredParam)
	limitParam := firstPredParam + len(predArgs)
	offsetParam := limitParam + 1

	sql := fmt.Sprintf(`%s
SELECT s.*, %s AS final_score
FROM scored s
WHERE %s
ORDER BY final_score DESC, id ASC
LIMIT $%d OFFSET $%d`,
		scoredCTE(where), finalScoreExpr(q.Weights), inclusionGate(),
		limitParam, offsetParam,
	)

	args := make([]any, 0, len(predArgs)+5)
	args = append(args, vectorLiteral(q.Embedding), q.RawQuery, q.CleanedQuery)
	args = append(args, predArgs...)
	args = append(args, q.Limit, q.Offset)
	return sql, args
}

// buildCountSQL renders the matching count query: identical CTE, predicates, and
// inclusion gate, without ordering or pagination.
func buildCountSQL(q Query) (string, []any) {
	where, predArgs := predicate.Build(q.Filters).Where(firstPredParam)

	sql := fmt.Sprintf(`%s
SELECT count(*)
FROM scored s
WHERE %s`,
		scoredCTE(where), inclusionGate(),
	)

	args := make([]any, 0, len(predArgs)+3)
	args = append(args, vectorLiteral(q.Embedding), q.RawQuery, q.CleanedQuery)
	args = append(args, predArgs...)
	return sql, args
}

// vectorLiteral renders the embedding as a pgvector text literal: [0.1,0.2,...].
func vectorLiteral(vec []float32) string {
	parts := make([]string, len(vec))
	for i, v := range vec {
		parts[i] = strconv.FormatFloat(float64(v), 'f', -1, 32)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Query carries everything the executor needs for one ranked search.
type Query struct {
	RawQuery     string
	CleanedQuery string
	Filters      filters.ParsedFilters
	Embedding    []float32
	Weights      scoring.Weights
	Limit        int
	Offset       int
}
