package company

import (
	"database/sql/driver"
	"strings"
	"testing"

	"github.com/launchdex/launchdex/internal/domain/search/filters"
	"github.com/launchdex/launchdex/internal/scoring"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func testQuery() Query {
	return Query{
		RawQuery:     "W24 AI companies",
		CleanedQuery: "ai companies",
		Embedding:    []float32{0.25, -1, 0.5},
		Weights:      scoring.DefaultWeights,
		Limit:        20,
		Offset:       0,
	}
}

func TestBuildSearchSQL_Unfiltered(t *testing.T) {
	sql, args := buildSearchSQL(testQuery())

	// Three fixed params plus limit and offset.
	if len(args) != 5 {
		t.Fatalf("args = %d, want 5: %v", len(args), args)
	}
	if args[0] != "[0.25,-1,0.5]" {
		t.Errorf("vector literal = %v", args[0])
	}
	if args[1] != "W24 AI companies" || args[2] != "ai companies" {
		t.Errorf("query params = %v / %v", args[1], args[2])
	}
	if args[3] != 20 || args[4] != 0 {
		t.Errorf("limit/offset params = %v / %v", args[3], args[4])
	}

	for _, frag := range []string{
		"embedding <=> $1::vector",
		"similarity(name, $2)",
		"plainto_tsquery('english', $3)",
		"embedding IS NOT NULL",
		"ORDER BY final_score DESC, id ASC",
		"LIMIT $4 OFFSET $5",
	} {
		if !strings.Contains(sql, frag) {
			t.Errorf("search SQL missing %q:\n%s", frag, sql)
		}
	}
}

func TestBuildSearchSQL_FilteredPlaceholders(t *testing.T) {
	q := testQuery()
	q.Filters = filters.ParsedFilters{
		Batch:       strPtr("Winter 2024"),
		TeamSizeMin: intPtr(10),
	}

	sql, args := buildSearchSQL(q)

	// vector, raw, cleaned, 2 predicates, limit, offset.
	if len(args) != 7 {
		t.Fatalf("args = %d, want 7: %v", len(args), args)
	}
	if args[3] != "Winter 2024" || args[4] != 10 {
		t.Errorf("predicate args = %v / %v", args[3], args[4])
	}

	for _, frag := range []string{
		"batch = $4",
		"team_size >= $5",
		"LIMIT $6 OFFSET $7",
	} {
		if !strings.Contains(sql, frag) {
			t.Errorf("search SQL missing %q:\n%s", frag, sql)
		}
	}
}

func TestBuildCountSQL_MatchesSearchPredicates(t *testing.T) {
	q := testQuery()
	q.Filters = filters.ParsedFilters{
		Status:   strPtr("Active"),
		Regions:  []string{"Europe"},
		Location: strPtr("Berlin"),
	}

	searchSQL, searchArgs := buildSearchSQL(q)
	countSQL, countArgs := buildCountSQL(q)

	// The scored CTE (signals + predicates + gate) must be byte-identical.
	cteEnd := strings.Index(searchSQL, "\nSELECT s.*")
	if cteEnd < 0 {
		t.Fatalf("search SQL has unexpected shape:\n%s", searchSQL)
	}
	cte := searchSQL[:cteEnd]
	if !strings.HasPrefix(countSQL, cte) {
		t.Errorf("count CTE diverges from search CTE:\ncount:\n%s\nsearch cte:\n%s", countSQL, cte)
	}

	// Count binds the same args minus limit/offset.
	if len(countArgs) != len(searchArgs)-2 {
		t.Fatalf("count args = %d, search args = %d", len(countArgs), len(searchArgs))
	}
	for i := range countArgs {
		// pq.Array wrappers from separate Build calls are distinct pointers;
		// compare the plain args only.
		if _, isArray := countArgs[i].(driver.Valuer); isArray {
			continue
		}
		if countArgs[i] != searchArgs[i] {
			t.Errorf("arg %d diverges: %v vs %v", i, countArgs[i], searchArgs[i])
		}
	}

	if strings.Contains(countSQL, "LIMIT") || strings.Contains(countSQL, "OFFSET") {
		t.Errorf("count SQL must not paginate:\n%s", countSQL)
	}
	if !strings.Contains(countSQL, "count(*)") {
		t.Errorf("count SQL missing count(*):\n%s", countSQL)
	}
}

func TestBuildSQL_InclusionGateInBoth(t *testing.T) {
	q := testQuery()
	searchSQL, _ := buildSearchSQL(q)
	countSQL, _ := buildCountSQL(q)

	gate := inclusionGate()
	if !strings.Contains(searchSQL, gate) {
		t.Errorf("search SQL missing inclusion gate %q", gate)
	}
	if !strings.Contains(countSQL, gate) {
		t.Errorf("count SQL missing inclusion gate %q", gate)
	}
}

func TestFinalScoreExpr_MirrorsClassifyConstants(t *testing.T) {
	expr := finalScoreExpr(scoring.DefaultWeights)

	for _, frag := range []string{
		"s.semantic_score * 0.8",
		"s.name_score * 0.15",
		"s.text_score * 0.05",
		"s.name_score >= 0.9 OR s.exact_prefix THEN 1.3",
		"s.semantic_score >= 0.7 THEN 1.15",
		"s.semantic_score >= 0.5 THEN 1.05",
		"s.semantic_score >= 0.3 THEN 1",
		"ELSE 0.9",
	} {
		if !strings.Contains(expr, frag) {
			t.Errorf("final score expr missing %q:\n%s", frag, expr)
		}
	}
}

func TestVectorLiteral(t *testing.T) {
	tests := []struct {
		in   []float32
		want string
	}{
		{nil, "[]"},
		{[]float32{1}, "[1]"},
		{[]float32{0.5, -0.25, 2}, "[0.5,-0.25,2]"},
	}
	for _, tt := range tests {
		if got := vectorLiteral(tt.in); got != tt.want {
			t.Errorf("vectorLiteral(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
