package extract

import (
	"reflect"
	"testing"

	"github.com/launchdex/launchdex/internal/domain/search/filters"
	"github.com/launchdex/launchdex/internal/vocab"
)

func newTestExtractor() *Extractor {
	return New(vocab.Build(vocab.Lists{}))
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestExtract_Scenarios(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name    string
		query   string
		want    filters.ParsedFilters
		cleaned string
	}{
		{
			name:  "short batch with hiring phrase",
			query: "W24 AI companies that are hiring",
			want: filters.ParsedFilters{
				Batch:    strPtr("Winter 2024"),
				IsHiring: boolPtr(true),
			},
			cleaned: "ai companies",
		},
		{
			name:  "full batch form",
			query: "winter 2024 fintech",
			want: filters.ParsedFilters{
				Batch: strPtr("Winter 2024"),
			},
			cleaned: "fintech",
		},
		{
			name:  "team size range with unit",
			query: "10 to 50 employee B2B devtools",
			want: filters.ParsedFilters{
				TeamSizeMin: intPtr(10),
				TeamSizeMax: intPtr(50),
			},
			cleaned: "b2b devtools",
		},
		{
			name:  "hyphenated team size range",
			query: "5-20 people climate startups",
			want: filters.ParsedFilters{
				TeamSizeMin: intPtr(5),
				TeamSizeMax: intPtr(20),
			},
			cleaned: "climate startups",
		},
		{
			name:  "before year with nonprofit",
			query: "before 2020 nonprofit edtech",
			want: filters.ParsedFilters{
				IsNonprofit:    boolPtr(true),
				FoundedYearMax: intPtr(2019),
			},
			cleaned: "edtech",
		},
		{
			name:  "batch token not reused as year",
			query: "w24 companies from 2021",
			want: filters.ParsedFilters{
				Batch:          strPtr("Winter 2024"),
				FoundedYearMin: intPtr(2021),
				FoundedYearMax: intPtr(2021),
			},
			cleaned: "companies",
		},
		{
			name:    "company name only",
			query:   "Stripe",
			want:    filters.ParsedFilters{},
			cleaned: "stripe",
		},
		{
			name:  "stage alias",
			query: "series-a healthcare",
			want: filters.ParsedFilters{
				Stage: strPtr("Series A"),
			},
			cleaned: "healthcare",
		},
		{
			name:  "status keyword",
			query: "acquired fintech startups",
			want: filters.ParsedFilters{
				Status: strPtr("Acquired"),
			},
			cleaned: "fintech startups",
		},
		{
			name:  "status phrase beats keyword",
			query: "companies that went public",
			want: filters.ParsedFilters{
				Status: strPtr("Public"),
			},
			cleaned: "companies",
		},
		{
			name:  "negated hiring",
			query: "startups not hiring",
			want: filters.ParsedFilters{
				IsHiring: boolPtr(false),
			},
			cleaned: "startups",
		},
		{
			name:  "city after preposition",
			query: "fintech in sf",
			want: filters.ParsedFilters{
				Location: strPtr("San Francisco"),
			},
			cleaned: "fintech",
		},
		{
			name:  "based in consumes trigger words",
			query: "devtools based in berlin",
			want: filters.ParsedFilters{
				Location: strPtr("Berlin"),
			},
			cleaned: "devtools",
		},
		{
			name:    "bare city mid-query stays in residual",
			query:   "companies like berlin startups",
			want:    filters.ParsedFilters{},
			cleaned: "companies like berlin startups",
		},
		{
			name:  "multiple regions accumulate",
			query: "fintech in europe and latam",
			want: filters.ParsedFilters{
				Regions: []string{"Europe", "Latin America"},
			},
			cleaned: "fintech",
		},
		{
			name:  "founded in exact year",
			query: "robotics founded in 2019",
			want: filters.ParsedFilters{
				FoundedYearMin: intPtr(2019),
				FoundedYearMax: intPtr(2019),
			},
			cleaned: "robotics",
		},
		{
			name:  "after year is exclusive",
			query: "biotech after 2021",
			want: filters.ParsedFilters{
				FoundedYearMin: intPtr(2022),
			},
			cleaned: "biotech",
		},
		{
			name:  "under is strict",
			query: "startups under 50",
			want: filters.ParsedFilters{
				TeamSizeMax: intPtr(49),
			},
			cleaned: "startups",
		},
		{
			name:  "at least keeps the bound",
			query: "at least 100 engineers security",
			want: filters.ParsedFilters{
				TeamSizeMin: intPtr(100),
			},
			cleaned: "engineers security",
		},
		{
			name:  "plus suffix means minimum",
			query: "200+ logistics",
			want: filters.ParsedFilters{
				TeamSizeMin: intPtr(200),
			},
			cleaned: "logistics",
		},
		{
			name:  "exact headcount",
			query: "25 employees gaming",
			want: filters.ParsedFilters{
				TeamSizeMin: intPtr(25),
				TeamSizeMax: intPtr(25),
			},
			cleaned: "gaming",
		},
		{
			name:  "qualitative small team",
			query: "small team devtools",
			want: filters.ParsedFilters{
				TeamSizeMax: intPtr(20),
			},
			cleaned: "devtools",
		},
		{
			name:  "region alias",
			query: "hardware companies in india",
			want: filters.ParsedFilters{
				Regions: []string{"South Asia"},
			},
			cleaned: "hardware companies",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cleaned := e.Extract(tt.query)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("filters mismatch:\ngot:  %+v\nwant: %+v", got, tt.want)
			}
			if cleaned != tt.cleaned {
				t.Errorf("cleaned = %q, want %q", cleaned, tt.cleaned)
			}
		})
	}
}

func TestExtract_EmptyInput(t *testing.T) {
	e := newTestExtractor()

	for _, q := range []string{"", "   ", "\t\n"} {
		got, cleaned := e.Extract(q)
		if !got.IsEmpty() {
			t.Errorf("Extract(%q) filters = %+v, want empty", q, got)
		}
		if cleaned != "" {
			t.Errorf("Extract(%q) cleaned = %q, want empty", q, cleaned)
		}
	}
}

func TestExtract_BareActiveStatus(t *testing.T) {
	e := newTestExtractor()

	// "active" counts as a status only when nothing else claims it.
	got, _ := e.Extract("active fintech companies")
	if got.Status == nil || *got.Status != "Active" {
		t.Fatalf("Status = %v, want Active", got.Status)
	}

	// "actively hiring" belongs to the hiring matcher, which runs later but holds the
	// whole phrase, so status evidence from "active" alone is absent.
	got, _ = e.Extract("acquired companies that were active in europe")
	if got.Status == nil || *got.Status != "Acquired" {
		t.Fatalf("Status = %v, want Acquired (keyword beats bare active)", got.Status)
	}
}

func TestExtract_Deterministic(t *testing.T) {
	e := newTestExtractor()

	const q = "W24 AI companies that are hiring in sf"
	f1, c1 := e.Extract(q)
	f2, c2 := e.Extract(q)

	if !reflect.DeepEqual(f1, f2) || c1 != c2 {
		t.Errorf("extraction is not deterministic: %+v / %q vs %+v / %q", f1, c1, f2, c2)
	}
}

func TestExtract_CleanedIsStable(t *testing.T) {
	e := newTestExtractor()

	// Re-extracting a residual query must not invent new filters.
	queries := []string{
		"W24 AI companies that are hiring",
		"10 to 50 employee B2B devtools",
		"before 2020 nonprofit edtech",
	}
	for _, q := range queries {
		_, cleaned := e.Extract(q)
		f, again := e.Extract(cleaned)
		if !f.IsEmpty() {
			t.Errorf("Extract(%q) residual %q produced filters %+v", q, cleaned, f)
		}
		if again != cleaned {
			t.Errorf("Extract(%q) residual not stable: %q -> %q", q, cleaned, again)
		}
	}
}
