// Package predicate converts structured filters into parameterized, composable SQL
// predicates. Values are always bound as query parameters, never concatenated into the
// SQL text.
package predicate

import (
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/launchdex/launchdex/internal/domain/search/filters"
)

// Gate is the mandatory predicate appended to every company query regardless of
// filters: records without an embedding can never be scored and are excluded outright.
const Gate = "embedding IS NOT NULL"

// Set is an ordered collection of predicate fragments. Fragments use `?` markers
// internally; Where rewrites them to $N placeholders starting at a caller-chosen
// offset so the set composes with the executor's own parameters.
type Set struct {
	frags []string
	args  []any
}

// Build converts filters into a predicate set. Absent fields produce no predicate;
// an empty filter set is the legal unfiltered case.
func Build(f filters.ParsedFilters) Set {
	var s Set

	if f.Batch != nil {
		s.add("batch = ?", *f.Batch)
	}
	if f.Stage != nil {
		s.add("stage = ?", *f.Stage)
	}
	if f.Status != nil {
		s.add("status = ?", *f.Status)
	}
	if f.IsHiring != nil {
		s.add("is_hiring = ?", *f.IsHiring)
	}
	if f.IsNonprofit != nil {
		s.add("is_nonprofit = ?", *f.IsNonprofit)
	}
	if f.TeamSizeMin != nil {
		s.add("team_size >= ?", *f.TeamSizeMin)
	}
	if f.TeamSizeMax != nil {
		s.add("team_size <= ?", *f.TeamSizeMax)
	}
	if f.FoundedYearMin != nil {
		s.add("date_part('year', founded_at) >= ?", *f.FoundedYearMin)
	}
	if f.FoundedYearMax != nil {
		s.add("date_part('year', founded_at) <= ?", *f.FoundedYearMax)
	}
	if f.Location != nil {
		s.add("location ILIKE ?", "%"+*f.Location+"%")
	}

	// Array filters use any-of (non-empty intersection) semantics, not containment.
	if len(f.Tags) > 0 {
		s.add("tags && ?", pq.Array(f.Tags))
	}
	if len(f.Industries) > 0 {
		s.add("industries && ?", pq.Array(f.Industries))
	}
	if len(f.Regions) > 0 {
		s.add("regions && ?", pq.Array(f.Regions))
	}

	return s
}

func (s *Set) add(frag string, args ...any) {
	s.frags = append(s.frags, frag)
	s.args = append(s.args, args...)
}

// Len returns the number of predicates in the set.
func (s Set) Len() int { return len(s.frags) }

// Where renders the predicates joined by AND, with `?` markers rewritten to
// $start, $start+1, … and returns the matching argument slice. The mandatory
// embedding gate is always appended. An empty set renders the gate alone.
func (s Set) Where(start int) (string, []any) {
	clauses := make([]string, 0, len(s.frags)+1)
	n := start
	for _, frag := range s.frags {
		var b strings.Builder
		for _, ch := range frag {
			if ch == '?' {
				b.WriteByte('$')
				b.WriteString(strconv.Itoa(n))
				n++
				continue
			}
			b.WriteRune(ch)
		}
		clauses = append(clauses, b.String())
	}
	clauses = append(clauses, Gate)

	args := make([]any, len(s.args))
	copy(args, s.args)
	return strings.Join(clauses, " AND "), args
}
