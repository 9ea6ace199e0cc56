// Package extract turns a free-form query into structured filters plus a cleaned
// residual query. Extraction is pure, stateless, and deterministic: matchers run in a
// fixed priority order and each consumes the tokens of its match, so later matchers
// can never reuse them. Unrecognized tokens simply stay in the residual query; the
// extractor never fails.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/launchdex/launchdex/internal/domain/search/filters"
	"github.com/launchdex/launchdex/internal/vocab"
)

// maxSpan bounds the n-gram length considered during vocabulary matching.
const maxSpan = 8

// Extractor matches vocabulary and regex patterns against query tokens.
type Extractor struct {
	vocab *vocab.Index
}

// New creates an extractor over a built vocabulary index.
func New(v *vocab.Index) *Extractor {
	return &Extractor{vocab: v}
}

// Extract parses rawQuery into structured filters and the cleaned residual query.
// Empty or whitespace-only input yields empty filters and an empty cleaned query.
func (e *Extractor) Extract(rawQuery string) (filters.ParsedFilters, string) {
	norm := vocab.Normalize(rawQuery)
	if norm == "" {
		return filters.ParsedFilters{}, ""
	}

	tokens := strings.Fields(norm)
	p := &pass{
		tokens:   tokens,
		consumed: make([]bool, len(tokens)),
		vocab:    e.vocab,
	}

	var f filters.ParsedFilters

	// Matcher priority order is fixed; each scalar field is set by the first
	// successful matcher only.
	p.matchBatchShort(&f)
	p.matchBatchFull(&f)
	p.matchStage(&f)
	p.matchStatus(&f)
	p.matchTeamSize(&f)
	p.matchHiring(&f)
	p.matchNonprofit(&f)
	p.matchLocation(&f)
	p.matchRegions(&f)
	p.matchFoundedYear(&f)

	return f, p.residual()
}

// pass is the per-query matching state: the normalized tokens and their consumption
// flags.
type pass struct {
	tokens   []string
	consumed []bool
	vocab    *vocab.Index
}

// gram joins tokens[start:end) if none of them is consumed.
func (p *pass) gram(start, end int) (string, bool) {
	for i := start; i < end; i++ {
		if p.consumed[i] {
			return "", false
		}
	}
	return strings.Join(p.tokens[start:end], " "), true
}

func (p *pass) consume(start, end int) {
	for i := start; i < end; i++ {
		p.consumed[i] = true
	}
}

// scan visits unconsumed n-grams longest-first, left to right. When match reports a
// hit the tokens are consumed; scanning stops after the first hit unless all is set.
func (p *pass) scan(span int, all bool, match func(gram string, start, end int) bool) {
	n := len(p.tokens)
	if span > n {
		span = n
	}
	for ; span >= 1; span-- {
		for start := 0; start+span <= n; start++ {
			g, ok := p.gram(start, start+span)
			if !ok {
				continue
			}
			if match(g, start, start+span) {
				p.consume(start, start+span)
				if !all {
					return
				}
			}
		}
	}
}

// matchRegexp runs re against the text of the remaining unconsumed tokens, consumes
// every token overlapping the match span, and returns the capture groups.
func (p *pass) matchRegexp(re *regexp.Regexp) ([]string, bool) {
	var b strings.Builder
	bounds := make([][2]int, 0, len(p.tokens))
	indices := make([]int, 0, len(p.tokens))

	for i, t := range p.tokens {
		if p.consumed[i] {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		start := b.Len()
		b.WriteString(t)
		bounds = append(bounds, [2]int{start, b.Len()})
		indices = append(indices, i)
	}

	text := b.String()
	loc := re.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil, false
	}

	for j, bound := range bounds {
		if bound[1] > loc[0] && bound[0] < loc[1] {
			p.consumed[indices[j]] = true
		}
	}

	groups := make([]string, 0, len(loc)/2-1)
	for g := 1; 2*g < len(loc); g++ {
		if loc[2*g] < 0 {
			groups = append(groups, "")
			continue
		}
		groups = append(groups, text[loc[2*g]:loc[2*g+1]])
	}
	return groups, true
}

// residual returns the unconsumed tokens, minus stopwords and single-character
// tokens, joined by single spaces.
func (p *pass) residual() string {
	kept := make([]string, 0, len(p.tokens))
	for i, t := range p.tokens {
		if p.consumed[i] || isStopword(t) || utf8.RuneCountInString(t) == 1 {
			continue
		}
		kept = append(kept, t)
	}
	return strings.Join(kept, " ")
}

// batchShortRe matches short batch tokens like "w24", "s23", "sp25", "f24".
var batchShortRe = regexp.MustCompile(`^(?:w|sp|s|f|x)\d{2}$`)

func (p *pass) matchBatchShort(f *filters.ParsedFilters) {
	p.scan(1, false, func(gram string, _, _ int) bool {
		if !batchShortRe.MatchString(gram) {
			return false
		}
		batch, ok := p.vocab.BatchShort(gram)
		if !ok {
			return false
		}
		f.Batch = &batch
		return true
	})
}

func (p *pass) matchBatchFull(f *filters.ParsedFilters) {
	if f.Batch != nil {
		return
	}
	p.scan(2, false, func(gram string, _, _ int) bool {
		batch, ok := p.vocab.BatchFull(gram)
		if !ok {
			return false
		}
		f.Batch = &batch
		return true
	})
}

func (p *pass) matchStage(f *filters.ParsedFilters) {
	p.scan(maxSpan, false, func(gram string, _, _ int) bool {
		stage, ok := p.vocab.Stage(gram)
		if !ok {
			return false
		}
		f.Stage = &stage
		return true
	})
}

func (p *pass) matchStatus(f *filters.ParsedFilters) {
	// Multi-word idioms first ("went public", "shut down").
	p.scan(maxSpan, false, func(gram string, _, _ int) bool {
		status, ok := p.vocab.StatusPhrase(gram)
		if !ok {
			return false
		}
		f.Status = &status
		return true
	})
	if f.Status != nil {
		return
	}

	// Single keywords, with literal "active" held back: nearly every query about
	// operating companies says "active" without meaning the status filter.
	p.scan(1, false, func(gram string, _, _ int) bool {
		if gram == "active" {
			return false
		}
		status, ok := p.vocab.StatusKeyword(gram)
		if !ok {
			return false
		}
		f.Status = &status
		return true
	})
	if f.Status != nil {
		return
	}

	p.scan(1, false, func(gram string, _, _ int) bool {
		if gram != "active" {
			return false
		}
		status, ok := p.vocab.StatusKeyword(gram)
		if !ok {
			return false
		}
		f.Status = &status
		return true
	})
}

// Team-size regex forms, ranked. Only the first form that matches is applied.
var (
	teamRangeRe   = regexp.MustCompile(`\b(\d+)(?:\s+to\s+|\s*-\s*)(\d+)(?:\s+(?:employees?|people|persons?))?\b`)
	teamUnderRe   = regexp.MustCompile(`\b(?:under|below|fewer than|less than)\s+(\d+)\b`)
	teamAtMostRe  = regexp.MustCompile(`\b(?:at most|up to)\s+(\d+)\b`)
	teamOverRe    = regexp.MustCompile(`\b(?:over|more than)\s+(\d+)\b`)
	teamAtLeastRe = regexp.MustCompile(`\b(?:at least)\s+(\d+)\b|\b(\d+)\+`)
	teamExactRe   = regexp.MustCompile(`\b(\d+)\s+(?:employees?|people|persons?)\b`)
)

// Qualitative team-size phrases, applied only when no numeric form matched.
var teamPhrases = []struct {
	phrase   string
	min, max int // 0 means unbounded
}{
	{"solo founder", 0, 2},
	{"solo founders", 0, 2},
	{"small team", 0, 20},
	{"small teams", 0, 20},
	{"mid-size", 50, 500},
	{"mid size", 50, 500},
	{"midsize", 50, 500},
	{"mid-sized", 50, 500},
	{"large company", 200, 0},
	{"large companies", 200, 0},
}

func (p *pass) matchTeamSize(f *filters.ParsedFilters) {
	if groups, ok := p.matchRegexp(teamRangeRe); ok {
		f.TeamSizeMin = atoiPtr(groups[0])
		f.TeamSizeMax = atoiPtr(groups[1])
		return
	}
	if groups, ok := p.matchRegexp(teamUnderRe); ok {
		// "under 50" is strict, so the inclusive bound is one lower.
		f.TeamSizeMax = intPtr(atoi(groups[0]) - 1)
		return
	}
	if groups, ok := p.matchRegexp(teamAtMostRe); ok {
		f.TeamSizeMax = atoiPtr(groups[0])
		return
	}
	if groups, ok := p.matchRegexp(teamOverRe); ok {
		f.TeamSizeMin = intPtr(atoi(groups[0]) + 1)
		return
	}
	if groups, ok := p.matchRegexp(teamAtLeastRe); ok {
		n := groups[0]
		if n == "" {
			n = groups[1]
		}
		f.TeamSizeMin = atoiPtr(n)
		return
	}
	if groups, ok := p.matchRegexp(teamExactRe); ok {
		f.TeamSizeMin = atoiPtr(groups[0])
		f.TeamSizeMax = atoiPtr(groups[0])
		return
	}

	for _, tp := range teamPhrases {
		matched := false
		p.scan(maxSpan, false, func(gram string, _, _ int) bool {
			if gram != tp.phrase {
				return false
			}
			matched = true
			return true
		})
		if matched {
			if tp.min > 0 {
				f.TeamSizeMin = intPtr(tp.min)
			}
			if tp.max > 0 {
				f.TeamSizeMax = intPtr(tp.max)
			}
			return
		}
	}
}

func (p *pass) matchHiring(f *filters.ParsedFilters) {
	p.scan(maxSpan, false, func(gram string, _, _ int) bool {
		value, ok := p.vocab.Hiring(gram)
		if !ok {
			return false
		}
		f.IsHiring = &value
		return true
	})
}

func (p *pass) matchNonprofit(f *filters.ParsedFilters) {
	p.scan(maxSpan, false, func(gram string, _, _ int) bool {
		if !p.vocab.Nonprofit(gram) {
			return false
		}
		yes := true
		f.IsNonprofit = &yes
		return true
	})
}

// matchLocation resolves a city alias only when it is preceded by "in" / "based in"
// or sits at the start of the query, so bare city names used as adjectives
// ("berlin-style") stay in the residual query.
func (p *pass) matchLocation(f *filters.ParsedFilters) {
	n := len(p.tokens)
	for span := 3; span >= 1; span-- {
		for start := 0; start+span <= n; start++ {
			gram, ok := p.gram(start, start+span)
			if !ok {
				continue
			}
			city, ok := p.vocab.City(gram)
			if !ok {
				continue
			}

			switch {
			case start == 0:
				p.consume(start, start+span)
			case !p.consumed[start-1] && p.tokens[start-1] == "in":
				trigger := start - 1
				if trigger > 0 && !p.consumed[trigger-1] && p.tokens[trigger-1] == "based" {
					trigger--
				}
				p.consume(trigger, start+span)
			default:
				continue
			}

			f.Location = &city
			return
		}
	}
}

func (p *pass) matchRegions(f *filters.ParsedFilters) {
	seen := make(map[string]struct{})
	p.scan(maxSpan, true, func(gram string, _, _ int) bool {
		region, ok := p.vocab.Region(gram)
		if !ok {
			return false
		}
		if _, dup := seen[region]; !dup {
			seen[region] = struct{}{}
			f.Regions = append(f.Regions, region)
		}
		return true
	})
}

// Founded-year regex family, ranked. Only the first matching form is applied.
var (
	foundedInRe     = regexp.MustCompile(`\b(?:founded|started|created|launched|established)\s+in\s+((?:19|20)\d{2})\b`)
	foundedBeforeRe = regexp.MustCompile(`\b(?:before|pre|prior to)\s+((?:19|20)\d{2})\b`)
	foundedAfterRe  = regexp.MustCompile(`\b(?:after|since|post)\s+((?:19|20)\d{2})\b`)
	bareYearRe      = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
)

func (p *pass) matchFoundedYear(f *filters.ParsedFilters) {
	if groups, ok := p.matchRegexp(foundedInRe); ok {
		f.FoundedYearMin = atoiPtr(groups[0])
		f.FoundedYearMax = atoiPtr(groups[0])
		return
	}
	if groups, ok := p.matchRegexp(foundedBeforeRe); ok {
		f.FoundedYearMax = intPtr(atoi(groups[0]) - 1)
		return
	}
	if groups, ok := p.matchRegexp(foundedAfterRe); ok {
		f.FoundedYearMin = intPtr(atoi(groups[0]) + 1)
		return
	}
	if groups, ok := p.matchRegexp(bareYearRe); ok {
		f.FoundedYearMin = atoiPtr(groups[0])
		f.FoundedYearMax = atoiPtr(groups[0])
		return
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atoiPtr(s string) *int {
	return intPtr(atoi(s))
}

func intPtr(n int) *int {
	return &n
}
