// Package vocab builds the process-wide vocabulary index: canonical value lists and
// alias maps for the categorical company fields. The index is built once at startup
// from the known distinct values and never mutated, so it is safe for unsynchronized
// concurrent reads from any number of in-flight requests.
package vocab

import "strings"

// Lists carries the known distinct values per categorical field, usually loaded from
// the companies table at startup. Empty lists fall back to the builtin defaults.
type Lists struct {
	Batches  []string
	Stages   []string
	Statuses []string
	Regions  []string
}

// Index is the immutable vocabulary lookup structure.
type Index struct {
	batchFull  map[string]string // "winter 2024" -> "Winter 2024"
	batchShort map[string]string // "w24" -> "Winter 2024"

	stageAlias    map[string]string
	statusPhrase  map[string]string // multi-word idioms: "went public" -> "Public"
	statusKeyword map[string]string // single tokens: "acquired" -> "Acquired"

	regionAlias map[string]string
	cityAlias   map[string]string

	hiringPhrase    map[string]bool // phrase -> is_hiring value
	nonprofitPhrase map[string]struct{}
}

// Normalize lowercases, collapses internal whitespace, and trims. All index keys and
// all extractor lookups go through this.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Build constructs the vocabulary index from the given value lists.
func Build(lists Lists) *Index {
	idx := &Index{
		batchFull:       make(map[string]string),
		batchShort:      make(map[string]string),
		stageAlias:      make(map[string]string),
		statusPhrase:    make(map[string]string),
		statusKeyword:   make(map[string]string),
		regionAlias:     make(map[string]string),
		cityAlias:       make(map[string]string),
		hiringPhrase:    make(map[string]bool),
		nonprofitPhrase: make(map[string]struct{}),
	}

	idx.addBatches(orDefault(lists.Batches, defaultBatches))
	idx.addStages(orDefault(lists.Stages, defaultStages))
	idx.addStatuses(orDefault(lists.Statuses, defaultStatuses))
	idx.addRegions(orDefault(lists.Regions, defaultRegions))

	// "Public" is both a stage and a status. The bare token resolves as a status;
	// the stage keeps its qualified forms ("public stage", "publicly traded").
	for k := range idx.statusKeyword {
		delete(idx.stageAlias, k)
	}

	for alias, city := range cityAliases {
		idx.cityAlias[alias] = city
	}
	for _, p := range hiringPhrases {
		idx.hiringPhrase[p] = true
	}
	for _, p := range notHiringPhrases {
		idx.hiringPhrase[p] = false
	}
	for _, p := range nonprofitPhrases {
		idx.nonprofitPhrase[p] = struct{}{}
	}

	return idx
}

// BatchFull resolves a full-form batch phrase ("winter 2024").
func (i *Index) BatchFull(ngram string) (string, bool) {
	v, ok := i.batchFull[ngram]
	return v, ok
}

// BatchShort resolves a short batch token ("w24", "sp25").
func (i *Index) BatchShort(token string) (string, bool) {
	v, ok := i.batchShort[token]
	return v, ok
}

// Stage resolves a stage keyword or alias n-gram.
func (i *Index) Stage(ngram string) (string, bool) {
	v, ok := i.stageAlias[ngram]
	return v, ok
}

// StatusPhrase resolves a multi-word status idiom ("went public").
func (i *Index) StatusPhrase(ngram string) (string, bool) {
	v, ok := i.statusPhrase[ngram]
	return v, ok
}

// StatusKeyword resolves a single status token ("acquired").
func (i *Index) StatusKeyword(token string) (string, bool) {
	v, ok := i.statusKeyword[token]
	return v, ok
}

// Region resolves a region name or alias n-gram.
func (i *Index) Region(ngram string) (string, bool) {
	v, ok := i.regionAlias[ngram]
	return v, ok
}

// City resolves a city name or alias n-gram.
func (i *Index) City(ngram string) (string, bool) {
	v, ok := i.cityAlias[ngram]
	return v, ok
}

// Hiring resolves a hiring phrase; the value is false for explicit negatives
// ("not hiring").
func (i *Index) Hiring(ngram string) (value, ok bool) {
	value, ok = i.hiringPhrase[ngram]
	return value, ok
}

// Nonprofit reports whether the n-gram is a nonprofit phrase.
func (i *Index) Nonprofit(ngram string) bool {
	_, ok := i.nonprofitPhrase[ngram]
	return ok
}

func (i *Index) addBatches(batches []string) {
	for _, b := range batches {
		norm := Normalize(b)
		if norm == "" {
			continue
		}
		i.batchFull[norm] = b

		// Derive the short form: season prefix + 2-digit year ("Winter 2024" -> "w24").
		season, year, ok := strings.Cut(norm, " ")
		if !ok || len(year) != 4 {
			continue
		}
		prefix, ok := seasonPrefixes[season]
		if !ok {
			continue
		}
		i.batchShort[prefix+year[2:]] = b
	}
}

func (i *Index) addStages(stages []string) {
	for _, s := range stages {
		norm := Normalize(s)
		if norm == "" {
			continue
		}
		i.stageAlias[norm] = s
		i.stageAlias[norm+" stage"] = s
		for _, alias := range stageAliases[norm] {
			i.stageAlias[alias] = s
		}
	}
}

func (i *Index) addStatuses(statuses []string) {
	for _, s := range statuses {
		norm := Normalize(s)
		if norm == "" {
			continue
		}
		i.statusKeyword[norm] = s
		for _, alias := range statusKeywordAliases[norm] {
			i.statusKeyword[alias] = s
		}
		for _, phrase := range statusPhraseAliases[norm] {
			i.statusPhrase[phrase] = s
		}
	}
}

func (i *Index) addRegions(regions []string) {
	for _, r := range regions {
		norm := Normalize(r)
		if norm == "" {
			continue
		}
		i.regionAlias[norm] = r
		for _, alias := range regionAliases[norm] {
			i.regionAlias[alias] = r
		}
	}
}

func orDefault(values, fallback []string) []string {
	if len(values) == 0 {
		return fallback
	}
	return values
}
