// Package scoring holds the hybrid ranking math: signal weights, the inclusion gate,
// tier classification thresholds, and the final-score formula. Everything here is pure
// so the ranking model is unit-testable without a database, and the query executor
// renders the exact same constants into SQL.
package scoring

import (
	"strings"

	"github.com/launchdex/launchdex/internal/domain/search/tier"
)

// Weights blends the three ranking signals. The set is fixed per deployment, never
// per request.
type Weights struct {
	Semantic float64
	Name     float64
	Text     float64
}

// DefaultWeights is the deployed weight set. The three weights sum to 1.
var DefaultWeights = Weights{Semantic: 0.80, Name: 0.15, Text: 0.05}

// Inclusion gate: a candidate is eligible at all only when it clears the semantic
// floor or looks like a direct name hit. Independent of explicit filters.
const (
	MinSemanticScore = 0.20
	MinNameScore     = 0.30
)

// Tier classification thresholds, evaluated strongest tier first.
const (
	ExactNameScore        = 0.90
	HighSemanticScore     = 0.70
	StrongSemanticScore   = 0.50
	RelevantSemanticScore = 0.30

	// MinPrefixQueryLen guards the exact-prefix check against one- and two-letter
	// queries that would prefix-match half the directory.
	MinPrefixQueryLen = 3
)

// Base computes the weighted blend of the three signals.
func (w Weights) Base(semantic, name, text float64) float64 {
	return semantic*w.Semantic + name*w.Name + text*w.Text
}

// Final applies the tier boost to the base score.
func (w Weights) Final(semantic, name, text float64, t tier.Tier) float64 {
	return w.Base(semantic, name, text) * tier.Lookup(t).Boost
}

// Classify assigns the confidence tier. First matching rule wins:
// exact name hit, then descending semantic thresholds, then keyword fallback.
func Classify(semantic, name float64, exactPrefix bool) tier.Tier {
	switch {
	case name >= ExactNameScore || exactPrefix:
		return tier.ExactMatch
	case semantic >= HighSemanticScore:
		return tier.HighConfidence
	case semantic >= StrongSemanticScore:
		return tier.StrongMatch
	case semantic >= RelevantSemanticScore:
		return tier.Relevant
	default:
		return tier.KeywordMatch
	}
}

// IsExactPrefix reports whether the company name is a case-insensitive prefix of the
// raw query text and the query is long enough to make that meaningful.
func IsExactPrefix(name, rawQuery string) bool {
	if len(rawQuery) < MinPrefixQueryLen || name == "" {
		return false
	}
	return strings.HasPrefix(strings.ToLower(rawQuery), strings.ToLower(name))
}

// Eligible applies the inclusion gate.
func Eligible(semantic, name float64) bool {
	return semantic >= MinSemanticScore || name >= MinNameScore
}
