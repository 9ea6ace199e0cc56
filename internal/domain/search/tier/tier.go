// Package tier defines the five ordered confidence buckets used to group and boost
// ranked results. The table is static data so labels, ordering, and boosts are
// unit-testable without a database.
package tier

// Tier is a confidence bucket key.
type Tier string

// Tiers, strongest first.
const (
	ExactMatch     Tier = "exact_match"
	HighConfidence Tier = "high_confidence"
	StrongMatch    Tier = "strong_match"
	Relevant       Tier = "relevant"
	KeywordMatch   Tier = "keyword_match"
)

// Meta describes a tier's display label, ordering rank, and score boost.
type Meta struct {
	Label string
	Order int
	Boost float64
}

// Boosts decrease monotonically from ExactMatch to KeywordMatch so the tier ladder
// never inverts the base score ordering between adjacent buckets.
var metaByTier = map[Tier]Meta{
	ExactMatch:     {Label: "Exact match", Order: 1, Boost: 1.30},
	HighConfidence: {Label: "High confidence", Order: 2, Boost: 1.15},
	StrongMatch:    {Label: "Strong match", Order: 3, Boost: 1.05},
	Relevant:       {Label: "Relevant", Order: 4, Boost: 1.00},
	KeywordMatch:   {Label: "Keyword match", Order: 5, Boost: 0.90},
}

// Lookup returns the metadata for a tier key. Unknown keys fall back to KeywordMatch
// metadata so a stale key can never panic a request.
func Lookup(t Tier) Meta {
	if m, ok := metaByTier[t]; ok {
		return m
	}
	return metaByTier[KeywordMatch]
}

// All returns the tier keys in display order.
func All() []Tier {
	return []Tier{ExactMatch, HighConfidence, StrongMatch, Relevant, KeywordMatch}
}

// IsValid reports whether t is a known tier key.
func (t Tier) IsValid() bool {
	_, ok := metaByTier[t]
	return ok
}
