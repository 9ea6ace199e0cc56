package tier

import "testing"

func TestLookup_KnownTiers(t *testing.T) {
	tests := []struct {
		tier  Tier
		label string
		order int
		boost float64
	}{
		{ExactMatch, "Exact match", 1, 1.30},
		{HighConfidence, "High confidence", 2, 1.15},
		{StrongMatch, "Strong match", 3, 1.05},
		{Relevant, "Relevant", 4, 1.00},
		{KeywordMatch, "Keyword match", 5, 0.90},
	}
	for _, tt := range tests {
		m := Lookup(tt.tier)
		if m.Label != tt.label || m.Order != tt.order || m.Boost != tt.boost {
			t.Errorf("Lookup(%s) = %+v, want {%s %d %g}", tt.tier, m, tt.label, tt.order, tt.boost)
		}
	}
}

func TestLookup_UnknownFallsBack(t *testing.T) {
	m := Lookup(Tier("nope"))
	if m != Lookup(KeywordMatch) {
		t.Errorf("Lookup(unknown) = %+v, want keyword_match metadata", m)
	}
}

func TestAll_DisplayOrder(t *testing.T) {
	all := All()
	if len(all) != 5 {
		t.Fatalf("All() returned %d tiers, want 5", len(all))
	}
	for i, tr := range all {
		if got := Lookup(tr).Order; got != i+1 {
			t.Errorf("All()[%d] = %s with order %d, want %d", i, tr, got, i+1)
		}
	}
}

func TestBoosts_MonotonicallyDecrease(t *testing.T) {
	all := All()
	for i := 1; i < len(all); i++ {
		prev, cur := Lookup(all[i-1]).Boost, Lookup(all[i]).Boost
		if cur >= prev {
			t.Errorf("boost not decreasing: %s=%g, %s=%g", all[i-1], prev, all[i], cur)
		}
	}
}

func TestIsValid(t *testing.T) {
	for _, tr := range All() {
		if !tr.IsValid() {
			t.Errorf("%s reported invalid", tr)
		}
	}
	if Tier("bogus").IsValid() {
		t.Error("bogus tier reported valid")
	}
}
