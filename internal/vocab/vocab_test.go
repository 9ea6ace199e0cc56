package vocab

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Winter 2024", "winter 2024"},
		{"  W24   AI  ", "w24 ai"},
		{"\tSan\nFrancisco ", "san francisco"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuild_BatchShortForms(t *testing.T) {
	idx := Build(Lists{Batches: []string{"Winter 2024", "Spring 2025", "Summer 2023", "Fall 2024"}})

	tests := []struct {
		token string
		want  string
	}{
		{"w24", "Winter 2024"},
		{"sp25", "Spring 2025"},
		{"s23", "Summer 2023"},
		{"f24", "Fall 2024"},
	}
	for _, tt := range tests {
		got, ok := idx.BatchShort(tt.token)
		if !ok || got != tt.want {
			t.Errorf("BatchShort(%q) = %q, %v; want %q", tt.token, got, ok, tt.want)
		}
	}

	if _, ok := idx.BatchShort("w99"); ok {
		t.Error("BatchShort(w99) matched an unknown batch")
	}
}

func TestBuild_BatchFullForms(t *testing.T) {
	idx := Build(Lists{Batches: []string{"Winter 2024"}})

	got, ok := idx.BatchFull("winter 2024")
	if !ok || got != "Winter 2024" {
		t.Errorf("BatchFull(winter 2024) = %q, %v", got, ok)
	}
	if _, ok := idx.BatchFull("summer 2024"); ok {
		t.Error("BatchFull matched a batch outside the list")
	}
}

func TestBuild_StageAliases(t *testing.T) {
	idx := Build(Lists{})

	tests := []struct {
		ngram string
		want  string
	}{
		{"seed", "Seed"},
		{"seed stage", "Seed"},
		{"series-a", "Series A"},
		{"a round", "Series A"},
		{"late stage", "Growth"},
		{"publicly traded", "Public"},
	}
	for _, tt := range tests {
		got, ok := idx.Stage(tt.ngram)
		if !ok || got != tt.want {
			t.Errorf("Stage(%q) = %q, %v; want %q", tt.ngram, got, ok, tt.want)
		}
	}
}

func TestBuild_BarePublicIsStatusNotStage(t *testing.T) {
	idx := Build(Lists{})

	if _, ok := idx.Stage("public"); ok {
		t.Error("Stage(public) matched; the bare token belongs to the status vocabulary")
	}
	got, ok := idx.StatusKeyword("public")
	if !ok || got != "Public" {
		t.Errorf("StatusKeyword(public) = %q, %v; want Public", got, ok)
	}
}

func TestBuild_StatusPhrasesAndKeywords(t *testing.T) {
	idx := Build(Lists{})

	phrases := map[string]string{
		"went public":  "Public",
		"shut down":    "Inactive",
		"got acquired": "Acquired",
	}
	for ngram, want := range phrases {
		got, ok := idx.StatusPhrase(ngram)
		if !ok || got != want {
			t.Errorf("StatusPhrase(%q) = %q, %v; want %q", ngram, got, ok, want)
		}
	}

	keywords := map[string]string{
		"acquired": "Acquired",
		"defunct":  "Inactive",
		"dead":     "Inactive",
		"active":   "Active",
	}
	for token, want := range keywords {
		got, ok := idx.StatusKeyword(token)
		if !ok || got != want {
			t.Errorf("StatusKeyword(%q) = %q, %v; want %q", token, got, ok, want)
		}
	}
}

func TestBuild_RegionAliases(t *testing.T) {
	idx := Build(Lists{})

	tests := []struct {
		ngram string
		want  string
	}{
		{"usa", "United States"},
		{"latam", "Latin America"},
		{"europe", "Europe"},
		{"india", "South Asia"},
		{"australia", "Oceania"},
	}
	for _, tt := range tests {
		got, ok := idx.Region(tt.ngram)
		if !ok || got != tt.want {
			t.Errorf("Region(%q) = %q, %v; want %q", tt.ngram, got, ok, tt.want)
		}
	}
}

func TestBuild_CityAliases(t *testing.T) {
	idx := Build(Lists{})

	tests := []struct {
		ngram string
		want  string
	}{
		{"sf", "San Francisco"},
		{"bay area", "San Francisco"},
		{"nyc", "New York"},
		{"bangalore", "Bengaluru"},
	}
	for _, tt := range tests {
		got, ok := idx.City(tt.ngram)
		if !ok || got != tt.want {
			t.Errorf("City(%q) = %q, %v; want %q", tt.ngram, got, ok, tt.want)
		}
	}
}

func TestBuild_HiringPhrases(t *testing.T) {
	idx := Build(Lists{})

	positive := []string{"hiring", "that are hiring", "actively hiring", "with open roles"}
	for _, p := range positive {
		value, ok := idx.Hiring(p)
		if !ok || !value {
			t.Errorf("Hiring(%q) = %v, %v; want true", p, value, ok)
		}
	}

	negative := []string{"not hiring", "no longer hiring", "stopped hiring"}
	for _, p := range negative {
		value, ok := idx.Hiring(p)
		if !ok || value {
			t.Errorf("Hiring(%q) = %v, %v; want false", p, value, ok)
		}
	}
}

func TestBuild_NonprofitPhrases(t *testing.T) {
	idx := Build(Lists{})

	for _, p := range []string{"nonprofit", "non-profit", "not for profit", "charity"} {
		if !idx.Nonprofit(p) {
			t.Errorf("Nonprofit(%q) = false, want true", p)
		}
	}
	if idx.Nonprofit("profit") {
		t.Error("Nonprofit(profit) = true, want false")
	}
}

func TestBuild_ListsOverrideDefaults(t *testing.T) {
	idx := Build(Lists{Batches: []string{"Winter 2030"}})

	if _, ok := idx.BatchShort("w30"); !ok {
		t.Error("expected short form for the supplied batch")
	}
	if _, ok := idx.BatchShort("w24"); ok {
		t.Error("default batches must not leak when a list is supplied")
	}
}
