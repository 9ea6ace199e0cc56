// Package filters defines the structured constraint set a search query carries,
// whether inferred from free text or supplied explicitly by the caller.
package filters

// ParsedFilters enumerates every recognized structured constraint. Every field is
// independently optional; a nil field means unconstrained. The extractor guarantees a
// scalar field is set at most once per query, so a ParsedFilters value never carries
// contradictory values.
type ParsedFilters struct {
	Batch       *string `json:"batch,omitempty"`
	Stage       *string `json:"stage,omitempty"`
	Status      *string `json:"status,omitempty"`
	Location    *string `json:"location,omitempty"`
	IsHiring    *bool   `json:"is_hiring,omitempty"`
	IsNonprofit *bool   `json:"is_nonprofit,omitempty"`

	TeamSizeMin *int `json:"team_size_min,omitempty"`
	TeamSizeMax *int `json:"team_size_max,omitempty"`

	FoundedYearMin *int `json:"founded_year_min,omitempty"`
	FoundedYearMax *int `json:"founded_year_max,omitempty"`

	Tags       []string `json:"tags,omitempty"`
	Industries []string `json:"industries,omitempty"`
	Regions    []string `json:"regions,omitempty"`
}

// IsEmpty reports whether no constraint is set.
func (f ParsedFilters) IsEmpty() bool {
	return f.Batch == nil && f.Stage == nil && f.Status == nil && f.Location == nil &&
		f.IsHiring == nil && f.IsNonprofit == nil &&
		f.TeamSizeMin == nil && f.TeamSizeMax == nil &&
		f.FoundedYearMin == nil && f.FoundedYearMax == nil &&
		len(f.Tags) == 0 && len(f.Industries) == 0 && len(f.Regions) == 0
}

// Count returns the number of constrained fields, counting each range bound and
// each non-empty array field once.
func (f ParsedFilters) Count() int {
	n := 0
	for _, set := range []bool{
		f.Batch != nil, f.Stage != nil, f.Status != nil, f.Location != nil,
		f.IsHiring != nil, f.IsNonprofit != nil,
		f.TeamSizeMin != nil, f.TeamSizeMax != nil,
		f.FoundedYearMin != nil, f.FoundedYearMax != nil,
		len(f.Tags) > 0, len(f.Industries) > 0, len(f.Regions) > 0,
	} {
		if set {
			n++
		}
	}
	return n
}

// Merge overlays explicit caller filters on top of inferred ones. Explicit values win
// field-by-field; explicit array fields replace inferred arrays rather than unioning.
func Merge(inferred, explicit ParsedFilters) ParsedFilters {
	out := inferred

	if explicit.Batch != nil {
		out.Batch = explicit.Batch
	}
	if explicit.Stage != nil {
		out.Stage = explicit.Stage
	}
	if explicit.Status != nil {
		out.Status = explicit.Status
	}
	if explicit.Location != nil {
		out.Location = explicit.Location
	}
	if explicit.IsHiring != nil {
		out.IsHiring = explicit.IsHiring
	}
	if explicit.IsNonprofit != nil {
		out.IsNonprofit = explicit.IsNonprofit
	}
	if explicit.TeamSizeMin != nil {
		out.TeamSizeMin = explicit.TeamSizeMin
	}
	if explicit.TeamSizeMax != nil {
		out.TeamSizeMax = explicit.TeamSizeMax
	}
	if explicit.FoundedYearMin != nil {
		out.FoundedYearMin = explicit.FoundedYearMin
	}
	if explicit.FoundedYearMax != nil {
		out.FoundedYearMax = explicit.FoundedYearMax
	}
	if len(explicit.Tags) > 0 {
		out.Tags = explicit.Tags
	}
	if len(explicit.Industries) > 0 {
		out.Industries = explicit.Industries
	}
	if len(explicit.Regions) > 0 {
		out.Regions = explicit.Regions
	}

	return out
}
