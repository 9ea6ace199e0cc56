package vocab

// Builtin fallback lists, used when the directory table has no distinct values yet.
var (
	defaultBatches = []string{
		"Winter 2022", "Summer 2022",
		"Winter 2023", "Summer 2023",
		"Winter 2024", "Summer 2024", "Fall 2024",
		"Winter 2025", "Spring 2025", "Summer 2025", "Fall 2025",
	}

	defaultStages = []string{
		"Pre-Seed", "Seed", "Series A", "Series B", "Growth", "Public",
	}

	defaultStatuses = []string{
		"Active", "Acquired", "Public", "Inactive",
	}

	defaultRegions = []string{
		"United States", "Canada", "Latin America", "Europe",
		"Middle East", "Africa", "South Asia", "East Asia", "Oceania",
	}
)

// seasonPrefixes maps a batch season word to its short-form prefix.
var seasonPrefixes = map[string]string{
	"winter": "w",
	"spring": "sp",
	"summer": "s",
	"fall":   "f",
	"autumn": "f",
}

// Alias tables are keyed by the normalized canonical value.
var stageAliases = map[string][]string{
	"pre-seed": {"preseed", "pre seed"},
	"seed":     {"seed round", "seed funded"},
	"series a": {"series-a", "a round"},
	"series b": {"series-b", "b round"},
	"growth":   {"growth stage", "late stage"},
	"public":   {"publicly traded", "listed"},
}

var statusKeywordAliases = map[string][]string{
	"inactive": {"defunct", "dead", "shutdown"},
	"acquired": {"acquisition"},
}

var statusPhraseAliases = map[string][]string{
	"public":   {"went public", "gone public", "ipo d"},
	"inactive": {"shut down", "closed down", "no longer operating", "went under"},
	"acquired": {"got acquired", "was acquired", "has been acquired"},
}

var regionAliases = map[string][]string{
	"united states": {"usa", "us", "america", "united states of america"},
	"canada":        {"canadian"},
	"latin america": {"latam", "south america"},
	"europe":        {"eu", "european", "emea"},
	"middle east":   {"mena"},
	"south asia":    {"india", "indian subcontinent"},
	"east asia":     {"asia pacific", "apac"},
	"oceania":       {"australia", "new zealand", "anz"},
}

// cityAliases is the static location alias table. Matched only after "in" / "based in"
// (or at query start) to avoid treating bare city names used as adjectives as locations.
var cityAliases = map[string]string{
	"sf":            "San Francisco",
	"san francisco": "San Francisco",
	"bay area":      "San Francisco",
	"nyc":           "New York",
	"new york":      "New York",
	"new york city": "New York",
	"la":            "Los Angeles",
	"los angeles":   "Los Angeles",
	"seattle":       "Seattle",
	"austin":        "Austin",
	"boston":        "Boston",
	"chicago":       "Chicago",
	"miami":         "Miami",
	"toronto":       "Toronto",
	"vancouver":     "Vancouver",
	"london":        "London",
	"berlin":        "Berlin",
	"paris":         "Paris",
	"amsterdam":     "Amsterdam",
	"tel aviv":      "Tel Aviv",
	"singapore":     "Singapore",
	"bangalore":     "Bengaluru",
	"bengaluru":     "Bengaluru",
	"mumbai":        "Mumbai",
	"tokyo":         "Tokyo",
	"sydney":        "Sydney",
	"mexico city":   "Mexico City",
	"sao paulo":     "São Paulo",
}

var hiringPhrases = []string{
	"hiring",
	"is hiring",
	"are hiring",
	"that are hiring",
	"actively hiring",
	"currently hiring",
	"now hiring",
	"with open roles",
	"with open positions",
}

var notHiringPhrases = []string{
	"not hiring",
	"no longer hiring",
	"stopped hiring",
}

var nonprofitPhrases = []string{
	"nonprofit",
	"nonprofits",
	"non-profit",
	"non profit",
	"not for profit",
	"charity",
	"charitable",
}
