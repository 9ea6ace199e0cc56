package extract

// stopwords are dropped from the residual query after all matchers have run. They are
// never removed before matching, since several phrase idioms contain them.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {},
	"and": {}, "or": {}, "but": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"do": {}, "does": {}, "did": {},
	"have": {}, "has": {}, "had": {},
	"that": {}, "this": {}, "these": {}, "those": {},
	"which": {}, "who": {}, "whose": {},
	"in": {}, "on": {}, "at": {}, "of": {}, "to": {}, "for": {},
	"from": {}, "by": {}, "with": {}, "about": {},
	"it": {}, "its": {}, "me": {}, "my": {}, "we": {}, "our": {},
	"you": {}, "your": {}, "they": {}, "their": {}, "them": {},
	"as": {}, "so": {}, "any": {}, "all": {}, "some": {},
	"show": {}, "find": {}, "list": {}, "give": {}, "get": {},
	"please": {}, "want": {}, "looking": {},
}

func isStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}
