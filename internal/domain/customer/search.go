package customer

import (
	"math"
	"strings"

	"github.com/agnivade/levenshtein"
)

// SearchMode identifies which kind of lookup a search term asks for
type SearchMode string

const (
	SearchModePhone SearchMode = "phone"
	SearchModeEmail SearchMode = "email"
	SearchModeName  SearchMode = "name"
)

// SearchQuery is the typed result of classifying a raw search term.
// Exactly one of the typed fields is meaningful for the given Mode.
type SearchQuery struct {
	Mode SearchMode

	// Phone holds the normalized digits for SearchModePhone
	Phone string
	// Email holds the lower-cased term for SearchModeEmail
	Email string
	// Name holds the normalized name for SearchModeName, with Tokens
	// carrying its whitespace-delimited parts
	Name   string
	Tokens []string
}

// ClassifySearchTerm turns a raw term into a typed query. A term with
// at least 3 digits after stripping non-digits is a phone search, a
// term containing '@' is an email search, and anything else is a name
// search.
func ClassifySearchTerm(term string) SearchQuery {
	digits := NormalizePhone(term)
	if len(digits) >= 3 {
		return SearchQuery{Mode: SearchModePhone, Phone: digits}
	}
	if strings.Contains(term, "@") {
		return SearchQuery{Mode: SearchModeEmail, Email: strings.ToLower(strings.TrimSpace(term))}
	}
	name := NormalizeName(term)
	return SearchQuery{
		Mode:   SearchModeName,
		Name:   name,
		Tokens: strings.Fields(name),
	}
}

// PhoneMatches reports whether a stored normalized phone matches a
// normalized query. Containment runs both ways so a partial query
// finds full stored numbers and a full query finds partially stored
// ones.
func PhoneMatches(query, stored string) bool {
	if query == "" || stored == "" {
		return false
	}
	return strings.Contains(query, stored) || strings.Contains(stored, query)
}

// NameMatches reports whether every query token appears as a substring
// of the stored normalized name. A single absent token excludes the
// record.
func NameMatches(tokens []string, normalizedName string) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		if !strings.Contains(normalizedName, tok) {
			return false
		}
	}
	return true
}

// Scoring holds the tunable constants for fuzzy name matching. The
// bands follow the legacy values but are kept configurable because
// they were never validated against real data.
type Scoring struct {
	ExactScore          int
	PrefixScore         int
	SubstringScore      int
	SimilarityWeight    int
	SimilarityThreshold float64
}

// DefaultScoring returns the legacy scoring bands
func DefaultScoring() Scoring {
	return Scoring{
		ExactScore:          100,
		PrefixScore:         90,
		SubstringScore:      80,
		SimilarityWeight:    70,
		SimilarityThreshold: 0.8,
	}
}

// Similarity computes 1 - levenshtein(a,b)/max(len(a),len(b)).
// Two empty strings are fully similar.
func Similarity(a, b string) float64 {
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}

// Score rates a stored name against a query. Both inputs are
// normalized before comparison. Exact, prefix, and substring matches
// score at their fixed bands; everything else scales edit-distance
// similarity by the similarity weight.
func (s Scoring) Score(query, name string) int {
	q := NormalizeName(query)
	n := NormalizeName(name)
	switch {
	case n == q:
		return s.ExactScore
	case strings.HasPrefix(n, q):
		return s.PrefixScore
	case strings.Contains(n, q):
		return s.SubstringScore
	default:
		return int(math.Round(Similarity(q, n) * float64(s.SimilarityWeight)))
	}
}

// IsCloseMatch reports whether a stored name is similar enough to the
// query to be flagged as a potential duplicate
func (s Scoring) IsCloseMatch(query, name string) bool {
	return Similarity(NormalizeName(query), NormalizeName(name)) >= s.SimilarityThreshold
}
