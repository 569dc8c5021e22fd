package customer

import (
	"fmt"
	"strings"
)

// NormalizePhone strips all non-digit characters from a raw phone
// string. An 11-digit result beginning with a country-code 1 is
// reduced to its 10-digit national form. Anything else is returned
// as-is, including partial digit strings, so prefix searches work
// against partially entered numbers.
func NormalizePhone(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 11 && digits[0] == '1' {
		return digits[1:]
	}
	return digits
}

// FormatPhone renders a normalized 10-digit phone as (AAA) BBB-CCCC.
// Inputs of any other length come back unchanged.
func FormatPhone(normalized string) string {
	if len(normalized) != 10 {
		return normalized
	}
	for i := 0; i < len(normalized); i++ {
		if normalized[i] < '0' || normalized[i] > '9' {
			return normalized
		}
	}
	return fmt.Sprintf("(%s) %s-%s", normalized[0:3], normalized[3:6], normalized[6:10])
}

// NormalizeName lower-cases, trims, and collapses internal whitespace
// runs to single spaces. Empty input yields the empty string.
func NormalizeName(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}
