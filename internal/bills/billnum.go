package bills

import (
	"regexp"
	"strings"
)

var billNumberPattern = regexp.MustCompile(`^([A-Za-z]+)[ .]*0*([0-9]+)$`)

// FormatBillNumber canonicalizes a bill number: the letter prefix is
// uppercased, leading zeros are stripped from the numeric part, and the two
// are joined with exactly one space ("S00606" -> "S 606"). Already
// formatted input passes through unchanged, and anything that does not
// split into letters-then-digits is returned as-is.
func FormatBillNumber(raw string) string {
	trimmed := strings.TrimSpace(raw)
	m := billNumberPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return raw
	}
	number := m[2]
	if number == "" {
		number = "0"
	}
	return strings.ToUpper(m[1]) + " " + number
}

// InferChamber guesses the originating chamber from a bill number,
// after stripping any jurisdiction prefix ("NY S 606" -> "S 606"). A
// leading S means senate; anything else (H, A, ...) means house.
//
// This is a heuristic, not authoritative: some jurisdictions use prefixes
// this rule misreads, and callers must treat the result as a best guess.
func InferChamber(billNumber string) Chamber {
	token := leadingLetterToken(billNumber)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToUpper(token), "S") {
		return ChamberSenate
	}
	return ChamberHouse
}

// leadingLetterToken returns the first all-letter token of a bill number,
// skipping a leading jurisdiction abbreviation when one is recognized.
func leadingLetterToken(billNumber string) string {
	fields := strings.Fields(strings.TrimSpace(billNumber))
	for _, f := range fields {
		if !isLetters(f) {
			// Mixed tokens like "S606" still carry the prefix.
			letters := leadingLetters(f)
			if letters != "" {
				return letters
			}
			return ""
		}
		// A bare two-letter state abbreviation is a jurisdiction, not a
		// bill type; look at the next token.
		if _, ok := StateName(f); ok && len(fields) > 1 {
			continue
		}
		return f
	}
	return ""
}

func isLetters(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return len(s) > 0
}

func leadingLetters(s string) string {
	for i, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return s[:i]
		}
	}
	return s
}
