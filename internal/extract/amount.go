package extract

import (
	"strconv"
	"strings"
)

// Plausible range for a single receipt total. Matches outside it are
// discarded as recognizer noise (phone numbers, card digits, years).
const (
	MinAmount = 0.01
	MaxAmount = 10000
)

// Candidate is an intermediate, unconfirmed monetary match with the
// semantic role of the pattern that produced it.
type Candidate struct {
	Value float64
	Role  string
}

// AmountCandidates lowercases the text, applies every monetary pattern, and
// returns all matches that parse and fall within the plausible range.
func AmountCandidates(text string) []Candidate {
	lower := strings.ToLower(text)
	var candidates []Candidate
	for _, p := range amountPatterns {
		for _, m := range p.re.FindAllStringSubmatch(lower, -1) {
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			if v < MinAmount || v > MaxAmount {
				continue
			}
			candidates = append(candidates, Candidate{Value: v, Role: p.Role})
		}
	}
	return candidates
}

// Amount infers the receipt total: the maximum surviving candidate across
// all patterns. Line items are components of the grand total, so the
// largest plausible figure is normally the total itself. Returns nil when
// nothing survives filtering.
//
// Known limitation, kept intentionally: a single line item priced above the
// printed total (promotional inflation, digit corruption) wins over it.
func Amount(text string) *float64 {
	var best *float64
	for _, c := range AmountCandidates(text) {
		if best == nil || c.Value > *best {
			v := c.Value
			best = &v
		}
	}
	return best
}
