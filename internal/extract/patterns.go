// Package extract turns noisy recognized receipt text into typed expense
// fields. Every function here is pure: same text in, same fields out, no
// state between calls. The pattern lists and keyword tables are package
// data rather than inline literals so each entry can be exercised on its
// own and extended without touching the pipeline sequencing.
package extract

import (
	"regexp"
	"strings"
)

// amountPattern pairs a monetary regex with its semantic role. Order
// matters for provenance only: all patterns are applied and every match
// becomes a candidate.
type amountPattern struct {
	Role string
	re   *regexp.Regexp
}

var amountPatterns = []amountPattern{
	{"label-proximate", regexp.MustCompile(`(?:total|amount|sum|grand total|subtotal)[:\s]*\$?(\d+\.?\d*)`)},
	{"after-total", regexp.MustCompile(`total[:\s]*(\d+\.\d{2})`)},
	{"dollar-prefixed", regexp.MustCompile(`\$(\d+\.\d{2})`)},
	{"before-total-or-end", regexp.MustCompile(`(\d+\.\d{2})\s*(?:total|$)`)},
	{"bare-decimal", regexp.MustCompile(`(\d+\.\d{2})`)},
}

// datePattern pairs a date-shape regex with its semantic role. Unlike
// amounts, the first pattern that matches anywhere in the text wins.
type datePattern struct {
	Role string
	re   *regexp.Regexp
}

var datePatterns = []datePattern{
	{"numeric-dmy", regexp.MustCompile(`(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`)},
	{"numeric-ymd", regexp.MustCompile(`(\d{4}[/-]\d{1,2}[/-]\d{1,2})`)},
	{"day-month-year", regexp.MustCompile(`(\d{1,2}\s+\w+\s+\d{4})`)},
	{"month-day-year", regexp.MustCompile(`(\w+\s+\d{1,2},?\s+\d{4})`)},
}

// Merchant-line disqualification rules.
var (
	dateLikePrefix = regexp.MustCompile(`^\d+[/-]\d+`)
	symbolsOnly    = regexp.MustCompile(`^[\d\s\-\.\$]+$`)
)

// Monetary tokens on item lines: an optionally dollar-prefixed two-decimal
// number. moneyStrip removes whole tokens when deriving the item name.
var (
	moneyToken = regexp.MustCompile(`\$?(\d+\.\d{2})`)
	nonWord    = regexp.MustCompile(`[^\w\s]`)
)

// categoryRule maps a category to its merchant keywords. Rules are tested
// in slice order; the first substring hit wins.
type categoryRule struct {
	Category Category
	Keywords []string
}

var categoryRules = []categoryRule{
	{CategoryFood, []string{
		"restaurant", "cafe", "coffee", "pizza", "burger",
		"food", "dining", "kitchen", "bistro", "grill",
	}},
	{CategoryShopping, []string{
		"store", "shop", "market", "mall", "retail",
		"walmart", "target", "amazon",
	}},
	{CategoryTransport, []string{
		"gas", "fuel", "station", "uber", "taxi", "bus", "metro", "parking",
	}},
	{CategoryBills, []string{
		"electric", "water", "internet", "phone", "utility", "bill", "payment",
	}},
	{CategoryHealthcare, []string{
		"pharmacy", "hospital", "clinic", "medical", "doctor", "health",
	}},
}

// Lines splits recognized text into trimmed non-empty lines in text order.
func Lines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
