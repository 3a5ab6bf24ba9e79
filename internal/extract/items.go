package extract

import (
	"strconv"
	"strings"
)

// MaxItems bounds the collected line items per receipt.
const MaxItems = 10

// LineItem is one purchased product and its price as printed on a single
// receipt line.
type LineItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Items scans every non-empty line for monetary tokens. For a qualifying
// line the item name is the line with all monetary tokens stripped and the
// remaining non-word characters collapsed to spaces; the price is the last
// monetary token, since receipts put the price at line end. Lines whose
// resulting name is empty or 2 characters or shorter are discarded. Items
// are collected in text order and truncated to MaxItems.
func Items(text string) []LineItem {
	var items []LineItem
	for _, line := range Lines(text) {
		matches := moneyToken.FindAllStringSubmatch(line, -1)
		if len(matches) == 0 {
			continue
		}

		name := moneyToken.ReplaceAllString(line, "")
		name = strings.TrimSpace(nonWord.ReplaceAllString(name, " "))
		if len(name) <= 2 {
			continue
		}

		price, err := strconv.ParseFloat(matches[len(matches)-1][1], 64)
		if err != nil {
			continue
		}

		items = append(items, LineItem{Name: name, Price: price})
		if len(items) == MaxItems {
			break
		}
	}
	return items
}
