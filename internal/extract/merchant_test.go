package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerchant(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"first line qualifies", "Walmart Supercenter\n01/15/2024\nMilk 3.99", "Walmart Supercenter"},
		{"skips leading date line", "01/15/2024\nJoe's Diner\n...", "Joe's Diner"},
		{"skips numeric-only lines", "123 456\n$ 12.50\n--- . ---\nCorner Cafe", "Corner Cafe"},
		{"skips short lines", "ab\nX\nTarget Store", "Target Store"},
		{"whitespace trimmed", "   Trader Joe's   \nstuff", "Trader Joe's"},
		{"empty text", "", UnknownMerchant},
		{"all lines disqualified", "12/24\n$9.99\n- .\nok", UnknownMerchant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Merchant(tt.text))
		})
	}
}

func TestMerchant_OnlyFirstFiveLinesExamined(t *testing.T) {
	lines := []string{"1/1", "2/2", "3/3", "4/4", "5/5", "Real Merchant Name"}
	got := Merchant(strings.Join(lines, "\n"))
	assert.Equal(t, UnknownMerchant, got, "line six must not be considered")
}

func TestMerchant_NeverReturnsDisqualifiedShape(t *testing.T) {
	inputs := []string{
		"01/15/2024\n12-24\n$12.50",
		"9.99\n\n\n",
		"- - -\n. . .\n$$$",
	}
	for _, text := range inputs {
		got := Merchant(text)
		assert.Equal(t, UnknownMerchant, got)
		assert.False(t, dateLikePrefix.MatchString(got))
		assert.False(t, symbolsOnly.MatchString(got))
	}
}
