package extract

// UnknownMerchant is the sentinel returned when no line qualifies as a
// merchant name.
const UnknownMerchant = "Unknown Merchant"

// merchantLineLimit bounds the scan: merchant names print in the header.
const merchantLineLimit = 5

// Merchant returns the first of the leading receipt lines that looks like a
// merchant name. A line is disqualified when it starts with a date-like
// digit-group prefix, consists only of digits/whitespace/hyphens/periods/
// currency symbols, or is shorter than 3 characters.
func Merchant(text string) string {
	lines := Lines(text)
	if len(lines) > merchantLineLimit {
		lines = lines[:merchantLineLimit]
	}
	for _, line := range lines {
		if len(line) < 3 || dateLikePrefix.MatchString(line) {
			continue
		}
		if symbolsOnly.MatchString(line) {
			continue
		}
		return line
	}
	return UnknownMerchant
}
