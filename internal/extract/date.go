package extract

// Date returns the first date-shaped substring found in the text, trying the
// date patterns in fixed priority order. The match is returned verbatim and
// unvalidated; day/month range and calendar checks are the caller's job.
// Returns "" when no pattern matches.
func Date(text string) string {
	for _, p := range datePatterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}
