// Package parse holds the pattern matchers applied to recognized text.
// Both matchers are pure: first match by position, or "" when absent.
package parse

import "regexp"

var (
	// invoice numbers look like "RE-2024-07": literal "RE-", four
	// digits, a hyphen, two digits. Case-sensitive on purpose; the OCR
	// stage does not change letter case.
	reInvoiceID = regexp.MustCompile(`RE-\d{4}-\d{2}`)

	// date tokens like "19.11.2024", "1-1-24" or "19/11/2024". The two
	// separators are matched independently, so a token with mixed
	// separators still counts. Not validated as a calendar date.
	reDateToken = regexp.MustCompile(`\b\d{1,2}[./-]\d{1,2}[./-]\d{2,4}\b`)
)

// FindInvoiceID returns the first invoice number in text, or "".
func FindInvoiceID(text string) string {
	return reInvoiceID.FindString(text)
}

// FindDateToken returns the first date-like token in text, or "".
// The match is returned literally; "19.11.2024" and "19-11-2024" stay
// distinct even when they name the same day.
func FindDateToken(text string) string {
	return reDateToken.FindString(text)
}
