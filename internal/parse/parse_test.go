package parse

import "testing"

func TestFindInvoiceID(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain match", "Rechnung RE-2024-07 vom 12.03.2024", "RE-2024-07"},
		{"first of several", "RE-2023-01 then RE-2024-02", "RE-2023-01"},
		{"embedded in noise", "xxRE-1999-12yy", "RE-1999-12"},
		{"no match", "invoice 2024-07 without prefix", ""},
		{"lowercase prefix rejected", "re-2024-07", ""},
		{"too few digits", "RE-202-07", ""},
		{"too few trailing digits picks nothing", "RE-2024-7", ""},
		{"empty text", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindInvoiceID(tt.text); got != tt.want {
				t.Errorf("FindInvoiceID(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestFindInvoiceID_LongerTrailingRun(t *testing.T) {
	// Extra trailing digits do not disqualify the window; the grammar
	// takes exactly two digits after the second hyphen.
	if got := FindInvoiceID("RE-2024-071"); got != "RE-2024-07" {
		t.Errorf("FindInvoiceID = %q, want %q", got, "RE-2024-07")
	}
}

func TestFindDateToken(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"dotted", "Beleg vom 19.11.2024 um 10:00", "19.11.2024"},
		{"dashed", "paid 19-11-2024", "19-11-2024"},
		{"slashed", "19/11/2024", "19/11/2024"},
		{"short year", "1-1-24", "1-1-24"},
		{"mixed separators allowed", "scan 19.11-2024 ok", "19.11-2024"},
		{"first of several", "19.11.2024 and 20.11.2024", "19.11.2024"},
		{"word boundary blocks digits", "123.11.2024", ""},
		{"no date", "no numbers here", ""},
		{"time is not a date", "10:35:59", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindDateToken(tt.text); got != tt.want {
				t.Errorf("FindDateToken(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
