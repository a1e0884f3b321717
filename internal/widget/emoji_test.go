package widget

import "testing"

func TestStripEmoji(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no emoji", "Book via Practo: +91 97171 55497.", "Book via Practo: +91 97171 55497."},
		{"emoticon", "Great smile \U0001F600!", "Great smile !"},
		{"pictograph and transport", "\U0001F3E5 Clinic \U0001F697 parking", " Clinic  parking"},
		{"misc symbols and dingbats", "Sunny \u2600 and \u2705 done", "Sunny  and  done"},
		{"supplemental", "Tooth \U0001F9B7 care", "Tooth  care"},
		{"flag", "India \U0001F1EE\U0001F1F3", "India "},
		{"keeps accents and currency", "Café £29.99 – naïve ₹500", "Café £29.99 – naïve ₹500"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripEmoji(tc.input); got != tc.want {
				t.Errorf("StripEmoji(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
