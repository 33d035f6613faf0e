package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trim spaces", "  Ocean   View  ", "Ocean View"},
		{"tabs and newlines", "100\t-\n200", "100 - 200"},
		{"empty string", "", ""},
		{"only whitespace", " \t\n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail_PreservesCase(t *testing.T) {
	if got := NormalizeEmail("  Guest@Example.com "); got != "Guest@Example.com" {
		t.Errorf("NormalizeEmail() = %q", got)
	}
}
