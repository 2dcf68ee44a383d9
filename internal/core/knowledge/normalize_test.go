package knowledge

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "What Are Your HOURS?", "what are your hours?"},
		{"trims", "  hello  ", "hello"},
		{"collapses inner whitespace", "do  you \t do\nkeratin", "do you do keratin"},
		{"empty", "", ""},
		{"whitespace only", "   \t\n", ""},
		{"already normalized", "what are your hours?", "what are your hours?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalize_CaseVariantsCollide(t *testing.T) {
	a := Normalize("What is your address?")
	b := Normalize("what is your  ADDRESS?")
	if a != b {
		t.Errorf("expected case/spacing variants to share a key, got %q and %q", a, b)
	}
}
