package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Sunset Blvd Premium  ",
			want:  "Sunset Blvd Premium",
		},
		{
			name:  "multiple spaces between words",
			input: "Sunset    Blvd",
			want:  "Sunset Blvd",
		},
		{
			name:  "tabs and newlines",
			input: "Downtown\t\nAustin",
			want:  "Downtown Austin",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " I-10 Eastbound, Mile 23 ",
			want:  "I-10 Eastbound, Mile 23",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Commuter Traffic", "commuter traffic"},
		{"  Downtown  ", "downtown"},
		{"HIGHWAY", "highway"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeLabel(tt.input); got != tt.want {
			t.Errorf("NormalizeLabel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail(" Jane.Doe@Example.COM "); got != "jane.doe@example.com" {
		t.Errorf("NormalizeEmail() = %q", got)
	}
}

func TestIdempotency(t *testing.T) {
	inputs := []string{"  Denver   Tech Center ", "Commuter  Traffic", ""}
	for _, in := range inputs {
		once := TrimAndNormalize(in)
		twice := TrimAndNormalize(once)
		if once != twice {
			t.Errorf("TrimAndNormalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
