package services

import "testing"

func TestTokenize(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect []string
	}{
		{
			name:   "empty string",
			input:  "",
			expect: nil,
		},
		{
			name:   "whitespace only",
			input:  "  \t\n ",
			expect: nil,
		},
		{
			name:   "splits on any whitespace",
			input:  "Senior Python\tBackend\nDeveloper",
			expect: []string{"Senior", "Python", "Backend", "Developer"},
		},
		{
			name:   "preserves case and punctuation",
			input:  "C++ engineer (remote)",
			expect: []string{"C++", "engineer", "(remote)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) != len(tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
			for i := range got {
				if got[i] != tt.expect[i] {
					t.Fatalf("expected %v, got %v", tt.expect, got)
				}
			}
		})
	}
}

func TestCleanText(t *testing.T) {
	input := "  Experience  \n\n\n   Go developer \n\n"
	expect := "Experience\nGo developer"

	if got := CleanText(input); got != expect {
		t.Fatalf("expected %q, got %q", expect, got)
	}
}
