package latex

import "testing"

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text untouched",
			in:   "a novel catalyst",
			want: "a novel catalyst",
		},
		{
			name: "ampersand",
			in:   "A & B",
			want: `A \& B`,
		},
		{
			name: "percent",
			in:   "C % D",
			want: `C \% D`,
		},
		{
			name: "all simple specials",
			in:   `& % $ # _ { }`,
			want: `\& \% \$ \# \_ \{ \}`,
		},
		{
			name: "backslash",
			in:   `a\b`,
			want: `a\textbackslash{}b`,
		},
		{
			name: "tilde and caret",
			in:   "~x^2",
			want: `\textasciitilde{}x\textasciicircum{}2`,
		},
		{
			name: "backslash next to escapable char is not double escaped",
			in:   `\&`,
			want: `\textbackslash{}\&`,
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "unicode preserved",
			in:   "señal & ruido",
			want: `señal \& ruido`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Escape(tt.in); got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Escaping is a one-shot transform. Re-escaping escaped output must expand
// the backslashes it introduced; this pins the single-pass contract and
// guards against anyone "simplifying" Escape into sequential ReplaceAll
// calls, which would silently change this behavior.
func TestEscapeNotIdempotent(t *testing.T) {
	once := Escape("A & B")
	twice := Escape(once)

	if once != `A \& B` {
		t.Fatalf("first pass = %q", once)
	}
	if twice == once {
		t.Errorf("second pass should differ from first, got %q twice", twice)
	}
	if twice != `A \textbackslash{}\& B` {
		t.Errorf("second pass = %q, want %q", twice, `A \textbackslash{}\& B`)
	}
}
