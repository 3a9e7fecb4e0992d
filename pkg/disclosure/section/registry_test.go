package section

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   ID
		wantOk bool
	}{
		{
			name:   "canonical form passes through",
			raw:    "TITLE",
			want:   Title,
			wantOk: true,
		},
		{
			name:   "lowercase canonical",
			raw:    "detailed_description",
			want:   DetailedDescription,
			wantOk: true,
		},
		{
			name:   "spanish synonym",
			raw:    "Investigadores",
			want:   Researcher,
			wantOk: true,
		},
		{
			name:   "accented spanish synonym",
			raw:    "Propósito",
			want:   Purpose,
			wantOk: true,
		},
		{
			name:   "placeholder decoration stripped",
			raw:    "<<TITLE>>",
			want:   Title,
			wantOk: true,
		},
		{
			name:   "whitespace becomes underscore",
			raw:    "state of the art",
			want:   TechnologyStatus,
			wantOk: true,
		},
		{
			name:   "hyphenated alias",
			raw:    "prior-art",
			want:   TechnologyStatus,
			wantOk: true,
		},
		{
			name:   "surrounding whitespace ignored",
			raw:    "  Título  ",
			want:   Title,
			wantOk: true,
		},
		{
			name:   "legacy disclosure alias",
			raw:    "PREVIOUS_DISCLOSURE",
			want:   PreparingDisclosure,
			wantOk: true,
		},
		{
			name:   "garbage is unrecognized",
			raw:    "???",
			wantOk: false,
		},
		{
			name:   "empty is unrecognized",
			raw:    "   ",
			wantOk: false,
		},
		{
			name:   "unrelated word is unrecognized",
			raw:    "banana",
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.raw)
			if ok != tt.wantOk {
				t.Fatalf("Normalize(%q) ok = %v, want %v", tt.raw, ok, tt.wantOk)
			}
			if ok && got != tt.want {
				t.Errorf("Normalize(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	// Every canonical id must normalize to itself, and so must its
	// placeholder-decorated form.
	for _, id := range All() {
		got, ok := Normalize(string(id))
		if !ok || got != id {
			t.Errorf("Normalize(%s) = %s, %v; want identity", id, got, ok)
		}
		got, ok = Normalize(id.Placeholder())
		if !ok || got != id {
			t.Errorf("Normalize(%s) = %s, %v; want identity", id.Placeholder(), got, ok)
		}
	}
}

func TestPlaceholder(t *testing.T) {
	if got := Title.Placeholder(); got != "<<TITLE>>" {
		t.Errorf("Placeholder() = %q, want %q", got, "<<TITLE>>")
	}
}
