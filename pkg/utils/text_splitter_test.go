package utils

import "testing"

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short text", 1000, 100)
	if len(chunks) != 1 || chunks[0] != "short text" {
		t.Fatalf("expected single chunk, got %v", chunks)
	}
}

func TestSplitTextOverlap(t *testing.T) {
	text := ""
	for i := 0; i < 25; i++ {
		text += "abcdefghij"
	}

	chunks := SplitText(text, 100, 20)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1]
		tail := prev[len(prev)-20:]
		if chunks[i][:20] != tail {
			t.Fatalf("chunk %d does not overlap its predecessor", i)
		}
	}
}

func TestSplitTextOverlapLargerThanChunk(t *testing.T) {
	text := "0123456789012345678901234567890123456789"
	chunks := SplitText(text, 10, 15)
	total := ""
	for _, c := range chunks {
		total += c
	}
	if total != text {
		t.Fatalf("degenerate overlap must fall back to disjoint chunks, got %q", total)
	}
}
