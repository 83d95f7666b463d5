package resolver

import "testing"

func TestBestMatch(t *testing.T) {
	candidates := []string{"apple", "google", "microsoft", "tesla", "zoetis"}

	tests := []struct {
		name   string
		input  string
		want   string
		found  bool
		cutoff float64
	}{
		{"exact candidate", "google", "google", true, 0.8},
		{"missing letter", "gogle", "google", true, 0.8},
		{"typo microsoft", "microsft", "microsoft", true, 0.8},
		{"typo zoetis", "zotis", "zoetis", true, 0.8},
		{"doubled letter", "teslla", "tesla", true, 0.8},
		{"no close match", "xyzcorp", "", false, 0.8},
		{"ticker-like input", "aapl", "", false, 0.8},
		{"empty input", "", "", false, 0.8},
		{"low cutoff accepts weak match", "appl", "apple", true, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BestMatch(tt.input, candidates, tt.cutoff)
			if ok != tt.found {
				t.Fatalf("BestMatch(%q) found = %v, want %v", tt.input, ok, tt.found)
			}
			if got != tt.want {
				t.Errorf("BestMatch(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBestMatchEmptyCandidates(t *testing.T) {
	if _, ok := BestMatch("google", nil, 0.8); ok {
		t.Error("expected no match for empty candidate set")
	}
}

func TestBestMatchTieBreak(t *testing.T) {
	// "abcx" is equally similar to "abca" and "abcb"; the lexicographically
	// smallest candidate must win regardless of slice order being sorted.
	candidates := []string{"abca", "abcb"}
	got, ok := BestMatch("abcx", candidates, 0.5)
	if !ok || got != "abca" {
		t.Fatalf("tie-break: got %q (ok=%v), want %q", got, ok, "abca")
	}

	// Stable across repeated calls.
	for i := 0; i < 20; i++ {
		if again, _ := BestMatch("abcx", candidates, 0.5); again != got {
			t.Fatalf("tie-break unstable: %q then %q", got, again)
		}
	}
}

func TestSimilarityBounds(t *testing.T) {
	if s := Similarity("zoetis", "zoetis"); s != 1.0 {
		t.Errorf("identical strings: got %v, want 1.0", s)
	}
	if s := Similarity("", "zoetis"); s != 0.0 {
		t.Errorf("empty string: got %v, want 0.0", s)
	}
	if s := Similarity("qqqq", "zzzz"); s != 0.0 {
		t.Errorf("disjoint strings: got %v, want 0.0", s)
	}
}

func TestSimilarityMonotonicity(t *testing.T) {
	// Decreasing edit distance to the target must never decrease the score.
	target := "zoetis"
	byDistance := []string{"zoetis", "zotis", "ztis", "zts"}

	prev := 2.0
	for _, input := range byDistance {
		score := Similarity(input, target)
		if score > prev {
			t.Fatalf("similarity increased with edit distance: %q scored %v after %v", input, score, prev)
		}
		prev = score
	}
}
