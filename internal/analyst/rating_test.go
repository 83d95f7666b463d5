package analyst

import (
	"testing"

	"github.com/hedgeai/hedgeai/pkg/models"
)

func TestExtractRating(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected models.Rating
	}{
		{
			name:     "explicit verdict bearish",
			text:     "Risks abound. Verdict: Bearish",
			expected: models.RatingBearish,
		},
		{
			name:     "bolded bearish",
			text:     "Rating: **Bearish**",
			expected: models.RatingBearish,
		},
		{
			name:     "explicit verdict neutral",
			text:     "Some risk, but priced in. Verdict: Neutral",
			expected: models.RatingNeutral,
		},
		{
			name:     "bolded neutral wins over stray bearish mentions",
			text:     "Bearish analysts disagree, bearish pressure remains, but rating is **Neutral**",
			expected: models.RatingNeutral,
		},
		{
			name:     "count bearish higher",
			text:     "Bearish signals everywhere. Staying bearish. Leaning neutral? No.",
			expected: models.RatingBearish,
		},
		{
			name:     "count neutral higher",
			text:     "Neutral stance. Neutral on valuation, one bearish headline.",
			expected: models.RatingNeutral,
		},
		{
			name:     "tie defaults to neutral",
			text:     "bearish vs neutral",
			expected: models.RatingNeutral,
		},
		{
			name:     "no keywords defaults to neutral",
			text:     "The company sells widgets.",
			expected: models.RatingNeutral,
		},
		{
			name:     "empty text",
			text:     "",
			expected: models.RatingNeutral,
		},
		{
			name:     "case insensitive",
			text:     "VERDICT: BEARISH",
			expected: models.RatingBearish,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractRating(tt.text); got != tt.expected {
				t.Errorf("ExtractRating(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}
