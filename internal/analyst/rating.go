package analyst

import (
	"strings"

	"github.com/hedgeai/hedgeai/pkg/models"
)

// ExtractRating scans memo prose for the analyst's verdict. It prefers an
// explicit "verdict: bearish" or bolded "**bearish**" marker, then falls
// back to counting keyword occurrences. A text with no markers at all is
// NEUTRAL. Best-effort over unstructured model output.
func ExtractRating(text string) models.Rating {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "verdict: bearish"), strings.Contains(lower, "**bearish**"):
		return models.RatingBearish
	case strings.Contains(lower, "verdict: neutral"), strings.Contains(lower, "**neutral**"):
		return models.RatingNeutral
	}

	bearish := strings.Count(lower, "bearish")
	neutral := strings.Count(lower, "neutral")
	if bearish > neutral {
		return models.RatingBearish
	}
	return models.RatingNeutral
}
