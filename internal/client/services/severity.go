package services

import (
	"regexp"
	"strings"

	"github.com/osetrov/healthkeeper/internal/client/models"
)

// Keyword lists for severity classification, scanned as plain substrings of
// the lowercased label text. The serious list always wins over the minor
// list, so "severe... use caution" classifies as serious.
var (
	seriousKeywords = []string{
		"contraindicated", "avoid", "should not", "do not use", "serious", "severe",
		"life-threatening", "fatal", "death", "emergency", "immediate", "dangerous",
	}
	minorKeywords = []string{
		"caution", "monitor", "may", "possible", "potential", "consider",
		"adjust", "mild", "minor", "watch",
	}
)

// classifySeverity grades a fragment of label prose by keyword presence.
func classifySeverity(text string) models.Severity {
	lower := strings.ToLower(text)

	for _, kw := range seriousKeywords {
		if strings.Contains(lower, kw) {
			return models.SeveritySerious
		}
	}
	for _, kw := range minorKeywords {
		if strings.Contains(lower, kw) {
			return models.SeverityMinor
		}
	}
	return models.SeverityNone
}

var (
	wsRe = regexp.MustCompile(`\s+`)
	// Sentences that only point the reader elsewhere carry no interaction
	// content and are dropped whole.
	referralRe = regexp.MustCompile(`(?i)\b(see|refer to|consult)\b[^.]*\.`)
)

const detailsMaxLen = 200

// cleanInteractionText turns raw label prose into a short display string:
// whitespace collapsed, referral sentences removed, truncated, and prefixed
// with both drug names when the text mentions neither.
func cleanInteractionText(text, newDrug, savedDrug string) string {
	clean := wsRe.ReplaceAllString(text, " ")
	clean = referralRe.ReplaceAllString(clean, "")
	clean = strings.TrimSpace(clean)

	if runes := []rune(clean); len(runes) > detailsMaxLen {
		clean = string(runes[:detailsMaxLen]) + "..."
	}

	lower := strings.ToLower(clean)
	if !strings.Contains(lower, strings.ToLower(newDrug)) &&
		!strings.Contains(lower, strings.ToLower(savedDrug)) {
		clean = newDrug + " and " + savedDrug + ": " + clean
	}

	return clean
}
