package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osetrov/healthkeeper/internal/client/models"
)

func TestClassifySeverity(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.Severity
	}{
		{"no keywords", "Take with food.", models.SeverityNone},
		{"minor keyword", "Monitor INR closely.", models.SeverityMinor},
		{"serious keyword", "Concomitant use is contraindicated.", models.SeveritySerious},
		{"serious inside longer word context", "Seek immediate medical attention.", models.SeveritySerious},
		{"serious wins over minor", "Use caution; may be fatal in overdose.", models.SeveritySerious},
		{"case insensitive", "AVOID concurrent use.", models.SeveritySerious},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, classifySeverity(tt.text))
		})
	}
}

func TestCleanInteractionText_CollapsesWhitespace(t *testing.T) {
	got := cleanInteractionText("Aspirin  may \n\t increase   bleeding.", "Aspirin", "Warfarin")
	require.Equal(t, "Aspirin may increase bleeding.", got)
}

func TestCleanInteractionText_DropsReferralSentences(t *testing.T) {
	got := cleanInteractionText(
		"Warfarin levels may rise. See section 7.1 for details. Consult the prescriber before dosing.",
		"Aspirin", "Warfarin")
	require.Equal(t, "Warfarin levels may rise.", got)
}

func TestCleanInteractionText_TruncatesLongText(t *testing.T) {
	long := "Warfarin " + strings.Repeat("x", 400)
	got := cleanInteractionText(long, "Aspirin", "Warfarin")
	require.Len(t, []rune(got), detailsMaxLen+3)
	require.True(t, strings.HasSuffix(got, "..."))
}

func TestCleanInteractionText_PrefixesWhenNoDrugNamed(t *testing.T) {
	got := cleanInteractionText("Bleeding risk is elevated.", "Aspirin", "Warfarin")
	require.Equal(t, "Aspirin and Warfarin: Bleeding risk is elevated.", got)
}

func TestCleanInteractionText_NoPrefixWhenEitherDrugNamed(t *testing.T) {
	got := cleanInteractionText("Interacts with warfarin.", "Aspirin", "Warfarin")
	require.Equal(t, "Interacts with warfarin.", got)
}
