package prompt

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/leadscope/internal/domain/profile"
	"github.com/bryanwahyu/leadscope/internal/domain/report"
)

func TestQualificationSystem_PersonaHint(t *testing.T) {
	withHint := QualificationSystem("  find dentists in Lisbon  ", "prospect")
	assert.Contains(t, withHint, "find dentists in Lisbon\n")
	assert.Contains(t, withHint, `"prospect"`)

	for _, p := range []string{"", "none"} {
		assert.NotContains(t, QualificationSystem("find dentists in Lisbon", p), "specifically looking for")
	}
}

func TestQualificationUser_RendersEveryPost(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	p := profile.Profile{Username: "dr.rui", Followers: profile.Int(1200), IsPrivate: false}
	posts := []profile.Post{
		{Caption: "Open day", Likes: profile.Int(42), Timestamp: &ts, OCRText: profile.String("BOOK NOW")},
		{},
	}

	out := QualificationUser(p, posts, "")

	assert.Contains(t, out, "Username: @dr.rui")
	assert.Contains(t, out, "Followers: 1200")
	assert.Contains(t, out, "Following: N/A")
	assert.Contains(t, out, "Bio: No bio")
	assert.Contains(t, out, "Recent posts (2)")
	assert.Contains(t, out, "- Likes: 42")
	assert.Contains(t, out, "2025-01-02T03:04:05Z")
	assert.Contains(t, out, "Text extracted from image: BOOK NOW")
	assert.Contains(t, out, "Caption: No caption")
}

func TestReportSchema_MatchesReportFields(t *testing.T) {
	s := ReportSchema()
	props, ok := s["properties"].(map[string]any)
	require.True(t, ok)

	// every schema property must decode into a Report field
	b, err := json.Marshal(report.Report{})
	require.NoError(t, err)
	var zero map[string]any
	require.NoError(t, json.Unmarshal(b, &zero))

	known := map[string]bool{}
	for k := range zero {
		known[k] = true
	}
	for _, k := range []string{"audienceProfile", "engagementPattern", "recommendations", "authority",
		"topicAffinity", "botRisk", "leadQuality", "persona", "personaInsights", "identification",
		"compatibility", "emotionalDiagnosis", "technicalSignals", "conversionReadiness",
		"strategicInsights", "quickSummary"} {
		known[k] = true // omitempty fields
	}
	for k := range props {
		assert.True(t, known[k], "schema property %q has no report field", k)
	}
	assert.Contains(t, s["required"], "persona")
}
