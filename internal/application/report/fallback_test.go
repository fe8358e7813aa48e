package report_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appreport "github.com/bryanwahyu/leadscope/internal/application/report"
	"github.com/bryanwahyu/leadscope/internal/domain/profile"
	"github.com/bryanwahyu/leadscope/internal/domain/report"
)

func TestFallback_PersonaExamples(t *testing.T) {
	big := appreport.Fallback(profile.Profile{Username: "big", Followers: profile.Int(150000)}, nil, now)
	assert.Equal(t, report.PersonaInfluencer, *big.Persona)
	assert.Equal(t, 100.0, big.LeadQuality.SocialProof)
	assert.Equal(t, 20.0, big.LeadQuality.Intent)
	assert.Equal(t, 52.0, big.LeadQuality.Score)

	small := appreport.Fallback(profile.Profile{Username: "small", Followers: profile.Int(500), Bio: "contact me"}, nil, now)
	assert.Equal(t, report.PersonaCurious, *small.Persona)
	assert.Equal(t, 40.0, small.LeadQuality.Intent)
	assert.Equal(t, 1.0, small.LeadQuality.SocialProof)
}

func TestFallback_Metrics(t *testing.T) {
	p := profile.Profile{Username: "shop", Followers: profile.Int(1000), PostsCount: profile.Int(12)}
	posts := []profile.Post{
		{Caption: "first", Likes: profile.Int(40)},
		{Caption: "", Likes: profile.Int(60)},
		{Caption: "third"}, // hidden count counts as 0
	}

	r := appreport.Fallback(p, posts, now)

	require.True(t, r.HasQualification())
	assert.Equal(t, report.SourceFallback, r.Source)
	assert.Equal(t, now, r.AnalyzedAt)
	assert.Equal(t, 53.0, *r.Authority) // round(100/3)=33 -> 33/1000*1000 + 20
	assert.Equal(t, 50.0, *r.TopicAffinity)
	assert.Equal(t, "10%", *r.BotRisk)
	assert.Equal(t, []string{"first...", "third..."}, r.ContentThemes)
	assert.Contains(t, r.KeyInsights[1], "33 likes")
	assert.Contains(t, r.Summary, "unavailable")
}

func TestFallback_HiddenLikesLowerAuthority(t *testing.T) {
	p := profile.Profile{Username: "quiet", Followers: profile.Int(1000)}
	posts := []profile.Post{{Likes: profile.Int(20)}, {}, {}, {}}

	r := appreport.Fallback(p, posts, now)

	assert.Equal(t, 25.0, *r.Authority) // avg 5 -> 5 + 20
	assert.Equal(t, "30%", *r.BotRisk)
	assert.Contains(t, r.KeyInsights[1], "5 likes")
}

func TestFallback_BotRiskBands(t *testing.T) {
	cases := []struct {
		likes int
		want  string
	}{
		{likes: 1, want: "75%"},  // 0.1%
		{likes: 10, want: "30%"}, // 1%
		{likes: 300, want: "10%"},
	}
	for _, tc := range cases {
		p := profile.Profile{Followers: profile.Int(1000)}
		r := appreport.Fallback(p, []profile.Post{{Likes: profile.Int(tc.likes)}}, now)
		assert.Equal(t, tc.want, *r.BotRisk, "likes=%d", tc.likes)
	}
}

func TestFallback_NoFollowersNoPosts(t *testing.T) {
	r := appreport.Fallback(profile.Profile{Username: "ghost"}, nil, now)
	assert.Equal(t, 0.0, *r.Authority)
	assert.Equal(t, "75%", *r.BotRisk)
	assert.Equal(t, 12.0, r.LeadQuality.Score)
	assert.Empty(t, r.ContentThemes)
	assert.Contains(t, r.Summary, "N/A")
}

func TestFallback_ThemesTruncateByRune(t *testing.T) {
	caption := strings.Repeat("é", 80)
	r := appreport.Fallback(profile.Profile{}, []profile.Post{{Caption: caption}}, now)
	require.Len(t, r.ContentThemes, 1)
	assert.Equal(t, strings.Repeat("é", 50)+"...", r.ContentThemes[0])
}

func TestClassifyPersona(t *testing.T) {
	assert.Equal(t, report.PersonaInfluencer, appreport.ClassifyPersona(90, 71))
	assert.Equal(t, report.PersonaCustomer, appreport.ClassifyPersona(71, 10))
	assert.Equal(t, report.PersonaProspect, appreport.ClassifyPersona(40, 40))
	assert.Equal(t, report.PersonaCurious, appreport.ClassifyPersona(40, 39))
}
