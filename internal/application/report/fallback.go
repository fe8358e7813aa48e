package report

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/bryanwahyu/leadscope/internal/domain/profile"
	domain "github.com/bryanwahyu/leadscope/internal/domain/report"
)

const (
	neutralTopicAffinity = 50
	themeSampleSize      = 3
	themeMaxRunes        = 50
)

// Fallback derives a report from raw profile statistics. Deterministic for a given now.
func Fallback(p profile.Profile, posts []profile.Post, now time.Time) *domain.Report {
	avgLikes := averageLikes(posts)
	followers := p.FollowerCount()

	var ratio float64
	if followers > 0 {
		ratio = float64(avgLikes) / float64(followers)
	}

	presence := 0.0
	if len(posts) > 0 {
		presence = 20
	}
	authority := math.Min(100, math.Round(ratio*1000+presence))
	topic := float64(neutralTopicAffinity)
	botRisk := botRiskFor(ratio)

	social := math.Min(100, math.Round(float64(followers)/1000))
	intent := 20.0
	if p.Bio != "" {
		intent = 40
	}
	lqs := math.Round(intent*0.6 + social*0.4)
	persona := ClassifyPersona(intent, social)

	followersText := "N/A"
	if p.Followers != nil {
		followersText = strconv.Itoa(*p.Followers)
	}
	postsCount := 0
	if p.PostsCount != nil {
		postsCount = *p.PostsCount
	}

	return &domain.Report{
		Summary: fmt.Sprintf("Profile @%s with %s followers. Full AI analysis is temporarily unavailable; the basic profile and post data are still available.",
			p.Username, followersText),
		KeyInsights: []string{
			fmt.Sprintf("Profile has %d posts in total", postsCount),
			fmt.Sprintf("Average of %d likes per post", avgLikes),
			fmt.Sprintf("Engagement rate based on %d recent posts", len(posts)),
		},
		ContentThemes:     themes(posts),
		AudienceProfile:   fmt.Sprintf("Audience estimated from %s followers", followersText),
		EngagementPattern: fmt.Sprintf("Engagement pattern observed over the %d most recent posts", len(posts)),
		Recommendations: []string{
			"Full AI analysis is temporarily unavailable",
			"Basic profile data is available above",
			"Try again in a few moments",
		},
		AnalyzedAt: now,
		Source:     domain.SourceFallback,

		Authority:     &authority,
		TopicAffinity: &topic,
		BotRisk:       &botRisk,
		LeadQuality:   &domain.LeadQuality{Score: lqs, Intent: intent, SocialProof: social},
		Persona:       &persona,
		PersonaInsights: &domain.PersonaInsights{
			WhyThisPersona: "Classified from basic profile metrics (AI unavailable).",
			HowToRaiseLQS:  "Detailed analysis unavailable. Try again once the AI service is back.",
		},
	}
}

// ClassifyPersona applies the fallback persona rules in priority order.
func ClassifyPersona(intent, socialProof float64) domain.Persona {
	switch {
	case socialProof > 70:
		return domain.PersonaInfluencer
	case intent > 70:
		return domain.PersonaCustomer
	case intent >= 40 && socialProof >= 40:
		return domain.PersonaProspect
	default:
		return domain.PersonaCurious
	}
}

// averageLikes is the rounded mean over all posts; a hidden count is 0.
func averageLikes(posts []profile.Post) int {
	if len(posts) == 0 {
		return 0
	}
	sum := 0
	for _, p := range posts {
		sum += p.LikeCount()
	}
	return int(math.Round(float64(sum) / float64(len(posts))))
}

func botRiskFor(ratio float64) string {
	switch {
	case ratio < 0.005:
		return "75%"
	case ratio < 0.02:
		return "30%"
	default:
		return "10%"
	}
}

func themes(posts []profile.Post) []string {
	out := make([]string, 0, themeSampleSize)
	for _, p := range posts {
		if p.Caption == "" {
			continue
		}
		out = append(out, truncateRunes(p.Caption, themeMaxRunes)+"...")
		if len(out) == themeSampleSize {
			break
		}
	}
	return out
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
