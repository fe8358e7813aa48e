package prompt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bryanwahyu/leadscope/internal/domain/profile"
)

// QualificationSystem returns the system instruction for a lead qualification report.
// The briefing is the primary evaluation guide; persona is an optional hint ("" or "none" to skip).
func QualificationSystem(briefing, persona string) string {
	var b strings.Builder
	b.WriteString(`You are an expert in social media analysis, digital marketing and lead qualification.
Analyze the given profile and produce actionable insights including predictive metrics.

===== USER BRIEFING =====
`)
	b.WriteString(strings.TrimSpace(briefing))
	b.WriteString(`
===== END OF BRIEFING =====

CRITICAL: use the briefing as the main guide. Evaluate the profile specifically against the criteria, goals and traits it describes.`)
	if hasPersona(persona) {
		fmt.Fprintf(&b, "\n\nThe user is specifically looking for profiles with the persona %q. Weigh this together with the briefing.", persona)
	}
	b.WriteString(`

PREDICTIVE METRIC CRITERIA:

1. authority (0-100): 60% average engagement (likes / followers), 40% posting frequency and consistency.
2. topicAffinity (0-100): overlap between bio keywords and post captions, recurring themes and hashtags.
3. botRisk: a percentage string such as "15%". High when engagement < 0.5% and posts look alike, medium between 0.5% and 2%, low above 2% with varied content.
4. leadQuality: intent (0-100) from bio, calls to action, links and product mentions; socialProof (0-100) from followers, engagement and frequency; score = intent*0.6 + socialProof*0.4.
5. persona: "curious" (intent < 40 and socialProof < 40), "prospect" (both 40-70), "customer" (intent > 70), "influencer" (socialProof > 70).

Respond with a single JSON object that follows the response schema. No markdown, no code fences.`)
	return b.String()
}

// QualificationUser renders the profile, every post and the report sections to fill.
func QualificationUser(p profile.Profile, posts []profile.Post, persona string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Username: @%s\n", p.Username)
	fmt.Fprintf(&b, "Name: %s\n", orNA(p.FullName))
	fmt.Fprintf(&b, "Bio: %s\n", orDefault(p.Bio, "No bio"))
	fmt.Fprintf(&b, "Followers: %s\n", intOrNA(p.Followers))
	fmt.Fprintf(&b, "Following: %s\n", intOrNA(p.Following))
	fmt.Fprintf(&b, "Posts: %s\n", intOrNA(p.PostsCount))
	if p.IsPrivate {
		b.WriteString("Type: private\n")
	} else {
		b.WriteString("Type: public\n")
	}

	fmt.Fprintf(&b, "\nRecent posts (%d):\n", len(posts))
	for i, post := range posts {
		fmt.Fprintf(&b, "\nPost %d:\n", i+1)
		fmt.Fprintf(&b, "- Caption: %s\n", orDefault(post.Caption, "No caption"))
		fmt.Fprintf(&b, "- Likes: %s\n", intOrNA(post.Likes))
		if post.Timestamp != nil {
			fmt.Fprintf(&b, "- Date: %s\n", post.Timestamp.UTC().Format(time.RFC3339))
		} else {
			b.WriteString("- Date: N/A\n")
		}
		if post.OCRText != nil && *post.OCRText != "" {
			fmt.Fprintf(&b, "- Text extracted from image: %s\n", *post.OCRText)
		}
	}

	b.WriteString("\n\nEvaluate this profile against the briefing in the system instruction.")
	if hasPersona(persona) {
		fmt.Fprintf(&b, " The user also asked for the persona %q.", persona)
	}
	b.WriteString(`

Produce a COMPLETE QUALIFICATION REPORT with these sections:
1. identification: fullName, location, apparentAge (e.g. "25-30"), estimatedExperience, careerStatus. Leave out what cannot be detected.
2. compatibility: 5-7 categories adapted to the briefing, each scored 0-10 with notes; finalScore 0-100; classification "Highly Qualified" (80-100), "Qualified" (60-79), "Partially Qualified" (40-59), "Not Qualified" (<40).
3. emotionalDiagnosis: 2-4 currentStates, aspirationalEmotion, 2-3 predominantDiscourse quotes, awarenessLevel.
4. technicalSignals: 5-7 indicators relevant to the briefing with status and a short interpretation.
5. conversionReadiness: level ("high", "medium", "low" or "unqualified"), score (same as finalScore), description, recommendedAction, approachEmphasis.
6. strategicInsights: idealOpeningMessage (2-3 sentences), idealTone, bestConvertingOffer.
7. quickSummary: name, score, classification, awarenessLevel, dominantEmotion, purchaseMotivator, bestApproach, immediateAction.
8. predictive metrics: authority, topicAffinity, botRisk, leadQuality, persona, personaInsights (whyThisPersona, howToRaiseLqs).
9. overview: summary, keyInsights, contentThemes, audienceProfile, engagementPattern, recommendations.

Every assessment must be SPECIFIC to the briefing. Reuse its terms and criteria.`)
	return b.String()
}

// OCRInstruction is sent alongside an image.
const OCRInstruction = "Extract all visible text from this image. If there is no text, return a short description of the image."

func hasPersona(persona string) bool {
	return persona != "" && persona != "none"
}

func orNA(s string) string { return orDefault(s, "N/A") }

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func intOrNA(v *int) string {
	if v == nil {
		return "N/A"
	}
	return strconv.Itoa(*v)
}
