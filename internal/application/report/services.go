package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/bryanwahyu/leadscope/internal/application"
	"github.com/bryanwahyu/leadscope/internal/application/retry"
	"github.com/bryanwahyu/leadscope/internal/domain/ai"
	"github.com/bryanwahyu/leadscope/internal/domain/profile"
	domain "github.com/bryanwahyu/leadscope/internal/domain/report"
	"github.com/bryanwahyu/leadscope/internal/infra/ai/prompt"
)

// MinBriefingLength is counted in characters after trimming.
const MinBriefingLength = 10

// ErrBriefingTooShort is the only error Generate returns.
var ErrBriefingTooShort = fmt.Errorf("briefing is required and must be at least %d characters", MinBriefingLength)

var errNoClient = errors.New("no ai client configured")

// Generator produces qualification reports.
// A failed model call never reaches the caller; it degrades to Fallback.
type Generator struct {
	AI     ai.Client
	Clock  application.Clock
	Logger *zap.Logger
	// Policy defaults to retry.ReportPolicy when Attempts is zero.
	Policy retry.Policy
	// OnReport, when set, is told which path produced each report.
	OnReport func(domain.Source)
}

// ValidateBriefing checks the briefing length guard.
func ValidateBriefing(briefing string) error {
	if utf8.RuneCountInString(strings.TrimSpace(briefing)) < MinBriefingLength {
		return ErrBriefingTooShort
	}
	return nil
}

// Generate builds a report for the profile and the given (already filtered) posts.
func (g *Generator) Generate(ctx context.Context, p profile.Profile, posts []profile.Post, persona, briefing string) (*domain.Report, error) {
	if err := ValidateBriefing(briefing); err != nil {
		return nil, err
	}
	log := g.logger().With(zap.String("username", p.Username))

	r, err := g.fromModel(ctx, p, posts, persona, briefing)
	if err != nil {
		log.Warn("report generation failed, using fallback", zap.Error(err))
		r = Fallback(p, posts, g.Clock.Now())
	} else {
		log.Info("report generated", zap.Int("posts", len(posts)))
	}
	if g.OnReport != nil {
		g.OnReport(r.Source)
	}
	return r, nil
}

func (g *Generator) fromModel(ctx context.Context, p profile.Profile, posts []profile.Post, persona, briefing string) (*domain.Report, error) {
	if g.AI == nil {
		return nil, errNoClient
	}
	req := ai.CompletionRequest{
		System: prompt.QualificationSystem(briefing, persona),
		User:   prompt.QualificationUser(p, posts, persona),
		Schema: prompt.ReportSchema(),
	}
	policy := g.Policy
	if policy.Attempts == 0 {
		policy = retry.ReportPolicy
	}
	raw, err := retry.Do(ctx, policy, g.Clock, func(ctx context.Context) (string, error) {
		return g.AI.Complete(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	raw = cleanJSON(raw)
	if raw == "" {
		return nil, ai.ErrEmptyResponse
	}

	var r domain.Report
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	r.Normalize()
	if err := r.ValidateModelOutput(); err != nil {
		return nil, err
	}
	r.AnalyzedAt = g.Clock.Now()
	r.Source = domain.SourceModel
	return &r, nil
}

func (g *Generator) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

// cleanJSON strips code fences and any prose around the outermost object.
func cleanJSON(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
