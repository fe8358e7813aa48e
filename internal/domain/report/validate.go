package report

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrMissingSummary        = errors.New("report: summary is empty")
	ErrPartialQualification  = errors.New("report: qualification fields must be present together")
	ErrMissingQualification  = errors.New("report: qualification fields are missing")
	ErrInvalidPersona        = errors.New("report: invalid persona")
	ErrInvalidConversionTier = errors.New("report: invalid conversion level")
)

// Normalize clamps numeric fields into their documented ranges and
// lower-cases enum values.
func (r *Report) Normalize() {
	clampPtr(r.Authority, 0, 100)
	clampPtr(r.TopicAffinity, 0, 100)
	if r.LeadQuality != nil {
		r.LeadQuality.Score = clamp(r.LeadQuality.Score, 0, 100)
		r.LeadQuality.Intent = clamp(r.LeadQuality.Intent, 0, 100)
		r.LeadQuality.SocialProof = clamp(r.LeadQuality.SocialProof, 0, 100)
	}
	if r.Persona != nil {
		p := Persona(strings.ToLower(strings.TrimSpace(string(*r.Persona))))
		r.Persona = &p
	}
	if r.Compatibility != nil {
		for i := range r.Compatibility.Categories {
			c := &r.Compatibility.Categories[i]
			c.Score = clamp(c.Score, 0, 10)
		}
		r.Compatibility.FinalScore = clamp(r.Compatibility.FinalScore, 0, 100)
	}
	if r.ConversionReadiness != nil {
		r.ConversionReadiness.Level = ConversionLevel(strings.ToLower(strings.TrimSpace(string(r.ConversionReadiness.Level))))
		r.ConversionReadiness.Score = clamp(r.ConversionReadiness.Score, 0, 100)
	}
	if r.QuickSummary != nil {
		r.QuickSummary.Score = clamp(r.QuickSummary.Score, 0, 100)
	}
	if r.KeyInsights == nil {
		r.KeyInsights = []string{}
	}
	if r.ContentThemes == nil {
		r.ContentThemes = []string{}
	}
}

// Validate enforces the shape contract at the boundary.
func (r *Report) Validate() error {
	if strings.TrimSpace(r.Summary) == "" {
		return ErrMissingSummary
	}
	set := 0
	for _, present := range []bool{
		r.Authority != nil, r.TopicAffinity != nil, r.BotRisk != nil,
		r.LeadQuality != nil, r.Persona != nil,
	} {
		if present {
			set++
		}
	}
	if set != 0 && set != 5 {
		return ErrPartialQualification
	}
	if r.Persona != nil && !r.Persona.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPersona, *r.Persona)
	}
	if r.ConversionReadiness != nil && !r.ConversionReadiness.Level.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidConversionTier, r.ConversionReadiness.Level)
	}
	return nil
}

// ValidateModelOutput is Validate plus the requirement that the model filled
// the qualification core.
func (r *Report) ValidateModelOutput() error {
	if err := r.Validate(); err != nil {
		return err
	}
	if !r.HasQualification() {
		return ErrMissingQualification
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func clampPtr(v *float64, lo, hi float64) {
	if v != nil {
		*v = clamp(*v, lo, hi)
	}
}
