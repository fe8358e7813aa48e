package report

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func qualified() Report {
	return Report{
		Summary:       "coffee roaster",
		Authority:     ptr(120.0),
		TopicAffinity: ptr(math.NaN()),
		BotRisk:       ptr("low"),
		LeadQuality:   &LeadQuality{Score: -5, Intent: 50, SocialProof: 101},
		Persona:       ptr(Persona(" Prospect ")),
	}
}

func TestNormalize(t *testing.T) {
	r := qualified()
	r.ConversionReadiness = &ConversionReadiness{Level: "HIGH", Score: 300}
	r.Normalize()

	assert.Equal(t, 100.0, *r.Authority)
	assert.Equal(t, 0.0, *r.TopicAffinity)
	assert.Equal(t, LeadQuality{Score: 0, Intent: 50, SocialProof: 100}, *r.LeadQuality)
	assert.Equal(t, PersonaProspect, *r.Persona)
	assert.Equal(t, LevelHigh, r.ConversionReadiness.Level)
	assert.Equal(t, 100.0, r.ConversionReadiness.Score)
	assert.NotNil(t, r.KeyInsights)
	assert.NotNil(t, r.ContentThemes)
	require.NoError(t, r.ValidateModelOutput())
}

func TestValidate(t *testing.T) {
	r := Report{}
	assert.ErrorIs(t, r.Validate(), ErrMissingSummary)

	legacy := Report{Summary: "ok"}
	require.NoError(t, legacy.Validate())
	assert.ErrorIs(t, legacy.ValidateModelOutput(), ErrMissingQualification)

	partial := Report{Summary: "ok", Authority: ptr(10.0)}
	assert.ErrorIs(t, partial.Validate(), ErrPartialQualification)

	bad := qualified()
	bad.Persona = ptr(PersonaNone)
	assert.ErrorIs(t, bad.Validate(), ErrInvalidPersona)

	tier := qualified()
	tier.Persona = ptr(PersonaCustomer)
	tier.ConversionReadiness = &ConversionReadiness{Level: "maybe"}
	assert.ErrorIs(t, tier.Validate(), ErrInvalidConversionTier)
}
