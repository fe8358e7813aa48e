package report

import "time"

// Persona enum
type Persona string

const (
	PersonaCurious    Persona = "curious"
	PersonaProspect   Persona = "prospect"
	PersonaCustomer   Persona = "customer"
	PersonaInfluencer Persona = "influencer"

	// PersonaNone is accepted as a request hint only; reports never carry it.
	PersonaNone Persona = "none"
)

// Personas lists the values a report may carry.
var Personas = []Persona{PersonaCurious, PersonaProspect, PersonaCustomer, PersonaInfluencer}

func (p Persona) Valid() bool {
	for _, v := range Personas {
		if p == v {
			return true
		}
	}
	return false
}

// ConversionLevel enum
type ConversionLevel string

const (
	LevelHigh        ConversionLevel = "high"
	LevelMedium      ConversionLevel = "medium"
	LevelLow         ConversionLevel = "low"
	LevelUnqualified ConversionLevel = "unqualified"
)

func (l ConversionLevel) Valid() bool {
	switch l {
	case LevelHigh, LevelMedium, LevelLow, LevelUnqualified:
		return true
	}
	return false
}

// Source tells which path produced the report.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// LeadQuality value object
type LeadQuality struct {
	Score       float64 `json:"score"`
	Intent      float64 `json:"intent"`
	SocialProof float64 `json:"socialProof"`
}

type PersonaInsights struct {
	WhyThisPersona string `json:"whyThisPersona"`
	HowToRaiseLQS  string `json:"howToRaiseLqs"`
}

// Identification holds best-effort guesses; every field is independent.
type Identification struct {
	FullName            string `json:"fullName,omitempty"`
	Location            string `json:"location,omitempty"`
	ApparentAge         string `json:"apparentAge,omitempty"`
	EstimatedExperience string `json:"estimatedExperience,omitempty"`
	CareerStatus        string `json:"careerStatus,omitempty"`
}

type CompatibilityCategory struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"` // 0-10
	Notes    string  `json:"notes"`
}

type Compatibility struct {
	Categories     []CompatibilityCategory `json:"categories"`
	FinalScore     float64                 `json:"finalScore"`
	Classification string                  `json:"classification"`
}

type EmotionalDiagnosis struct {
	CurrentStates        []string `json:"currentStates"`
	AspirationalEmotion  string   `json:"aspirationalEmotion"`
	PredominantDiscourse []string `json:"predominantDiscourse"`
	AwarenessLevel       string   `json:"awarenessLevel"`
}

type TechnicalSignal struct {
	Indicator      string `json:"indicator"`
	Status         string `json:"status"`
	Interpretation string `json:"interpretation"`
}

type ConversionReadiness struct {
	Level             ConversionLevel `json:"level"`
	Score             float64         `json:"score"`
	Description       string          `json:"description"`
	RecommendedAction string          `json:"recommendedAction"`
	ApproachEmphasis  string          `json:"approachEmphasis"`
}

type StrategicInsights struct {
	IdealOpeningMessage string `json:"idealOpeningMessage"`
	IdealTone           string `json:"idealTone"`
	BestConvertingOffer string `json:"bestConvertingOffer"`
}

// QuickSummary is the dashboard card.
type QuickSummary struct {
	Name              string  `json:"name"`
	Score             float64 `json:"score"`
	Classification    string  `json:"classification"`
	AwarenessLevel    string  `json:"awarenessLevel"`
	DominantEmotion   string  `json:"dominantEmotion"`
	PurchaseMotivator string  `json:"purchaseMotivator"`
	BestApproach      string  `json:"bestApproach"`
	ImmediateAction   string  `json:"immediateAction"`
}

// Report aggregate: legacy summary fields plus the optional qualification family.
type Report struct {
	Summary           string    `json:"summary"`
	KeyInsights       []string  `json:"keyInsights"`
	ContentThemes     []string  `json:"contentThemes"`
	AudienceProfile   string    `json:"audienceProfile,omitempty"`
	EngagementPattern string    `json:"engagementPattern,omitempty"`
	Recommendations   []string  `json:"recommendations,omitempty"`
	AnalyzedAt        time.Time `json:"analyzedAt"`
	Source            Source    `json:"source,omitempty"`

	// predictive metrics; set together or not at all
	Authority     *float64     `json:"authority,omitempty"`
	TopicAffinity *float64     `json:"topicAffinity,omitempty"`
	BotRisk       *string      `json:"botRisk,omitempty"`
	LeadQuality   *LeadQuality `json:"leadQuality,omitempty"`
	Persona       *Persona     `json:"persona,omitempty"`

	PersonaInsights     *PersonaInsights     `json:"personaInsights,omitempty"`
	Identification      *Identification      `json:"identification,omitempty"`
	Compatibility       *Compatibility       `json:"compatibility,omitempty"`
	EmotionalDiagnosis  *EmotionalDiagnosis  `json:"emotionalDiagnosis,omitempty"`
	TechnicalSignals    []TechnicalSignal    `json:"technicalSignals,omitempty"`
	ConversionReadiness *ConversionReadiness `json:"conversionReadiness,omitempty"`
	StrategicInsights   *StrategicInsights   `json:"strategicInsights,omitempty"`
	QuickSummary        *QuickSummary        `json:"quickSummary,omitempty"`
}

// HasQualification reports whether the predictive core is present.
func (r *Report) HasQualification() bool {
	return r.Authority != nil && r.TopicAffinity != nil && r.BotRisk != nil &&
		r.LeadQuality != nil && r.Persona != nil
}
