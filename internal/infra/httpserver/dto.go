package httpserver

import (
	"github.com/bryanwahyu/leadscope/internal/application/analysis"
	"github.com/bryanwahyu/leadscope/internal/domain/profile"
	"github.com/bryanwahyu/leadscope/internal/domain/report"
	"github.com/bryanwahyu/leadscope/internal/middleware"
)

type analyzeRequest struct {
	Username string           `json:"username"`
	Filters  *profile.Filters `json:"filters,omitempty"`
	// personaAlvo is the field name older clients send
	PersonaAlvo   string `json:"personaAlvo,omitempty"`
	TargetPersona string `json:"targetPersona,omitempty"`
	Briefing      string `json:"briefing"`
}

// legacyPersonas maps the personaAlvo vocabulary older clients send.
var legacyPersonas = map[string]report.Persona{
	"curioso":       report.PersonaCurious,
	"prospecto":     report.PersonaProspect,
	"cliente":       report.PersonaCustomer,
	"influenciador": report.PersonaInfluencer,
	"nenhuma":       report.PersonaNone,
}

// personaHint picks targetPersona over personaAlvo and translates legacy values.
// Unknown values pass through so the service can reject them.
func personaHint(target, alvo string) string {
	persona := target
	if persona == "" {
		persona = alvo
	}
	if p, ok := legacyPersonas[persona]; ok {
		return string(p)
	}
	return persona
}

func (b analyzeRequest) command() analysis.AnalyzeCommand {
	return analysis.AnalyzeCommand{
		Username:      b.Username,
		Filters:       b.Filters,
		TargetPersona: personaHint(b.TargetPersona, b.PersonaAlvo),
		Briefing:      middleware.SanitizeString(b.Briefing),
	}
}

type batchRequest struct {
	Usernames     []string `json:"usernames"`
	PersonaAlvo   string   `json:"personaAlvo,omitempty"`
	TargetPersona string   `json:"targetPersona,omitempty"`
	Briefing      string   `json:"briefing"`
}

func (b batchRequest) command() analysis.BatchCommand {
	return analysis.BatchCommand{
		Usernames:     b.Usernames,
		TargetPersona: personaHint(b.TargetPersona, b.PersonaAlvo),
		Briefing:      middleware.SanitizeString(b.Briefing),
	}
}

type profileAndReport struct {
	Profile profile.Profile `json:"profile"`
	Report  *report.Report  `json:"analysis"`
}

type analyzeResponse struct {
	Success   bool             `json:"success"`
	Data      profileAndReport `json:"data"`
	FromCache bool             `json:"fromCache"`
}

type batchResponse struct {
	Success bool `json:"success"`
	*analysis.BatchResult
}
