package prompt

func str() map[string]any { return map[string]any{"type": "string"} }
func num() map[string]any { return map[string]any{"type": "number"} }
func strList() map[string]any {
	return map[string]any{"type": "array", "items": str()}
}

func object(props map[string]any, required ...string) map[string]any {
	o := map[string]any{"type": "object", "properties": props}
	if len(required) > 0 {
		o["required"] = required
	}
	return o
}

// ReportSchema is the JSON Schema of a model-produced report.
// Keys match the json tags of report.Report.
func ReportSchema() map[string]any {
	return object(map[string]any{
		"summary":           str(),
		"keyInsights":       strList(),
		"contentThemes":     strList(),
		"audienceProfile":   str(),
		"engagementPattern": str(),
		"recommendations":   strList(),

		"authority":     num(),
		"topicAffinity": num(),
		"botRisk":       str(),
		"leadQuality": object(map[string]any{
			"score":       num(),
			"intent":      num(),
			"socialProof": num(),
		}, "score", "intent", "socialProof"),
		"persona": map[string]any{
			"type": "string",
			"enum": []string{"curious", "prospect", "customer", "influencer"},
		},
		"personaInsights": object(map[string]any{
			"whyThisPersona": str(),
			"howToRaiseLqs":  str(),
		}, "whyThisPersona", "howToRaiseLqs"),

		"identification": object(map[string]any{
			"fullName":            str(),
			"location":            str(),
			"apparentAge":         str(),
			"estimatedExperience": str(),
			"careerStatus":        str(),
		}),
		"compatibility": object(map[string]any{
			"categories": map[string]any{
				"type": "array",
				"items": object(map[string]any{
					"category": str(),
					"score":    num(),
					"notes":    str(),
				}, "category", "score", "notes"),
			},
			"finalScore":     num(),
			"classification": str(),
		}, "categories", "finalScore", "classification"),
		"emotionalDiagnosis": object(map[string]any{
			"currentStates":        strList(),
			"aspirationalEmotion":  str(),
			"predominantDiscourse": strList(),
			"awarenessLevel":       str(),
		}, "currentStates", "aspirationalEmotion", "predominantDiscourse", "awarenessLevel"),
		"technicalSignals": map[string]any{
			"type": "array",
			"items": object(map[string]any{
				"indicator":      str(),
				"status":         str(),
				"interpretation": str(),
			}, "indicator", "status", "interpretation"),
		},
		"conversionReadiness": object(map[string]any{
			"level": map[string]any{
				"type": "string",
				"enum": []string{"high", "medium", "low", "unqualified"},
			},
			"score":             num(),
			"description":       str(),
			"recommendedAction": str(),
			"approachEmphasis":  str(),
		}, "level", "score", "description", "recommendedAction", "approachEmphasis"),
		"strategicInsights": object(map[string]any{
			"idealOpeningMessage": str(),
			"idealTone":           str(),
			"bestConvertingOffer": str(),
		}, "idealOpeningMessage", "idealTone", "bestConvertingOffer"),
		"quickSummary": object(map[string]any{
			"name":              str(),
			"score":             num(),
			"classification":    str(),
			"awarenessLevel":    str(),
			"dominantEmotion":   str(),
			"purchaseMotivator": str(),
			"bestApproach":      str(),
			"immediateAction":   str(),
		}, "name", "score", "classification", "awarenessLevel", "dominantEmotion",
			"purchaseMotivator", "bestApproach", "immediateAction"),
	},
		"summary", "keyInsights", "contentThemes", "authority", "topicAffinity",
		"botRisk", "leadQuality", "persona", "personaInsights",
		"identification", "compatibility", "emotionalDiagnosis",
		"technicalSignals", "conversionReadiness", "strategicInsights", "quickSummary",
	)
}
