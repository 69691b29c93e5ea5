package utils

import (
	"strings"
	"tawjih-service/internal/pkg/dto/requests"
)

func normalizeKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func SanitizeStartAssessmentRequest(input *requests.StartAssessment) {
	input.UserID = strings.TrimSpace(input.UserID)
	input.Category = strings.TrimSpace(input.Category)
	input.CulturalContext = normalizeKey(input.CulturalContext)
	input.Language = normalizeKey(input.Language)
	input.AssessmentType = normalizeKey(input.AssessmentType)
}

func SanitizeSubmitResponsesRequest(input *requests.SubmitResponses) {
	for i := range input.Responses {
		input.Responses[i].QuestionID = strings.TrimSpace(input.Responses[i].QuestionID)
		if text, ok := input.Responses[i].Value.(string); ok {
			input.Responses[i].Value = strings.TrimSpace(text)
		}
	}
}

func SanitizeQuickMatchRequest(input *requests.QuickMatch) {
	input.Category = strings.TrimSpace(input.Category)
	input.CulturalContext = normalizeKey(input.CulturalContext)
	input.Language = normalizeKey(input.Language)
}

func SanitizeVoiceCompatibilityRequest(input *requests.VoiceCompatibility) {
	input.CandidateID = strings.TrimSpace(input.CandidateID)
	input.Preferences.Gender = normalizeKey(input.Preferences.Gender)
	input.Preferences.Accent = normalizeKey(input.Preferences.Accent)
	input.Preferences.Pace = normalizeKey(input.Preferences.Pace)
	input.Preferences.Expressiveness = normalizeKey(input.Preferences.Expressiveness)
}

func SanitizeEvaluateRematchRequest(input *requests.EvaluateRematch) {
	input.CurrentCandidateID = strings.TrimSpace(input.CurrentCandidateID)
	input.SessionID = strings.TrimSpace(input.SessionID)
	input.Progress.SnapshotID = strings.TrimSpace(input.Progress.SnapshotID)
}
