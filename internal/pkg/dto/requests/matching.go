package requests

import "tawjih-service/internal/app/models"

// MatchExpert takes either a full profile or the session whose stored profile should be used.
type MatchExpert struct {
	SessionID string                     `json:"session_id" validate:"required_without=Profile,omitempty,uuid"`
	Profile   *models.TherapeuticProfile `json:"profile" validate:"required_without=SessionID"`
}

type QuickMatch struct {
	Category        string `json:"category" validate:"required,max=64"`
	CulturalContext string `json:"cultural_context" validate:"omitempty,max=64"`
	Language        string `json:"language" validate:"required,language_code"`
}

type VoiceCompatibility struct {
	CandidateID string                  `json:"candidate_id" validate:"required,max=64"`
	Preferences models.VoicePreferences `json:"preferences"`
}
