package models

import "time"

type TherapeuticProfile struct {
	ID                       string              `json:"id" bson:"_id"`
	SessionID                string              `json:"session_id" bson:"session_id"`
	UserID                   string              `json:"user_id" bson:"user_id"`
	TemplateID               string              `json:"template_id" bson:"template_id"`
	Category                 string              `json:"category" bson:"category"`
	CulturalContext          string              `json:"cultural_context,omitempty" bson:"cultural_context,omitempty"`
	Language                 string              `json:"language" bson:"language"`
	PrimaryDiagnosis         string              `json:"primary_diagnosis" bson:"primary_diagnosis"`
	SecondaryDiagnoses       []string            `json:"secondary_diagnoses" bson:"secondary_diagnoses"`
	Severity                 SeverityLevel       `json:"severity" bson:"severity"`
	SeverityLabel            string              `json:"severity_label" bson:"severity_label"`
	TotalScore               float64             `json:"total_score" bson:"total_score"`
	SubscaleScores           map[string]float64  `json:"subscale_scores" bson:"subscale_scores"`
	PersonalityTraits        map[string]float64  `json:"personality_traits" bson:"personality_traits"`
	RiskFactors              []string            `json:"risk_factors" bson:"risk_factors"`
	ProtectiveFactors        []string            `json:"protective_factors" bson:"protective_factors"`
	CrisisIndicators         []string            `json:"crisis_indicators" bson:"crisis_indicators"`
	MotivationLevel          float64             `json:"motivation_level" bson:"motivation_level"`
	ReadinessLevel           float64             `json:"readiness_level" bson:"readiness_level"`
	Preferences              UserPreferences     `json:"preferences" bson:"preferences"`
	RecommendedCandidateID   string              `json:"recommended_candidate_id" bson:"recommended_candidate_id"`
	RecommendedApproach      string              `json:"recommended_approach" bson:"recommended_approach"`
	RecommendedDurationWeeks int                 `json:"recommended_duration_weeks" bson:"recommended_duration_weeks"`
	TreatmentPriorities      []string            `json:"treatment_priorities" bson:"treatment_priorities"`
	Contraindications        []string            `json:"contraindications" bson:"contraindications"`
	Prognosis                PrognosisIndicators `json:"prognosis" bson:"prognosis"`
	GeneratedAt              time.Time           `json:"generated_at" bson:"generated_at"`
}

type PrognosisIndicators struct {
	EstimatedImprovementRate int    `json:"estimated_improvement_rate" bson:"estimated_improvement_rate"`
	RiskLevel                string `json:"risk_level" bson:"risk_level"`
}

const (
	RiskLevelLow      = "low"
	RiskLevelElevated = "elevated"
	RiskLevelHigh     = "high"

	ContraindicationParallelClinicalFollowUp = "requires parallel clinical follow-up"
)

type UserPreferences struct {
	PreferredApproach string           `json:"preferred_approach,omitempty" bson:"preferred_approach,omitempty"`
	Voice             VoicePreferences `json:"voice" bson:"voice"`
}

// VoicePreferences leaves a dimension empty when the user expressed no preference.
type VoicePreferences struct {
	Gender         string `json:"gender,omitempty" bson:"gender,omitempty"`
	Accent         string `json:"accent,omitempty" bson:"accent,omitempty"`
	Pace           string `json:"pace,omitempty" bson:"pace,omitempty"`
	Expressiveness string `json:"expressiveness,omitempty" bson:"expressiveness,omitempty"`
}

func (v VoicePreferences) IsSet() bool {
	return v.Gender != "" || v.Accent != "" || v.Pace != "" || v.Expressiveness != ""
}
