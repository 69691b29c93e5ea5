package models

import "time"

// Matching dimension weights. They sum to 1.0.
const (
	WeightDiagnostic  = 0.30
	WeightCultural    = 0.25
	WeightPersonality = 0.20
	WeightApproach    = 0.15
	WeightVoice       = 0.10
)

type DimensionScores struct {
	Diagnostic  int `json:"diagnostic_compatibility" bson:"diagnostic_compatibility"`
	Cultural    int `json:"cultural_fit" bson:"cultural_fit"`
	Personality int `json:"personality_alignment" bson:"personality_alignment"`
	Approach    int `json:"approach_preference" bson:"approach_preference"`
	Voice       int `json:"voice_preference" bson:"voice_preference"`
}

type MatchScore struct {
	CandidateID            string              `json:"candidate_id" bson:"candidate_id"`
	DisplayName            string              `json:"display_name" bson:"display_name"`
	Rank                   int                 `json:"rank" bson:"rank"`
	OverallScore           int                 `json:"overall_score" bson:"overall_score"`
	Dimensions             DimensionScores     `json:"dimensions" bson:"dimensions"`
	PredictedEngagement    int                 `json:"predicted_engagement" bson:"predicted_engagement"`
	PredictedCompletion    int                 `json:"predicted_completion" bson:"predicted_completion"`
	EstimatedDurationWeeks int                 `json:"estimated_duration_weeks" bson:"estimated_duration_weeks"`
	ConfidenceLevel        int                 `json:"confidence_level" bson:"confidence_level"`
	Reasons                []string            `json:"reasons" bson:"reasons"`
	Concerns               []string            `json:"concerns" bson:"concerns"`
	Voice                  *VoiceCompatibility `json:"voice_analysis,omitempty" bson:"voice_analysis,omitempty"`
	CandidateOrder         int                 `json:"-" bson:"candidate_order"`
}

type MatchingRecommendation struct {
	ID           string       `json:"id" bson:"_id"`
	ProfileID    string       `json:"profile_id" bson:"profile_id"`
	SessionID    string       `json:"session_id,omitempty" bson:"session_id,omitempty"`
	Recommended  MatchScore   `json:"recommended" bson:"recommended"`
	Alternatives []MatchScore `json:"alternatives" bson:"alternatives"`
	Ranking      []MatchScore `json:"ranking" bson:"ranking"`
	Explanation  string       `json:"explanation" bson:"explanation"`
	GeneratedAt  time.Time    `json:"generated_at" bson:"generated_at"`
}

type MatchOutcome string

const (
	MatchOutcomeMatch      MatchOutcome = "match"
	MatchOutcomeAcceptable MatchOutcome = "acceptable"
	MatchOutcomeMismatch   MatchOutcome = "mismatch"
)

type VoiceDimension string

const (
	VoiceDimensionGender         VoiceDimension = "gender"
	VoiceDimensionAccent         VoiceDimension = "accent"
	VoiceDimensionPace           VoiceDimension = "pace"
	VoiceDimensionExpressiveness VoiceDimension = "expressiveness"
)

type VoiceDimensionResult struct {
	Dimension      VoiceDimension `json:"dimension" bson:"dimension"`
	Preference     string         `json:"preference,omitempty" bson:"preference,omitempty"`
	CandidateValue string         `json:"candidate_value" bson:"candidate_value"`
	Outcome        MatchOutcome   `json:"outcome" bson:"outcome"`
	Points         int            `json:"points" bson:"points"`
}

type VoiceCompatibility struct {
	CandidateID           string                 `json:"candidate_id" bson:"candidate_id"`
	Score                 int                    `json:"score" bson:"score"`
	Dimensions            []VoiceDimensionResult `json:"dimensions" bson:"dimensions"`
	Reasoning             []string               `json:"reasoning" bson:"reasoning"`
	AdaptationSuggestions []string               `json:"adaptation_suggestions" bson:"adaptation_suggestions"`
}

type QuickMatchStrategy string

const (
	QuickMatchStrategyCulture  QuickMatchStrategy = "culture"
	QuickMatchStrategyCategory QuickMatchStrategy = "category"
	QuickMatchStrategyDefault  QuickMatchStrategy = "default"
)

type QuickMatchResult struct {
	Candidate  CandidateProfile   `json:"candidate"`
	Confidence int                `json:"confidence"`
	Strategy   QuickMatchStrategy `json:"strategy"`
	Reasoning  string             `json:"reasoning"`
}
