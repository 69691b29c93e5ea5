package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Assessment messages
	StartAssessmentSuccessMessage       = "assessment started successfully"
	SubmitResponsesSuccessMessage       = "responses submitted successfully"
	GetSessionSuccessMessage            = "get assessment session successfully"
	GetTherapeuticProfileSuccessMessage = "get therapeutic profile successfully"
	GetScoresSuccessMessage             = "get assessment scores successfully"

	// Matching messages
	MatchExpertSuccessMessage        = "expert matched successfully"
	QuickMatchSuccessMessage         = "quick match computed successfully"
	VoiceCompatibilitySuccessMessage = "voice compatibility analyzed successfully"
	GetCandidatesSuccessMessage      = "get candidates successfully"

	// Rematch messages
	EvaluateRematchSuccessMessage    = "rematch evaluated successfully"
	GetRematchDecisionSuccessMessage = "get rematch decision successfully"
)
