package models

import "time"

type RematchTiming string

const (
	RematchTimingEndOfCycle  RematchTiming = "end_of_cycle"
	RematchTimingNextSession RematchTiming = "next_session"
	RematchTimingImmediate   RematchTiming = "immediate"
)

// ProgressSnapshot is the telemetry an external scheduler sends for one program.
// ImprovementRate is a percentage, EngagementLevel and SatisfactionScore are on a 0 to 10 scale.
type ProgressSnapshot struct {
	SnapshotID           string   `json:"snapshot_id" bson:"snapshot_id"`
	SessionID            string   `json:"session_id,omitempty" bson:"session_id,omitempty"`
	CandidateID          string   `json:"candidate_id" bson:"candidate_id"`
	WeeksElapsed         int      `json:"weeks_elapsed" bson:"weeks_elapsed"`
	ImprovementRate      float64  `json:"improvement_rate" bson:"improvement_rate"`
	EngagementLevel      float64  `json:"engagement_level" bson:"engagement_level"`
	SatisfactionScore    float64  `json:"satisfaction_score" bson:"satisfaction_score"`
	StagnationIndicators []string `json:"stagnation_indicators,omitempty" bson:"stagnation_indicators,omitempty"`
}

// RematchDecision is advisory. It never performs the reassignment itself.
type RematchDecision struct {
	ID                     string        `json:"id" bson:"_id"`
	SnapshotID             string        `json:"snapshot_id,omitempty" bson:"snapshot_id,omitempty"`
	SessionID              string        `json:"session_id,omitempty" bson:"session_id,omitempty"`
	CurrentCandidateID     string        `json:"current_candidate_id" bson:"current_candidate_id"`
	ChangeRecommended      bool          `json:"change_recommended" bson:"change_recommended"`
	Reasons                []string      `json:"reasons" bson:"reasons"`
	Timing                 RematchTiming `json:"timing_recommendation" bson:"timing_recommendation"`
	AlternativeCandidateID string        `json:"alternative_candidate_id,omitempty" bson:"alternative_candidate_id,omitempty"`
	TransitionStrategy     []string      `json:"transition_strategy,omitempty" bson:"transition_strategy,omitempty"`
	StagnationIndicators   []string      `json:"stagnation_indicators,omitempty" bson:"stagnation_indicators,omitempty"`
	EvaluatedAt            time.Time     `json:"evaluated_at" bson:"evaluated_at"`
}
