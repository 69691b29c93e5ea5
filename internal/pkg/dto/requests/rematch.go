package requests

import "tawjih-service/internal/app/models"

// EvaluateRematch optionally ties the evaluation to a session so the transition plan can
// reference its profile.
type EvaluateRematch struct {
	CurrentCandidateID string                     `json:"current_candidate_id" validate:"required,max=64"`
	SessionID          string                     `json:"session_id" validate:"omitempty,uuid"`
	Profile            *models.TherapeuticProfile `json:"profile"`
	Progress           Progress                   `json:"progress" validate:"required"`
}

type Progress struct {
	SnapshotID           string   `json:"snapshot_id" validate:"omitempty,max=128"`
	WeeksElapsed         int      `json:"weeks_elapsed" validate:"gte=0,lte=104"`
	ImprovementRate      float64  `json:"improvement_rate" validate:"gte=-100,lte=100"`
	EngagementLevel      float64  `json:"engagement_level" validate:"gte=0,lte=10"`
	SatisfactionScore    float64  `json:"satisfaction_score" validate:"gte=0,lte=10"`
	StagnationIndicators []string `json:"stagnation_indicators" validate:"omitempty,max=20,dive,max=128"`
}

// ToSnapshot builds the evaluator input for the given candidate.
func (p Progress) ToSnapshot(candidateID, sessionID string) models.ProgressSnapshot {
	return models.ProgressSnapshot{
		SnapshotID:           p.SnapshotID,
		SessionID:            sessionID,
		CandidateID:          candidateID,
		WeeksElapsed:         p.WeeksElapsed,
		ImprovementRate:      p.ImprovementRate,
		EngagementLevel:      p.EngagementLevel,
		SatisfactionScore:    p.SatisfactionScore,
		StagnationIndicators: p.StagnationIndicators,
	}
}

// ProgressSnapshotMessage is the body published by the progress scheduler.
type ProgressSnapshotMessage struct {
	CandidateID string `json:"candidate_id" validate:"required,max=64"`
	SessionID   string `json:"session_id" validate:"omitempty,uuid"`
	Progress
}

func (m ProgressSnapshotMessage) ToSnapshot() models.ProgressSnapshot {
	return m.Progress.ToSnapshot(m.CandidateID, m.SessionID)
}
