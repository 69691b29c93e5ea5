package contracts

import (
	"context"
	"tawjih-service/internal/app/models"
)

// CandidateRegistry is a read-only view of the ordered roster.
type CandidateRegistry interface {
	List() []models.CandidateProfile
	FindByID(candidateID string) (models.CandidateProfile, bool)
	QuickMatchTable() models.QuickMatchTable
	Rules() models.MatchingRules
}

type CandidateRosterSource interface {
	LoadRoster(ctx context.Context) (*models.CandidateRoster, error)
}

type CandidateUsecase interface {
	ListCandidates(ctx context.Context) ([]models.CandidateProfile, error)
}
