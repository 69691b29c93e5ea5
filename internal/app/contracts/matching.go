package contracts

import (
	"context"
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/pkg/dto/requests"
)

type MatchingEngine interface {
	Match(ctx context.Context, profile *models.TherapeuticProfile, candidates []models.CandidateProfile) (*models.MatchingRecommendation, error)
	QuickMatch(ctx context.Context, category, culturalContext, language string) (*models.QuickMatchResult, error)
	AnalyzeVoiceCompatibility(preferences models.VoicePreferences, candidate models.CandidateProfile) models.VoiceCompatibility
}

type MatchingUsecase interface {
	MatchExpert(ctx context.Context, request *requests.MatchExpert) (*models.MatchingRecommendation, error)
	QuickMatch(ctx context.Context, request *requests.QuickMatch) (*models.QuickMatchResult, error)
	AnalyzeVoice(ctx context.Context, request *requests.VoiceCompatibility) (*models.VoiceCompatibility, error)
}

type MatchingAuditRepository interface {
	Insert(ctx context.Context, recommendation *models.MatchingRecommendation) error
}
