package matching

import (
	"context"
	"tawjih-service/internal/app/contracts"
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/pkg/constvars"
	"tawjih-service/internal/pkg/dto/requests"
	"tawjih-service/internal/pkg/exceptions"
	"tawjih-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type matchingUsecase struct {
	Engine   contracts.MatchingEngine
	Registry contracts.CandidateRegistry
	Profiles contracts.ProfileLookup
	Audits   contracts.MatchingAuditRepository
	Log      *zap.Logger
}

// NewMatchingUsecase builds the matching usecase. audits may be nil, in which case
// recommendations are not recorded.
func NewMatchingUsecase(
	engine contracts.MatchingEngine,
	registry contracts.CandidateRegistry,
	profiles contracts.ProfileLookup,
	audits contracts.MatchingAuditRepository,
	logger *zap.Logger,
) contracts.MatchingUsecase {
	return &matchingUsecase{
		Engine:   engine,
		Registry: registry,
		Profiles: profiles,
		Audits:   audits,
		Log:      logger,
	}
}

func (uc *matchingUsecase) MatchExpert(ctx context.Context, request *requests.MatchExpert) (*models.MatchingRecommendation, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("matchingUsecase.MatchExpert called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, request.SessionID),
	)

	profile := request.Profile
	if profile == nil {
		stored, err := uc.Profiles.FindTherapeuticProfile(ctx, request.SessionID)
		if err != nil {
			uc.Log.Error("matchingUsecase.MatchExpert error finding therapeutic profile",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingSessionIDKey, request.SessionID),
				zap.Error(err),
			)
			return nil, err
		}
		profile = stored
	} else if profile.ID == "" {
		profile.ID = utils.GenerateID()
	}

	recommendation, err := uc.Engine.Match(ctx, profile, uc.Registry.List())
	if err != nil {
		uc.Log.Error("matchingUsecase.MatchExpert error matching candidates",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingProfileIDKey, profile.ID),
			zap.Error(err),
		)
		return nil, err
	}

	if uc.Audits != nil {
		if err := uc.Audits.Insert(ctx, recommendation); err != nil {
			uc.Log.Warn("matchingUsecase.MatchExpert error recording audit",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingProfileIDKey, profile.ID),
				zap.Error(err),
			)
		}
	}

	uc.Log.Info("matchingUsecase.MatchExpert succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProfileIDKey, profile.ID),
		zap.String(constvars.LoggingCandidateIDKey, recommendation.Recommended.CandidateID),
	)
	return recommendation, nil
}

func (uc *matchingUsecase) QuickMatch(ctx context.Context, request *requests.QuickMatch) (*models.QuickMatchResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("matchingUsecase.QuickMatch called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCategoryKey, request.Category),
		zap.String(constvars.LoggingCulturalContextKey, request.CulturalContext),
		zap.String(constvars.LoggingLanguageKey, request.Language),
	)

	result, err := uc.Engine.QuickMatch(ctx, request.Category, request.CulturalContext, request.Language)
	if err != nil {
		uc.Log.Error("matchingUsecase.QuickMatch error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return result, nil
}

func (uc *matchingUsecase) AnalyzeVoice(ctx context.Context, request *requests.VoiceCompatibility) (*models.VoiceCompatibility, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	candidate, ok := uc.Registry.FindByID(request.CandidateID)
	if !ok {
		uc.Log.Error("matchingUsecase.AnalyzeVoice error unknown candidate",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCandidateIDKey, request.CandidateID),
		)
		return nil, exceptions.ErrCandidateNotFound(nil, request.CandidateID)
	}

	result := uc.Engine.AnalyzeVoiceCompatibility(request.Preferences, candidate)
	uc.Log.Info("matchingUsecase.AnalyzeVoice succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCandidateIDKey, candidate.ID),
	)
	return &result, nil
}
