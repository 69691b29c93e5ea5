package rematch

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

type rematchUsecase struct {
	Evaluator     contracts.RematchEvaluator
	Profiles      contracts.ProfileLookup
	Decisions     contracts.RematchDecisionRepository
	Publisher     contracts.MessagePublisher
	DecisionQueue string
	Log           *zap.Logger
}

// NewRematchUsecase wires the evaluator to persistence. publisher may be nil when messaging is disabled.
func NewRematchUsecase(
	evaluator contracts.RematchEvaluator,
	profiles contracts.ProfileLookup,
	decisions contracts.RematchDecisionRepository,
	publisher contracts.MessagePublisher,
	decisionQueue string,
	logger *zap.Logger,
) contracts.RematchUsecase {
	return &rematchUsecase{
		Evaluator:     evaluator,
		Profiles:      profiles,
		Decisions:     decisions,
		Publisher:     publisher,
		DecisionQueue: decisionQueue,
		Log:           logger,
	}
}

// EvaluateRematch answers synchronously. The decision is stored only when the caller names a snapshot.
func (uc *rematchUsecase) EvaluateRematch(ctx context.Context, request *requests.EvaluateRematch) (*models.RematchDecision, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("rematchUsecase.EvaluateRematch called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCandidateIDKey, request.CurrentCandidateID),
		zap.String(constvars.LoggingSessionIDKey, request.SessionID),
	)

	profile := request.Profile
	if profile == nil && request.SessionID != "" {
		stored, err := uc.Profiles.FindTherapeuticProfile(ctx, request.SessionID)
		if err != nil {
			uc.Log.Error("rematchUsecase.EvaluateRematch error finding therapeutic profile",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingSessionIDKey, request.SessionID),
				zap.Error(err),
			)
			return nil, err
		}
		profile = stored
	}

	snapshot := request.Progress.ToSnapshot(request.CurrentCandidateID, request.SessionID)
	decision, err := uc.Evaluator.Evaluate(ctx, request.CurrentCandidateID, profile, snapshot)
	if err != nil {
		uc.Log.Error("rematchUsecase.EvaluateRematch error evaluating",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if snapshot.SnapshotID != "" {
		decision.ID = utils.GenerateStableID(snapshot.SnapshotID)
		if err := uc.Decisions.Upsert(ctx, decision); err != nil {
			uc.Log.Error("rematchUsecase.EvaluateRematch error storing decision",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingSnapshotIDKey, snapshot.SnapshotID),
				zap.Error(err),
			)
			return nil, err
		}
	}

	uc.Log.Info("rematchUsecase.EvaluateRematch succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool(constvars.LoggingChangeKey, decision.ChangeRecommended),
	)
	return decision, nil
}

// ProcessSnapshot handles one scheduler delivery. Redelivery of the same snapshot overwrites the same
// record; a change recommendation may be published more than once and carries the snapshot id header.
func (uc *rematchUsecase) ProcessSnapshot(ctx context.Context, snapshot models.ProgressSnapshot) (*models.RematchDecision, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("rematchUsecase.ProcessSnapshot called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSnapshotIDKey, snapshot.SnapshotID),
		zap.String(constvars.LoggingCandidateIDKey, snapshot.CandidateID),
	)

	var profile *models.TherapeuticProfile
	if snapshot.SessionID != "" {
		stored, err := uc.Profiles.FindTherapeuticProfile(ctx, snapshot.SessionID)
		switch {
		case err == nil:
			profile = stored
		case exceptions.IsRetryable(err):
			uc.Log.Error("rematchUsecase.ProcessSnapshot error finding therapeutic profile",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingSessionIDKey, snapshot.SessionID),
				zap.Error(err),
			)
			return nil, err
		default:
			uc.Log.Warn("rematchUsecase.ProcessSnapshot evaluating without profile",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingSessionIDKey, snapshot.SessionID),
				zap.Error(err),
			)
		}
	}

	decision, err := uc.Evaluator.Evaluate(ctx, snapshot.CandidateID, profile, snapshot)
	if err != nil {
		uc.Log.Error("rematchUsecase.ProcessSnapshot error evaluating",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSnapshotIDKey, snapshot.SnapshotID),
			zap.Error(err),
		)
		return nil, err
	}
	decision.ID = utils.GenerateStableID(snapshot.SnapshotID)

	if err := uc.Decisions.Upsert(ctx, decision); err != nil {
		uc.Log.Error("rematchUsecase.ProcessSnapshot error storing decision",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSnapshotIDKey, snapshot.SnapshotID),
			zap.Error(err),
		)
		return nil, err
	}

	if decision.ChangeRecommended && uc.Publisher != nil {
		headers := map[string]interface{}{constvars.MessageHeaderSnapshotID: snapshot.SnapshotID}
		if err := uc.Publisher.Publish(ctx, uc.DecisionQueue, constvars.MessageTypeRematchDecision, headers, decision); err != nil {
			uc.Log.Error("rematchUsecase.ProcessSnapshot error publishing decision",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingSnapshotIDKey, snapshot.SnapshotID),
				zap.String(constvars.LoggingQueueKey, uc.DecisionQueue),
				zap.Error(err),
			)
			return nil, err
		}
	}

	uc.Log.Info("rematchUsecase.ProcessSnapshot succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSnapshotIDKey, snapshot.SnapshotID),
		zap.Bool(constvars.LoggingChangeKey, decision.ChangeRecommended),
	)
	return decision, nil
}

func (uc *rematchUsecase) FindDecision(ctx context.Context, snapshotID string) (*models.RematchDecision, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	decision, err := uc.Decisions.FindBySnapshotID(ctx, snapshotID)
	if err != nil {
		uc.Log.Error("rematchUsecase.FindDecision error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSnapshotIDKey, snapshotID),
			zap.Error(err),
		)
		return nil, err
	}
	return decision, nil
}
