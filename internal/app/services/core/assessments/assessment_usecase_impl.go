package assessments

import (
	"context"
	"fmt"
	"tawjih-service/internal/app/config"
	"tawjih-service/internal/app/contracts"
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/app/services/core/profiles"
	"tawjih-service/internal/pkg/constvars"
	"tawjih-service/internal/pkg/dto/requests"
	"tawjih-service/internal/pkg/dto/responses"
	"tawjih-service/internal/pkg/exceptions"
	"tawjih-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type assessmentUsecase struct {
	TemplateRepository contracts.TemplateRepository
	SessionRepository  contracts.SessionRepository
	ProfileRepository  contracts.ProfileRepository
	ScoringEngine      contracts.ScoringEngine
	ProfileGenerator   contracts.ProfileGenerator
	MatchingEngine     contracts.MatchingEngine
	CandidateRegistry  contracts.CandidateRegistry
	Locker             contracts.LockerService
	Config             config.Assessment
	Log                *zap.Logger
}

// NewAssessmentUsecase builds the session engine. locker may be nil when a single instance
// serves all writes, the version check on update still rejects lost races.
func NewAssessmentUsecase(
	templateRepository contracts.TemplateRepository,
	sessionRepository contracts.SessionRepository,
	profileRepository contracts.ProfileRepository,
	scoringEngine contracts.ScoringEngine,
	profileGenerator contracts.ProfileGenerator,
	matchingEngine contracts.MatchingEngine,
	candidateRegistry contracts.CandidateRegistry,
	locker contracts.LockerService,
	cfg config.Assessment,
	logger *zap.Logger,
) contracts.AssessmentUsecase {
	return &assessmentUsecase{
		TemplateRepository: templateRepository,
		SessionRepository:  sessionRepository,
		ProfileRepository:  profileRepository,
		ScoringEngine:      scoringEngine,
		ProfileGenerator:   profileGenerator,
		MatchingEngine:     matchingEngine,
		CandidateRegistry:  candidateRegistry,
		Locker:             locker,
		Config:             cfg,
		Log:                logger,
	}
}

func (uc *assessmentUsecase) StartAssessment(ctx context.Context, request *requests.StartAssessment) (*responses.StartAssessment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("assessmentUsecase.StartAssessment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, request.UserID),
		zap.String(constvars.LoggingCategoryKey, request.Category),
		zap.String(constvars.LoggingLanguageKey, request.Language),
	)

	assessmentType := models.AssessmentTypeInitial
	if request.AssessmentType != "" {
		assessmentType = models.AssessmentType(request.AssessmentType)
	}

	storeCtx, cancel := uc.storeContext(ctx)
	template, err := uc.TemplateRepository.FindActiveTemplate(storeCtx, assessmentType, request.Category, request.Language)
	cancel()
	if err != nil {
		uc.Log.Error("assessmentUsecase.StartAssessment error finding active template",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	batch := NextBatch(template, map[string]models.AssessmentResponse{}, map[string]bool{}, uc.batchSize())
	if len(batch) == 0 {
		err := exceptions.ErrInvalidTemplate(nil, template.ID, "no unconditional question to start with")
		uc.Log.Error("assessmentUsecase.StartAssessment error building first batch",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTemplateIDKey, template.ID),
			zap.Error(err),
		)
		return nil, err
	}

	now := time.Now()
	session := &models.AssessmentSession{
		ID:                 utils.GenerateID(),
		UserID:             request.UserID,
		TemplateID:         template.ID,
		Category:           template.Category,
		CulturalContext:    request.CulturalContext,
		Language:           template.Language,
		Status:             models.SessionStatusInProgress,
		Responses:          []models.AssessmentResponse{},
		PendingQuestionIDs: questionIDs(batch),
		EstimatedTotal:     EstimatedTotal(template, uc.adaptiveFraction()),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	storeCtx, cancel = uc.storeContext(ctx)
	err = uc.SessionRepository.Create(storeCtx, session)
	cancel()
	if err != nil {
		uc.Log.Error("assessmentUsecase.StartAssessment error creating session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("assessmentUsecase.StartAssessment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, session.ID),
		zap.String(constvars.LoggingTemplateIDKey, template.ID),
	)
	return &responses.StartAssessment{
		SessionID:          session.ID,
		TemplateID:         template.ID,
		TemplateVersion:    template.Version,
		Status:             session.Status,
		Questions:          questionViews(batch),
		ProgressPercentage: session.ProgressPercentage,
		EstimatedTotal:     session.EstimatedTotal,
	}, nil
}

func (uc *assessmentUsecase) SubmitResponses(ctx context.Context, request *requests.SubmitResponses) (*responses.SubmitResponses, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("assessmentUsecase.SubmitResponses called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, request.SessionID),
		zap.Int(constvars.LoggingResponseLengthKey, len(request.Responses)),
	)

	unlock, err := uc.lockSession(ctx, request.SessionID)
	if err != nil {
		uc.Log.Error("assessmentUsecase.SubmitResponses error locking session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, request.SessionID),
			zap.Error(err),
		)
		return nil, err
	}
	defer unlock()

	session, template, err := uc.loadSession(ctx, request.SessionID)
	if err != nil {
		uc.Log.Error("assessmentUsecase.SubmitResponses error loading session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, request.SessionID),
			zap.Error(err),
		)
		return nil, err
	}
	if session.IsCompleted() {
		err := exceptions.ErrSessionAlreadyCompleted(nil, session.ID)
		uc.Log.Error("assessmentUsecase.SubmitResponses error session already completed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, session.ID),
			zap.Error(err),
		)
		return nil, err
	}

	now := time.Now()
	outcome := evaluateBatch(template, session, request.Responses, now)
	if request.Strict && len(outcome.rejections) > 0 {
		err := exceptions.ErrResponsesRejected(nil, len(outcome.rejections)).WithDetails(outcome.rejections)
		uc.Log.Error("assessmentUsecase.SubmitResponses error strict batch rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, session.ID),
			zap.Int(constvars.LoggingRejectedCountKey, len(outcome.rejections)),
			zap.Error(err),
		)
		return nil, err
	}

	expectedVersion := session.Version
	session.Responses = append(session.Responses, outcome.accepted...)
	session.SkippedQuestionIDs = append(session.SkippedQuestionIDs, outcome.skipped...)
	session.UpdatedAt = now

	next := NextBatch(template, outcome.answers, outcome.skippedSet, uc.batchSize())
	session.PendingQuestionIDs = questionIDs(next)
	session.ProgressPercentage = Progress(len(session.Responses), session.EstimatedTotal)

	result := &responses.SubmitResponses{
		SessionID: session.ID,
		Accepted:  outcome.acceptedIDs(),
		Rejected:  outcome.rejections,
		Insights:  responses.Insights{
			CrisisIndicators: profiles.DetectCrisisIndicators(template.ProfileRules, outcome.answers),
		},
	}
	if result.Rejected == nil {
		result.Rejected = []models.ResponseRejection{}
	}

	var profile *models.TherapeuticProfile
	var scores *models.ScoreResult
	if len(next) == 0 || session.ProgressPercentage >= 100 {
		scores, profile, err = uc.buildProfile(ctx, template, session)
		if err != nil {
			uc.Log.Error("assessmentUsecase.SubmitResponses error building profile",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingSessionIDKey, session.ID),
				zap.Error(err),
			)
			return nil, err
		}
		session.Status = models.SessionStatusCompleted
		session.PendingQuestionIDs = []string{}
		session.ProgressPercentage = 100
		session.ProfileID = profile.ID
		session.CompletedAt = &now
	}

	storeCtx, cancel := uc.storeContext(ctx)
	err = uc.SessionRepository.Update(storeCtx, session, expectedVersion)
	cancel()
	if err != nil {
		uc.Log.Error("assessmentUsecase.SubmitResponses error updating session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, session.ID),
			zap.Error(err),
		)
		return nil, err
	}

	if profile != nil {
		profile = uc.storeProfile(ctx, profile)
		total := scores.TotalScore
		result.Insights.Severity = scores.Severity.Level
		result.Insights.SeverityLabel = scores.Severity.Label
		result.Insights.TotalScore = &total
		result.Insights.PrimaryDiagnosis = profile.PrimaryDiagnosis
		result.Insights.ProfileID = profile.ID
		result.Insights.RecommendedCandidateID = profile.RecommendedCandidateID
	}

	result.Status = session.Status
	result.Complete = session.IsCompleted()
	result.ProgressPercentage = session.ProgressPercentage
	result.NextQuestions = questionViews(next)
	if result.Complete {
		result.NextQuestions = []responses.Question{}
	}

	uc.Log.Info("assessmentUsecase.SubmitResponses succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, session.ID),
		zap.Int(constvars.LoggingAcceptedCountKey, len(outcome.accepted)),
		zap.Int(constvars.LoggingRejectedCountKey, len(outcome.rejections)),
		zap.Int(constvars.LoggingProgressKey, session.ProgressPercentage),
	)
	return result, nil
}

func (uc *assessmentUsecase) FindSession(ctx context.Context, sessionID string) (*responses.AssessmentSession, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("assessmentUsecase.FindSession called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
	)

	session, template, err := uc.loadSession(ctx, sessionID)
	if err != nil {
		uc.Log.Error("assessmentUsecase.FindSession error loading session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	pending := make([]responses.Question, 0, len(session.PendingQuestionIDs))
	for _, questionID := range session.PendingQuestionIDs {
		if question, ok := template.QuestionByID(questionID); ok {
			pending = append(pending, responses.NewQuestion(question))
		}
	}

	return &responses.AssessmentSession{
		SessionID:          session.ID,
		UserID:             session.UserID,
		TemplateID:         session.TemplateID,
		Category:           session.Category,
		Language:           session.Language,
		CulturalContext:    session.CulturalContext,
		Status:             session.Status,
		ProgressPercentage: session.ProgressPercentage,
		EstimatedTotal:     session.EstimatedTotal,
		AnsweredCount:      len(session.Responses),
		PendingQuestions:   pending,
		ProfileID:          session.ProfileID,
		CreatedAt:          session.CreatedAt,
		UpdatedAt:          session.UpdatedAt,
		CompletedAt:        session.CompletedAt,
	}, nil
}

// FindTherapeuticProfile returns the stored profile of a completed session. When the
// completion was recorded but the profile write failed, it is generated again from the
// stored responses under the id the session already references.
func (uc *assessmentUsecase) FindTherapeuticProfile(ctx context.Context, sessionID string) (*models.TherapeuticProfile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("assessmentUsecase.FindTherapeuticProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
	)

	session, template, err := uc.loadCompletedSession(ctx, sessionID)
	if err != nil {
		uc.Log.Error("assessmentUsecase.FindTherapeuticProfile error loading session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, sessionID),
			zap.Error(err),
		)
		return nil, err
	}

	storeCtx, cancel := uc.storeContext(ctx)
	profile, err := uc.ProfileRepository.FindBySessionID(storeCtx, sessionID)
	cancel()
	if err == nil {
		return profile, nil
	}
	if exceptions.KindOf(err) != exceptions.KindNotFound {
		uc.Log.Error("assessmentUsecase.FindTherapeuticProfile error finding profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, sessionID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Warn("assessmentUsecase.FindTherapeuticProfile regenerating missing profile",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
	)
	_, profile, err = uc.buildProfile(ctx, template, session)
	if err != nil {
		uc.Log.Error("assessmentUsecase.FindTherapeuticProfile error regenerating profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, sessionID),
			zap.Error(err),
		)
		return nil, err
	}
	if session.ProfileID != "" {
		profile.ID = session.ProfileID
	}
	if session.CompletedAt != nil {
		profile.GeneratedAt = *session.CompletedAt
	}
	profile = uc.storeProfile(ctx, profile)

	uc.Log.Info("assessmentUsecase.FindTherapeuticProfile succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProfileIDKey, profile.ID),
	)
	return profile, nil
}

func (uc *assessmentUsecase) FindScores(ctx context.Context, sessionID string) (*models.ScoreResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("assessmentUsecase.FindScores called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
	)

	session, template, err := uc.loadCompletedSession(ctx, sessionID)
	if err != nil {
		uc.Log.Error("assessmentUsecase.FindScores error loading session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, sessionID),
			zap.Error(err),
		)
		return nil, err
	}

	scores, err := uc.ScoringEngine.Compute(ctx, template, session)
	if err != nil {
		uc.Log.Error("assessmentUsecase.FindScores error computing scores",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, sessionID),
			zap.Error(err),
		)
		return nil, err
	}
	return scores, nil
}

// buildProfile scores the session, derives the profile and attaches the top ranked candidate.
// Any failure aborts the completion, nothing is guessed.
func (uc *assessmentUsecase) buildProfile(ctx context.Context, template *models.AssessmentTemplate, session *models.AssessmentSession) (*models.ScoreResult, *models.TherapeuticProfile, error) {
	scores, err := uc.ScoringEngine.Compute(ctx, template, session)
	if err != nil {
		return nil, nil, err
	}

	profile, err := uc.ProfileGenerator.Generate(ctx, template, session, scores)
	if err != nil {
		return nil, nil, err
	}

	recommendation, err := uc.MatchingEngine.Match(ctx, profile, uc.CandidateRegistry.List())
	if err != nil {
		return nil, nil, err
	}
	profile.RecommendedCandidateID = recommendation.Recommended.CandidateID
	return scores, profile, nil
}

// storeProfile writes the profile once. A profile already stored for the session wins over
// the one just built. Other write failures are logged only, since the completed session is
// enough to rebuild it on read.
func (uc *assessmentUsecase) storeProfile(ctx context.Context, profile *models.TherapeuticProfile) *models.TherapeuticProfile {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	storeCtx, cancel := uc.storeContext(ctx)
	defer cancel()

	err := uc.ProfileRepository.Insert(storeCtx, profile)
	if err == nil {
		return profile
	}
	if exceptions.HasCode(err, constvars.ErrCodeProfileAlreadyExists) {
		stored, findErr := uc.ProfileRepository.FindBySessionID(storeCtx, profile.SessionID)
		if findErr == nil {
			return stored
		}
		err = findErr
	}
	uc.Log.Warn("assessmentUsecase error storing profile",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, profile.SessionID),
		zap.String(constvars.LoggingProfileIDKey, profile.ID),
		zap.Error(err),
	)
	return profile
}

func (uc *assessmentUsecase) loadSession(ctx context.Context, sessionID string) (*models.AssessmentSession, *models.AssessmentTemplate, error) {
	storeCtx, cancel := uc.storeContext(ctx)
	defer cancel()

	session, err := uc.SessionRepository.FindByID(storeCtx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	template, err := uc.TemplateRepository.FindByID(storeCtx, session.TemplateID)
	if err != nil {
		return nil, nil, err
	}
	return session, template, nil
}

func (uc *assessmentUsecase) loadCompletedSession(ctx context.Context, sessionID string) (*models.AssessmentSession, *models.AssessmentTemplate, error) {
	session, template, err := uc.loadSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if !session.IsCompleted() {
		return nil, nil, exceptions.ErrSessionNotCompleted(nil, sessionID)
	}
	return session, template, nil
}

func (uc *assessmentUsecase) lockSession(ctx context.Context, sessionID string) (func(), error) {
	if uc.Locker == nil {
		return func() {}, nil
	}
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	key := fmt.Sprintf(constvars.RedisKeySessionLockFormat, sessionID)
	acquired, lockValue, err := uc.Locker.TryLock(ctx, key, uc.lockTTL())
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrSessionLockNotAcquired(nil, sessionID)
	}

	return func() {
		unlockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.lockTTL())
		defer cancel()
		if err := uc.Locker.Unlock(unlockCtx, key, lockValue); err != nil {
			uc.Log.Warn("assessmentUsecase error releasing session lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
		}
	}, nil
}

func (uc *assessmentUsecase) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.Config.RepositoryTimeoutInSeconds <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, time.Duration(uc.Config.RepositoryTimeoutInSeconds)*time.Second)
}

func (uc *assessmentUsecase) batchSize() int {
	if uc.Config.BatchSize <= 0 {
		return defaultBatchSize
	}
	return uc.Config.BatchSize
}

func (uc *assessmentUsecase) adaptiveFraction() float64 {
	if uc.Config.AdaptiveFractionPercent <= 0 {
		return defaultAdaptiveFraction
	}
	return float64(uc.Config.AdaptiveFractionPercent) / 100
}

func (uc *assessmentUsecase) lockTTL() time.Duration {
	if uc.Config.SessionLockTTLInSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(uc.Config.SessionLockTTLInSeconds) * time.Second
}

func questionViews(questions []models.AssessmentQuestion) []responses.Question {
	views := make([]responses.Question, 0, len(questions))
	for _, question := range questions {
		views = append(views, responses.NewQuestion(question))
	}
	return views
}
