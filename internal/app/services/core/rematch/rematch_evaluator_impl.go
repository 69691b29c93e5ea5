package rematch

import (
	"context"
	"fmt"
	"tawjih-service/internal/app/contracts"
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/app/services/core/templates"
	"tawjih-service/internal/pkg/constvars"
	"tawjih-service/internal/pkg/exceptions"
	"tawjih-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

const (
	minImprovementRate       = 15
	minWeeksForImprovement   = 4
	minEngagementLevel       = 4
	minWeeksForEngagement    = 2
	minSatisfactionScore     = 5
	minWeeksForSatisfaction  = 3
	immediateEngagementLevel = 3
)

type rematchEvaluator struct {
	Registry contracts.CandidateRegistry
	Log      *zap.Logger
}

func NewRematchEvaluator(registry contracts.CandidateRegistry, logger *zap.Logger) contracts.RematchEvaluator {
	return &rematchEvaluator{
		Registry: registry,
		Log:      logger,
	}
}

// Evaluate is advisory. It never reassigns and never proposes currentCandidateID as the alternative.
// profile may be nil; it only refines the alternative and the transition steps.
func (e *rematchEvaluator) Evaluate(ctx context.Context, currentCandidateID string, profile *models.TherapeuticProfile, progress models.ProgressSnapshot) (*models.RematchDecision, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	e.Log.Info("rematchEvaluator.Evaluate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCandidateIDKey, currentCandidateID),
		zap.String(constvars.LoggingSnapshotIDKey, progress.SnapshotID),
	)

	candidates := e.Registry.List()
	if len(candidates) == 0 {
		return nil, exceptions.ErrNoCandidatesAvailable(nil)
	}
	current, ok := e.Registry.FindByID(currentCandidateID)
	if !ok {
		return nil, exceptions.ErrCandidateNotFound(nil, currentCandidateID)
	}

	reasons := []string{}
	lowEngagement := false
	if progress.ImprovementRate < minImprovementRate && progress.WeeksElapsed >= minWeeksForImprovement {
		reasons = append(reasons, fmt.Sprintf("amélioration insuffisante : %.0f %% après %d semaines", progress.ImprovementRate, progress.WeeksElapsed))
	}
	if progress.EngagementLevel < minEngagementLevel && progress.WeeksElapsed >= minWeeksForEngagement {
		lowEngagement = true
		reasons = append(reasons, fmt.Sprintf("engagement faible : %.1f/10", progress.EngagementLevel))
	}
	if progress.SatisfactionScore < minSatisfactionScore && progress.WeeksElapsed >= minWeeksForSatisfaction {
		reasons = append(reasons, fmt.Sprintf("satisfaction faible : %.1f/10", progress.SatisfactionScore))
	}

	// next_session is applied last so the low-engagement rule wins over immediate.
	timing := models.RematchTimingEndOfCycle
	if progress.EngagementLevel < immediateEngagementLevel {
		timing = models.RematchTimingImmediate
	}
	if lowEngagement {
		timing = models.RematchTimingNextSession
	}

	decision := &models.RematchDecision{
		ID:                   utils.GenerateID(),
		SnapshotID:           progress.SnapshotID,
		SessionID:            progress.SessionID,
		CurrentCandidateID:   current.ID,
		ChangeRecommended:    len(reasons) > 0,
		Reasons:              reasons,
		Timing:               timing,
		StagnationIndicators: progress.StagnationIndicators,
		EvaluatedAt:          time.Now(),
	}

	if decision.ChangeRecommended {
		alternative, found := nextCandidate(candidates, current, profile)
		if !found {
			e.Log.Error("rematchEvaluator.Evaluate error no alternative candidate",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingCandidateIDKey, current.ID),
			)
			return nil, exceptions.ErrNoAlternativeCandidate(nil, current.ID)
		}
		decision.AlternativeCandidateID = alternative.ID
		decision.TransitionStrategy = transitionStrategy(current, alternative, timing, profile)
	}

	e.Log.Info("rematchEvaluator.Evaluate succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCandidateIDKey, current.ID),
		zap.Bool(constvars.LoggingChangeKey, decision.ChangeRecommended),
		zap.String(constvars.LoggingTimingKey, string(decision.Timing)),
	)
	return decision, nil
}

// nextCandidate walks the roster in order starting after current and wraps around. When the
// profile names a category, the first candidate covering it wins; otherwise the immediate successor.
func nextCandidate(candidates []models.CandidateProfile, current models.CandidateProfile, profile *models.TherapeuticProfile) (models.CandidateProfile, bool) {
	n := len(candidates)
	if n < 2 {
		return models.CandidateProfile{}, false
	}

	start := 0
	for i, candidate := range candidates {
		if candidate.ID == current.ID {
			start = i
			break
		}
	}

	var successor *models.CandidateProfile
	for offset := 1; offset < n; offset++ {
		candidate := candidates[(start+offset)%n]
		if candidate.ID == current.ID {
			continue
		}
		if successor == nil {
			successor = &candidate
		}
		if profile == nil || profile.Category == "" {
			break
		}
		if coversCategory(candidate, profile.Category) {
			return candidate, true
		}
	}
	if successor == nil {
		return models.CandidateProfile{}, false
	}
	return *successor, true
}

func coversCategory(candidate models.CandidateProfile, category string) bool {
	for _, candidateCategory := range candidate.Categories {
		if templates.SameKey(candidateCategory, category) {
			return true
		}
	}
	return false
}

func transitionStrategy(current, alternative models.CandidateProfile, timing models.RematchTiming, profile *models.TherapeuticProfile) []string {
	var steps []string
	switch timing {
	case models.RematchTimingImmediate:
		steps = append(steps, "contacter l'utilisateur sous 48 heures pour proposer le changement")
	case models.RematchTimingNextSession:
		steps = append(steps, "aborder le changement lors de la prochaine séance")
	default:
		steps = append(steps, "préparer le changement pour la fin du cycle en cours")
	}
	steps = append(steps,
		fmt.Sprintf("séance de clôture avec %s pour faire le bilan du travail réalisé", current.DisplayName),
		fmt.Sprintf("transmettre le profil thérapeutique et les notes de suivi à %s", alternative.DisplayName),
		fmt.Sprintf("séance d'accueil avec %s centrée sur les objectifs prioritaires", alternative.DisplayName),
	)
	if profile != nil && len(profile.CrisisIndicators) > 0 {
		steps = append(steps, "maintenir le suivi clinique parallèle pendant toute la transition")
	}
	return append(steps, "faire le point sur l'alliance thérapeutique après deux séances")
}
