package candidates

import (
	"fmt"
	"strings"
	"tawjih-service/internal/app/contracts"
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/app/services/core/templates"
	"tawjih-service/internal/pkg/exceptions"

	"gopkg.in/yaml.v3"
)

type registry struct {
	candidates []models.CandidateProfile
	byID       map[string]int
	quickMatch models.QuickMatchTable
	rules      models.MatchingRules
}

// NewRegistry validates the roster and freezes it. Candidate order is the roster order.
func NewRegistry(roster *models.CandidateRoster) (contracts.CandidateRegistry, error) {
	if err := ValidateRoster(roster); err != nil {
		return nil, err
	}

	reg := &registry{
		candidates: make([]models.CandidateProfile, len(roster.Candidates)),
		byID:       make(map[string]int, len(roster.Candidates)),
		quickMatch: roster.QuickMatch,
		rules:      roster.Rules,
	}
	for i, candidate := range roster.Candidates {
		candidate.Order = i
		reg.candidates[i] = candidate
		reg.byID[candidate.ID] = i
	}
	return reg, nil
}

// List returns a copy so callers can sort freely.
func (r *registry) List() []models.CandidateProfile {
	list := make([]models.CandidateProfile, len(r.candidates))
	copy(list, r.candidates)
	return list
}

func (r *registry) FindByID(candidateID string) (models.CandidateProfile, bool) {
	index, ok := r.byID[candidateID]
	if !ok {
		return models.CandidateProfile{}, false
	}
	return r.candidates[index], true
}

func (r *registry) QuickMatchTable() models.QuickMatchTable {
	return r.quickMatch
}

func (r *registry) Rules() models.MatchingRules {
	return r.rules
}

// ParseRoster decodes a YAML roster document.
func ParseRoster(raw []byte) (*models.CandidateRoster, error) {
	roster := new(models.CandidateRoster)
	if err := yaml.Unmarshal(raw, roster); err != nil {
		return nil, exceptions.ErrInvalidRoster(err, "roster is not valid yaml")
	}
	return roster, nil
}

// ValidateRoster checks ids and every reference of the quick-match and rule tables.
// An empty roster is valid; matching against it fails later.
func ValidateRoster(roster *models.CandidateRoster) error {
	var reasons []string
	fail := func(format string, args ...interface{}) {
		reasons = append(reasons, fmt.Sprintf(format, args...))
	}

	ids := make(map[string]bool, len(roster.Candidates))
	for _, candidate := range roster.Candidates {
		if candidate.ID == "" || ids[candidate.ID] {
			fail("candidate id %q is empty or duplicated", candidate.ID)
		}
		ids[candidate.ID] = true
		if candidate.PrimaryApproach == "" {
			fail("candidate %s has no primary approach", candidate.ID)
		}
	}

	if len(roster.Candidates) > 0 {
		if !ids[roster.QuickMatch.DefaultCandidateID] {
			fail("default candidate %q is not in the roster", roster.QuickMatch.DefaultCandidateID)
		}
		for category, candidateID := range roster.QuickMatch.ByCategory {
			if !ids[candidateID] {
				fail("category %s points to unknown candidate %q", category, candidateID)
			}
		}
	}

	for _, rule := range roster.Rules.Personality.Rules {
		if rule.Operator == models.OperatorContains || !templates.IsKnownOperator(rule.Operator) {
			fail("personality rule on %s has unsupported operator %q", rule.Trait, rule.Operator)
		}
		if rule.Trait == "" || rule.CandidateTrait == "" {
			fail("personality rule needs both a profile trait and a candidate trait")
		}
	}

	voice := roster.Rules.Voice
	if len(voice.PaceScale) == 0 || len(voice.ExpressivenessScale) == 0 {
		fail("voice rules need a pace scale and an expressiveness scale")
	}

	if len(reasons) > 0 {
		return exceptions.ErrInvalidRoster(nil, strings.Join(reasons, "; "))
	}
	return nil
}
