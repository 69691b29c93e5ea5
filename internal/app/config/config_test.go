package config

import (
	"tawjih-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInternalConfig(t *testing.T) {
	t.Run("Uses Assessment Defaults", func(t *testing.T) {
		cfg := NewInternalConfig()

		assert.Equal(t, 3, cfg.Assessment.BatchSize)
		assert.Equal(t, 30, cfg.Assessment.AdaptiveFractionPercent)
		assert.Equal(t, 2.0, cfg.Assessment.MinSecondsPerAnswer)
		assert.Equal(t, constvars.TemplateSourceEmbedded, cfg.Assessment.TemplateSource)
	})

	t.Run("Reads Overrides From The Environment", func(t *testing.T) {
		t.Setenv("ASSESSMENT_BATCH_SIZE", "5")
		t.Setenv("MATCHING_AUDIT_ENABLED", "false")
		t.Setenv("CANDIDATE_ROSTER_OBJECT", "rosters/maghreb.yaml")

		cfg := NewInternalConfig()

		assert.Equal(t, 5, cfg.Assessment.BatchSize)
		assert.False(t, cfg.Matching.AuditEnabled)
		assert.Equal(t, "rosters/maghreb.yaml", cfg.Matching.CandidateRosterKey)
	})
}
