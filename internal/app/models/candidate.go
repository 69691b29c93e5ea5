package models

// CandidateProfile is a practitioner persona. Order is the registry position and breaks ranking ties.
type CandidateProfile struct {
	ID                  string          `json:"id" yaml:"id"`
	DisplayName         string          `json:"display_name" yaml:"display_name"`
	Order               int             `json:"order" yaml:"-"`
	Specialties         []string        `json:"specialties" yaml:"specialties"`
	Categories          []string        `json:"categories" yaml:"categories"`
	PrimaryApproach     string          `json:"primary_approach" yaml:"primary_approach"`
	SecondaryApproaches []string        `json:"secondary_approaches,omitempty" yaml:"secondary_approaches"`
	PersonalityTraits   []string        `json:"personality_traits" yaml:"personality_traits"`
	CommunicationStyle  string          `json:"communication_style" yaml:"communication_style"`
	Voice               VoiceProfile    `json:"voice" yaml:"voice"`
	Cultural            CulturalProfile `json:"cultural" yaml:"cultural"`
	ClinicalExpertise   map[string]int  `json:"clinical_expertise,omitempty" yaml:"clinical_expertise"`
	Generalist          bool            `json:"generalist" yaml:"generalist"`
}

func (c CandidateProfile) HasTrait(trait string) bool {
	return containsString(c.PersonalityTraits, trait)
}

func (c CandidateProfile) DeclaresApproach(approach string) bool {
	return c.PrimaryApproach == approach || containsString(c.SecondaryApproaches, approach)
}

type VoiceProfile struct {
	Gender         string `json:"gender" yaml:"gender"`
	Accent         string `json:"accent" yaml:"accent"`
	Pace           string `json:"pace" yaml:"pace"`
	Expressiveness string `json:"expressiveness" yaml:"expressiveness"`
}

// CulturalProfile marks a candidate as specialized for TargetCultures. Non specialized
// candidates are culturally neutral.
type CulturalProfile struct {
	Specialized    bool     `json:"specialized" yaml:"specialized"`
	TargetCultures []string `json:"target_cultures,omitempty" yaml:"target_cultures"`
	Languages      []string `json:"languages" yaml:"languages"`
}

func (c CulturalProfile) TargetsCulture(culture string) bool {
	return culture != "" && containsString(c.TargetCultures, culture)
}

func (c CulturalProfile) SpeaksLanguage(language string) bool {
	return language != "" && containsString(c.Languages, language)
}

// CandidateRoster is the registry source document: the ordered candidates plus the
// declarative tables the matching engine reads.
type CandidateRoster struct {
	Candidates []CandidateProfile `json:"candidates" yaml:"candidates"`
	QuickMatch QuickMatchTable    `json:"quick_match" yaml:"quick_match"`
	Rules      MatchingRules      `json:"rules" yaml:"rules"`
}

type QuickMatchTable struct {
	ByCategory         map[string]string `json:"by_category" yaml:"by_category"`
	DefaultCandidateID string            `json:"default_candidate_id" yaml:"default_candidate_id"`
}

type MatchingRules struct {
	Diagnostic  DiagnosticRules  `json:"diagnostic" yaml:"diagnostic"`
	Cultural    CulturalFitRules `json:"cultural" yaml:"cultural"`
	Personality PersonalityRules `json:"personality" yaml:"personality"`
	Approach    ApproachRules    `json:"approach" yaml:"approach"`
	Voice       VoiceRules       `json:"voice" yaml:"voice"`
}

type DiagnosticRules struct {
	SpecialtyMatch    int `json:"specialty_match" yaml:"specialty_match"`
	CategoryMatch     int `json:"category_match" yaml:"category_match"`
	Baseline          int `json:"baseline" yaml:"baseline"`
	SecondaryBonus    int `json:"secondary_bonus" yaml:"secondary_bonus"`
	SecondaryBonusCap int `json:"secondary_bonus_cap" yaml:"secondary_bonus_cap"`
}

type CulturalFitRules struct {
	SpecializedMatch    int `json:"specialized_match" yaml:"specialized_match"`
	SpecializedFallback int `json:"specialized_fallback" yaml:"specialized_fallback"`
	Neutral             int `json:"neutral" yaml:"neutral"`
}

type PersonalityRules struct {
	Base  int               `json:"base" yaml:"base"`
	Rules []PersonalityRule `json:"rules" yaml:"rules"`
}

// PersonalityRule adds Adjustment when the profile trait satisfies the comparison and the
// candidate carries CandidateTrait.
type PersonalityRule struct {
	Trait          string            `json:"trait" yaml:"trait"`
	Operator       ConditionOperator `json:"operator" yaml:"operator"`
	Threshold      float64           `json:"threshold" yaml:"threshold"`
	CandidateTrait string            `json:"candidate_trait" yaml:"candidate_trait"`
	Adjustment     int               `json:"adjustment" yaml:"adjustment"`
	Reason         string            `json:"reason" yaml:"reason"`
}

type ApproachRules struct {
	Exact   int `json:"exact" yaml:"exact"`
	Neutral int `json:"neutral" yaml:"neutral"`
}

type VoiceRules struct {
	NeutralAccent       string              `json:"neutral_accent" yaml:"neutral_accent"`
	AccentCompatibility map[string][]string `json:"accent_compatibility" yaml:"accent_compatibility"`
	PaceScale           []string            `json:"pace_scale" yaml:"pace_scale"`
	ExpressivenessScale []string            `json:"expressiveness_scale" yaml:"expressiveness_scale"`
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
