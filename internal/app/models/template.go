package models

type AssessmentType string

const (
	AssessmentTypeInitial  AssessmentType = "initial"
	AssessmentTypeFollowUp AssessmentType = "follow_up"
)

type QuestionKind string

const (
	QuestionKindScale          QuestionKind = "scale"
	QuestionKindMultipleChoice QuestionKind = "multiple_choice"
	QuestionKindFreeText       QuestionKind = "free_text"
	QuestionKindBoolean        QuestionKind = "boolean"
)

type AggregationMode string

const (
	AggregationSum      AggregationMode = "sum"
	AggregationWeighted AggregationMode = "weighted"
	AggregationAverage  AggregationMode = "average"
)

type SeverityLevel string

const (
	SeverityMild     SeverityLevel = "mild"
	SeverityModerate SeverityLevel = "moderate"
	SeveritySevere   SeverityLevel = "severe"
)

// AssessmentTemplate is static reference data. Only the highest active version per
// (type, category, language) is served.
type AssessmentTemplate struct {
	ID              string               `json:"id" bson:"_id" yaml:"id"`
	Version         int                  `json:"version" bson:"version" yaml:"version"`
	Active          bool                 `json:"active" bson:"active" yaml:"active"`
	AssessmentType  AssessmentType       `json:"assessment_type" bson:"assessment_type" yaml:"assessment_type"`
	Category        string               `json:"category" bson:"category" yaml:"category"`
	Language        string               `json:"language" bson:"language" yaml:"language"`
	CulturalContext string               `json:"cultural_context,omitempty" bson:"cultural_context,omitempty" yaml:"cultural_context"`
	Title           string               `json:"title" bson:"title" yaml:"title"`
	Questions       []AssessmentQuestion `json:"questions" bson:"questions" yaml:"questions"`
	Subscales       []Subscale           `json:"subscales" bson:"subscales" yaml:"subscales"`
	Scoring         ScoringAlgorithm     `json:"scoring" bson:"scoring" yaml:"scoring"`
	ProfileRules    ProfileRules         `json:"profile_rules" bson:"profile_rules" yaml:"profile_rules"`
}

type AssessmentQuestion struct {
	ID       string       `json:"id" bson:"id" yaml:"id"`
	Text     string       `json:"text" bson:"text" yaml:"text"`
	Kind     QuestionKind `json:"kind" bson:"kind" yaml:"kind"`
	ScaleMin int          `json:"scale_min,omitempty" bson:"scale_min,omitempty" yaml:"scale_min"`
	ScaleMax int          `json:"scale_max,omitempty" bson:"scale_max,omitempty" yaml:"scale_max"`
	Options  []string     `json:"options,omitempty" bson:"options,omitempty" yaml:"options"`
	ShowIf   *Condition   `json:"show_if,omitempty" bson:"show_if,omitempty" yaml:"show_if"`
	SkipIf   *Condition   `json:"skip_if,omitempty" bson:"skip_if,omitempty" yaml:"skip_if"`
	Required bool         `json:"required" bson:"required" yaml:"required"`
	Scored   bool         `json:"scored" bson:"scored" yaml:"scored"`
	Subscale string       `json:"subscale,omitempty" bson:"subscale,omitempty" yaml:"subscale"`
	Trait    string       `json:"trait,omitempty" bson:"trait,omitempty" yaml:"trait"`
}

// IsConditional reports whether the question carries an adaptive condition.
func (q AssessmentQuestion) IsConditional() bool {
	return q.ShowIf != nil || q.SkipIf != nil
}

func (q AssessmentQuestion) IsNumeric() bool {
	return q.Kind == QuestionKindScale || q.Kind == QuestionKindBoolean
}

// Bounds returns the numeric range of the answer. Boolean answers are stored as 0 or 1.
func (q AssessmentQuestion) Bounds() (float64, float64) {
	if q.Kind == QuestionKindBoolean {
		return 0, 1
	}
	return float64(q.ScaleMin), float64(q.ScaleMax)
}

type ConditionOperator string

const (
	OperatorEquals      ConditionOperator = "equals"
	OperatorNotEquals   ConditionOperator = "not_equals"
	OperatorGreaterThan ConditionOperator = "greater_than"
	OperatorLessThan    ConditionOperator = "less_than"
	OperatorContains    ConditionOperator = "contains"
)

// Condition compares the answer of QuestionID against Value. Value is kept as text and
// compared numerically when both sides are numbers.
type Condition struct {
	QuestionID string            `json:"question_id" bson:"question_id" yaml:"question_id"`
	Operator   ConditionOperator `json:"operator" bson:"operator" yaml:"operator"`
	Value      string            `json:"value" bson:"value" yaml:"value"`
}

type Subscale struct {
	ID    string `json:"id" bson:"id" yaml:"id"`
	Label string `json:"label" bson:"label" yaml:"label"`
}

type ScoringAlgorithm struct {
	Mode          AggregationMode    `json:"mode" bson:"mode" yaml:"mode"`
	ReverseScored []string           `json:"reverse_scored,omitempty" bson:"reverse_scored,omitempty" yaml:"reverse_scored"`
	Weights       map[string]float64 `json:"weights,omitempty" bson:"weights,omitempty" yaml:"weights"`
	Bands         []SeverityBand     `json:"bands" bson:"bands" yaml:"bands"`
}

func (s ScoringAlgorithm) IsReversed(questionID string) bool {
	for _, id := range s.ReverseScored {
		if id == questionID {
			return true
		}
	}
	return false
}

// WeightOf returns the declared weight of an item, or 1 when none is declared.
func (s ScoringAlgorithm) WeightOf(questionID string) float64 {
	if weight, ok := s.Weights[questionID]; ok {
		return weight
	}
	return 1
}

// SeverityBand is an inclusive integer range.
type SeverityBand struct {
	Label string        `json:"label" bson:"label" yaml:"label"`
	Level SeverityLevel `json:"level" bson:"level" yaml:"level"`
	Min   int           `json:"min" bson:"min" yaml:"min"`
	Max   int           `json:"max" bson:"max" yaml:"max"`
}

func (b SeverityBand) Contains(score int) bool {
	return score >= b.Min && score <= b.Max
}

// ProfileRules drives profile generation. DiagnosisMapping order is the tie-break priority.
type ProfileRules struct {
	DiagnosisMapping     []DiagnosisMapping `json:"diagnosis_mapping" bson:"diagnosis_mapping" yaml:"diagnosis_mapping"`
	RiskFactors          []FactorRule       `json:"risk_factors,omitempty" bson:"risk_factors,omitempty" yaml:"risk_factors"`
	ProtectiveFactors    []FactorRule       `json:"protective_factors,omitempty" bson:"protective_factors,omitempty" yaml:"protective_factors"`
	CrisisIndicators     []FactorRule       `json:"crisis_indicators,omitempty" bson:"crisis_indicators,omitempty" yaml:"crisis_indicators"`
	MotivationQuestionID string             `json:"motivation_question_id,omitempty" bson:"motivation_question_id,omitempty" yaml:"motivation_question_id"`
	ReadinessQuestionID  string             `json:"readiness_question_id,omitempty" bson:"readiness_question_id,omitempty" yaml:"readiness_question_id"`
	ApproachByDiagnosis  map[string]string  `json:"approach_by_diagnosis,omitempty" bson:"approach_by_diagnosis,omitempty" yaml:"approach_by_diagnosis"`
	DefaultApproach      string             `json:"default_approach" bson:"default_approach" yaml:"default_approach"`
	Preferences          PreferenceMapping  `json:"preferences" bson:"preferences" yaml:"preferences"`
}

type DiagnosisMapping struct {
	Subscale  string `json:"subscale" bson:"subscale" yaml:"subscale"`
	Diagnosis string `json:"diagnosis" bson:"diagnosis" yaml:"diagnosis"`
}

// FactorRule labels the profile when its condition holds on the final responses.
type FactorRule struct {
	Condition `bson:",inline" yaml:",inline"`
	Label string `json:"label" bson:"label" yaml:"label"`
}

// PreferenceMapping names the questions whose answers carry the user's stated preferences.
type PreferenceMapping struct {
	ApproachQuestionID            string `json:"approach_question_id,omitempty" bson:"approach_question_id,omitempty" yaml:"approach_question_id"`
	VoiceGenderQuestionID         string `json:"voice_gender_question_id,omitempty" bson:"voice_gender_question_id,omitempty" yaml:"voice_gender_question_id"`
	VoiceAccentQuestionID         string `json:"voice_accent_question_id,omitempty" bson:"voice_accent_question_id,omitempty" yaml:"voice_accent_question_id"`
	VoicePaceQuestionID           string `json:"voice_pace_question_id,omitempty" bson:"voice_pace_question_id,omitempty" yaml:"voice_pace_question_id"`
	VoiceExpressivenessQuestionID string `json:"voice_expressiveness_question_id,omitempty" bson:"voice_expressiveness_question_id,omitempty" yaml:"voice_expressiveness_question_id"`
	NoPreferenceValue             string `json:"no_preference_value,omitempty" bson:"no_preference_value,omitempty" yaml:"no_preference_value"`
}

// QuestionByID returns the question with the given id.
func (t *AssessmentTemplate) QuestionByID(questionID string) (AssessmentQuestion, bool) {
	for _, question := range t.Questions {
		if question.ID == questionID {
			return question, true
		}
	}
	return AssessmentQuestion{}, false
}

// DiagnosisFor returns the mapped diagnosis of a subscale and its priority (lower wins).
func (r ProfileRules) DiagnosisFor(subscaleID string) (string, int, bool) {
	for priority, mapping := range r.DiagnosisMapping {
		if mapping.Subscale == subscaleID {
			return mapping.Diagnosis, priority, true
		}
	}
	return "", 0, false
}
