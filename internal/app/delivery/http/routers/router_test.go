package routers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"tawjih-service/internal/app/config"
	"tawjih-service/internal/app/delivery/http/middlewares"
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/app/services/core/assessments"
	"tawjih-service/internal/app/services/core/candidates"
	"tawjih-service/internal/app/services/core/matching"
	"tawjih-service/internal/app/services/core/rematch"
	"tawjih-service/internal/pkg/constvars"
	"tawjih-service/internal/pkg/dto/requests"
	"tawjih-service/internal/pkg/dto/responses"
	"tawjih-service/internal/pkg/exceptions"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSessionID = "5f1d7c3e-8a2b-4c6d-9e0f-1a2b3c4d5e6f"

type MockAssessmentUsecase struct {
	mock.Mock
}

func (m *MockAssessmentUsecase) StartAssessment(ctx context.Context, request *requests.StartAssessment) (*responses.StartAssessment, error) {
	args := m.Called(ctx, request)
	response, _ := args.Get(0).(*responses.StartAssessment)
	return response, args.Error(1)
}

func (m *MockAssessmentUsecase) SubmitResponses(ctx context.Context, request *requests.SubmitResponses) (*responses.SubmitResponses, error) {
	args := m.Called(ctx, request)
	response, _ := args.Get(0).(*responses.SubmitResponses)
	return response, args.Error(1)
}

func (m *MockAssessmentUsecase) FindSession(ctx context.Context, sessionID string) (*responses.AssessmentSession, error) {
	args := m.Called(ctx, sessionID)
	response, _ := args.Get(0).(*responses.AssessmentSession)
	return response, args.Error(1)
}

func (m *MockAssessmentUsecase) FindTherapeuticProfile(ctx context.Context, sessionID string) (*models.TherapeuticProfile, error) {
	args := m.Called(ctx, sessionID)
	response, _ := args.Get(0).(*models.TherapeuticProfile)
	return response, args.Error(1)
}

func (m *MockAssessmentUsecase) FindScores(ctx context.Context, sessionID string) (*models.ScoreResult, error) {
	args := m.Called(ctx, sessionID)
	response, _ := args.Get(0).(*models.ScoreResult)
	return response, args.Error(1)
}

type MockMatchingUsecase struct {
	mock.Mock
}

func (m *MockMatchingUsecase) MatchExpert(ctx context.Context, request *requests.MatchExpert) (*models.MatchingRecommendation, error) {
	args := m.Called(ctx, request)
	response, _ := args.Get(0).(*models.MatchingRecommendation)
	return response, args.Error(1)
}

func (m *MockMatchingUsecase) QuickMatch(ctx context.Context, request *requests.QuickMatch) (*models.QuickMatchResult, error) {
	args := m.Called(ctx, request)
	response, _ := args.Get(0).(*models.QuickMatchResult)
	return response, args.Error(1)
}

func (m *MockMatchingUsecase) AnalyzeVoice(ctx context.Context, request *requests.VoiceCompatibility) (*models.VoiceCompatibility, error) {
	args := m.Called(ctx, request)
	response, _ := args.Get(0).(*models.VoiceCompatibility)
	return response, args.Error(1)
}

type MockCandidateUsecase struct {
	mock.Mock
}

func (m *MockCandidateUsecase) ListCandidates(ctx context.Context) ([]models.CandidateProfile, error) {
	args := m.Called(ctx)
	response, _ := args.Get(0).([]models.CandidateProfile)
	return response, args.Error(1)
}

type MockRematchUsecase struct {
	mock.Mock
}

func (m *MockRematchUsecase) EvaluateRematch(ctx context.Context, request *requests.EvaluateRematch) (*models.RematchDecision, error) {
	args := m.Called(ctx, request)
	response, _ := args.Get(0).(*models.RematchDecision)
	return response, args.Error(1)
}

func (m *MockRematchUsecase) ProcessSnapshot(ctx context.Context, snapshot models.ProgressSnapshot) (*models.RematchDecision, error) {
	args := m.Called(ctx, snapshot)
	response, _ := args.Get(0).(*models.RematchDecision)
	return response, args.Error(1)
}

func (m *MockRematchUsecase) FindDecision(ctx context.Context, snapshotID string) (*models.RematchDecision, error) {
	args := m.Called(ctx, snapshotID)
	response, _ := args.Get(0).(*models.RematchDecision)
	return response, args.Error(1)
}

type testServer struct {
	router      *chi.Mux
	assessments *MockAssessmentUsecase
	matching    *MockMatchingUsecase
	candidates  *MockCandidateUsecase
	rematch     *MockRematchUsecase
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		App: config.App{
			EndpointPrefix:          "api",
			Version:                 "v1",
			MaxRequests:             1000,
			RequestTimeoutInSeconds: 5,
		},
	}

	server := &testServer{
		router:      chi.NewRouter(),
		assessments: new(MockAssessmentUsecase),
		matching:    new(MockMatchingUsecase),
		candidates:  new(MockCandidateUsecase),
		rematch:     new(MockRematchUsecase),
	}
	SetupRoutes(
		server.router,
		internalConfig,
		middlewares.NewMiddlewares(logger, internalConfig),
		assessments.NewAssessmentController(logger, server.assessments, internalConfig),
		matching.NewMatchingController(logger, server.matching, internalConfig),
		candidates.NewCandidateController(logger, server.candidates, internalConfig),
		rematch.NewRematchController(logger, server.rematch, internalConfig),
	)
	return server
}

func (s *testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var payload []byte
	switch value := body.(type) {
	case nil:
	case string:
		payload = []byte(value)
	default:
		payload, _ = json.Marshal(value)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestAssessmentRoutes(t *testing.T) {
	t.Run("Start Assessment Returns Created With Sanitized Input", func(t *testing.T) {
		server := newTestServer(t)
		server.assessments.On("StartAssessment", mock.Anything, mock.MatchedBy(func(request *requests.StartAssessment) bool {
			return request.Language == "fr" && request.CulturalContext == "maghreb" && request.UserID == "user-1"
		})).Return(&responses.StartAssessment{SessionID: testSessionID, Status: models.SessionStatusInProgress}, nil)

		rr := server.do(http.MethodPost, "/api/v1/assessments", map[string]string{
			"user_id":          " user-1 ",
			"category":         "anxiété",
			"cultural_context": "Maghreb",
			"language":         "FR",
		})

		assert.Equal(t, http.StatusCreated, rr.Code)
		body := decode(t, rr)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, testSessionID, body["data"].(map[string]interface{})["session_id"])
		assert.NotEmpty(t, rr.Header().Get(constvars.HeaderXRequestID))
		server.assessments.AssertExpectations(t)
	})

	t.Run("Malformed Body Is Rejected Before The Usecase", func(t *testing.T) {
		server := newTestServer(t)

		rr := server.do(http.MethodPost, "/api/v1/assessments", "{not json")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		server.assessments.AssertNotCalled(t, "StartAssessment", mock.Anything, mock.Anything)
	})

	t.Run("Missing Language Fails Validation", func(t *testing.T) {
		server := newTestServer(t)

		rr := server.do(http.MethodPost, "/api/v1/assessments", map[string]string{"user_id": "u", "category": "anxiété"})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, constvars.ErrCodeValidation, decode(t, rr)["code"])
		server.assessments.AssertNotCalled(t, "StartAssessment", mock.Anything, mock.Anything)
	})

	t.Run("Submit Carries The Session Id From The Path", func(t *testing.T) {
		server := newTestServer(t)
		server.assessments.On("SubmitResponses", mock.Anything, mock.MatchedBy(func(request *requests.SubmitResponses) bool {
			return request.SessionID == testSessionID && len(request.Responses) == 1 && request.Strict
		})).Return(&responses.SubmitResponses{SessionID: testSessionID, ProgressPercentage: 4}, nil)

		rr := server.do(http.MethodPost, "/api/v1/assessments/"+testSessionID+"/responses", map[string]interface{}{
			"strict":    true,
			"responses": []map[string]interface{}{{"question_id": "a1", "value": 2}},
		})

		assert.Equal(t, http.StatusOK, rr.Code)
		server.assessments.AssertExpectations(t)
	})

	t.Run("Submit Rejects A Malformed Session Id", func(t *testing.T) {
		server := newTestServer(t)

		rr := server.do(http.MethodPost, "/api/v1/assessments/not-a-uuid/responses", map[string]interface{}{
			"responses": []map[string]interface{}{{"question_id": "a1", "value": 2}},
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Submit To A Completed Session Is A Conflict", func(t *testing.T) {
		server := newTestServer(t)
		server.assessments.On("SubmitResponses", mock.Anything, mock.Anything).
			Return(nil, exceptions.ErrSessionAlreadyCompleted(nil, testSessionID))

		rr := server.do(http.MethodPost, "/api/v1/assessments/"+testSessionID+"/responses", map[string]interface{}{
			"responses": []map[string]interface{}{{"question_id": "a1", "value": 2}},
		})

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, constvars.ErrCodeSessionAlreadyCompleted, decode(t, rr)["code"])
	})

	t.Run("Unknown Session Is Not Found", func(t *testing.T) {
		server := newTestServer(t)
		server.assessments.On("FindSession", mock.Anything, testSessionID).
			Return(nil, exceptions.ErrSessionNotFound(nil, testSessionID))

		rr := server.do(http.MethodGet, "/api/v1/assessments/"+testSessionID, nil)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, constvars.ErrCodeSessionNotFound, decode(t, rr)["code"])
	})

	t.Run("Profile And Scores Are Served", func(t *testing.T) {
		server := newTestServer(t)
		server.assessments.On("FindTherapeuticProfile", mock.Anything, testSessionID).
			Return(&models.TherapeuticProfile{ID: "profile-1", SessionID: testSessionID}, nil)
		server.assessments.On("FindScores", mock.Anything, testSessionID).
			Return(&models.ScoreResult{TotalScore: 16}, nil)

		profile := server.do(http.MethodGet, "/api/v1/assessments/"+testSessionID+"/profile", nil)
		scores := server.do(http.MethodGet, "/api/v1/assessments/"+testSessionID+"/scores", nil)

		assert.Equal(t, http.StatusOK, profile.Code)
		assert.Equal(t, http.StatusOK, scores.Code)
		server.assessments.AssertExpectations(t)
	})

	t.Run("Expired Request Context Maps To Gateway Timeout", func(t *testing.T) {
		server := newTestServer(t)
		server.assessments.On("FindScores", mock.Anything, testSessionID).Return(nil, context.DeadlineExceeded)

		rr := server.do(http.MethodGet, "/api/v1/assessments/"+testSessionID+"/scores", nil)

		assert.Equal(t, http.StatusGatewayTimeout, rr.Code)
		body := decode(t, rr)
		assert.Equal(t, constvars.ErrCodeDeadlineExceeded, body["code"])
		assert.Equal(t, true, body["retryable"])
	})
}

func TestMatchingRoutes(t *testing.T) {
	t.Run("Match Needs A Profile Or A Session", func(t *testing.T) {
		server := newTestServer(t)

		rr := server.do(http.MethodPost, "/api/v1/matching", map[string]string{})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		server.matching.AssertNotCalled(t, "MatchExpert", mock.Anything, mock.Anything)
	})

	t.Run("Match By Session Returns The Recommendation", func(t *testing.T) {
		server := newTestServer(t)
		server.matching.On("MatchExpert", mock.Anything, mock.MatchedBy(func(request *requests.MatchExpert) bool {
			return request.SessionID == testSessionID && request.Profile == nil
		})).Return(&models.MatchingRecommendation{ID: "rec-1"}, nil)

		rr := server.do(http.MethodPost, "/api/v1/matching", map[string]string{"session_id": testSessionID})

		assert.Equal(t, http.StatusOK, rr.Code)
		server.matching.AssertExpectations(t)
	})

	t.Run("Quick Match Normalizes Language", func(t *testing.T) {
		server := newTestServer(t)
		server.matching.On("QuickMatch", mock.Anything, mock.MatchedBy(func(request *requests.QuickMatch) bool {
			return request.Language == "ar" && request.Category == "dépression"
		})).Return(&models.QuickMatchResult{Confidence: 80}, nil)

		rr := server.do(http.MethodPost, "/api/v1/matching/quick", map[string]string{"category": " dépression ", "language": "AR"})

		assert.Equal(t, http.StatusOK, rr.Code)
		server.matching.AssertExpectations(t)
	})

	t.Run("Voice Analysis For An Unknown Candidate Is Not Found", func(t *testing.T) {
		server := newTestServer(t)
		server.matching.On("AnalyzeVoice", mock.Anything, mock.Anything).
			Return(nil, exceptions.ErrCandidateNotFound(nil, "dr_x"))

		rr := server.do(http.MethodPost, "/api/v1/matching/voice", map[string]interface{}{
			"candidate_id": "dr_x",
			"preferences":  map[string]string{"gender": "female"},
		})

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, constvars.ErrCodeCandidateNotFound, decode(t, rr)["code"])
	})
}

func TestCandidateRoutes(t *testing.T) {
	server := newTestServer(t)
	server.candidates.On("ListCandidates", mock.Anything).
		Return([]models.CandidateProfile{{ID: "dr_amina"}, {ID: "dr_karim"}}, nil)

	rr := server.do(http.MethodGet, "/api/v1/candidates", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode(t, rr)["data"], 2)
}

func TestRematchRoutes(t *testing.T) {
	t.Run("Evaluation Returns The Decision", func(t *testing.T) {
		server := newTestServer(t)
		server.rematch.On("EvaluateRematch", mock.Anything, mock.MatchedBy(func(request *requests.EvaluateRematch) bool {
			return request.CurrentCandidateID == "dr_amina" && request.Progress.WeeksElapsed == 6
		})).Return(&models.RematchDecision{ID: "decision-1", CurrentCandidateID: "dr_amina", ChangeRecommended: true}, nil)

		rr := server.do(http.MethodPost, "/api/v1/rematch/evaluations", map[string]interface{}{
			"current_candidate_id": "dr_amina",
			"progress":             map[string]interface{}{
				"weeks_elapsed":      6,
				"improvement_rate":   5,
				"engagement_level":   4,
				"satisfaction_score": 4,
			},
		})

		assert.Equal(t, http.StatusOK, rr.Code)
		data := decode(t, rr)["data"].(map[string]interface{})
		assert.Equal(t, true, data["change_recommended"])
	})

	t.Run("Out Of Range Progress Fails Validation", func(t *testing.T) {
		server := newTestServer(t)

		rr := server.do(http.MethodPost, "/api/v1/rematch/evaluations", map[string]interface{}{
			"current_candidate_id": "dr_amina",
			"progress":             map[string]interface{}{"engagement_level": 42},
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		server.rematch.AssertNotCalled(t, "EvaluateRematch", mock.Anything, mock.Anything)
	})

	t.Run("Stored Decision Is Found By Snapshot", func(t *testing.T) {
		server := newTestServer(t)
		server.rematch.On("FindDecision", mock.Anything, "snap-42").
			Return(&models.RematchDecision{ID: "decision-1", SnapshotID: "snap-42"}, nil)

		rr := server.do(http.MethodGet, "/api/v1/rematch/decisions/snap-42", nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		server.rematch.AssertExpectations(t)
	})
}

func TestUnmatchedRoutes(t *testing.T) {
	server := newTestServer(t)

	t.Run("Unknown Path Is Not Found", func(t *testing.T) {
		rr := server.do(http.MethodGet, "/api/v1/unknown", nil)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, constvars.ErrCodeRouteNotFound, decode(t, rr)["code"])
	})

	t.Run("Wrong Method Is Not Allowed", func(t *testing.T) {
		rr := server.do(http.MethodDelete, "/api/v1/candidates", nil)

		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
		assert.Equal(t, constvars.ErrCodeMethodNotAllowed, decode(t, rr)["code"])
	})
}
