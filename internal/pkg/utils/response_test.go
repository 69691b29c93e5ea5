package utils

import (
	"errors"
	"net/http/httptest"
	"tawjih-service/internal/pkg/constvars"
	"tawjih-service/internal/pkg/exceptions"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildSuccessResponse(t *testing.T) {
	recorder := httptest.NewRecorder()

	BuildSuccessResponse(recorder, constvars.StatusOK, "ok", map[string]int{"progress": 40})

	assert.Equal(t, constvars.StatusOK, recorder.Code)
	assert.Equal(t, constvars.MIMEApplicationJSON, recorder.Header().Get(constvars.HeaderContentType))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(40), body["data"].(map[string]interface{})["progress"])
}

func TestBuildErrorResponse(t *testing.T) {
	t.Run("Maps A CustomError To Its Status And Code", func(t *testing.T) {
		recorder := httptest.NewRecorder()

		BuildErrorResponse(zap.NewNop(), recorder, exceptions.ErrSessionAlreadyCompleted(nil, "s-1"))

		assert.Equal(t, constvars.StatusConflict, recorder.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
		assert.Equal(t, constvars.ErrCodeSessionAlreadyCompleted, body["code"])
		assert.Equal(t, constvars.ErrClientSessionAlreadyCompleted, body["message"])
	})

	t.Run("Hides Dev Message In Production", func(t *testing.T) {
		t.Setenv("APP_ENV", constvars.EnvironmentProduction)
		recorder := httptest.NewRecorder()

		BuildErrorResponse(zap.NewNop(), recorder, exceptions.ErrRedisGet(errors.New("dial tcp")))

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.NotContains(t, body, "dev_message")
		assert.Equal(t, true, body["retryable"])
	})

	t.Run("Falls Back To Internal Error For Plain Errors", func(t *testing.T) {
		recorder := httptest.NewRecorder()

		BuildErrorResponse(zap.NewNop(), recorder, errors.New("boom"))

		assert.Equal(t, constvars.StatusInternalServerError, recorder.Code)
	})
}
