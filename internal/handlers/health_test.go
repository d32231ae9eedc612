package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) AuthTest(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestHealthCheck(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status string
	}{
		{"healthy", nil, "healthy"},
		{"degraded", errors.New("invalid_auth"), "degraded"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			checker := new(MockHealthChecker)
			checker.On("AuthTest", mock.Anything).Return(tc.err)

			router := gin.New()
			router.GET("/health", NewHealthHandler(checker).HealthCheck)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/health", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			var body struct {
				Status  string            `json:"status"`
				Checks  map[string]string `json:"checks"`
				Version string            `json:"version"`
			}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.status, body.Status)
			assert.Equal(t, tc.status, body.Checks["slack"])
			assert.Equal(t, Version, body.Version)
			checker.AssertExpectations(t)
		})
	}
}
