package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"spam-detection-service/internal/adapters/primary/http/middleware"
	"spam-detection-service/internal/core/domain"
	"spam-detection-service/internal/core/ports/output"
	"spam-detection-service/internal/core/services"
	"spam-detection-service/internal/testutil"
)

func setupSpamRouter(engine ports.InferenceEngine) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := New(services.NewSpamService(engine))
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logging("/ping"), middleware.Recovery(), middleware.CORS())
	h.RegisterRoutes(r.Group("/"))

	return r
}

func keywordRouter() *gin.Engine {
	return setupSpamRouter(&testutil.KeywordEngine{Keywords: []string{"money", "click here", "free"}})
}

func postPredict(r *gin.Engine, contentType, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHome(t *testing.T) {
	r := keywordRouter()

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, homeMessage, body["message"])
}

func TestPing(t *testing.T) {
	engine := new(testutil.MockInferenceEngine)
	r := setupSpamRouter(engine)

	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	engine.AssertNotCalled(t, "Transform", mock.Anything, mock.Anything)
}

func TestPredict_Spam(t *testing.T) {
	w := postPredict(keywordRouter(), "application/json", `{"subject": "Win money now", "body": "Click here"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"spam": true}`, w.Body.String())
}

func TestPredict_NotSpam(t *testing.T) {
	w := postPredict(keywordRouter(), "application/json", `{"subject": "Lunch", "body": "See you at noon"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"spam": false}`, w.Body.String())
}

func TestPredict_SubjectOnly(t *testing.T) {
	engine := new(testutil.MockInferenceEngine)
	r := setupSpamRouter(engine)

	vectors := []domain.FeatureVector{{Dim: 2}}
	engine.On("Transform", mock.Anything, []string{"Meeting tomorrow"}).Return(vectors, nil)
	engine.On("Predict", mock.Anything, vectors).Return([]domain.Label{{Value: float64(0)}}, nil)

	w := postPredict(r, "application/json", `{"subject": "Meeting tomorrow"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"spam": false}`, w.Body.String())
	engine.AssertExpectations(t)
}

func TestPredict_RawLabelCoercedToBool(t *testing.T) {
	engine := new(testutil.MockInferenceEngine)
	r := setupSpamRouter(engine)

	vectors := []domain.FeatureVector{{Dim: 2}}
	engine.On("Transform", mock.Anything, mock.Anything).Return(vectors, nil)
	engine.On("Predict", mock.Anything, vectors).Return([]domain.Label{{Value: float64(1)}}, nil)

	w := postPredict(r, "application/json", `{"body": "anything"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["spam"])
}

func TestPredict_EmptyEmail(t *testing.T) {
	engine := new(testutil.MockInferenceEngine)
	r := setupSpamRouter(engine)

	for _, body := range []string{
		`{"subject": "", "body": ""}`,
		`{"subject": "   ", "body": "\n\t"}`,
		`{}`,
		`{"subject": 7, "body": false}`,
	} {
		w := postPredict(r, "application/json", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.JSONEq(t, `{"error": "Email subject and body cannot both be empty"}`, w.Body.String(), body)
	}
	engine.AssertNotCalled(t, "Transform", mock.Anything, mock.Anything)
}

func TestPredict_NotJSON(t *testing.T) {
	engine := new(testutil.MockInferenceEngine)
	r := setupSpamRouter(engine)

	tests := []struct {
		contentType string
		body        string
	}{
		{"text/plain", "not json"},
		{"text/plain", `{"subject": "Win money now", "body": "Click here"}`},
		{"", `{"subject": "Win money now"}`},
		{"application/x-www-form-urlencoded", "subject=hi"},
		{"application/jsonx", `{"subject": "hi"}`},
	}

	for _, tt := range tests {
		w := postPredict(r, tt.contentType, tt.body)
		assert.Equal(t, http.StatusBadRequest, w.Code, tt.contentType)
		assert.JSONEq(t, `{"error": "Request must be in JSON format"}`, w.Body.String(), tt.contentType)
	}
	engine.AssertNotCalled(t, "Transform", mock.Anything, mock.Anything)
}

func TestPredict_JSONContentTypeVariants(t *testing.T) {
	r := keywordRouter()

	for _, ct := range []string{"application/json; charset=utf-8", "Application/JSON", "application/vnd.api+json"} {
		w := postPredict(r, ct, `{"subject": "free money"}`)
		assert.Equal(t, http.StatusOK, w.Code, ct)
		assert.JSONEq(t, `{"spam": true}`, w.Body.String(), ct)
	}
}

func TestPredict_MalformedJSON(t *testing.T) {
	r := keywordRouter()

	for _, body := range []string{`not json`, `{"subject": `, `null`, `["Win money"]`, ``} {
		w := postPredict(r, "application/json", body)
		assert.Equal(t, http.StatusInternalServerError, w.Code, body)
		assert.JSONEq(t, `{"error": "Failed to get spam prediction"}`, w.Body.String(), body)
	}
}

func TestPredict_OversizedBody(t *testing.T) {
	engine := new(testutil.MockInferenceEngine)
	r := setupSpamRouter(engine)

	body := `{"subject": "win", "body": "` + strings.Repeat("money ", maxPredictBodyBytes/6+1) + `"}`
	w := postPredict(r, "application/json", body)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "Failed to get spam prediction"}`, w.Body.String())
	engine.AssertNotCalled(t, "Transform", mock.Anything, mock.Anything)
}

func TestPredict_BodyAtLimit(t *testing.T) {
	r := keywordRouter()

	prefix, suffix := `{"subject": "free", "body": "`, `"}`
	body := prefix + strings.Repeat("x", maxPredictBodyBytes-len(prefix)-len(suffix)) + suffix
	require.Len(t, body, maxPredictBodyBytes)

	w := postPredict(r, "application/json", body)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"spam": true}`, w.Body.String())
}

func TestPredict_InferenceErrorDoesNotLeak(t *testing.T) {
	engine := new(testutil.MockInferenceEngine)
	r := setupSpamRouter(engine)

	engine.On("Transform", mock.Anything, mock.Anything).Return(nil, errors.New("sparse matrix shape (1, 12) vs (1, 9000)"))

	w := postPredict(r, "application/json", `{"subject": "hello"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "Failed to get spam prediction"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "sparse")
}

func TestPredict_EnginePanic(t *testing.T) {
	engine := new(testutil.MockInferenceEngine)
	r := setupSpamRouter(engine)

	engine.On("Transform", mock.Anything, mock.Anything).Return([]domain.FeatureVector{{Dim: 1}}, nil)
	engine.On("Predict", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		panic("runtime error: index out of range [9] with length 1")
	})

	w := postPredict(r, "application/json", `{"subject": "hello"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "Failed to get spam prediction"}`, w.Body.String())
}

func TestPredict_Idempotent(t *testing.T) {
	r := keywordRouter()
	body := `{"subject": "Win money now", "body": "Click here"}`

	first := postPredict(r, "application/json", body)
	second := postPredict(r, "application/json", body)

	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestRoutes_UnknownPathAndMethod(t *testing.T) {
	r := keywordRouter()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/predict"},
		{http.MethodGet, "/Predict"},
		{http.MethodPost, "/predict/"},
		{http.MethodGet, "/health"},
		{http.MethodPost, "/ping"},
	}

	for _, tt := range tests {
		req, _ := http.NewRequest(tt.method, tt.path, bytes.NewReader(nil))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.NotEqual(t, http.StatusOK, w.Code, "%s %s", tt.method, tt.path)
		assert.NotEqual(t, http.StatusNoContent, w.Code, "%s %s", tt.method, tt.path)
	}
}

func TestRoutes_CORS(t *testing.T) {
	r := keywordRouter()

	req, _ := http.NewRequest(http.MethodPost, "/predict", strings.NewReader(`{"subject": "free"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://frontend.example.org")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
}
