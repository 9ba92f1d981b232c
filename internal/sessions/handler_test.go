package sessions_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"taxprep-backend/internal/interview"
	"taxprep-backend/internal/sessions"
	"taxprep-backend/internal/shared/server/middleware"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Auth("dev"))

	svc := &sessions.Service{
		Catalog: interview.Default(),
		Repo:    sessions.NewMemoryRepo(),
		TaxYear: 2025,
	}
	api := r.Group("/api/v1")
	sessions.NewHandler(svc).RegisterRoutes(api)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "test-guest")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestInterviewStartAndAnswer(t *testing.T) {
	r := newTestRouter()

	resp := doJSON(t, r, http.MethodPost, "/api/v1/interview/start", nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("start status = %d, body %s", resp.Code, resp.Body.String())
	}
	var started struct {
		SessionID string `json:"sessionId"`
		Questions []struct {
			ID string `json:"id"`
		} `json:"questions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&started); err != nil {
		t.Fatalf("decode start: %v", err)
	}
	if started.SessionID == "" || len(started.Questions) == 0 {
		t.Fatalf("unexpected start payload: %+v", started)
	}

	resp = doJSON(t, r, http.MethodPost, "/api/v1/interview/answer", map[string]any{
		"questionId": "income_employment",
		"value":      true,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("answer status = %d, body %s", resp.Code, resp.Body.String())
	}
	var step struct {
		NextQuestions []struct {
			ID string `json:"id"`
		} `json:"nextQuestions"`
		Recommendations []struct {
			Form     string `json:"form"`
			Priority int    `json:"priority"`
		} `json:"recommendations"`
		Completed bool `json:"completed"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&step); err != nil {
		t.Fatalf("decode answer: %v", err)
	}
	if len(step.Recommendations) == 0 || step.Recommendations[0].Form != "Form 1040" {
		t.Fatalf("expected Form 1040 first, got %+v", step.Recommendations)
	}
	foundFollowUp := false
	for _, q := range step.NextQuestions {
		if q.ID == "income_multiple_jobs" {
			foundFollowUp = true
		}
	}
	if !foundFollowUp {
		t.Fatalf("expected income_multiple_jobs queued")
	}
}

func TestInterviewAnswerWithoutStart(t *testing.T) {
	r := newTestRouter()

	resp := doJSON(t, r, http.MethodPost, "/api/v1/interview/answer", map[string]any{
		"questionId": "income_employment",
		"value":      true,
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestInterviewUnknownQuestion(t *testing.T) {
	r := newTestRouter()

	if resp := doJSON(t, r, http.MethodPost, "/api/v1/interview/start", nil); resp.Code != http.StatusCreated {
		t.Fatalf("start status = %d", resp.Code)
	}
	resp := doJSON(t, r, http.MethodPost, "/api/v1/interview/answer", map[string]any{
		"questionId": "bogus",
		"value":      true,
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body.Error.Code != "unknown_question" {
		t.Fatalf("expected unknown_question code, got %q", body.Error.Code)
	}
}

func TestInterviewSkipAndProgress(t *testing.T) {
	r := newTestRouter()

	if resp := doJSON(t, r, http.MethodPost, "/api/v1/interview/start", nil); resp.Code != http.StatusCreated {
		t.Fatalf("start status = %d", resp.Code)
	}
	resp := doJSON(t, r, http.MethodPost, "/api/v1/interview/skip", map[string]any{
		"questionId": "income_employment",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("skip status = %d: %s", resp.Code, resp.Body.String())
	}
	var skipped struct {
		ProgressPercentage float64 `json:"progressPercentage"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&skipped); err != nil {
		t.Fatalf("decode skip: %v", err)
	}
	if skipped.ProgressPercentage <= 0 {
		t.Fatalf("expected positive progress after skip")
	}

	resp = doJSON(t, r, http.MethodGet, "/api/v1/interview/progress", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("progress status = %d", resp.Code)
	}
}

func TestInterviewRequiresIdentity(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/interview/start", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", resp.Code)
	}
}
