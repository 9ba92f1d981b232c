package taxpayers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"taxprep-backend/internal/shared/server/middleware"
	"taxprep-backend/internal/taxpayers"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Auth("dev"))

	api := r.Group("/api/v1")
	taxpayers.NewHandler(taxpayers.NewService(taxpayers.NewMemoryRepo())).RegisterRoutes(api)
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

func TestProfilePutAndGet(t *testing.T) {
	r := newTestRouter()

	resp := doJSON(t, r, http.MethodPut, "/api/v1/profile", map[string]any{
		"fullName":     "Alice Example",
		"filingStatus": "head_of_household",
		"dependents":   2,
		"state":        "CO",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("put status = %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, r, http.MethodGet, "/api/v1/profile", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("get status = %d: %s", resp.Code, resp.Body.String())
	}
	var p taxpayers.Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if p.FullName != "Alice Example" || p.FilingStatus != taxpayers.FilingHeadOfHousehold || p.Dependents != 2 {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestProfileGetMissing(t *testing.T) {
	r := newTestRouter()

	resp := doJSON(t, r, http.MethodGet, "/api/v1/profile", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestProfileRejectsBadFilingStatus(t *testing.T) {
	r := newTestRouter()

	resp := doJSON(t, r, http.MethodPut, "/api/v1/profile", map[string]any{
		"fullName":     "Bob Example",
		"filingStatus": "quadruple",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}
}
