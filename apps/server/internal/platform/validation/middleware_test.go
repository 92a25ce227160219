package validation_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repofit/repofit/apps/server/internal/platform/validation"
	"github.com/repofit/repofit/schemas"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	mw, err := validation.New(schemas.OpenAPISpec)
	require.NoError(t, err)

	r := gin.New()
	r.Use(mw)
	r.POST("/analyses", func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.GET("/analyses", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ─── POST /analyses ──────────────────────────────────────────────────────────

func TestAnalyze_MissingRepository_Returns400(t *testing.T) {
	r := newRouter(t)
	w := do(r, http.MethodPost, "/analyses", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestAnalyze_EmptyRepository_Returns400(t *testing.T) {
	r := newRouter(t)
	w := do(r, http.MethodPost, "/analyses", `{"repository":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyze_ValidPayload_Passes(t *testing.T) {
	r := newRouter(t)
	w := do(r, http.MethodPost, "/analyses", `{"repository":"acme/widget"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

// ─── unknown routes pass through ─────────────────────────────────────────────

func TestRouteOutsideSpec_PassesThrough(t *testing.T) {
	r := newRouter(t)
	// /health is not in the OpenAPI document — no validation applies.
	w := do(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

// ─── New() with invalid spec ─────────────────────────────────────────────────

func TestNew_InvalidSpec_ReturnsError(t *testing.T) {
	_, err := validation.New([]byte(`not yaml`))
	assert.Error(t, err)
}
