package handler_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/repofit/repofit/apps/server/internal/handler"
	"github.com/repofit/repofit/apps/server/internal/platform/validation"
	"github.com/repofit/repofit/internal/store"
	"github.com/repofit/repofit/internal/analysis"
	"github.com/repofit/repofit/internal/platform/github"
	"github.com/repofit/repofit/schemas"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ─── Test server builder ──────────────────────────────────────────────────────

type testServer struct {
	router *gin.Engine
	fake   *github.InMem
	store  *store.MemReportStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		fake:  github.NewInMem(),
		store: store.NewMemReportStore(),
	}
	ts.fake.SetMetadata("acme", "widget", analysis.RepoMetadata{
		Name:     "widget",
		HTMLURL:  "https://github.com/acme/widget",
		Stars:    42,
		Forks:    7,
		Language: "Python",
	})
	ts.fake.SetFile("acme", "widget", "main.py", "print(1)\n")

	cfg := analysis.Config{Rules: analysis.DefaultRules(), Limits: analysis.DefaultLimits()}
	svc := analysis.NewService(ts.fake, ts.fake, ts.store, cfg, slog.New(slog.DiscardHandler))
	r := gin.New()
	handler.RegisterRoutes(r, svc, slog.New(slog.DiscardHandler))
	ts.router = r
	return ts
}

func newTestServerWithValidation(t *testing.T) *testServer {
	t.Helper()
	ts := newTestServer(t)
	mw, err := validation.New(schemas.OpenAPISpec)
	require.NoError(t, err)

	cfg := analysis.Config{Rules: analysis.DefaultRules(), Limits: analysis.DefaultLimits()}
	svc := analysis.NewService(ts.fake, ts.fake, ts.store, cfg, slog.New(slog.DiscardHandler))
	r := gin.New()
	r.Use(mw)
	handler.RegisterRoutes(r, svc, slog.New(slog.DiscardHandler))
	ts.router = r
	return ts
}

func (ts *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}
