package analysis_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repofit/repofit/internal/analysis"
	"github.com/repofit/repofit/internal/platform/github"
	"github.com/repofit/repofit/pkg/api"
)

// Compile-time interface compliance check.
var _ analysis.ReportStore = (*memStore)(nil)

// ─── memStore ─────────────────────────────────────────────────────────────────

type memStore struct {
	data map[string]api.Report

	errSave   error
	errGet    error
	errList   error
	errDelete error
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]api.Report)}
}

func (s *memStore) Save(_ context.Context, r api.Report) error {
	if s.errSave != nil {
		return s.errSave
	}
	s.data[r.Id] = r
	return nil
}

func (s *memStore) Get(_ context.Context, id string) (*api.Report, error) {
	if s.errGet != nil {
		return nil, s.errGet
	}
	r, ok := s.data[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *memStore) List(_ context.Context) ([]api.Report, error) {
	if s.errList != nil {
		return nil, s.errList
	}
	out := make([]api.Report, 0, len(s.data))
	for _, r := range s.data {
		out = append(out, r)
	}
	return out, nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	if s.errDelete != nil {
		return s.errDelete
	}
	delete(s.data, id)
	return nil
}

// ─── Fixtures ─────────────────────────────────────────────────────────────────

func seededFake() *github.InMem {
	fake := github.NewInMem()
	fake.SetMetadata(owner, repo, analysis.RepoMetadata{
		Owner:       owner,
		Name:        repo,
		FullName:    owner + "/" + repo,
		HTMLURL:     "https://github.com/acme/widget",
		Description: "widget factory",
		Language:    "Python",
		Stars:       42,
		Forks:       7,
	})
	fake.SetFile(owner, repo, "a.py", "print(1)\n")
	fake.SetFile(owner, repo, "vendor/b.py", "print(2)\n")
	return fake
}

func newService(fake *github.InMem, store analysis.ReportStore) *analysis.Service {
	cfg := analysis.Config{Rules: analysis.DefaultRules(), Limits: analysis.DefaultLimits()}
	return analysis.NewService(fake, fake, store, cfg, discardLogger())
}

// ─── Analyze ─────────────────────────────────────────────────────────────────

func TestAnalyze_HappyPath(t *testing.T) {
	store := newMemStore()
	svc := newService(seededFake(), store)

	report, err := svc.Analyze(context.Background(), "acme/widget")
	require.NoError(t, err)

	assert.NotEmpty(t, report.Id)
	assert.Equal(t, "acme/widget", report.Repo)
	assert.Equal(t, "https://github.com/acme/widget", report.Url)
	assert.Equal(t, "widget", report.Name)
	assert.Equal(t, 42, report.Stars)
	assert.Equal(t, 7, report.Forks)
	assert.Equal(t, "Python", report.Language)
	assert.Equal(t, 9, report.TotalCharacters)
	assert.Equal(t, 1, report.TotalLines)
	assert.Equal(t, 1, report.FilesSeen)
	assert.False(t, report.StoppedEarly)
	assert.True(t, report.MeetsBudget)
	assert.Contains(t, report.Comment, "fits within")
	assert.False(t, report.CreatedAt.IsZero())

	// Persisted as a single row.
	require.Len(t, store.data, 1)
	assert.Equal(t, *report, store.data[report.Id])
}

func TestAnalyze_AcceptsFullURL(t *testing.T) {
	svc := newService(seededFake(), newMemStore())

	report, err := svc.Analyze(context.Background(), "https://github.com/acme/widget.git")
	require.NoError(t, err)
	assert.Equal(t, "acme/widget", report.Repo)
}

func TestAnalyze_InvalidIdentifier(t *testing.T) {
	store := newMemStore()
	svc := newService(seededFake(), store)

	_, err := svc.Analyze(context.Background(), "not a repo")

	var invalid analysis.InvalidRepoError
	require.ErrorAs(t, err, &invalid)
	assert.Empty(t, store.data, "nothing is recorded on input errors")
}

func TestAnalyze_MetadataFailureIsTerminal(t *testing.T) {
	fake := github.NewInMem() // no metadata seeded
	fake.SetFile(owner, repo, "a.py", "print(1)\n")
	store := newMemStore()
	svc := newService(fake, store)

	_, err := svc.Analyze(context.Background(), "acme/widget")

	var me analysis.MetadataError
	require.ErrorAs(t, err, &me)
	assert.Empty(t, store.data, "nothing is recorded when metadata lookup fails")
}

func TestAnalyze_UnreadableRootYieldsEmptyReport(t *testing.T) {
	fake := seededFake()
	fake.FailList(owner, repo, "", &analysis.TransientError{Op: "list contents", Err: errors.New("502")})
	svc := newService(fake, newMemStore())

	report, err := svc.Analyze(context.Background(), "acme/widget")
	require.NoError(t, err)

	assert.Zero(t, report.TotalCharacters)
	assert.Zero(t, report.TotalLines)
	assert.False(t, report.StoppedEarly)
	assert.True(t, report.MeetsBudget, "an empty measurement that completed still meets the budget")
}

func TestAnalyze_StoppedEarlyComment(t *testing.T) {
	fake := seededFake()
	fake.SetFile(owner, repo, "b.py", "print(3)\n")
	store := newMemStore()

	cfg := analysis.Config{Rules: analysis.DefaultRules(), Limits: analysis.DefaultLimits()}
	cfg.Limits.MaxFiles = 1
	svc := analysis.NewService(fake, fake, store, cfg, discardLogger())

	report, err := svc.Analyze(context.Background(), "acme/widget")
	require.NoError(t, err)

	assert.True(t, report.StoppedEarly)
	assert.False(t, report.MeetsBudget)
	assert.Contains(t, report.Comment, "stopped early")
}

func TestAnalyze_SaveFailurePropagates(t *testing.T) {
	store := newMemStore()
	store.errSave = errors.New("pg down")
	svc := newService(seededFake(), store)

	_, err := svc.Analyze(context.Background(), "acme/widget")
	assert.ErrorContains(t, err, "save report")
}

// ─── Report lookups ──────────────────────────────────────────────────────────

func TestGet_NotFound(t *testing.T) {
	svc := newService(seededFake(), newMemStore())

	_, err := svc.Get(context.Background(), "missing")

	var nf analysis.ReportNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "missing", nf.Id)
}

func TestListAndDelete(t *testing.T) {
	store := newMemStore()
	svc := newService(seededFake(), store)

	report, err := svc.Analyze(context.Background(), "acme/widget")
	require.NoError(t, err)

	reports, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, reports, 1)

	require.NoError(t, svc.Delete(context.Background(), report.Id))
	reports, err = svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, reports)
}
