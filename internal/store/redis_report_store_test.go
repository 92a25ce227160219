package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repofit/repofit/internal/store"
	"github.com/repofit/repofit/pkg/api"
)

// newStore starts a miniredis server and returns a RedisReportStore backed by it.
// The server is stopped automatically when the test ends.
func newStore(t *testing.T) *store.RedisReportStore {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return store.NewRedisReportStore(rdb)
}

var baseReport = api.Report{
	Id:              "4f2c0b66-1111-4a2a-9c55-000000000001",
	Repo:            "acme/widget",
	Url:             "https://github.com/acme/widget",
	Name:            "widget",
	Stars:           42,
	Forks:           7,
	Language:        "Go",
	TotalCharacters: 1234,
	TotalLines:      56,
	FilesSeen:       9,
	MeetsBudget:     true,
	CharBudget:      100000,
	Comment:         "fits within the 100000 character budget",
	CreatedAt:       time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
}

// ─── Save / Get roundtrip ────────────────────────────────────────────────────

func TestSaveGet_Roundtrip(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Save(context.Background(), baseReport))

	got, err := s.Get(context.Background(), baseReport.Id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, baseReport, *got)
}

func TestGet_NotFound_ReturnsNil(t *testing.T) {
	s := newStore(t)

	got, err := s.Get(context.Background(), "nonexistent")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSave_Twice_Overwrites(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save(context.Background(), baseReport))

	updated := baseReport
	updated.TotalCharacters = 99999
	updated.Comment = "re-analyzed"
	require.NoError(t, s.Save(context.Background(), updated))

	got, err := s.Get(context.Background(), baseReport.Id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 99999, got.TotalCharacters)

	all, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

// ─── List ────────────────────────────────────────────────────────────────────

func TestList_Empty(t *testing.T) {
	s := newStore(t)

	all, err := s.List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestList_OrderedByCreatedAt(t *testing.T) {
	s := newStore(t)

	newer := baseReport
	newer.Id = "4f2c0b66-1111-4a2a-9c55-000000000002"
	newer.Repo = "acme/gadget"
	newer.CreatedAt = baseReport.CreatedAt.Add(time.Hour)

	require.NoError(t, s.Save(context.Background(), newer))
	require.NoError(t, s.Save(context.Background(), baseReport))

	all, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "acme/widget", all[0].Repo)
	assert.Equal(t, "acme/gadget", all[1].Repo)
}

// ─── Delete ──────────────────────────────────────────────────────────────────

func TestDelete_RemovesReportAndIndexEntry(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save(context.Background(), baseReport))

	require.NoError(t, s.Delete(context.Background(), baseReport.Id))

	got, err := s.Get(context.Background(), baseReport.Id)
	require.NoError(t, err)
	assert.Nil(t, got)

	all, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDelete_Missing_IsNoOp(t *testing.T) {
	s := newStore(t)

	assert.NoError(t, s.Delete(context.Background(), "nonexistent"))
}
