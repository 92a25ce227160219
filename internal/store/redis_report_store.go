package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/repofit/repofit/internal/analysis"
	"github.com/repofit/repofit/pkg/api"
)

const (
	redisIndexKey  = "reports:index"
	redisKeyPrefix = "report:"
)

// Compile-time check: *RedisReportStore implements analysis.ReportStore.
var _ analysis.ReportStore = (*RedisReportStore)(nil)

// RedisReportStore implements ReportStore using go-redis directly.
type RedisReportStore struct {
	rdb *redis.Client
}

// NewRedisReportStore creates a new RedisReportStore.
func NewRedisReportStore(rdb *redis.Client) *RedisReportStore {
	return &RedisReportStore{rdb: rdb}
}

// Save persists a report and adds its ID to the index set.
func (s *RedisReportStore) Save(ctx context.Context, r api.Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := s.rdb.Set(ctx, redisKeyPrefix+r.Id, data, 0).Err(); err != nil {
		return fmt.Errorf("save report %q: %w", r.Id, err)
	}
	// SADD is idempotent, re-saving an existing report is fine.
	if err := s.rdb.SAdd(ctx, redisIndexKey, r.Id).Err(); err != nil {
		return fmt.Errorf("update index for %q: %w", r.Id, err)
	}
	return nil
}

// Get retrieves a report by ID, returning nil if not found.
func (s *RedisReportStore) Get(ctx context.Context, id string) (*api.Report, error) {
	val, err := s.rdb.Get(ctx, redisKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil //nolint:nilnil // caller checks nil value to detect "not found"
	}
	if err != nil {
		return nil, fmt.Errorf("get report %q: %w", id, err)
	}
	var r api.Report
	if err := json.Unmarshal([]byte(val), &r); err != nil {
		return nil, fmt.Errorf("unmarshal report %q: %w", id, err)
	}
	return &r, nil
}

// List returns all reports ordered by creation time.
func (s *RedisReportStore) List(ctx context.Context) ([]api.Report, error) {
	ids, err := s.rdb.SMembers(ctx, redisIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list index: %w", err)
	}
	result := make([]api.Report, 0, len(ids))
	for _, id := range ids {
		r, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if r != nil {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// Delete removes a report and its index entry. Missing reports are a no-op.
func (s *RedisReportStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete report %q: %w", id, err)
	}
	if err := s.rdb.SRem(ctx, redisIndexKey, id).Err(); err != nil {
		return fmt.Errorf("remove index for %q: %w", id, err)
	}
	return nil
}
