package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/repofit/repofit/internal/analysis"
	"github.com/repofit/repofit/pkg/api"
)

// Compile-time check: *PGReportStore implements analysis.ReportStore.
var _ analysis.ReportStore = (*PGReportStore)(nil)

// PGReportStore implements ReportStore using PostgreSQL.
type PGReportStore struct {
	pool *pgxpool.Pool
}

// NewPGReportStore creates a new PGReportStore.
func NewPGReportStore(pool *pgxpool.Pool) *PGReportStore {
	return &PGReportStore{pool: pool}
}

const reportColumns = `id, repo, url, name, stars, forks, description, language,
	total_characters, total_lines, files_seen, stopped_early,
	meets_budget, char_budget, comment, created_at`

// Save upserts a report by ID.
func (s *PGReportStore) Save(ctx context.Context, r api.Report) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO reports (id, repo, url, name, stars, forks, description, language,
			total_characters, total_lines, files_seen, stopped_early,
			meets_budget, char_budget, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			repo             = EXCLUDED.repo,
			url              = EXCLUDED.url,
			name             = EXCLUDED.name,
			stars            = EXCLUDED.stars,
			forks            = EXCLUDED.forks,
			description      = EXCLUDED.description,
			language         = EXCLUDED.language,
			total_characters = EXCLUDED.total_characters,
			total_lines      = EXCLUDED.total_lines,
			files_seen       = EXCLUDED.files_seen,
			stopped_early    = EXCLUDED.stopped_early,
			meets_budget     = EXCLUDED.meets_budget,
			char_budget      = EXCLUDED.char_budget,
			comment          = EXCLUDED.comment`,
		r.Id, r.Repo, r.Url, r.Name, r.Stars, r.Forks, r.Description, r.Language,
		r.TotalCharacters, r.TotalLines, r.FilesSeen, r.StoppedEarly,
		r.MeetsBudget, r.CharBudget, r.Comment, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save report %q: %w", r.Id, err)
	}
	return nil
}

// Get retrieves a report by ID. Returns nil, nil if not found.
func (s *PGReportStore) Get(ctx context.Context, id string) (*api.Report, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+reportColumns+` FROM reports WHERE id = $1`, id)
	return scanReport(row)
}

// List returns all reports ordered by creation time.
func (s *PGReportStore) List(ctx context.Context) ([]api.Report, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+reportColumns+` FROM reports ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var reports []api.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan reports: %w", err)
	}
	return reports, nil
}

// Delete removes a report by ID. Deleting a missing report is a no-op.
func (s *PGReportStore) Delete(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete report %q: %w", id, err)
	}
	return nil
}

// pgScanner is implemented by both *pgxpool.Row and pgx.Rows.
type pgScanner interface {
	Scan(dest ...any) error
}

func scanReport(row pgScanner) (*api.Report, error) {
	var r api.Report
	err := row.Scan(&r.Id, &r.Repo, &r.Url, &r.Name, &r.Stars, &r.Forks,
		&r.Description, &r.Language,
		&r.TotalCharacters, &r.TotalLines, &r.FilesSeen, &r.StoppedEarly,
		&r.MeetsBudget, &r.CharBudget, &r.Comment, &r.CreatedAt)
	if err != nil {
		if err.Error() == "no rows in result set" {
			return nil, nil //nolint:nilnil
		}
		return nil, fmt.Errorf("scan report: %w", err)
	}
	return &r, nil
}
