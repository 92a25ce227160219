package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/repofit/repofit/pkg/api"
)

// Service is the application-level use-case orchestrator for analyses.
// It depends only on port interfaces — no framework imports.
type Service struct {
	fetcher ContentFetcher
	meta    MetadataFetcher
	store   ReportStore
	rules   Rules
	limits  Limits
	log     *slog.Logger

	analyses  metric.Int64Counter
	filesSeen metric.Int64Counter
}

// NewService creates a Service.
func NewService(fetcher ContentFetcher, meta MetadataFetcher, store ReportStore, cfg Config, log *slog.Logger) *Service {
	meter := otel.Meter("github.com/repofit/repofit/internal/analysis")
	analyses, _ := meter.Int64Counter("repofit.analyses",
		metric.WithDescription("Completed repository analyses."))
	filesSeen, _ := meter.Int64Counter("repofit.files.seen",
		metric.WithDescription("Files counted toward the ceiling across all analyses."))

	return &Service{
		fetcher:   fetcher,
		meta:      meta,
		store:     store,
		rules:     cfg.Rules,
		limits:    cfg.Limits,
		log:       log,
		analyses:  analyses,
		filesSeen: filesSeen,
	}
}

// Analyze runs one synchronous analysis of the identified repository and
// persists the resulting report.
//
// Only two failures are terminal: a malformed identifier and a failed
// metadata lookup. Every per-node traversal failure is absorbed by the
// aggregator and shows up at most as reduced totals plus a log line.
func (s *Service) Analyze(ctx context.Context, identifier string) (*api.Report, error) {
	ref, err := ParseRepo(identifier)
	if err != nil {
		return nil, err
	}

	md, err := s.meta.GetMetadata(ctx, ref.Owner, ref.Name)
	if err != nil {
		return nil, MetadataError{Repo: ref.String(), Err: err}
	}

	s.log.Info("starting analysis", "repo", ref.String(),
		"charBudget", s.limits.CharBudget, "maxFiles", s.limits.MaxFiles)

	root, err := s.fetcher.ListContents(ctx, ref.Owner, ref.Name, "")
	if err != nil {
		// An unreadable root degrades to an empty tree, same as any other
		// directory.
		s.log.Warn("list root contents failed, treating repository as empty",
			"repo", ref.String(), "error", err)
		root = nil
	}

	state := &TraversalState{}
	agg := NewAggregator(s.fetcher, s.rules, s.limits, s.log)
	usage := agg.Aggregate(ctx, ref.Owner, ref.Name, root, state)

	report := s.buildReport(ref, md, usage, state)
	if err := s.store.Save(ctx, *report); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}

	s.analyses.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("meets_budget", report.MeetsBudget),
		attribute.Bool("stopped_early", report.StoppedEarly),
	))
	s.filesSeen.Add(ctx, int64(state.FilesSeen))
	s.log.Info("analysis complete", "repo", ref.String(),
		"totalCharacters", report.TotalCharacters, "totalLines", report.TotalLines,
		"filesSeen", report.FilesSeen, "stoppedEarly", report.StoppedEarly,
		"meetsBudget", report.MeetsBudget)

	return report, nil
}

func (s *Service) buildReport(ref RepoRef, md *RepoMetadata, u Usage, state *TraversalState) *api.Report {
	meets := MeetsBudget(u, s.limits.CharBudget)

	var comment string
	switch {
	case u.StoppedEarly:
		comment = fmt.Sprintf("stopped early after %d files; totals are partial", state.FilesSeen)
	case meets:
		comment = fmt.Sprintf("fits within the %d character budget", s.limits.CharBudget)
	default:
		comment = fmt.Sprintf("exceeds the budget by %d characters", u.TotalCharacters-s.limits.CharBudget)
	}

	return &api.Report{
		Id:              uuid.New().String(),
		Repo:            ref.String(),
		Url:             md.HTMLURL,
		Name:            md.Name,
		Stars:           md.Stars,
		Forks:           md.Forks,
		Description:     md.Description,
		Language:        md.Language,
		TotalCharacters: u.TotalCharacters,
		TotalLines:      u.TotalLines,
		FilesSeen:       state.FilesSeen,
		StoppedEarly:    u.StoppedEarly,
		MeetsBudget:     meets,
		CharBudget:      s.limits.CharBudget,
		Comment:         comment,
		CreatedAt:       time.Now().UTC(),
	}
}

// List returns all persisted reports.
func (s *Service) List(ctx context.Context) ([]api.Report, error) {
	reports, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// Get returns a report by ID, or ReportNotFoundError.
func (s *Service) Get(ctx context.Context, id string) (*api.Report, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get report %q: %w", id, err)
	}
	if r == nil {
		return nil, ReportNotFoundError{Id: id}
	}
	return r, nil
}

// Delete removes a report by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete report %q: %w", id, err)
	}
	return nil
}
