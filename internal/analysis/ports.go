package analysis

import (
	"context"

	"github.com/repofit/repofit/pkg/api"
)

// ContentFetcher is the port the aggregator depends on to read a repository
// tree from a source-hosting API. Adapters distinguish missing paths
// (*NotFoundError) from transport and non-success failures (*TransientError);
// the aggregator treats every variant as "contribute nothing, continue".
type ContentFetcher interface {
	// ListContents returns the immediate children of path. Path "" is the
	// repository root.
	ListContents(ctx context.Context, owner, repo, path string) ([]TreeEntry, error)
	// FetchFileContent returns the decoded content of the file at path.
	FetchFileContent(ctx context.Context, owner, repo, path string) (string, error)
}

// MetadataFetcher looks up repository metadata for report annotation.
// Consumed once per run, before traversal.
type MetadataFetcher interface {
	GetMetadata(ctx context.Context, owner, repo string) (*RepoMetadata, error)
}

// ReportStore is the report sink: each completed analysis is persisted as
// one row.
type ReportStore interface {
	Save(ctx context.Context, r api.Report) error
	// Get returns nil, nil when the report does not exist.
	Get(ctx context.Context, id string) (*api.Report, error)
	List(ctx context.Context) ([]api.Report, error)
	Delete(ctx context.Context, id string) error
}
