package github

import (
	"context"
	"net/http"

	gogithub "github.com/google/go-github/v75/github"

	"github.com/repofit/repofit/internal/analysis"
)

// Compile-time checks: *Adapter implements both remote-API ports.
var (
	_ analysis.ContentFetcher  = (*Adapter)(nil)
	_ analysis.MetadataFetcher = (*Adapter)(nil)
)

// Adapter implements analysis.ContentFetcher and analysis.MetadataFetcher on
// top of the GitHub contents and repos APIs.
type Adapter struct {
	gh *gogithub.Client
}

// New creates an Adapter from an authenticated *github.Client.
func New(gh *gogithub.Client) *Adapter {
	return &Adapter{gh: gh}
}

// ListContents returns the immediate children of path. Path "" lists the
// repository root.
func (a *Adapter) ListContents(ctx context.Context, owner, repo, path string) ([]analysis.TreeEntry, error) {
	_, dir, resp, err := a.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		return nil, classify("list contents", path, resp, err)
	}
	if dir == nil {
		// path resolved to a file, not a directory
		return nil, nil
	}

	entries := make([]analysis.TreeEntry, 0, len(dir))
	for _, c := range dir {
		entries = append(entries, analysis.TreeEntry{
			Name: c.GetName(),
			Path: c.GetPath(),
			Type: analysis.EntryType(c.GetType()),
			Size: int64(c.GetSize()),
		})
	}
	return entries, nil
}

// FetchFileContent fetches the file at path and returns its decoded content.
func (a *Adapter) FetchFileContent(ctx context.Context, owner, repo, path string) (string, error) {
	fc, _, resp, err := a.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		return "", classify("fetch file content", path, resp, err)
	}
	if fc == nil {
		return "", &analysis.NotFoundError{Path: path}
	}
	content, err := fc.GetContent()
	if err != nil {
		return "", &analysis.TransientError{Op: "decode content " + path, Err: err}
	}
	return content, nil
}

// GetMetadata looks up the repository record for report annotation.
func (a *Adapter) GetMetadata(ctx context.Context, owner, repo string) (*analysis.RepoMetadata, error) {
	r, resp, err := a.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, classify("get repository", owner+"/"+repo, resp, err)
	}
	return &analysis.RepoMetadata{
		Owner:       owner,
		Name:        r.GetName(),
		FullName:    r.GetFullName(),
		HTMLURL:     r.GetHTMLURL(),
		Description: r.GetDescription(),
		Language:    r.GetLanguage(),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
	}, nil
}

// classify maps a go-github failure onto the analysis error taxonomy so the
// aggregator can tell a missing path from a transient remote failure.
func classify(op, path string, resp *gogithub.Response, err error) error {
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return &analysis.NotFoundError{Path: path}
	}
	return &analysis.TransientError{Op: op + " " + path, Err: err}
}
