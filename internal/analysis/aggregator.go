package analysis

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// Aggregator walks a repository tree depth-first and accumulates character
// and non-blank line totals over the code files it fetches.
//
// Remote failures are absorbed, never propagated: an unreadable directory is
// treated as having no children and a failed file contributes 0/0. A single
// unreachable node must not abort the whole analysis.
type Aggregator struct {
	fetcher ContentFetcher
	rules   Rules
	limits  Limits
	log     *slog.Logger
}

// NewAggregator creates an Aggregator.
func NewAggregator(fetcher ContentFetcher, rules Rules, limits Limits, log *slog.Logger) *Aggregator {
	return &Aggregator{fetcher: fetcher, rules: rules, limits: limits, log: log}
}

// Aggregate processes one directory listing, recursing into subdirectories
// with the same shared state. Call it with the root listing and a fresh
// TraversalState; entries are processed in the order the fetcher returned
// them.
func (a *Aggregator) Aggregate(ctx context.Context, owner, repo string, entries []TreeEntry, state *TraversalState) Usage {
	return a.aggregate(ctx, owner, repo, entries, state, 0)
}

func (a *Aggregator) aggregate(ctx context.Context, owner, repo string, entries []TreeEntry, state *TraversalState, depth int) Usage {
	var u Usage

	for _, entry := range entries {
		if a.rules.ShouldSkip(entry.Path) {
			continue
		}

		switch entry.Type {
		case EntryFile:
			// The ceiling counts every non-skipped file, including ones
			// later rejected by size or extension.
			state.FilesSeen++
			if state.FilesSeen > a.limits.MaxFiles {
				a.log.Warn("file ceiling reached, stopping traversal",
					"repo", owner+"/"+repo, "maxFiles", a.limits.MaxFiles)
				u.StoppedEarly = true
				return u
			}
			if entry.Size > a.limits.MaxFileSize {
				continue
			}
			if !a.rules.IsCodeFile(entry.Name) {
				continue
			}

			content, err := a.fetcher.FetchFileContent(ctx, owner, repo, entry.Path)
			if err != nil {
				a.logFetchFailure("fetch file content", entry.Path, err)
				continue
			}
			u.TotalCharacters += len(content)
			u.TotalLines += countNonBlankLines(content)

		case EntryDir:
			if depth >= a.limits.MaxDepth {
				a.log.Warn("max depth reached, treating directory as empty",
					"path", entry.Path, "depth", depth)
				continue
			}
			children := a.listContents(ctx, owner, repo, entry.Path)
			child := a.aggregate(ctx, owner, repo, children, state, depth+1)
			u.merge(child)
			if child.StoppedEarly {
				// Propagate and stop examining further siblings. Subtrees
				// merged before this point keep their partial contribution.
				u.StoppedEarly = true
				return u
			}
		}
	}

	return u
}

// listContents lists a directory, degrading any failure to an empty listing.
func (a *Aggregator) listContents(ctx context.Context, owner, repo, path string) []TreeEntry {
	entries, err := a.fetcher.ListContents(ctx, owner, repo, path)
	if err != nil {
		a.logFetchFailure("list contents", path, err)
		return nil
	}
	return entries
}

func (a *Aggregator) logFetchFailure(op, path string, err error) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		a.log.Warn(op+": path not found, contributing nothing", "path", path)
		return
	}
	a.log.Warn(op+" failed, contributing nothing", "path", path, "error", err)
}

// countNonBlankLines counts newline-separated lines whose trimmed content is
// non-empty.
func countNonBlankLines(content string) int {
	n := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
