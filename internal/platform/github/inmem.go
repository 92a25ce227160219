package github

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/repofit/repofit/internal/analysis"
)

// Compile-time checks: *InMem implements both remote-API ports.
var (
	_ analysis.ContentFetcher  = (*InMem)(nil)
	_ analysis.MetadataFetcher = (*InMem)(nil)
)

// InMem is an in-memory stand-in for the GitHub API, used by unit tests.
// Individual paths can be made to fail to exercise the traversal's fail-soft
// policy.
type InMem struct {
	mu        sync.Mutex
	files     map[string]string // "owner/repo/path" -> content
	sizes     map[string]int64  // listing-size overrides for seeded files
	meta      map[string]*analysis.RepoMetadata
	failList  map[string]error // dir path -> error returned by ListContents
	failFetch map[string]error // file path -> error returned by FetchFileContent
}

// NewInMem creates an empty InMem fetcher.
func NewInMem() *InMem {
	return &InMem{
		files:     make(map[string]string),
		sizes:     make(map[string]int64),
		meta:      make(map[string]*analysis.RepoMetadata),
		failList:  make(map[string]error),
		failFetch: make(map[string]error),
	}
}

// SetFile seeds a file; its listed size is len(content).
func (m *InMem) SetFile(owner, repo, path, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[owner+"/"+repo+"/"+path] = content
}

// SetFileWithSize seeds a file whose directory listing reports the given
// size regardless of the content length. Used to model oversized files that
// the aggregator must never fetch.
func (m *InMem) SetFileWithSize(owner, repo, path, content string, size int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := owner + "/" + repo + "/" + path
	m.files[key] = content
	m.sizes[key] = size
}

// SetMetadata seeds the repository metadata record.
func (m *InMem) SetMetadata(owner, repo string, md analysis.RepoMetadata) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meta[owner+"/"+repo] = &md
}

// FailList makes ListContents return err for the given directory path.
func (m *InMem) FailList(owner, repo, path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failList[owner+"/"+repo+"/"+path] = err
}

// FailFetch makes FetchFileContent return err for the given file path.
func (m *InMem) FailFetch(owner, repo, path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failFetch[owner+"/"+repo+"/"+path] = err
}

// ListContents returns the immediate children of path, sorted by name.
func (m *InMem) ListContents(_ context.Context, owner, repo, path string) ([]analysis.TreeEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.failList[owner+"/"+repo+"/"+path]; ok {
		return nil, err
	}

	prefix := owner + "/" + repo + "/"
	if path != "" {
		prefix += path + "/"
	}

	seen := make(map[string]bool)
	var entries []analysis.TreeEntry
	for key, content := range m.files {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := key[len(prefix):]
		name, _, isDir := strings.Cut(rest, "/")
		if seen[name] {
			continue
		}
		seen[name] = true

		entryPath := name
		if path != "" {
			entryPath = path + "/" + name
		}
		entry := analysis.TreeEntry{Name: name, Path: entryPath, Type: analysis.EntryDir}
		if !isDir {
			entry.Type = analysis.EntryFile
			entry.Size = int64(len(content))
			if size, ok := m.sizes[key]; ok {
				entry.Size = size
			}
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// FetchFileContent returns the seeded content at path.
func (m *InMem) FetchFileContent(_ context.Context, owner, repo, path string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := owner + "/" + repo + "/" + path
	if err, ok := m.failFetch[key]; ok {
		return "", err
	}
	content, ok := m.files[key]
	if !ok {
		return "", &analysis.NotFoundError{Path: path}
	}
	return content, nil
}

// GetMetadata returns the seeded metadata for owner/repo.
func (m *InMem) GetMetadata(_ context.Context, owner, repo string) (*analysis.RepoMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	md, ok := m.meta[owner+"/"+repo]
	if !ok {
		return nil, &analysis.NotFoundError{Path: owner + "/" + repo}
	}
	copied := *md
	return &copied, nil
}
