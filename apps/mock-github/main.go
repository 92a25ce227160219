package main

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// RepoInfo is the subset of GitHub's repository object that the analyzer reads.
type RepoInfo struct {
	Name            string `json:"name"`
	FullName        string `json:"full_name"`
	HTMLURL         string `json:"html_url"`
	Description     string `json:"description"`
	Language        string `json:"language"`
	StargazersCount int    `json:"stargazers_count"`
	ForksCount      int    `json:"forks_count"`
}

// DirEntry is a file or directory returned by the contents API directory listing.
type DirEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"` // "file" or "dir"
	Size int64  `json:"size"`
}

// store holds repository metadata and file content keyed by "owner/repo".
type store struct {
	mu    sync.RWMutex
	repos map[string]RepoInfo
	files map[string]map[string]string // repo key → path → content
	sizes map[string]map[string]int64  // reported size overrides; defaults to len(content)
}

func newStore() *store {
	return &store{
		repos: make(map[string]RepoInfo),
		files: make(map[string]map[string]string),
		sizes: make(map[string]map[string]int64),
	}
}

func (s *store) addRepo(key string, info RepoInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repos[key] = info
	if s.files[key] == nil {
		s.files[key] = make(map[string]string)
	}
}

func (s *store) addFile(key, path, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.files[key] == nil {
		s.files[key] = make(map[string]string)
	}
	s.files[key][path] = content
}

// addFileWithSize seeds a file whose reported size differs from its content
// length, mimicking a large blob without holding it in memory.
func (s *store) addFileWithSize(key, path, content string, size int64) {
	s.addFile(key, path, content)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sizes[key] == nil {
		s.sizes[key] = make(map[string]int64)
	}
	s.sizes[key][path] = size
}

func (s *store) getRepo(owner, repo string) (RepoInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info, ok := s.repos[owner+"/"+repo]
	return info, ok
}

func (s *store) getFile(owner, repo, path string) (string, int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := owner + "/" + repo
	content, ok := s.files[key][path]
	if !ok {
		return "", 0, false
	}
	size := int64(len(content))
	if override, ok := s.sizes[key][path]; ok {
		size = override
	}
	return content, size, true
}

// listDir returns the immediate children of dirPath in the repo, similar to
// GitHub's GET /repos/:owner/:repo/contents/:path when :path is a directory.
func (s *store) listDir(owner, repo, dirPath string) []DirEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := owner + "/" + repo
	files := s.files[key]
	if files == nil {
		return nil
	}

	// Build prefix for matching: "apps" → "apps/"
	prefix := dirPath
	if prefix != "" {
		prefix += "/"
	}

	seen := map[string]bool{}
	var entries []DirEntry
	for filePath, content := range files {
		if !strings.HasPrefix(filePath, prefix) {
			continue
		}
		rest := filePath[len(prefix):]
		idx := strings.Index(rest, "/")
		var name, entryType string
		var size int64
		if idx == -1 {
			name, entryType = rest, "file"
			size = int64(len(content))
			if override, ok := s.sizes[key][filePath]; ok {
				size = override
			}
		} else {
			name, entryType = rest[:idx], "dir"
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		path := name
		if dirPath != "" {
			path = dirPath + "/" + name
		}
		entries = append(entries, DirEntry{
			Name: name,
			Path: path,
			Type: entryType,
			Size: size,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

func (s *store) listRepos() []RepoInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	repos := make([]RepoInfo, 0, len(s.repos))
	for _, info := range s.repos {
		repos = append(repos, info)
	}
	sort.Slice(repos, func(i, j int) bool { return repos[i].FullName < repos[j].FullName })
	return repos
}

func (s *store) fileCount(fullName string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files[fullName])
}

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	s := newStore()

	seedRepos(s)
	log.Info("seeded repos", "repos", len(s.repos))

	r := gin.Default()
	registerHTMLRoutes(r, s)
	registerAPIRoutes(r, s, log)

	port := os.Getenv("PORT")
	if port == "" {
		port = "9090"
	}

	log.Info("mock-github starting", "port", port)
	if err := r.Run(":" + port); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func registerHTMLRoutes(r *gin.Engine, s *store) {
	r.GET("/", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, renderIndex(s))
	})
}

func registerAPIRoutes(r *gin.Engine, s *store, log *slog.Logger) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Repository metadata endpoint (GitHub-compatible shape).
	r.GET("/repos/:owner/:repo", func(c *gin.Context) {
		owner := c.Param("owner")
		repo := c.Param("repo")
		info, ok := s.getRepo(owner, repo)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{
				"message": fmt.Sprintf("repository %s/%s not found", owner, repo),
			})
			return
		}
		c.JSON(http.StatusOK, info)
	})

	// Contents endpoint (GitHub-compatible shape).
	// Returns a single file object for exact path matches, or a directory
	// listing array when the path is a directory prefix.
	r.GET("/repos/:owner/:repo/contents/*path", func(c *gin.Context) {
		owner := c.Param("owner")
		repo := c.Param("repo")
		path := strings.TrimPrefix(c.Param("path"), "/")

		// Exact file lookup.
		if content, size, ok := s.getFile(owner, repo, path); ok {
			log.Info("file fetched", "repo", owner+"/"+repo, "path", path)
			c.JSON(http.StatusOK, gin.H{
				"name":     path[strings.LastIndex(path, "/")+1:],
				"path":     path,
				"type":     "file",
				"size":     size,
				"content":  base64.StdEncoding.EncodeToString([]byte(content)),
				"encoding": "base64",
			})
			return
		}

		// Directory listing fallback. The repository root ("") is a valid
		// directory even when empty.
		if _, ok := s.getRepo(owner, repo); ok && path == "" {
			entries := s.listDir(owner, repo, "")
			if entries == nil {
				entries = []DirEntry{}
			}
			c.JSON(http.StatusOK, entries)
			return
		}
		if entries := s.listDir(owner, repo, path); len(entries) > 0 {
			c.JSON(http.StatusOK, entries)
			return
		}

		c.JSON(http.StatusNotFound, gin.H{
			"message": fmt.Sprintf("path %q not found in %s/%s", path, owner, repo),
		})
	})
}

// renderIndex lists the seeded repositories so a browser visit shows what the
// mock can serve.
func renderIndex(s *store) string {
	var rows strings.Builder
	for _, info := range s.listRepos() {
		rows.WriteString(fmt.Sprintf(`
        <tr>
          <td style="padding:12px 16px;border-bottom:1px solid #21262d;">
            <a href="/repos/%s/contents/" style="color:#58a6ff;text-decoration:none;font-weight:600;">%s</a>
          </td>
          <td style="padding:12px 16px;border-bottom:1px solid #21262d;color:#8b949e;font-size:13px;">%s</td>
          <td style="padding:12px 16px;border-bottom:1px solid #21262d;font-family:monospace;font-size:13px;color:#8b949e;">%s</td>
          <td style="padding:12px 16px;border-bottom:1px solid #21262d;font-size:13px;color:#8b949e;">%d files</td>
        </tr>`, info.FullName, info.FullName, info.Description, info.Language, s.fileCount(info.FullName)))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <title>Mock GitHub</title>
  <style>
    * { margin:0; padding:0; box-sizing:border-box; }
    body { background:#0d1117; color:#c9d1d9; font-family:-apple-system,BlinkMacSystemFont,"Segoe UI",Helvetica,Arial,sans-serif; }
  </style>
</head>
<body>
  <div style="max-width:860px;margin:0 auto;padding:32px 16px;">
    <h1 style="font-size:20px;font-weight:600;margin-bottom:24px;">Seeded repositories</h1>
    <table style="width:100%%;border-collapse:collapse;background:#161b22;border:1px solid #30363d;border-radius:6px;overflow:hidden;">
      <thead>
        <tr style="background:#161b22;">
          <th style="padding:12px 16px;text-align:left;font-size:12px;color:#8b949e;border-bottom:1px solid #21262d;font-weight:500;">Repository</th>
          <th style="padding:12px 16px;text-align:left;font-size:12px;color:#8b949e;border-bottom:1px solid #21262d;font-weight:500;">Description</th>
          <th style="padding:12px 16px;text-align:left;font-size:12px;color:#8b949e;border-bottom:1px solid #21262d;font-weight:500;">Language</th>
          <th style="padding:12px 16px;text-align:left;font-size:12px;color:#8b949e;border-bottom:1px solid #21262d;font-weight:500;">Files</th>
        </tr>
      </thead>
      <tbody>%s</tbody>
    </table>
  </div>
</body>
</html>`, rows.String())
}
