package main

import (
	"fmt"
	"strings"
)

// seedRepos loads fixture repositories that exercise the analyzer's edge
// cases: a repo that fits the budget, one padded well past it, one whose
// interesting content hides behind skip-listed directories, and one with an
// oversized blob.
func seedRepos(s *store) {
	seedTinyRepo(s)
	seedOverBudgetRepo(s)
	seedVendoredRepo(s)
	seedOversizedBlobRepo(s)
}

func seedTinyRepo(s *store) {
	key := "acme/tiny"
	s.addRepo(key, RepoInfo{
		Name:            "tiny",
		FullName:        key,
		HTMLURL:         "http://localhost:9090/repos/acme/tiny",
		Description:     "A toy script collection",
		Language:        "Python",
		StargazersCount: 12,
		ForksCount:      1,
	})
	s.addFile(key, "main.py", "print(\"hello\")\n")
	s.addFile(key, "util/helpers.py", "def add(a, b):\n    return a + b\n")
	s.addFile(key, "README.md", "# tiny\n\nA toy repo.\n")
}

func seedOverBudgetRepo(s *store) {
	key := "acme/megalith"
	s.addRepo(key, RepoInfo{
		Name:            "megalith",
		FullName:        key,
		HTMLURL:         "http://localhost:9090/repos/acme/megalith",
		Description:     "Everything and the kitchen sink",
		Language:        "Java",
		StargazersCount: 3400,
		ForksCount:      210,
	})

	// ~150k characters spread over 30 files, comfortably past the default
	// 100k budget.
	body := strings.Repeat("public void handle() {\n    dispatch();\n}\n", 125)
	for i := 0; i < 30; i++ {
		s.addFile(key, fmt.Sprintf("src/main/java/Handler%02d.java", i), body)
	}
}

func seedVendoredRepo(s *store) {
	key := "acme/shrinkwrap"
	s.addRepo(key, RepoInfo{
		Name:            "shrinkwrap",
		FullName:        key,
		HTMLURL:         "http://localhost:9090/repos/acme/shrinkwrap",
		Description:     "Small app, huge vendored tree",
		Language:        "JavaScript",
		StargazersCount: 87,
		ForksCount:      9,
	})

	s.addFile(key, "index.js", "const app = require('./app');\napp.listen(3000);\n")
	s.addFile(key, "app.js", "module.exports = { listen() {} };\n")

	// The bulk of the repo lives under node_modules and dist, which the
	// analyzer's skip list should never descend into.
	filler := strings.Repeat("module.exports = function () { return 42; };\n", 500)
	for i := 0; i < 20; i++ {
		s.addFile(key, fmt.Sprintf("node_modules/dep%02d/index.js", i), filler)
	}
	s.addFile(key, "dist/bundle.js", filler)
}

func seedOversizedBlobRepo(s *store) {
	key := "acme/blob"
	s.addRepo(key, RepoInfo{
		Name:            "blob",
		FullName:        key,
		HTMLURL:         "http://localhost:9090/repos/acme/blob",
		Description:     "One generated file dwarfs the source",
		Language:        "Go",
		StargazersCount: 5,
		ForksCount:      0,
	})

	s.addFile(key, "main.go", "package main\n\nfunc main() {}\n")
	// Reported as 2 MB so the analyzer skips the fetch entirely.
	s.addFileWithSize(key, "generated/schema.go", "package generated\n", 2_000_000)
}
