package analysis

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules holds the static skip/extension filters applied during traversal.
type Rules struct {
	// SkipFragments are matched as case-sensitive SUBSTRINGS of the full
	// relative path, not as exact segments: "test" also skips src/testing/.
	// See ShouldSkip.
	SkipFragments []string `yaml:"skipFragments"`
	// CodeExtensions are matched against the lowercased file name.
	CodeExtensions []string `yaml:"codeExtensions"`
}

// Limits bounds one analysis run.
type Limits struct {
	// MaxFiles is the global ceiling on file entries examined across the
	// whole tree. Exceeding it sets StoppedEarly.
	MaxFiles int `yaml:"maxFiles"`
	// MaxFileSize excludes files above this many bytes from fetching;
	// they still count toward MaxFiles.
	MaxFileSize int64 `yaml:"maxFileSize"`
	// MaxDepth guards the recursion against pathologically deep remote
	// trees. Directories at the cap are treated as unreadable.
	MaxDepth int `yaml:"maxDepth"`
	// CharBudget is the character total a repository must fit within.
	CharBudget int `yaml:"charBudget"`
}

// DefaultRules returns the built-in filter sets.
func DefaultRules() Rules {
	return Rules{
		SkipFragments: []string{
			"node_modules", ".git", "dist", "build", "vendor",
			".github", "examples", "docs", "test", "tests",
		},
		CodeExtensions: []string{
			".js", ".ts", ".jsx", ".tsx", ".py", ".java", ".c", ".cpp",
			".h", ".cs", ".php", ".rb", ".go", ".swift", ".kt", ".rs",
			".dart", ".html", ".css", ".scss", ".less", ".json", ".yml",
			".yaml", ".xml", ".sh", ".md",
		},
	}
}

// DefaultLimits returns the built-in traversal limits.
func DefaultLimits() Limits {
	return Limits{
		MaxFiles:    500,
		MaxFileSize: 500000,
		MaxDepth:    64,
		CharBudget:  100000,
	}
}

// Config is the optional YAML rules file. Omitted fields keep their defaults.
type Config struct {
	Rules  Rules  `yaml:"rules"`
	Limits Limits `yaml:"limits"`
}

// LoadConfig reads a YAML rules file and merges it over the defaults.
// An empty path returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := Config{Rules: DefaultRules(), Limits: DefaultLimits()}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read rules file: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("parse rules file %s: %w", path, err)
	}

	if len(file.Rules.SkipFragments) > 0 {
		cfg.Rules.SkipFragments = file.Rules.SkipFragments
	}
	if len(file.Rules.CodeExtensions) > 0 {
		cfg.Rules.CodeExtensions = file.Rules.CodeExtensions
	}
	if file.Limits.MaxFiles > 0 {
		cfg.Limits.MaxFiles = file.Limits.MaxFiles
	}
	if file.Limits.MaxFileSize > 0 {
		cfg.Limits.MaxFileSize = file.Limits.MaxFileSize
	}
	if file.Limits.MaxDepth > 0 {
		cfg.Limits.MaxDepth = file.Limits.MaxDepth
	}
	if file.Limits.CharBudget > 0 {
		cfg.Limits.CharBudget = file.Limits.CharBudget
	}
	return cfg, nil
}
