package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/repofit/repofit/internal/store"
	"github.com/repofit/repofit/internal/analysis"
	"github.com/repofit/repofit/internal/platform/github"
	"github.com/repofit/repofit/pkg/logging"
)

var (
	apiURL    string
	token     string
	budget    int
	maxFiles  int
	rulesFile string
	asJSON    bool
)

var rootCmd = &cobra.Command{
	Use:   "repofit <owner/repo | github URL>",
	Short: "Check whether a GitHub repository's code fits a character budget.",
	Long: `repofit walks a repository's tree through the GitHub contents API,
sums the characters and non-blank lines of its code files, and reports
whether the total fits within the configured character budget.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New()

		cfg, err := analysis.LoadConfig(viper.GetString("rules"))
		if err != nil {
			return fmt.Errorf("load rules: %w", err)
		}
		if viper.IsSet("budget") {
			cfg.Limits.CharBudget = viper.GetInt("budget")
		}
		if viper.IsSet("max-files") {
			cfg.Limits.MaxFiles = viper.GetInt("max-files")
		}

		gh := github.New(github.NewTokenClient(viper.GetString("token"), viper.GetString("api-url")))
		svc := analysis.NewService(gh, gh, store.NewMemReportStore(), cfg, log)

		report, err := svc.Analyze(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if asJSON {
			return json.NewEncoder(os.Stdout).Encode(report)
		}

		fmt.Printf("%s (%s)\n", report.Repo, report.Language)
		fmt.Printf("  characters: %d / %d budget\n", report.TotalCharacters, report.CharBudget)
		fmt.Printf("  lines:      %d\n", report.TotalLines)
		fmt.Printf("  files seen: %d\n", report.FilesSeen)
		if report.MeetsBudget {
			fmt.Println("  verdict:    fits")
		} else {
			fmt.Printf("  verdict:    does not fit (%s)\n", report.Comment)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().StringVar(&apiURL, "api-url", "", "GitHub API base URL (e.g. a mock server)")
	rootCmd.Flags().StringVar(&token, "token", "", "GitHub access token")
	rootCmd.Flags().IntVar(&budget, "budget", 0, "Character budget (default from rules file)")
	rootCmd.Flags().IntVar(&maxFiles, "max-files", 0, "File-count ceiling (default from rules file)")
	rootCmd.Flags().StringVar(&rulesFile, "rules", "", "Path to a YAML rules file")
	rootCmd.Flags().BoolVar(&asJSON, "json", false, "Print the full report as JSON")

	viper.BindPFlag("api-url", rootCmd.Flags().Lookup("api-url"))     //nolint:errcheck
	viper.BindPFlag("token", rootCmd.Flags().Lookup("token"))         //nolint:errcheck
	viper.BindPFlag("budget", rootCmd.Flags().Lookup("budget"))       //nolint:errcheck
	viper.BindPFlag("max-files", rootCmd.Flags().Lookup("max-files")) //nolint:errcheck
	viper.BindPFlag("rules", rootCmd.Flags().Lookup("rules"))         //nolint:errcheck
}

// initConfig reads REPOFIT_* environment variables so the same settings work
// for both flags and env (REPOFIT_TOKEN, REPOFIT_API_URL, ...).
func initConfig() {
	viper.SetEnvPrefix("REPOFIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
