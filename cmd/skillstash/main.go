package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skillstash/skillstash/pkg/config"
	"github.com/skillstash/skillstash/pkg/logger"
	"github.com/skillstash/skillstash/pkg/presenter"
)

func init() {
	viper.SetEnvPrefix("SKILLSTASH")
	viper.AutomaticEnv()
}

var rootCmd = &cobra.Command{
	Use:   "skillstash",
	Short: "Manage agent skill packages and their GitHub automation",
	Long: `Skillstash manages a repository of agent skill packages: Markdown
documents with YAML frontmatter describing one reusable agent capability.

It resolves the automation policy for issues and pull requests from
configured defaults and label overrides, synthesizes new skill documents
from issue-form input, validates skill packages against the configured
structural rules, and renders the CI pipeline that ties it all together.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if level, err := cmd.Flags().GetString("log-level"); err == nil && level != "" {
			if err := logger.SetLogLevel(level); err != nil {
				return err
			}
		}
		if format, err := cmd.Flags().GetString("log-format"); err == nil {
			logger.SetLogFormat(format)
		}
		if quiet, err := cmd.Flags().GetBool("quiet"); err == nil {
			presenter.SetQuiet(quiet)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

// loadStashConfig loads the stash configuration from the configured root.
// Loading is total, so commands never fail here.
func loadStashConfig(cmd *cobra.Command) *config.StashConfig {
	root := "."
	if flagRoot, err := cmd.Flags().GetString("config-root"); err == nil && flagRoot != "" {
		root = flagRoot
	}
	return config.Load(root)
}

func getSkillsDir(cmd *cobra.Command) string {
	if dir, err := cmd.Flags().GetString("skills-dir"); err == nil && dir != "" {
		return dir
	}
	return "skills"
}

// githubToken returns the token for read-side API access, if any.
func githubToken() string {
	if token := os.Getenv("SKILLSTASH_GITHUB_TOKEN"); token != "" {
		return token
	}
	return os.Getenv("GITHUB_TOKEN")
}

func main() {
	rootCmd.PersistentFlags().String("config-root", ".", "Directory containing the stash configuration file")
	rootCmd.PersistentFlags().String("skills-dir", "skills", "Directory containing skill packages")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "fmt", "Log format (fmt, json)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-essential output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
