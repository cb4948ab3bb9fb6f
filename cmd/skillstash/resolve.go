package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillstash/skillstash/pkg/config"
	"github.com/skillstash/skillstash/pkg/github"
	"github.com/skillstash/skillstash/pkg/policy"
	"github.com/skillstash/skillstash/pkg/presenter"
)

type ResolveConfig struct {
	Labels   []string
	IssueURL string
	JSON     bool
}

func NewResolveConfig() *ResolveConfig {
	return &ResolveConfig{}
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the effective automation policy for a label set",
	Long: `Resolve the effective policy (review mode, research depth, auto-merge
eligibility, per-role agents) by applying label overrides on top of the
configured defaults.

Labels come from --labels, or from the issue itself with --issue-url.

Examples:
  skillstash resolve --labels review:required,research:deep
  skillstash resolve --issue-url https://github.com/acme/skills/issues/42 --json`,
	Run: func(cmd *cobra.Command, _ []string) {
		cfg := loadStashConfig(cmd)
		rc := getResolveConfigFromFlags(cmd)

		labelNames := rc.Labels
		if rc.IssueURL != "" {
			client := github.NewClient(cmd.Context(), githubToken())
			issue, err := client.FetchIssue(cmd.Context(), rc.IssueURL)
			if err != nil {
				presenter.Error(err, "Failed to fetch issue")
				os.Exit(1)
			}
			labelNames = issue.Labels
		}

		resolved := policy.Resolve(policy.NewLabelSet(labelNames...), cfg)

		if rc.JSON {
			out, err := json.MarshalIndent(resolved, "", "  ")
			if err != nil {
				presenter.Error(err, "Failed to encode policy")
				os.Exit(1)
			}
			fmt.Println(string(out))
			return
		}

		printResolvedPolicy(resolved)
	},
}

func init() {
	resolveCmd.Flags().StringSliceP("labels", "l", nil, "Labels attached to the issue or PR (comma separated)")
	resolveCmd.Flags().String("issue-url", "", "GitHub issue URL to read labels from")
	resolveCmd.Flags().Bool("json", false, "Emit the resolved policy as JSON")
	rootCmd.AddCommand(resolveCmd)
}

func getResolveConfigFromFlags(cmd *cobra.Command) *ResolveConfig {
	rc := NewResolveConfig()
	if labels, err := cmd.Flags().GetStringSlice("labels"); err == nil {
		rc.Labels = labels
	}
	if issueURL, err := cmd.Flags().GetString("issue-url"); err == nil {
		rc.IssueURL = issueURL
	}
	if jsonOut, err := cmd.Flags().GetBool("json"); err == nil {
		rc.JSON = jsonOut
	}
	return rc
}

func printResolvedPolicy(resolved policy.ResolvedPolicy) {
	presenter.Section("Resolved policy")
	presenter.Info(fmt.Sprintf("Review:          %s", resolved.Review))
	presenter.Info(fmt.Sprintf("Research:        %s", resolved.Research))
	presenter.Info(fmt.Sprintf("Auto-merge:      %t", resolved.AutoMerge))
	presenter.Info(fmt.Sprintf("Skip validation: %t", resolved.SkipValidation))
	for _, role := range config.Roles {
		presenter.Info(fmt.Sprintf("Agent (%s): %s", role, resolved.Agents[role]))
	}
}
