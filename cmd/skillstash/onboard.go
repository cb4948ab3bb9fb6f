package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/skillstash/skillstash/pkg/gha"
	"github.com/skillstash/skillstash/pkg/github"
	"github.com/skillstash/skillstash/pkg/policy"
	"github.com/skillstash/skillstash/pkg/presenter"
)

const defaultWorkflowPath = ".github/workflows/skill-stash.yaml"

type OnboardConfig struct {
	Output string
}

func NewOnboardConfig() *OnboardConfig {
	return &OnboardConfig{Output: defaultWorkflowPath}
}

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Write the GitHub Actions pipeline workflow for this repository",
	Long: `Render the skill pipeline workflow from the current configuration and
write it into the repository. The rendered workflow reflects the resolved
pipeline steps, the default auto-merge eligibility, and the credential path
selected for GitHub write operations.

The App token is read from STASH_APP_TOKEN; when absent, the workflow falls
back to the built-in token.

Examples:
  skillstash onboard
  skillstash onboard --output -`,
	Run: func(cmd *cobra.Command, _ []string) {
		cfg := loadStashConfig(cmd)
		oc := getOnboardConfigFromFlags(cmd)

		mode := github.ResolveAutomationMode(cfg, os.Getenv("STASH_APP_TOKEN"))

		rendered, err := gha.RenderPipelineWorkflow(gha.WorkflowTemplateData{
			Steps:       policy.ResolveWorkflow(cfg),
			UseAppToken: mode == github.ModeApp,
			AutoMerge:   policy.ShouldAutoMerge(policy.NewLabelSet(), cfg),
			SkillsDir:   getSkillsDir(cmd),
		})
		if err != nil {
			presenter.Error(err, "Failed to render workflow")
			os.Exit(1)
		}

		if oc.Output == "-" {
			fmt.Print(rendered)
			return
		}

		if err := os.MkdirAll(filepath.Dir(oc.Output), 0o755); err != nil {
			presenter.Error(err, "Failed to create workflow directory")
			os.Exit(1)
		}
		if err := os.WriteFile(oc.Output, []byte(rendered), 0o644); err != nil {
			presenter.Error(err, "Failed to write workflow file")
			os.Exit(1)
		}

		presenter.Success(fmt.Sprintf("Wrote pipeline workflow to %s (token: %s)", oc.Output, mode))
	},
}

func init() {
	defaults := NewOnboardConfig()
	onboardCmd.Flags().StringP("output", "o", defaults.Output, "Workflow output path, or - for stdout")
	rootCmd.AddCommand(onboardCmd)
}

func getOnboardConfigFromFlags(cmd *cobra.Command) *OnboardConfig {
	oc := NewOnboardConfig()
	if output, err := cmd.Flags().GetString("output"); err == nil && output != "" {
		oc.Output = output
	}
	return oc
}
