package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skillstash/skillstash/pkg/config"
	"github.com/skillstash/skillstash/pkg/github"
	"github.com/skillstash/skillstash/pkg/logger"
	"github.com/skillstash/skillstash/pkg/policy"
	"github.com/skillstash/skillstash/pkg/presenter"
)

type RunConfig struct {
	Role     string
	Agent    string
	IssueURL string
	DryRun   bool
}

func NewRunConfig() *RunConfig {
	return &RunConfig{}
}

func (c *RunConfig) Validate() error {
	if _, ok := config.ParseRole(c.Role); !ok {
		return errors.Errorf("unknown role: %q, expected one of research, author, review", c.Role)
	}
	return nil
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one pipeline step for an issue",
	Long: `Run one pipeline step (research, author, or review) for an issue. The
effective policy is resolved from the issue's labels first: a step the
policy skips exits cleanly without invoking the agent.

The agent itself is an external command; its non-zero exit fails the step.

Examples:
  skillstash run --role research --issue-url https://github.com/acme/skills/issues/42
  skillstash run --role review --agent codex --issue-url ... --dry-run`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigCh
			presenter.Warning("Cancellation requested, shutting down...")
			cancel()
		}()

		cfg := loadStashConfig(cmd)
		rc := getRunConfigFromFlags(cmd)

		if err := rc.Validate(); err != nil {
			presenter.Error(err, "Configuration validation failed")
			os.Exit(1)
		}
		role, _ := config.ParseRole(rc.Role)

		var labels policy.LabelSet
		var issue *github.Issue
		if rc.IssueURL != "" {
			client := github.NewClient(ctx, githubToken())
			fetched, err := client.FetchIssue(ctx, rc.IssueURL)
			if err != nil {
				presenter.Error(err, "Failed to fetch issue")
				os.Exit(1)
			}
			issue = fetched
			labels = policy.NewLabelSet(issue.Labels...)
		}

		resolved := policy.Resolve(labels, cfg)
		if skip, reason := stepSkipped(role, resolved); skip {
			presenter.Info(reason)
			return
		}

		agent := policy.ResolveAgent(cfg, role, rc.Agent)
		prompt := stepPrompt(role, resolved, issue)

		if rc.DryRun {
			presenter.Info(fmt.Sprintf("Would run %s step with agent %s", role, agent))
			return
		}

		// The agent commits and opens PRs through git and gh, so both are
		// checked before it starts.
		if err := github.CheckPrerequisites(); err != nil {
			presenter.Error(err, "Missing prerequisites")
			os.Exit(1)
		}

		logger.G(ctx).WithFields(map[string]interface{}{
			"role":  role,
			"agent": agent,
		}).Info("Invoking agent")

		agentCmd := exec.CommandContext(ctx, string(agent), "-p", prompt)
		agentCmd.Stdout = os.Stdout
		agentCmd.Stderr = os.Stderr
		if err := agentCmd.Run(); err != nil {
			presenter.Error(errors.Wrapf(err, "%s step failed", role), "Agent invocation failed")
			os.Exit(1)
		}

		presenter.Success(fmt.Sprintf("%s step completed", role))
	},
}

func init() {
	runCmd.Flags().StringP("role", "r", "", "Pipeline role to run (research, author, review)")
	runCmd.Flags().StringP("agent", "a", "", "Agent override for this step")
	runCmd.Flags().String("issue-url", "", "GitHub issue URL driving this step")
	runCmd.Flags().Bool("dry-run", false, "Resolve the decision without invoking the agent")
	runCmd.MarkFlagRequired("role")
	rootCmd.AddCommand(runCmd)
}

func getRunConfigFromFlags(cmd *cobra.Command) *RunConfig {
	rc := NewRunConfig()
	if role, err := cmd.Flags().GetString("role"); err == nil {
		rc.Role = role
	}
	if agent, err := cmd.Flags().GetString("agent"); err == nil {
		rc.Agent = agent
	}
	if issueURL, err := cmd.Flags().GetString("issue-url"); err == nil {
		rc.IssueURL = issueURL
	}
	if dryRun, err := cmd.Flags().GetBool("dry-run"); err == nil {
		rc.DryRun = dryRun
	}
	return rc
}

// stepSkipped decides whether the resolved policy turns this step into a
// no-op.
func stepSkipped(role config.Role, resolved policy.ResolvedPolicy) (bool, string) {
	switch role {
	case config.RoleResearch:
		if resolved.Research == config.ResearchNone {
			return true, "Research step skipped: resolved research depth is none"
		}
	case config.RoleReview:
		if resolved.Review == config.ReviewSkip {
			return true, "Review step skipped: resolved review mode is skip"
		}
	}
	return false, ""
}

// stepPrompt builds the instruction handed to the agent for this step.
func stepPrompt(role config.Role, resolved policy.ResolvedPolicy, issue *github.Issue) string {
	subject := "the requested skill"
	if issue != nil {
		subject = fmt.Sprintf("the skill requested in issue #%d (%s)", issue.Number, issue.Title)
	}

	switch role {
	case config.RoleResearch:
		return fmt.Sprintf("Research background material for %s. Research depth: %s.", subject, resolved.Research)
	case config.RoleAuthor:
		return fmt.Sprintf("Author the SKILL.md package for %s using `skillstash new`.", subject)
	default:
		return fmt.Sprintf("Review the authored skill package for %s for accuracy and completeness.", subject)
	}
}
