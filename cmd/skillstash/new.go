package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skillstash/skillstash/pkg/github"
	"github.com/skillstash/skillstash/pkg/presenter"
	"github.com/skillstash/skillstash/pkg/skillmd"
	"github.com/skillstash/skillstash/pkg/validate"
)

// Issue-form field headings the authoring flow reads from an issue body.
const (
	fieldSkillName   = "Skill name"
	fieldDescription = "Description"
	fieldSources     = "Sources"
	fieldSpec        = "Additional spec"
)

type NewConfig struct {
	Title         string
	Description   string
	Sources       string
	Spec          string
	FromIssueFile string
	Branch        bool
}

func NewNewConfig() *NewConfig {
	return &NewConfig{}
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new skill package from a title and description",
	Long: `Create a new skill package: normalize the title into a kebab-case skill
name, synthesize the SKILL.md document, write the package under the skills
directory, and validate the result.

Field values can be given directly or extracted from a saved issue-form
body with --from-issue-body.

Examples:
  skillstash new --title "Apple HIG Guidelines" --description "Apple's design guidance"
  skillstash new --from-issue-body issue.md --branch`,
	Run: func(cmd *cobra.Command, _ []string) {
		nc := getNewConfigFromFlags(cmd)
		skillsDir := getSkillsDir(cmd)
		cfg := loadStashConfig(cmd)

		input, changed, err := resolveNewInput(nc)
		if err != nil {
			presenter.Error(err, "Cannot create skill")
			os.Exit(1)
		}
		if changed {
			presenter.Warning(fmt.Sprintf("Skill name was normalized to %q", input.Name))
		}

		doc, err := skillmd.BuildSkillMarkdown(input)
		if err != nil {
			presenter.Error(err, "Failed to synthesize skill document")
			os.Exit(1)
		}

		dir := filepath.Join(skillsDir, input.Name)
		if _, err := os.Stat(dir); err == nil {
			presenter.Error(errors.Errorf("skill %q already exists at %s", input.Name, dir), "Cannot create skill")
			os.Exit(1)
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			presenter.Error(err, "Failed to create skill directory")
			os.Exit(1)
		}
		if err := os.WriteFile(filepath.Join(dir, skillmd.SkillFileName), []byte(doc), 0o644); err != nil {
			presenter.Error(err, "Failed to write skill document")
			os.Exit(1)
		}
		presenter.Success(fmt.Sprintf("Created skill %q at %s", input.Name, dir))

		report := validate.ValidateSkill(dir, cfg)
		for _, diag := range report.Warnings {
			presenter.Warning(diag.String())
		}
		for _, diag := range report.Errors {
			presenter.Error(errors.New(diag.Message), diag.Path)
		}
		if report.Failed() {
			os.Exit(1)
		}

		if nc.Branch {
			if err := createSkillBranch(input.Name); err != nil {
				presenter.Error(err, "Failed to create branch")
				os.Exit(1)
			}
		}
	},
}

func init() {
	newCmd.Flags().StringP("title", "t", "", "Skill title (normalized into the skill name)")
	newCmd.Flags().StringP("description", "d", "", "Short description of what the skill does")
	newCmd.Flags().String("sources", "", "Reference sources for the skill (optional)")
	newCmd.Flags().String("spec", "", "Additional specification text (optional)")
	newCmd.Flags().String("from-issue-body", "", "Path to a saved issue-form body to extract fields from")
	newCmd.Flags().BoolP("branch", "b", false, "Create a git branch for the new skill")
	rootCmd.AddCommand(newCmd)
}

func getNewConfigFromFlags(cmd *cobra.Command) *NewConfig {
	nc := NewNewConfig()
	if title, err := cmd.Flags().GetString("title"); err == nil {
		nc.Title = title
	}
	if description, err := cmd.Flags().GetString("description"); err == nil {
		nc.Description = description
	}
	if sources, err := cmd.Flags().GetString("sources"); err == nil {
		nc.Sources = sources
	}
	if spec, err := cmd.Flags().GetString("spec"); err == nil {
		nc.Spec = spec
	}
	if file, err := cmd.Flags().GetString("from-issue-body"); err == nil {
		nc.FromIssueFile = file
	}
	if branch, err := cmd.Flags().GetBool("branch"); err == nil {
		nc.Branch = branch
	}
	return nc
}

// inputFromIssueBody extracts the authoring fields from an issue-form body.
// Absent and empty fields read the same: as unsupplied.
func inputFromIssueBody(body string) skillmd.Input {
	return skillmd.Input{
		Name:        skillmd.ExtractField(body, fieldSkillName),
		Description: skillmd.ExtractField(body, fieldDescription),
		Sources:     skillmd.ExtractField(body, fieldSources),
		Spec:        skillmd.ExtractField(body, fieldSpec),
	}
}

// resolveNewInput merges flag values with issue-body fields (flags win) and
// normalizes the skill name. changed reports whether normalization altered
// the supplied title.
func resolveNewInput(nc *NewConfig) (skillmd.Input, bool, error) {
	input := skillmd.Input{
		Name:        nc.Title,
		Description: nc.Description,
		Sources:     nc.Sources,
		Spec:        nc.Spec,
	}

	if nc.FromIssueFile != "" {
		body, err := os.ReadFile(nc.FromIssueFile)
		if err != nil {
			return skillmd.Input{}, false, errors.Wrap(err, "failed to read issue body file")
		}
		extracted := inputFromIssueBody(string(body))
		if input.Name == "" {
			input.Name = extracted.Name
		}
		if input.Description == "" {
			input.Description = extracted.Description
		}
		if input.Sources == "" {
			input.Sources = extracted.Sources
		}
		if input.Spec == "" {
			input.Spec = extracted.Spec
		}
	}

	name, changed := skillmd.NormalizeName(input.Name)
	if name == "" {
		return skillmd.Input{}, false, errors.New("no usable skill name was supplied")
	}
	if strings.TrimSpace(input.Description) == "" {
		return skillmd.Input{}, false, errors.New("a skill description is required")
	}

	input.Name = name
	return input, changed, nil
}

// createSkillBranch creates and checks out a branch for the new skill. The
// branch feeds the gh-driven PR flow, so git and an authenticated gh are
// both required up front.
func createSkillBranch(name string) error {
	if err := github.CheckPrerequisites(); err != nil {
		return err
	}

	branch := fmt.Sprintf("skill/%s-%s", name, uuid.New().String()[:8])
	cmd := exec.Command("git", "checkout", "-b", branch)
	if output, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrapf(err, "output: %s", string(output))
	}

	presenter.Success(fmt.Sprintf("Created branch %s", branch))
	return nil
}
