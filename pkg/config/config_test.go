package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stash.yaml"), []byte(content), 0o644))
	return dir
}

func TestLoadAbsentConfig(t *testing.T) {
	cfg := Load(t.TempDir())

	assert.Equal(t, ResearchMinimal, cfg.Defaults.Research)
	assert.Equal(t, ReviewSkip, cfg.Defaults.Review)
	assert.True(t, cfg.Defaults.AutoProceed)
	assert.Equal(t, "review:required", cfg.Labels.RequireReview)
	assert.Equal(t, []string{"SKILL.md"}, cfg.Validation.RequiredFiles)
	assert.Equal(t, 500, cfg.Validation.MaxSkillLines)
	assert.Equal(t, AgentClaude, cfg.Agents.Default)
	assert.Equal(t, AutomationAuto, cfg.GitHub.AutomationMode)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := writeConfig(t, "defaults: [unclosed\n  research deep")

	cfg := Load(dir)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFieldLevelFallback(t *testing.T) {
	dir := writeConfig(t, `
defaults:
  research: bogus-depth
  review: required
validation:
  max_skill_lines: -3
labels:
  require_review: "must-review"
`)

	cfg := Load(dir)

	// Unrecognized depth falls back alone; the sibling field sticks.
	assert.Equal(t, ResearchMinimal, cfg.Defaults.Research)
	assert.Equal(t, ReviewRequired, cfg.Defaults.Review)
	assert.Equal(t, 500, cfg.Validation.MaxSkillLines)
	assert.Equal(t, "must-review", cfg.Labels.RequireReview)
	assert.Equal(t, "skip:review", cfg.Labels.SkipReview)
}

func TestLoadEveryFieldPopulated(t *testing.T) {
	dir := writeConfig(t, "defaults:\n  auto_proceed: false\n")

	cfg := Load(dir)

	assert.False(t, cfg.Defaults.AutoProceed)
	assert.NotEmpty(t, cfg.Labels.SkipResearch)
	assert.NotEmpty(t, cfg.Labels.SkipReview)
	assert.NotEmpty(t, cfg.Labels.SkipValidation)
	assert.NotEmpty(t, cfg.Labels.DeepResearch)
	assert.NotEmpty(t, cfg.Labels.RequireReview)
	assert.NotEmpty(t, cfg.Validation.RequiredFiles)
	assert.NotEmpty(t, cfg.Validation.RequiredFrontmatter)
	assert.Positive(t, cfg.Validation.MaxSkillLines)
	for _, role := range Roles {
		assert.Contains(t, cfg.Agents.Roles, role)
	}
}

func TestLoadAgents(t *testing.T) {
	t.Run("recognized default", func(t *testing.T) {
		dir := writeConfig(t, "agents:\n  default: \" Codex \"\n")
		cfg := Load(dir)
		assert.Equal(t, AgentCodex, cfg.Agents.Default)
		assert.Equal(t, AgentCodex, cfg.Agents.Roles[RoleAuthor])
	})

	t.Run("unrecognized default falls back", func(t *testing.T) {
		dir := writeConfig(t, "agents:\n  default: gemini\n")
		cfg := Load(dir)
		assert.Equal(t, AgentClaude, cfg.Agents.Default)
	})

	t.Run("per-role override", func(t *testing.T) {
		dir := writeConfig(t, `
agents:
  default: claude
  roles:
    research: codex
    author: default
    review: nonsense
`)
		cfg := Load(dir)
		assert.Equal(t, AgentCodex, cfg.Agents.Roles[RoleResearch])
		assert.Equal(t, AgentClaude, cfg.Agents.Roles[RoleAuthor])
		assert.Equal(t, AgentClaude, cfg.Agents.Roles[RoleReview])
	})
}

func TestLoadAlternateReview(t *testing.T) {
	t.Run("sentinel review role flips", func(t *testing.T) {
		dir := writeConfig(t, "agents:\n  default: claude\n  alternate_review: true\n")
		cfg := Load(dir)
		assert.Equal(t, AgentCodex, cfg.Agents.Roles[RoleReview])
		assert.Equal(t, AgentClaude, cfg.Agents.Roles[RoleAuthor])
	})

	t.Run("flips from codex default", func(t *testing.T) {
		dir := writeConfig(t, "agents:\n  default: codex\n  alternate_review: true\n")
		cfg := Load(dir)
		assert.Equal(t, AgentClaude, cfg.Agents.Roles[RoleReview])
	})

	t.Run("explicit override suppresses the flip", func(t *testing.T) {
		dir := writeConfig(t, `
agents:
  default: claude
  alternate_review: true
  roles:
    review: claude
`)
		cfg := Load(dir)
		assert.Equal(t, AgentClaude, cfg.Agents.Roles[RoleReview])
	})
}

func TestLoadWorkflow(t *testing.T) {
	t.Run("invalid roles dropped", func(t *testing.T) {
		dir := writeConfig(t, `
workflow:
  - role: Research
    agent: codex
  - role: deploy
    agent: claude
  - role: review
    agent: default
`)
		cfg := Load(dir)
		require.Len(t, cfg.Workflow, 2)
		assert.Equal(t, WorkflowStep{Role: RoleResearch, Agent: "codex"}, cfg.Workflow[0])
		assert.Equal(t, WorkflowStep{Role: RoleReview, Agent: "default"}, cfg.Workflow[1])
	})

	t.Run("malformed list ignored", func(t *testing.T) {
		dir := writeConfig(t, "workflow: not-a-list\n")
		cfg := Load(dir)
		assert.Empty(t, cfg.Workflow)
	})
}

func TestParseAutomationIntent(t *testing.T) {
	tests := []struct {
		input    string
		expected AutomationIntent
	}{
		{"auto", AutomationAuto},
		{"", AutomationAuto},
		{"APP", AutomationAuto},
		{"builtin", AutomationBuiltin},
		{"off", AutomationBuiltin},
		{" Disabled ", AutomationBuiltin},
		{"none", AutomationBuiltin},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseAutomationIntent(tt.input))
		})
	}
}

func TestParseAgent(t *testing.T) {
	agent, ok := ParseAgent("  CLAUDE ")
	assert.True(t, ok)
	assert.Equal(t, AgentClaude, agent)

	_, ok = ParseAgent("gpt")
	assert.False(t, ok)

	assert.Equal(t, AgentCodex, AgentClaude.Opposite())
	assert.Equal(t, AgentClaude, AgentCodex.Opposite())
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole(" Author ")
	assert.True(t, ok)
	assert.Equal(t, RoleAuthor, role)

	_, ok = ParseRole("deploy")
	assert.False(t, ok)
}
