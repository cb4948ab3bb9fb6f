// Package config loads the stash configuration file and normalizes it into
// typed values. Loading is total: a missing file, unreadable file, or
// malformed field never fails, it falls back to the documented default for
// that field only. Role and agent identifiers are validated here, once, so
// the rest of the codebase works with closed enums instead of raw strings.
package config

import "strings"

// Agent identifies which coding agent runs a pipeline step.
type Agent string

const (
	AgentClaude Agent = "claude"
	AgentCodex  Agent = "codex"
)

// DefaultAgent is used whenever an agent value is absent or unrecognized.
const DefaultAgent = AgentClaude

// ParseAgent returns the agent matching s (case-insensitive, trimmed) and
// whether s named a recognized agent.
func ParseAgent(s string) (Agent, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(AgentClaude):
		return AgentClaude, true
	case string(AgentCodex):
		return AgentCodex, true
	}
	return DefaultAgent, false
}

// Opposite returns the other member of the two-agent set.
func (a Agent) Opposite() Agent {
	if a == AgentClaude {
		return AgentCodex
	}
	return AgentClaude
}

// Role identifies a pipeline stage.
type Role string

const (
	RoleResearch Role = "research"
	RoleAuthor   Role = "author"
	RoleReview   Role = "review"
)

// Roles lists the canonical pipeline stages in execution order.
var Roles = []Role{RoleResearch, RoleAuthor, RoleReview}

// ParseRole returns the role matching s (case-insensitive, trimmed) and
// whether s named a canonical role.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleResearch):
		return RoleResearch, true
	case string(RoleAuthor):
		return RoleAuthor, true
	case string(RoleReview):
		return RoleReview, true
	}
	return "", false
}

// ResearchDepth controls how much background research runs before authoring.
type ResearchDepth string

const (
	ResearchNone    ResearchDepth = "none"
	ResearchMinimal ResearchDepth = "minimal"
	ResearchDeep    ResearchDepth = "deep"
)

// ParseResearchDepth maps s to a depth, falling back to minimal.
func ParseResearchDepth(s string) ResearchDepth {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ResearchNone):
		return ResearchNone
	case string(ResearchDeep):
		return ResearchDeep
	case string(ResearchMinimal):
		return ResearchMinimal
	}
	return ResearchMinimal
}

// ReviewMode controls whether authored skills require a review pass.
type ReviewMode string

const (
	ReviewSkip     ReviewMode = "skip"
	ReviewOptional ReviewMode = "optional"
	ReviewRequired ReviewMode = "required"
)

// ParseReviewMode maps s to a review mode, falling back to skip.
func ParseReviewMode(s string) ReviewMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ReviewOptional):
		return ReviewOptional
	case string(ReviewRequired):
		return ReviewRequired
	case string(ReviewSkip):
		return ReviewSkip
	}
	return ReviewSkip
}

// AutomationIntent captures whether the configuration allows GitHub App
// token usage for write operations.
type AutomationIntent string

const (
	// AutomationAuto allows an App token when one is available.
	AutomationAuto AutomationIntent = "auto"
	// AutomationBuiltin forces the built-in workflow token.
	AutomationBuiltin AutomationIntent = "builtin"
)

// ParseAutomationIntent treats explicit opt-out markers as builtin and
// everything else (including unset) as auto. App usage still requires a
// token at runtime, so defaulting to auto is safe.
func ParseAutomationIntent(s string) AutomationIntent {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(AutomationBuiltin), "off", "none", "disabled", "false":
		return AutomationBuiltin
	}
	return AutomationAuto
}

// DefaultsConfig holds the policy defaults applied when no label overrides
// are present on an issue or pull request.
type DefaultsConfig struct {
	Research    ResearchDepth `mapstructure:"research"`
	Review      ReviewMode    `mapstructure:"review"`
	AutoProceed bool          `mapstructure:"auto_proceed"`
}

// LabelsConfig maps each policy-override role to the literal label string
// that triggers it.
type LabelsConfig struct {
	SkipResearch   string `mapstructure:"skip_research"`
	SkipReview     string `mapstructure:"skip_review"`
	SkipValidation string `mapstructure:"skip_validation"`
	DeepResearch   string `mapstructure:"deep_research"`
	RequireReview  string `mapstructure:"require_review"`
}

// ValidationConfig holds the structural rules applied to skill packages.
type ValidationConfig struct {
	RequiredFiles       []string `mapstructure:"required_files"`
	MaxSkillLines       int      `mapstructure:"max_skill_lines"`
	EnforceKebabCase    bool     `mapstructure:"enforce_kebab_case"`
	RequiredFrontmatter []string `mapstructure:"required_frontmatter"`
}

// AgentsConfig holds the agent assignment for each pipeline role. Roles is
// fully concrete after Load: the "default" sentinel, empty values, and
// unrecognized names have already been resolved to real agents.
type AgentsConfig struct {
	Default Agent
	Roles   map[Role]Agent
}

// WorkflowStep is one explicit pipeline step. Agent keeps the raw
// configured string ("default" included); policy.ResolveAgent maps it to a
// concrete agent when the workflow is resolved.
type WorkflowStep struct {
	Role  Role
	Agent string
}

// GitHubConfig holds settings for GitHub write operations.
type GitHubConfig struct {
	AutomationMode AutomationIntent `mapstructure:"automation_mode"`
}

// StashConfig is the root configuration, immutable after Load.
type StashConfig struct {
	Defaults   DefaultsConfig
	Labels     LabelsConfig
	Validation ValidationConfig
	Agents     AgentsConfig
	Workflow   []WorkflowStep
	GitHub     GitHubConfig
}

// Default returns the documented default configuration.
func Default() *StashConfig {
	return &StashConfig{
		Defaults: DefaultsConfig{
			Research:    ResearchMinimal,
			Review:      ReviewSkip,
			AutoProceed: true,
		},
		Labels: LabelsConfig{
			SkipResearch:   "skip:research",
			SkipReview:     "skip:review",
			SkipValidation: "skip:validation",
			DeepResearch:   "research:deep",
			RequireReview:  "review:required",
		},
		Validation: ValidationConfig{
			RequiredFiles:       []string{"SKILL.md"},
			MaxSkillLines:       500,
			EnforceKebabCase:    true,
			RequiredFrontmatter: []string{"name", "description"},
		},
		Agents: AgentsConfig{
			Default: DefaultAgent,
			Roles: map[Role]Agent{
				RoleResearch: DefaultAgent,
				RoleAuthor:   DefaultAgent,
				RoleReview:   DefaultAgent,
			},
		},
		Workflow: nil,
		GitHub: GitHubConfig{
			AutomationMode: AutomationAuto,
		},
	}
}
