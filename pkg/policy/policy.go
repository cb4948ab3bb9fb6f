// Package policy computes the effective automation policy for one issue or
// pull request by applying label overrides on top of configured defaults.
// Every function here is a pure computation over its arguments: nothing is
// cached between events and nothing touches the network or filesystem.
package policy

import "github.com/skillstash/skillstash/pkg/config"

// LabelSet is the set of label strings attached to one issue or PR at
// resolution time. Membership is exact-match on the configured label text.
type LabelSet map[string]struct{}

// NewLabelSet builds a LabelSet from a list of label names.
func NewLabelSet(labels ...string) LabelSet {
	set := make(LabelSet, len(labels))
	for _, label := range labels {
		set[label] = struct{}{}
	}
	return set
}

// Has reports whether label is present. Empty label strings never match.
func (s LabelSet) Has(label string) bool {
	if label == "" {
		return false
	}
	_, ok := s[label]
	return ok
}

// ResolvedPolicy is the effective decision for one issue/PR: computed fresh
// on every resolution call, never cached across events.
type ResolvedPolicy struct {
	Review         config.ReviewMode            `json:"review"`
	Research       config.ResearchDepth         `json:"research"`
	AutoMerge      bool                         `json:"auto_merge"`
	Agents         map[config.Role]config.Agent `json:"agents"`
	SkipValidation bool                         `json:"skip_validation"`
}

// ResolveReviewMode returns the effective review mode. The require-review
// label is the strongest signal and cannot be weakened by a simultaneously
// applied skip-review label: requiring review is a safety escalation, so it
// wins the conflict unconditionally.
func ResolveReviewMode(labels LabelSet, cfg *config.StashConfig) config.ReviewMode {
	if labels.Has(cfg.Labels.RequireReview) {
		return config.ReviewRequired
	}
	if labels.Has(cfg.Labels.SkipReview) {
		return config.ReviewSkip
	}
	return cfg.Defaults.Review
}

// ResolveResearchDepth returns the effective research depth. Mirrors the
// review precedence: the escalating label (deep research) beats the
// skipping label when both are present.
func ResolveResearchDepth(labels LabelSet, cfg *config.StashConfig) config.ResearchDepth {
	if labels.Has(cfg.Labels.DeepResearch) {
		return config.ResearchDeep
	}
	if labels.Has(cfg.Labels.SkipResearch) {
		return config.ResearchNone
	}
	return cfg.Defaults.Research
}

// ResolveAgent returns the agent for role. A recognized explicit override
// wins; otherwise the per-role configuration applies, which Load has
// already collapsed to a concrete agent (global default included).
func ResolveAgent(cfg *config.StashConfig, role config.Role, override string) config.Agent {
	if agent, ok := config.ParseAgent(override); ok {
		return agent
	}
	if agent, ok := cfg.Agents.Roles[role]; ok {
		return agent
	}
	return cfg.Agents.Default
}

// Step is one resolved pipeline step with a concrete agent.
type Step struct {
	Role  config.Role  `json:"role"`
	Agent config.Agent `json:"agent"`
}

// ResolveWorkflow returns the ordered pipeline. Explicit workflow steps are
// mapped through ResolveAgent so a step carrying the "default" sentinel
// still resolves to a concrete agent; an empty workflow derives the
// canonical research, author, review sequence from the role configuration.
func ResolveWorkflow(cfg *config.StashConfig) []Step {
	if len(cfg.Workflow) > 0 {
		steps := make([]Step, 0, len(cfg.Workflow))
		for _, entry := range cfg.Workflow {
			steps = append(steps, Step{
				Role:  entry.Role,
				Agent: ResolveAgent(cfg, entry.Role, entry.Agent),
			})
		}
		return steps
	}

	steps := make([]Step, 0, len(config.Roles))
	for _, role := range config.Roles {
		steps = append(steps, Step{Role: role, Agent: ResolveAgent(cfg, role, "")})
	}
	return steps
}

// ShouldAutoMerge reports whether a PR may merge without human sign-off.
// Required review is the single gate: any signal that forces review to
// required, label or default, transitively blocks auto-merge. Validation
// and CI status gate merges separately, outside this decision.
func ShouldAutoMerge(labels LabelSet, cfg *config.StashConfig) bool {
	return ResolveReviewMode(labels, cfg) != config.ReviewRequired
}

// Resolve computes the full effective policy for one issue/PR.
func Resolve(labels LabelSet, cfg *config.StashConfig) ResolvedPolicy {
	agents := make(map[config.Role]config.Agent, len(config.Roles))
	for _, role := range config.Roles {
		agents[role] = ResolveAgent(cfg, role, "")
	}

	return ResolvedPolicy{
		Review:         ResolveReviewMode(labels, cfg),
		Research:       ResolveResearchDepth(labels, cfg),
		AutoMerge:      ShouldAutoMerge(labels, cfg),
		Agents:         agents,
		SkipValidation: labels.Has(cfg.Labels.SkipValidation),
	}
}
