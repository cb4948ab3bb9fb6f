// Package github covers the GitHub-facing edges of the stash pipeline: the
// credential choice for write operations, an authenticated API client for
// reading issue data, and the gh/git prerequisite checks for the commands
// that shell out. Actually posting comments, pushing branches, and merging
// stay with the external automation layer.
package github

import "github.com/skillstash/skillstash/pkg/config"

// AutomationMode is the credential path used for GitHub write operations.
type AutomationMode string

const (
	// ModeApp uses an installed GitHub App token. App tokens can trigger
	// downstream workflows, which the built-in token cannot.
	ModeApp AutomationMode = "app"
	// ModeBuiltin uses the workflow's built-in token.
	ModeBuiltin AutomationMode = "builtin"
)

// ResolveAutomationMode picks the credential path. App mode requires both
// the configuration to allow it and a non-empty App token for the current
// run; a missing token degrades to the built-in token rather than failing.
func ResolveAutomationMode(cfg *config.StashConfig, appToken string) AutomationMode {
	if cfg.GitHub.AutomationMode == config.AutomationBuiltin {
		return ModeBuiltin
	}
	if appToken == "" {
		return ModeBuiltin
	}
	return ModeApp
}
