package github

import (
	"os/exec"

	"github.com/pkg/errors"
)

// IsGitRepository checks whether the working directory is inside a git
// work tree.
func IsGitRepository() bool {
	cmd := exec.Command("git", "rev-parse", "--is-inside-work-tree")
	return cmd.Run() == nil
}

// IsGhCliInstalled checks whether the GitHub CLI is installed.
func IsGhCliInstalled() bool {
	cmd := exec.Command("gh", "--version")
	return cmd.Run() == nil
}

// IsGhAuthenticated checks whether the GitHub CLI has valid credentials.
func IsGhAuthenticated() bool {
	cmd := exec.Command("gh", "auth", "status")
	return cmd.Run() == nil
}

// CheckPrerequisites validates that the external collaborators the
// side-effecting commands rely on are available.
func CheckPrerequisites() error {
	if !IsGitRepository() {
		return errors.New("not a git repository. Please run this command from a git repository")
	}

	if !IsGhCliInstalled() {
		return errors.New("GitHub CLI (gh) is not installed. Please install it first.\nVisit https://cli.github.com/ for installation instructions")
	}

	if !IsGhAuthenticated() {
		return errors.New("you are not authenticated with GitHub. Please run 'gh auth login' first")
	}

	return nil
}
