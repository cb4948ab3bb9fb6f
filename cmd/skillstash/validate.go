package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/skillstash/skillstash/pkg/config"
	"github.com/skillstash/skillstash/pkg/logger"
	"github.com/skillstash/skillstash/pkg/presenter"
	"github.com/skillstash/skillstash/pkg/validate"
)

type ValidateConfig struct {
	SkillsDir string
	Watch     bool
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate all skill packages under the skills directory",
	Long: `Validate every skill package against the configured structural rules:
kebab-case naming, required files, document size ceiling, and frontmatter
completeness.

Exits 1 when any package reports an error. Warnings are informational and
never affect the exit code.

Examples:
  skillstash validate
  skillstash validate --skills-dir skills
  skillstash validate --watch`,
	Run: func(cmd *cobra.Command, _ []string) {
		cfg := loadStashConfig(cmd)
		vc := getValidateConfigFromFlags(cmd)

		if vc.Watch {
			watchAndValidate(cmd.Context(), vc.SkillsDir, cfg)
			return
		}

		if failed := runValidation(vc.SkillsDir, cfg); failed {
			os.Exit(1)
		}
	},
}

func init() {
	validateCmd.Flags().BoolP("watch", "w", false, "Re-run validation whenever a skill file changes")
	rootCmd.AddCommand(validateCmd)
}

func getValidateConfigFromFlags(cmd *cobra.Command) *ValidateConfig {
	vc := &ValidateConfig{SkillsDir: getSkillsDir(cmd)}
	if watch, err := cmd.Flags().GetBool("watch"); err == nil {
		vc.Watch = watch
	}
	return vc
}

// runValidation validates every package and prints its findings. Returns
// whether any package produced an error.
func runValidation(skillsDir string, cfg *config.StashConfig) bool {
	reports, err := validate.ValidateAll(skillsDir, cfg)
	if err != nil {
		presenter.Error(err, "Failed to enumerate skill packages")
		return true
	}

	failed := 0
	for _, report := range reports {
		for _, diag := range report.Warnings {
			presenter.Warning(diag.String())
		}
		if report.Failed() {
			failed++
		}
	}

	// Errors across all packages are reported as one aggregate so the
	// failure output reads as a single block.
	if err := validate.Summarize(reports); err != nil {
		presenter.Error(err, fmt.Sprintf("%d of %d skill package(s) failed validation", failed, len(reports)))
		return true
	}

	presenter.Success(fmt.Sprintf("All %d skill package(s) passed validation", len(reports)))
	return false
}

// watchAndValidate re-runs validation whenever anything under the skills
// directory changes. Runs until interrupted.
func watchAndValidate(ctx context.Context, skillsDir string, cfg *config.StashConfig) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		presenter.Warning("Stopping watch...")
		cancel()
	}()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		presenter.Error(err, "Failed to create file watcher")
		os.Exit(1)
	}
	defer watcher.Close()

	if err := watcher.Add(skillsDir); err != nil {
		presenter.Error(err, "Failed to watch skills directory")
		os.Exit(1)
	}
	// Watch package directories too; fsnotify is not recursive.
	if dirs, err := os.ReadDir(skillsDir); err == nil {
		for _, entry := range dirs {
			if entry.IsDir() {
				_ = watcher.Add(filepath.Join(skillsDir, entry.Name()))
			}
		}
	}

	log := logger.G(ctx)
	runValidation(skillsDir, cfg)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			log.WithField("event", event.String()).Debug("Skill tree changed")
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			presenter.Separator()
			runValidation(skillsDir, cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warn("File watcher error")
		}
	}
}
