package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/skillstash/skillstash/pkg/presenter"
	"github.com/skillstash/skillstash/pkg/skillmd"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List skill packages under the skills directory",
	Long: `List every loadable skill package with its name and description.
Packages whose SKILL.md cannot be loaded are skipped with a warning; use
validate for the full structural report.

Examples:
  skillstash list
  skillstash list --json`,
	Run: func(cmd *cobra.Command, _ []string) {
		skills, err := collectSkills(getSkillsDir(cmd))
		if err != nil {
			presenter.Error(err, "Failed to list skill packages")
			os.Exit(1)
		}

		if jsonOut, err := cmd.Flags().GetBool("json"); err == nil && jsonOut {
			out, err := json.MarshalIndent(skills, "", "  ")
			if err != nil {
				presenter.Error(err, "Failed to encode skill list")
				os.Exit(1)
			}
			fmt.Println(string(out))
			return
		}

		if len(skills) == 0 {
			presenter.Info("No skill packages found")
			return
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tDESCRIPTION\tDIRECTORY")
		for _, skill := range skills {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", skill.Name, skill.Description, skill.Directory)
		}
		tw.Flush()
	},
}

func init() {
	listCmd.Flags().Bool("json", false, "Emit the skill list as JSON")
	rootCmd.AddCommand(listCmd)
}

// collectSkills loads every enumerable skill package. Packages that fail to
// load are skipped with a warning rather than aborting the listing.
func collectSkills(root string) ([]*skillmd.Skill, error) {
	dirs, err := skillmd.FindSkills(root)
	if err != nil {
		return nil, err
	}

	skills := make([]*skillmd.Skill, 0, len(dirs))
	for _, dir := range dirs {
		skill, err := skillmd.LoadSkill(dir)
		if err != nil {
			presenter.Warning(fmt.Sprintf("Skipping %s: %v", dir, err))
			continue
		}
		skills = append(skills, skill)
	}
	return skills, nil
}
