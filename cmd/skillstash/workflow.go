package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/skillstash/skillstash/pkg/policy"
	"github.com/skillstash/skillstash/pkg/presenter"
)

var workflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Show the resolved pipeline steps",
	Long: `Show the ordered pipeline steps with their resolved agents. Explicit
workflow entries from the configuration are used when present; otherwise
the canonical research, author, review sequence is derived from the
per-role agent configuration.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cfg := loadStashConfig(cmd)
		steps := policy.ResolveWorkflow(cfg)

		if jsonOut, err := cmd.Flags().GetBool("json"); err == nil && jsonOut {
			out, err := json.MarshalIndent(steps, "", "  ")
			if err != nil {
				presenter.Error(err, "Failed to encode workflow")
				os.Exit(1)
			}
			fmt.Println(string(out))
			return
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "STEP\tROLE\tAGENT")
		for i, step := range steps {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, step.Role, step.Agent)
		}
		tw.Flush()
	},
}

func init() {
	workflowCmd.Flags().Bool("json", false, "Emit the workflow as JSON")
	rootCmd.AddCommand(workflowCmd)
}
