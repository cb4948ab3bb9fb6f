package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillstash/skillstash/pkg/presenter"
	"github.com/skillstash/skillstash/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		if jsonOut, err := cmd.Flags().GetBool("json"); err == nil && jsonOut {
			out, err := version.Get().JSON()
			if err != nil {
				presenter.Error(err, "Failed to encode version")
				os.Exit(1)
			}
			fmt.Println(out)
			return
		}
		fmt.Println(version.Get().String())
	},
}

func init() {
	versionCmd.Flags().Bool("json", false, "Emit version info as JSON")
	rootCmd.AddCommand(versionCmd)
}
