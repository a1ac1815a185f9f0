package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sonjit/internal/layout"
)

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "List keyboard layouts",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range layout.AvailableLayouts() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	rootCmd.AddCommand(layoutsCmd)
}
