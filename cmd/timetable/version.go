package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/timetable/internal/api"
	"github.com/jackzampolin/timetable/version"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Long: `Print the release, commit and toolchain the binary was built with.

Honours --output; --short prints the release tag alone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()
		if versionShort {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), info.Release)
			return err
		}
		return api.OutputTo(cmd.OutOrStdout(), api.GetOutputFormat(), info)
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the release tag")
}
