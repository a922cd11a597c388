package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sungur/wslpath/internal/upgrade"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), upgrade.VersionString(Version, Commit, Date))
	},
}
