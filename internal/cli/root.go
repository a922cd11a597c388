// Package cli defines the wslpath command-line interface using cobra.
//
// The wsl and win subcommands convert paths into the WSL and Windows
// namespaces. Paths come from arguments, from path list files
// (--from-files), or from stdin.
package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/sungur/wslpath/internal/log"
)

// Version, Commit, and Date are set via ldflags at build time.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

var rootCmd = &cobra.Command{
	Use:   "wslpath",
	Short: "Translate paths between WSL and Windows",
	Long: `wslpath rewrites absolute paths between the Windows and WSL namespaces.
Characters Windows forbids in file names are carried through the escape
range used by WSL, so every Linux file name has a Windows spelling.

Paths are read from arguments, from path list files (--from-files),
or from stdin when no arguments are given.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd)
	},
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("wslpath v{{.Version}}\n")

	// --- Persistent flags (available to all subcommands) ---
	pf := rootCmd.PersistentFlags()
	pf.BoolP("quiet", "q", false, "Suppress diagnostics (exit code only)")
	pf.BoolP("debug", "d", false, "Log root resolution and read sizes")
	pf.String("config", "", "Config file (default ~/.wslpath/config.yaml, or $WSLPATH_CONFIG)")

	// --- Subcommands ---
	rootCmd.AddCommand(wslCmd)
	rootCmd.AddCommand(winCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

func setupLogging(cmd *cobra.Command) {
	quiet, _ := cmd.Flags().GetBool("quiet")
	debug, _ := cmd.Flags().GetBool("debug")
	switch {
	case quiet:
		log.EnableQuietMode()
	case debug:
		log.SetLevel(log.LevelDebug)
		log.SetPrefix(true)
	}
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		log.Error(err.Error())
		os.Exit(1)
	}
}
