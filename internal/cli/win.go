package cli

import "github.com/spf13/cobra"

var winCmd = &cobra.Command{
	Use:   "win [flags] [path...]",
	Short: "Convert WSL paths to Windows paths",
	Long: `Converts absolute WSL paths to Windows paths. Paths under a drive mount
become drive paths; everything else is addressed through the \\wsl$ share.
Characters Windows forbids in file names are escaped.`,
	Example: `  wslpath win /home/me/notes.txt
  find / -xdev -print0 | wslpath win --read-line-sep null --write-line-sep CRLF`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, args, toWindows)
	},
}

func init() {
	f := winCmd.Flags()
	addConvertFlags(f)
	f.Bool("no-canonicalize", false, "Keep . and .. components and repeated slashes")
}
