package cli

import "github.com/spf13/cobra"

var wslCmd = &cobra.Command{
	Use:   "wsl [flags] [path...]",
	Short: "Convert Windows paths to WSL paths",
	Long: `Converts absolute Windows paths (C:\..., \\wsl$\<distro>\..., \\?\...)
to paths inside this distribution. Escaped characters are restored.

When the distribution is installed under a Windows user profile, paths
into its rootfs folder are mapped back to /.`,
	Example: `  wslpath wsl 'C:\Users\me\notes.txt'
  dir /b /s | wslpath wsl --read-line-sep CRLF
  wslpath wsl --from-files --read-line-sep null list.bin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, args, toWSL)
	},
}

func init() {
	f := wslCmd.Flags()
	addConvertFlags(f)
	f.Bool("no-root-loop", false, "Do not map the distribution's rootfs folder back to /")
}
