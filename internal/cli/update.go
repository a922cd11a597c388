package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sungur/wslpath/internal/log"
	"github.com/sungur/wslpath/internal/upgrade"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Install the latest wslpath release",
	Long: `Looks up the latest wslpath release on GitHub. With --force the running
binary is replaced; otherwise the available version is only reported.`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().Bool("force", false, "Replace the binary without asking")
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	rel, err := upgrade.Latest(cmd.Context(), Version)
	if err != nil {
		return fmt.Errorf("checking for a release: %w", err)
	}
	if rel == nil {
		log.Successf("wslpath %s is the latest release", Version)
		return nil
	}

	log.Infof("wslpath %s is available (running %s)", rel.Version, Version)
	if force, _ := cmd.Flags().GetBool("force"); !force {
		log.Dim("Re-run with --force to install it.")
		return nil
	}
	if err := upgrade.Apply(cmd.Context(), rel); err != nil {
		return err
	}
	log.Successf("Installed wslpath %s", rel.Version)
	return nil
}
