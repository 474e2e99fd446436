package main

import (
	"os"

	"github.com/nspcc-dev/neofs-dataset/cmd/internal/cmderr"
	common "github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/internal"
	"github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/internal/container"
	"github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/internal/datasetcmd"
	"github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/internal/mover"
	"github.com/nspcc-dev/neofs-dataset/misc"
	"github.com/spf13/cobra"
)

func newCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "neofs-dataset",
		Short: "NeoFS Dataset Tool",
		Long: `NeoFS Dataset Tool generates deterministic datasets in the local object
storage, verifies them and moves containers between storages and archives.`,
		RunE:          entryPoint,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// use stdout as default output for cmd.Print()
	cmd.SetOut(os.Stdout)
	cmd.Flags().Bool("version", false, "Application version")
	common.AddRootFlags(cmd)
	cmd.AddCommand(
		container.Command(),
		datasetcmd.Command(),
		mover.Command(),
	)

	return cmd
}

func entryPoint(cmd *cobra.Command, _ []string) error {
	printVersion, _ := cmd.Flags().GetBool("version")
	if printVersion {
		cmd.Print(misc.BuildInfo("NeoFS Dataset"))

		return nil
	}

	return cmd.Usage()
}

func main() {
	err := newCommand().Execute()
	cmderr.ExitOnErr(err)
}
