package datasetcmd

import "github.com/spf13/cobra"

// Command returns `dataset` command definition.
func Command() *cobra.Command {
	root := &cobra.Command{
		Use:   "dataset",
		Short: "Generate and verify deterministic datasets",
	}

	root.AddCommand(
		generateCommand(),
		verifyCommand(),
		listCommand(),
	)

	return root
}
