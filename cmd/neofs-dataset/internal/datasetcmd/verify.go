package datasetcmd

import (
	"errors"

	"github.com/nspcc-dev/neofs-dataset/cmd/internal/cmderr"
	common "github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/internal"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/dataset"
	"github.com/spf13/cobra"
)

func verifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify dataset stored in the container",
		Long: `Verify that objects listed in the registry file hold exactly the values
generated for the configured shape. The command fails with exit code 2 on
the first mismatch.`,
		Args: cobra.NoArgs,
		RunE: verifyFunc,
	}

	common.AddContainerFlag(cmd, true)
	common.AddRegistryFlag(cmd, "Path to the registry file written by generate")
	common.AddNoProgressFlag(cmd)
	addShapeFlags(cmd)

	return cmd
}

func verifyFunc(cmd *cobra.Command, _ []string) error {
	cnr, err := common.ParseContainer(cmd)
	if err != nil {
		return err
	}

	regPath, _ := cmd.Flags().GetString(common.RegistryFlag)

	reg, err := dataset.ReadRegistry(regPath)
	if err != nil {
		return common.Errf("read registry: %w", err)
	}

	return common.WithStorage(cmd, true, func(e *common.Env, s kv.Store) error {
		shape, err := readShape(cmd, e, "")
		if err != nil {
			return err
		}

		p := common.StartProgress(cmd, shape.NumObjects)

		opts := append(e.DatasetOptions(), dataset.WithProgress(func(done, _ int) {
			p.Set(done)
		}))

		err = dataset.Verify(shape, s.Container(cnr), reg, opts...)
		p.Finish()
		if err != nil {
			if errors.Is(err, dataset.ErrMismatch) {
				return cmderr.ExitErr{Code: cmderr.CodeMismatch, Cause: err}
			}

			return common.Errf("verify dataset: %w", err)
		}

		cmd.Printf("Dataset of %d objects verified in container %s.\n", reg.Len(), cnr)

		return nil
	})
}
