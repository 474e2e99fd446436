package datasetcmd

import (
	"fmt"

	shapeconfig "github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/config/shape"
	common "github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/internal"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/dataset"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const objectClassFlag = "object-class"

func generateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate dataset in the container",
		Long: `Generate dataset of the configured shape in the container and save
identities of the created objects to the registry file. The same shape and
registry are required to verify the dataset later.`,
		Args: cobra.NoArgs,
		RunE: generateFunc,
	}

	common.AddContainerFlag(cmd, true)
	common.AddRegistryFlag(cmd, "Path to write the registry file to")
	common.AddNoProgressFlag(cmd)
	addShapeFlags(cmd)
	cmd.Flags().Uint8(objectClassFlag, 0, "Class of created objects")

	return cmd
}

func generateFunc(cmd *cobra.Command, _ []string) error {
	cnr, err := common.ParseContainer(cmd)
	if err != nil {
		return err
	}

	regPath, _ := cmd.Flags().GetString(common.RegistryFlag)

	return common.WithStorage(cmd, false, func(e *common.Env, s kv.Store) error {
		shape, err := readShape(cmd, e, objectClassFlag)
		if err != nil {
			return err
		}

		p := common.StartProgress(cmd, shape.NumObjects)

		opts := append(e.DatasetOptions(), dataset.WithProgress(func(done, _ int) {
			p.Set(done)
		}))

		reg, err := dataset.Generate(shape, s.Container(cnr), opts...)
		p.Finish()
		if err != nil {
			e.Log.Error("dataset is incomplete and must not be verified",
				zap.Int("created", reg.Len()),
			)
			return common.Errf("generate dataset: %w", err)
		}

		err = reg.WriteFile(regPath)
		if err != nil {
			return common.Errf("save registry: %w", err)
		}

		cmd.Printf("Dataset of %d objects generated in container %s.\n", reg.Len(), cnr)
		cmd.Printf("Registry saved to %s.\n", regPath)

		return nil
	})
}

// readShape binds shape flags and reads the shape from the configuration.
// classFlag is bound if not empty.
func readShape(cmd *cobra.Command, e *common.Env, classFlag string) (dataset.Shape, error) {
	err := bindShapeFlags(cmd, e.Config)
	if err != nil {
		return dataset.Shape{}, err
	}

	if classFlag != "" {
		err = shapeconfig.Section(e.Config).BindFlag(shapeconfig.ObjectClassKey, cmd.Flags().Lookup(classFlag))
		if err != nil {
			return dataset.Shape{}, fmt.Errorf("bind %s flag: %w", classFlag, err)
		}
	}

	return e.Shape()
}
