package mover

import (
	"os"

	"github.com/google/uuid"
	common "github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/internal"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/datamover"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	outFlag = "out"
	inFlag  = "in"

	stdStream = "-"
)

func serializeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serialize",
		Short: "Write container to the archive file",
		Args:  cobra.NoArgs,
		RunE:  serializeFunc,
	}

	common.AddContainerFlag(cmd, true)
	common.AddNoProgressFlag(cmd)
	cmd.Flags().String(outFlag, "", "Path to the archive file, '-' for stdout")
	cmd.Flags().Bool(compressFlag, true, "Compress archive with zstd")
	common.MarkRequired(cmd, outFlag)

	return cmd
}

func deserializeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deserialize",
		Short: "Restore container from the archive file",
		Long: `Restore all objects of the archive to the container preserving their
identities. New container is created if it is not specified.`,
		Args: cobra.NoArgs,
		RunE: deserializeFunc,
	}

	common.AddContainerFlag(cmd, false)
	common.AddNoProgressFlag(cmd)
	cmd.Flags().String(inFlag, "", "Path to the archive file, '-' for stdin")
	common.MarkRequired(cmd, inFlag)

	return cmd
}

func serializeFunc(cmd *cobra.Command, _ []string) error {
	cnr, err := common.ParseContainer(cmd)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString(outFlag)

	return common.WithStorage(cmd, true, func(e *common.Env, s kv.Store) (err error) {
		w := cmd.OutOrStdout()

		if out != stdStream {
			f, fErr := os.Create(out)
			if fErr != nil {
				return common.Errf("create archive file: %w", fErr)
			}
			defer func() {
				if cErr := f.Close(); cErr != nil && err == nil {
					err = common.Errf("close archive file: %w", cErr)
				}
			}()

			w = f
		}

		p := common.StartProgress(cmd, 0)

		opts, err := options(cmd, e, p)
		if err != nil {
			return err
		}

		n, err := datamover.Serialize(s.Container(cnr), w, opts...)
		p.Finish()
		if err != nil {
			return common.Errf("serialize container: %w", err)
		}

		e.Log.Info("container serialized",
			zap.Stringer("container", cnr),
			zap.String("archive", out),
			zap.Int("records", n),
		)

		if out != stdStream {
			cmd.Printf("%d records of container %s written to %s.\n", n, cnr, out)
		}

		return nil
	})
}

func deserializeFunc(cmd *cobra.Command, _ []string) error {
	cnr, err := common.ParseContainer(cmd)
	if err != nil {
		return err
	}

	in, _ := cmd.Flags().GetString(inFlag)

	r := cmd.InOrStdin()

	if in != stdStream {
		f, err := os.Open(in)
		if err != nil {
			return common.Errf("open archive file: %w", err)
		}
		defer f.Close()

		r = f
	}

	return common.WithStorage(cmd, false, func(e *common.Env, s kv.Store) error {
		if cnr == uuid.Nil {
			var err error

			cnr, err = s.CreateContainer()
			if err != nil {
				return common.Errf("create container: %w", err)
			}

			cmd.Printf("Container %s created.\n", cnr)
		}

		p := common.StartProgress(cmd, 0)

		opts, err := options(cmd, e, p)
		if err != nil {
			return err
		}

		n, err := datamover.Deserialize(r, s.Container(cnr), opts...)
		p.Finish()
		if err != nil {
			return common.Errf("deserialize container: %w", err)
		}

		cmd.Printf("%d records restored to container %s.\n", n, cnr)

		return nil
	})
}
