package mover

import (
	"fmt"

	"github.com/google/uuid"
	storageconfig "github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/config/storage"
	common "github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/internal"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/datamover"
	"github.com/spf13/cobra"
)

const (
	fromFlag          = "from"
	toFlag            = "to"
	toStorageTypeFlag = "to-storage-type"
	toStoragePathFlag = "to-storage-path"
)

func copyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy containers preserving object identities",
		Long: `Copy all objects of the source containers to the destination ones.
Destination containers are created if they are not specified. Destination
storage is the configured one unless --to-storage-path is set.`,
		Args: cobra.NoArgs,
		RunE: copyFunc,
	}

	ff := cmd.Flags()
	ff.StringArray(fromFlag, nil, "Source container, can be repeated")
	ff.StringArray(toFlag, nil, "Destination container, can be repeated in the order of sources")
	ff.String(toStorageTypeFlag, storageconfig.TypeBBolt, "Destination storage type: bbolt or badger")
	ff.String(toStoragePathFlag, "", "Path to the destination storage")
	ff.Int(workersFlag, 0, "Number of containers copied at once")
	common.MarkRequired(cmd, fromFlag)

	return cmd
}

func parseIDs(ss []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(ss))

	for i := range ss {
		var err error

		ids[i], err = common.ParseContainerID(ss[i])
		if err != nil {
			return nil, err
		}
	}

	return ids, nil
}

func copyFunc(cmd *cobra.Command, _ []string) error {
	rawFrom, _ := cmd.Flags().GetStringArray(fromFlag)
	rawTo, _ := cmd.Flags().GetStringArray(toFlag)

	from, err := parseIDs(rawFrom)
	if err != nil {
		return err
	}

	to, err := parseIDs(rawTo)
	if err != nil {
		return err
	}

	if len(to) != 0 && len(to) != len(from) {
		return fmt.Errorf("%d destination containers for %d sources", len(to), len(from))
	}

	return common.WithStorage(cmd, false, func(e *common.Env, src kv.Store) error {
		dst := src

		dstPath, _ := cmd.Flags().GetString(toStoragePathFlag)
		if dstPath != "" {
			dstType, _ := cmd.Flags().GetString(toStorageTypeFlag)

			var err error

			dst, err = e.Open(common.StoragePrm{Type: dstType, Path: dstPath})
			if err != nil {
				return common.Errf("open destination storage: %w", err)
			}
			defer e.CloseStorage(dst)
		}

		if len(to) == 0 {
			to = make([]uuid.UUID, len(from))

			for i := range to {
				var err error

				to[i], err = dst.CreateContainer()
				if err != nil {
					return common.Errf("create destination container: %w", err)
				}
			}
		}

		opts, err := options(cmd, e, nil)
		if err != nil {
			return err
		}

		pairs := make([]datamover.Pair, len(from))
		for i := range from {
			pairs[i] = datamover.Pair{Src: src.Container(from[i]), Dst: dst.Container(to[i])}
		}

		err = datamover.CopyAll(pairs, opts...)
		if err != nil {
			return common.Errf("copy containers: %w", err)
		}

		for i := range from {
			cmd.Printf("%s -> %s\n", from[i], to[i])
		}

		return nil
	})
}
