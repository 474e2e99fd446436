package mover

import (
	"fmt"

	moverconfig "github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/config/mover"
	common "github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/internal"
	"github.com/nspcc-dev/neofs-dataset/pkg/datamover"
	"github.com/spf13/cobra"
)

const (
	workersFlag  = "workers"
	compressFlag = "compress"
)

// Command returns `mover` command definition.
func Command() *cobra.Command {
	root := &cobra.Command{
		Use:   "mover",
		Short: "Copy containers between storages and archives",
	}

	root.AddCommand(
		copyCommand(),
		serializeCommand(),
		deserializeCommand(),
	)

	return root
}

// options returns data mover options from "mover" section. Flags with
// the given names override the section values if they exist.
func options(cmd *cobra.Command, e *common.Env, p *common.Progress) ([]datamover.Option, error) {
	sub := e.Config.Sub("mover")

	for _, name := range []struct{ flag, key string }{
		{workersFlag, "workers"},
		{compressFlag, "compress"},
	} {
		f := cmd.Flags().Lookup(name.flag)
		if f == nil {
			continue
		}

		err := sub.BindFlag(name.key, f)
		if err != nil {
			return nil, fmt.Errorf("bind %s flag: %w", name.flag, err)
		}
	}

	return []datamover.Option{
		datamover.WithLogger(e.Log),
		datamover.WithWorkers(moverconfig.Workers(e.Config)),
		datamover.WithCompression(moverconfig.Compress(e.Config)),
		datamover.WithProgress(p.Set),
	}, nil
}
