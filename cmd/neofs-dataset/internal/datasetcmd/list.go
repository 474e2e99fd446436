package datasetcmd

import (
	"fmt"
	"strconv"

	common "github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/internal"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func listCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List objects of the container",
		Args:  cobra.NoArgs,
		RunE:  listFunc,
	}

	common.AddContainerFlag(cmd, true)

	return cmd
}

func listFunc(cmd *cobra.Command, _ []string) error {
	cnr, err := common.ParseContainer(cmd)
	if err != nil {
		return err
	}

	return common.WithStorage(cmd, true, func(_ *common.Env, s kv.Store) (err error) {
		c, err := s.Container(cnr).OpenContainer()
		if err != nil {
			return common.Errf("open container: %w", err)
		}
		defer func() {
			if cErr := c.Close(); cErr != nil && err == nil {
				err = common.Errf("close container: %w", cErr)
			}
		}()

		l, ok := c.(kv.ObjectLister)
		if !ok {
			return fmt.Errorf("container %s does not support listing", cnr)
		}

		objs, err := l.ListObjects()
		if err != nil {
			return common.Errf("list objects: %w", err)
		}

		out := tablewriter.NewWriter(cmd.OutOrStdout())
		out.SetHeader([]string{"ID", "Rank", "Class", "DKeys"})
		out.SetAlignment(tablewriter.ALIGN_LEFT)
		out.SetAutoWrapText(false)

		for _, o := range objs {
			out.Append([]string{
				o.ID.String(),
				strconv.FormatUint(uint64(o.Rank), 10),
				strconv.Itoa(int(o.Class)),
				strconv.Itoa(o.DKeys),
			})
		}

		out.Render()

		cmd.Printf("Total: %d objects.\n", len(objs))

		return nil
	})
}
