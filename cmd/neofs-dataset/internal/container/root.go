package container

import (
	common "github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/internal"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/spf13/cobra"
)

// Command returns `container` command definition.
func Command() *cobra.Command {
	root := &cobra.Command{
		Use:   "container",
		Short: "Operations with storage containers",
	}

	createCMD := &cobra.Command{
		Use:   "create",
		Short: "Create new empty container and print its identifier",
		Args:  cobra.NoArgs,
		RunE:  createFunc,
	}

	listCMD := &cobra.Command{
		Use:   "list",
		Short: "List identifiers of all containers",
		Args:  cobra.NoArgs,
		RunE:  listFunc,
	}

	deleteCMD := &cobra.Command{
		Use:   "delete",
		Short: "Delete container with all its objects",
		Args:  cobra.NoArgs,
		RunE:  deleteFunc,
	}
	common.AddContainerFlag(deleteCMD, true)

	root.AddCommand(createCMD, listCMD, deleteCMD)

	return root
}

func createFunc(cmd *cobra.Command, _ []string) error {
	return common.WithStorage(cmd, false, func(_ *common.Env, s kv.Store) error {
		id, err := s.CreateContainer()
		if err != nil {
			return common.Errf("create container: %w", err)
		}

		cmd.Println(id)

		return nil
	})
}

func listFunc(cmd *cobra.Command, _ []string) error {
	return common.WithStorage(cmd, true, func(_ *common.Env, s kv.Store) error {
		ids, err := s.ListContainers()
		if err != nil {
			return common.Errf("list containers: %w", err)
		}

		for i := range ids {
			cmd.Println(ids[i])
		}

		return nil
	})
}

func deleteFunc(cmd *cobra.Command, _ []string) error {
	id, err := common.ParseContainer(cmd)
	if err != nil {
		return err
	}

	return common.WithStorage(cmd, false, func(_ *common.Env, s kv.Store) error {
		err := s.DeleteContainer(id)
		if err != nil {
			return common.Errf("delete container: %w", err)
		}

		cmd.Printf("Container %s deleted.\n", id)

		return nil
	})
}
