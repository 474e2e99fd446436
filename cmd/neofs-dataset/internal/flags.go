package common

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Names of the flags shared by the commands.
const (
	ConfigFlag      = "config"
	LogLevelFlag    = "log-level"
	StorageTypeFlag = "storage-type"
	StoragePathFlag = "storage-path"
	ReadOnlyFlag    = "read-only"

	ContainerFlag  = "container"
	RegistryFlag   = "registry"
	NoProgressFlag = "no-progress"
)

// AddRootFlags adds persistent flags overriding configuration file values.
func AddRootFlags(cmd *cobra.Command) {
	ff := cmd.PersistentFlags()

	ff.StringP(ConfigFlag, "c", "", "Path to the configuration file (YAML or JSON)")
	ff.String(LogLevelFlag, "", "Logger level: debug, info, warn or error")
	ff.String(StorageTypeFlag, "", "Storage type: bbolt, badger or memory")
	ff.String(StoragePathFlag, "", "Path to the storage file (bbolt) or directory (badger)")
	ff.Bool(ReadOnlyFlag, false, "Open storage in read-only mode")
}

// AddContainerFlag adds flag with container identifier.
func AddContainerFlag(cmd *cobra.Command, required bool) {
	cmd.Flags().String(ContainerFlag, "", "Container identifier")
	if required {
		MarkRequired(cmd, ContainerFlag)
	}
}

// AddRegistryFlag adds required flag with path to the registry file.
func AddRegistryFlag(cmd *cobra.Command, usage string) {
	cmd.Flags().String(RegistryFlag, "", usage)
	MarkRequired(cmd, RegistryFlag)
}

// AddNoProgressFlag adds flag disabling progress bar.
func AddNoProgressFlag(cmd *cobra.Command) {
	cmd.Flags().Bool(NoProgressFlag, false, "Do not show progress bar")
}

// MarkRequired marks the flag as required. Panics if there is no such flag.
func MarkRequired(cmd *cobra.Command, name string) {
	err := cmd.MarkFlagRequired(name)
	if err != nil {
		panic(fmt.Errorf("mark required flag %s failed: %w", name, err))
	}
}

// ParseContainer parses the value of the container flag. Returns uuid.Nil
// if the flag is not set.
func ParseContainer(cmd *cobra.Command) (uuid.UUID, error) {
	s, _ := cmd.Flags().GetString(ContainerFlag)
	if s == "" {
		return uuid.Nil, nil
	}

	return ParseContainerID(s)
}

// ParseContainerID parses container identifier.
func ParseContainerID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid container %q: %w", s, err)
	}

	return id, nil
}
