package storageconfig

import (
	"fmt"
	"io/fs"
	"strconv"

	"github.com/nspcc-dev/neofs-dataset/cmd/neofs-dataset/config"
	"github.com/nspcc-dev/neofs-dataset/pkg/util"
)

const (
	subsection = "storage"

	// TypeBBolt is a single-file bbolt storage.
	TypeBBolt = "bbolt"
	// TypeBadger is a BadgerDB storage directory.
	TypeBadger = "badger"
	// TypeMemory is a storage living until the process exits.
	TypeMemory = "memory"

	// TypeDefault is a default storage type.
	TypeDefault = TypeBBolt
	// PermDefault is a default permission bits of the storage files.
	PermDefault = 0o640
)

// Type returns the value of "type" config parameter
// from "storage" section.
//
// Returns TypeDefault if the value is empty. Returns an error for unknown
// types.
func Type(c *config.Config) (string, error) {
	v := config.StringSafe(c.Sub(subsection), "type")

	switch v {
	case "":
		return TypeDefault, nil
	case TypeBBolt, TypeBadger, TypeMemory:
		return v, nil
	default:
		return "", fmt.Errorf("unknown storage type %q", v)
	}
}

// Path returns the value of "path" config parameter
// from "storage" section with ~ expanded.
//
// Returns an error if the value is empty.
func Path(c *config.Config) (string, error) {
	p, err := util.ExpandPath(config.StringSafe(c.Sub(subsection), "path"))
	if err != nil {
		return "", err
	}

	if p == "" {
		return "", fmt.Errorf("missing %s path", subsection)
	}

	return p, nil
}

// Perm returns the value of "perm" config parameter
// from "storage" section parsed as an octal number.
//
// Returns PermDefault if the value is not set.
func Perm(c *config.Config) (fs.FileMode, error) {
	v := config.StringSafe(c.Sub(subsection), "perm")
	if v == "" {
		return PermDefault, nil
	}

	p, err := strconv.ParseUint(v, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s permissions %q: %w", subsection, v, err)
	}

	return fs.FileMode(p), nil
}

// NoSync returns the value of "no_sync" config parameter
// from "storage" section.
func NoSync(c *config.Config) bool {
	return config.BoolSafe(c.Sub(subsection), "no_sync")
}

// ReadOnly returns the value of "read_only" config parameter
// from "storage" section.
func ReadOnly(c *config.Config) bool {
	return config.BoolSafe(c.Sub(subsection), "read_only")
}
