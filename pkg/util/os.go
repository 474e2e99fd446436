package util

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
)

// MkdirAllX calls os.MkdirAll with the passed permissions
// but with +x for a user and a group. This makes the created
// dir openable regardless of the passed permissions.
func MkdirAllX(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm|0110)
}

// ExpandPath replaces leading ~ with the home directory of the user.
// Empty path is returned as is.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	res, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expand path %q: %w", path, err)
	}

	return res, nil
}
