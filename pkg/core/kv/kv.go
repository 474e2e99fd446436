// Package kv defines the storage capability surface of the object → dkey →
// akey namespace. Stores implement it, dataset tooling consumes it.
package kv

import (
	"errors"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/oid"
	"github.com/nspcc-dev/neofs-dataset/pkg/local_object_storage/util/logicerr"
)

// ObjectClass is a placement class requested on object creation.
type ObjectClass uint8

// DefaultClass is the class used when nothing else is requested.
const DefaultClass ObjectClass = 3

// ErrObjectNotFound is returned on opening an object which was never created
// in the container.
var ErrObjectNotFound = logicerr.New("object not found")

// ErrContainerNotFound is returned on opening missing container.
var ErrContainerNotFound = logicerr.New("container not found")

// ErrReadOnly is returned by modifying operations on storage opened in
// read-only mode.
var ErrReadOnly = logicerr.New("opened as read-only")

// ContainerOpener opens a container holding objects.
type ContainerOpener interface {
	OpenContainer() (Container, error)
}

// Container is an open container session. Container MUST be closed by the
// caller once it is no longer needed.
type Container interface {
	// CreateObject creates new empty object and returns its identity
	// assigned by the store.
	CreateObject(rank uint32, class ObjectClass) (oid.ID, error)
	// OpenObject opens previously created object. Returns ErrObjectNotFound
	// if there is no such object.
	OpenObject(oid.ID) (Object, error)
	Close() error
}

// Object is an open object handle. Object MUST be closed by the caller.
//
// Fetch operations never fail on absent keys: absent values are returned
// as empty ones.
type Object interface {
	// InsertSingle stores single value under dkey/akey overwriting previous one.
	InsertSingle(dkey, akey string, value []byte) error
	// FetchSingle reads single value stored under dkey/akey. Values longer
	// than maxLen are cut to maxLen bytes.
	FetchSingle(dkey, akey string, maxLen int) ([]byte, error)
	// InsertArray stores ordered extents under dkey/akey replacing all
	// previously stored extents.
	InsertArray(dkey, akey string, extents [][]byte) error
	// FetchArray reads first count extents stored under dkey/akey, each one
	// cut to size bytes. Missing extents are returned empty.
	FetchArray(dkey, akey string, count, size int) ([][]byte, error)
	Close() error
}

// ObjectInfo describes stored object.
type ObjectInfo struct {
	ID    oid.ID
	Rank  uint32
	Class ObjectClass
	DKeys int
}

// ErrEmptyKey is returned when dkey or akey is empty.
var ErrEmptyKey = logicerr.New("empty key")

// CheckKeys checks dkey and akey are acceptable for the store.
func CheckKeys(dkey, akey string) error {
	if dkey == "" || akey == "" {
		return ErrEmptyKey
	}

	return nil
}

// CutValue returns first maxLen bytes of v. Negative maxLen means no limit.
func CutValue(v []byte, maxLen int) []byte {
	if maxLen >= 0 && len(v) > maxLen {
		return v[:maxLen]
	}

	return v
}

// ErrClosed is returned on using closed container or object handle.
var ErrClosed = errors.New("handle is closed")

// Store manages containers of the local storage.
type Store interface {
	// CreateContainer creates new empty container.
	CreateContainer() (uuid.UUID, error)
	// ListContainers returns identifiers of all containers.
	ListContainers() ([]uuid.UUID, error)
	// DeleteContainer removes container with all its objects. Returns
	// ErrContainerNotFound if there is no such container.
	DeleteContainer(uuid.UUID) error
	// Container returns opener of the container with the given identifier.
	// Existence of the container is checked on opening.
	Container(uuid.UUID) ContainerOpener
	Close() error
}

// ObjectLister is a Container which can list its objects.
type ObjectLister interface {
	Container
	// ListObjects returns all objects of the container ordered by ID.
	ListObjects() ([]ObjectInfo, error)
}
