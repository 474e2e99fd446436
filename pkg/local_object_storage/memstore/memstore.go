// Package memstore implements kv.Store keeping all the data in memory.
package memstore

import (
	"bytes"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/oid"
)

// Store is an in-memory kv.Store. Store is safe for concurrent use.
type Store struct {
	mtx sync.RWMutex

	readOnly   bool
	containers map[uuid.UUID]*container

	// number of open container and object handles
	handles int
}

type container struct {
	objects map[oid.ID]*object
}

type object struct {
	rank  uint32
	class kv.ObjectClass
	dkeys map[string]map[string]*value
}

type value struct {
	array   bool
	single  []byte
	extents [][]byte
}

var _ kv.Store = (*Store)(nil)

// New returns new empty Store.
func New() *Store {
	return &Store{
		containers: make(map[uuid.UUID]*container),
	}
}

// SetReadOnly switches Store to the read-only mode and back.
func (s *Store) SetReadOnly(ro bool) {
	s.mtx.Lock()
	s.readOnly = ro
	s.mtx.Unlock()
}

// OpenHandles returns number of container and object handles which were
// opened but not closed yet.
func (s *Store) OpenHandles() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return s.handles
}

// CreateContainer implements kv.Store.
func (s *Store) CreateContainer() (uuid.UUID, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.readOnly {
		return uuid.Nil, kv.ErrReadOnly
	}

	id := uuid.New()
	s.containers[id] = &container{objects: make(map[oid.ID]*object)}

	return id, nil
}

// ListContainers implements kv.Store.
func (s *Store) ListContainers() ([]uuid.UUID, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]uuid.UUID, 0, len(s.containers))
	for id := range s.containers {
		res = append(res, id)
	}

	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i][:], res[j][:]) < 0
	})

	return res, nil
}

// DeleteContainer implements kv.Store.
func (s *Store) DeleteContainer(id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.readOnly {
		return kv.ErrReadOnly
	}

	if _, ok := s.containers[id]; !ok {
		return kv.ErrContainerNotFound
	}

	delete(s.containers, id)

	return nil
}

// Container implements kv.Store.
func (s *Store) Container(id uuid.UUID) kv.ContainerOpener {
	return containerRef{s: s, id: id}
}

// Close implements kv.Store. Does nothing.
func (s *Store) Close() error {
	return nil
}

type containerRef struct {
	s  *Store
	id uuid.UUID
}

// OpenContainer implements kv.ContainerOpener.
func (r containerRef) OpenContainer() (kv.Container, error) {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	c, ok := r.s.containers[r.id]
	if !ok {
		return nil, kv.ErrContainerNotFound
	}

	r.s.handles++

	return &containerHandle{s: r.s, c: c}, nil
}

func copyValue(v []byte) []byte {
	return append([]byte{}, v...)
}
