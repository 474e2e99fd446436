package kvstore

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	storagelog "github.com/nspcc-dev/neofs-dataset/pkg/local_object_storage/internal/log"
	"go.etcd.io/bbolt"
)

// CreateContainer implements kv.Store.
func (s *Store) CreateContainer() (id uuid.UUID, err error) {
	defer func(start time.Time) { s.observe("create_container", start, err) }(time.Now())

	if s.readOnly {
		return uuid.Nil, kv.ErrReadOnly
	}

	err = s.boltDB.Update(func(tx *bbolt.Tx) error {
		root := tx.Bucket(containersBucketName)
		if root == nil {
			return fmt.Errorf("database %s is not initialized", s.path)
		}

		for {
			id = uuid.New()
			if root.Bucket(id[:]) == nil {
				break
			}
		}

		_, err := root.CreateBucket(id[:])
		return err
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("create container: %w", err)
	}

	storagelog.Write(s.log,
		storagelog.OpField("create container"),
		storagelog.ContainerField(id.String()),
		storagelog.StorageTypeField(Type),
	)

	return id, nil
}

// ListContainers implements kv.Store.
func (s *Store) ListContainers() ([]uuid.UUID, error) {
	var res []uuid.UUID

	err := s.boltDB.View(func(tx *bbolt.Tx) error {
		root := tx.Bucket(containersBucketName)
		if root == nil {
			return nil
		}

		return root.ForEach(func(k, _ []byte) error {
			id, err := uuid.FromBytes(k)
			if err != nil {
				return fmt.Errorf("invalid container bucket name: %w", err)
			}

			res = append(res, id)

			return nil
		})
	})

	return res, err
}

// DeleteContainer implements kv.Store.
func (s *Store) DeleteContainer(id uuid.UUID) (err error) {
	defer func(start time.Time) { s.observe("delete_container", start, err) }(time.Now())

	if s.readOnly {
		return kv.ErrReadOnly
	}

	err = s.boltDB.Update(func(tx *bbolt.Tx) error {
		root := tx.Bucket(containersBucketName)
		if root == nil || root.Bucket(id[:]) == nil {
			return kv.ErrContainerNotFound
		}

		return root.DeleteBucket(id[:])
	})
	if err != nil {
		return err
	}

	storagelog.Write(s.log,
		storagelog.OpField("delete container"),
		storagelog.ContainerField(id.String()),
		storagelog.StorageTypeField(Type),
	)

	return nil
}
