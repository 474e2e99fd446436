package badgerstore

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	storagelog "github.com/nspcc-dev/neofs-dataset/pkg/local_object_storage/internal/log"
)

// CreateContainer implements kv.Store.
func (s *Store) CreateContainer() (id uuid.UUID, err error) {
	defer func(start time.Time) { s.observe("create_container", start, err) }(time.Now())

	if s.readOnly {
		return uuid.Nil, kv.ErrReadOnly
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		for {
			id = uuid.New()

			err := checkContainer(txn, id)
			if errors.Is(err, kv.ErrContainerNotFound) {
				break
			} else if err != nil {
				return err
			}
		}

		return txn.Set(containerKey(id), nil)
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

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: []byte{containerPrefix}})
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			id, err := uuid.FromBytes(it.Item().Key()[1:])
			if err != nil {
				return fmt.Errorf("invalid container key: %w", err)
			}

			res = append(res, id)
		}

		return nil
	})

	return res, err
}

// DeleteContainer implements kv.Store.
func (s *Store) DeleteContainer(id uuid.UUID) (err error) {
	defer func(start time.Time) { s.observe("delete_container", start, err) }(time.Now())

	if s.readOnly {
		return kv.ErrReadOnly
	}

	err = s.db.View(func(txn *badger.Txn) error {
		return checkContainer(txn, id)
	})
	if err != nil {
		return err
	}

	err = s.db.DropPrefix(containerKey(id), objectKeyPrefix(id), containerValuesPrefix(id))
	if err != nil {
		return fmt.Errorf("drop container data: %w", err)
	}

	storagelog.Write(s.log,
		storagelog.OpField("delete container"),
		storagelog.ContainerField(id.String()),
		storagelog.StorageTypeField(Type),
	)

	return nil
}
