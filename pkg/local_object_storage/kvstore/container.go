package kvstore

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/oid"
	storagelog "github.com/nspcc-dev/neofs-dataset/pkg/local_object_storage/internal/log"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

type containerHandle struct {
	s      *Store
	id     uuid.UUID
	closed bool
}

var (
	_ kv.Dumper       = (*containerHandle)(nil)
	_ kv.Restorer     = (*containerHandle)(nil)
	_ kv.ObjectLister = (*containerHandle)(nil)
)

func (h *containerHandle) checkWrite() error {
	if h.closed {
		return kv.ErrClosed
	}

	if h.s.readOnly {
		return kv.ErrReadOnly
	}

	return nil
}

func (h *containerHandle) CreateObject(rank uint32, class kv.ObjectClass) (id oid.ID, err error) {
	defer func(start time.Time) { h.s.observe("create_object", start, err) }(time.Now())

	if err = h.checkWrite(); err != nil {
		return oid.ID{}, err
	}

	err = h.s.boltDB.Update(func(tx *bbolt.Tx) error {
		c, err := containerBucket(tx, h.id)
		if err != nil {
			return err
		}

		for {
			id = oid.New()
			if c.Bucket(id[:]) == nil {
				break
			}
		}

		b, err := c.CreateBucket(id[:])
		if err != nil {
			return fmt.Errorf("create object bucket: %w", err)
		}

		return b.Put(objectMetaKey, encodeObjectMeta(rank, class))
	})
	if err != nil {
		return oid.ID{}, err
	}

	storagelog.Write(h.s.log,
		storagelog.OpField("create object"),
		storagelog.ContainerField(h.id.String()),
		storagelog.ObjectField(id),
		storagelog.StorageTypeField(Type),
		zap.Uint32("rank", rank),
	)

	return id, nil
}

func (h *containerHandle) OpenObject(id oid.ID) (kv.Object, error) {
	if h.closed {
		return nil, kv.ErrClosed
	}

	err := h.s.boltDB.View(func(tx *bbolt.Tx) error {
		_, err := objectBucket(tx, h.id, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &objectHandle{s: h.s, cnr: h.id, id: id}, nil
}

func (h *containerHandle) Close() error {
	if h.closed {
		return kv.ErrClosed
	}

	h.closed = true

	return nil
}

func (h *containerHandle) ListObjects() ([]kv.ObjectInfo, error) {
	if h.closed {
		return nil, kv.ErrClosed
	}

	var res []kv.ObjectInfo

	err := h.s.boltDB.View(func(tx *bbolt.Tx) error {
		c, err := containerBucket(tx, h.id)
		if err != nil {
			return err
		}

		return c.ForEach(func(k, _ []byte) error {
			info, err := objectInfo(c, k)
			if err != nil {
				return err
			}

			res = append(res, info)

			return nil
		})
	})

	return res, err
}

func objectInfo(c *bbolt.Bucket, name []byte) (kv.ObjectInfo, error) {
	var (
		info kv.ObjectInfo
		err  error
	)

	info.ID, err = oid.FromBytes(name)
	if err != nil {
		return info, fmt.Errorf("invalid object bucket name: %w", err)
	}

	b := c.Bucket(name)
	if b == nil {
		return info, fmt.Errorf("object %s is not a bucket", info.ID)
	}

	info.Rank, info.Class, err = decodeObjectMeta(b.Get(objectMetaKey))
	if err != nil {
		return info, fmt.Errorf("object %s: %w", info.ID, err)
	}

	cur := b.Cursor()
	for k, v := cur.Seek([]byte{dkeyPrefix}); k != nil && k[0] == dkeyPrefix; k, v = cur.Next() {
		if v == nil {
			info.DKeys++
		}
	}

	return info, nil
}
