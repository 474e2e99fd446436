package kvstore

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/oid"
	storagelog "github.com/nspcc-dev/neofs-dataset/pkg/local_object_storage/internal/log"
	"go.etcd.io/bbolt"
)

type objectHandle struct {
	s      *Store
	cnr    uuid.UUID
	id     oid.ID
	closed bool
}

func (h *objectHandle) checkWrite() error {
	if h.closed {
		return kv.ErrClosed
	}

	if h.s.readOnly {
		return kv.ErrReadOnly
	}

	return nil
}

func (h *objectHandle) update(dkey, akey string, f func(obj *bbolt.Bucket) error) error {
	if err := h.checkWrite(); err != nil {
		return err
	}

	if err := kv.CheckKeys(dkey, akey); err != nil {
		return err
	}

	return h.s.boltDB.Update(func(tx *bbolt.Tx) error {
		obj, err := objectBucket(tx, h.cnr, h.id)
		if err != nil {
			return err
		}

		return f(obj)
	})
}

func (h *objectHandle) view(dkey, akey string, f func(akey *bbolt.Bucket)) error {
	if h.closed {
		return kv.ErrClosed
	}

	if err := kv.CheckKeys(dkey, akey); err != nil {
		return err
	}

	return h.s.boltDB.View(func(tx *bbolt.Tx) error {
		obj, err := objectBucket(tx, h.cnr, h.id)
		if err != nil {
			return err
		}

		f(akeyBucket(obj, dkey, akey))

		return nil
	})
}

func (h *objectHandle) log(op, dkey, akey string) {
	storagelog.Write(h.s.log,
		storagelog.OpField(op),
		storagelog.ContainerField(h.cnr.String()),
		storagelog.ObjectField(h.id),
		storagelog.KeysField(dkey, akey),
		storagelog.StorageTypeField(Type),
	)
}

func (h *objectHandle) InsertSingle(dkey, akey string, v []byte) (err error) {
	defer func(start time.Time) { h.s.observe("insert_single", start, err) }(time.Now())

	err = h.update(dkey, akey, func(obj *bbolt.Bucket) error {
		b, err := newAKeyBucket(obj, dkey, akey, kindSingle)
		if err != nil {
			return err
		}

		return b.Put(singleKey, v)
	})
	if err != nil {
		return fmt.Errorf("insert single value: %w", err)
	}

	h.log("insert single", dkey, akey)

	return nil
}

func (h *objectHandle) FetchSingle(dkey, akey string, maxLen int) (res []byte, err error) {
	defer func(start time.Time) { h.s.observe("fetch_single", start, err) }(time.Now())

	res = []byte{}

	err = h.view(dkey, akey, func(b *bbolt.Bucket) {
		if b != nil && valueKind(b) == kindSingle {
			res = copyValue(kv.CutValue(b.Get(singleKey), maxLen))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("fetch single value: %w", err)
	}

	return res, nil
}

func (h *objectHandle) InsertArray(dkey, akey string, extents [][]byte) (err error) {
	defer func(start time.Time) { h.s.observe("insert_array", start, err) }(time.Now())

	err = h.update(dkey, akey, func(obj *bbolt.Bucket) error {
		b, err := newAKeyBucket(obj, dkey, akey, kindArray)
		if err != nil {
			return err
		}

		for i := range extents {
			if err := b.Put(extentKey(i), extents[i]); err != nil {
				return fmt.Errorf("put extent #%d: %w", i, err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("insert array value: %w", err)
	}

	h.log("insert array", dkey, akey)

	return nil
}

func (h *objectHandle) FetchArray(dkey, akey string, count, size int) (res [][]byte, err error) {
	defer func(start time.Time) { h.s.observe("fetch_array", start, err) }(time.Now())

	err = h.view(dkey, akey, func(b *bbolt.Bucket) {
		if b != nil && valueKind(b) == kindArray {
			res = readExtents(b, count, size)
			return
		}

		res = make([][]byte, count)
		for i := range res {
			res[i] = []byte{}
		}
	})
	if err != nil {
		return nil, fmt.Errorf("fetch array value: %w", err)
	}

	return res, nil
}

func (h *objectHandle) Close() error {
	if h.closed {
		return kv.ErrClosed
	}

	h.closed = true

	return nil
}
