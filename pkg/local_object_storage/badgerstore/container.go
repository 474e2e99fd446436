package badgerstore

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/oid"
	storagelog "github.com/nspcc-dev/neofs-dataset/pkg/local_object_storage/internal/log"
	"github.com/nspcc-dev/neofs-dataset/pkg/local_object_storage/util/logicerr"
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

	err = h.s.db.Update(func(txn *badger.Txn) error {
		if err := checkContainer(txn, h.id); err != nil {
			return err
		}

		for {
			id = oid.New()

			_, err := txn.Get(objectKey(h.id, id))
			if errors.Is(err, badger.ErrKeyNotFound) {
				break
			} else if err != nil {
				return err
			}
		}

		return txn.Set(objectKey(h.id, id), encodeObjectMeta(rank, class))
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

	err := h.s.db.View(func(txn *badger.Txn) error {
		return checkObject(txn, h.id, id)
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

	err := h.s.db.View(func(txn *badger.Txn) error {
		return h.iterateObjects(txn, func(info kv.ObjectInfo) error {
			var last string

			err := iterateValues(txn, objectValuesPrefix(h.id, info.ID), func(rec kv.Record) error {
				if info.DKeys == 0 || rec.DKey != last {
					info.DKeys++
					last = rec.DKey
				}
				return nil
			})
			if err != nil {
				return err
			}

			res = append(res, info)

			return nil
		})
	})

	return res, err
}

func (h *containerHandle) iterateObjects(txn *badger.Txn, f func(kv.ObjectInfo) error) error {
	if err := checkContainer(txn, h.id); err != nil {
		return err
	}

	prefix := objectKeyPrefix(h.id)

	it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix})
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		var (
			info kv.ObjectInfo
			err  error
		)

		item := it.Item()

		info.ID, err = oid.FromBytes(item.Key()[len(prefix):])
		if err != nil {
			return fmt.Errorf("invalid object key: %w", err)
		}

		meta, err := itemValue(item)
		if err != nil {
			return fmt.Errorf("read object %s meta: %w", info.ID, err)
		}

		info.Rank, info.Class, err = decodeObjectMeta(meta)
		if err != nil {
			return fmt.Errorf("object %s: %w", info.ID, err)
		}

		if err := f(info); err != nil {
			return err
		}
	}

	return nil
}

// iterateValues passes all values of the object in key order.
func iterateValues(txn *badger.Txn, prefix []byte, f func(kv.Record) error) error {
	it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix, PrefetchValues: true, PrefetchSize: 100})
	defer it.Close()

	var cur *kv.Record

	flush := func() error {
		if cur == nil {
			return nil
		}

		rec := *cur
		cur = nil

		return f(rec)
	}

	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()

		k, err := parseValueKey(item.Key()[len(prefix):])
		if err != nil {
			return err
		}

		v, err := itemValue(item)
		if err != nil {
			return fmt.Errorf("read value %q/%q: %w", k.dkey, k.akey, err)
		}

		if k.tag == kindTag {
			if err := flush(); err != nil {
				return err
			}

			cur = &kv.Record{DKey: k.dkey, AKey: k.akey}

			switch {
			case len(v) == 1 && v[0] == kindSingle:
				cur.Kind = kv.RecordSingle
				cur.Value = []byte{}
			case len(v) == 1 && v[0] == kindArray:
				cur.Kind = kv.RecordArray
			default:
				return fmt.Errorf("unknown value kind of %q/%q", k.dkey, k.akey)
			}

			continue
		}

		if cur == nil || cur.DKey != k.dkey || cur.AKey != k.akey {
			return fmt.Errorf("value %q/%q without kind", k.dkey, k.akey)
		}

		if k.tag == singleTag {
			cur.Value = v
		} else {
			cur.Extents = append(cur.Extents, v)
		}
	}

	return flush()
}

// Iterate implements kv.Dumper. The whole iteration is done in a single
// read transaction.
func (h *containerHandle) Iterate(f func(kv.Record) error) error {
	if h.closed {
		return kv.ErrClosed
	}

	return h.s.db.View(func(txn *badger.Txn) error {
		return h.iterateObjects(txn, func(info kv.ObjectInfo) error {
			err := f(kv.Record{Kind: kv.RecordObject, Object: info.ID, Rank: info.Rank, Class: info.Class})
			if err != nil {
				return err
			}

			return iterateValues(txn, objectValuesPrefix(h.id, info.ID), func(rec kv.Record) error {
				rec.Object = info.ID
				return f(rec)
			})
		})
	})
}

// Restore implements kv.Restorer.
func (h *containerHandle) Restore(rec kv.Record) (err error) {
	defer func(start time.Time) { h.s.observe("restore", start, err) }(time.Now())

	if err = h.checkWrite(); err != nil {
		return err
	}

	if rec.Object.IsZero() {
		return kv.ErrObjectNotFound
	}

	var prefix []byte

	err = h.s.db.Update(func(txn *badger.Txn) error {
		switch rec.Kind {
		case kv.RecordObject:
			if err := checkContainer(txn, h.id); err != nil {
				return err
			}

			return txn.Set(objectKey(h.id, rec.Object), encodeObjectMeta(rec.Rank, rec.Class))
		case kv.RecordSingle, kv.RecordArray:
			if err := kv.CheckKeys(rec.DKey, rec.AKey); err != nil {
				return err
			}

			if err := checkObject(txn, h.id, rec.Object); err != nil {
				return err
			}

			prefix = akeyPrefix(h.id, rec.Object, rec.DKey, rec.AKey)

			return putValue(txn, prefix, rec)
		default:
			return logicerr.Wrap(fmt.Errorf("unknown record kind %d", rec.Kind))
		}
	})
	if err != nil || rec.Kind != kv.RecordArray {
		return err
	}

	return h.s.putExtents(prefix, rec.Extents)
}
