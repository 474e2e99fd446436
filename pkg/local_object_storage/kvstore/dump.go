package kvstore

import (
	"fmt"
	"time"

	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/local_object_storage/util/logicerr"
	"go.etcd.io/bbolt"
)

// Iterate implements kv.Dumper. Each object is read in a separate read
// transaction which is finished before its records are passed to f, so f
// may write to the same Store.
func (h *containerHandle) Iterate(f func(kv.Record) error) error {
	if h.closed {
		return kv.ErrClosed
	}

	var names [][]byte

	err := h.s.boltDB.View(func(tx *bbolt.Tx) error {
		c, err := containerBucket(tx, h.id)
		if err != nil {
			return err
		}

		return c.ForEach(func(name, _ []byte) error {
			names = append(names, copyValue(name))
			return nil
		})
	})
	if err != nil {
		return err
	}

	for i := range names {
		var recs []kv.Record

		err = h.s.boltDB.View(func(tx *bbolt.Tx) error {
			c, err := containerBucket(tx, h.id)
			if err != nil {
				return err
			}

			if c.Bucket(names[i]) == nil {
				return nil // removed after listing
			}

			info, err := objectInfo(c, names[i])
			if err != nil {
				return err
			}

			recs = append(recs, kv.Record{Kind: kv.RecordObject, Object: info.ID, Rank: info.Rank, Class: info.Class})

			return iterateValues(c.Bucket(names[i]), func(rec kv.Record) error {
				rec.Object = info.ID
				recs = append(recs, rec)
				return nil
			})
		})
		if err != nil {
			return err
		}

		for j := range recs {
			if err := f(recs[j]); err != nil {
				return err
			}
		}
	}

	return nil
}

func iterateValues(obj *bbolt.Bucket, f func(kv.Record) error) error {
	cur := obj.Cursor()
	for dk, v := cur.Seek([]byte{dkeyPrefix}); dk != nil && dk[0] == dkeyPrefix; dk, v = cur.Next() {
		if v != nil {
			continue
		}

		dkey := string(dk[1:])

		err := obj.Bucket(dk).ForEach(func(ak, _ []byte) error {
			b := obj.Bucket(dk).Bucket(ak)
			if b == nil {
				return nil
			}

			rec := kv.Record{DKey: dkey, AKey: string(ak)}

			switch valueKind(b) {
			case kindSingle:
				rec.Kind = kv.RecordSingle
				rec.Value = copyValue(b.Get(singleKey))
			case kindArray:
				rec.Kind = kv.RecordArray
				rec.Extents = allExtents(b)
			default:
				return fmt.Errorf("unknown value kind of %q/%q", dkey, ak)
			}

			return f(rec)
		})
		if err != nil {
			return err
		}
	}

	return nil
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

	return h.s.boltDB.Update(func(tx *bbolt.Tx) error {
		c, err := containerBucket(tx, h.id)
		if err != nil {
			return err
		}

		switch rec.Kind {
		case kv.RecordObject:
			b, err := c.CreateBucketIfNotExists(rec.Object[:])
			if err != nil {
				return fmt.Errorf("create object bucket: %w", err)
			}

			return b.Put(objectMetaKey, encodeObjectMeta(rec.Rank, rec.Class))
		case kv.RecordSingle, kv.RecordArray:
			if err := kv.CheckKeys(rec.DKey, rec.AKey); err != nil {
				return err
			}

			obj := c.Bucket(rec.Object[:])
			if obj == nil {
				return kv.ErrObjectNotFound
			}

			if rec.Kind == kv.RecordSingle {
				b, err := newAKeyBucket(obj, rec.DKey, rec.AKey, kindSingle)
				if err != nil {
					return err
				}

				return b.Put(singleKey, rec.Value)
			}

			b, err := newAKeyBucket(obj, rec.DKey, rec.AKey, kindArray)
			if err != nil {
				return err
			}

			for i := range rec.Extents {
				if err := b.Put(extentKey(i), rec.Extents[i]); err != nil {
					return fmt.Errorf("put extent #%d: %w", i, err)
				}
			}

			return nil
		default:
			return logicerr.Wrap(fmt.Errorf("unknown record kind %d", rec.Kind))
		}
	})
}
