package badgerstore

import (
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/oid"
	storagelog "github.com/nspcc-dev/neofs-dataset/pkg/local_object_storage/internal/log"
)

type objectHandle struct {
	s      *Store
	cnr    uuid.UUID
	id     oid.ID
	closed bool
}

func (h *objectHandle) checkKeys(dkey, akey string) error {
	if h.closed {
		return kv.ErrClosed
	}

	return kv.CheckKeys(dkey, akey)
}

func (h *objectHandle) put(op string, rec kv.Record) error {
	if err := h.checkKeys(rec.DKey, rec.AKey); err != nil {
		return err
	}

	if h.s.readOnly {
		return kv.ErrReadOnly
	}

	prefix := akeyPrefix(h.cnr, h.id, rec.DKey, rec.AKey)

	err := h.s.db.Update(func(txn *badger.Txn) error {
		if err := checkObject(txn, h.cnr, h.id); err != nil {
			return err
		}

		return putValue(txn, prefix, rec)
	})
	if err != nil {
		return err
	}

	if rec.Kind == kv.RecordArray {
		if err := h.s.putExtents(prefix, rec.Extents); err != nil {
			return err
		}
	}

	storagelog.Write(h.s.log,
		storagelog.OpField(op),
		storagelog.ContainerField(h.cnr.String()),
		storagelog.ObjectField(h.id),
		storagelog.KeysField(rec.DKey, rec.AKey),
		storagelog.StorageTypeField(Type),
	)

	return nil
}

// view passes akey prefix and kind of the stored value (-1 if there is no
// value) to f.
func (h *objectHandle) view(dkey, akey string, f func(txn *badger.Txn, prefix []byte, kind int) error) error {
	if err := h.checkKeys(dkey, akey); err != nil {
		return err
	}

	return h.s.db.View(func(txn *badger.Txn) error {
		if err := checkObject(txn, h.cnr, h.id); err != nil {
			return err
		}

		prefix := akeyPrefix(h.cnr, h.id, dkey, akey)

		kind, err := valueKind(txn, prefix)
		if err != nil {
			return err
		}

		return f(txn, prefix, kind)
	})
}

func (h *objectHandle) InsertSingle(dkey, akey string, v []byte) (err error) {
	defer func(start time.Time) { h.s.observe("insert_single", start, err) }(time.Now())

	err = h.put("insert single", kv.Record{Kind: kv.RecordSingle, DKey: dkey, AKey: akey, Value: v})
	if err != nil {
		return fmt.Errorf("insert single value: %w", err)
	}

	return nil
}

func (h *objectHandle) FetchSingle(dkey, akey string, maxLen int) (res []byte, err error) {
	defer func(start time.Time) { h.s.observe("fetch_single", start, err) }(time.Now())

	res = []byte{}

	err = h.view(dkey, akey, func(txn *badger.Txn, prefix []byte, kind int) error {
		if kind != kindSingle {
			return nil
		}

		v, err := getValue(txn, tagKey(prefix, singleTag))
		if err != nil {
			return err
		}

		res = append(res, kv.CutValue(v, maxLen)...)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch single value: %w", err)
	}

	return res, nil
}

func (h *objectHandle) InsertArray(dkey, akey string, extents [][]byte) (err error) {
	defer func(start time.Time) { h.s.observe("insert_array", start, err) }(time.Now())

	err = h.put("insert array", kv.Record{Kind: kv.RecordArray, DKey: dkey, AKey: akey, Extents: extents})
	if err != nil {
		return fmt.Errorf("insert array value: %w", err)
	}

	return nil
}

func (h *objectHandle) FetchArray(dkey, akey string, count, size int) (res [][]byte, err error) {
	defer func(start time.Time) { h.s.observe("fetch_array", start, err) }(time.Now())

	err = h.view(dkey, akey, func(txn *badger.Txn, prefix []byte, kind int) error {
		res = make([][]byte, count)

		for i := range res {
			res[i] = []byte{}

			if kind != kindArray {
				continue
			}

			v, err := getValue(txn, extentKey(prefix, i))
			if err != nil {
				return fmt.Errorf("read extent #%d: %w", i, err)
			}

			res[i] = append(res[i], kv.CutValue(v, size)...)
		}

		return nil
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
