package memstore

import (
	"fmt"

	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/local_object_storage/util/logicerr"
)

type objectHandle struct {
	s      *Store
	obj    *object
	closed bool
}

func errUnknownRecord(k kv.RecordKind) error {
	return logicerr.Wrap(fmt.Errorf("unknown record kind %d", k))
}

func newArray(extents [][]byte) *value {
	v := &value{array: true, extents: make([][]byte, len(extents))}
	for i := range extents {
		v.extents[i] = copyValue(extents[i])
	}

	return v
}

func (o *object) put(dkey, akey string, v *value) error {
	if err := kv.CheckKeys(dkey, akey); err != nil {
		return err
	}

	akeys, ok := o.dkeys[dkey]
	if !ok {
		akeys = make(map[string]*value)
		o.dkeys[dkey] = akeys
	}

	akeys[akey] = v

	return nil
}

func (o *object) get(dkey, akey string) *value {
	return o.dkeys[dkey][akey]
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

func (h *objectHandle) InsertSingle(dkey, akey string, v []byte) error {
	h.s.mtx.Lock()
	defer h.s.mtx.Unlock()

	if err := h.checkWrite(); err != nil {
		return err
	}

	return h.obj.put(dkey, akey, &value{single: copyValue(v)})
}

func (h *objectHandle) FetchSingle(dkey, akey string, maxLen int) ([]byte, error) {
	h.s.mtx.RLock()
	defer h.s.mtx.RUnlock()

	if h.closed {
		return nil, kv.ErrClosed
	}

	if err := kv.CheckKeys(dkey, akey); err != nil {
		return nil, err
	}

	v := h.obj.get(dkey, akey)
	if v == nil || v.array {
		return []byte{}, nil
	}

	return copyValue(kv.CutValue(v.single, maxLen)), nil
}

func (h *objectHandle) InsertArray(dkey, akey string, extents [][]byte) error {
	h.s.mtx.Lock()
	defer h.s.mtx.Unlock()

	if err := h.checkWrite(); err != nil {
		return err
	}

	return h.obj.put(dkey, akey, newArray(extents))
}

func (h *objectHandle) FetchArray(dkey, akey string, count, size int) ([][]byte, error) {
	h.s.mtx.RLock()
	defer h.s.mtx.RUnlock()

	if h.closed {
		return nil, kv.ErrClosed
	}

	if err := kv.CheckKeys(dkey, akey); err != nil {
		return nil, err
	}

	v := h.obj.get(dkey, akey)
	res := make([][]byte, count)

	for i := range res {
		if v == nil || !v.array || i >= len(v.extents) {
			res[i] = []byte{}
			continue
		}

		res[i] = copyValue(kv.CutValue(v.extents[i], size))
	}

	return res, nil
}

func (h *objectHandle) Close() error {
	h.s.mtx.Lock()
	defer h.s.mtx.Unlock()

	if h.closed {
		return kv.ErrClosed
	}

	h.closed = true
	h.s.handles--

	return nil
}
