package memstore

import (
	"bytes"
	"sort"

	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/oid"
)

type containerHandle struct {
	s      *Store
	c      *container
	closed bool
}

var (
	_ kv.Dumper       = (*containerHandle)(nil)
	_ kv.Restorer     = (*containerHandle)(nil)
	_ kv.ObjectLister = (*containerHandle)(nil)
)

func (h *containerHandle) CreateObject(rank uint32, class kv.ObjectClass) (oid.ID, error) {
	h.s.mtx.Lock()
	defer h.s.mtx.Unlock()

	if err := h.checkWrite(); err != nil {
		return oid.ID{}, err
	}

	id := oid.New()
	for _, ok := h.c.objects[id]; ok; _, ok = h.c.objects[id] {
		id = oid.New()
	}

	h.c.objects[id] = newObject(rank, class)

	return id, nil
}

func newObject(rank uint32, class kv.ObjectClass) *object {
	return &object{
		rank:  rank,
		class: class,
		dkeys: make(map[string]map[string]*value),
	}
}

func (h *containerHandle) OpenObject(id oid.ID) (kv.Object, error) {
	h.s.mtx.Lock()
	defer h.s.mtx.Unlock()

	if h.closed {
		return nil, kv.ErrClosed
	}

	obj, ok := h.c.objects[id]
	if !ok {
		return nil, kv.ErrObjectNotFound
	}

	h.s.handles++

	return &objectHandle{s: h.s, obj: obj}, nil
}

func (h *containerHandle) Close() error {
	h.s.mtx.Lock()
	defer h.s.mtx.Unlock()

	if h.closed {
		return kv.ErrClosed
	}

	h.closed = true
	h.s.handles--

	return nil
}

func (h *containerHandle) checkWrite() error {
	if h.closed {
		return kv.ErrClosed
	}

	if h.s.readOnly {
		return kv.ErrReadOnly
	}

	return nil
}

func (h *containerHandle) sortedIDs() []oid.ID {
	ids := make([]oid.ID, 0, len(h.c.objects))
	for id := range h.c.objects {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})

	return ids
}

func (h *containerHandle) ListObjects() ([]kv.ObjectInfo, error) {
	h.s.mtx.RLock()
	defer h.s.mtx.RUnlock()

	if h.closed {
		return nil, kv.ErrClosed
	}

	ids := h.sortedIDs()
	res := make([]kv.ObjectInfo, len(ids))

	for i := range ids {
		obj := h.c.objects[ids[i]]
		res[i] = kv.ObjectInfo{
			ID:    ids[i],
			Rank:  obj.rank,
			Class: obj.class,
			DKeys: len(obj.dkeys),
		}
	}

	return res, nil
}

func sortedKeys[V any](m map[string]V) []string {
	res := make([]string, 0, len(m))
	for k := range m {
		res = append(res, k)
	}

	sort.Strings(res)

	return res
}

// Iterate implements kv.Dumper. Store lock is not held while f is running.
func (h *containerHandle) Iterate(f func(kv.Record) error) error {
	h.s.mtx.RLock()
	if h.closed {
		h.s.mtx.RUnlock()
		return kv.ErrClosed
	}
	ids := h.sortedIDs()
	h.s.mtx.RUnlock()

	for _, id := range ids {
		for _, rec := range h.objectRecords(id) {
			if err := f(rec); err != nil {
				return err
			}
		}
	}

	return nil
}

// objectRecords returns records of the object or nothing if the object has
// been removed.
func (h *containerHandle) objectRecords(id oid.ID) []kv.Record {
	h.s.mtx.RLock()
	defer h.s.mtx.RUnlock()

	obj, ok := h.c.objects[id]
	if !ok {
		return nil
	}

	res := []kv.Record{{Kind: kv.RecordObject, Object: id, Rank: obj.rank, Class: obj.class}}

	for _, dkey := range sortedKeys(obj.dkeys) {
		akeys := obj.dkeys[dkey]

		for _, akey := range sortedKeys(akeys) {
			v := akeys[akey]
			rec := kv.Record{Kind: kv.RecordSingle, Object: id, DKey: dkey, AKey: akey}

			if v.array {
				rec.Kind = kv.RecordArray
				rec.Extents = make([][]byte, len(v.extents))
				for i := range v.extents {
					rec.Extents[i] = copyValue(v.extents[i])
				}
			} else {
				rec.Value = copyValue(v.single)
			}

			res = append(res, rec)
		}
	}

	return res
}

func (h *containerHandle) Restore(rec kv.Record) error {
	h.s.mtx.Lock()
	defer h.s.mtx.Unlock()

	if err := h.checkWrite(); err != nil {
		return err
	}

	if rec.Object.IsZero() {
		return kv.ErrObjectNotFound
	}

	obj, ok := h.c.objects[rec.Object]

	switch rec.Kind {
	case kv.RecordObject:
		if !ok {
			h.c.objects[rec.Object] = newObject(rec.Rank, rec.Class)
			return nil
		}

		obj.rank, obj.class = rec.Rank, rec.Class

		return nil
	case kv.RecordSingle:
		if !ok {
			return kv.ErrObjectNotFound
		}

		return obj.put(rec.DKey, rec.AKey, &value{single: copyValue(rec.Value)})
	case kv.RecordArray:
		if !ok {
			return kv.ErrObjectNotFound
		}

		return obj.put(rec.DKey, rec.AKey, newArray(rec.Extents))
	default:
		return errUnknownRecord(rec.Kind)
	}
}
