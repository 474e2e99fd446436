package badgerstore

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/oid"
)

const (
	containerPrefix = 0x01
	objectPrefix    = 0x02
	valuePrefix     = 0x03
)

// tags following akey
const (
	kindTag = iota
	singleTag
	extentTag
)

const (
	kindSingle = iota
	kindArray
)

const (
	escByte   = 0x00
	escEscape = 0xff
	escEnd    = 0x01
)

const objectMetaSize = 5

func containerKey(cnr uuid.UUID) []byte {
	return append([]byte{containerPrefix}, cnr[:]...)
}

func objectKeyPrefix(cnr uuid.UUID) []byte {
	return append([]byte{objectPrefix}, cnr[:]...)
}

func objectKey(cnr uuid.UUID, id oid.ID) []byte {
	return append(objectKeyPrefix(cnr), id[:]...)
}

func containerValuesPrefix(cnr uuid.UUID) []byte {
	return append([]byte{valuePrefix}, cnr[:]...)
}

func objectValuesPrefix(cnr uuid.UUID, id oid.ID) []byte {
	return append(containerValuesPrefix(cnr), id[:]...)
}

func akeyPrefix(cnr uuid.UUID, id oid.ID, dkey, akey string) []byte {
	k := objectValuesPrefix(cnr, id)
	k = appendEscaped(k, dkey)
	return appendEscaped(k, akey)
}

func tagKey(prefix []byte, tag byte) []byte {
	return append(append(make([]byte, 0, len(prefix)+1), prefix...), tag)
}

func extentKey(prefix []byte, i int) []byte {
	k := make([]byte, len(prefix)+9)
	copy(k, prefix)
	k[len(prefix)] = extentTag
	binary.BigEndian.PutUint64(k[len(prefix)+1:], uint64(i))

	return k
}

// appendEscaped appends s to dst so that byte-wise order of the results
// matches the order of strings.
func appendEscaped(dst []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		if s[i] == escByte {
			dst = append(dst, escByte, escEscape)
			continue
		}
		dst = append(dst, s[i])
	}

	return append(dst, escByte, escEnd)
}

var errInvalidKey = errors.New("invalid value key")

func cutEscaped(k []byte) (string, []byte, error) {
	var res []byte

	for i := 0; i < len(k); i++ {
		if k[i] != escByte {
			res = append(res, k[i])
			continue
		}

		if i+1 == len(k) {
			return "", nil, errInvalidKey
		}

		switch k[i+1] {
		case escEscape:
			res = append(res, escByte)
			i++
		case escEnd:
			return string(res), k[i+2:], nil
		default:
			return "", nil, errInvalidKey
		}
	}

	return "", nil, errInvalidKey
}

type valueKey struct {
	dkey, akey string
	tag        byte
	index      uint64
}

// parseValueKey parses key with stripped object values prefix.
func parseValueKey(k []byte) (valueKey, error) {
	var (
		res valueKey
		err error
	)

	res.dkey, k, err = cutEscaped(k)
	if err != nil {
		return res, err
	}

	res.akey, k, err = cutEscaped(k)
	if err != nil {
		return res, err
	}

	if len(k) == 0 {
		return res, errInvalidKey
	}

	res.tag = k[0]

	switch res.tag {
	case kindTag, singleTag:
		if len(k) != 1 {
			return res, errInvalidKey
		}
	case extentTag:
		if len(k) != 9 {
			return res, errInvalidKey
		}
		res.index = binary.BigEndian.Uint64(k[1:])
	default:
		return res, fmt.Errorf("%w: unknown tag %d", errInvalidKey, res.tag)
	}

	return res, nil
}

func encodeObjectMeta(rank uint32, class kv.ObjectClass) []byte {
	v := make([]byte, objectMetaSize)
	binary.BigEndian.PutUint32(v, rank)
	v[4] = byte(class)

	return v
}

func decodeObjectMeta(v []byte) (uint32, kv.ObjectClass, error) {
	if len(v) != objectMetaSize {
		return 0, 0, fmt.Errorf("invalid object meta length %d", len(v))
	}

	return binary.BigEndian.Uint32(v), kv.ObjectClass(v[4]), nil
}

func checkContainer(txn *badger.Txn, cnr uuid.UUID) error {
	_, err := txn.Get(containerKey(cnr))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return kv.ErrContainerNotFound
	}

	return err
}

func checkObject(txn *badger.Txn, cnr uuid.UUID, id oid.ID) error {
	if err := checkContainer(txn, cnr); err != nil {
		return err
	}

	_, err := txn.Get(objectKey(cnr, id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return kv.ErrObjectNotFound
	}

	return err
}

// getValue returns copy of the value stored under k or nil if there is no
// such key.
func getValue(txn *badger.Txn, k []byte) ([]byte, error) {
	item, err := txn.Get(k)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return itemValue(item)
}

func itemValue(item *badger.Item) ([]byte, error) {
	v, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}

	if v == nil {
		v = []byte{}
	}

	return v, nil
}

// valueKind returns kind of the value stored under akey prefix or -1.
func valueKind(txn *badger.Txn, prefix []byte) (int, error) {
	v, err := getValue(txn, tagKey(prefix, kindTag))
	if err != nil || len(v) != 1 {
		return -1, err
	}

	return int(v[0]), nil
}

// resetValue removes value stored under akey prefix and marks it with the
// new kind.
func resetValue(txn *badger.Txn, prefix []byte, kind byte) error {
	var keys [][]byte

	it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix})
	for it.Rewind(); it.Valid(); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	it.Close()

	for i := range keys {
		if err := txn.Delete(keys[i]); err != nil {
			return fmt.Errorf("remove previous value: %w", err)
		}
	}

	return txn.Set(tagKey(prefix, kindTag), []byte{kind})
}

// putValue replaces value stored under akey prefix. Single value is written
// in txn. For array value only the kind is written: extents are written by
// putExtents after txn is committed since they may not fit into one
// transaction.
func putValue(txn *badger.Txn, prefix []byte, rec kv.Record) error {
	if rec.Kind == kv.RecordSingle {
		if err := resetValue(txn, prefix, kindSingle); err != nil {
			return err
		}

		return txn.Set(tagKey(prefix, singleTag), rec.Value)
	}

	return resetValue(txn, prefix, kindArray)
}

// putExtents writes array extents under akey prefix. WriteBatch commits
// and continues in a new transaction when the current one becomes too big.
func (s *Store) putExtents(prefix []byte, extents [][]byte) error {
	if len(extents) == 0 {
		return nil
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for i := range extents {
		if err := wb.Set(extentKey(prefix, i), extents[i]); err != nil {
			return fmt.Errorf("put extent #%d: %w", i, err)
		}
	}

	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush extents: %w", err)
	}

	return nil
}
