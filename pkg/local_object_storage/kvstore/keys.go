package kvstore

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/oid"
	"go.etcd.io/bbolt"
)

var containersBucketName = []byte("containers")

var objectMetaKey = []byte("m")

const dkeyPrefix = 'd'

const objectMetaSize = 5

var (
	kindKey   = []byte{0}
	singleKey = []byte{1}
)

const (
	extentPrefix  = 2
	extentKeySize = 9
)

// value kinds stored under kindKey
const (
	kindSingle = iota
	kindArray
)

func dkeyBucketName(dkey string) []byte {
	return append([]byte{dkeyPrefix}, dkey...)
}

func extentKey(i int) []byte {
	k := make([]byte, extentKeySize)
	k[0] = extentPrefix
	binary.BigEndian.PutUint64(k[1:], uint64(i))

	return k
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

func containerBucket(tx *bbolt.Tx, id uuid.UUID) (*bbolt.Bucket, error) {
	root := tx.Bucket(containersBucketName)
	if root == nil {
		return nil, kv.ErrContainerNotFound
	}

	b := root.Bucket(id[:])
	if b == nil {
		return nil, kv.ErrContainerNotFound
	}

	return b, nil
}

func objectBucket(tx *bbolt.Tx, cnr uuid.UUID, id oid.ID) (*bbolt.Bucket, error) {
	c, err := containerBucket(tx, cnr)
	if err != nil {
		return nil, err
	}

	b := c.Bucket(id[:])
	if b == nil {
		return nil, kv.ErrObjectNotFound
	}

	return b, nil
}

// akeyBucket returns bucket of the akey or nil if there is no such one.
func akeyBucket(obj *bbolt.Bucket, dkey, akey string) *bbolt.Bucket {
	d := obj.Bucket(dkeyBucketName(dkey))
	if d == nil {
		return nil
	}

	return d.Bucket([]byte(akey))
}

// newAKeyBucket creates empty akey bucket of the given kind removing the
// previous one.
func newAKeyBucket(obj *bbolt.Bucket, dkey, akey string, kind byte) (*bbolt.Bucket, error) {
	d, err := obj.CreateBucketIfNotExists(dkeyBucketName(dkey))
	if err != nil {
		return nil, fmt.Errorf("create dkey bucket: %w", err)
	}

	err = d.DeleteBucket([]byte(akey))
	if err != nil && err != bbolt.ErrBucketNotFound {
		return nil, fmt.Errorf("remove akey bucket: %w", err)
	}

	b, err := d.CreateBucket([]byte(akey))
	if err != nil {
		return nil, fmt.Errorf("create akey bucket: %w", err)
	}

	return b, b.Put(kindKey, []byte{kind})
}

func valueKind(b *bbolt.Bucket) int {
	v := b.Get(kindKey)
	if len(v) != 1 {
		return -1
	}

	return int(v[0])
}

// readExtents returns first count extents cut to size bytes. Missing
// extents are returned empty.
func readExtents(b *bbolt.Bucket, count, size int) [][]byte {
	res := make([][]byte, count)

	c := b.Cursor()
	for k, v := c.Seek(extentKey(0)); k != nil && k[0] == extentPrefix; k, v = c.Next() {
		i := binary.BigEndian.Uint64(k[1:])
		if i >= uint64(count) {
			break
		}

		res[i] = copyValue(kv.CutValue(v, size))
	}

	for i := range res {
		if res[i] == nil {
			res[i] = []byte{}
		}
	}

	return res
}

// allExtents returns all stored extents in order.
func allExtents(b *bbolt.Bucket) [][]byte {
	var res [][]byte

	c := b.Cursor()
	for k, v := c.Seek(extentKey(0)); k != nil && k[0] == extentPrefix; k, v = c.Next() {
		res = append(res, copyValue(v))
	}

	return res
}

func copyValue(v []byte) []byte {
	return append([]byte{}, v...)
}
