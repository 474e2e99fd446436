package dataset_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neofs-dataset/internal/testutil"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/oid"
	"github.com/nspcc-dev/neofs-dataset/pkg/dataset"
	"github.com/nspcc-dev/neofs-dataset/pkg/local_object_storage/memstore"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testShape = dataset.Shape{
	NumObjects:      2,
	NumDKeys:        1,
	NumAKeysSingle:  2,
	NumAKeysArray:   1,
	SizePool:        []int{4},
	ExtentCountPool: []int{3},
}

func newContainer(t *testing.T) (*memstore.Store, uuid.UUID) {
	s := memstore.New()

	id, err := s.CreateContainer()
	require.NoError(t, err)

	return s, id
}

func openObject(t *testing.T, s kv.Store, cnr uuid.UUID, id oid.ID) (kv.Object, func()) {
	c, err := s.Container(cnr).OpenContainer()
	require.NoError(t, err)

	obj, err := c.OpenObject(id)
	require.NoError(t, err)

	return obj, func() {
		require.NoError(t, obj.Close())
		require.NoError(t, c.Close())
	}
}

func TestGenerate(t *testing.T) {
	s, cnr := newContainer(t)

	reg, err := dataset.Generate(testShape, s.Container(cnr))
	require.NoError(t, err)
	require.Equal(t, 2, reg.Len())
	require.NotEqual(t, reg.At(0), reg.At(1))
	require.Zero(t, s.OpenHandles())

	c, err := s.Container(cnr).OpenContainer()
	require.NoError(t, err)
	defer c.Close()

	infos, err := c.(kv.ObjectLister).ListObjects()
	require.NoError(t, err)
	require.Len(t, infos, 2)

	for i := 0; i < reg.Len(); i++ {
		obj, err := c.OpenObject(reg.At(i))
		require.NoError(t, err)

		v, err := obj.FetchSingle("dkey 0", "akey single 0", 100)
		require.NoError(t, err)
		require.Equal(t, []byte("0000"), v)

		v, err = obj.FetchSingle("dkey 0", "akey single 1", 100)
		require.NoError(t, err)
		require.Equal(t, []byte("1111"), v)

		vs, err := obj.FetchArray("dkey 0", "akey array 0", 3, 4)
		require.NoError(t, err)
		require.Equal(t, [][]byte{[]byte("0000"), []byte("1111"), []byte("2222")}, vs)

		require.NoError(t, obj.Close())
	}

	for _, info := range infos {
		require.Equal(t, reg.At(int(info.Rank)), info.ID, "object index is its rank")
		require.Equal(t, kv.DefaultClass, info.Class)
		require.Equal(t, 1, info.DKeys)
	}

	require.NoError(t, dataset.Verify(testShape, s.Container(cnr), reg))
	require.Zero(t, s.OpenHandles())
}

func TestGenerate_ObjectClass(t *testing.T) {
	s, cnr := newContainer(t)

	_, err := dataset.Generate(testShape, s.Container(cnr), dataset.WithObjectClass(7))
	require.NoError(t, err)

	c, err := s.Container(cnr).OpenContainer()
	require.NoError(t, err)
	defer c.Close()

	infos, err := c.(kv.ObjectLister).ListObjects()
	require.NoError(t, err)

	for _, info := range infos {
		require.EqualValues(t, 7, info.Class)
	}
}

func TestVerify_Mismatch(t *testing.T) {
	t.Run("array extent", func(t *testing.T) {
		s, cnr := newContainer(t)

		reg, err := dataset.Generate(testShape, s.Container(cnr))
		require.NoError(t, err)

		obj, done := openObject(t, s, cnr, reg.At(0))
		require.NoError(t, obj.InsertArray("dkey 0", "akey array 0",
			[][]byte{[]byte("0000"), []byte("9999"), []byte("2222")}))
		done()

		l, lb := testutil.NewBufferedLogger(t, zap.InfoLevel)

		err = dataset.Verify(testShape, s.Container(cnr), reg, dataset.WithLogger(l))
		require.ErrorIs(t, err, dataset.ErrMismatch)

		var mErr *dataset.MismatchError
		require.True(t, errors.As(err, &mErr))
		require.Equal(t, dataset.Coordinate{Object: 0, DKey: 0, Kind: dataset.Array, AKey: 0}, mErr.Coordinate)
		require.Equal(t, reg.At(0), mErr.ID)
		require.Equal(t, 1, mErr.Extent)
		require.Equal(t, []byte("1111"), mErr.Expected)
		require.Equal(t, []byte("9999"), mErr.Actual)
		require.Contains(t, err.Error(), "object 0, dkey 0, akey array 0, extent 1")

		require.Zero(t, s.OpenHandles())

		e := lb.AssertMessage(zap.ErrorLevel, "dataset mismatch")
		require.Equal(t, "dataset", e.Fields["component"])
		require.Equal(t, json.Number("0"), e.Fields["object"])
		require.Equal(t, "dkey 0", e.Fields["dkey"])
		require.Equal(t, "akey array 0", e.Fields["akey"])
		require.Equal(t, json.Number("1"), e.Fields["extent"])
		require.Equal(t, "1111", e.Fields["expected"])
		require.Equal(t, "9999", e.Fields["actual"])
		require.Equal(t, reg.At(0).String(), e.Fields["id"])
		require.Equal(t, []string{"verifying dataset"}, lb.Messages(zap.InfoLevel))
	})

	for _, tc := range []struct {
		name  string
		value []byte
	}{
		{"shorter", []byte("111")},
		{"longer", []byte("11111")},
		{"empty", []byte{}},
		{"one byte", []byte("1121")},
	} {
		t.Run("single "+tc.name, func(t *testing.T) {
			s, cnr := newContainer(t)

			reg, err := dataset.Generate(testShape, s.Container(cnr))
			require.NoError(t, err)

			obj, done := openObject(t, s, cnr, reg.At(1))
			require.NoError(t, obj.InsertSingle("dkey 0", "akey single 1", tc.value))
			done()

			err = dataset.Verify(testShape, s.Container(cnr), reg)

			var mErr *dataset.MismatchError
			require.True(t, errors.As(err, &mErr))
			require.Equal(t, dataset.Coordinate{Object: 1, DKey: 0, Kind: dataset.Single, AKey: 1}, mErr.Coordinate)
			require.Equal(t, -1, mErr.Extent)
			require.Equal(t, []byte("1111"), mErr.Expected)
			require.Equal(t, tc.value, mErr.Actual)
			require.Zero(t, s.OpenHandles())
		})
	}

	t.Run("missing extent", func(t *testing.T) {
		s, cnr := newContainer(t)

		reg, err := dataset.Generate(testShape, s.Container(cnr))
		require.NoError(t, err)

		obj, done := openObject(t, s, cnr, reg.At(1))
		require.NoError(t, obj.InsertArray("dkey 0", "akey array 0", [][]byte{[]byte("0000"), []byte("1111")}))
		done()

		err = dataset.Verify(testShape, s.Container(cnr), reg)

		var mErr *dataset.MismatchError
		require.True(t, errors.As(err, &mErr))
		require.Equal(t, 1, mErr.Coordinate.Object)
		require.Equal(t, 2, mErr.Extent)
		require.Equal(t, []byte("2222"), mErr.Expected)
		require.Empty(t, mErr.Actual)
	})

	t.Run("first divergence only", func(t *testing.T) {
		s, cnr := newContainer(t)

		reg, err := dataset.Generate(testShape, s.Container(cnr))
		require.NoError(t, err)

		for i := 0; i < reg.Len(); i++ {
			obj, done := openObject(t, s, cnr, reg.At(i))
			require.NoError(t, obj.InsertSingle("dkey 0", "akey single 0", []byte("xxxx")))
			done()
		}

		var m testMetrics

		err = dataset.Verify(testShape, s.Container(cnr), reg, dataset.WithMetrics(&m))

		var mErr *dataset.MismatchError
		require.True(t, errors.As(err, &mErr))
		require.Zero(t, mErr.Coordinate.Object)
		require.Equal(t, 1, m.mismatches)
		require.Zero(t, m.objects["verify"])
	})
}

func TestZeroObjects(t *testing.T) {
	shape := testShape
	shape.NumObjects = 0

	var c countingOpener

	reg, err := dataset.Generate(shape, &c)
	require.NoError(t, err)
	require.NotNil(t, reg)
	require.Zero(t, reg.Len())
	require.Empty(t, reg.IDs())

	require.NoError(t, dataset.Verify(shape, &c, reg))
	require.NoError(t, dataset.Verify(shape, &c, nil))
	require.Zero(t, c.calls)
}

func TestConfigError(t *testing.T) {
	var c countingOpener

	shape := testShape
	shape.SizePool = nil

	reg, err := dataset.Generate(shape, &c)
	require.ErrorIs(t, err, dataset.ErrInvalidShape)
	require.Zero(t, reg.Len())

	err = dataset.Verify(shape, &c, dataset.NewRegistry())
	require.ErrorIs(t, err, dataset.ErrInvalidShape)

	t.Run("short registry", func(t *testing.T) {
		err := dataset.Verify(testShape, &c, dataset.NewRegistry(oid.New()))

		var cErr *dataset.ConfigError
		require.True(t, errors.As(err, &cErr))
		require.Equal(t, "registry", cErr.Field)
	})

	require.Zero(t, c.calls)
}

// Shape is recomputed on verification, so any change of it between the calls
// makes Verify check values which were never written.
func TestVerify_ShapeMustNotChange(t *testing.T) {
	s, cnr := newContainer(t)

	shape := testShape
	shape.SizePool = []int{4}

	reg, err := dataset.Generate(shape, s.Container(cnr))
	require.NoError(t, err)

	shape.SizePool[0] = 5

	err = dataset.Verify(shape, s.Container(cnr), reg)
	require.ErrorIs(t, err, dataset.ErrMismatch)

	shape.SizePool[0] = 4
	require.NoError(t, dataset.Verify(shape, s.Container(cnr), reg))

	// fewer objects pass since extra registry entries are not checked
	shape.NumObjects = 1
	require.NoError(t, dataset.Verify(shape, s.Container(cnr), reg))
}

func TestStorageFailures(t *testing.T) {
	errTest := errors.New("test failure")

	for _, tc := range []struct {
		failOn   string
		generate bool
		object   int
	}{
		{failOn: dataset.OpOpenContainer, generate: true, object: -1},
		{failOn: dataset.OpCloseContainer, generate: true, object: -1},
		{failOn: dataset.OpCreateObject, generate: true, object: 0},
		{failOn: dataset.OpOpenObject, generate: true, object: 0},
		{failOn: dataset.OpCloseObject, generate: true, object: 0},
		{failOn: dataset.OpInsertSingle, generate: true, object: 0},
		{failOn: dataset.OpInsertArray, generate: true, object: 0},
		{failOn: dataset.OpOpenContainer, object: -1},
		{failOn: dataset.OpOpenObject, object: 0},
		{failOn: dataset.OpFetchSingle, object: 0},
		{failOn: dataset.OpFetchArray, object: 0},
		{failOn: dataset.OpCloseObject, object: 0},
		{failOn: dataset.OpCloseContainer, object: -1},
	} {
		name := "verify"
		if tc.generate {
			name = "generate"
		}

		t.Run(name+"/"+tc.failOn, func(t *testing.T) {
			s, cnr := newContainer(t)

			var (
				reg *dataset.Registry
				err error
			)

			if tc.generate {
				reg, err = dataset.Generate(testShape, &faultyOpener{s.Container(cnr), tc.failOn, errTest})
			} else {
				reg, err = dataset.Generate(testShape, s.Container(cnr))
				require.NoError(t, err)

				err = dataset.Verify(testShape, &faultyOpener{s.Container(cnr), tc.failOn, errTest}, reg)
			}

			require.ErrorIs(t, err, errTest)
			require.ErrorIs(t, err, dataset.ErrStorageOp)
			require.NotErrorIs(t, err, dataset.ErrMismatch)

			var sErr *dataset.StorageOpError
			require.True(t, errors.As(err, &sErr))
			require.Equal(t, tc.failOn, sErr.Op)
			require.Equal(t, tc.object, sErr.Object)

			require.Zero(t, s.OpenHandles(), "all handles must be released")

			if tc.generate {
				switch tc.failOn {
				case dataset.OpOpenContainer, dataset.OpCreateObject:
					require.Zero(t, reg.Len())
				case dataset.OpCloseContainer:
					require.Equal(t, testShape.NumObjects, reg.Len())
				default:
					require.Equal(t, 1, reg.Len(), "registry keeps created objects")
				}
			}
		})
	}
}

func TestOptions(t *testing.T) {
	s, cnr := newContainer(t)

	var (
		m        testMetrics
		progress [][2]int
		l, lb    = testutil.NewBufferedLogger(t, zap.InfoLevel)
	)

	opts := []dataset.Option{
		dataset.WithLogger(l),
		dataset.WithMetrics(&m),
		dataset.WithProgress(func(done, total int) {
			progress = append(progress, [2]int{done, total})
		}),
	}

	reg, err := dataset.Generate(testShape, s.Container(cnr), opts...)
	require.NoError(t, err)
	require.NoError(t, dataset.Verify(testShape, s.Container(cnr), reg, opts...))

	require.Equal(t, [][2]int{{1, 2}, {2, 2}, {1, 2}, {2, 2}}, progress)

	require.Equal(t, 2, m.objects["generate"])
	require.Equal(t, 2, m.objects["verify"])
	require.Equal(t, 4, m.values["generate single"])
	require.Equal(t, 2, m.values["generate array"])
	require.Equal(t, 4, m.values["verify single"])
	require.Equal(t, 2, m.values["verify array"])
	require.Len(t, m.runs, 2)
	require.Zero(t, m.mismatches)

	require.Equal(t, []string{
		"generating dataset",
		"dataset generated",
		"verifying dataset",
		"dataset verified",
	}, lb.Messages(zap.InfoLevel))

	e := lb.AssertMessage(zap.InfoLevel, "generating dataset")
	require.Equal(t, json.Number("2"), e.Fields["objects"])
	require.Equal(t, []any{json.Number("4")}, e.Fields["sizes"])
}

type testMetrics struct {
	objects    map[string]int
	values     map[string]int
	mismatches int
	runs       []time.Duration
}

func (m *testMetrics) IncObjects(op string) {
	if m.objects == nil {
		m.objects = make(map[string]int)
	}
	m.objects[op]++
}

func (m *testMetrics) AddValues(op, kind string, n int) {
	if m.values == nil {
		m.values = make(map[string]int)
	}
	m.values[op+" "+kind] += n
}

func (m *testMetrics) IncMismatches() { m.mismatches++ }

func (m *testMetrics) AddRunDuration(_ string, d time.Duration) {
	m.runs = append(m.runs, d)
}

type countingOpener struct {
	calls int
}

func (c *countingOpener) OpenContainer() (kv.Container, error) {
	c.calls++
	return nil, errors.New("unexpected storage call")
}

// faultyOpener fails the named storage operation.
type faultyOpener struct {
	kv.ContainerOpener
	failOn string
	err    error
}

func (f *faultyOpener) OpenContainer() (kv.Container, error) {
	c, err := f.ContainerOpener.OpenContainer()
	if err != nil {
		return nil, err
	}

	if f.failOn == dataset.OpOpenContainer {
		_ = c.Close()
		return nil, f.err
	}

	return &faultyContainer{c, f}, nil
}

type faultyContainer struct {
	kv.Container
	f *faultyOpener
}

func (c *faultyContainer) fail(op string) error {
	if c.f.failOn == op {
		return c.f.err
	}

	return nil
}

func (c *faultyContainer) CreateObject(rank uint32, class kv.ObjectClass) (oid.ID, error) {
	if err := c.fail(dataset.OpCreateObject); err != nil {
		return oid.ID{}, err
	}

	return c.Container.CreateObject(rank, class)
}

func (c *faultyContainer) OpenObject(id oid.ID) (kv.Object, error) {
	if err := c.fail(dataset.OpOpenObject); err != nil {
		return nil, err
	}

	obj, err := c.Container.OpenObject(id)
	if err != nil {
		return nil, err
	}

	return &faultyObject{obj, c}, nil
}

func (c *faultyContainer) Close() error {
	err := c.Container.Close()
	if fErr := c.fail(dataset.OpCloseContainer); fErr != nil {
		return fErr
	}

	return err
}

type faultyObject struct {
	kv.Object
	c *faultyContainer
}

func (o *faultyObject) InsertSingle(dkey, akey string, v []byte) error {
	if err := o.c.fail(dataset.OpInsertSingle); err != nil {
		return err
	}

	return o.Object.InsertSingle(dkey, akey, v)
}

func (o *faultyObject) InsertArray(dkey, akey string, v [][]byte) error {
	if err := o.c.fail(dataset.OpInsertArray); err != nil {
		return err
	}

	return o.Object.InsertArray(dkey, akey, v)
}

func (o *faultyObject) FetchSingle(dkey, akey string, maxLen int) ([]byte, error) {
	if err := o.c.fail(dataset.OpFetchSingle); err != nil {
		return nil, err
	}

	return o.Object.FetchSingle(dkey, akey, maxLen)
}

func (o *faultyObject) FetchArray(dkey, akey string, count, size int) ([][]byte, error) {
	if err := o.c.fail(dataset.OpFetchArray); err != nil {
		return nil, err
	}

	return o.Object.FetchArray(dkey, akey, count, size)
}

func (o *faultyObject) Close() error {
	err := o.Object.Close()
	if fErr := o.c.fail(dataset.OpCloseObject); fErr != nil {
		return fErr
	}

	return err
}
