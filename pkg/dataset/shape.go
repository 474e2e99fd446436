package dataset

import (
	"fmt"

	"go.uber.org/zap"
)

// Shape describes dataset to generate and verify.
//
// Shape is treated as immutable: the value passed to Verify MUST be equal to
// the one passed to the Generate call which produced the Registry. Otherwise
// Verify checks content which was never written.
type Shape struct {
	// NumObjects is the number of objects in the container.
	NumObjects int
	// NumDKeys is the number of dkeys per object.
	NumDKeys int
	// NumAKeysSingle is the number of single-value akeys per dkey.
	NumAKeysSingle int
	// NumAKeysArray is the number of array-value akeys per dkey.
	NumAKeysArray int
	// SizePool holds value sizes selected by akey index in a round-robin way.
	SizePool []int
	// ExtentCountPool holds extent counts selected by array akey index in a
	// round-robin way.
	ExtentCountPool []int
}

// Validate checks whether the shape can be enumerated. Returns *ConfigError
// describing the first problem found.
func (s Shape) Validate() error {
	for _, f := range []struct {
		name string
		val  int
	}{
		{"objects", s.NumObjects},
		{"dkeys", s.NumDKeys},
		{"single akeys", s.NumAKeysSingle},
		{"array akeys", s.NumAKeysArray},
	} {
		if f.val < 0 {
			return newConfigError(f.name, "negative count %d", f.val)
		}
	}

	if s.NumAKeysSingle+s.NumAKeysArray > 0 && len(s.SizePool) == 0 {
		return newConfigError("size pool", "empty with %d single and %d array akeys",
			s.NumAKeysSingle, s.NumAKeysArray)
	}

	if s.NumAKeysArray > 0 && len(s.ExtentCountPool) == 0 {
		return newConfigError("extent count pool", "empty with %d array akeys", s.NumAKeysArray)
	}

	for i, v := range s.SizePool {
		if v < 0 {
			return newConfigError("size pool", "negative size %d at position %d", v, i)
		}
	}

	for i, v := range s.ExtentCountPool {
		if v < 0 {
			return newConfigError("extent count pool", "negative count %d at position %d", v, i)
		}
	}

	return nil
}

// ValueSize returns size of the single value or of each extent stored under
// akey with the given index. Shape MUST be valid and have non-empty SizePool.
func (s Shape) ValueSize(akey int) int {
	return s.SizePool[akey%len(s.SizePool)]
}

// ExtentCount returns number of extents stored under array akey with the
// given index. Shape MUST be valid and have non-empty ExtentCountPool.
func (s Shape) ExtentCount(akey int) int {
	return s.ExtentCountPool[akey%len(s.ExtentCountPool)]
}

// SingleValue returns content of the single akey with the given index.
func (s Shape) SingleValue(akey int) []byte {
	return Content(akey, s.ValueSize(akey))
}

// Extent returns content of extent j of the array akey with the given index.
func (s Shape) Extent(akey, j int) []byte {
	return Content(j, s.ValueSize(akey))
}

// ArrayValue returns all extents of the array akey with the given index.
func (s Shape) ArrayValue(akey int) [][]byte {
	res := make([][]byte, s.ExtentCount(akey))
	for j := range res {
		res[j] = s.Extent(akey, j)
	}

	return res
}

// AKeysPerObject returns number of akeys in each object.
func (s Shape) AKeysPerObject() int {
	return s.NumDKeys * (s.NumAKeysSingle + s.NumAKeysArray)
}

// String implements fmt.Stringer.
func (s Shape) String() string {
	return fmt.Sprintf("objects=%d dkeys=%d single=%d array=%d sizes=%v extents=%v",
		s.NumObjects, s.NumDKeys, s.NumAKeysSingle, s.NumAKeysArray, s.SizePool, s.ExtentCountPool)
}

func (s Shape) logFields() []zap.Field {
	return []zap.Field{
		zap.Int("objects", s.NumObjects),
		zap.Int("dkeys", s.NumDKeys),
		zap.Int("single akeys", s.NumAKeysSingle),
		zap.Int("array akeys", s.NumAKeysArray),
		zap.Ints("sizes", s.SizePool),
		zap.Ints("extents", s.ExtentCountPool),
	}
}
