package dataset

// Enumerator walks dataset coordinates in the fixed order:
// object → dkey → single akeys → array akeys.
//
// Enumerator is used in the manner of bufio.Scanner:
//
//	e := shape.Enumerate()
//	for e.Next() {
//		c := e.Coordinate()
//		...
//	}
//
// Shape MUST be valid.
type Enumerator struct {
	shape Shape

	firstObject int
	total       int

	pos int
	cur Coordinate
}

// Enumerate returns Enumerator over all coordinates of the shape.
func (s Shape) Enumerate() *Enumerator {
	return s.enumerate(0, s.NumObjects)
}

// EnumerateObject returns Enumerator over coordinates of the object with
// the given index.
func (s Shape) EnumerateObject(i int) *Enumerator {
	return s.enumerate(i, 1)
}

func (s Shape) enumerate(first, objects int) *Enumerator {
	return &Enumerator{
		shape:       s,
		firstObject: first,
		total:       objects * s.AKeysPerObject(),
	}
}

// Next advances the Enumerator to the next coordinate. Returns false when
// there are no coordinates left.
func (e *Enumerator) Next() bool {
	if e.pos >= e.total {
		return false
	}

	var (
		perDKey   = e.shape.NumAKeysSingle + e.shape.NumAKeysArray
		perObject = e.shape.NumDKeys * perDKey
		rem       = e.pos % perObject
		a         = rem % perDKey
	)

	e.cur = Coordinate{
		Object: e.firstObject + e.pos/perObject,
		DKey:   rem / perDKey,
		Kind:   Single,
		AKey:   a,
	}

	if a >= e.shape.NumAKeysSingle {
		e.cur.Kind = Array
		e.cur.AKey = a - e.shape.NumAKeysSingle
	}

	e.pos++

	return true
}

// Coordinate returns the coordinate selected by the last Next call.
func (e *Enumerator) Coordinate() Coordinate {
	return e.cur
}

// Len returns total number of coordinates.
func (e *Enumerator) Len() int {
	return e.total
}

// Reset rewinds the Enumerator to the beginning.
func (e *Enumerator) Reset() {
	e.pos = 0
	e.cur = Coordinate{}
}
