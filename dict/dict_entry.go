package dict

import "unsafe"

// Entry is a single key/value node chained into its bucket. The value is a
// tagged union: an opaque pointer, a signed or unsigned 64 bit integer, or
// a double.
type Entry struct {
	key unsafe.Pointer
	v   struct {
		val unsafe.Pointer
		u64 uint64
		s64 int64
		d   float64
	}
	next *Entry
}

func (entry *Entry) Key() unsafe.Pointer {
	return entry.key
}

func (entry *Entry) Val() unsafe.Pointer {
	return entry.v.val
}

func (entry *Entry) SetUnsignedIntegerVal(val uint64) {
	entry.v.u64 = val
}

func (entry *Entry) UnsignedIntegerVal() uint64 {
	return entry.v.u64
}

func (entry *Entry) SetSignedIntegerVal(val int64) {
	entry.v.s64 = val
}

func (entry *Entry) SignedIntegerVal() int64 {
	return entry.v.s64
}

func (entry *Entry) SetDoubleVal(val float64) {
	entry.v.d = val
}

func (entry *Entry) DoubleVal() float64 {
	return entry.v.d
}
