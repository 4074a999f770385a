// Package dict implements the chained hash table used as the key space of a
// key-value store: incremental rehashing spread across normal operations, a
// resize-safe scan cursor, safe/unsafe iterators and random sampling.
//
// The table is not safe for concurrent use. It assumes a single logical
// thread of control, the way an event-loop embedding serializes access.
package dict

import (
	"errors"
	"math"
	"unsafe"
)

var (
	dictCanResize        = true
	dictForceResizeRatio = int64(5)
	dictInitSize         = int64(4)
)

var (
	ErrKeyExists         = errors.New("dict: key already exists")
	ErrKeyNotFound       = errors.New("dict: no such key")
	ErrAlreadyRehashing  = errors.New("dict: rehashing already in progress")
	ErrCapacityBelowUsed = errors.New("dict: requested capacity below used count")
	ErrResizeDisabled    = errors.New("dict: resizing is disabled")
)

type Dict struct {
	typ       *Type
	privData  interface{}
	ht        [2]dictHt
	rehashIdx int64 // -1 when no rehash is in progress
	iterators uint64
}

// Type is the capability bundle a Dict is created with. HashFunction and
// KeyCompare are required; the dup/destructor fields may be nil, in which
// case keys and values are stored and dropped as-is.
type Type struct {
	HashFunction  func(key unsafe.Pointer) uint64
	KeyDup        func(privData interface{}, key unsafe.Pointer) unsafe.Pointer
	ValDup        func(privData interface{}, obj unsafe.Pointer) unsafe.Pointer
	KeyCompare    func(privData interface{}, key1, key2 unsafe.Pointer) bool
	KeyDestructor func(privData interface{}, key unsafe.Pointer)
	ValDestructor func(privData interface{}, obj unsafe.Pointer)
}

func Create(tp *Type, privData interface{}) *Dict {
	d := new(Dict)
	d.init(tp, privData)
	return d
}

func (dict *Dict) init(typ *Type, privData interface{}) {
	dict.ht[0].reset()
	dict.ht[1].reset()

	dict.typ = typ
	dict.privData = privData
	dict.rehashIdx = -1
	dict.iterators = 0
}

func (dict *Dict) IsRehashing() bool {
	return dict.rehashIdx != -1
}

func (dict *Dict) Size() int64 {
	return dict.ht[0].used + dict.ht[1].used
}

func (dict *Dict) Slots() int64 {
	return dict.ht[0].size + dict.ht[1].size
}

// Add inserts key with val. It fails with ErrKeyExists if the key is
// already present in either table.
func (dict *Dict) Add(key, val unsafe.Pointer) error {
	entry := dict.AddRaw(key)
	if entry == nil {
		return ErrKeyExists
	}

	dict.setVal(entry, val)
	return nil
}

// AddRaw inserts key and returns the new entry with its value unset, so the
// caller can populate a non-pointer value without a second lookup. Returns
// nil if the key already exists.
func (dict *Dict) AddRaw(key unsafe.Pointer) *Entry {
	if dict.IsRehashing() {
		dict.rehashStep()
	}

	index := dict.keyIndex(key, dict.hashKey(key))
	if index == -1 {
		return nil
	}

	// While rehashing new entries always go to the incoming table.
	ht := &dict.ht[0]
	if dict.IsRehashing() {
		ht = &dict.ht[1]
	}
	entry := new(Entry)
	entry.next = ht.table[index]
	ht.table[index] = entry
	ht.used++

	dict.setKey(entry, key)
	return entry
}

// Replace adds key with val, or updates the value if the key already
// exists. Returns true if the key was newly inserted. On update the new
// value is set before the old one is destroyed: with reference-counted
// values the two may be the same handle.
func (dict *Dict) Replace(key, val unsafe.Pointer) bool {
	if dict.Add(key, val) == nil {
		return true
	}

	entry := dict.Find(key)
	auxEntry := *entry
	dict.setVal(entry, val)
	dict.freeVal(&auxEntry)
	return false
}

// ReplaceRaw returns the entry for key, inserting it first if absent.
func (dict *Dict) ReplaceRaw(key unsafe.Pointer) *Entry {
	if entry := dict.Find(key); entry != nil {
		return entry
	}
	return dict.AddRaw(key)
}

func (dict *Dict) Find(key unsafe.Pointer) *Entry {
	if dict.Size() == 0 {
		return nil
	}
	if dict.IsRehashing() {
		dict.rehashStep()
	}

	h := dict.hashKey(key)
	for table := 0; table <= 1; table++ {
		idx := h & dict.ht[table].sizeMask
		he := dict.ht[table].table[idx]
		for he != nil {
			if key == he.key || dict.compareKey(key, he.key) {
				return he
			}
			he = he.next
		}
		if !dict.IsRehashing() {
			return nil
		}
	}
	return nil
}

func (dict *Dict) FetchValue(key unsafe.Pointer) unsafe.Pointer {
	he := dict.Find(key)
	if he != nil {
		return dict.getVal(he)
	}
	return nil
}

// Delete removes key and runs the key/value destructors on the entry.
func (dict *Dict) Delete(key unsafe.Pointer) error {
	return dict.genericDelete(key, false)
}

// DeleteNoFree removes key but keeps the payload alive: the caller still
// holds the entry it got from Find and remains responsible for it.
func (dict *Dict) DeleteNoFree(key unsafe.Pointer) error {
	return dict.genericDelete(key, true)
}

func (dict *Dict) genericDelete(key unsafe.Pointer, noFree bool) error {
	if dict.ht[0].size == 0 {
		return ErrKeyNotFound
	}
	if dict.IsRehashing() {
		dict.rehashStep()
	}

	h := dict.hashKey(key)
	for table := 0; table <= 1; table++ {
		idx := h & dict.ht[table].sizeMask
		he := dict.ht[table].table[idx]
		var prevHe *Entry
		for he != nil {
			if key == he.key || dict.compareKey(key, he.key) {
				if prevHe != nil {
					prevHe.next = he.next
				} else {
					dict.ht[table].table[idx] = he.next
				}
				if !noFree {
					dict.freeKey(he)
					dict.freeVal(he)
				}
				he.next = nil
				dict.ht[table].used--
				return nil
			}
			prevHe = he
			he = he.next
		}
		if !dict.IsRehashing() {
			break
		}
	}
	return ErrKeyNotFound
}

// Expand grows (or initially allocates) the table so it can hold at least
// size entries. The first-ever expand allocates ht[0] directly; any later
// one allocates ht[1] and arms incremental rehashing.
func (dict *Dict) Expand(size int64) error {
	if dict.IsRehashing() {
		return ErrAlreadyRehashing
	}
	if dict.ht[0].used > size {
		return ErrCapacityBelowUsed
	}

	realSize := dict.nextPower(size)
	if realSize == dict.ht[0].size {
		return nil
	}

	n := dictHt{}
	n.size = realSize
	n.sizeMask = uint64(realSize - 1)
	n.used = 0
	n.table = make([]*Entry, realSize)
	if dict.ht[0].table == nil {
		dict.ht[0] = n
		return nil
	}
	dict.ht[1] = n
	dict.rehashIdx = 0
	return nil
}

// Resize shrinks the table to the minimal power of two that keeps the
// used/buckets ratio near or below 1, never below the initial size.
func (dict *Dict) Resize() error {
	if !dictCanResize {
		return ErrResizeDisabled
	}
	if dict.IsRehashing() {
		return ErrAlreadyRehashing
	}

	minimal := dict.ht[0].used
	if minimal < dictInitSize {
		minimal = dictInitSize
	}
	return dict.Expand(minimal)
}

func (dict *Dict) nextPower(size int64) int64 {
	if size >= math.MaxInt64 {
		return math.MaxInt64
	}
	i := dictInitSize
	for {
		if i >= size {
			return i
		}
		i *= 2
	}
}

func (dict *Dict) expandIfNeeded() bool {
	if dict.IsRehashing() {
		return true
	}

	if dict.ht[0].size == 0 {
		return dict.Expand(dictInitSize) == nil
	}

	// Grow at the 1:1 ratio when allowed, or past the force ratio even
	// while resizing is administratively disabled, to bound chain length.
	if dict.ht[0].used >= dict.ht[0].size &&
		(dictCanResize || dict.ht[0].used/dict.ht[0].size >= dictForceResizeRatio) {
		return dict.Expand(dict.ht[0].used*2) == nil
	}
	return true
}

// keyIndex returns the bucket index key should be inserted at in the active
// insertion table, or -1 if the key is already present.
func (dict *Dict) keyIndex(key unsafe.Pointer, hash uint64) int64 {
	if !dict.expandIfNeeded() {
		return -1
	}
	var idx int64
	for table := 0; table <= 1; table++ {
		idx = int64(hash & dict.ht[table].sizeMask)
		he := dict.ht[table].table[idx]
		for he != nil {
			if key == he.key || dict.compareKey(key, he.key) {
				return -1
			}
			he = he.next
		}
		if !dict.IsRehashing() {
			break
		}
	}
	return idx
}

// Empty destroys every entry in both tables and resets the dict to the
// just-created state. callback, if not nil, is invoked with the dict's
// private data every 65536 buckets so long clears can report progress.
func (dict *Dict) Empty(callback func(privData interface{})) {
	dict.clear(&dict.ht[0], callback)
	dict.clear(&dict.ht[1], callback)
	dict.rehashIdx = -1
	dict.iterators = 0
}

// Release tears the dict down. Equivalent to Empty with no callback; the
// garbage collector reclaims the rest.
func (dict *Dict) Release() {
	dict.Empty(nil)
}

func (dict *Dict) clear(ht *dictHt, callback func(privData interface{})) {
	for i := int64(0); i < ht.size && ht.used > 0; i++ {
		if callback != nil && i&65535 == 0 {
			callback(dict.privData)
		}
		he := ht.table[i]
		for he != nil {
			nextHe := he.next
			dict.freeKey(he)
			dict.freeVal(he)
			he.next = nil
			ht.used--
			he = nextHe
		}
	}
	ht.reset()
}

func (dict *Dict) setKey(entry *Entry, key unsafe.Pointer) {
	if dict.typ.KeyDup != nil {
		entry.key = dict.typ.KeyDup(dict.privData, key)
	} else {
		entry.key = key
	}
}

// SetVal stores val into entry, applying the Type's ValDup if present.
// Meant for entries obtained through AddRaw or ReplaceRaw.
func (dict *Dict) SetVal(entry *Entry, val unsafe.Pointer) {
	dict.setVal(entry, val)
}

func (dict *Dict) setVal(entry *Entry, obj unsafe.Pointer) {
	if dict.typ.ValDup != nil {
		entry.v.val = dict.typ.ValDup(dict.privData, obj)
	} else {
		entry.v.val = obj
	}
}

func (dict *Dict) getVal(entry *Entry) unsafe.Pointer {
	return entry.v.val
}

func (dict *Dict) freeKey(entry *Entry) {
	if dict.typ.KeyDestructor != nil {
		dict.typ.KeyDestructor(dict.privData, entry.key)
	}
}

func (dict *Dict) freeVal(entry *Entry) {
	if dict.typ.ValDestructor != nil {
		dict.typ.ValDestructor(dict.privData, entry.v.val)
	}
}

func (dict *Dict) compareKey(key1, key2 unsafe.Pointer) bool {
	return dict.typ.KeyCompare(dict.privData, key2, key1)
}

func (dict *Dict) hashKey(key unsafe.Pointer) uint64 {
	return dict.typ.HashFunction(key)
}

// EnableResize allows automatic growth at the 1:1 load factor again.
func EnableResize() {
	dictCanResize = true
}

// DisableResize stops automatic growth below the force ratio. Typically set
// while a background process holds a copy-on-write snapshot of the tables.
func DisableResize() {
	dictCanResize = false
}
