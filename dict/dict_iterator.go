package dict

import "unsafe"

// Iterator walks table 0 bucket by bucket and, while a rehash is in
// progress, spills into table 1. A safe iterator pins the dict against
// opportunistic rehash steps for its whole lifetime, so mutating the dict
// mid-iteration is allowed. An unsafe iterator takes a fingerprint instead
// and Release panics if the dict changed shape under it.
type Iterator struct {
	d                *Dict
	index            int64
	table            int
	safe             bool
	entry, nextEntry *Entry
	fingerprint      int64
}

func (dict *Dict) GetIterator() *Iterator {
	return &Iterator{d: dict, index: -1}
}

func (dict *Dict) GetSafeIterator() *Iterator {
	iter := dict.GetIterator()
	iter.safe = true
	return iter
}

// Next returns the next entry, or nil when the traversal is done. The
// successor is fetched before returning, so deleting the returned entry is
// always allowed.
func (iter *Iterator) Next() *Entry {
	for {
		if iter.entry == nil {
			ht := &iter.d.ht[iter.table]
			if iter.index == -1 && iter.table == 0 {
				if iter.safe {
					iter.d.iterators++
				} else {
					iter.fingerprint = iter.d.fingerprint()
				}
			}
			iter.index++
			if iter.index >= ht.size {
				if iter.d.IsRehashing() && iter.table == 0 {
					iter.table++
					iter.index = 0
					ht = &iter.d.ht[1]
				} else {
					break
				}
			}
			iter.entry = ht.table[iter.index]
		} else {
			iter.entry = iter.nextEntry
		}
		if iter.entry != nil {
			iter.nextEntry = iter.entry.next
			return iter.entry
		}
	}
	return nil
}

// Release unbinds the iterator. Releasing an unsafe iterator after the
// dict was structurally modified is a caller defect and panics.
func (iter *Iterator) Release() {
	if !(iter.index == -1 && iter.table == 0) {
		if iter.safe {
			iter.d.iterators--
		} else if iter.fingerprint != iter.d.fingerprint() {
			panic("dict: unsafe iterator released after the dict was modified")
		}
	}
}

// fingerprint folds both tables' array identity, size and used count
// through Tomas Wang's 64 bit integer hash, chaining each integer into the
// previous sum so the same values in a different order (likely) differ.
func (dict *Dict) fingerprint() int64 {
	var integers [6]int64

	integers[0] = int64(uintptr(unsafe.Pointer(unsafe.SliceData(dict.ht[0].table))))
	integers[1] = dict.ht[0].size
	integers[2] = dict.ht[0].used
	integers[3] = int64(uintptr(unsafe.Pointer(unsafe.SliceData(dict.ht[1].table))))
	integers[4] = dict.ht[1].size
	integers[5] = dict.ht[1].used

	hash := int64(0)
	for j := 0; j < 6; j++ {
		hash += integers[j]
		hash = (^hash) + (hash << 21)
		hash = hash ^ (hash >> 24)
		hash = (hash + (hash << 3)) + (hash << 8)
		hash = hash ^ (hash >> 14)
		hash = (hash + (hash << 2)) + (hash << 4)
		hash = hash ^ (hash >> 28)
		hash = hash + (hash << 31)
	}
	return hash
}
