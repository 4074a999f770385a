package dict

import "github.com/pengdafu/dict-golang/util"

// Rehash migrates up to n non-empty buckets from ht[0] to ht[1], visiting
// at most n*10 empty buckets along the way so a sparse table cannot stall
// the caller. Returns true if there are still keys to move, false when the
// migration is complete (or none is in progress).
func (dict *Dict) Rehash(n int) bool {
	emptyVisits := n * 10
	if !dict.IsRehashing() {
		return false
	}

	for ; n > 0 && dict.ht[0].used != 0; n-- {
		for dict.ht[0].table[dict.rehashIdx] == nil {
			dict.rehashIdx++
			emptyVisits--
			if emptyVisits == 0 {
				return true
			}
		}
		de := dict.ht[0].table[dict.rehashIdx]
		for de != nil {
			nextDe := de.next
			// Same hash, re-masked against the incoming table.
			h := dict.hashKey(de.key) & dict.ht[1].sizeMask
			de.next = dict.ht[1].table[h]
			dict.ht[1].table[h] = de
			dict.ht[0].used--
			dict.ht[1].used++
			de = nextDe
		}
		dict.ht[0].table[dict.rehashIdx] = nil
		dict.rehashIdx++
	}

	if dict.ht[0].used == 0 {
		dict.ht[0] = dict.ht[1]
		dict.ht[1].reset()
		dict.rehashIdx = -1
		return false
	}
	return true
}

// rehashStep moves one bucket, but only while no safe iterator is bound to
// the dict: shuffling buckets under a safe iterator could duplicate or
// skip entries. Lookup and update operations call this so the table
// migrates while it is actively used.
func (dict *Dict) rehashStep() {
	if dict.iterators == 0 {
		dict.Rehash(1)
	}
}

// RehashMilliseconds rehashes in 100 bucket batches until the migration
// completes or ms milliseconds of wall clock have elapsed. Returns the
// number of batched buckets processed.
func (dict *Dict) RehashMilliseconds(ms int) int {
	start := util.GetMillionSeconds()
	rehashes := 0

	for dict.Rehash(100) {
		rehashes += 100
		if util.GetMillionSeconds()-start > int64(ms) {
			break
		}
	}
	return rehashes
}
