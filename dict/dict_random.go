package dict

import "math/rand"

// GetRandomKey returns a random entry, or nil if the dict is empty. It
// first picks a uniformly random non-empty bucket over both tables'
// combined slot space, then a uniformly random entry of that chain.
func (dict *Dict) GetRandomKey() *Entry {
	if dict.Size() == 0 {
		return nil
	}
	if dict.IsRehashing() {
		dict.rehashStep()
	}

	var he *Entry
	if dict.IsRehashing() {
		for he == nil {
			h := rand.Int63n(dict.ht[0].size + dict.ht[1].size)
			if h >= dict.ht[0].size {
				he = dict.ht[1].table[h-dict.ht[0].size]
			} else {
				he = dict.ht[0].table[h]
			}
		}
	} else {
		for he == nil {
			h := uint64(rand.Int63()) & dict.ht[0].sizeMask
			he = dict.ht[0].table[h]
		}
	}

	// The bucket is a chain: count it, then index into it.
	listLen := 0
	origHe := he
	for he != nil {
		he = he.next
		listLen++
	}
	listEle := rand.Intn(listLen)
	he = origHe
	for ; listEle > 0; listEle-- {
		he = he.next
	}
	return he
}

// GetRandomKeys samples up to count entries by jumping to a random bucket
// of each table and walking forward, collecting whole chains as it goes.
// The distribution is not uniform (entries in the buckets right after a
// run of empty ones are favored), but a single call is far cheaper than
// count GetRandomKey calls, which is the point: it exists for statistical
// sampling, e.g. picking eviction candidates.
func (dict *Dict) GetRandomKeys(count uint) []*Entry {
	if uint(dict.Size()) < count {
		count = uint(dict.Size())
	}
	des := make([]*Entry, 0, count)

	for uint(len(des)) < count {
		for j := 0; j < 2; j++ {
			i := uint64(rand.Int63()) & dict.ht[j].sizeMask
			size := dict.ht[j].size

			for ; size > 0; size-- {
				he := dict.ht[j].table[i]
				for he != nil {
					des = append(des, he)
					he = he.next
					if uint(len(des)) == count {
						return des
					}
				}
				i = (i + 1) & dict.ht[j].sizeMask
			}
			if !dict.IsRehashing() {
				break
			}
		}
	}
	return des
}
