package dict

// ScanFunction receives every entry of the bucket a Scan call visits.
type ScanFunction func(privData interface{}, de *Entry)

// Scan performs one step of a stateless full traversal. Start with cursor
// 0, feed each returned cursor into the next call; the traversal is done
// when 0 comes back. Every key present for the whole traversal is
// delivered at least once even if the table is resized between calls, but
// keys may be delivered more than once.
//
// The cursor is incremented on its reversed bit pattern: high order bits
// first. A grown table only spreads a bucket across indices that share the
// bucket's low bits, and those expansions are exactly the cursors a
// reversed increment has not produced yet, so already-visited buckets stay
// visited across a resize. While two tables are live the smaller one is
// the reference: the call also emits every expansion of the cursor into
// the larger table, which reduces the two-table case to the one-table
// case.
func (dict *Dict) Scan(v uint64, fn ScanFunction, privData interface{}) uint64 {
	if dict.Size() == 0 {
		return 0
	}

	if !dict.IsRehashing() {
		t0 := &dict.ht[0]
		m0 := t0.sizeMask

		de := t0.table[v&m0]
		for de != nil {
			fn(privData, de)
			de = de.next
		}
	} else {
		t0, t1 := &dict.ht[0], &dict.ht[1]
		if t0.size > t1.size {
			t0, t1 = t1, t0
		}
		m0, m1 := t0.sizeMask, t1.sizeMask

		de := t0.table[v&m0]
		for de != nil {
			fn(privData, de)
			de = de.next
		}

		// Visit every index of the larger table that expands the cursor's
		// index in the smaller one.
		for {
			de = t1.table[v&m1]
			for de != nil {
				fn(privData, de)
				de = de.next
			}

			v = (((v | m0) + 1) & ^m0) | (v & m0)
			if v&(m0^m1) == 0 {
				break
			}
		}
		// Fall through with the smaller mask, like the one-table case.
		return scanNext(v, t0.sizeMask)
	}

	return scanNext(v, dict.ht[0].sizeMask)
}

// scanNext advances the cursor by incrementing its reversed bit pattern,
// keeping only the bits covered by m0 significant.
func scanNext(v, m0 uint64) uint64 {
	v |= ^m0
	v = rev(v)
	v++
	v = rev(v)
	return v
}

// rev reverses the 64 bits of v (parallel swap).
func rev(v uint64) uint64 {
	s := uint64(64)
	mask := ^uint64(0)
	for s >>= 1; s > 0; s >>= 1 {
		mask ^= mask << s
		v = ((v >> s) & mask) | ((v << s) &^ mask)
	}
	return v
}
