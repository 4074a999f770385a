package dict

// dictHt is one of the two bucket tables of a Dict. size is always a power
// of two, so hash & sizeMask is the bucket index.
type dictHt struct {
	table      []*Entry
	size, used int64
	sizeMask   uint64
}

func (ht *dictHt) reset() {
	ht.table = nil
	ht.size = 0
	ht.sizeMask = 0
	ht.used = 0
}
