package dict

import (
	"bytes"
	"unsafe"

	"github.com/cespare/xxhash/v2"
	"github.com/dchest/siphash"

	"github.com/pengdafu/dict-golang/util"
)

var dictSeedKey = make([]byte, 16)

// SetHashFunctionSeed installs the 16 byte siphash key. Call once at
// startup with unpredictable bytes (util.GetRandomBytes) so attacker
// chosen keys cannot force every entry into one chain.
func SetHashFunctionSeed(seed []byte) {
	dictSeedKey = make([]byte, 16)
	copy(dictSeedKey, seed)
}

func GenHashFunction(buf []byte) uint64 {
	h := siphash.New(dictSeedKey)
	h.Write(buf)
	return h.Sum64()
}

// GenCaseHashFunction hashes buf case-insensitively, for dicts whose
// comparator is util.BytesCaseCmp.
func GenCaseHashFunction(buf []byte) uint64 {
	h := siphash.New(dictSeedKey)
	h.Write(bytes.ToLower(buf))
	return h.Sum64()
}

// GenFastHashFunction hashes buf with xxhash. It is unseeded, so use it
// only for trusted key spaces where hash flooding is not a concern.
func GenFastHashFunction(buf []byte) uint64 {
	return xxhash.Sum64(buf)
}

// BytesKeyType handles *[]byte keys with the seeded siphash.
var BytesKeyType = &Type{
	HashFunction: func(key unsafe.Pointer) uint64 {
		return GenHashFunction(*(*[]byte)(key))
	},
	KeyCompare: func(privData interface{}, key1, key2 unsafe.Pointer) bool {
		return util.BytesCmp(*(*[]byte)(key1), *(*[]byte)(key2))
	},
}

// FastBytesKeyType is BytesKeyType with the unseeded xxhash.
var FastBytesKeyType = &Type{
	HashFunction: func(key unsafe.Pointer) uint64 {
		return GenFastHashFunction(*(*[]byte)(key))
	},
	KeyCompare: func(privData interface{}, key1, key2 unsafe.Pointer) bool {
		return util.BytesCmp(*(*[]byte)(key1), *(*[]byte)(key2))
	},
}
