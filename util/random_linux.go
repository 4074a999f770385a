package util

import (
	"crypto/rand"

	"golang.org/x/sys/unix"
)

// GetRandomBytes fills needLen bytes from the kernel CSPRNG. The dict hash
// seed must be unpredictable, or attacker chosen keys can degenerate the
// table into a single chain.
func GetRandomBytes(needLen int) []byte {
	ret := make([]byte, needLen)
	if n, err := unix.Getrandom(ret, 0); err != nil || n != needLen {
		if _, err = rand.Read(ret); err != nil {
			panic(err)
		}
	}
	return ret
}
