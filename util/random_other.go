//go:build !linux

package util

import "crypto/rand"

// GetRandomBytes fills needLen bytes from the platform CSPRNG.
func GetRandomBytes(needLen int) []byte {
	ret := make([]byte, needLen)
	if _, err := rand.Read(ret); err != nil {
		panic(err)
	}
	return ret
}
