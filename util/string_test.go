package util

import "testing"

func TestBytesCmp(t *testing.T) {
	if !BytesCmp([]byte("abc"), []byte("abc")) {
		t.Fatal("equal slices compared unequal")
	}
	if BytesCmp([]byte("abc"), []byte("abd")) || BytesCmp([]byte("abc"), []byte("ab")) {
		t.Fatal("unequal slices compared equal")
	}
	if !BytesCaseCmp([]byte("AbC"), []byte("aBc")) {
		t.Fatal("case-insensitive compare failed")
	}
}

func TestBytesStringRoundTrip(t *testing.T) {
	s := "hello"
	if Bytes2String(String2Bytes(s)) != s {
		t.Fatal("round trip mismatch")
	}
}

func TestGetRandomBytes(t *testing.T) {
	a, b := GetRandomBytes(16), GetRandomBytes(16)
	if len(a) != 16 || len(b) != 16 {
		t.Fatal("wrong length")
	}
	if BytesCmp(a, b) {
		t.Fatal("two 16 byte draws collided, entropy source suspect")
	}
}
