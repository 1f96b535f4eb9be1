package bitcoin

import (
	"encoding/hex"
	"testing"
)

func TestHashes(t *testing.T) {
	tests := []struct {
		name  string
		hash  func([]byte) []byte
		input string
		want  string
	}{
		{
			name:  "sha256 empty",
			hash:  Sha256,
			input: "",
			want:  "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:  "ripemd160 abc",
			hash:  Ripemd160,
			input: "abc",
			want:  "8eb208f7e05d987a9b044a8e98c6b087f15a0bfc",
		},
		{
			name:  "hash160 empty",
			hash:  Hash160,
			input: "",
			want:  "b472a266d0bd89c13706a4132ccfb16f7c3b9fcb",
		},
		{
			name:  "double sha256 empty",
			hash:  DoubleSha256,
			input: "",
			want:  "5df6e0e2761359d30a8275058e299fcc0381534545f55cf43e41983f5d4c9456",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.hash([]byte(tt.input))
			if hex.EncodeToString(got) != tt.want {
				t.Errorf("Wrong hash : got %x, want %s", got, tt.want)
			}
		})
	}
}

func TestHmacSha512(t *testing.T) {
	// RFC 4231 test case 2
	got := HmacSha512([]byte("Jefe"), []byte("what do ya want for nothing?"))
	want := "164b7a7bfcf819e2e395fbe73b56e0a387bd64222e831fd610270cd7ea250554" +
		"9758bf75c05a994a6d034f65f8f0e6fdcaeab1a34d4a6b4b636e070a38bce737"

	if hex.EncodeToString(got) != want {
		t.Fatalf("Wrong hmac : got %x, want %s", got, want)
	}

	left, right := splitHash(got)
	if hex.EncodeToString(left[:]) != want[:64] {
		t.Errorf("Wrong left : got %x, want %s", left, want[:64])
	}
	if hex.EncodeToString(right[:]) != want[64:] {
		t.Errorf("Wrong right : got %x, want %s", right, want[64:])
	}
}

func BenchmarkHmacSha512(b *testing.B) {
	key := make([]byte, 32)
	message := make([]byte, 37)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		HmacSha512(key, message)
	}
}

func BenchmarkHash160(b *testing.B) {
	data := make([]byte, 33)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Hash160(data)
	}
}
