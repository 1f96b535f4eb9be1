package bitcoin

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/ripemd160"
)

const hmacSize = sha512.Size

// Ripemd160 returns the 20 byte RIPEMD-160 digest.
func Ripemd160(b []byte) []byte {
	digest := ripemd160.New()
	digest.Write(b)
	return digest.Sum(nil)
}

// Sha256 returns the 32 byte SHA-256 digest.
func Sha256(b []byte) []byte {
	digest := sha256.Sum256(b)
	return digest[:]
}

// Hash160 returns RIPEMD-160 of SHA-256. Key fingerprints are the first 4 bytes of it.
func Hash160(b []byte) []byte {
	return Ripemd160(Sha256(b))
}

// DoubleSha256 returns SHA-256 applied twice.
func DoubleSha256(b []byte) []byte {
	return chainhash.DoubleHashB(b)
}

// HmacSha512 returns the 64 byte HMAC-SHA512 of message.
func HmacSha512(key, message []byte) []byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(message)
	return mac.Sum(nil)
}

// splitHash returns the left and right halves of an HMAC-SHA512 result.
func splitHash(b []byte) ([32]byte, [32]byte) {
	var left, right [32]byte
	copy(left[:], b[:hmacSize/2])
	copy(right[:], b[hmacSize/2:hmacSize])
	return left, right
}
