package bitcoin

import (
	"bytes"

	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"
)

const CheckHashSize = 4

// Base58 return the Base58 encoding of the input.
//
// See https://en.wikipedia.org/wiki/Base58
func Base58(b []byte) string {
	return base58.Encode(b)
}

// Base58Decode returns base 58 decodes the argument and returns the result. An empty result means
// the text contained characters outside the alphabet or was empty.
func Base58Decode(s string) []byte {
	return base58.Decode(s)
}

// CheckHash returns the first 4 bytes of the double SHA256 of the data.
func CheckHash(b []byte) []byte {
	return DoubleSha256(b)[:CheckHashSize]
}

// AppendCheckHash returns the data followed by its check hash.
func AppendCheckHash(b []byte) []byte {
	result := make([]byte, 0, len(b)+CheckHashSize)
	result = append(result, b...)
	return append(result, CheckHash(b)...)
}

// VerifyCheckHash verifies the check hash at the end of the data and returns the data without it.
func VerifyCheckHash(b []byte) ([]byte, error) {
	if len(b) <= CheckHashSize {
		return nil, errors.Wrap(ErrInvalidEncoding, "too short for check hash")
	}

	data := b[:len(b)-CheckHashSize]
	if !bytes.Equal(CheckHash(data), b[len(b)-CheckHashSize:]) {
		return nil, errors.Wrap(ErrInvalidEncoding, "check hash")
	}

	return data, nil
}

// Base58CheckEncode appends a check hash to the data and encodes it with Base58.
func Base58CheckEncode(b []byte) string {
	return Base58(AppendCheckHash(b))
}

// Base58CheckDecode decodes Base58 text and verifies and removes the check hash.
func Base58CheckDecode(s string) ([]byte, error) {
	b := Base58Decode(s)
	if len(b) == 0 {
		return nil, errors.Wrap(ErrInvalidEncoding, "base58")
	}

	return VerifyCheckHash(b)
}
