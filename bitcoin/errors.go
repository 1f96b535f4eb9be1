package bitcoin

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidScalar means a secret is not in the range (0, n) where n is the curve order.
	ErrInvalidScalar = errors.New("Invalid scalar")

	// ErrPrefixMismatch means the version bytes of an encoded key do not match the expected
	// network prefix.
	ErrPrefixMismatch = errors.New("Prefix mismatch")

	// ErrInvalidEncoding means the data is malformed, has the wrong size, or failed its checksum.
	ErrInvalidEncoding = errors.New("Invalid encoding")

	// ErrDepthOverflow means a child can't be derived because the parent is at maximum depth.
	ErrDepthOverflow = errors.New("Depth overflow")

	// ErrDerivationCollision means the HMAC result for an index produced an out of range or zero
	// key. BIP-0032 says to proceed with the next index.
	ErrDerivationCollision = errors.New("Derivation collision")

	// ErrInvalidPoint means public key data is not a valid compressed curve point.
	ErrInvalidPoint = errors.New("Invalid point")

	// ErrInvalidPath means text is not a derivation path like "m/44'/0'/0".
	ErrInvalidPath = errors.New("Invalid path")
)

// ParseError is returned when scanning a key from formatted text fails. Unlike the other errors
// of this package it carries the offending text instead of a failure kind.
type ParseError struct {
	Text string
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("Invalid hd key text : %s", err.Text)
}

// IsKeyError returns true if the error, or its cause, is one of the key failure kinds.
func IsKeyError(err error) bool {
	switch errors.Cause(err) {
	case ErrInvalidScalar, ErrPrefixMismatch, ErrInvalidEncoding, ErrDepthOverflow,
		ErrDerivationCollision, ErrInvalidPoint:
		return true
	}

	return false
}
