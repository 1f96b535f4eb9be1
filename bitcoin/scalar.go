package bitcoin

import (
	"github.com/btcsuite/btcd/btcec/v2"
)

const (
	SecretSize        = 32
	ChainCodeSize     = 32
	CompressedKeySize = 33
	FingerprintSize   = 4
	maxDepth          = uint8(0xff)
	privateKeyPadding = byte(0x00)
)

// curveOrder returns n, the order of the secp256k1 group.
func curveOrder() []byte {
	return btcec.S256().N.Bytes()
}

// privateKeyIsValid returns ErrInvalidScalar unless 0 < b < n.
func privateKeyIsValid(b [SecretSize]byte) error {
	var s btcec.ModNScalar
	if overflow := s.SetBytes(&b); overflow != 0 {
		return ErrInvalidScalar
	}

	if s.IsZero() {
		return ErrInvalidScalar
	}

	return nil
}

// addPrivateKeys returns (tweak + key) mod n. It fails with ErrDerivationCollision if tweak is not
// less than n or the sum is zero. key must already be valid.
func addPrivateKeys(tweak, key [SecretSize]byte) ([SecretSize]byte, error) {
	var t, k btcec.ModNScalar
	if overflow := t.SetBytes(&tweak); overflow != 0 {
		return [SecretSize]byte{}, ErrDerivationCollision
	}
	k.SetBytes(&key)

	k.Add(&t)
	if k.IsZero() {
		return [SecretSize]byte{}, ErrDerivationCollision
	}

	return k.Bytes(), nil
}

// secretToPoint returns the compressed public point for a valid secret.
func secretToPoint(secret [SecretSize]byte) [CompressedKeySize]byte {
	_, publicKey := btcec.PrivKeyFromBytes(secret[:])

	var result [CompressedKeySize]byte
	copy(result[:], publicKey.SerializeCompressed())
	return result
}

// pointIsValid returns ErrInvalidPoint unless the data is a compressed point on the curve.
func pointIsValid(point [CompressedKeySize]byte) error {
	if point[0] != 0x02 && point[0] != 0x03 {
		return ErrInvalidPoint
	}

	if _, err := btcec.ParsePubKey(point[:]); err != nil {
		return ErrInvalidPoint
	}

	return nil
}
