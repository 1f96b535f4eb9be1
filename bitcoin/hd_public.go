package bitcoin

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

// hdKeyData is the data common to private and public hierarchical deterministic keys. A zero value
// is the invalid "no key" sentinel.
type hdKeyData struct {
	point     [CompressedKeySize]byte
	chainCode [ChainCodeSize]byte
	lineage   HDLineage
	valid     bool
}

// HDPublicKey is a BIP-0032 extended public key (xpub). It is immutable and safe to copy.
type HDPublicKey struct {
	hdKeyData
}

// IsValid returns false for the zero value returned by factories that fail.
func (d hdKeyData) IsValid() bool {
	return d.valid
}

// Point returns the compressed public point.
func (d hdKeyData) Point() [CompressedKeySize]byte {
	return d.point
}

// ChainCode returns the chain code used to derive children.
func (d hdKeyData) ChainCode() [ChainCodeSize]byte {
	return d.chainCode
}

// Lineage returns the prefixes, depth, parent fingerprint, and child number.
func (d hdKeyData) Lineage() HDLineage {
	return d.lineage
}

// Fingerprint returns the first 4 bytes of the Hash160 of the point as a big endian integer.
func (d hdKeyData) Fingerprint() uint32 {
	return binary.BigEndian.Uint32(Hash160(d.point[:])[:FingerprintSize])
}

// HDPublicKeyFromBytes parses a 78 byte payload, or 82 bytes with check hash, and verifies the
// version matches prefix.
func HDPublicKeyFromBytes(b []byte, prefix uint32) (HDPublicKey, error) {
	fields, err := readHDKey(b)
	if err != nil {
		return HDPublicKey{}, err
	}

	if fields.version != prefix {
		return HDPublicKey{}, errors.Wrapf(ErrPrefixMismatch, "got %08x, want %08x",
			fields.version, prefix)
	}

	return newHDPublicKeyFromFields(fields)
}

// HDPublicKeyFromBytesAnyVersion parses a public key without validating the version. The version
// read becomes the public prefix.
func HDPublicKeyFromBytesAnyVersion(b []byte) (HDPublicKey, error) {
	fields, err := readHDKey(b)
	if err != nil {
		return HDPublicKey{}, err
	}

	return newHDPublicKeyFromFields(fields)
}

// HDPublicKeyFromString parses Base58 text and verifies the version matches prefix.
func HDPublicKeyFromString(s string, prefix uint32) (HDPublicKey, error) {
	b, err := decodeHDKeyText(s)
	if err != nil {
		return HDPublicKey{}, err
	}

	return HDPublicKeyFromBytes(b, prefix)
}

// HDPublicKeyFromStringAnyVersion parses Base58 text without validating the version.
func HDPublicKeyFromStringAnyVersion(s string) (HDPublicKey, error) {
	b, err := decodeHDKeyText(s)
	if err != nil {
		return HDPublicKey{}, err
	}

	return HDPublicKeyFromBytesAnyVersion(b)
}

func newHDPublicKeyFromFields(fields hdKeyFields) (HDPublicKey, error) {
	if err := pointIsValid(fields.keyData); err != nil {
		return HDPublicKey{}, err
	}

	// Only the public version is known so the private half is zero.
	return HDPublicKey{
		hdKeyData: hdKeyData{
			point:     fields.keyData,
			chainCode: fields.chainCode,
			lineage: HDLineage{
				Prefixes:          ToPrefixes(0, fields.version),
				Depth:             fields.depth,
				ParentFingerprint: fields.parentFingerprint,
				ChildNumber:       fields.childNumber,
			},
			valid: true,
		},
	}, nil
}

// Payload returns the 78 byte extended key layout.
func (k HDPublicKey) Payload() [HDKeyPayloadSize]byte {
	return writeHDKey(k.lineage.Prefixes.Public(), k.lineage, k.chainCode, k.point)
}

// Bytes returns the 78 byte extended key layout.
func (k HDPublicKey) Bytes() []byte {
	payload := k.Payload()
	return payload[:]
}

// CheckedBytes returns the 82 byte extended key layout with the check hash.
func (k HDPublicKey) CheckedBytes() [HDKeySize]byte {
	return ChecksumAppend(k.Payload())
}

// String returns the key formatted as Base58 text.
func (k HDPublicKey) String() string {
	return Base58CheckEncode(k.Bytes())
}

// Equal returns true if the other key has the same value.
func (k HDPublicKey) Equal(other HDPublicKey) bool {
	return k.hdKeyData == other.hdKeyData
}

// Less orders keys by their Base58 text. Each comparison encodes both keys.
func (k HDPublicKey) Less(other HDPublicKey) bool {
	return k.String() < other.String()
}

// Scan implements fmt.Scanner. The version is not validated. A failure is reported as a
// *ParseError containing the text.
func (k *HDPublicKey) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, nil)
	if err != nil {
		return err
	}
	text := string(token)

	key, err := HDPublicKeyFromStringAnyVersion(text)
	if err != nil {
		return &ParseError{Text: text}
	}

	*k = key
	return nil
}

// MarshalText returns the text encoding of the key. An invalid key is empty.
// Implements encoding.TextMarshaler interface.
func (k HDPublicKey) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return []byte{}, nil
	}

	return []byte(k.String()), nil
}

// UnmarshalText parses a text encoded key and sets the value of this object.
// Implements encoding.TextUnmarshaler interface.
func (k *HDPublicKey) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*k = HDPublicKey{}
		return nil
	}

	key, err := HDPublicKeyFromStringAnyVersion(string(text))
	if err != nil {
		return err
	}

	*k = key
	return nil
}

// MarshalJSON converts to json. An invalid key is null.
func (k HDPublicKey) MarshalJSON() ([]byte, error) {
	if !k.IsValid() {
		return []byte("null"), nil
	}

	return []byte("\"" + k.String() + "\""), nil
}

// UnmarshalJSON converts from json. null leaves the key unchanged.
func (k *HDPublicKey) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.Wrap(ErrInvalidEncoding, "json string")
	}

	return k.UnmarshalText(data[1 : len(data)-1])
}

// MarshalBinary returns the binary encoding of the key.
// Implements encoding.BinaryMarshaler interface.
func (k HDPublicKey) MarshalBinary() ([]byte, error) {
	if !k.IsValid() {
		return nil, nil
	}

	return k.Bytes(), nil
}

// UnmarshalBinary parses a binary encoded key and sets the value of this object.
// Implements encoding.BinaryUnmarshaler interface.
func (k *HDPublicKey) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		*k = HDPublicKey{}
		return nil
	}

	key, err := HDPublicKeyFromBytesAnyVersion(data)
	if err != nil {
		return err
	}

	*k = key
	return nil
}
