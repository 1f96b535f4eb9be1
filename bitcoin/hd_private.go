package bitcoin

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

var masterSeedKey = []byte("Bitcoin seed")

// HDPrivateKey is a BIP-0032 extended private key (xprv). It is immutable and safe to copy. The
// point is always derived from the secret.
type HDPrivateKey struct {
	hdKeyData
	secret [SecretSize]byte
}

// HDPrivateKeyFromEntropy creates a master key from a seed.
func HDPrivateKeyFromEntropy(entropy []byte, prefixes Prefixes) (HDPrivateKey, error) {
	secret, chainCode := splitHash(HmacSha512(masterSeedKey, entropy))

	key, err := NewHDPrivateKey(secret, chainCode, prefixes)
	if err != nil {
		return HDPrivateKey{}, errors.Wrap(err, "master")
	}

	return key, nil
}

// GenerateHDPrivateKey creates a master key from random entropy.
func GenerateHDPrivateKey(params HDParams) (HDPrivateKey, error) {
	seed := make([]byte, 64)
	if _, err := rand.Read(seed); err != nil {
		return HDPrivateKey{}, errors.Wrap(err, "random")
	}

	return HDPrivateKeyFromEntropy(seed, params.Prefixes)
}

// NewHDPrivateKey creates a master key from a secret and chain code.
func NewHDPrivateKey(secret [SecretSize]byte, chainCode [ChainCodeSize]byte,
	prefixes Prefixes) (HDPrivateKey, error) {

	return newHDPrivateKey(secret, chainCode, HDLineage{Prefixes: prefixes})
}

func newHDPrivateKey(secret [SecretSize]byte, chainCode [ChainCodeSize]byte,
	lineage HDLineage) (HDPrivateKey, error) {

	if err := privateKeyIsValid(secret); err != nil {
		return HDPrivateKey{}, err
	}

	return HDPrivateKey{
		hdKeyData: hdKeyData{
			point:     secretToPoint(secret),
			chainCode: chainCode,
			lineage:   lineage,
			valid:     true,
		},
		secret: secret,
	}, nil
}

// HDPrivateKeyFromBytes parses a 78 byte payload, or 82 bytes with check hash, and verifies the
// version matches the private half of prefixes.
func HDPrivateKeyFromBytes(b []byte, prefixes Prefixes) (HDPrivateKey, error) {
	fields, err := readHDKey(b)
	if err != nil {
		return HDPrivateKey{}, err
	}

	if fields.version != prefixes.Private() {
		return HDPrivateKey{}, errors.Wrapf(ErrPrefixMismatch, "got %08x, want %08x",
			fields.version, prefixes.Private())
	}

	return newHDPrivateKeyFromFields(fields, prefixes)
}

// HDPrivateKeyFromBytesWithPublic parses a key using the version it contains as the private
// prefix and pairs it with the specified public prefix.
func HDPrivateKeyFromBytesWithPublic(b []byte, publicPrefix uint32) (HDPrivateKey, error) {
	fields, err := readHDKey(b)
	if err != nil {
		return HDPrivateKey{}, err
	}

	return newHDPrivateKeyFromFields(fields, ToPrefixes(fields.version, publicPrefix))
}

// HDPrivateKeyFromString parses Base58 text and verifies the version matches the private half of
// prefixes.
func HDPrivateKeyFromString(s string, prefixes Prefixes) (HDPrivateKey, error) {
	b, err := decodeHDKeyText(s)
	if err != nil {
		return HDPrivateKey{}, err
	}

	return HDPrivateKeyFromBytes(b, prefixes)
}

// HDPrivateKeyFromStringWithPublic parses Base58 text using the version it contains as the
// private prefix and pairs it with the specified public prefix.
func HDPrivateKeyFromStringWithPublic(s string, publicPrefix uint32) (HDPrivateKey, error) {
	b, err := decodeHDKeyText(s)
	if err != nil {
		return HDPrivateKey{}, err
	}

	return HDPrivateKeyFromBytesWithPublic(b, publicPrefix)
}

func newHDPrivateKeyFromFields(fields hdKeyFields, prefixes Prefixes) (HDPrivateKey, error) {
	if !fields.isPrivate() {
		return HDPrivateKey{}, errors.Wrap(ErrInvalidEncoding, "missing private key padding")
	}

	lineage := HDLineage{
		Prefixes:          prefixes,
		Depth:             fields.depth,
		ParentFingerprint: fields.parentFingerprint,
		ChildNumber:       fields.childNumber,
	}

	return newHDPrivateKey(fields.secret(), fields.chainCode, lineage)
}

// Secret returns the 32 byte big endian private scalar.
func (k HDPrivateKey) Secret() [SecretSize]byte {
	return k.secret
}

// DerivePrivate returns the child private key at the specified index. Indexes at or above
// Hardened produce hardened children.
//
// ErrDerivationCollision is returned for the rare indexes that produce an invalid key. BIP-0032
// says to use the next index instead, but that is left to the caller.
func (k HDPrivateKey) DerivePrivate(index uint32) (HDPrivateKey, error) {
	if !k.valid {
		return HDPrivateKey{}, errors.Wrap(ErrInvalidScalar, "invalid parent")
	}

	if k.lineage.Depth == maxDepth {
		return HDPrivateKey{}, ErrDepthOverflow
	}

	left, right := splitHash(HmacSha512(k.chainCode[:], k.childMessage(index)))

	// The child secret is (parse256(IL) + kpar) mod n.
	secret, err := addPrivateKeys(left, k.secret)
	if err != nil {
		return HDPrivateKey{}, errors.Wrapf(err, "index %d", index)
	}

	lineage := HDLineage{
		Prefixes:          k.lineage.Prefixes,
		Depth:             k.lineage.Depth + 1,
		ParentFingerprint: k.Fingerprint(),
		ChildNumber:       index,
	}

	return newHDPrivateKey(secret, right, lineage)
}

// childMessage returns the HMAC data for the child at index.
//   Hardened: 0x00 || secret || index
//   Normal:   point || index
func (k HDPrivateKey) childMessage(index uint32) []byte {
	message := make([]byte, 0, CompressedKeySize+4)
	if index >= Hardened {
		message = append(message, privateKeyPadding)
		message = append(message, k.secret[:]...)
	} else {
		message = append(message, k.point[:]...)
	}

	return binary.BigEndian.AppendUint32(message, index)
}

// DerivePublic returns the public key of the child at the specified index.
func (k HDPrivateKey) DerivePublic(index uint32) (HDPublicKey, error) {
	child, err := k.DerivePrivate(index)
	if err != nil {
		return HDPublicKey{}, err
	}

	return child.ToPublic(), nil
}

// DerivePath returns the descendant at the specified path of indexes.
func (k HDPrivateKey) DerivePath(path []uint32) (HDPrivateKey, error) {
	result := k
	for i, index := range path {
		child, err := result.DerivePrivate(index)
		if err != nil {
			return HDPrivateKey{}, errors.Wrapf(err, "derive %s", PathToString(path[:i+1]))
		}
		result = child
	}

	return result, nil
}

// ToPublic returns the public key (xpub) of this key. Only the public prefix is kept, as it is
// all a public key encodes.
func (k HDPrivateKey) ToPublic() HDPublicKey {
	result := HDPublicKey{hdKeyData: k.hdKeyData}
	result.lineage.Prefixes = ToPrefixes(0, k.lineage.Prefixes.Public())
	return result
}

// Payload returns the 78 byte extended key layout.
func (k HDPrivateKey) Payload() [HDKeyPayloadSize]byte {
	var keyData [CompressedKeySize]byte
	keyData[0] = privateKeyPadding
	copy(keyData[1:], k.secret[:])

	return writeHDKey(k.lineage.Prefixes.Private(), k.lineage, k.chainCode, keyData)
}

// Bytes returns the 78 byte extended key layout.
func (k HDPrivateKey) Bytes() []byte {
	payload := k.Payload()
	return payload[:]
}

// CheckedBytes returns the 82 byte extended key layout with the check hash.
func (k HDPrivateKey) CheckedBytes() [HDKeySize]byte {
	return ChecksumAppend(k.Payload())
}

// String returns the key formatted as Base58 text.
func (k HDPrivateKey) String() string {
	return Base58CheckEncode(k.Bytes())
}

// Equal returns true if the other key has the same value.
func (k HDPrivateKey) Equal(other HDPrivateKey) bool {
	return k.secret == other.secret && k.hdKeyData == other.hdKeyData
}

// Less orders keys by their Base58 text. Each comparison encodes both keys.
func (k HDPrivateKey) Less(other HDPrivateKey) bool {
	return k.String() < other.String()
}

// Scan implements fmt.Scanner. Main net is assumed for the public prefix since the text only
// contains the private version. A failure is reported as a *ParseError containing the text.
func (k *HDPrivateKey) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, nil)
	if err != nil {
		return err
	}
	text := string(token)

	key, err := HDPrivateKeyFromStringWithPublic(text, MainNetPublicPrefix)
	if err != nil {
		return &ParseError{Text: text}
	}

	*k = key
	return nil
}

// MarshalText returns the text encoding of the key. An invalid key is empty.
// Implements encoding.TextMarshaler interface.
func (k HDPrivateKey) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return []byte{}, nil
	}

	return []byte(k.String()), nil
}

// UnmarshalText parses a text encoded key and sets the value of this object. Main net is assumed
// for the public prefix.
// Implements encoding.TextUnmarshaler interface.
func (k *HDPrivateKey) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*k = HDPrivateKey{}
		return nil
	}

	key, err := HDPrivateKeyFromStringWithPublic(string(text), MainNetPublicPrefix)
	if err != nil {
		return err
	}

	*k = key
	return nil
}

// MarshalJSON converts to json. An invalid key is null.
func (k HDPrivateKey) MarshalJSON() ([]byte, error) {
	if !k.IsValid() {
		return []byte("null"), nil
	}

	return []byte("\"" + k.String() + "\""), nil
}

// UnmarshalJSON converts from json. null leaves the key unchanged.
func (k *HDPrivateKey) UnmarshalJSON(data []byte) error {
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
func (k HDPrivateKey) MarshalBinary() ([]byte, error) {
	if !k.IsValid() {
		return nil, nil
	}

	return k.Bytes(), nil
}

// UnmarshalBinary parses a binary encoded key and sets the value of this object. Main net is
// assumed for the public prefix.
// Implements encoding.BinaryUnmarshaler interface.
func (k *HDPrivateKey) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		*k = HDPrivateKey{}
		return nil
	}

	key, err := HDPrivateKeyFromBytesWithPublic(data, MainNetPublicPrefix)
	if err != nil {
		return err
	}

	*k = key
	return nil
}
