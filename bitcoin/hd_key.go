package bitcoin

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

const (
	Hardened = uint32(0x80000000) // Hardened child index offset

	HDKeyPayloadSize = 78 // Extended key without check hash
	HDKeySize        = 82 // Extended key with check hash
)

// HDLineage identifies the position of a key within its tree.
type HDLineage struct {
	Prefixes          Prefixes
	Depth             uint8
	ParentFingerprint uint32
	ChildNumber       uint32
}

// hdKeyFields are the values contained in the extended key binary layout.
type hdKeyFields struct {
	version           uint32
	depth             uint8
	parentFingerprint uint32
	childNumber       uint32
	chainCode         [ChainCodeSize]byte
	keyData           [CompressedKeySize]byte
}

// ChecksumAppend returns the payload followed by the first 4 bytes of its double SHA256.
func ChecksumAppend(payload [HDKeyPayloadSize]byte) [HDKeySize]byte {
	var result [HDKeySize]byte
	copy(result[:], AppendCheckHash(payload[:]))
	return result
}

// hdKeyPayload strips and verifies the check hash if present. 78 byte data is returned as is.
func hdKeyPayload(b []byte) ([]byte, error) {
	switch len(b) {
	case HDKeyPayloadSize:
		return b, nil
	case HDKeySize:
		payload, err := VerifyCheckHash(b)
		if err != nil {
			return nil, err
		}
		return payload, nil
	}

	return nil, errors.Wrapf(ErrInvalidEncoding, "hd key size : got %d, want %d or %d", len(b),
		HDKeyPayloadSize, HDKeySize)
}

// readHDKey parses the binary layout. It does not interpret the version or key data.
func readHDKey(b []byte) (hdKeyFields, error) {
	var result hdKeyFields

	payload, err := hdKeyPayload(b)
	if err != nil {
		return result, err
	}

	if err := result.read(bytes.NewReader(payload)); err != nil {
		return result, errors.Wrap(ErrInvalidEncoding, err.Error())
	}

	return result, nil
}

// writeHDKey assembles the binary layout.
func writeHDKey(version uint32, lineage HDLineage, chainCode [ChainCodeSize]byte,
	keyData [CompressedKeySize]byte) [HDKeyPayloadSize]byte {

	fields := hdKeyFields{
		version:           version,
		depth:             lineage.Depth,
		parentFingerprint: lineage.ParentFingerprint,
		childNumber:       lineage.ChildNumber,
		chainCode:         chainCode,
		keyData:           keyData,
	}

	var buf bytes.Buffer
	fields.write(&buf) // bytes.Buffer writes don't fail

	var result [HDKeyPayloadSize]byte
	copy(result[:], buf.Bytes())
	return result
}

func (f *hdKeyFields) read(r io.Reader) error {
	if err := binary.Read(r, binary.BigEndian, &f.version); err != nil {
		return errors.Wrap(err, "reading hd key version")
	}

	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return errors.Wrap(err, "reading hd key depth")
	}
	f.depth = b[0]

	if err := binary.Read(r, binary.BigEndian, &f.parentFingerprint); err != nil {
		return errors.Wrap(err, "reading hd key fingerprint")
	}

	if err := binary.Read(r, binary.BigEndian, &f.childNumber); err != nil {
		return errors.Wrap(err, "reading hd key child number")
	}

	if _, err := io.ReadFull(r, f.chainCode[:]); err != nil {
		return errors.Wrap(err, "reading hd key chain code")
	}

	if _, err := io.ReadFull(r, f.keyData[:]); err != nil {
		return errors.Wrap(err, "reading hd key data")
	}

	return nil
}

func (f hdKeyFields) write(w io.Writer) error {
	if err := binary.Write(w, binary.BigEndian, f.version); err != nil {
		return errors.Wrap(err, "writing hd key version")
	}

	if _, err := w.Write([]byte{f.depth}); err != nil {
		return errors.Wrap(err, "writing hd key depth")
	}

	if err := binary.Write(w, binary.BigEndian, f.parentFingerprint); err != nil {
		return errors.Wrap(err, "writing hd key fingerprint")
	}

	if err := binary.Write(w, binary.BigEndian, f.childNumber); err != nil {
		return errors.Wrap(err, "writing hd key child number")
	}

	if _, err := w.Write(f.chainCode[:]); err != nil {
		return errors.Wrap(err, "writing hd key chain code")
	}

	if _, err := w.Write(f.keyData[:]); err != nil {
		return errors.Wrap(err, "writing hd key data")
	}

	return nil
}

// isPrivate returns true if the key data holds a padded secret.
func (f hdKeyFields) isPrivate() bool {
	return f.keyData[0] == privateKeyPadding
}

func (f hdKeyFields) secret() [SecretSize]byte {
	var result [SecretSize]byte
	copy(result[:], f.keyData[1:])
	return result
}

// decodeHDKeyText decodes Base58 text into the extended key payload.
func decodeHDKeyText(s string) ([]byte, error) {
	b, err := Base58CheckDecode(s)
	if err != nil {
		return nil, err
	}

	if len(b) != HDKeyPayloadSize {
		return nil, errors.Wrapf(ErrInvalidEncoding, "hd key size : got %d, want %d", len(b),
			HDKeyPayloadSize)
	}

	return b, nil
}
