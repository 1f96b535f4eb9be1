package bitcoin

import "fmt"

// Prefixes holds a network's paired private and public extended key version numbers. The private
// version is in the high 32 bits and the public version is in the low 32 bits.
type Prefixes uint64

const (
	MainNetPrivatePrefix = uint32(0x0488ade4) // xprv
	MainNetPublicPrefix  = uint32(0x0488b21e) // xpub
	TestNetPrivatePrefix = uint32(0x04358394) // tprv
	TestNetPublicPrefix  = uint32(0x043587cf) // tpub

	MainNetPrefixes = Prefixes(uint64(MainNetPrivatePrefix)<<32 | uint64(MainNetPublicPrefix))
	TestNetPrefixes = Prefixes(uint64(TestNetPrivatePrefix)<<32 | uint64(TestNetPublicPrefix))
)

// ToPrefixes packs a private and public version into one value.
func ToPrefixes(private, public uint32) Prefixes {
	return Prefixes(uint64(private)<<32 | uint64(public))
}

// ToPrefixPrivate returns the private version from the prefixes.
func ToPrefixPrivate(prefixes Prefixes) uint32 {
	return uint32(prefixes >> 32)
}

// ToPrefixPublic returns the public version from the prefixes.
func ToPrefixPublic(prefixes Prefixes) uint32 {
	return uint32(prefixes)
}

// Private returns the private version.
func (p Prefixes) Private() uint32 {
	return ToPrefixPrivate(p)
}

// Public returns the public version.
func (p Prefixes) Public() uint32 {
	return ToPrefixPublic(p)
}

func (p Prefixes) String() string {
	return fmt.Sprintf("%08x:%08x", p.Private(), p.Public())
}
