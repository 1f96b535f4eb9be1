package bitcoin

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
	btcdwire "github.com/btcsuite/btcd/wire"
)

// Network is the message start value of a BSV network.
type Network uint32

const (
	MainNet       Network = 0xe8f3e1e3
	TestNet       Network = 0xf4f3e5f4
	StressTestNet Network = 0xf9c4cefb
	InvalidNet    Network = 0x00000000
)

var (
	// MainNetParams are the btcd main net parameters with the BSV network name and magic.
	MainNetParams = networkParams(chaincfg.MainNetParams, MainNet)

	// TestNetParams are the btcd test net parameters with the BSV network name and magic.
	TestNetParams = networkParams(chaincfg.TestNet3Params, TestNet)

	// StressTestNetParams use the test net version bytes.
	StressTestNetParams = networkParams(chaincfg.TestNet3Params, StressTestNet)
)

// HDParams are the network parameters needed to create and encode hierarchical deterministic
// keys.
type HDParams struct {
	Name     string
	Prefixes Prefixes
}

// NewHDParams returns the HD parameters defined by chain parameters.
func NewHDParams(params *chaincfg.Params) HDParams {
	return HDParams{
		Name: params.Name,
		Prefixes: ToPrefixes(binary.BigEndian.Uint32(params.HDPrivateKeyID[:]),
			binary.BigEndian.Uint32(params.HDPublicKeyID[:])),
	}
}

// HDParamsForNetwork returns the HD parameters for the network. Anything unknown uses the test
// net version bytes.
func HDParamsForNetwork(net Network) HDParams {
	return NewHDParams(ChainParams(net))
}

// ChainParams returns the chain parameters for the network. Anything unknown gets test net.
func ChainParams(net Network) *chaincfg.Params {
	switch net {
	case MainNet:
		return &MainNetParams
	case StressTestNet:
		return &StressTestNetParams
	default:
		return &TestNetParams
	}
}

func NetworkFromString(name string) Network {
	switch name {
	case "mainnet":
		return MainNet
	case "testnet":
		return TestNet
	case "stn":
		return StressTestNet
	}

	return InvalidNet
}

func NetworkName(net Network) string {
	switch net {
	case MainNet:
		return "mainnet"
	case StressTestNet:
		return "stn"
	default:
		return "testnet"
	}
}

func (n Network) String() string {
	return NetworkName(n)
}

func networkParams(base chaincfg.Params, net Network) chaincfg.Params {
	base.Name = NetworkName(net)
	base.Net = btcdwire.BitcoinNet(net)
	return base
}

func init() {
	// Registration maps the version bytes back to a network for btcd packages.
	for _, params := range []*chaincfg.Params{&MainNetParams, &TestNetParams,
		&StressTestNetParams} {
		if err := chaincfg.Register(params); err != nil {
			fmt.Printf("WARNING failed to register %s params : %s\n", params.Name, err)
		}
	}
}
