package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"github.com/tokenized/config"
	"github.com/tokenized/hdkeys/bitcoin"
	"github.com/tokenized/hdkeys/hdtree"

	"github.com/pkg/errors"
	"github.com/tokenized/logger"
)

const usage = `Commands :
  master [Seed Hex]
  generate
  derive [xprv] [Path]
  public [xprv]
  inspect [xprv or xpub]
  range [xprv] [Path] [Start Index] [Count]`

type Config struct {
	Network string `default:"mainnet" envconfig:"BITCOIN_NETWORK" json:"network"`
	Workers int    `default:"4" envconfig:"DERIVE_WORKERS" json:"workers"`
	Seed    string `envconfig:"HD_SEED" json:"seed" masked:"true"`
}

func main() {
	ctx := logger.ContextWithLogger(context.Background(), true, true, "")

	cfg := &Config{}
	if err := config.LoadConfig(ctx, cfg); err != nil {
		logger.Fatal(ctx, "Failed to load config : %s", err)
	}

	maskedConfig, err := config.MarshalJSONMaskedRaw(cfg)
	if err != nil {
		logger.Fatal(ctx, "Failed to marshal config : %s", err)
	}

	logger.InfoWithFields(ctx, []logger.Field{
		logger.JSON("config", maskedConfig),
	}, "Config")

	if len(os.Args) < 2 {
		fmt.Printf("Command required\n%s\n", usage)
		os.Exit(1)
	}

	params, err := hdParams(cfg.Network)
	if err != nil {
		logger.Fatal(ctx, "Invalid config : %s", err)
	}

	switch os.Args[1] {
	case "master":
		err = Master(ctx, cfg, params, os.Args[2:])
	case "generate":
		err = Generate(ctx, params)
	case "derive":
		err = Derive(ctx, params, os.Args[2:])
	case "public":
		err = Public(ctx, params, os.Args[2:])
	case "inspect":
		err = Inspect(ctx, params, os.Args[2:])
	case "range":
		err = Range(ctx, cfg, params, os.Args[2:])
	default:
		fmt.Printf("Unknown command : %s\n%s\n", os.Args[1], usage)
		os.Exit(1)
	}

	if err != nil {
		if bitcoin.IsKeyError(err) {
			fmt.Printf("Invalid key : %s\n", err)
		} else {
			fmt.Printf("Failed to %s : %s\n", os.Args[1], err)
		}
		os.Exit(1)
	}
}

// hdParams returns the key prefixes for the named network. Unknown names are rejected rather
// than falling back to test net.
func hdParams(name string) (bitcoin.HDParams, error) {
	net := bitcoin.NetworkFromString(name)
	if net == bitcoin.InvalidNet {
		return bitcoin.HDParams{}, fmt.Errorf("Unknown network : %s", name)
	}

	return bitcoin.HDParamsForNetwork(net), nil
}

// Master creates a master key from the seed argument, or HD_SEED when there isn't one.
func Master(ctx context.Context, cfg *Config, params bitcoin.HDParams, args []string) error {
	seedHex := cfg.Seed
	if len(args) > 0 {
		seedHex = args[0]
	}
	if len(seedHex) == 0 {
		return errors.New("Seed required")
	}

	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		return errors.Wrap(err, "seed hex")
	}

	key, err := bitcoin.HDPrivateKeyFromEntropy(seed, params.Prefixes)
	if err != nil {
		return errors.Wrap(err, "master key")
	}

	printKey(key)
	return nil
}

func Generate(ctx context.Context, params bitcoin.HDParams) error {
	key, err := bitcoin.GenerateHDPrivateKey(params)
	if err != nil {
		return errors.Wrap(err, "generate")
	}

	printKey(key)
	return nil
}

// Derive prints the descendant of a key at a path.
// Parameters: [xprv] [Path]
func Derive(ctx context.Context, params bitcoin.HDParams, args []string) error {
	if len(args) != 2 {
		return errors.New("Wrong argument count: derive [xprv] [Path]")
	}

	key, err := parsePrivate(params, args[0])
	if err != nil {
		return err
	}

	path, err := bitcoin.PathFromString(args[1])
	if err != nil {
		return errors.Wrap(err, "path")
	}

	child, err := key.DerivePath(path)
	if err != nil {
		return err
	}

	fmt.Printf("Path : %s\n", bitcoin.PathToString(path))
	printKey(child)
	return nil
}

func Public(ctx context.Context, params bitcoin.HDParams, args []string) error {
	if len(args) != 1 {
		return errors.New("Wrong argument count: public [xprv]")
	}

	key, err := parsePrivate(params, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", key.ToPublic())
	return nil
}

// Inspect prints the fields of an extended private or public key.
func Inspect(ctx context.Context, params bitcoin.HDParams, args []string) error {
	if len(args) != 1 {
		return errors.New("Wrong argument count: inspect [xprv or xpub]")
	}

	if key, err := parsePrivate(params, args[0]); err == nil {
		fmt.Printf("Type : private\n")
		printFields(key.Lineage(), key.Lineage().Prefixes.Private(), key.Fingerprint(),
			key.ChainCode(), key.Point())
		return nil
	}

	key, err := bitcoin.HDPublicKeyFromStringAnyVersion(args[0])
	if err != nil {
		return errors.Wrap(err, "key")
	}

	fmt.Printf("Type : public\n")
	printFields(key.Lineage(), key.Lineage().Prefixes.Public(), key.Fingerprint(),
		key.ChainCode(), key.Point())
	return nil
}

// Range prints the public keys of a range of children below a path.
// Parameters: [xprv] [Path] [Start Index] [Count]
func Range(ctx context.Context, cfg *Config, params bitcoin.HDParams, args []string) error {
	if len(args) != 4 {
		return errors.New("Wrong argument count: range [xprv] [Path] [Start Index] [Count]")
	}

	key, err := parsePrivate(params, args[0])
	if err != nil {
		return err
	}

	path, err := bitcoin.PathFromString(args[1])
	if err != nil {
		return errors.Wrap(err, "path")
	}

	start, err := bitcoin.PathIndexFromString(args[2])
	if err != nil {
		return errors.Wrap(err, "start index")
	}

	count, err := strconv.Atoi(args[3])
	if err != nil {
		return errors.Wrap(err, "count")
	}

	parent, err := key.DerivePath(path)
	if err != nil {
		return err
	}

	children, err := hdtree.DeriveRange(ctx, parent, start, count, cfg.Workers)
	if err != nil {
		return errors.Wrap(err, "derive range")
	}

	for _, child := range children {
		childPath := append(append([]uint32{}, path...), child.Lineage().ChildNumber)
		fmt.Printf("%s %s\n", bitcoin.PathToString(childPath), child.ToPublic())
	}

	return nil
}

func parsePrivate(params bitcoin.HDParams, s string) (bitcoin.HDPrivateKey, error) {
	key, err := bitcoin.HDPrivateKeyFromStringWithPublic(s, params.Prefixes.Public())
	if err != nil {
		return bitcoin.HDPrivateKey{}, errors.Wrap(err, "private key")
	}

	return key, nil
}

func printKey(key bitcoin.HDPrivateKey) {
	fmt.Printf("Private : %s\n", key)
	fmt.Printf("Public : %s\n", key.ToPublic())
}

func printFields(lineage bitcoin.HDLineage, version, fingerprint uint32, chainCode [32]byte,
	point [33]byte) {

	fmt.Printf("Version : %08x\n", version)
	fmt.Printf("Depth : %d\n", lineage.Depth)
	fmt.Printf("Parent Fingerprint : %08x\n", lineage.ParentFingerprint)
	fmt.Printf("Child Number : %s\n", bitcoin.PathIndexToString(lineage.ChildNumber))
	fmt.Printf("Fingerprint : %08x\n", fingerprint)
	fmt.Printf("Chain Code : %x\n", chainCode[:])
	fmt.Printf("Point : %x\n", point[:])
}
