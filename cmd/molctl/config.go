// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"

	"github.com/btcsuite/molwallet/internal/cfgutil"
)

const (
	defaultConfigFilename = "molctl.conf"
	defaultLogLevel       = "info"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "molctl.log"
	defaultCellSlug       = "default-cell"
	defaultKeyWidthBits   = 8192
	defaultNodePort       = "9090"
)

var (
	molctlHomeDir     = cfgutil.AppDataDir("molctl")
	defaultConfigFile = filepath.Join(molctlHomeDir, defaultConfigFilename)
	defaultDataDir    = molctlHomeDir
	defaultLogDir     = filepath.Join(molctlHomeDir, defaultLogDirname)
)

// config holds every option molctl recognizes, whether supplied on the
// command line or read from a config file. Recognized options map 1:1
// to spec §6's description of the external collaborator surface.
type config struct {
	ConfigFile  string `short:"C" long:"configfile" description:"Path to configuration file"`
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`
	DataDir     string `short:"b" long:"datadir" description:"Directory to store the nonce database"`
	DebugLevel  string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical}"`
	LogDir      string `long:"logdir" description:"Directory to log output"`

	NodeURIs   []string `long:"nodeuri" description:"gRPC URI of a node to submit molecules to; may be given more than once"`
	CellSlug   string   `long:"cellslug" description:"Cell identifier every molecule this client builds is scoped to"`
	SecretFile string   `long:"secretfile" description:"Path to a file containing the wallet's hex secret; never taken as a bare flag value"`

	CompressedSignature bool `long:"compressedsignature" description:"Use the compressed (flat hex) one-time signature wire form" default:"true"`
	KeyWidthBits        int  `long:"keywidthbits" description:"WOTS+ chain seed width in bits" default:"8192"`
}

// defaultConfig returns a config populated with molctl's defaults,
// before flags or a config file are applied.
func defaultConfig() config {
	return config{
		ConfigFile:          defaultConfigFile,
		DataDir:             defaultDataDir,
		DebugLevel:          defaultLogLevel,
		LogDir:              defaultLogDir,
		CellSlug:            defaultCellSlug,
		CompressedSignature: true,
		KeyWidthBits:        defaultKeyWidthBits,
	}
}

// loadConfig parses command-line flags, then a config file (if present),
// mirroring the teacher's two-pass config.go/cmd.go: flags are parsed
// once to discover an explicit -C/--configfile, the file (if any) is
// parsed into defaults, and flags are parsed again so the command line
// always wins over the file.
func loadConfig() (*config, []string, error) {
	preCfg := defaultConfig()
	preParser := flags.NewParser(&preCfg, flags.Default)
	_, err := preParser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, nil, err
	}

	if preCfg.ShowVersion {
		fmt.Println("molctl", version())
		os.Exit(0)
	}

	cfg := defaultConfig()
	if exists, _ := cfgutil.FileExists(preCfg.ConfigFile); exists {
		fileParser := flags.NewIniParser(flags.NewParser(&cfg, flags.Default))
		if err := fileParser.ParseFile(preCfg.ConfigFile); err != nil {
			return nil, nil, err
		}
	}

	parser := flags.NewParser(&cfg, flags.Default)
	remainingArgs, err := parser.Parse()
	if err != nil {
		return nil, nil, err
	}

	if len(cfg.NodeURIs) > 0 {
		cfg.NodeURIs, err = cfgutil.NormalizeAddresses(cfg.NodeURIs, defaultNodePort)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid nodeuri: %w", err)
		}
	}

	if cfg.CellSlug == "" {
		return nil, nil, fmt.Errorf("cellslug must not be empty")
	}

	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(cfg.LogDir, 0700); err != nil {
		return nil, nil, err
	}

	return &cfg, remainingArgs, nil
}

// readSecret reads and trims the wallet secret from cfg.SecretFile. The
// secret is never accepted as a bare CLI flag value, so it cannot leak
// into shell history or a process listing.
func readSecret(cfg *config) ([]byte, error) {
	if cfg.SecretFile == "" {
		return nil, fmt.Errorf("secretfile must be set")
	}
	data, err := os.ReadFile(cfg.SecretFile)
	if err != nil {
		return nil, err
	}
	return trimTrailingNewline(data), nil
}

func trimTrailingNewline(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}
