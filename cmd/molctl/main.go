// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcwallet/walletdb"
	_ "github.com/btcsuite/btcwallet/walletdb/bdb"

	"github.com/btcsuite/molwallet/internal/cfgutil"
	"github.com/btcsuite/molwallet/internal/zero"
	"github.com/btcsuite/molwallet/node"
	"github.com/btcsuite/molwallet/nonce"
	"github.com/btcsuite/molwallet/wallet"
)

// appVersion identifies molctl in its --version output and startup log
// line.
const appVersion = "0.1.0"

// defaultDBTimeout mirrors the teacher's wallet.DefaultDBTimeout: how
// long walletdb.Create waits to acquire the database file lock.
const defaultDBTimeout = 60 * time.Second

func version() string {
	return appVersion
}

func main() {
	os.Exit(mainInt())
}

// mainInt is main's testable body; it returns an exit code rather than
// calling os.Exit directly, the way walletMain does in the teacher's
// root btcwallet.go.
func mainInt() int {
	cfg, _, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		return 1
	}

	initLogRotator(filepath.Join(cfg.LogDir, defaultLogFilename))
	useLoggers()
	setLogLevels(cfg.DebugLevel)

	log.Infof("molctl version %s starting, cell %s", version(), cfg.CellSlug)

	store, err := openNonceStore(cfg)
	if err != nil {
		log.Errorf("failed to open nonce store: %v", err)
		return 1
	}
	defer store.Close()

	if cfg.SecretFile != "" {
		w, km, err := deriveWallet(cfg, cfg.CellSlug, "")
		if err != nil {
			log.Errorf("failed to derive wallet: %v", err)
			return 1
		}
		km.Zero()
		log.Infof("default wallet bundle %s, address %s", w.Bundle, w.Address)
	}

	if len(cfg.NodeURIs) == 0 {
		log.Warnf("no nodeuri configured; the node client will not be usable")
		return 0
	}

	pool := node.NewConnectionPool(node.DefaultPoolConfig())
	defer pool.Close()

	client := node.NewGRPCClient(pool, cfg.NodeURIs[0], node.DefaultRetryPolicy())

	ctx := context.Background()
	if _, err := client.ExecuteQuery(ctx, "Ping", nil); err != nil {
		log.Warnf("initial ping to %s failed: %v", cfg.NodeURIs[0], err)
	}

	log.Info("molctl is ready; engine operations are driven through the mutation and node packages")
	return 0
}

// openNonceStore opens or creates the bbolt-backed nonce.Store this
// client uses to enforce spec §9's one-time-position discipline.
func openNonceStore(cfg *config) (*nonce.Store, error) {
	dbPath := filepath.Join(cfg.DataDir, "nonce.db")

	exists, err := cfgutil.FileExists(dbPath)
	if err != nil {
		return nil, err
	}

	db, err := walletdb.Create("bdb", dbPath, false, defaultDBTimeout)
	if err != nil {
		return nil, err
	}

	if exists {
		return nonce.Open(db)
	}
	return nonce.Create(db)
}

// deriveWallet derives the wallet and one-shot key material for the
// given token and position, reading the client's secret from disk. Any
// mutation this client builds starts by calling this for the wallet it
// signs with.
func deriveWallet(cfg *config, token, position string) (*wallet.Wallet, *wallet.KeyMaterial, error) {
	secret, err := readSecret(cfg)
	if err != nil {
		return nil, nil, err
	}
	defer zero.Bytes(secret)

	return wallet.New(secret, token, position, cfg.KeyWidthBits)
}
