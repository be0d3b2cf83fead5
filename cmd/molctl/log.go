// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"

	"github.com/btcsuite/molwallet/atom"
	"github.com/btcsuite/molwallet/molecule"
	"github.com/btcsuite/molwallet/node"
	"github.com/btcsuite/molwallet/nonce"
	"github.com/btcsuite/molwallet/wallet"
	"github.com/btcsuite/molwallet/wotssig"
)

// logRotator rotates the daemon's log file as it grows, exactly as the
// teacher's root log.go wires jrick/logrotate behind a btclog backend.
var logRotator *rotator.Rotator

// logWriter implements io.Writer, sending all logged messages to both
// standard output and the rotating log file.
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	os.Stdout.Write(p)
	logRotator.Write(p)
	return len(p), nil
}

// backendLog is the logging backend every subsystem's logger is created
// from. The log level of each individual logger may be set separately.
var backendLog = btclog.NewBackend(logWriter{})

var (
	log         = backendLog.Logger("MOLW")
	walletLog   = backendLog.Logger("WLLT")
	atomLog     = backendLog.Logger("ATOM")
	moleculeLog = backendLog.Logger("MOLC")
	wotssigLog  = backendLog.Logger("WOTS")
	nonceLog    = backendLog.Logger("NONC")
	nodeLog     = backendLog.Logger("NODE")
)

// subsystemLoggers maps each subsystem identifier used in DebugLevel
// options ("MOLW", "WLLT", ...) to its logger.
var subsystemLoggers = map[string]btclog.Logger{
	"MOLW": log,
	"WLLT": walletLog,
	"ATOM": atomLog,
	"MOLC": moleculeLog,
	"WOTS": wotssigLog,
	"NONC": nonceLog,
	"NODE": nodeLog,
}

// initLogRotator opens the log file for writing, rotating as it grows
// beyond 10 MiB and retaining the 3 most recent rotated files.
func initLogRotator(logFile string) {
	logDir, _ := filepath.Split(logFile)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		fmt.Fprintln(os.Stderr, "failed to create log directory:", err)
		os.Exit(1)
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create file rotator:", err)
		os.Exit(1)
	}
	logRotator = r
}

// useLoggers threads molctl's subsystem loggers into every engine
// package it drives, the way the teacher's root log.go threads loggers
// into waddrmgr/wtxmgr/chain.
func useLoggers() {
	wallet.UseLogger(walletLog)
	atom.UseLogger(atomLog)
	molecule.UseLogger(moleculeLog)
	wotssig.UseLogger(wotssigLog)
	nonce.UseLogger(nonceLog)
	node.UseLogger(nodeLog)
}

// setLogLevels sets the logging level for every registered subsystem
// logger. An unrecognized level is silently ignored.
func setLogLevels(levelStr string) {
	level, ok := btclog.LevelFromString(levelStr)
	if !ok {
		return
	}
	for _, logger := range subsystemLoggers {
		logger.SetLevel(level)
	}
}
