// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package node defines the engine's external collaborator seam (spec
// §6's Node): the Client interface a caller submits signed molecules
// through, a concrete gRPC transport, a websocket-based Subscriber for
// live updates, and the retry/connection-pool helpers that govern
// those concrete transports. None of this package's business — dial,
// retry, reconnect — belongs to the engine itself; Molecule and Wallet
// never import it.
package node

import "fmt"

// ErrorCode identifies a kind of TransportError.
type ErrorCode int

const (
	// ErrConnectFailed indicates a connection or handshake failure.
	ErrConnectFailed ErrorCode = iota

	// ErrInvokeFailed indicates an RPC/request failed after all
	// configured retries were exhausted.
	ErrInvokeFailed

	// ErrSubscribeFailed indicates a subscription could not be
	// established or was dropped unrecoverably.
	ErrSubscribeFailed

	// ErrDecodeFailed indicates a response could not be decoded into
	// its expected shape.
	ErrDecodeFailed
)

var errorCodeStrings = map[ErrorCode]string{
	ErrConnectFailed:   "ErrConnectFailed",
	ErrInvokeFailed:    "ErrInvokeFailed",
	ErrSubscribeFailed: "ErrSubscribeFailed",
	ErrDecodeFailed:    "ErrDecodeFailed",
}

func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// TransportError provides a single type for errors raised while
// dialing, invoking, or subscribing against a node.
type TransportError struct {
	ErrorCode   ErrorCode
	Description string
	Err         error
}

func (e TransportError) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

func (e TransportError) Unwrap() error { return e.Err }

func transportError(c ErrorCode, desc string, err error) TransportError {
	return TransportError{ErrorCode: c, Description: desc, Err: err}
}
