// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/btcsuite/websocket"
)

// SubscriptionKind names one of the live-update channels spec §6's
// external collaborator exposes (SUPPLEMENTAL FEATURES, grounded on
// the reference SDK's subscribe/*.rs).
type SubscriptionKind string

const (
	// KindActiveSession notifies on session-bundle activity.
	KindActiveSession SubscriptionKind = "ActiveSession"

	// KindActiveWallet notifies when a specific wallet receives a new
	// atom.
	KindActiveWallet SubscriptionKind = "ActiveWallet"

	// KindWalletStatus notifies on a wallet's claim/batch status
	// transitions.
	KindWalletStatus SubscriptionKind = "WalletStatus"
)

var subscriptionQueries = map[SubscriptionKind]string{
	KindActiveSession: `subscription onActiveSession($bundle: String!) { ActiveSession(bundle: $bundle) { bundleHash, ipAddress, userAgent, createdAt } }`,
	KindActiveWallet:  `subscription onActiveWallet($bundle: String!) { ActiveWallet(bundle: $bundle) { address, bundleHash, tokenSlug, batchId, position, amount, createdAt } }`,
	KindWalletStatus:  `subscription onWalletStatus($bundle: String!) { WalletStatusSubscribe(bundle: $bundle) { bundleHash, status, createdAt } }`,
}

// Event is one message delivered by a live subscription: the GraphQL
// operation name it arrived under and its decoded data payload.
type Event struct {
	OperationName string
	Data          map[string]interface{}
}

// Subscriber opens long-lived, server-push subscriptions. Unlike
// Client, nothing in the engine depends on Subscriber; it exists so
// callers have a complete, swappable seam for the live-update channels
// the reference SDKs expose alongside their request/response API.
type Subscriber interface {
	Subscribe(ctx context.Context, kind SubscriptionKind, variables map[string]interface{}) (<-chan Event, error)
	Close() error
}

type pendingSubscription struct {
	events chan Event
}

// WebsocketSubscriber is the concrete Subscriber transport binding: a
// single websocket connection carrying a GraphQL-over-websocket
// subscription protocol (start/data/stop frames keyed by a per-call
// subscription ID), grounded on the reference SDK's
// graphql/websocket.rs and subscribe/simple_websocket.rs.
type WebsocketSubscriber struct {
	conn *websocket.Conn

	mu      sync.Mutex
	nextID  int
	pending map[string]*pendingSubscription
	closed  bool
}

// DialWebsocketSubscriber opens a websocket connection to url and
// starts its read loop.
func DialWebsocketSubscriber(url string, header http.Header) (*WebsocketSubscriber, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		return nil, transportError(ErrConnectFailed, "failed to dial websocket "+url, err)
	}

	s := &WebsocketSubscriber{
		conn:    conn,
		pending: make(map[string]*pendingSubscription),
	}
	go s.readLoop()
	return s, nil
}

type subscriptionFrame struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Payload struct {
		Query     string                 `json:"query,omitempty"`
		Variables map[string]interface{} `json:"variables,omitempty"`
		Data      map[string]interface{} `json:"data,omitempty"`
	} `json:"payload"`
}

// Subscribe starts a new subscription of the given kind and returns a
// channel of its events. The channel is closed when the subscription
// ends, the connection drops, or Close is called.
func (s *WebsocketSubscriber) Subscribe(ctx context.Context, kind SubscriptionKind, variables map[string]interface{}) (<-chan Event, error) {
	query, ok := subscriptionQueries[kind]
	if !ok {
		return nil, transportError(ErrSubscribeFailed, "unknown subscription kind: "+string(kind), nil)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, transportError(ErrSubscribeFailed, "subscriber is closed", nil)
	}
	s.nextID++
	id := strconv.Itoa(s.nextID)
	sub := &pendingSubscription{events: make(chan Event, 16)}
	s.pending[id] = sub
	s.mu.Unlock()

	frame := subscriptionFrame{ID: id, Type: "start"}
	frame.Payload.Query = query
	frame.Payload.Variables = variables

	if err := s.conn.WriteJSON(frame); err != nil {
		s.mu.Lock()
		delete(s.pending, id)
		s.mu.Unlock()
		return nil, transportError(ErrSubscribeFailed, "failed to send subscription start frame", err)
	}

	go func() {
		<-ctx.Done()
		s.stop(id)
	}()

	return sub.events, nil
}

func (s *WebsocketSubscriber) stop(id string) {
	s.mu.Lock()
	sub, ok := s.pending[id]
	if ok {
		delete(s.pending, id)
	}
	s.mu.Unlock()
	if !ok {
		return
	}
	close(sub.events)
	_ = s.conn.WriteJSON(subscriptionFrame{ID: id, Type: "stop"})
}

func (s *WebsocketSubscriber) readLoop() {
	for {
		var frame subscriptionFrame
		if err := s.conn.ReadJSON(&frame); err != nil {
			log.Debugf("node: websocket subscriber read loop ended: %v", err)
			s.closeAll()
			return
		}
		if frame.Type != "data" {
			continue
		}
		s.deliver(frame)
	}
}

// deliver sends frame's events to their subscription channel. It holds
// mu for the whole lookup-and-send so a concurrent stop/closeAll can
// never close that channel out from under it.
func (s *WebsocketSubscriber) deliver(frame subscriptionFrame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.pending[frame.ID]
	if !ok {
		return
	}
	for name, data := range frame.Payload.Data {
		event := Event{OperationName: name}
		if m, ok := data.(map[string]interface{}); ok {
			event.Data = m
		}
		sub.events <- event
	}
}

func (s *WebsocketSubscriber) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, sub := range s.pending {
		close(sub.events)
		delete(s.pending, id)
	}
}

// Close closes the underlying websocket connection and every open
// subscription channel.
func (s *WebsocketSubscriber) Close() error {
	s.closeAll()
	return s.conn.Close()
}

var _ Subscriber = (*WebsocketSubscriber)(nil)
