// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"
)

// executeMutationMethod and executeQueryMethod are the fully-qualified
// gRPC method names GRPCClient invokes. The request and response wire
// shapes are both a protobuf well-known Struct, so the engine's
// mutation/query vocabulary (spec §6) can grow without a .proto
// regeneration step; a fixed request/response schema would need one
// for every new named mutation or query.
const (
	executeMutationMethod = "/knishio.Node/ExecuteMutation"
	executeQueryMethod    = "/knishio.Node/ExecuteQuery"
)

// GRPCClient is the concrete Client transport binding: it invokes
// ExecuteMutation/ExecuteQuery as unary gRPC calls over a pooled
// connection, retrying failed attempts per its RetryPolicy.
type GRPCClient struct {
	pool     *ConnectionPool
	endpoint string
	retry    RetryPolicy
}

// NewGRPCClient returns a Client that dials endpoint through pool,
// retrying failed invocations per retry.
func NewGRPCClient(pool *ConnectionPool, endpoint string, retry RetryPolicy) *GRPCClient {
	return &GRPCClient{pool: pool, endpoint: endpoint, retry: retry}
}

func (c *GRPCClient) ExecuteMutation(ctx context.Context, name string, variables map[string]interface{}) (*Response, error) {
	return c.invoke(ctx, executeMutationMethod, name, variables)
}

func (c *GRPCClient) ExecuteQuery(ctx context.Context, name string, variables map[string]interface{}) (*Response, error) {
	return c.invoke(ctx, executeQueryMethod, name, variables)
}

func (c *GRPCClient) invoke(ctx context.Context, method, name string, variables map[string]interface{}) (*Response, error) {
	payload := map[string]interface{}{"name": name}
	if variables != nil {
		payload["variables"] = variables
	}
	req, err := structpb.NewStruct(payload)
	if err != nil {
		return nil, transportError(ErrDecodeFailed, "failed to encode request variables", err)
	}

	var reply structpb.Struct
	err = c.retry.Do(ctx, func() error {
		conn, err := c.pool.Get(ctx, c.endpoint)
		if err != nil {
			return err
		}
		return conn.Invoke(ctx, method, req, &reply)
	})
	if err != nil {
		return nil, transportError(ErrInvokeFailed, "rpc "+name+" failed", err)
	}

	resp := &Response{Data: reply.AsMap()}
	if rawErrors, ok := resp.Data["errors"]; ok {
		delete(resp.Data, "errors")
		if errList, ok := rawErrors.([]interface{}); ok {
			for _, e := range errList {
				if s, ok := e.(string); ok {
					resp.Errors = append(resp.Errors, s)
				}
			}
		}
	}
	return resp, nil
}

var _ Client = (*GRPCClient)(nil)
