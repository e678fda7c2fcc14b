// Package tokengate exposes the gate builder.
package tokengate

import (
	"github.com/tokengate/tokengate/gate"
	"github.com/tokengate/tokengate/rpc"
)

// NewGate instantiates a minimum-balance *gate.Gate backed by a
// JSON-RPC balance client for the given endpoint. Pass rpc options
// (throttle, timeout, logger) to shape the client.
func NewGate(endpoint string, cfg gate.Config, opts ...rpc.Option) (*gate.Gate, error) {
	src, err := rpc.Build(endpoint, opts...)
	if err != nil {
		return nil, err
	}

	return gate.New(src, cfg)
}
