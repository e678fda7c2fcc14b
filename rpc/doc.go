// Package rpc provides a minimal JSON-RPC 2.0 client for reading
// account balances from a blockchain RPC endpoint. It deliberately
// covers nothing beyond the balance read: no transactions, no
// signatures, no account-data parsing.
//
// # Building a Client
//
// Use [Build] with functional options:
//
//	c, err := rpc.Build("https://api.mainnet-beta.solana.com",
//		rpc.WithTimeout(10*time.Second),
//		rpc.WithThrottle(10, 5), // stay under the endpoint's rate limit
//	)
//
// # Querying a Balance
//
//	balance, err := c.Balance(ctx, account)
//
// The returned amount is in the chain's base units and is treated as
// opaque. Request IDs are UUIDs and are verified against the response.
//
// Client satisfies the gate package's BalanceSource interface, so it
// plugs directly into a minimum-balance gate.
package rpc
