// Package gate decides whether an account holds enough of a gating
// token to be granted access. It is pure comparison logic over an
// injected balance source; fetching the balance, wallet connection,
// and anything UI-side live elsewhere.
//
// # Usage
//
//	src, err := rpc.Build(endpoint, rpc.WithThrottle(10, 5))
//	g, err := gate.New(src, gate.Config{
//		Token:      "CHESH",
//		MinBalance: 1_000_000,
//	})
//
//	d, err := g.Check(ctx, account)
//	if err != nil { ... }
//	if d.Allowed { ... }
//
// Each successful Check yields a [Decision] carrying a UUID, the
// observed balance, and the verdict. Config validation failures are
// reported as [FieldErrors], one entry per offending field.
package gate
