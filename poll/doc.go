// Package poll re-checks account balances against a gate on a fixed
// interval. Checks are scheduled through a shared [queue.Queue], so a
// burst of accounts per tick is smoothed to the queue's dispatch rate
// instead of hammering the RPC endpoint.
//
// # Usage
//
//	q, _ := queue.New[gate.Decision](10)
//	p, err := poll.New(g, q, 30*time.Second, accounts)
//	if err != nil { ... }
//
//	if err := p.Start(ctx); err != nil { ... }
//	defer p.Stop()
//
//	for u := range p.Updates() {
//		if u.Err != nil { ... continue ... }
//		grantOrRevoke(u.Account, u.Decision.Allowed)
//	}
//
// A failing check delivers an Update with Err set and polling
// continues; the Updates channel closes only after Stop (or context
// cancellation) once in-flight checks have settled.
package poll
