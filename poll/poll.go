package poll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tokengate/tokengate/gate"
	"github.com/tokengate/tokengate/queue"
)

// Update carries the outcome of one polled gate check. Exactly one of
// Decision or Err is meaningful.
type Update struct {
	Account  string
	Decision gate.Decision
	Err      error
}

// Poller periodically re-checks a set of accounts against a gate,
// funneling every check through a shared paced queue so that a large
// account set never bursts past the RPC endpoint's rate limit.
type Poller struct {
	g        *gate.Gate
	q        *queue.Queue[gate.Decision]
	interval time.Duration
	accounts []string
	logger   *slog.Logger

	updates chan Update
	stop    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
	started atomic.Bool
}

// Option defines optional settings for a Poller.
//
// WithLogger injects a custom logger.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New creates a Poller that checks each account every interval.
func New(g *gate.Gate, q *queue.Queue[gate.Decision], interval time.Duration, accounts []string, optFns ...Option) (*Poller, error) {
	if g == nil {
		return nil, errors.New("gate must not be nil")
	}
	if q == nil {
		return nil, errors.New("queue must not be nil")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("interval[%v] must be positive", interval)
	}
	if len(accounts) == 0 {
		return nil, errors.New("at least one account is required")
	}

	var opts options
	for _, opt := range optFns {
		opt(&opts)
	}
	if opts.logger == nil {
		opts.logger = slog.Default()
	}

	return &Poller{
		g:        g,
		q:        q,
		interval: interval,
		accounts: accounts,
		logger:   opts.logger,
		updates:  make(chan Update, len(accounts)),
		stop:     make(chan struct{}),
	}, nil
}

// Updates returns the channel on which check outcomes are delivered.
// The channel is closed after Stop (or ctx cancellation) once in-flight
// checks settle and their updates are delivered. The caller must drain
// it until close.
func (p *Poller) Updates() <-chan Update { return p.updates }

// Start launches the polling loop. The first round of checks is
// scheduled immediately; subsequent rounds fire every interval until
// Stop is called or ctx ends. Start may be called once.
func (p *Poller) Start(ctx context.Context) error {
	if !p.started.CompareAndSwap(false, true) {
		return errors.New("poller already started")
	}

	go p.run(ctx)

	return nil
}

// Stop halts scheduling of new rounds. It is idempotent and does not
// wait for in-flight checks; their updates are still delivered before
// the Updates channel closes.
func (p *Poller) Stop() {
	p.once.Do(func() {
		close(p.stop)
	})
}

// run fires check rounds until stopped, then waits for the forwarders
// and closes the updates channel.
func (p *Poller) run(ctx context.Context) {
	defer func() {
		p.wg.Wait()
		close(p.updates)
	}()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.round(ctx)

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("poller context ended", "error", ctx.Err())
			return
		case <-p.stop:
			return
		case <-ticker.C:
			p.round(ctx)
		}
	}
}

// round schedules one check per account on the shared queue and hands
// the pending results to a forwarder. A failed check surfaces as an
// Update with Err set; it never stops the poller.
func (p *Poller) round(ctx context.Context) {
	results := make([]*queue.Result[gate.Decision], len(p.accounts))
	for i, account := range p.accounts {
		results[i] = p.q.Schedule(ctx, func(ctx context.Context) (gate.Decision, error) {
			return p.g.Check(ctx, account)
		})
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		// Every settled result is delivered, even after Stop: the
		// updates channel closes only once the forwarders finish, so
		// a caller draining until close never loses an in-flight
		// check's outcome.
		for i, r := range results {
			d, err := r.Value()
			p.updates <- Update{Account: p.accounts[i], Decision: d, Err: err}
		}
	}()
}
