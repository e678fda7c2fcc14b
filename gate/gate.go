package gate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// BalanceSource reads an account's balance for the gating token, in
// base units. The rpc package's Client satisfies it; tests inject
// stubs.
type BalanceSource interface {
	Balance(ctx context.Context, account string) (uint64, error)
}

// Config declares which token gates access and how much of it an
// account must hold.
type Config struct {
	// Token identifies the gating token (a mint address or symbol);
	// it is carried for logging and tracing, never parsed.
	Token string `json:"token" validate:"required"`
	// MinBalance is the smallest holding, in base units, that passes
	// the gate.
	MinBalance uint64 `json:"min_balance" validate:"gt=0"`
}

// ErrEmptyAccount is returned by Check for an empty account string.
var ErrEmptyAccount = errors.New("account must not be empty")

// Gate decides whether an account holds enough of the gating token.
type Gate struct {
	src    BalanceSource
	cfg    Config
	logger *slog.Logger
	tracer trace.Tracer
}

// Decision is the outcome of one gate check.
type Decision struct {
	ID        string    `json:"id"`
	Account   string    `json:"account"`
	Balance   uint64    `json:"balance"`
	Allowed   bool      `json:"allowed"`
	CheckedAt time.Time `json:"checked_at"`
}

// New creates a Gate over the given balance source. The config is
// validated against its struct tags; failures surface as FieldErrors.
// A no-op tracer and the default slog logger are used unless
// overridden via options.
func New(src BalanceSource, cfg Config, optFns ...Option) (*Gate, error) {
	if src == nil {
		return nil, errors.New("balance source must not be nil")
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	var opts options
	for _, opt := range optFns {
		opt(&opts)
	}
	if opts.logger == nil {
		opts.logger = slog.Default()
	}
	if opts.tracer == nil {
		opts.tracer = noop.NewTracerProvider().Tracer("no-op tracer")
	}

	return &Gate{
		src:    src,
		cfg:    cfg,
		logger: opts.logger,
		tracer: opts.tracer,
	}, nil
}

// Check fetches the account's balance and compares it against the
// configured minimum. The source's error is returned unchanged in
// meaning (wrapped for context); the gate adds no retry.
func (g *Gate) Check(ctx context.Context, account string) (Decision, error) {
	if account == "" {
		return Decision{}, ErrEmptyAccount
	}

	ctx, span := g.tracer.Start(ctx, "gate.check")
	span.SetAttributes(
		attribute.String("token", g.cfg.Token),
		attribute.String("account", account),
	)
	defer span.End()

	balance, err := g.src.Balance(ctx, account)
	if err != nil {
		return Decision{}, fmt.Errorf("balance source: %w", err)
	}

	d := Decision{
		ID:        uuid.NewString(),
		Account:   account,
		Balance:   balance,
		Allowed:   balance >= g.cfg.MinBalance,
		CheckedAt: time.Now().UTC(),
	}

	span.SetAttributes(attribute.Bool("allowed", d.Allowed))
	g.logger.Debug("gate check", "id", d.ID, "token", g.cfg.Token, "account", account, "allowed", d.Allowed)

	return d, nil
}

// MinBalance reports the configured threshold in base units.
func (g *Gate) MinBalance() uint64 { return g.cfg.MinBalance }

// Token reports the configured gating token identifier.
func (g *Gate) Token() string { return g.cfg.Token }
