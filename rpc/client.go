package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/tokengate/tokengate/throttle"
)

// Client wraps the std-lib *http.Client with the JSON-RPC envelope
// handling a balance query needs. It sets a default *http.Client and
// transport, which can be customized via optional funcs.
type Client struct {
	c        *http.Client
	endpoint *url.URL
	logger   *slog.Logger
}

// Build instantiates a Client for the given endpoint URL with the
// provided options.
func Build(endpoint string, optFns ...Option) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parsing endpoint: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("endpoint[%s] must be an absolute url", endpoint)
	}

	// A fresh http.Client per Build: the throttle transport installed
	// below must never leak onto a shared client.
	client := &Client{
		c:        &http.Client{},
		endpoint: u,
		logger:   slog.Default(),
	}

	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	if opts.client != nil {
		client.c = opts.client
	}

	if opts.logger != nil {
		client.logger = opts.logger
	}

	if opts.timeout != nil {
		client.c.Timeout = *opts.timeout
	}

	var transport http.RoundTripper
	switch {
	case opts.rt != nil:
		transport = opts.rt
	case opts.client != nil && opts.client.Transport != nil:
		transport = opts.client.Transport
	default:
		transport = http.DefaultTransport
	}
	if opts.userAgent != "" {
		transport = userAgent{value: opts.userAgent, base: transport}
	}
	if opts.throttle != nil {
		rt, err := throttle.NewRoundTripper(opts.throttle.RPS, opts.throttle.Burst, func() *slog.Logger { return client.logger }, transport)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		transport = rt
	}
	client.c.Transport = transport

	return client, nil
}

// Balance queries the endpoint for the given account's balance and
// returns it in the chain's base units. The amount is opaque to this
// package; interpreting decimals is the caller's concern.
func (c *Client) Balance(ctx context.Context, account string) (uint64, error) {
	var result balanceResult
	if err := c.call(ctx, "getBalance", []any{account}, &result); err != nil {
		return 0, fmt.Errorf("balance for %s: %w", account, err)
	}

	return result.Value, nil
}

// call executes one JSON-RPC request/response round trip, decoding the
// result into dest if dest is non-nil.
func (c *Client) call(ctx context.Context, method string, params []any, dest any) error {
	id := uuid.NewString()

	var payload bytes.Buffer
	env := request{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  params,
	}
	if err := json.NewEncoder(&payload).Encode(env); err != nil {
		return fmt.Errorf("encoding request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), &payload)
	if err != nil {
		return fmt.Errorf("instantiating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.c.Do(req)
	if err != nil {
		return fmt.Errorf("exec http do: %w", err)
	}

	discardBody := true
	defer func() {
		if discardBody {
			if _, err = io.Copy(io.Discard, resp.Body); err != nil {
				c.logger.Error("failed to discard unused body", "error", err)
			}
		}
		if err = resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrBodySize))
		if err != nil {
			b = []byte("unable to read body")
		}

		return &UnexpectedStatusError{
			StatusCode: resp.StatusCode,
			Body:       string(b),
			Err:        ErrUnexpectedStatusCode,
		}
	}

	var envelope response
	discardBody = false
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decoding body: %w", err)
	}

	if envelope.Error != nil {
		return envelope.Error
	}

	if envelope.ID != id {
		return fmt.Errorf("%w: sent %s, got %s", ErrIDMismatch, id, envelope.ID)
	}

	if dest != nil {
		if err := json.Unmarshal(envelope.Result, dest); err != nil {
			return fmt.Errorf("decoding result: %w", err)
		}
	}

	return nil
}

// userAgent is an http.RoundTripper, enabling the persistent User-Agent header.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}
