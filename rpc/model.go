package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
)

// maxErrBodySize caps the amount of response body read when
// building an error for an unexpected status code. This prevents
// unbounded memory usage when a large response arrives with a
// wrong status.
const maxErrBodySize = 4 << 10 // 4KB

var (
	// ErrUnexpectedStatusCode is the sentinel error wrapped by [UnexpectedStatusError].
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	// ErrRPC is the sentinel error wrapped by [Error].
	ErrRPC = errors.New("rpc error")
	// ErrIDMismatch is returned when a response carries a different
	// request ID than the one sent.
	ErrIDMismatch = errors.New("response id does not match request id")
)

// UnexpectedStatusError is returned when the HTTP response status code
// is not 200 OK.
type UnexpectedStatusError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("%v: %d, body: %s", e.Err, e.StatusCode, e.Body)
}

func (e *UnexpectedStatusError) Unwrap() error {
	return e.Err
}

// Error is the JSON-RPC 2.0 error object returned by the endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: code %d: %s", ErrRPC, e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return ErrRPC
}

// request is the JSON-RPC 2.0 request envelope.
type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params,omitempty"`
}

// response is the JSON-RPC 2.0 response envelope. Result stays raw so
// each call site can decode its own shape.
type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// balanceResult is the result shape of a getBalance call. Value is the
// account's balance in base units; the surrounding context (slot etc.)
// is ignored.
type balanceResult struct {
	Value uint64 `json:"value"`
}
