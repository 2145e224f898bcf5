// Package payment wraps the third-party payment gateway behind a small port
// so checkout depends on the capture contract, not on the SDK.
package payment

import "context"

// CaptureResult is the gateway outcome persisted onto an order. Success
// false is a legitimate outcome (declines, duplicate-transaction rejection),
// not an error.
type CaptureResult struct {
	Success       bool
	TransactionID string
	Message       string
}

// Gateway tokenizes and captures payments. Failures surface as-is to the
// caller; no retries are attempted.
type Gateway interface {
	// ClientToken returns the opaque token the client uses to initialise
	// the payment widget.
	ClientToken(ctx context.Context) (string, error)
	// Capture submits a tokenized payment instrument for the given amount.
	Capture(ctx context.Context, nonce string, amount float64) (*CaptureResult, error)
}
