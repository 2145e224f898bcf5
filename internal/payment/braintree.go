package payment

import (
	"context"
	"errors"
	"math"

	braintree "github.com/braintree-go/braintree-go"
)

// BraintreeGateway implements Gateway against the Braintree SDK.
type BraintreeGateway struct {
	bt *braintree.Braintree
}

// NewBraintreeGateway builds a gateway client for the named environment
// ("sandbox" or "production").
func NewBraintreeGateway(environment, merchantID, publicKey, privateKey string) *BraintreeGateway {
	env := braintree.Sandbox
	if environment == "production" {
		env = braintree.Production
	}
	return &BraintreeGateway{bt: braintree.New(env, merchantID, publicKey, privateKey)}
}

func (g *BraintreeGateway) ClientToken(ctx context.Context) (string, error) {
	return g.bt.ClientToken().Generate(ctx)
}

// Capture submits a sale for the given nonce and amount. Gateway rejections
// (declines, duplicate transactions) come back as an unsuccessful result;
// only transport-level faults return an error.
func (g *BraintreeGateway) Capture(ctx context.Context, nonce string, amount float64) (*CaptureResult, error) {
	cents := int64(math.Round(amount * 100))

	tx, err := g.bt.Transaction().Create(ctx, &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             braintree.NewDecimal(cents, 2),
		PaymentMethodNonce: nonce,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true,
		},
	})
	if err != nil {
		var btErr *braintree.BraintreeError
		if errors.As(err, &btErr) {
			return &CaptureResult{Success: false, Message: btErr.Error()}, nil
		}
		return nil, err
	}

	return &CaptureResult{
		Success:       true,
		TransactionID: tx.Id,
	}, nil
}
