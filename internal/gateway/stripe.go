package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"go.uber.org/zap"
)

var ErrStripeClientInitFailed = errors.New("failed to initialize Stripe client")

// CheckoutParams describes one payment collection attempt. Amounts are in
// the processor's minor unit (cents for USD), never floats.
type CheckoutParams struct {
	AmountMinorUnits int64
	Currency         string
	ProductName      string
	Description      string
	SuccessURL       string
	CancelURL        string
	Metadata         map[string]string
}

// CheckoutSession is the processor's reference to an attempt in progress.
type CheckoutSession struct {
	ID  string
	URL string
}

// CheckoutGateway is the boundary to the external payment processor.
type CheckoutGateway interface {
	CreateSession(ctx context.Context, params *CheckoutParams) (*CheckoutSession, error)
}

// StripeGateway implements CheckoutGateway against Stripe Checkout.
type StripeGateway struct {
	client *client.API
	log    *zap.Logger
}

func NewStripeGateway(secretKey string, log *zap.Logger) (*StripeGateway, error) {
	if secretKey == "" {
		return nil, ErrStripeClientInitFailed
	}

	sc := client.New(secretKey, nil)

	return &StripeGateway{
		client: sc,
		log:    log.With(zap.String("gateway", "stripe")),
	}, nil
}

func (g *StripeGateway) CreateSession(ctx context.Context, p *CheckoutParams) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(p.Currency),
					UnitAmount: stripe.Int64(p.AmountMinorUnits),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(p.ProductName),
						Description: stripe.String(p.Description),
					},
				},
			},
		},
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
	}
	params.Context = ctx

	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	session, err := g.client.CheckoutSessions.New(params)
	if err != nil {
		g.log.Error("Failed to create checkout session",
			zap.Error(err),
			zap.Int64("amount_minor_units", p.AmountMinorUnits),
		)
		return nil, fmt.Errorf("create stripe checkout session: %w", err)
	}

	g.log.Info("Checkout session created",
		zap.String("session_id", session.ID),
		zap.Int64("amount_minor_units", p.AmountMinorUnits),
		zap.String("currency", p.Currency),
	)

	return &CheckoutSession{
		ID:  session.ID,
		URL: session.URL,
	}, nil
}
