package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент Stripe Checkout
type Client struct {
	api      *client.API
	currency string
	log      Logger
}

// NewClient создает новый экземпляр клиента
// backends позволяет подменить HTTP backend Stripe (nil - стандартный)
func NewClient(secretKey, currency string, backends *stripe.Backends, log Logger) *Client {
	return &Client{
		api:      client.New(secretKey, backends),
		currency: currency,
		log:      log,
	}
}

// CreateSession создает Checkout-сессию на одну услугу
func (c *Client) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(c.currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(req.ProductName),
						Description: optionalString(req.Description),
					},
					UnitAmount: stripe.Int64(req.AmountCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: optionalString(req.ClientReferenceID),
		CustomerEmail:     optionalString(req.CustomerEmail),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		c.log.Error("CreateSession: stripe error for ref=%s: %v", req.ClientReferenceID, err)
		return nil, fmt.Errorf("%w: create checkout session: %v", ErrProvider, err)
	}

	return toSession(s), nil
}

// GetSession получает Checkout-сессию по ID провайдера
func (c *Client) GetSession(ctx context.Context, id string) (*Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := c.api.CheckoutSessions.Get(id, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == http.StatusNotFound {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: get checkout session %s: %v", ErrProvider, id, err)
	}

	return toSession(s), nil
}

func toSession(s *stripe.CheckoutSession) *Session {
	return &Session{
		ID:                s.ID,
		URL:               s.URL,
		ClientReferenceID: s.ClientReferenceID,
		Paid:              s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return stripe.String(s)
}
