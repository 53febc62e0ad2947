package api

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

// Checkout parameterizes the payment modal for one purchasable item.
type Checkout struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Type  string  `json:"type"` // course, ebook, testseries...
	Image string  `json:"image,omitempty"`
}

// PaymentOrder is the backend's order-creation response, handed to the
// gateway as-is.
type PaymentOrder struct {
	OrderID         string  `json:"orderId"`
	RazorpayOrderID string  `json:"razorpayOrderId"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Description     string  `json:"description"`
}

// Ref is the order id the gateway callback must echo back.
func (o PaymentOrder) Ref() string {
	if o.RazorpayOrderID != "" {
		return o.RazorpayOrderID
	}
	return o.OrderID
}

// Confirmation is the gateway's success-callback payload, forwarded verbatim
// to the verification endpoint.
type Confirmation struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// Gateway is the external payment modal. Collect blocks until the user
// completes or abandons the payment.
type Gateway interface {
	Collect(ctx context.Context, order PaymentOrder) (Confirmation, error)
}

type PaymentAPI struct {
	c *Client
}

func NewPaymentAPI(c *Client) *PaymentAPI {
	return &PaymentAPI{c: c}
}

func (p *PaymentAPI) CreateOrder(ctx context.Context, co Checkout) (PaymentOrder, error) {
	data, err := p.c.do(ctx, http.MethodPost, "/api/payments/order", nil, co, true)
	if err != nil {
		return PaymentOrder{}, err
	}
	return decodeOne[PaymentOrder](data)
}

func (p *PaymentAPI) Verify(ctx context.Context, conf Confirmation) error {
	_, err := p.c.do(ctx, http.MethodPost, "/api/payments/verify", nil, conf, true)
	return err
}

// PaymentFlow is the purchase sub-flow: create an order, collect through the
// gateway, verify the callback. The caller refetches the entity afterwards so
// the access flag reflects the new entitlement.
type PaymentFlow struct {
	api *PaymentAPI
	gw  Gateway
}

func NewPaymentFlow(api *PaymentAPI, gw Gateway) *PaymentFlow {
	return &PaymentFlow{api: api, gw: gw}
}

func (f *PaymentFlow) Purchase(ctx context.Context, co Checkout) error {
	order, err := f.api.CreateOrder(ctx, co)
	if err != nil {
		return errors.Wrap(err, "creating payment order")
	}
	conf, err := f.gw.Collect(ctx, order)
	if err != nil {
		return errors.Wrap(err, "collecting payment")
	}
	if err := f.api.Verify(ctx, conf); err != nil {
		return errors.Wrap(err, "verifying payment")
	}
	return nil
}
