package familyshop

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

type PaymentListParams struct {
	ListParams
	Verified *bool
	Method   string // cash, transfer; "all" is omitted
	Search   string
	Date     string // YYYY-MM-DD
}

func (p PaymentListParams) query() url.Values {
	q := p.ListParams.query()
	if p.Verified != nil {
		q.Set("verified", strconv.FormatBool(*p.Verified))
	}
	setFilter(q, "method", p.Method)
	setFilter(q, "search", p.Search)
	setFilter(q, "date", p.Date)
	return q
}

type PaymentPage struct {
	Payments      []Payment
	Count         int
	CurrentPage   int
	TotalPages    int
	TotalPayments int
}

// Payments lists payments registered against the admin's orders.
func (c *Client) Payments(ctx context.Context, params PaymentListParams) (*PaymentPage, error) {
	var out struct {
		envelope
		page
		TotalPayments int       `json:"totalPayments"`
		Payments      []Payment `json:"payments"`
	}
	if err := c.get(ctx, "/payments/admin", params.query(), &out); err != nil {
		return nil, err
	}
	for i := range out.Payments {
		out.Payments[i].Proof = c.absURL(out.Payments[i].Proof)
	}
	return &PaymentPage{
		Payments:      out.Payments,
		Count:         out.Count,
		CurrentPage:   out.CurrentPage,
		TotalPages:    out.TotalPages,
		TotalPayments: out.TotalPayments,
	}, nil
}

// OrderPayments lists every payment attached to one order.
func (c *Client) OrderPayments(ctx context.Context, orderID int64) ([]Payment, error) {
	var out struct {
		envelope
		Payments []Payment `json:"payments"`
	}
	if err := c.get(ctx, fmt.Sprintf("/payments/order/%d", orderID), nil, &out); err != nil {
		return nil, err
	}
	for i := range out.Payments {
		out.Payments[i].Proof = c.absURL(out.Payments[i].Proof)
	}
	return out.Payments, nil
}

// PaymentInput registers a payment against an order. Proof is the
// optional proof-of-payment image; when present the request goes out
// as multipart form data.
type PaymentInput struct {
	OrderID   int64
	Amount    float64
	Method    PaymentMethod
	Reference string
	Proof     *Upload
}

func (c *Client) RegisterPayment(ctx context.Context, in PaymentInput) (*Payment, error) {
	fields := map[string]string{
		"order_id": strconv.FormatInt(in.OrderID, 10),
		"amount":   strconv.FormatFloat(in.Amount, 'f', -1, 64),
		"method":   string(in.Method),
	}
	if in.Reference != "" {
		fields["reference"] = in.Reference
	}
	var out struct {
		envelope
		Payment Payment `json:"payment"`
	}
	if err := c.sendMultipart(ctx, "POST", "/payments", fields, "proof", in.Proof, &out); err != nil {
		return nil, err
	}
	out.Payment.Proof = c.absURL(out.Payment.Proof)
	return &out.Payment, nil
}

func (c *Client) VerifyPayment(ctx context.Context, id int64) error {
	return c.putJSON(ctx, fmt.Sprintf("/payments/%d/verify", id), struct{}{}, nil)
}

func (c *Client) RejectPayment(ctx context.Context, id int64, reason string) error {
	body := map[string]string{"reason": reason}
	return c.putJSON(ctx, fmt.Sprintf("/payments/%d/reject", id), body, nil)
}

func (c *Client) DeletePayment(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/payments/%d", id), nil)
}
