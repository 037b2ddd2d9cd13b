package familyshop

import (
	"context"
	"fmt"
	"net/url"
)

type OrderListParams struct {
	ListParams
	Status string // pending, delivered, cancelled, rejected; "all" is omitted
	Search string
	Date   string // YYYY-MM-DD
}

func (p OrderListParams) query() url.Values {
	q := p.ListParams.query()
	setFilter(q, "status", p.Status)
	setFilter(q, "search", p.Search)
	setFilter(q, "date", p.Date)
	return q
}

type OrderPage struct {
	Orders      []Order
	Count       int
	CurrentPage int
	TotalPages  int
	TotalOrders int
}

type orderListResponse struct {
	envelope
	page
	TotalOrders int     `json:"totalOrders"`
	Orders      []Order `json:"orders"`
}

func (c *Client) orderPage(out *orderListResponse) *OrderPage {
	for i := range out.Orders {
		for j := range out.Orders[i].Products {
			out.Orders[i].Products[j].Image = c.absURL(out.Orders[i].Products[j].Image)
		}
	}
	return &OrderPage{
		Orders:      out.Orders,
		Count:       out.Count,
		CurrentPage: out.CurrentPage,
		TotalPages:  out.TotalPages,
		TotalOrders: out.TotalOrders,
	}
}

// AdminOrders lists orders across all clients of the admin account.
func (c *Client) AdminOrders(ctx context.Context, params OrderListParams) (*OrderPage, error) {
	var out orderListResponse
	if err := c.get(ctx, "/orders/admin", params.query(), &out); err != nil {
		return nil, err
	}
	return c.orderPage(&out), nil
}

// ClientOrders lists the orders belonging to one client user.
func (c *Client) ClientOrders(ctx context.Context, clientID int64, params OrderListParams) (*OrderPage, error) {
	var out orderListResponse
	if err := c.get(ctx, fmt.Sprintf("/orders/client/%d", clientID), params.query(), &out); err != nil {
		return nil, err
	}
	return c.orderPage(&out), nil
}

func (c *Client) Order(ctx context.Context, id int64) (*Order, error) {
	var out struct {
		envelope
		Order Order `json:"order"`
	}
	if err := c.get(ctx, fmt.Sprintf("/orders/%d", id), nil, &out); err != nil {
		return nil, err
	}
	for i := range out.Order.Products {
		out.Order.Products[i].Image = c.absURL(out.Order.Products[i].Image)
	}
	return &out.Order, nil
}

type OrderItemInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type OrderInput struct {
	ClientID     int64            `json:"client_id"`
	Products     []OrderItemInput `json:"products"`
	Subscription float64          `json:"subscription"`
}

func (c *Client) CreateOrder(ctx context.Context, in OrderInput) (*Order, error) {
	var out struct {
		envelope
		Order Order `json:"order"`
	}
	if err := c.postJSON(ctx, "/orders", in, &out); err != nil {
		return nil, err
	}
	return &out.Order, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status string) error {
	body := map[string]string{"status": status}
	return c.putJSON(ctx, fmt.Sprintf("/orders/%d/status", id), body, nil)
}

func (c *Client) ApproveOrder(ctx context.Context, id int64) error {
	return c.putJSON(ctx, fmt.Sprintf("/orders/%d/approve", id), struct{}{}, nil)
}

func (c *Client) RejectOrder(ctx context.Context, id int64, reason string) error {
	body := map[string]string{"reason": reason}
	return c.putJSON(ctx, fmt.Sprintf("/orders/%d/reject", id), body, nil)
}

func (c *Client) DeleteOrder(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/orders/%d", id), nil)
}
