package familyshop

import (
	"context"
	"net/url"
)

// SalesReport aggregates delivered orders over a date range.
type SalesReport struct {
	TotalSales    float64 `json:"total_sales"`
	TotalOrders   int     `json:"total_orders"`
	TotalProducts int     `json:"total_products"`
	From          string  `json:"from"`
	To            string  `json:"to"`
}

func (c *Client) SalesReport(ctx context.Context, from, to string) (*SalesReport, error) {
	q := url.Values{}
	setFilter(q, "from", from)
	setFilter(q, "to", to)
	var out struct {
		envelope
		Report SalesReport `json:"report"`
	}
	if err := c.get(ctx, "/reports/sales", q, &out); err != nil {
		return nil, err
	}
	return &out.Report, nil
}

// DebtEntry is one client's outstanding balance.
type DebtEntry struct {
	ClientID   int64   `json:"client_id"`
	ClientName string  `json:"client_name"`
	Remaining  float64 `json:"remaining"`
	Orders     int     `json:"orders"`
}

type DebtReport struct {
	TotalDebt float64     `json:"total_debt"`
	Debtors   []DebtEntry `json:"debtors"`
}

func (c *Client) DebtReport(ctx context.Context) (*DebtReport, error) {
	var out struct {
		envelope
		Report DebtReport `json:"report"`
	}
	if err := c.get(ctx, "/reports/debts", nil, &out); err != nil {
		return nil, err
	}
	return &out.Report, nil
}
