package familyshop

import (
	"context"
	"net/url"
)

// Referral links a prospective client to the admin that invited them.
type Referral struct {
	Code      string `json:"code"`
	AdminID   int64  `json:"admin_id"`
	AdminName string `json:"admin_name"`
}

func (c *Client) Referral(ctx context.Context, code string) (*Referral, error) {
	var out struct {
		envelope
		Referral Referral `json:"referral"`
	}
	if err := c.get(ctx, "/referral/"+url.PathEscape(code), nil, &out); err != nil {
		return nil, err
	}
	return &out.Referral, nil
}

type ReferralInput struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// RegisterReferral signs a new client up under a referral code.
func (c *Client) RegisterReferral(ctx context.Context, in ReferralInput) (*User, error) {
	var out struct {
		envelope
		User User `json:"user"`
	}
	if err := c.postJSON(ctx, "/referral/register", in, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}
