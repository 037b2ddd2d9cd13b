package familyshop

import (
	"context"
	"fmt"
)

type NotificationPage struct {
	Notifications []Notification
	Count         int
	CurrentPage   int
	TotalPages    int
	TotalUnread   int
}

func (c *Client) Notifications(ctx context.Context, userID int64, params ListParams) (*NotificationPage, error) {
	var out struct {
		envelope
		page
		TotalUnread   int            `json:"totalUnread"`
		Notifications []Notification `json:"notifications"`
	}
	if err := c.get(ctx, fmt.Sprintf("/notifications/%d", userID), params.query(), &out); err != nil {
		return nil, err
	}
	return &NotificationPage{
		Notifications: out.Notifications,
		Count:         out.Count,
		CurrentPage:   out.CurrentPage,
		TotalPages:    out.TotalPages,
		TotalUnread:   out.TotalUnread,
	}, nil
}

func (c *Client) UnreadNotifications(ctx context.Context, userID int64) (int, error) {
	var out struct {
		envelope
		Unread int `json:"unread"`
	}
	if err := c.get(ctx, fmt.Sprintf("/notifications/%d/unread", userID), nil, &out); err != nil {
		return 0, err
	}
	return out.Unread, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	return c.putJSON(ctx, fmt.Sprintf("/notifications/%d/read", id), struct{}{}, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context, userID int64) error {
	return c.putJSON(ctx, fmt.Sprintf("/notifications/%d/read-all", userID), struct{}{}, nil)
}

func (c *Client) DeleteNotification(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/notifications/%d", id), nil)
}
