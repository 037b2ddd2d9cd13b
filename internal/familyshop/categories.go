package familyshop

import (
	"context"
	"fmt"

	"github.com/JesusQuilleli/family-frontend-sub001/internal/forms"
)

type CategoryInput struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

func (in CategoryInput) form() forms.CategoryForm {
	return forms.CategoryForm{Name: in.Name, ParentID: in.ParentID}
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var out struct {
		envelope
		Categories []Category `json:"categories"`
	}
	if err := c.get(ctx, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

func (c *Client) Category(ctx context.Context, id int64) (*Category, error) {
	var out struct {
		envelope
		Category Category `json:"category"`
	}
	if err := c.get(ctx, fmt.Sprintf("/categories/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Category, nil
}

func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) (*Category, error) {
	if err := forms.ValidateCategory(in.form()); err != nil {
		return nil, err
	}
	var out struct {
		envelope
		Category Category `json:"category"`
	}
	if err := c.postJSON(ctx, "/categories", in, &out); err != nil {
		return nil, err
	}
	return &out.Category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id int64, in CategoryInput) (*Category, error) {
	if err := forms.ValidateCategory(in.form()); err != nil {
		return nil, err
	}
	var out struct {
		envelope
		Category Category `json:"category"`
	}
	if err := c.putJSON(ctx, fmt.Sprintf("/categories/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out.Category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/categories/%d", id), nil)
}
