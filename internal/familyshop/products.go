package familyshop

import (
	"context"
	"fmt"
	"strconv"

	"github.com/JesusQuilleli/family-frontend-sub001/internal/forms"
)

type ProductListParams struct {
	ListParams
	CategoryID int64
	Search     string
}

type ProductPage struct {
	Products      []Product
	Count         int
	CurrentPage   int
	TotalPages    int
	TotalProducts int
}

func (c *Client) Products(ctx context.Context, params ProductListParams) (*ProductPage, error) {
	q := params.query()
	if params.CategoryID > 0 {
		q.Set("category", strconv.FormatInt(params.CategoryID, 10))
	}
	setFilter(q, "search", params.Search)

	var out struct {
		envelope
		page
		TotalProducts int       `json:"totalProducts"`
		Products      []Product `json:"products"`
	}
	if err := c.get(ctx, "/products", q, &out); err != nil {
		return nil, err
	}
	for i := range out.Products {
		out.Products[i].Image = c.absURL(out.Products[i].Image)
	}
	return &ProductPage{
		Products:      out.Products,
		Count:         out.Count,
		CurrentPage:   out.CurrentPage,
		TotalPages:    out.TotalPages,
		TotalProducts: out.TotalProducts,
	}, nil
}

func (c *Client) Product(ctx context.Context, id int64) (*Product, error) {
	var out struct {
		envelope
		Product Product `json:"product"`
	}
	if err := c.get(ctx, fmt.Sprintf("/products/%d", id), nil, &out); err != nil {
		return nil, err
	}
	out.Product.Image = c.absURL(out.Product.Image)
	return &out.Product, nil
}

// ProductInput is the form payload for product mutations. Image is
// optional; when present the request goes out as multipart form data.
type ProductInput struct {
	Name          string
	CategoryID    int64
	Description   string
	PurchasePrice float64
	SalePrice     float64
	Stock         int
	Image         *Upload
}

func (in ProductInput) form() forms.ProductForm {
	f := forms.ProductForm{
		Name:          in.Name,
		CategoryID:    in.CategoryID,
		Description:   in.Description,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		Stock:         in.Stock,
	}
	if in.Image != nil {
		f.Image = &forms.ImageFile{
			Name:        in.Image.Name,
			Size:        in.Image.Size,
			ContentType: in.Image.ContentType,
		}
	}
	return f
}

func (in ProductInput) fields() map[string]string {
	return map[string]string{
		"name":           in.Name,
		"category_id":    strconv.FormatInt(in.CategoryID, 10),
		"description":    in.Description,
		"purchase_price": strconv.FormatFloat(in.PurchasePrice, 'f', -1, 64),
		"sale_price":     strconv.FormatFloat(in.SalePrice, 'f', -1, 64),
		"stock":          strconv.Itoa(in.Stock),
	}
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	if err := forms.ValidateProduct(in.form()); err != nil {
		return nil, err
	}
	var out struct {
		envelope
		Product Product `json:"product"`
	}
	if err := c.sendMultipart(ctx, "POST", "/products", in.fields(), "image", in.Image, &out); err != nil {
		return nil, err
	}
	out.Product.Image = c.absURL(out.Product.Image)
	return &out.Product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, in ProductInput) (*Product, error) {
	if err := forms.ValidateProduct(in.form()); err != nil {
		return nil, err
	}
	var out struct {
		envelope
		Product Product `json:"product"`
	}
	if err := c.sendMultipart(ctx, "PUT", fmt.Sprintf("/products/%d", id), in.fields(), "image", in.Image, &out); err != nil {
		return nil, err
	}
	out.Product.Image = c.absURL(out.Product.Image)
	return &out.Product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/products/%d", id), nil)
}
