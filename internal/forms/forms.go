// Package forms validates category and product submissions before any
// request is sent, so the backend never sees a payload the UI should
// have caught.
package forms

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// MaxImageBytes caps uploaded product images at 5 MB.
	MaxImageBytes = 5 * 1024 * 1024
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// Errors maps field names to human-readable messages.
type Errors map[string]string

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ImageFile describes an attached file without holding its contents.
type ImageFile struct {
	Name        string
	Size        int64
	ContentType string
}

type CategoryForm struct {
	Name     string `json:"name" validate:"required,max=50"`
	ParentID *int64 `json:"parent_id" validate:"omitempty,gt=0"`
}

type ProductForm struct {
	Name          string  `json:"name" validate:"required,max=100"`
	CategoryID    int64   `json:"category_id" validate:"required,gt=0"`
	Description   string  `json:"description" validate:"max=500"`
	PurchasePrice float64 `json:"purchase_price" validate:"required,gt=0"`
	SalePrice     float64 `json:"sale_price" validate:"required,gt=0,gtfield=PurchasePrice"`
	Stock         int     `json:"stock" validate:"gte=0"`
	Image         *ImageFile
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their json names so messages line up with the
	// form fields the caller rendered.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func ValidateCategory(f CategoryForm) error {
	return collect(validate.Struct(f), nil)
}

func ValidateProduct(f ProductForm) error {
	return collect(validate.Struct(f), f.Image)
}

func collect(err error, image *ImageFile) error {
	out := Errors{}
	if err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			out[fe.Field()] = message(fe)
		}
	}
	if image != nil {
		if image.Size > MaxImageBytes {
			out["image"] = "image must be 5MB or smaller"
		} else if !allowedImageTypes[strings.ToLower(image.ContentType)] {
			out["image"] = "image must be jpeg, jpg, png or webp"
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "gtfield":
		return "sale price must be greater than purchase price"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "invalid value"
	}
}
