package dto

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type RegisterDTO struct {
	Name     string `json:"name"     validate:"required,max=50"`
	Email    string `json:"mail"     validate:"required,max=150"`
	Password string `json:"password" validate:"required"`
	Key      string `json:"key"      validate:"required"`
}

type LoginDTO struct {
	Email    string `json:"mail"     validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SendMailDTO struct {
	Email string `json:"mail" validate:"required"`
}

type ListProductsDTO struct {
	Order string `json:"order" validate:"required"`
}

// ProductDTO uses pointers so that a zero price or available=false is told
// apart from a missing key.
type ProductDTO struct {
	Name        string   `json:"product_name" validate:"required,max=150"`
	Price       *float64 `json:"price"        validate:"required,gt=0"`
	Description string   `json:"description"  validate:"required,max=250"`
	Category    string   `json:"category"     validate:"required,max=50"`
	Available   *bool    `json:"available"    validate:"required"`
}

type UpdateProductDTO struct {
	ID *uint `json:"product_id" validate:"required"`
	ProductDTO
}

type DeleteProductDTO struct {
	ID *uint `json:"product_id" validate:"required"`
}

// NewValidator reports field errors under their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Describe turns validator output into a client-facing message listing the
// offending fields.
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	missing := make([]string, 0, len(verrs))
	invalid := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		} else {
			invalid = append(invalid, fe.Field())
		}
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing data. required fields: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		parts = append(parts, "invalid value for: "+strings.Join(invalid, ", "))
	}
	return strings.Join(parts, "; ")
}
