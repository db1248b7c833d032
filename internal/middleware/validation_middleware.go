package middleware

import (
	"fmt"
	"log"
	"reflect"

	"katalog/internal/apperrors"
	"katalog/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cast"
)

// ProductFieldsKey is the Locals key holding the validated models.ProductFields.
const ProductFieldsKey = "productFields"

// NewProductValidator returns a validator with the product payload tags registered:
// "truthy" rejects empty strings, zero numbers, false and null;
// "strictbool" accepts only JSON booleans.
func NewProductValidator() *validator.Validate {
	validate := validator.New()
	if err := validate.RegisterValidation("truthy", isTruthy); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("strictbool", isStrictBool); err != nil {
		panic(err)
	}
	return validate
}

func isTruthy(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return field.Len() > 0
	case reflect.Bool:
		return field.Bool()
	case reflect.Float32, reflect.Float64:
		return field.Float() != 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return field.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return field.Uint() != 0
	case reflect.Map, reflect.Slice:
		// Objects and arrays are truthy even when empty.
		return true
	default:
		return false
	}
}

func isStrictBool(fl validator.FieldLevel) bool {
	return fl.Field().Kind() == reflect.Bool
}

// ParseProductPayload decodes and validates a create/update body and coerces it
// into the field set the store expects.
func ParseProductPayload(validate *validator.Validate, decode func([]byte, interface{}) error, body []byte) (models.ProductFields, error) {
	var payload models.ProductPayload
	if err := decode(body, &payload); err != nil {
		return models.ProductFields{}, fmt.Errorf("invalid request body: %w", err)
	}
	if err := validate.Struct(payload); err != nil {
		return models.ProductFields{}, err
	}
	fields, err := coerceFields(payload)
	if err != nil {
		return models.ProductFields{}, err
	}
	if err := validate.Struct(fields); err != nil {
		return models.ProductFields{}, err
	}
	return fields, nil
}

func coerceFields(p models.ProductPayload) (models.ProductFields, error) {
	name, err := cast.ToStringE(p.Name)
	if err != nil {
		return models.ProductFields{}, fmt.Errorf("name: %w", err)
	}
	description, err := cast.ToStringE(p.Description)
	if err != nil {
		return models.ProductFields{}, fmt.Errorf("description: %w", err)
	}
	price, err := cast.ToFloat64E(p.Price)
	if err != nil {
		return models.ProductFields{}, fmt.Errorf("price: %w", err)
	}
	category, err := cast.ToStringE(p.Category)
	if err != nil {
		return models.ProductFields{}, fmt.Errorf("category: %w", err)
	}
	inStock, ok := p.InStock.(bool)
	if !ok {
		return models.ProductFields{}, fmt.Errorf("inStock: expected boolean, got %T", p.InStock)
	}
	return models.ProductFields{
		Name:        &name,
		Description: &description,
		Price:       &price,
		Category:    &category,
		InStock:     &inStock,
	}, nil
}

// ValidateProduct is a Fiber middleware that rejects malformed product payloads
// before any mutation runs. On success the fields are stored under ProductFieldsKey.
func ValidateProduct(validate *validator.Validate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fields, err := ParseProductPayload(validate, c.App().Config().JSONDecoder, c.Body())
		if err != nil {
			log.Printf("Product payload rejected for %s %s: %v", c.Method(), c.Path(), err)
			return apperrors.Validation(apperrors.MsgInvalidProduct)
		}
		c.Locals(ProductFieldsKey, fields)
		return c.Next()
	}
}
