package ordersvc

import (
	"reflect"
	"strings"

	"github.com/ceibacafe/ordering/internal/service/errs"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateOrderRequest is the checkout payload. An empty delivery address
// means pickup. Size is only meaningful for items with size options; the
// idempotency key is optional and client-generated.
type CreateOrderRequest struct {
	RestaurantID    int64                    `json:"restaurantId"    validate:"gt=0"`
	DeliveryAddress string                   `json:"deliveryAddress"`
	IdempotencyKey  string                   `json:"idempotencyKey"`
	Items           []CreateOrderItemRequest `json:"items"           validate:"min=1,dive"`
}

// CreateOrderItemRequest is one requested line; prices are resolved
// server-side, never trusted from the client.
type CreateOrderItemRequest struct {
	MenuItemID int64  `json:"menuItemId" validate:"gt=0"`
	Quantity   int    `json:"quantity"   validate:"gt=0"`
	Size       string `json:"size"       validate:"omitempty,oneof=regular big"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateCreateOrder fails fast with field-level detail before anything is
// resolved or written.
func validateCreateOrder(req *CreateOrderRequest) error {
	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if ok := asValidationErrors(err, &fieldErrs); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return errs.ValidationError{
				Field:   fe.Namespace(),
				Message: messageFor(fe),
			}
		}
		return errs.ValidationError{Field: "request", Message: err.Error()}
	}

	if req.IdempotencyKey != "" {
		if _, err := uuid.Parse(req.IdempotencyKey); err != nil {
			return errs.ValidationError{
				Field:   "idempotencyKey",
				Message: "must be a valid UUID",
			}
		}
	}

	return nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return false
	}
	*target = ve
	return true
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return "must be greater than " + fe.Param()
	case "min":
		return "must not be empty"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
