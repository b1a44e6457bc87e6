package checkout

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fatimaskitchen/storefront/internal/orders"
	"github.com/fatimaskitchen/storefront/pkg/enums"
	pkgerrors "github.com/fatimaskitchen/storefront/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// Details is the delivery and payment form filled in at checkout.
type Details struct {
	Name          string `json:"name" validate:"required,min=2,max=80"`
	Phone         string `json:"phone" validate:"required,min=7,max=20"`
	Email         string `json:"email" validate:"omitempty,email"`
	Address       string `json:"address" validate:"required,min=5,max=200"`
	City          string `json:"city" validate:"omitempty,max=60"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=COD CARD WALLET"`
}

func (d Details) normalized() Details {
	d.Name = strings.TrimSpace(d.Name)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Email = strings.TrimSpace(d.Email)
	d.Address = strings.TrimSpace(d.Address)
	d.City = strings.TrimSpace(d.City)
	d.PaymentMethod = strings.ToUpper(strings.TrimSpace(d.PaymentMethod))
	return d
}

func (d Details) validate() error {
	if err := validate.Struct(d); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			fields := map[string]string{}
			for _, fe := range errs {
				fields[fe.Field()] = validationMessage(fe)
			}
			return pkgerrors.New(pkgerrors.CodeValidation, "checkout details invalid").WithDetails(fields)
		}
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "checkout details invalid")
	}
	return nil
}

func (d Details) customer() orders.Customer {
	return orders.Customer{
		Name:    d.Name,
		Phone:   d.Phone,
		Email:   d.Email,
		Address: d.Address,
		City:    d.City,
	}
}

func (d Details) paymentMethod() (enums.PaymentMethod, error) {
	return enums.ParsePaymentMethod(d.PaymentMethod)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email"
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	}
	return "is invalid"
}
