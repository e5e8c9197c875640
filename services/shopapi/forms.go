package shopapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	formcodec "github.com/go-playground/form/v4"

	"github.com/selamshop/storefront/lib/myerrors"
)

// ShippingForm is what the shopper submits to start a checkout. Only the
// presence of required fields is checked here; business validation of the
// address is owned by the backend.
type ShippingForm struct {
	FirstName     string  `form:"firstName"`
	LastName      string  `form:"lastName"`
	Email         string  `form:"email"`
	Phone         string  `form:"phone"`
	Address       Address `form:"address"`
	PaymentMethod string  `form:"paymentMethod"`
}

func NewShippingFormFromRequest(r *http.Request) (ShippingForm, error) {
	err := r.ParseForm()
	if err != nil {
		return ShippingForm{}, myerrors.NewInvalidInputError(err)
	}
	return NewShippingFormFromValues(r.Form)
}

func NewShippingFormFromValues(values url.Values) (ShippingForm, error) {
	form := ShippingForm{}
	err := formcodec.NewDecoder().Decode(&form, values)
	if err != nil {
		return form, fmt.Errorf("error decoding form: %s", err)
	}

	if form.PaymentMethod == "" {
		form.PaymentMethod = PaymentMethodChapa
	}

	return form, nil
}

func (f ShippingForm) Validate() error {
	missing := []string{}

	required := map[string]string{
		"firstName":       f.FirstName,
		"lastName":        f.LastName,
		"email":           f.Email,
		"phone":           f.Phone,
		"address.street":  f.Address.Street,
		"address.city":    f.Address.City,
		"address.country": f.Address.Country,
	}
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return myerrors.NewInvalidInputErrorf("missing mandatory field(s): %s", strings.Join(missing, ", "))
	}

	return nil
}

type AddToCartForm struct {
	ProductUID string `form:"productUid"`
	Quantity   int    `form:"quantity"`
}

func NewAddToCartFormFromRequest(r *http.Request) (AddToCartForm, error) {
	err := r.ParseForm()
	if err != nil {
		return AddToCartForm{}, myerrors.NewInvalidInputError(err)
	}

	form := AddToCartForm{}
	err = formcodec.NewDecoder().Decode(&form, r.Form)
	if err != nil {
		return form, myerrors.NewInvalidInputErrorf("error decoding form: %s", err)
	}

	if form.Quantity == 0 {
		form.Quantity = 1
	}

	return form, nil
}

type QuantityForm struct {
	Quantity int `form:"quantity"`
}

func NewQuantityFormFromRequest(r *http.Request) (QuantityForm, error) {
	err := r.ParseForm()
	if err != nil {
		return QuantityForm{}, myerrors.NewInvalidInputError(err)
	}

	form := QuantityForm{}
	err = formcodec.NewDecoder().Decode(&form, r.Form)
	if err != nil {
		return form, myerrors.NewInvalidInputErrorf("error decoding form: %s", err)
	}

	return form, nil
}
