package shopapi

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/selamshop/storefront/lib/myerrors"
)

func TestShippingForm(t *testing.T) {
	t.Run("Decode from form values", func(t *testing.T) {
		values := url.Values{}
		values.Set("firstName", "Abebe")
		values.Set("lastName", "Bikila")
		values.Set("email", "abebe@example.et")
		values.Set("phone", "+251911223344")
		values.Set("address.street", "Bole Road 12")
		values.Set("address.city", "Addis Ababa")
		values.Set("address.country", "ET")

		form, err := NewShippingFormFromValues(values)
		assert.NoError(t, err)
		assert.Equal(t, "Abebe", form.FirstName)
		assert.Equal(t, "Addis Ababa", form.Address.City)
		assert.Equal(t, PaymentMethodChapa, form.PaymentMethod)
		assert.NoError(t, form.Validate())
	})

	t.Run("Missing required fields", func(t *testing.T) {
		values := url.Values{}
		values.Set("firstName", "Abebe")

		form, err := NewShippingFormFromValues(values)
		assert.NoError(t, err)

		err = form.Validate()
		assert.Error(t, err)
		assert.Equal(t, 400, myerrors.GetHttpStatus(err))
		assert.Contains(t, err.Error(), "email")
		assert.Contains(t, err.Error(), "address.city")
	})
}

func TestEstimates(t *testing.T) {
	t.Run("Flat shipping fee", func(t *testing.T) {
		assert.Equal(t, int64(10000), EstimateShipping(150000))
	})

	t.Run("No shipping on empty cart", func(t *testing.T) {
		assert.Equal(t, int64(0), EstimateShipping(0))
	})

	t.Run("Tax estimate", func(t *testing.T) {
		assert.Equal(t, int64(22500), EstimateTax(150000))
	})
}

func TestCartLine(t *testing.T) {
	line := CartLine{
		Product:  Product{UID: "p1", Price: 75000, Currency: "ETB", Stock: 5},
		Quantity: 2,
	}
	assert.Equal(t, int64(150000), line.TotalPrice())
}
