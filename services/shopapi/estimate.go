package shopapi

const (
	// flat shipping fee in cents (100 ETB)
	flatShippingFee int64 = 10000

	// VAT percentage used for the pre-submit display estimate
	taxRatePercent int64 = 15
)

// EstimateShipping and EstimateTax feed the pre-submit order summary. They
// are display estimates only and are never sent to the backend: the order's
// final amounts are computed server-side.
func EstimateShipping(subtotal int64) int64 {
	if subtotal == 0 {
		return 0
	}
	return flatShippingFee
}

func EstimateTax(subtotal int64) int64 {
	return subtotal * taxRatePercent / 100
}
