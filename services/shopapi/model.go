package shopapi

import "time"

const (
	DefaultCurrency = "ETB"

	PaymentMethodChapa = "chapa"
)

// Product carries the catalog fields the cart needs; prices are in cents
type Product struct {
	UID       string   `json:"id"`
	Name      string   `json:"name"`
	Price     int64    `json:"price"`
	Currency  string   `json:"currency"`
	Stock     int      `json:"stock"`
	ImageURLs []string `json:"images"`
}

type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (l CartLine) TotalPrice() int64 {
	return l.Product.Price * int64(l.Quantity)
}

type Address struct {
	Street     string `json:"street" form:"street"`
	City       string `json:"city" form:"city"`
	State      string `json:"state" form:"state"`
	PostalCode string `json:"postalCode" form:"postalCode"`
	Country    string `json:"country" form:"country"`
}

type OrderLine struct {
	Product         Product `json:"product"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase int64   `json:"priceAtPurchase"`
}

// Order is created server-side; all amounts on it are authoritative
type Order struct {
	UID             string      `json:"id"`
	ShippingAddress Address     `json:"shippingAddress"`
	Lines           []OrderLine `json:"items"`
	Subtotal        int64       `json:"subtotal"`
	ShippingCost    int64       `json:"shippingCost"`
	Tax             int64       `json:"tax"`
	TotalAmount     int64       `json:"totalAmount"`
	Currency        string      `json:"currency"`
	Status          string      `json:"status"`
	PaymentMethod   string      `json:"paymentMethod"`
	CreatedAt       time.Time   `json:"createdAt"`
}

type CreateOrderRequest struct {
	ShippingAddress Address `json:"shippingAddress"`
	PaymentMethod   string  `json:"paymentMethod"`
}
