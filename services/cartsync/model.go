package cartsync

import (
	"time"

	"github.com/selamshop/storefront/services/shopapi"
)

// CartSnapshot is the client-side copy of the authoritative cart. It is only
// ever written wholesale from a server response; local arithmetic never leads.
type CartSnapshot struct {
	ShopperUID   string
	Lines        []shopapi.CartLine
	Currency     string
	Revision     int64
	FetchedAt    time.Time
	LastModified *time.Time
}

// TotalAmount is a display estimate; the authoritative total for a purchase
// is the order's TotalAmount computed by the backend.
func (s CartSnapshot) TotalAmount() int64 {
	var total int64
	for _, line := range s.Lines {
		total += line.TotalPrice()
	}
	return total
}

func (s CartSnapshot) TotalQuantity() int {
	count := 0
	for _, line := range s.Lines {
		count += line.Quantity
	}
	return count
}

func (s CartSnapshot) IsEmpty() bool {
	return len(s.Lines) == 0
}

func (s CartSnapshot) line(productUID string) (shopapi.CartLine, bool) {
	for _, l := range s.Lines {
		if l.Product.UID == productUID {
			return l, true
		}
	}
	return shopapi.CartLine{}, false
}
