package cartsync

import (
	"context"

	"github.com/selamshop/storefront/services/shopapi"
)

// RemoteCart is the authoritative cart store. Every call returns the full
// line-item list as the server sees it after the operation; the local
// snapshot is always replaced with that list, never merged.
//
//go:generate mockgen -source=remote.go -package cartsync -destination remote_mock.go RemoteCart
type RemoteCart interface {
	Fetch(c context.Context, shopperUID string) ([]shopapi.CartLine, error)
	Add(c context.Context, shopperUID string, productUID string, quantity int) ([]shopapi.CartLine, error)
	Update(c context.Context, shopperUID string, productUID string, quantity int) ([]shopapi.CartLine, error)
	Remove(c context.Context, shopperUID string, productUID string) ([]shopapi.CartLine, error)
	Clear(c context.Context, shopperUID string) error
}
