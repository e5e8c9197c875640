package cartsync

import (
	"context"
	"fmt"

	"github.com/selamshop/storefront/lib/myerrors"
	"github.com/selamshop/storefront/lib/mylog"
	"github.com/selamshop/storefront/services/cartsync/cartevents"
	"github.com/selamshop/storefront/services/shopapi"
)

// FetchCart pulls the authoritative cart. Without a shopper session there is
// no cart: an empty snapshot is returned without any network call. On a
// remote failure the snapshot defaults to empty rather than staying stale.
func (s *CartService) FetchCart(c context.Context, shopperUID string) (CartSnapshot, error) {
	if shopperUID == "" {
		return emptySnapshot(shopperUID), nil
	}

	s.logger.Log(c, shopperUID, mylog.SeverityInfo, "Fetch cart for shopper %s", shopperUID)

	lines, err := s.remote.Fetch(c, shopperUID)
	if err != nil {
		s.logger.Log(c, shopperUID, mylog.SeverityWarn, "Error fetching cart for shopper %s: %s", shopperUID, err)

		snapshot, replaceErr := s.replaceSnapshot(c, shopperUID, []shopapi.CartLine{}, false)
		if replaceErr != nil {
			return snapshot, replaceErr
		}

		return snapshot, err
	}

	return s.replaceSnapshot(c, shopperUID, lines, false)
}

// AddItem deliberately performs no local stock check: stock can change
// between page load and click, so the server verdict is the only one that
// counts and its rejection message is surfaced verbatim.
func (s *CartService) AddItem(c context.Context, shopperUID string, productUID string, quantity int) (CartSnapshot, error) {
	if shopperUID == "" {
		return CartSnapshot{}, myerrors.NewAuthenticationError(fmt.Errorf("sign in to use the cart"))
	}
	if quantity < 1 {
		return CartSnapshot{}, myerrors.NewInvalidInputErrorf("quantity must be at least 1")
	}

	s.logger.Log(c, shopperUID, mylog.SeverityInfo, "Add product %s (x%d) to cart of shopper %s", productUID, quantity, shopperUID)

	lines, err := s.remote.Add(c, shopperUID, productUID, quantity)
	if err != nil {
		return CartSnapshot{}, err
	}

	return s.replaceSnapshot(c, shopperUID, lines, false)
}

// UpdateItem rejects out-of-bound quantities locally, before any network
// call, when the product is present in the snapshot. Unknown products are
// forwarded; the server is authoritative for those.
func (s *CartService) UpdateItem(c context.Context, shopperUID string, productUID string, quantity int) (CartSnapshot, error) {
	if shopperUID == "" {
		return CartSnapshot{}, myerrors.NewAuthenticationError(fmt.Errorf("sign in to use the cart"))
	}
	if quantity < 1 {
		return CartSnapshot{}, myerrors.NewInvalidInputErrorf("quantity must be at least 1")
	}

	snapshot, err := s.Snapshot(c, shopperUID)
	if err != nil {
		return CartSnapshot{}, err
	}
	if line, found := snapshot.line(productUID); found && quantity > line.Product.Stock {
		return CartSnapshot{}, myerrors.NewInvalidInputErrorf("quantity %d exceeds available stock %d", quantity, line.Product.Stock)
	}

	s.logger.Log(c, shopperUID, mylog.SeverityInfo, "Update product %s to quantity %d for shopper %s", productUID, quantity, shopperUID)

	lines, err := s.remote.Update(c, shopperUID, productUID, quantity)
	if err != nil {
		return CartSnapshot{}, err
	}

	return s.replaceSnapshot(c, shopperUID, lines, false)
}

// RemoveItem is idempotent: removing a product that is not in the cart is a
// no-op success on the server, and the returned list is applied as usual.
func (s *CartService) RemoveItem(c context.Context, shopperUID string, productUID string) (CartSnapshot, error) {
	if shopperUID == "" {
		return CartSnapshot{}, myerrors.NewAuthenticationError(fmt.Errorf("sign in to use the cart"))
	}

	s.logger.Log(c, shopperUID, mylog.SeverityInfo, "Remove product %s from cart of shopper %s", productUID, shopperUID)

	lines, err := s.remote.Remove(c, shopperUID, productUID)
	if err != nil {
		return CartSnapshot{}, err
	}

	return s.replaceSnapshot(c, shopperUID, lines, false)
}

// Clear empties both the remote and the local cart. It must be safe to call
// twice: payment verification may re-run on a page refresh.
func (s *CartService) Clear(c context.Context, shopperUID string) error {
	if shopperUID == "" {
		return nil
	}

	s.logger.Log(c, shopperUID, mylog.SeverityInfo, "Clear cart of shopper %s", shopperUID)

	err := s.remote.Clear(c, shopperUID)
	if err != nil {
		return err
	}

	_, err = s.replaceSnapshot(c, shopperUID, []shopapi.CartLine{}, true)
	return err
}

// Snapshot returns the last known-good server state. For an unauthenticated
// shopper there is no cart, so an empty snapshot is returned without any
// lookup.
func (s *CartService) Snapshot(c context.Context, shopperUID string) (CartSnapshot, error) {
	if shopperUID == "" {
		return emptySnapshot(shopperUID), nil
	}

	snapshot, found, err := s.snapshotStore.Get(c, shopperUID)
	if err != nil {
		return CartSnapshot{}, myerrors.NewInternalError(err)
	}
	if !found {
		return emptySnapshot(shopperUID), nil
	}

	return snapshot, nil
}

func (s *CartService) IsInCart(c context.Context, shopperUID string, productUID string) bool {
	snapshot, err := s.Snapshot(c, shopperUID)
	if err != nil {
		return false
	}

	_, found := snapshot.line(productUID)
	return found
}

func (s *CartService) ItemQuantity(c context.Context, shopperUID string, productUID string) int {
	snapshot, err := s.Snapshot(c, shopperUID)
	if err != nil {
		return 0
	}

	line, found := snapshot.line(productUID)
	if !found {
		return 0
	}

	return line.Quantity
}

// replaceSnapshot swaps the stored snapshot for the server-returned line
// list. Concurrent mutations may complete out of order; the last response to
// arrive wins, which is acceptable because each response is internally
// consistent.
func (s *CartService) replaceSnapshot(c context.Context, shopperUID string, lines []shopapi.CartLine, cleared bool) (CartSnapshot, error) {
	now := s.nower.Now()

	var snapshot CartSnapshot
	err := s.snapshotStore.RunInTransaction(c, func(c context.Context) error {
		// must be idempotent

		old, _, err := s.snapshotStore.Get(c, shopperUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		snapshot = CartSnapshot{
			ShopperUID:   shopperUID,
			Lines:        lines,
			Currency:     currencyOf(lines),
			Revision:     old.Revision + 1,
			FetchedAt:    now,
			LastModified: &now,
		}

		err = s.snapshotStore.Put(c, shopperUID, snapshot)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		if cleared {
			if len(old.Lines) == 0 {
				// already empty: repeated clear stays silent
				return nil
			}

			err = s.publisher.Publish(c, cartevents.TopicName, cartevents.CartCleared{
				ShopperUID: shopperUID,
			})
			if err != nil {
				return myerrors.NewInternalError(fmt.Errorf("error publishing event: %s", err))
			}

			return nil
		}

		err = s.publisher.Publish(c, cartevents.TopicName, cartevents.CartModified{
			ShopperUID:    shopperUID,
			ProductCount:  len(snapshot.Lines),
			AmountInCents: snapshot.TotalAmount(),
			Currency:      snapshot.Currency,
			Revision:      snapshot.Revision,
		})
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error publishing event: %s", err))
		}

		return nil
	})
	if err != nil {
		return CartSnapshot{}, err
	}

	return snapshot, nil
}

func emptySnapshot(shopperUID string) CartSnapshot {
	return CartSnapshot{
		ShopperUID: shopperUID,
		Lines:      []shopapi.CartLine{},
		Currency:   shopapi.DefaultCurrency,
	}
}

func currencyOf(lines []shopapi.CartLine) string {
	for _, line := range lines {
		if line.Product.Currency != "" {
			return line.Product.Currency
		}
	}
	return shopapi.DefaultCurrency
}
