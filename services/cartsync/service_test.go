package cartsync

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/selamshop/storefront/lib/myerrors"
	"github.com/selamshop/storefront/lib/mypublisher"
	"github.com/selamshop/storefront/lib/mystore"
	"github.com/selamshop/storefront/lib/mytime"
	"github.com/selamshop/storefront/services/cartsync/cartevents"
	"github.com/selamshop/storefront/services/shopapi"
)

var (
	shopperUID = "shopper_123"

	coffeeBeans = shopapi.Product{
		UID:      "prod_coffee",
		Name:     "Yirgacheffe beans 1kg",
		Price:    75000,
		Currency: "ETB",
		Stock:    5,
	}
	teaLeaves = shopapi.Product{
		UID:      "prod_tea",
		Name:     "Green tea 500g",
		Price:    30000,
		Currency: "ETB",
		Stock:    12,
	}
)

func TestCartService(t *testing.T) {
	t.Run("Fetch cart, snapshot replaced with server lines", func(t *testing.T) {
		c := context.TODO()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		service, remote, storer, publisher, nower := setupCart(t, c, ctrl)
		nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

		// given: a stale local snapshot that must not survive
		_ = storer.Put(c, shopperUID, CartSnapshot{
			ShopperUID: shopperUID,
			Lines:      []shopapi.CartLine{{Product: teaLeaves, Quantity: 9}},
			Revision:   3,
		})

		// expect
		remote.EXPECT().Fetch(c, shopperUID).Return([]shopapi.CartLine{
			{Product: coffeeBeans, Quantity: 2},
		}, nil)
		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, cartevents.CartModified{
			ShopperUID:    shopperUID,
			ProductCount:  1,
			AmountInCents: 150000,
			Currency:      "ETB",
			Revision:      4,
		}).Return(nil)

		// when
		snapshot, err := service.FetchCart(c, shopperUID)

		// then
		assert.NoError(t, err)
		assert.Len(t, snapshot.Lines, 1)
		assert.Equal(t, coffeeBeans.UID, snapshot.Lines[0].Product.UID)
		assert.Equal(t, int64(150000), snapshot.TotalAmount())
		assert.Equal(t, int64(4), snapshot.Revision)

		stored, found, _ := storer.Get(c, shopperUID)
		assert.True(t, found)
		assert.Len(t, stored.Lines, 1)
	})

	t.Run("Fetch cart, unauthenticated shopper gets empty cart without remote call", func(t *testing.T) {
		c := context.TODO()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		service, _, _, _, _ := setupCart(t, c, ctrl)

		// when
		snapshot, err := service.FetchCart(c, "")

		// then
		assert.NoError(t, err)
		assert.True(t, snapshot.IsEmpty())
	})

	t.Run("Fetch cart, remote failure resets snapshot to empty", func(t *testing.T) {
		c := context.TODO()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		service, remote, storer, publisher, nower := setupCart(t, c, ctrl)
		nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

		// given
		_ = storer.Put(c, shopperUID, CartSnapshot{
			ShopperUID: shopperUID,
			Lines:      []shopapi.CartLine{{Product: coffeeBeans, Quantity: 1}},
			Revision:   1,
		})

		// expect
		remote.EXPECT().Fetch(c, shopperUID).Return(nil, myerrors.NewUnavailableError(fmt.Errorf("cart service unreachable")))
		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, gomock.Any()).Return(nil)

		// when
		snapshot, err := service.FetchCart(c, shopperUID)

		// then
		assert.Error(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, myerrors.GetHttpStatus(err))
		assert.True(t, snapshot.IsEmpty())

		stored, _, _ := storer.Get(c, shopperUID)
		assert.True(t, stored.IsEmpty())
	})

	t.Run("Add item, requires a signed-in shopper", func(t *testing.T) {
		c := context.TODO()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		service, _, _, _, _ := setupCart(t, c, ctrl)

		// when
		_, err := service.AddItem(c, "", coffeeBeans.UID, 1)

		// then
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, myerrors.GetHttpStatus(err))
	})

	t.Run("Add item, server rejection is surfaced verbatim and snapshot untouched", func(t *testing.T) {
		c := context.TODO()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		service, remote, storer, _, _ := setupCart(t, c, ctrl)

		// given
		_ = storer.Put(c, shopperUID, CartSnapshot{
			ShopperUID: shopperUID,
			Lines:      []shopapi.CartLine{{Product: teaLeaves, Quantity: 1}},
			Revision:   2,
		})

		// expect: the stock race is decided by the server, not locally
		remote.EXPECT().Add(c, shopperUID, coffeeBeans.UID, 2).
			Return(nil, myerrors.NewInvalidInputErrorf("Only 1 left in stock"))

		// when
		_, err := service.AddItem(c, shopperUID, coffeeBeans.UID, 2)

		// then
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only 1 left in stock")

		stored, _, _ := storer.Get(c, shopperUID)
		assert.Equal(t, int64(2), stored.Revision)
		assert.Len(t, stored.Lines, 1)
	})

	t.Run("Add item, server line list replaces rather than merges", func(t *testing.T) {
		c := context.TODO()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		service, remote, storer, publisher, nower := setupCart(t, c, ctrl)
		nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

		// given: local copy carries a line the server no longer knows about
		_ = storer.Put(c, shopperUID, CartSnapshot{
			ShopperUID: shopperUID,
			Lines:      []shopapi.CartLine{{Product: teaLeaves, Quantity: 4}},
			Revision:   7,
		})

		// expect
		remote.EXPECT().Add(c, shopperUID, coffeeBeans.UID, 1).Return([]shopapi.CartLine{
			{Product: coffeeBeans, Quantity: 1},
		}, nil)
		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, gomock.Any()).Return(nil)

		// when
		snapshot, err := service.AddItem(c, shopperUID, coffeeBeans.UID, 1)

		// then
		assert.NoError(t, err)
		assert.Len(t, snapshot.Lines, 1)
		assert.Equal(t, coffeeBeans.UID, snapshot.Lines[0].Product.UID)
		assert.Equal(t, int64(8), snapshot.Revision)
	})

	t.Run("Update item, quantity above cached stock rejected without remote call", func(t *testing.T) {
		c := context.TODO()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		service, _, storer, _, _ := setupCart(t, c, ctrl)

		// given
		_ = storer.Put(c, shopperUID, CartSnapshot{
			ShopperUID: shopperUID,
			Lines:      []shopapi.CartLine{{Product: coffeeBeans, Quantity: 2}},
			Revision:   1,
		})

		// when: stock of coffeeBeans is 5
		_, err := service.UpdateItem(c, shopperUID, coffeeBeans.UID, 6)

		// then
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, myerrors.GetHttpStatus(err))
		assert.Contains(t, err.Error(), "exceeds available stock")
	})

	t.Run("Update item, quantity below one rejected without remote call", func(t *testing.T) {
		c := context.TODO()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		service, _, _, _, _ := setupCart(t, c, ctrl)

		// when
		_, err := service.UpdateItem(c, shopperUID, coffeeBeans.UID, 0)

		// then
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, myerrors.GetHttpStatus(err))
	})

	t.Run("Update item, product missing from snapshot is forwarded to server", func(t *testing.T) {
		c := context.TODO()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		service, remote, _, publisher, nower := setupCart(t, c, ctrl)
		nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

		// expect
		remote.EXPECT().Update(c, shopperUID, teaLeaves.UID, 3).Return([]shopapi.CartLine{
			{Product: teaLeaves, Quantity: 3},
		}, nil)
		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, gomock.Any()).Return(nil)

		// when
		snapshot, err := service.UpdateItem(c, shopperUID, teaLeaves.UID, 3)

		// then
		assert.NoError(t, err)
		assert.Equal(t, 3, snapshot.Lines[0].Quantity)
	})

	t.Run("Remove item, absent product is a no-op success", func(t *testing.T) {
		c := context.TODO()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		service, remote, _, publisher, nower := setupCart(t, c, ctrl)
		nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

		// expect
		remote.EXPECT().Remove(c, shopperUID, "prod_unknown").Return([]shopapi.CartLine{}, nil)
		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, gomock.Any()).Return(nil)

		// when
		snapshot, err := service.RemoveItem(c, shopperUID, "prod_unknown")

		// then
		assert.NoError(t, err)
		assert.True(t, snapshot.IsEmpty())
	})

	t.Run("Clear cart, event published only when cart was non-empty", func(t *testing.T) {
		c := context.TODO()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		service, remote, storer, publisher, nower := setupCart(t, c, ctrl)
		nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

		// given
		_ = storer.Put(c, shopperUID, CartSnapshot{
			ShopperUID: shopperUID,
			Lines:      []shopapi.CartLine{{Product: coffeeBeans, Quantity: 2}},
			Revision:   5,
		})

		// expect: remote is cleared twice but the event fires once
		remote.EXPECT().Clear(c, shopperUID).Return(nil).Times(2)
		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, cartevents.CartCleared{
			ShopperUID: shopperUID,
		}).Return(nil).Times(1)

		// when
		err := service.Clear(c, shopperUID)
		errAgain := service.Clear(c, shopperUID)

		// then
		assert.NoError(t, err)
		assert.NoError(t, errAgain)

		stored, _, _ := storer.Get(c, shopperUID)
		assert.True(t, stored.IsEmpty())
	})

	t.Run("Snapshot helpers answer from the local copy only", func(t *testing.T) {
		c := context.TODO()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		service, _, storer, _, _ := setupCart(t, c, ctrl)

		// given
		_ = storer.Put(c, shopperUID, CartSnapshot{
			ShopperUID: shopperUID,
			Lines: []shopapi.CartLine{
				{Product: coffeeBeans, Quantity: 2},
				{Product: teaLeaves, Quantity: 1},
			},
			Revision: 1,
		})

		// then
		assert.True(t, service.IsInCart(c, shopperUID, coffeeBeans.UID))
		assert.False(t, service.IsInCart(c, shopperUID, "prod_unknown"))
		assert.Equal(t, 2, service.ItemQuantity(c, shopperUID, coffeeBeans.UID))
		assert.Equal(t, 0, service.ItemQuantity(c, shopperUID, "prod_unknown"))

		snapshot, err := service.Snapshot(c, shopperUID)
		assert.NoError(t, err)
		assert.Equal(t, 3, snapshot.TotalQuantity())
		assert.Equal(t, int64(180000), snapshot.TotalAmount())
	})
}

func setupCart(t *testing.T, c context.Context, ctrl *gomock.Controller) (*CartService, *MockRemoteCart, mystore.Store[CartSnapshot], *mypublisher.MockPublisher, *mytime.MockNower) {
	storer, _, err := mystore.NewInMemoryStore[CartSnapshot](c)
	assert.NoError(t, err)

	remote := NewMockRemoteCart(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)
	nower := mytime.NewMockNower(ctrl)

	service := NewService(remote, storer, publisher, nower)

	return service, remote, storer, publisher, nower
}
