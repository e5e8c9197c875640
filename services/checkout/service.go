package checkout

import (
	"context"
	"fmt"

	"github.com/selamshop/storefront/lib/myinflight"
	"github.com/selamshop/storefront/lib/mylog"
	"github.com/selamshop/storefront/lib/mypublisher"
	"github.com/selamshop/storefront/lib/mystore"
	"github.com/selamshop/storefront/lib/mytime"
	"github.com/selamshop/storefront/lib/myuuid"
	"github.com/selamshop/storefront/services/cartsync"
	"github.com/selamshop/storefront/services/checkout/checkoutevents"
	"github.com/selamshop/storefront/services/payapi"
)

// CartReader is the slice of the cart service the checkout needs: the last
// known-good snapshot, to refuse checking out an empty cart.
type CartReader interface {
	Snapshot(c context.Context, shopperUID string) (cartsync.CartSnapshot, error)
}

// CheckoutService walks a checkout attempt through its phases: submit the
// order, initialize the payment, hand the shopper over to the hosted
// payment page.
type CheckoutService struct {
	sessionStore mystore.Store[CheckoutSession]
	cart         CartReader
	orderPlacer  OrderPlacer
	payer        payapi.Payer
	publisher    mypublisher.Publisher
	nower        mytime.Nower
	uuider       myuuid.UUIDer
	guard        *myinflight.Guard
	logger       mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(sessionStore mystore.Store[CheckoutSession], cart CartReader, orderPlacer OrderPlacer, payer payapi.Payer, publisher mypublisher.Publisher, nower mytime.Nower, uuider myuuid.UUIDer) *CheckoutService {
	return &CheckoutService{
		sessionStore: sessionStore,
		cart:         cart,
		orderPlacer:  orderPlacer,
		payer:        payer,
		publisher:    publisher,
		nower:        nower,
		uuider:       uuider,
		guard:        myinflight.NewGuard(),
		logger:       mylog.New("checkout"),
	}
}

func (s *CheckoutService) CreateTopics(c context.Context) error {
	err := s.publisher.CreateTopic(c, checkoutevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", checkoutevents.TopicName, err)
	}

	return nil
}
