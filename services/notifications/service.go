package notifications

import (
	"context"
	"fmt"

	"github.com/selamshop/storefront/lib/mylog"
	"github.com/selamshop/storefront/lib/mypubsub"
	"github.com/selamshop/storefront/lib/mystore"
	"github.com/selamshop/storefront/lib/mytime"
	"github.com/selamshop/storefront/lib/myuuid"
	"github.com/selamshop/storefront/services/cartsync/cartevents"
	"github.com/selamshop/storefront/services/checkout/checkoutevents"
)

// NotificationService turns cart and checkout outcome events into per-shopper
// notifications. It consumes the events from pubsub push deliveries.
type NotificationService struct {
	store  mystore.Store[Notification]
	pubsub mypubsub.PubSub
	nower  mytime.Nower
	uuider myuuid.UUIDer
	logger mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(store mystore.Store[Notification], pubsub mypubsub.PubSub, nower mytime.Nower, uuider myuuid.UUIDer) *NotificationService {
	return &NotificationService{
		store:  store,
		pubsub: pubsub,
		nower:  nower,
		uuider: uuider,
		logger: mylog.New("notifications"),
	}
}

func (s *NotificationService) Subscribe(c context.Context) error {
	for _, topic := range []string{cartevents.TopicName, checkoutevents.TopicName} {
		err := s.pubsub.Subscribe(c, topic, fmt.Sprintf("/notifications/event/%s", topic))
		if err != nil {
			return fmt.Errorf("error subscribing to topic %s: %s", topic, err)
		}
	}

	return nil
}

func (s *NotificationService) OnCartModified(c context.Context, topic string, event cartevents.CartModified) error {
	return s.notify(c, event.ShopperUID, SeverityInfo,
		fmt.Sprintf("Cart updated: %d product(s), %d %s", event.ProductCount, event.AmountInCents, event.Currency))
}

func (s *NotificationService) OnCartCleared(c context.Context, topic string, event cartevents.CartCleared) error {
	return s.notify(c, event.ShopperUID, SeverityInfo, "Cart cleared")
}

func (s *NotificationService) OnCheckoutStarted(c context.Context, topic string, event checkoutevents.CheckoutStarted) error {
	return s.notify(c, event.ShopperUID, SeverityInfo,
		fmt.Sprintf("Checkout started for %d %s", event.AmountInCents, event.Currency))
}

func (s *NotificationService) OnCheckoutAborted(c context.Context, topic string, event checkoutevents.CheckoutAborted) error {
	return s.notify(c, event.ShopperUID, SeverityWarning, event.Reason)
}

func (s *NotificationService) OnCheckoutCompleted(c context.Context, topic string, event checkoutevents.CheckoutCompleted) error {
	return s.notify(c, event.ShopperUID, SeveritySuccess, "Payment confirmed, thank you for your purchase")
}

// ListForShopper returns the notifications of one shopper, newest last.
func (s *NotificationService) ListForShopper(c context.Context, shopperUID string) ([]Notification, error) {
	return s.store.Query(c, []mystore.Filter{
		{Field: "ShopperUID", Compare: "=", Value: shopperUID},
	}, "CreatedAt")
}

func (s *NotificationService) notify(c context.Context, shopperUID string, severity Severity, message string) error {
	notification := Notification{
		UID:        s.uuider.Create(),
		ShopperUID: shopperUID,
		Severity:   severity,
		Message:    message,
		CreatedAt:  s.nower.Now(),
	}

	s.logger.Log(c, shopperUID, mylog.SeverityInfo, "Notify shopper %s: %s", shopperUID, message)

	return s.store.Put(c, notification.UID, notification)
}
