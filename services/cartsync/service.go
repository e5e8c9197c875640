package cartsync

import (
	"context"
	"fmt"

	"github.com/selamshop/storefront/lib/mylog"
	"github.com/selamshop/storefront/lib/mypublisher"
	"github.com/selamshop/storefront/lib/mystore"
	"github.com/selamshop/storefront/lib/mytime"
	"github.com/selamshop/storefront/services/cartsync/cartevents"
)

// CartService keeps the local cart snapshot in sync with the remote cart
// store. Every mutation is a full round-trip; the snapshot is replaced with
// whatever line list the server returns.
type CartService struct {
	remote        RemoteCart
	snapshotStore mystore.Store[CartSnapshot]
	publisher     mypublisher.Publisher
	nower         mytime.Nower
	logger        mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(remote RemoteCart, snapshotStore mystore.Store[CartSnapshot], publisher mypublisher.Publisher, nower mytime.Nower) *CartService {
	return &CartService{
		remote:        remote,
		snapshotStore: snapshotStore,
		publisher:     publisher,
		nower:         nower,
		logger:        mylog.New("cartsync"),
	}
}

func (s *CartService) CreateTopics(c context.Context) error {
	err := s.publisher.CreateTopic(c, cartevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", cartevents.TopicName, err)
	}

	return nil
}
