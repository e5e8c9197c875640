package cartevents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/selamshop/storefront/lib/myerrors"
	"github.com/selamshop/storefront/lib/myevents"
)

const (
	TopicName        = "cart"
	cartModifiedName = TopicName + ".modified"
	cartClearedName  = TopicName + ".cleared"
)

// CartEventService is implemented by subscribers of cart outcome events,
// such as the notification layer.
type CartEventService interface {
	Subscribe(c context.Context) error
	OnCartModified(c context.Context, topic string, event CartModified) error
	OnCartCleared(c context.Context, topic string, event CartCleared) error
}

func DispatchEvent(c context.Context, reader io.Reader, service CartEventService) error {
	envelope, err := myevents.ParseEventEnvelope(reader)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	switch envelope.EventTypeName {
	case cartModifiedName:
		{
			event := CartModified{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnCartModified(c, envelope.Topic, event)
		}
	case cartClearedName:
		{
			event := CartCleared{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnCartCleared(c, envelope.Topic, event)
		}
	default:
		return myerrors.NewNotImplementedError(fmt.Errorf("%s", envelope.EventTypeName))
	}
}

type CartModified struct {
	ShopperUID    string
	ProductCount  int
	AmountInCents int64
	Currency      string
	Revision      int64
}

func (e CartModified) GetEventTypeName() string {
	return cartModifiedName
}

func (e CartModified) GetAggregateName() string {
	return e.ShopperUID
}

type CartCleared struct {
	ShopperUID string
}

func (e CartCleared) GetEventTypeName() string {
	return cartClearedName
}

func (e CartCleared) GetAggregateName() string {
	return e.ShopperUID
}
