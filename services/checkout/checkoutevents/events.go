package checkoutevents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/selamshop/storefront/lib/myerrors"
	"github.com/selamshop/storefront/lib/myevents"
)

const (
	TopicName             = "checkout"
	checkoutStartedName   = TopicName + ".started"
	checkoutAbortedName   = TopicName + ".aborted"
	checkoutCompletedName = TopicName + ".completed"
)

// CheckoutEventService is implemented by subscribers of checkout outcome
// events, such as the notification layer.
type CheckoutEventService interface {
	Subscribe(c context.Context) error
	OnCheckoutStarted(c context.Context, topic string, event CheckoutStarted) error
	OnCheckoutAborted(c context.Context, topic string, event CheckoutAborted) error
	OnCheckoutCompleted(c context.Context, topic string, event CheckoutCompleted) error
}

func DispatchEvent(c context.Context, reader io.Reader, service CheckoutEventService) error {
	envelope, err := myevents.ParseEventEnvelope(reader)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	switch envelope.EventTypeName {
	case checkoutStartedName:
		{
			event := CheckoutStarted{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnCheckoutStarted(c, envelope.Topic, event)
		}
	case checkoutAbortedName:
		{
			event := CheckoutAborted{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnCheckoutAborted(c, envelope.Topic, event)
		}
	case checkoutCompletedName:
		{
			event := CheckoutCompleted{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnCheckoutCompleted(c, envelope.Topic, event)
		}
	default:
		return myerrors.NewNotImplementedError(fmt.Errorf("%s", envelope.EventTypeName))
	}
}

type CheckoutStarted struct {
	CheckoutUID   string
	ShopperUID    string
	AmountInCents int64
	Currency      string
}

func (e CheckoutStarted) GetEventTypeName() string {
	return checkoutStartedName
}

func (e CheckoutStarted) GetAggregateName() string {
	return e.CheckoutUID
}

type CheckoutAborted struct {
	CheckoutUID string
	ShopperUID  string
	Phase       string
	Reason      string
}

func (e CheckoutAborted) GetEventTypeName() string {
	return checkoutAbortedName
}

func (e CheckoutAborted) GetAggregateName() string {
	return e.CheckoutUID
}

type CheckoutCompleted struct {
	CheckoutUID      string
	ShopperUID       string
	OrderUID         string
	PaymentReference string
	AmountInCents    int64
	Currency         string
}

func (e CheckoutCompleted) GetEventTypeName() string {
	return checkoutCompletedName
}

func (e CheckoutCompleted) GetAggregateName() string {
	if e.CheckoutUID != "" {
		return e.CheckoutUID
	}
	return e.PaymentReference
}
