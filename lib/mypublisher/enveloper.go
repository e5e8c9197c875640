package mypublisher

import (
	"encoding/json"

	"github.com/selamshop/storefront/lib/myevents"
	"github.com/selamshop/storefront/lib/mytime"
	"github.com/selamshop/storefront/lib/myuuid"
)

type enveloper struct {
	nower  mytime.Nower
	uuider myuuid.UUIDer
}

func newEnveloper(nower mytime.Nower, uuider myuuid.UUIDer) enveloper {
	return enveloper{
		nower:  nower,
		uuider: uuider,
	}
}

func (e enveloper) do(topic string, event myevents.Event) (myevents.EventEnvelope, error) {
	jsonPayload, err := json.Marshal(event)
	if err != nil {
		return myevents.EventEnvelope{}, err
	}
	return myevents.EventEnvelope{
		UID:           e.uuider.Create(),
		CreatedAt:     e.nower.Now(),
		Topic:         topic,
		AggregateUID:  event.GetAggregateName(),
		EventTypeName: event.GetEventTypeName(),
		EventPayload:  string(jsonPayload),
		Published:     false,
	}, nil
}
