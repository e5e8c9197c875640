package notifications

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/selamshop/storefront/lib/myhttp"
	"github.com/selamshop/storefront/lib/mylog"
	"github.com/selamshop/storefront/services/cartsync/cartevents"
	"github.com/selamshop/storefront/services/checkout/checkoutevents"
)

type webService struct {
	logger      mylog.Logger
	service     *NotificationService
	errorWriter myhttp.ResponseWriter
}

func NewWebService(service *NotificationService) *webService {
	logger := mylog.New("notifications")
	return &webService{
		logger:      logger,
		service:     service,
		errorWriter: myhttp.NewWriter(logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/notifications", s.listPage()).Methods("GET")
	router.HandleFunc("/notifications/event/"+cartevents.TopicName, s.cartEventPage()).Methods("POST")
	router.HandleFunc("/notifications/event/"+checkoutevents.TopicName, s.checkoutEventPage()).Methods("POST")
}

func (s *webService) listPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := r.Context()

		shopperUID := r.Header.Get("X-Shopper-UID")

		notifications, err := s.service.ListForShopper(c, shopperUID)
		if err != nil {
			s.errorWriter.WriteError(c, w, 1, err)
			return
		}

		s.errorWriter.Write(c, w, http.StatusOK, notifications)
	}
}

// cartEventPage receives pubsub push deliveries for the cart topic
func (s *webService) cartEventPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := r.Context()

		err := cartevents.DispatchEvent(c, r.Body, s.service)
		if err != nil {
			s.errorWriter.WriteError(c, w, 1, err)
			return
		}

		s.errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{Message: "Successfully processed event"})
	}
}

// checkoutEventPage receives pubsub push deliveries for the checkout topic
func (s *webService) checkoutEventPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := r.Context()

		err := checkoutevents.DispatchEvent(c, r.Body, s.service)
		if err != nil {
			s.errorWriter.WriteError(c, w, 1, err)
			return
		}

		s.errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{Message: "Successfully processed event"})
	}
}
