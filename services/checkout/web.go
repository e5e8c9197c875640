package checkout

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/selamshop/storefront/lib/myhttp"
	"github.com/selamshop/storefront/lib/mylog"
	"github.com/selamshop/storefront/services/shopapi"
)

type webService struct {
	logger      mylog.Logger
	service     *CheckoutService
	errorWriter myhttp.ResponseWriter
}

func NewWebService(service *CheckoutService) *webService {
	logger := mylog.New("checkout")
	return &webService{
		logger:      logger,
		service:     service,
		errorWriter: myhttp.NewWriter(logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/checkout", s.startCheckoutPage()).Methods("POST")
	router.HandleFunc("/checkout/{checkoutUID}", s.checkoutStatusPage()).Methods("GET")
}

// startCheckoutPage accepts the shipping form and, on success, sends the
// shopper to the hosted payment page with a see-other redirect.
func (s *webService) startCheckoutPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := r.Context()

		shopperUID := r.Header.Get("X-Shopper-UID")

		form, err := shopapi.NewShippingFormFromRequest(r)
		if err != nil {
			s.errorWriter.WriteError(c, w, 1, err)
			return
		}

		// the gateway sends the shopper back here once payment is done
		returnURL := myhttp.HostnameWithScheme(r) + "/checkout/completed"

		session, err := s.service.StartCheckout(c, shopperUID, form, returnURL)
		if err != nil {
			s.errorWriter.WriteError(c, w, 2, err)
			return
		}

		http.Redirect(w, r, session.CheckoutURL, http.StatusSeeOther)
	}
}

func (s *webService) checkoutStatusPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := r.Context()

		checkoutUID := mux.Vars(r)["checkoutUID"]

		session, err := s.service.GetCheckout(c, checkoutUID)
		if err != nil {
			s.errorWriter.WriteError(c, w, 1, err)
			return
		}

		s.errorWriter.Write(c, w, http.StatusOK, session)
	}
}
