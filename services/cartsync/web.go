package cartsync

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/selamshop/storefront/lib/myerrors"
	"github.com/selamshop/storefront/lib/myhttp"
	"github.com/selamshop/storefront/lib/myinflight"
	"github.com/selamshop/storefront/lib/mylog"
	"github.com/selamshop/storefront/services/shopapi"
)

var errOperationInFlight = myerrors.NewConflictError(fmt.Errorf("operation already in progress"))

type webService struct {
	logger      mylog.Logger
	service     *CartService
	guard       *myinflight.Guard
	errorWriter myhttp.ResponseWriter
}

func NewWebService(service *CartService) *webService {
	logger := mylog.New("cartsync")
	return &webService{
		logger:      logger,
		service:     service,
		guard:       myinflight.NewGuard(),
		errorWriter: myhttp.NewWriter(logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/cart", s.cartPage()).Methods("GET")
	router.HandleFunc("/cart", s.clearCartPage()).Methods("DELETE")
	router.HandleFunc("/cart/items", s.addItemPage()).Methods("POST")
	router.HandleFunc("/cart/items/{productUID}", s.updateItemPage()).Methods("PATCH")
	router.HandleFunc("/cart/items/{productUID}", s.removeItemPage()).Methods("DELETE")
}

// cartPageResponse carries the snapshot plus the cost estimates that the
// checkout page shows before the backend computes the real totals.
type cartPageResponse struct {
	Cart              CartSnapshot `json:"cart"`
	EstimatedShipping int64        `json:"estimatedShipping"`
	EstimatedTax      int64        `json:"estimatedTax"`
	EstimatedTotal    int64        `json:"estimatedTotal"`
}

func newCartPageResponse(snapshot CartSnapshot) cartPageResponse {
	subtotal := snapshot.TotalAmount()
	shipping := shopapi.EstimateShipping(subtotal)
	tax := shopapi.EstimateTax(subtotal)
	return cartPageResponse{
		Cart:              snapshot,
		EstimatedShipping: shipping,
		EstimatedTax:      tax,
		EstimatedTotal:    subtotal + shipping + tax,
	}
}

func (s *webService) cartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := r.Context()

		shopperUID := shopperUIDFromRequest(r)

		snapshot, err := s.service.FetchCart(c, shopperUID)
		if err != nil {
			s.errorWriter.WriteError(c, w, 1, err)
			return
		}

		s.errorWriter.Write(c, w, http.StatusOK, newCartPageResponse(snapshot))
	}
}

func (s *webService) addItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := r.Context()

		shopperUID := shopperUIDFromRequest(r)

		form, err := shopapi.NewAddToCartFormFromRequest(r)
		if err != nil {
			s.errorWriter.WriteError(c, w, 1, err)
			return
		}

		// reject double-clicks on the same add-button
		key := inflightKey(shopperUID, "add", form.ProductUID)
		if !s.guard.TryAcquire(key) {
			s.errorWriter.WriteError(c, w, 2, errOperationInFlight)
			return
		}
		defer s.guard.Release(key)

		snapshot, err := s.service.AddItem(c, shopperUID, form.ProductUID, form.Quantity)
		if err != nil {
			s.errorWriter.WriteError(c, w, 3, err)
			return
		}

		s.errorWriter.Write(c, w, http.StatusOK, newCartPageResponse(snapshot))
	}
}

func (s *webService) updateItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := r.Context()

		shopperUID := shopperUIDFromRequest(r)
		productUID := mux.Vars(r)["productUID"]

		form, err := shopapi.NewQuantityFormFromRequest(r)
		if err != nil {
			s.errorWriter.WriteError(c, w, 1, err)
			return
		}

		key := inflightKey(shopperUID, "update", productUID)
		if !s.guard.TryAcquire(key) {
			s.errorWriter.WriteError(c, w, 2, errOperationInFlight)
			return
		}
		defer s.guard.Release(key)

		snapshot, err := s.service.UpdateItem(c, shopperUID, productUID, form.Quantity)
		if err != nil {
			s.errorWriter.WriteError(c, w, 3, err)
			return
		}

		s.errorWriter.Write(c, w, http.StatusOK, newCartPageResponse(snapshot))
	}
}

func (s *webService) removeItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := r.Context()

		shopperUID := shopperUIDFromRequest(r)
		productUID := mux.Vars(r)["productUID"]

		key := inflightKey(shopperUID, "remove", productUID)
		if !s.guard.TryAcquire(key) {
			s.errorWriter.WriteError(c, w, 2, errOperationInFlight)
			return
		}
		defer s.guard.Release(key)

		snapshot, err := s.service.RemoveItem(c, shopperUID, productUID)
		if err != nil {
			s.errorWriter.WriteError(c, w, 3, err)
			return
		}

		s.errorWriter.Write(c, w, http.StatusOK, newCartPageResponse(snapshot))
	}
}

func (s *webService) clearCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := r.Context()

		shopperUID := shopperUIDFromRequest(r)

		err := s.service.Clear(c, shopperUID)
		if err != nil {
			s.errorWriter.WriteError(c, w, 1, err)
			return
		}

		s.errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{Message: "cart cleared"})
	}
}

func shopperUIDFromRequest(r *http.Request) string {
	return r.Header.Get("X-Shopper-UID")
}

func inflightKey(shopperUID string, operation string, productUID string) string {
	return fmt.Sprintf("%s:%s:%s", shopperUID, operation, productUID)
}
