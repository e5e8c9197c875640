package verification

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/selamshop/storefront/lib/myhttp"
	"github.com/selamshop/storefront/lib/mylog"
)

type webService struct {
	logger      mylog.Logger
	service     *VerificationService
	errorWriter myhttp.ResponseWriter
}

func NewWebService(service *VerificationService) *webService {
	logger := mylog.New("verification")
	return &webService{
		logger:      logger,
		service:     service,
		errorWriter: myhttp.NewWriter(logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/checkout/completed", s.completedPage()).Methods("GET")
}

// completedPage is the return url the gateway redirects the shopper to. It
// always answers 200 with the settled outcome; a failed payment is a normal
// page, not an http error.
func (s *webService) completedPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := r.Context()

		shopperUID := r.Header.Get("X-Shopper-UID")
		token := NewResumeTokenFromValues(r.URL.Query())

		record, err := s.service.Verify(c, shopperUID, token)
		if err != nil {
			s.errorWriter.WriteError(c, w, 1, err)
			return
		}

		s.errorWriter.Write(c, w, http.StatusOK, record)
	}
}
