package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/selamshop/storefront/lib/myhttpclient"
	"github.com/selamshop/storefront/lib/mypublisher"
	"github.com/selamshop/storefront/lib/mypubsub"
	"github.com/selamshop/storefront/lib/myqueue"
	"github.com/selamshop/storefront/lib/mystore"
	"github.com/selamshop/storefront/lib/mytime"
	"github.com/selamshop/storefront/lib/myuuid"
	"github.com/selamshop/storefront/lib/myvault"
	"github.com/selamshop/storefront/services/cartsync"
	"github.com/selamshop/storefront/services/checkout"
	"github.com/selamshop/storefront/services/notifications"
	"github.com/selamshop/storefront/services/payapi"
	"github.com/selamshop/storefront/services/verification"
)

func main() {
	c := context.Background()

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating task queue: %s", err)
	}
	defer queueCleanup()

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, nower, uuider)
	if err != nil {
		log.Fatalf("Error creating publisher: %s", err)
	}
	defer publisherCleanup()

	router := mux.NewRouter()
	publisher.RegisterEndpoints(c, router)

	httpClient, vaultCleanup := setupAuthentication(c)
	defer vaultCleanup()

	baseURL := os.Getenv("BACKEND_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000/api"
	}

	payer := payapi.NewHTTPPayer(baseURL, httpClient)

	cartStore, cartStoreCleanup, err := mystore.New[cartsync.CartSnapshot](c)
	if err != nil {
		log.Fatalf("Error creating cart store: %s", err)
	}
	defer cartStoreCleanup()

	cartService := cartsync.NewService(cartsync.NewHTTPRemoteCart(baseURL, httpClient), cartStore, publisher, nower)
	err = cartService.CreateTopics(c)
	if err != nil {
		log.Fatalf("Error creating cart topics: %s", err)
	}
	cartsync.NewWebService(cartService).RegisterEndpoints(c, router)

	sessionStore, sessionStoreCleanup, err := mystore.New[checkout.CheckoutSession](c)
	if err != nil {
		log.Fatalf("Error creating checkout store: %s", err)
	}
	defer sessionStoreCleanup()

	checkoutService := checkout.NewService(sessionStore, cartService,
		checkout.NewHTTPOrderPlacer(baseURL, httpClient), payer, publisher, nower, uuider)
	err = checkoutService.CreateTopics(c)
	if err != nil {
		log.Fatalf("Error creating checkout topics: %s", err)
	}
	checkout.NewWebService(checkoutService).RegisterEndpoints(c, router)

	recordStore, recordStoreCleanup, err := mystore.New[verification.VerificationRecord](c)
	if err != nil {
		log.Fatalf("Error creating verification store: %s", err)
	}
	defer recordStoreCleanup()

	verificationService := verification.NewService(recordStore, payer, cartService, publisher, nower)
	verification.NewWebService(verificationService).RegisterEndpoints(c, router)

	notificationStore, notificationStoreCleanup, err := mystore.New[notifications.Notification](c)
	if err != nil {
		log.Fatalf("Error creating notification store: %s", err)
	}
	defer notificationStoreCleanup()

	notificationService := notifications.NewService(notificationStore, pubsub, nower, uuider)
	err = notificationService.Subscribe(c)
	if err != nil {
		log.Fatalf("Error subscribing to topics: %s", err)
	}
	notifications.NewWebService(notificationService).RegisterEndpoints(c, router)

	startWebServerBlocking(router)
}

// setupAuthentication stores the backend api key in the vault and returns a
// http client that presents it as bearer token.
func setupAuthentication(c context.Context) (myhttpclient.HTTPSender, func()) {
	vault, vaultCleanup, err := myvault.New(c)
	if err != nil {
		log.Fatalf("Error creating vault: %s", err)
	}

	apiKey := os.Getenv("BACKEND_API_KEY")
	if apiKey != "" {
		err = vault.Put(c, myvault.CurrentAPIKey, myvault.Credentials{
			ProviderName: "backend",
			APIKey:       apiKey,
		})
		if err != nil {
			log.Fatalf("Error storing api key: %s", err)
		}
	}

	httpClient := myhttpclient.New()

	credentials, found, err := vault.Get(c, myvault.CurrentAPIKey)
	if err != nil {
		log.Fatalf("Error reading api key: %s", err)
	}
	if found && credentials.APIKey != "" {
		httpClient = httpClient.WithBearerToken(credentials.APIKey)
	}

	return httpClient, vaultCleanup
}

func startWebServerBlocking(router *mux.Router) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
