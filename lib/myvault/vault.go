package myvault

import (
	"context"

	"github.com/selamshop/storefront/lib/mystore"
)

const (
	CurrentAPIKey = "currentApiKey"
)

type Credentials struct {
	ProviderName string
	APIKey       string
}

//go:generate mockgen -source=vault.go -package myvault -destination vault_mock.go Vault
type Vault interface {
	Put(c context.Context, uid string, value Credentials) error
	Get(c context.Context, uid string) (Credentials, bool, error)
}

func New(c context.Context) (Vault, func(), error) {
	store, cleanup, err := mystore.New[Credentials](c)
	if err != nil {
		return nil, nil, err
	}

	return vault{store: store}, cleanup, nil
}

type vault struct {
	store mystore.Store[Credentials]
}

func (v vault) Put(c context.Context, uid string, value Credentials) error {
	return v.store.Put(c, uid, value)
}

func (v vault) Get(c context.Context, uid string) (Credentials, bool, error) {
	return v.store.Get(c, uid)
}
