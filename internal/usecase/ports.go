package usecase

import (
	"context"

	"restaurant-pos/internal/domain/location"
	"restaurant-pos/internal/domain/payment"
	"restaurant-pos/internal/domain/user"
	"restaurant-pos/internal/infra/wire"
	"restaurant-pos/internal/offline"
)

type Identity interface {
	SignInWithPassword(ctx context.Context, email, password string) (wire.AuthSession, error)
	SignUp(ctx context.Context, email, password string) (wire.AuthAccount, error)
	SignOut(ctx context.Context, accessToken string) error
}

type Tables interface {
	Select(ctx context.Context, table string, q wire.Query) ([]wire.Record, error)
	Insert(ctx context.Context, table string, rec wire.Record) (wire.Record, error)
	Update(ctx context.Context, table, id string, patch wire.Record) (wire.Record, error)
	Delete(ctx context.Context, table, id string) error
}

// Backend is the hosted relational store plus its identity endpoint.
type Backend interface {
	Identity
	Tables
	Ping(ctx context.Context) error
}

//go:generate mockgen -destination=../../tests/mock/usecase/local_store.go -package=usecasemock . LocalStore

// LocalStore persists what the terminal must not lose while offline.
type LocalStore interface {
	StoreOfflinePayment(ctx context.Context, p payment.OfflinePayment) error
	GetOfflinePayments(ctx context.Context) ([]payment.OfflinePayment, error)
	RemoveOfflinePayment(ctx context.Context, id string) error
	offline.Persister
}

// Session is the view of the signed-in operator the other stores depend on.
type Session interface {
	CurrentUser() (user.User, bool)
}

// ProfileSession lets a store reflect a profile change it has already persisted.
type ProfileSession interface {
	Session
	PatchUser(fn func(*user.User))
}

// LocationSelection exposes the working location to stores that scope data by it.
type LocationSelection interface {
	SelectedLocation() (location.Location, bool)
}
