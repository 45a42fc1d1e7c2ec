package api

import (
	"context"

	"github.com/bcardapp/bcard/internal/client/models"
)

// Client is the remote data gateway: one method per service endpoint,
// request construction and response unwrapping only.
//
// Contract:
//   - Given well-formed input and (where required) an installed credential,
//     each call returns the decoded success payload.
//   - On a non-2xx response or a transport failure, each call fails with a
//     tagged *Error; there is no retry and no caching.
//   - SetToken installs the default bearer credential attached to every
//     subsequent request; ClearToken removes it.
//
// All methods honor context cancellation.
type Client interface {
	SetToken(token string)
	ClearToken()

	Signup(ctx context.Context, req models.SignupRequest) (models.User, error)
	Login(ctx context.Context, email, password string) (string, error)

	Cards(ctx context.Context) ([]models.Card, error)
	Card(ctx context.Context, id string) (models.Card, error)
	MyCards(ctx context.Context) ([]models.Card, error)
	CreateCard(ctx context.Context, in models.CardInput) (models.Card, error)
	UpdateCard(ctx context.Context, id string, in models.CardInput) (models.Card, error)
	DeleteCard(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, id string) (models.Card, error)

	Users(ctx context.Context) ([]models.User, error)
	User(ctx context.Context, id string) (models.User, error)
	ToggleBusiness(ctx context.Context, id string) (models.User, error)
	DeleteUser(ctx context.Context, id string) error
}
