package inaturalist

import (
	"context"

	"github.com/inaturalist/inaturalist-go/internal/api"
)

// UsersService reads user accounts.
type UsersService struct {
	api *api.Client
}

// Me returns the account the API token belongs to.
func (s *UsersService) Me(ctx context.Context, params Params, opts RequestOptions) (Result, error) {
	return s.api.Get(ctx, "users/me", params, OptionsUseAuth(opts))
}

// Fetch reads users by id or login.
func (s *UsersService) Fetch(ctx context.Context, ids any, params Params, opts RequestOptions) (Result, error) {
	return s.api.Fetch(ctx, "users", ids, params, opts)
}
