package inaturalist

import (
	"context"

	"github.com/inaturalist/inaturalist-go/internal/api"
)

// PlacesService reads places.
type PlacesService struct {
	api *api.Client
}

// Fetch reads places by id.
func (s *PlacesService) Fetch(ctx context.Context, ids any, params Params, opts RequestOptions) (Result, error) {
	return s.api.Fetch(ctx, "places", ids, params, opts)
}

// Autocomplete matches places by name prefix in params["q"].
func (s *PlacesService) Autocomplete(ctx context.Context, params Params, opts RequestOptions) (Result, error) {
	return s.api.Get(ctx, "places/autocomplete", params, opts)
}
