package inaturalist

import (
	"context"

	"github.com/inaturalist/inaturalist-go/internal/api"
)

// TaxaService reads the taxonomy.
type TaxaService struct {
	api *api.Client
}

// Search lists taxa matching params.
func (s *TaxaService) Search(ctx context.Context, params Params, opts RequestOptions) (Result, error) {
	return s.api.Get(ctx, "taxa", params, opts)
}

// Fetch reads taxa by id.
func (s *TaxaService) Fetch(ctx context.Context, ids any, params Params, opts RequestOptions) (Result, error) {
	return s.api.Fetch(ctx, "taxa", ids, params, opts)
}

// Autocomplete matches taxa by name prefix in params["q"].
func (s *TaxaService) Autocomplete(ctx context.Context, params Params, opts RequestOptions) (Result, error) {
	return s.api.Get(ctx, "taxa/autocomplete", params, opts)
}
