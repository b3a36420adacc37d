package inaturalist

import (
	"context"

	"github.com/inaturalist/inaturalist-go/internal/api"
)

// IdentificationsService writes identifications.
type IdentificationsService struct {
	api *api.Client
}

// Create adds an identification to an observation.
func (s *IdentificationsService) Create(ctx context.Context, params Params, opts RequestOptions) (any, error) {
	return s.api.Post(ctx, "identifications", params, opts)
}

// Update changes the identification params["id"].
func (s *IdentificationsService) Update(ctx context.Context, params Params, opts RequestOptions) (any, error) {
	return s.api.Put(ctx, "identifications/:id", params, opts)
}

// Delete withdraws the identification params["id"].
func (s *IdentificationsService) Delete(ctx context.Context, params Params, opts RequestOptions) (any, error) {
	return s.api.Delete(ctx, "identifications/:id", params, opts)
}
