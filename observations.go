package inaturalist

import (
	"context"
	"maps"

	"github.com/google/uuid"

	"github.com/inaturalist/inaturalist-go/internal/api"
)

// ObservationsService reads and writes observations.
type ObservationsService struct {
	api *api.Client
}

// Search lists observations matching params.
func (s *ObservationsService) Search(ctx context.Context, params Params, opts RequestOptions) (Result, error) {
	return s.api.Get(ctx, "observations", params, opts)
}

// Fetch reads observations by id.
func (s *ObservationsService) Fetch(ctx context.Context, ids any, params Params, opts RequestOptions) (Result, error) {
	return s.api.Fetch(ctx, "observations", ids, params, opts)
}

// Create creates an observation. A uuid is generated when params carry
// none.
func (s *ObservationsService) Create(ctx context.Context, params Params, opts RequestOptions) (any, error) {
	return s.api.Post(ctx, "observations", withUUID(params), opts)
}

// Update changes the observation params["id"].
func (s *ObservationsService) Update(ctx context.Context, params Params, opts RequestOptions) (any, error) {
	return s.api.Put(ctx, "observations/:id", params, opts)
}

// Delete deletes the observation params["id"].
func (s *ObservationsService) Delete(ctx context.Context, params Params, opts RequestOptions) (any, error) {
	return s.api.Delete(ctx, "observations/:id", params, opts)
}

// Fave adds the observation params["id"] to the user's favorites.
func (s *ObservationsService) Fave(ctx context.Context, params Params, opts RequestOptions) (any, error) {
	return s.api.Post(ctx, "observations/:id/fave", params, opts)
}

// Unfave removes the observation params["id"] from the user's favorites.
func (s *ObservationsService) Unfave(ctx context.Context, params Params, opts RequestOptions) (any, error) {
	return s.api.Delete(ctx, "observations/:id/fave", params, opts)
}

// withUUID returns a copy of params with a uuid set on the nested
// "observation" object, or at the top level when there is none.
func withUUID(params Params) Params {
	out := maps.Clone(params)
	if out == nil {
		out = Params{}
	}

	var obs map[string]any
	switch v := out["observation"].(type) {
	case map[string]any:
		obs = v
	case Params:
		obs = v
	}
	if obs != nil {
		if _, has := obs["uuid"]; !has {
			obs = maps.Clone(obs)
			obs["uuid"] = uuid.NewString()
			out["observation"] = obs
		}
		return out
	}

	if _, has := out["uuid"]; !has {
		out["uuid"] = uuid.NewString()
	}
	return out
}
