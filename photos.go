package inaturalist

import (
	"context"

	"github.com/inaturalist/inaturalist-go/internal/api"
)

// PhotosService uploads photos.
type PhotosService struct {
	api *api.Client
}

// Create uploads a photo, usually a CustomUpload under "file".
func (s *PhotosService) Create(ctx context.Context, params Params, opts RequestOptions) (any, error) {
	return s.api.Upload(ctx, "photos", params, opts)
}
