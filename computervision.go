package inaturalist

import (
	"context"

	"github.com/inaturalist/inaturalist-go/internal/api"
)

// ComputerVisionService suggests taxa for images and observations.
type ComputerVisionService struct {
	api *api.Client
}

// ScoreImage uploads an image and returns suggested taxa. The upload goes
// to the read API unless opts.APIURL says otherwise. The image is usually
// a CustomUpload under "image".
func (s *ComputerVisionService) ScoreImage(ctx context.Context, params Params, opts RequestOptions) (any, error) {
	if opts.APIURL == "" {
		opts.APIURL = s.api.APIURL()
	}
	return s.api.Upload(ctx, "computervision/score_image", params, opts)
}

// ScoreObservation returns suggested taxa for the observation params["id"].
func (s *ComputerVisionService) ScoreObservation(ctx context.Context, params Params, opts RequestOptions) (Result, error) {
	return s.api.Get(ctx, "computervision/score_observation/:id", params, OptionsUseAuth(opts))
}
