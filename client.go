package inaturalist

import (
	"context"
	"fmt"

	"github.com/inaturalist/inaturalist-go/config"
	"github.com/inaturalist/inaturalist-go/internal/api"
)

// Request and response types shared with the core.
type (
	// Params are the parameters of a call: route placeholders, query
	// values, or the request body.
	Params = api.Params
	// RequestOptions adjusts a single call.
	RequestOptions = api.RequestOptions
	// Result is the body of a read call: an Array or a *Response.
	Result = api.Result
	// Array is a JSON array returned by a read call.
	Array = api.Array
	// Response wraps any other JSON body returned by a read call.
	Response = api.Response
	// CustomUpload is a file part of a multipart upload.
	CustomUpload = api.CustomUpload
	// Environment supplies values from whatever hosts the client.
	Environment = api.Environment
	// MetaMap is a map-backed Environment.
	MetaMap = api.MetaMap
	// EnvironmentFunc adapts a function to Environment.
	EnvironmentFunc = api.EnvironmentFunc
)

// Environment keys.
const (
	MetaAPIToken  = api.MetaAPIToken
	MetaCSRFParam = api.MetaCSRFParam
	MetaCSRFToken = api.MetaCSRFToken
)

// OptionsUseAuth returns a copy of opts with UseAuth set.
func OptionsUseAuth(opts RequestOptions) RequestOptions {
	return api.OptionsUseAuth(opts)
}

// Client is the iNaturalist API client. It is safe for concurrent use.
type Client struct {
	apiClient *api.Client

	ComputerVision  *ComputerVisionService
	Observations    *ObservationsService
	Taxa            *TaxaService
	Photos          *PhotosService
	Users           *UsersService
	Identifications *IdentificationsService
	Places          *PlacesService
}

// buildAPIClient creates and configures an API client from the given config.
func buildAPIClient(cfg *clientConfig) (*api.Client, error) {
	src := config.Sources{
		Explicit:  cfg.hosts,
		IgnoreEnv: cfg.ignoreEnv,
	}
	if cfg.env != nil {
		src.Metadata = cfg.env
	}
	hosts, err := config.Resolve(src)
	if err != nil {
		return nil, fmt.Errorf("resolve hosts: %w", err)
	}

	apiOpts := []api.Option{
		api.WithAPIURL(hosts.APIURL),
		api.WithWriteAPIURL(hosts.WriteAPIURL),
		api.WithOrigin(cfg.origin),
		api.WithEnvironment(cfg.env),
		api.WithHTTPClient(cfg.httpClient),
		api.WithLogger(cfg.logger),
		api.WithTracerProvider(cfg.tracerProvider),
		api.WithPropagator(cfg.propagator),
		api.WithRegisterer(cfg.registerer),
	}
	if cfg.timeout > 0 {
		apiOpts = append(apiOpts, api.WithTimeout(cfg.timeout))
	}

	return api.New(apiOpts...)
}

// New creates a client. Hosts come from the options, then the
// environment's "config:inaturalist_*" metadata, then the API_URL family
// of environment variables, then the public iNaturalist hosts.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	apiClient, err := buildAPIClient(cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		apiClient:       apiClient,
		ComputerVision:  &ComputerVisionService{api: apiClient},
		Observations:    &ObservationsService{api: apiClient},
		Taxa:            &TaxaService{api: apiClient},
		Photos:          &PhotosService{api: apiClient},
		Users:           &UsersService{api: apiClient},
		Identifications: &IdentificationsService{api: apiClient},
		Places:          &PlacesService{api: apiClient},
	}, nil
}

// APIURL returns the read API base URL in use.
func (c *Client) APIURL() string { return c.apiClient.APIURL() }

// WriteAPIURL returns the write API base URL in use.
func (c *Client) WriteAPIURL() string { return c.apiClient.WriteAPIURL() }

// Get sends a read call to any route. See the service types for the
// common endpoints.
func (c *Client) Get(ctx context.Context, route string, params Params, opts RequestOptions) (Result, error) {
	return c.apiClient.Get(ctx, route, params, opts)
}

// Fetch reads one or more records of route by id.
func (c *Client) Fetch(ctx context.Context, route string, ids any, params Params, opts RequestOptions) (Result, error) {
	return c.apiClient.Fetch(ctx, route, ids, params, opts)
}

// Post sends a write call to any route.
func (c *Client) Post(ctx context.Context, route string, params Params, opts RequestOptions) (any, error) {
	return c.apiClient.Post(ctx, route, params, opts)
}

// Put sends a PUT write call.
func (c *Client) Put(ctx context.Context, route string, params Params, opts RequestOptions) (any, error) {
	return c.apiClient.Put(ctx, route, params, opts)
}

// Delete sends a DELETE write call.
func (c *Client) Delete(ctx context.Context, route string, params Params, opts RequestOptions) (any, error) {
	return c.apiClient.Delete(ctx, route, params, opts)
}

// Head sends a HEAD write call.
func (c *Client) Head(ctx context.Context, route string, params Params, opts RequestOptions) (any, error) {
	return c.apiClient.Head(ctx, route, params, opts)
}

// Upload sends params as multipart/form-data.
func (c *Client) Upload(ctx context.Context, route string, params Params, opts RequestOptions) (any, error) {
	return c.apiClient.Upload(ctx, route, params, opts)
}
