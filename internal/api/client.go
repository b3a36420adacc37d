package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/inaturalist/inaturalist-go/internal/apierrors"
)

// Default hosts used when nothing is configured.
const (
	DefaultAPIURL      = "https://api.inaturalist.org/v1"
	DefaultWriteAPIURL = "https://www.inaturalist.org"
)

// ViaHeader identifies this client in the Via header of every request.
const ViaHeader = "inaturalist-go"

// callKind separates read calls, whose objects are wrapped, from write
// calls, whose parsed JSON is returned as is.
type callKind string

const (
	kindRead  callKind = "read"
	kindWrite callKind = "write"
)

// Config holds the API client configuration. It is read once by NewClient
// and not consulted afterwards.
type Config struct {
	// APIURL is the read API base URL. Default: DefaultAPIURL.
	APIURL string
	// WriteAPIURL is the write API base URL. When empty, a configured
	// APIURL is used, then DefaultWriteAPIURL.
	WriteAPIURL string
	// Origin is the base URL for same-origin requests. When empty, the
	// write URL is used.
	Origin string
	// Environment supplies the injected API token and CSRF pair.
	Environment Environment
	// HTTPClient sends requests. Default: a client with no timeout.
	HTTPClient *http.Client
	// Logger receives trace-level dispatch logs. Default: a null logger.
	Logger hclog.Logger
	// TracerProvider creates dispatch spans. Default: the global provider.
	TracerProvider trace.TracerProvider
	// Propagator injects trace context into requests. Default: the global
	// propagator.
	Propagator propagation.TextMapPropagator
	// Registerer receives request metrics. Nil disables metrics.
	Registerer prometheus.Registerer
}

// RequestOptions adjusts a single call.
type RequestOptions struct {
	// UseAuth attaches the bearer token to read calls. Write calls always
	// attach it when one resolves.
	UseAuth bool
	// APIToken is used when the environment injects no token.
	APIToken string
	// Method overrides the HTTP verb of a write call.
	Method string
	// Upload sends params as multipart/form-data instead of JSON.
	Upload bool
	// SameOrigin sends the request relative to the configured origin.
	SameOrigin bool
	// APIURL overrides the host for this call.
	APIURL string
	// UserAgent is forwarded as the User-Agent header.
	UserAgent string
	// RemoteIP is forwarded as the X-Forwarded-For header.
	RemoteIP string
}

// OptionsUseAuth returns a copy of opts with UseAuth set.
func OptionsUseAuth(opts RequestOptions) RequestOptions {
	opts.UseAuth = true
	return opts
}

// Client builds and dispatches requests against the iNaturalist API. It
// holds no per-request state and is safe for concurrent use.
type Client struct {
	apiURL      string
	writeAPIURL string
	origin      string
	env         Environment
	httpClient  *http.Client
	logger      hclog.Logger
	tracer      trace.Tracer
	propagator  propagation.TextMapPropagator
	metrics     *metrics
}

// Option configures the API client.
type Option func(*Config)

// WithAPIURL sets the read API base URL.
func WithAPIURL(u string) Option {
	return func(c *Config) { c.APIURL = u }
}

// WithWriteAPIURL sets the write API base URL.
func WithWriteAPIURL(u string) Option {
	return func(c *Config) { c.WriteAPIURL = u }
}

// WithOrigin sets the base URL for same-origin requests.
func WithOrigin(u string) Option {
	return func(c *Config) { c.Origin = u }
}

// WithEnvironment sets the embedding environment.
func WithEnvironment(env Environment) Option {
	return func(c *Config) { c.Environment = env }
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Config) { c.HTTPClient = hc }
}

// WithTimeout sets a timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		hc := &http.Client{}
		if c.HTTPClient != nil {
			copied := *c.HTTPClient
			hc = &copied
		}
		hc.Timeout = timeout
		c.HTTPClient = hc
	}
}

// WithLogger sets the logger.
func WithLogger(logger hclog.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Config) { c.TracerProvider = tp }
}

// WithPropagator sets the trace context propagator.
func WithPropagator(p propagation.TextMapPropagator) Option {
	return func(c *Config) { c.Propagator = p }
}

// WithRegisterer enables request metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *Config) { c.Registerer = reg }
}

// New creates an API client from functional options.
func New(opts ...Option) (*Client, error) {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewClient(cfg)
}

// NewClient creates an API client from cfg.
func NewClient(cfg Config) (*Client, error) {
	apiURL, err := normalizeBaseURL("api URL", cfg.APIURL)
	if err != nil {
		return nil, err
	}
	writeAPIURL, err := normalizeBaseURL("write API URL", cfg.WriteAPIURL)
	if err != nil {
		return nil, err
	}
	origin, err := normalizeBaseURL("origin", cfg.Origin)
	if err != nil {
		return nil, err
	}

	if writeAPIURL == "" {
		writeAPIURL = apiURL
	}
	if writeAPIURL == "" {
		writeAPIURL = DefaultWriteAPIURL
	}
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if origin == "" {
		origin = writeAPIURL
	}

	m, err := newMetrics(cfg.Registerer)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	c := &Client{
		apiURL:      apiURL,
		writeAPIURL: writeAPIURL,
		origin:      origin,
		env:         cfg.Environment,
		httpClient:  cfg.HTTPClient,
		logger:      cfg.Logger,
		tracer:      newTracer(cfg.TracerProvider),
		propagator:  cfg.Propagator,
		metrics:     m,
	}
	if c.env == nil {
		c.env = NoEnvironment
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.logger == nil {
		c.logger = hclog.NewNullLogger()
	}
	if c.propagator == nil {
		c.propagator = otel.GetTextMapPropagator()
	}
	return c, nil
}

func normalizeBaseURL(name, raw string) (string, error) {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return "", nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid %s: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid %s: scheme must be http or https, got %q", name, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid %s: missing host", name)
	}
	return raw, nil
}

// APIURL returns the resolved read API base URL.
func (c *Client) APIURL() string { return c.apiURL }

// WriteAPIURL returns the resolved write API base URL.
func (c *Client) WriteAPIURL() string { return c.writeAPIURL }

// Get interpolates route with params and sends a GET to the read API with
// all params on the query string. The bearer token is attached only when
// opts.UseAuth is set. The result is nil for an empty body.
func (c *Client) Get(ctx context.Context, route string, params Params, opts RequestOptions) (Result, error) {
	path, err := InterpolateRoute(route, params)
	if err != nil {
		return nil, err
	}
	target := withQuery(c.readHost(opts)+"/"+path, params)
	return c.read(ctx, target, opts)
}

// Fetch sends a GET for one or more records by id. ids may be a single
// value or a slice; slices are joined with commas.
func (c *Client) Fetch(ctx context.Context, route string, ids any, params Params, opts RequestOptions) (Result, error) {
	target := withQuery(c.readHost(opts)+"/"+route+"/"+stringify(ToValue(ids)), params)
	return c.read(ctx, target, opts)
}

func (c *Client) read(ctx context.Context, target string, opts RequestOptions) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setCommonHeaders(req, opts)
	if opts.UseAuth {
		if token := ResolveAPIToken(c.env, opts); token != "" {
			req.Header.Set("Authorization", token)
		}
	}

	raw, value, err := c.dispatch(ctx, req, kindRead)
	if err != nil || raw == nil {
		return nil, err
	}
	return wrap(raw, value), nil
}

// Post sends a write call. It interpolates route, attaches the bearer token
// or, failing that, the CSRF pair, and encodes params as JSON or, with
// opts.Upload, multipart. The parsed JSON body is returned unwrapped; nil
// for an empty body.
func (c *Client) Post(ctx context.Context, route string, params Params, opts RequestOptions) (any, error) {
	params = maps.Clone(params)
	if params == nil {
		params = Params{}
	}

	path, err := InterpolateRoute(route, params)
	if err != nil {
		return nil, err
	}

	method := strings.ToUpper(opts.Method)
	if method == "" {
		method = http.MethodPost
	}

	token := ResolveAPIToken(c.env, opts)
	if token == "" {
		if csrf, ok := ResolveCSRF(c.env); ok {
			params[csrf.Param] = csrf.Token
		}
	}

	var body io.Reader
	var contentType string
	if method != http.MethodHead {
		buf, ct, err := encodeBody(params, opts.Upload)
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	}

	target := c.writeHost(opts) + "/" + path
	// DELETE params also travel on the query string.
	if method == http.MethodDelete && len(params) > 0 {
		target = withQuery(target, params)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setCommonHeaders(req, opts)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	_, value, err := c.dispatch(ctx, req, kindWrite)
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Put is Post with the PUT method.
func (c *Client) Put(ctx context.Context, route string, params Params, opts RequestOptions) (any, error) {
	opts.Method = http.MethodPut
	return c.Post(ctx, route, params, opts)
}

// Delete is Post with the DELETE method.
func (c *Client) Delete(ctx context.Context, route string, params Params, opts RequestOptions) (any, error) {
	opts.Method = http.MethodDelete
	return c.Post(ctx, route, params, opts)
}

// Head is Post with the HEAD method. No body is sent.
func (c *Client) Head(ctx context.Context, route string, params Params, opts RequestOptions) (any, error) {
	opts.Method = http.MethodHead
	return c.Post(ctx, route, params, opts)
}

// Upload is Post with multipart encoding. The method defaults to POST and
// may be set to PUT.
func (c *Client) Upload(ctx context.Context, route string, params Params, opts RequestOptions) (any, error) {
	if opts.Method == "" {
		opts.Method = http.MethodPost
	}
	opts.Upload = true
	return c.Post(ctx, route, params, opts)
}

// readHost picks the host for read calls.
func (c *Client) readHost(opts RequestOptions) string {
	if opts.APIURL != "" {
		return strings.TrimRight(opts.APIURL, "/")
	}
	return c.apiURL
}

// writeHost picks the host for write calls: same origin, then a per-call
// override, then the configured write URL.
func (c *Client) writeHost(opts RequestOptions) string {
	if opts.SameOrigin {
		return c.origin
	}
	if opts.APIURL != "" {
		return strings.TrimRight(opts.APIURL, "/")
	}
	return c.writeAPIURL
}

func (c *Client) setCommonHeaders(req *http.Request, opts RequestOptions) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Via", ViaHeader)
	if opts.UserAgent != "" {
		req.Header.Set("User-Agent", opts.UserAgent)
	}
	if opts.RemoteIP != "" {
		req.Header.Set("X-Forwarded-For", opts.RemoteIP)
	}
}

func encodeBody(params Params, upload bool) (io.Reader, string, error) {
	if upload {
		return encodeMultipart(params)
	}
	plain, err := plainValue(toMapping(params))
	if err != nil {
		return nil, "", fmt.Errorf("encode request body: %w", err)
	}
	data, err := json.Marshal(plain)
	if err != nil {
		return nil, "", fmt.Errorf("encode request body: %w", err)
	}
	return bytes.NewReader(data), "application/json", nil
}

// dispatch sends req once and runs the response pipeline: reject non-2xx
// statuses without parsing, read the body, and parse non-empty bodies as
// JSON. raw is nil for an empty body.
func (c *Client) dispatch(ctx context.Context, req *http.Request, kind callKind) (raw []byte, value any, err error) {
	ctx, span := c.startSpan(ctx, req, kind)
	req = req.WithContext(ctx)

	start := time.Now()
	statusCode := 0
	defer func() {
		elapsed := time.Since(start)
		c.metrics.observe(req.Method, kind, statusCode, elapsed)
		endSpan(span, statusCode, err)
		c.logger.Trace("request complete",
			"method", req.Method, "url", req.URL.Redacted(), "status", statusCode, "duration", elapsed)
	}()

	c.logger.Trace("dispatching request", "method", req.Method, "url", req.URL.Redacted(), "kind", string(kind))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, &apierrors.NetworkError{Err: err, URL: req.URL.Redacted(), Method: req.Method}
	}
	statusCode = resp.StatusCode

	if err := checkStatus(resp); err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	return parseBody(resp)
}
