package inaturalist

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/inaturalist/inaturalist-go/config"
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	hosts      config.Config
	origin     string
	env        Environment
	ignoreEnv  bool
	httpClient *http.Client
	timeout    time.Duration

	// Observability
	logger         hclog.Logger
	tracerProvider trace.TracerProvider
	propagator     propagation.TextMapPropagator
	registerer     prometheus.Registerer
}

// Option configures the client.
type Option func(*clientConfig)

// WithConfig sets the explicit host settings. Later host options override
// individual fields.
func WithConfig(cfg config.Config) Option {
	return func(c *clientConfig) {
		c.hosts = cfg
	}
}

// WithAPIURL sets the read API base URL.
func WithAPIURL(url string) Option {
	return func(c *clientConfig) {
		c.hosts.APIURL = url
	}
}

// WithWriteAPIURL sets the write API base URL.
func WithWriteAPIURL(url string) Option {
	return func(c *clientConfig) {
		c.hosts.WriteAPIURL = url
	}
}

// WithOrigin sets the base URL used by calls with SameOrigin set.
// Default: the write API URL.
func WithOrigin(url string) Option {
	return func(c *clientConfig) {
		c.origin = url
	}
}

// WithEnvironment sets the embedding environment. It supplies the API
// token, the CSRF pair, and "config:inaturalist_*" host settings.
func WithEnvironment(env Environment) Option {
	return func(c *clientConfig) {
		c.env = env
	}
}

// WithoutEnvVars stops the client from reading API_URL, WRITE_API_URL and
// the other host variables from the process environment.
func WithoutEnvVars() Option {
	return func(c *clientConfig) {
		c.ignoreEnv = true
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets a per-request timeout on the HTTP client. By default
// there is none and cancellation is left to the caller's context.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithLogger sets the logger. Requests are logged at Trace level.
func WithLogger(logger hclog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider.
// Default: the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *clientConfig) {
		c.tracerProvider = tp
	}
}

// WithPropagator sets the propagator that injects trace context into
// outgoing requests. Default: the global propagator.
func WithPropagator(p propagation.TextMapPropagator) Option {
	return func(c *clientConfig) {
		c.propagator = p
	}
}

// WithRegisterer enables Prometheus request metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *clientConfig) {
		c.registerer = reg
	}
}
