// Package config resolves the read and write API hosts for the iNaturalist
// client from explicit settings, metadata supplied by the embedding
// environment, and process environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-multierror"
)

// Default hosts.
const (
	DefaultAPIURL      = "https://api.inaturalist.org/v1"
	DefaultWriteAPIURL = "https://www.inaturalist.org"
)

// Config is one layer of host settings. APIURL and WriteAPIURL are full
// base URLs. The host and SSL fields are the older way of naming a host and
// compose "http(s)://host" when the matching URL is unset.
type Config struct {
	APIURL          string `koanf:"api_url" yaml:"api_url"`
	WriteAPIURL     string `koanf:"write_api_url" yaml:"write_api_url"`
	APIHost         string `koanf:"api_host" yaml:"api_host"`
	WriteAPIHost    string `koanf:"write_api_host" yaml:"write_api_host"`
	APIHostSSL      bool   `koanf:"api_host_ssl" yaml:"api_host_ssl"`
	WriteAPIHostSSL bool   `koanf:"write_host_ssl" yaml:"write_host_ssl"`
}

// readURL returns the read URL this layer names, if any.
func (c Config) readURL() string {
	if c.APIURL != "" {
		return c.APIURL
	}
	return composeHost(c.APIHost, c.APIHostSSL)
}

// writeURL returns the write URL this layer names, if any.
func (c Config) writeURL() string {
	if c.WriteAPIURL != "" {
		return c.WriteAPIURL
	}
	return composeHost(c.WriteAPIHost, c.WriteAPIHostSSL)
}

func composeHost(host string, ssl bool) string {
	if host == "" {
		return ""
	}
	if ssl {
		return "https://" + host
	}
	return "http://" + host
}

// Resolved is the outcome of resolution: the hosts a client should use.
type Resolved struct {
	APIURL      string
	WriteAPIURL string
}

// Validate checks that both hosts are absolute http(s) URLs. All failures
// are reported together.
func (r Resolved) Validate() error {
	var result *multierror.Error

	if err := validation.Validate(r.APIURL, validation.Required, validation.By(httpURL)); err != nil {
		result = multierror.Append(result, fmt.Errorf("api url: %w", err))
	}
	if err := validation.Validate(r.WriteAPIURL, validation.Required, validation.By(httpURL)); err != nil {
		result = multierror.Append(result, fmt.Errorf("write api url: %w", err))
	}

	return result.ErrorOrNil()
}

var errNotHTTPURL = errors.New("must be an absolute http or https URL")

func httpURL(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errNotHTTPURL
	}
	return nil
}
