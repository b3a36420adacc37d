package config

import (
	"errors"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Metadata looks up values published by the embedding environment. It has
// the same shape as the client's Environment so either can be passed.
type Metadata interface {
	Lookup(key string) (string, bool)
}

// Sources lists where Resolve looks for settings.
type Sources struct {
	// Explicit settings win over every other source.
	Explicit Config
	// Metadata is consulted after Explicit. Nil skips it.
	Metadata Metadata
	// IgnoreEnv skips process environment variables.
	IgnoreEnv bool
}

// Environment variable names, keyed to their koanf keys.
var envKeys = map[string]string{
	"API_URL":        "api_url",
	"WRITE_API_URL":  "write_api_url",
	"API_HOST":       "api_host",
	"WRITE_API_HOST": "write_api_host",
	"API_HOST_SSL":   "api_host_ssl",
	"WRITE_HOST_SSL": "write_host_ssl",
}

// Metadata keys, keyed to their koanf keys.
var metadataKeys = map[string]string{
	"config:inaturalist_api_url":        "api_url",
	"config:inaturalist_write_api_url":  "write_api_url",
	"config:inaturalist_api_host":       "api_host",
	"config:inaturalist_write_api_host": "write_api_host",
	"config:inaturalist_api_host_ssl":   "api_host_ssl",
	"config:inaturalist_write_host_ssl": "write_host_ssl",
}

// Resolve builds the client hosts from src. Order of precedence (high ->
// low):
//  1. src.Explicit
//  2. src.Metadata
//  3. env (API_URL, WRITE_API_URL, API_HOST, ...)
//
// Within a layer a full URL beats the host+SSL pair. The write URL falls
// back to the resolved read URL, then DefaultWriteAPIURL. The read URL
// falls back to DefaultAPIURL.
func Resolve(src Sources) (Resolved, error) {
	layers := []Config{src.Explicit}

	if src.Metadata != nil {
		meta, err := loadStringLayer(&lookupProvider{lookup: src.Metadata, keys: metadataKeys})
		if err != nil {
			return Resolved{}, fmt.Errorf("load metadata config: %w", err)
		}
		layers = append(layers, meta)
	}

	if !src.IgnoreEnv {
		// Unknown variables map to "" and are skipped.
		envProvider := env.Provider("", ".", func(s string) string {
			return envKeys[s]
		})
		fromEnv, err := loadStringLayer(envProvider)
		if err != nil {
			return Resolved{}, fmt.Errorf("load env config: %w", err)
		}
		layers = append(layers, fromEnv)
	}

	resolved := resolveLayers(layers...)
	if err := resolved.Validate(); err != nil {
		return Resolved{}, err
	}
	return resolved, nil
}

func resolveLayers(layers ...Config) Resolved {
	var r Resolved
	for _, layer := range layers {
		if r.APIURL == "" {
			r.APIURL = layer.readURL()
		}
		if r.WriteAPIURL == "" {
			r.WriteAPIURL = layer.writeURL()
		}
	}
	if r.WriteAPIURL == "" {
		r.WriteAPIURL = r.APIURL
	}
	if r.WriteAPIURL == "" {
		r.WriteAPIURL = DefaultWriteAPIURL
	}
	if r.APIURL == "" {
		r.APIURL = DefaultAPIURL
	}
	return r
}

// stringLayer is a Config as read from string-only sources. SSL flags are
// on only for the exact value "true".
type stringLayer struct {
	APIURL          string `koanf:"api_url"`
	WriteAPIURL     string `koanf:"write_api_url"`
	APIHost         string `koanf:"api_host"`
	WriteAPIHost    string `koanf:"write_api_host"`
	APIHostSSL      string `koanf:"api_host_ssl"`
	WriteAPIHostSSL string `koanf:"write_host_ssl"`
}

func loadStringLayer(p koanf.Provider) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(p, nil); err != nil {
		return Config{}, err
	}

	var raw stringLayer
	if err := k.UnmarshalWithConf("", &raw, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, err
	}
	return Config{
		APIURL:          raw.APIURL,
		WriteAPIURL:     raw.WriteAPIURL,
		APIHost:         raw.APIHost,
		WriteAPIHost:    raw.WriteAPIHost,
		APIHostSSL:      raw.APIHostSSL == "true",
		WriteAPIHostSSL: raw.WriteAPIHostSSL == "true",
	}, nil
}

// LoadFile reads a YAML file of Config keys (api_url, write_api_url,
// api_host, write_api_host, api_host_ssl, write_host_ssl).
func LoadFile(path string) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load config file %s: %w", path, err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return cfg, nil
}

// lookupProvider is a koanf.Provider over a key lookup.
type lookupProvider struct {
	lookup Metadata
	keys   map[string]string
}

var errReadBytesUnsupported = errors.New("lookup provider does not support ReadBytes")

// ReadBytes implements koanf.Provider.
func (p *lookupProvider) ReadBytes() ([]byte, error) {
	return nil, errReadBytesUnsupported
}

// Read implements koanf.Provider. Missing keys are left out.
func (p *lookupProvider) Read() (map[string]any, error) {
	out := make(map[string]any, len(p.keys))
	for source, key := range p.keys {
		if v, ok := p.lookup.Lookup(source); ok && v != "" {
			out[key] = v
		}
	}
	return out, nil
}
