package api

// Metadata keys read from the embedding environment.
const (
	MetaAPIToken  = "inaturalist-api-token"
	MetaCSRFParam = "csrf-param"
	MetaCSRFToken = "csrf-token"
)

// Environment looks up values supplied by whatever hosts the client, such
// as page metadata in a server-rendered app. A missing or empty value
// reports false.
type Environment interface {
	Lookup(key string) (string, bool)
}

// MetaMap is a map-backed Environment.
type MetaMap map[string]string

// Lookup implements Environment.
func (m MetaMap) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok && v != ""
}

// EnvironmentFunc adapts a function to the Environment interface.
type EnvironmentFunc func(key string) (string, bool)

// Lookup implements Environment.
func (f EnvironmentFunc) Lookup(key string) (string, bool) {
	return f(key)
}

type noEnvironment struct{}

func (noEnvironment) Lookup(string) (string, bool) { return "", false }

// NoEnvironment is an Environment with no values.
var NoEnvironment Environment = noEnvironment{}

// CSRF is an anti-forgery token and the parameter name the server expects
// it under.
type CSRF struct {
	Param string
	Token string
}

// ResolveCSRF returns the CSRF pair from env. Both the param name and the
// token must be present.
func ResolveCSRF(env Environment) (CSRF, bool) {
	if env == nil {
		return CSRF{}, false
	}
	param, ok := env.Lookup(MetaCSRFParam)
	if !ok {
		return CSRF{}, false
	}
	token, ok := env.Lookup(MetaCSRFToken)
	if !ok {
		return CSRF{}, false
	}
	return CSRF{Param: param, Token: token}, true
}

// ResolveAPIToken returns the bearer token for a request. A token injected
// through env takes priority over opts.APIToken.
func ResolveAPIToken(env Environment, opts RequestOptions) string {
	if env != nil {
		if token, ok := env.Lookup(MetaAPIToken); ok {
			return token
		}
	}
	return opts.APIToken
}
