package api

import (
	"regexp"
	"strings"

	"github.com/inaturalist/inaturalist-go/internal/apierrors"
)

// placeholderPattern matches ":name" followed by "/" or the end of the route.
var placeholderPattern = regexp.MustCompile(`:[a-z]+(?:/|$)`)

// InterpolateRoute replaces ":name" placeholders in route with the matching
// params, in order of appearance. Each placeholder needs a present, truthy
// param. Interpolation stops at the first placeholder that cannot be
// resolved and returns a *apierrors.MissingRouteParameterError along with
// the route as it stood at that point: earlier substitutions stay applied.
func InterpolateRoute(route string, params Params) (string, error) {
	for _, match := range placeholderPattern.FindAllString(route, -1) {
		sym := strings.TrimSuffix(match, "/")
		name := sym[1:]

		raw, ok := params[name]
		if !ok {
			return route, &apierrors.MissingRouteParameterError{Param: name, Route: route}
		}
		v := ToValue(raw)
		if !truthy(v) {
			return route, &apierrors.MissingRouteParameterError{Param: name, Route: route}
		}
		route = strings.Replace(route, sym, stringify(v), 1)
	}
	return route, nil
}
