package api

import (
	"fmt"
	"net/url"
)

// EncodeQuery serializes params as a URL query string without the leading
// "?". Scalar sequences repeat the key, nested objects use bracket keys,
// and keys are sorted. Upload values are skipped.
func EncodeQuery(params Params) string {
	if len(params) == 0 {
		return ""
	}
	values := url.Values{}
	for k, v := range params {
		addQuery(values, k, ToValue(v))
	}
	return values.Encode()
}

func addQuery(values url.Values, key string, v Value) {
	switch t := v.(type) {
	case Scalar:
		values.Add(key, t.String())
	case Sequence:
		for i, item := range t {
			if s, ok := item.(Scalar); ok {
				values.Add(key, s.String())
				continue
			}
			addQuery(values, fmt.Sprintf("%s[%d]", key, i), item)
		}
	case Mapping:
		for k, item := range t {
			addQuery(values, key+"["+k+"]", item)
		}
	}
}

// withQuery appends an encoded query to rawURL when there is one.
func withQuery(rawURL string, params Params) string {
	if q := EncodeQuery(params); q != "" {
		return rawURL + "?" + q
	}
	return rawURL
}
