package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/inaturalist/inaturalist-go/internal/apierrors"
)

// Result is the normalized body of a read call: either an Array or a
// *Response.
type Result interface {
	isResult()
}

// Array is a JSON array body, returned as parsed.
type Array []any

func (Array) isResult() {}

// Response wraps any non-array JSON body from a read call and exposes
// path-based accessors over it.
type Response struct {
	raw   []byte
	value any
}

func (*Response) isResult() {}

// NewResponse wraps a parsed JSON value.
func NewResponse(value any) *Response {
	raw, err := json.Marshal(value)
	if err != nil {
		raw = []byte("null")
	}
	return &Response{raw: raw, value: value}
}

func newResponseRaw(raw []byte, value any) *Response {
	return &Response{raw: raw, value: value}
}

// Value returns the parsed payload.
func (r *Response) Value() any { return r.value }

// Raw returns the payload as JSON.
func (r *Response) Raw() []byte { return r.raw }

// Get returns the value at a gjson path such as "results.0.taxon.id".
func (r *Response) Get(path string) gjson.Result {
	return gjson.GetBytes(r.raw, path)
}

// Results returns the elements of the "results" array.
func (r *Response) Results() []gjson.Result {
	return r.Get("results").Array()
}

// TotalResults returns "total_results", or the length of "results" when
// the field is absent.
func (r *Response) TotalResults() int {
	if total := r.Get("total_results"); total.Exists() {
		return int(total.Int())
	}
	return len(r.Results())
}

// Page returns the "page" field.
func (r *Response) Page() int { return int(r.Get("page").Int()) }

// PerPage returns the "per_page" field.
func (r *Response) PerPage() int { return int(r.Get("per_page").Int()) }

// Unmarshal decodes the payload into out.
func (r *Response) Unmarshal(out any) error {
	return json.Unmarshal(r.raw, out)
}

// maxErrorBodySize caps how much of an error response body is buffered.
const maxErrorBodySize = 1 << 20

// checkStatus rejects responses outside [200, 300) with an HTTPError. Up to
// maxErrorBodySize bytes of the body are buffered and left readable on the
// attached response, unparsed. A failed read keeps the partial body and
// sets BodyErr.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))

	httpErr := &apierrors.HTTPError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Response:   resp,
	}
	if readErr != nil {
		httpErr.BodyErr = fmt.Errorf("read error body: %w", readErr)
	}
	return httpErr
}

// parseBody reads the body and parses it as JSON. An empty body yields a
// nil value and no error.
func parseBody(resp *http.Response) ([]byte, any, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response body: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil, nil
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return raw, nil, &apierrors.MalformedResponseBodyError{
			StatusCode: resp.StatusCode,
			Body:       string(raw),
			Err:        err,
		}
	}
	return raw, value, nil
}

// wrap leaves arrays as they are and wraps everything else.
func wrap(raw []byte, value any) Result {
	if arr, ok := value.([]any); ok {
		return Array(arr)
	}
	return newResponseRaw(raw, value)
}
