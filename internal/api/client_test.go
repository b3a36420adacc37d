package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/inaturalist/inaturalist-go/internal/apierrors"
)

func newTestClient(t *testing.T, serverURL string, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithAPIURL(serverURL + "/v1"), WithWriteAPIURL(serverURL)}, opts...)
	client, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func TestNewClient_DefaultValues(t *testing.T) {
	client, err := NewClient(Config{})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if client.APIURL() != DefaultAPIURL {
		t.Errorf("APIURL() = %s, want %s", client.APIURL(), DefaultAPIURL)
	}
	if client.WriteAPIURL() != DefaultWriteAPIURL {
		t.Errorf("WriteAPIURL() = %s, want %s", client.WriteAPIURL(), DefaultWriteAPIURL)
	}
	if client.httpClient == nil {
		t.Error("httpClient is nil")
	}
	if client.httpClient.Timeout != 0 {
		t.Errorf("timeout = %v, want none", client.httpClient.Timeout)
	}
	if client.env == nil || client.logger == nil || client.tracer == nil || client.propagator == nil {
		t.Error("defaults not applied")
	}
	if client.metrics != nil {
		t.Error("metrics enabled without a registerer")
	}
}

func TestNewClient_HostPrecedence(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantRead  string
		wantWrite string
	}{
		{
			name:      "both configured",
			cfg:       Config{APIURL: "https://read.example.com/v1", WriteAPIURL: "https://write.example.com"},
			wantRead:  "https://read.example.com/v1",
			wantWrite: "https://write.example.com",
		},
		{
			name:      "write falls back to configured read",
			cfg:       Config{APIURL: "https://read.example.com/v1/"},
			wantRead:  "https://read.example.com/v1",
			wantWrite: "https://read.example.com/v1",
		},
		{
			name:      "write only",
			cfg:       Config{WriteAPIURL: "http://localhost:3000"},
			wantRead:  DefaultAPIURL,
			wantWrite: "http://localhost:3000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)
			if err != nil {
				t.Fatalf("NewClient() error = %v", err)
			}
			if client.APIURL() != tt.wantRead {
				t.Errorf("APIURL() = %s, want %s", client.APIURL(), tt.wantRead)
			}
			if client.WriteAPIURL() != tt.wantWrite {
				t.Errorf("WriteAPIURL() = %s, want %s", client.WriteAPIURL(), tt.wantWrite)
			}
		})
	}
}

func TestNewClient_InvalidURL(t *testing.T) {
	for _, cfg := range []Config{
		{APIURL: "ftp://example.com"},
		{WriteAPIURL: "://bad"},
		{Origin: "example.com"},
		{Origin: "http://"},
		{APIURL: "https:///v1"},
	} {
		if _, err := NewClient(cfg); err == nil {
			t.Errorf("NewClient(%+v) error = nil, want error", cfg)
		}
	}
}

func TestNew_WithOptions(t *testing.T) {
	hc := &http.Client{}
	client, err := New(
		WithAPIURL("https://example.com/v1"),
		WithHTTPClient(hc),
		WithTimeout(10*time.Second),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if client.APIURL() != "https://example.com/v1" {
		t.Errorf("APIURL() = %s", client.APIURL())
	}
	if client.httpClient.Timeout != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", client.httpClient.Timeout)
	}
	if hc.Timeout != 0 {
		t.Error("WithTimeout modified the caller's http.Client")
	}
}

func TestClient_Get_WrapsObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/v1/computervision/score_observation/1" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.RawQuery != "id=1" {
			t.Errorf("query = %s, want id=1", r.URL.RawQuery)
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Accept = %s", r.Header.Get("Accept"))
		}
		if r.Header.Get("Via") != ViaHeader {
			t.Errorf("Via = %s, want %s", r.Header.Get("Via"), ViaHeader)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"results":[{"taxon":{"id":1}}]}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result, err := client.Get(context.Background(), "computervision/score_observation/:id", Params{"id": 1}, RequestOptions{})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	resp, ok := result.(*Response)
	if !ok {
		t.Fatalf("result = %T, want *Response", result)
	}
	if id := resp.Get("results.0.taxon.id").Int(); id != 1 {
		t.Errorf("results[0].taxon.id = %d, want 1", id)
	}
	if resp.TotalResults() != 1 {
		t.Errorf("TotalResults() = %d, want 1", resp.TotalResults())
	}

	value, ok := resp.Value().(map[string]any)
	if !ok {
		t.Fatalf("Value() = %T, want map", resp.Value())
	}
	results := value["results"].([]any)
	taxon := results[0].(map[string]any)["taxon"].(map[string]any)
	if taxon["id"] != float64(1) {
		t.Errorf("underlying id = %v, want 1", taxon["id"])
	}
}

func TestClient_Get_ArrayUnwrapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[1,2,3]`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result, err := client.Get(context.Background(), "taxa", nil, RequestOptions{})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	arr, ok := result.(Array)
	if !ok {
		t.Fatalf("result = %T, want Array", result)
	}
	want := Array{float64(1), float64(2), float64(3)}
	if !reflect.DeepEqual(arr, want) {
		t.Errorf("result = %v, want %v", arr, want)
	}
}

func TestClient_Get_ScalarWrapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `42`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result, err := client.Get(context.Background(), "count", nil, RequestOptions{})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	resp, ok := result.(*Response)
	if !ok {
		t.Fatalf("result = %T, want *Response", result)
	}
	if resp.Value() != float64(42) {
		t.Errorf("Value() = %v, want 42", resp.Value())
	}
}

func TestClient_Get_EmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result, err := client.Get(context.Background(), "taxa", nil, RequestOptions{})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if result != nil {
		t.Errorf("result = %#v, want nil", result)
	}
}

func TestClient_Get_HTTPErrorBodyNotParsed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `<html>not json</html>`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Get(context.Background(), "taxa/:id", Params{"id": 9}, RequestOptions{})
	if err == nil {
		t.Fatal("Get() error = nil, want error")
	}
	if errors.Is(err, apierrors.ErrMalformedResponse) {
		t.Error("error body was parsed")
	}
	if !errors.Is(err, apierrors.ErrNotFound) {
		t.Errorf("errors.Is(err, ErrNotFound) = false for %v", err)
	}

	var httpErr *apierrors.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("error type = %T, want *HTTPError", err)
	}
	if httpErr.Status != "404 Not Found" {
		t.Errorf("Status = %q, want %q", httpErr.Status, "404 Not Found")
	}
	if err.Error() != "404 Not Found" {
		t.Errorf("Error() = %q", err.Error())
	}
	if httpErr.Response == nil {
		t.Fatal("Response not attached")
	}
	body, _ := io.ReadAll(httpErr.Response.Body)
	if string(body) != "<html>not json</html>" {
		t.Errorf("attached body = %q", body)
	}
}

func TestClient_Get_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"results":`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Get(context.Background(), "taxa", nil, RequestOptions{})
	if !errors.Is(err, apierrors.ErrMalformedResponse) {
		t.Fatalf("error = %v, want ErrMalformedResponse", err)
	}

	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Errorf("underlying JSON error not preserved: %v", err)
	}

	var malformed *apierrors.MalformedResponseBodyError
	if errors.As(err, &malformed) && malformed.Body != `{"results":` {
		t.Errorf("Body = %q", malformed.Body)
	}
}

func TestClient_Get_MissingRouteParamNoNetwork(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Get(context.Background(), "observations/:id", Params{}, RequestOptions{})
	if !errors.Is(err, apierrors.ErrMissingRouteParameter) {
		t.Errorf("error = %v, want ErrMissingRouteParameter", err)
	}
	_, err = client.Post(context.Background(), "observations/:id", Params{}, RequestOptions{})
	if !errors.Is(err, apierrors.ErrMissingRouteParameter) {
		t.Errorf("error = %v, want ErrMissingRouteParameter", err)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Errorf("server hit %d times, want 0", hits)
	}
}

func TestClient_Get_Auth(t *testing.T) {
	tests := []struct {
		name string
		env  Environment
		opts RequestOptions
		want string
	}{
		{
			name: "no auth without UseAuth",
			opts: RequestOptions{APIToken: "tok"},
			want: "",
		},
		{
			name: "explicit token with UseAuth",
			opts: OptionsUseAuth(RequestOptions{APIToken: "tok"}),
			want: "tok",
		},
		{
			name: "environment token wins",
			env:  MetaMap{MetaAPIToken: "meta-tok"},
			opts: RequestOptions{UseAuth: true, APIToken: "tok"},
			want: "meta-tok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get("Authorization")
				io.WriteString(w, `{}`)
			}))
			defer server.Close()

			client := newTestClient(t, server.URL, WithEnvironment(tt.env))
			if _, err := client.Get(context.Background(), "users/me", nil, tt.opts); err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Authorization = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClient_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/observations/1,2,3" {
			t.Errorf("path = %s, want /v1/observations/1,2,3", r.URL.Path)
		}
		if r.URL.Query().Get("locale") != "en" {
			t.Errorf("locale = %s, want en", r.URL.Query().Get("locale"))
		}
		io.WriteString(w, `{"total_results":3,"page":1,"per_page":30,"results":[{"id":1},{"id":2},{"id":3}]}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result, err := client.Fetch(context.Background(), "observations", []int{1, 2, 3}, Params{"locale": "en"}, RequestOptions{})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	resp := result.(*Response)
	if resp.TotalResults() != 3 || resp.Page() != 1 || resp.PerPage() != 30 {
		t.Errorf("paging = %d/%d/%d", resp.TotalResults(), resp.Page(), resp.PerPage())
	}
	if len(resp.Results()) != 3 {
		t.Errorf("len(Results()) = %d, want 3", len(resp.Results()))
	}
}

func TestClient_Post_JSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/observations/5/fave" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.RawQuery != "" {
			t.Errorf("query = %s, want empty", r.URL.RawQuery)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %s", r.Header.Get("Content-Type"))
		}
		if r.Header.Get("Authorization") != "tok" {
			t.Errorf("Authorization = %q, want tok", r.Header.Get("Authorization"))
		}
		if r.Header.Get("User-Agent") != "agent/1" {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		if r.Header.Get("X-Forwarded-For") != "10.0.0.1" {
			t.Errorf("X-Forwarded-For = %q", r.Header.Get("X-Forwarded-For"))
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["id"] != float64(5) {
			t.Errorf("body id = %v, want 5", body["id"])
		}
		io.WriteString(w, `{"id":5,"faves_count":1}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	params := Params{"id": 5}
	result, err := client.Post(context.Background(), "observations/:id/fave", params, RequestOptions{
		APIToken:  "tok",
		UserAgent: "agent/1",
		RemoteIP:  "10.0.0.1",
	})
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}

	obj, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("result = %T, want unwrapped map", result)
	}
	if obj["faves_count"] != float64(1) {
		t.Errorf("faves_count = %v", obj["faves_count"])
	}
	if len(params) != 1 {
		t.Errorf("caller params mutated: %v", params)
	}
}

func TestClient_Post_CSRF(t *testing.T) {
	env := MetaMap{MetaCSRFParam: "authenticity_token", MetaCSRFToken: "csrf-123"}

	t.Run("injected without token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "" {
				t.Errorf("Authorization = %q, want empty", r.Header.Get("Authorization"))
			}
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			if body["authenticity_token"] != "csrf-123" {
				t.Errorf("authenticity_token = %v", body["authenticity_token"])
			}
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := newTestClient(t, server.URL, WithEnvironment(env))
		result, err := client.Post(context.Background(), "votes", Params{"a": 1}, RequestOptions{})
		if err != nil {
			t.Fatalf("Post() error = %v", err)
		}
		if result != nil {
			t.Errorf("result = %v, want nil for empty body", result)
		}
	})

	t.Run("skipped with token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			if _, ok := body["authenticity_token"]; ok {
				t.Error("CSRF param sent alongside bearer token")
			}
			io.WriteString(w, `{}`)
		}))
		defer server.Close()

		client := newTestClient(t, server.URL, WithEnvironment(env))
		if _, err := client.Post(context.Background(), "votes", nil, RequestOptions{APIToken: "tok"}); err != nil {
			t.Fatalf("Post() error = %v", err)
		}
	})

	t.Run("incomplete pair ignored", func(t *testing.T) {
		if _, ok := ResolveCSRF(MetaMap{MetaCSRFParam: "authenticity_token"}); ok {
			t.Error("ResolveCSRF() ok with missing token")
		}
	})
}

func TestClient_Delete_ParamsOnQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		if r.URL.Path != "/observations/7" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("id") != "7" || q.Get("reason") != "dup" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	if _, err := client.Delete(context.Background(), "observations/:id", Params{"id": 7, "reason": "dup"}, RequestOptions{}); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}

func TestClient_Put_EmptyParamsNoQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		if r.URL.RawQuery != "" {
			t.Errorf("query = %s, want empty", r.URL.RawQuery)
		}
		io.WriteString(w, `[{"id":1}]`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result, err := client.Put(context.Background(), "projects/1", nil, RequestOptions{})
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, ok := result.([]any); !ok {
		t.Errorf("result = %T, want []any", result)
	}
}

func TestClient_Head_NoBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("method = %s, want HEAD", r.Method)
		}
		if r.ContentLength != 0 {
			t.Errorf("ContentLength = %d, want 0", r.ContentLength)
		}
		if r.Header.Get("Content-Type") != "" {
			t.Errorf("Content-Type = %q, want empty", r.Header.Get("Content-Type"))
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result, err := client.Head(context.Background(), "observations", Params{"a": 1}, RequestOptions{})
	if err != nil {
		t.Fatalf("Head() error = %v", err)
	}
	if result != nil {
		t.Errorf("result = %v, want nil", result)
	}
}

func TestClient_Upload(t *testing.T) {
	for _, method := range []string{"", "put"} {
		t.Run("method "+method, func(t *testing.T) {
			wantMethod := http.MethodPost
			if method == "put" {
				wantMethod = http.MethodPut
			}

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != wantMethod {
					t.Errorf("method = %s, want %s", r.Method, wantMethod)
				}
				mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
				if err != nil || mediaType != "multipart/form-data" {
					t.Fatalf("Content-Type = %s", r.Header.Get("Content-Type"))
				}
				form, err := multipart.NewReader(r.Body, params["boundary"]).ReadForm(1 << 20)
				if err != nil {
					t.Fatalf("ReadForm() error = %v", err)
				}
				if got := form.Value["observation_photo[observation_id]"]; len(got) != 1 || got[0] != "3" {
					t.Errorf("observation_photo[observation_id] = %v", got)
				}
				files := form.File["file"]
				if len(files) != 1 || files[0].Filename != "bird.jpg" {
					t.Fatalf("file parts = %v", files)
				}
				io.WriteString(w, `{"id":11}`)
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)
			result, err := client.Upload(context.Background(), "observation_photos", Params{
				"observation_photo": map[string]any{"observation_id": 3},
				"file":              CustomUpload{Content: strings.NewReader("jpeg"), Filename: "bird.jpg", ContentType: "image/jpeg"},
			}, RequestOptions{Method: method})
			if err != nil {
				t.Fatalf("Upload() error = %v", err)
			}
			if result.(map[string]any)["id"] != float64(11) {
				t.Errorf("result = %v", result)
			}
		})
	}
}

func TestClient_Upload_PointerValue(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm() error = %v", err)
		}
		f, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile() error = %v", err)
		}
		defer f.Close()
		if header.Filename != "a.jpg" {
			t.Errorf("filename = %q, want a.jpg", header.Filename)
		}
		if content, _ := io.ReadAll(f); string(content) != "JPEGDATA" {
			t.Errorf("content = %q, want JPEGDATA", content)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Upload(context.Background(), "photos", Params{
		"file": &CustomUpload{Content: strings.NewReader("JPEGDATA"), Filename: "a.jpg"},
	}, RequestOptions{})
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
}

func TestClient_Post_UploadValueInJSON(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")
	for name, upload := range map[string]any{
		"value":   CustomUpload{},
		"pointer": &CustomUpload{Filename: "a.jpg"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := client.Post(context.Background(), "photos", Params{"file": upload}, RequestOptions{})
			if !errors.Is(err, errUploadInJSON) {
				t.Errorf("error = %v, want errUploadInJSON", err)
			}
		})
	}
}

func TestClient_WriteHost(t *testing.T) {
	var (
		mu   sync.Mutex
		hits []string
	)
	handler := func(name string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			hits = append(hits, name+r.URL.Path)
			mu.Unlock()
		})
	}
	write := httptest.NewServer(handler("write"))
	defer write.Close()
	override := httptest.NewServer(handler("override"))
	defer override.Close()
	origin := httptest.NewServer(handler("origin"))
	defer origin.Close()

	client, err := New(WithWriteAPIURL(write.URL), WithOrigin(origin.URL))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	client.Post(ctx, "a", nil, RequestOptions{})
	client.Post(ctx, "b", nil, RequestOptions{APIURL: override.URL})
	client.Post(ctx, "c", nil, RequestOptions{SameOrigin: true, APIURL: override.URL})

	want := []string{"write/a", "override/b", "origin/c"}
	mu.Lock()
	defer mu.Unlock()
	if !reflect.DeepEqual(hits, want) {
		t.Errorf("hits = %v, want %v", hits, want)
	}
}

func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	client := newTestClient(t, serverURL)
	_, err := client.Get(context.Background(), "taxa", nil, RequestOptions{})

	var netErr *apierrors.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("error = %T %v, want *NetworkError", err, err)
	}
	if netErr.Method != http.MethodGet {
		t.Errorf("Method = %s, want GET", netErr.Method)
	}
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Get(ctx, "taxa", nil, RequestOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestClient_SingleAttempt(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	if _, err := client.Get(context.Background(), "taxa", nil, RequestOptions{}); err == nil {
		t.Fatal("Get() error = nil, want error")
	}
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Errorf("attempts = %d, want 1", got)
	}
}
