package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/gridtext/pkg/cache"
	"github.com/matzehuels/gridtext/pkg/errors"
	"github.com/matzehuels/gridtext/pkg/httputil"
	"github.com/matzehuels/gridtext/pkg/observability"
	"github.com/matzehuels/gridtext/pkg/pipeline"
)

// Two paragraphs: "hi there" / "you all" at the origin and "far off" /
// "text" at column 30.
const body = `{"grid":{"cells":{
	"0,0":"h","1,0":"i","3,0":"t","4,0":"h","5,0":"e","6,0":"r","7,0":"e",
	"0,1":"y","1,1":"o","2,1":"u","4,1":"a","5,1":"l","6,1":"l",
	"30,0":"f","31,0":"a","32,0":"r","34,0":"o","35,0":"f","36,0":"f",
	"30,1":"t","31,1":"e","32,1":"x","33,1":"t"
}}%s}`

func request(opts string) string {
	if opts == "" {
		return strings.Replace(body, "%s", "", 1)
	}
	return strings.Replace(body, "%s", `,"options":`+opts, 1)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	ts := httptest.NewServer(New(pipeline.NewRunner(c, nil, nil)).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var h HealthResponse
	decodeBody(t, resp, &h)
	if h.Status != "ok" {
		t.Errorf("status = %q", h.Status)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	ts := newTestServer(t)
	const id = "5f1b7d2e-8c3a-4e9b-a1d0-3c6f2b8e9a7d"
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("request id = %q, want %q", got, id)
	}

	req.Header.Set(RequestIDHeader, "not-a-uuid")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if got := resp2.Header.Get(RequestIDHeader); got == "not-a-uuid" || got == "" {
		t.Errorf("invalid id should be replaced, got %q", got)
	}
}

func TestBlocks(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts, "/v1/blocks", request(""))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out BlocksResponse
	decodeBody(t, resp, &out)
	if out.Count != 4 || len(out.Lines) != 2 {
		t.Fatalf("got %d blocks on %d lines, want 4 on 2", out.Count, len(out.Lines))
	}
	if out.Lines[0].Y != 0 || out.Lines[1].Y != 1 {
		t.Errorf("lines not ascending: %+v", out.Lines)
	}
}

func TestBlocksGapThresholdOption(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts, "/v1/blocks", request(`{"gap_threshold":1}`))
	var out BlocksResponse
	decodeBody(t, resp, &out)
	if out.Count != 8 {
		t.Errorf("count = %d, want 8 with single-space splits", out.Count)
	}
}

func TestClusters(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts, "/v1/clusters", request(""))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out ClustersResponse
	decodeBody(t, resp, &out)
	if len(out.Clusters) != 2 {
		t.Fatalf("clusters = %d, want 2", len(out.Clusters))
	}
	if out.Coverage != 1 {
		t.Errorf("coverage = %v, want 1", out.Coverage)
	}
}

func TestFramesCacheHeader(t *testing.T) {
	ts := newTestServer(t)
	first := post(t, ts, "/v1/frames", request(""))
	if first.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", first.StatusCode)
	}
	if got := first.Header.Get("X-Cache"); got != "MISS" {
		t.Errorf("first X-Cache = %q", got)
	}
	second := post(t, ts, "/v1/frames", request(""))
	if got := second.Header.Get("X-Cache"); got != "HIT" {
		t.Errorf("second X-Cache = %q", got)
	}
	var out map[string]any
	decodeBody(t, second, &out)
	if _, ok := out["levels"]; !ok {
		t.Errorf("frames body missing levels: %v", out)
	}
}

func TestLabels(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts, "/v1/labels", request(`{"headline_words":2}`))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out LabelsResponse
	decodeBody(t, resp, &out)
	if len(out.Labels) != 2 {
		t.Fatalf("labels = %d, want 2", len(out.Labels))
	}
	if out.Labels[0].Text != "Hi There" {
		t.Errorf("label = %q", out.Labels[0].Text)
	}
}

func TestRender(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts, "/v1/render/svg", request(""))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   errors.Code
	}{
		{"bad json", "/v1/blocks", `{`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown field", "/v1/blocks", `{"grid":{"cells":{}},"extra":1}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"missing grid", "/v1/clusters", `{}`, http.StatusBadRequest, errors.ErrCodeInvalidGrid},
		{"bad key", "/v1/clusters", `{"grid":{"cells":{"x":"a"}}}`, http.StatusBadRequest, errors.ErrCodeInvalidKey},
		{"bad viewport", "/v1/frames", request(`{"viewport":{"minX":5,"maxX":1}}`), http.StatusBadRequest, errors.ErrCodeInvalidViewport},
		{"bad format", "/v1/render/gif", request(""), http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"no route", "/v1/nope", `{}`, http.StatusNotFound, errors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts, tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var out httputil.ErrorBody
			decodeBody(t, resp, &out)
			if out.Error.Code != tt.code {
				t.Errorf("code = %s, want %s", out.Error.Code, tt.code)
			}
		})
	}
}

type recordingAPIHooks struct {
	observability.NoopAPIHooks
	mu     sync.Mutex
	routes []string
}

func (h *recordingAPIHooks) OnResponse(_ context.Context, method, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, method+" "+route)
}

func TestAPIHooks(t *testing.T) {
	hooks := &recordingAPIHooks{}
	observability.SetAPIHooks(hooks)
	t.Cleanup(observability.Reset)

	ts := newTestServer(t)
	post(t, ts, "/v1/render/dot", request(""))

	// The hook fires after the handler returns, which may be after the
	// client has the response.
	var routes []string
	for deadline := time.Now().Add(2 * time.Second); time.Now().Before(deadline); time.Sleep(10 * time.Millisecond) {
		hooks.mu.Lock()
		routes = append(routes[:0], hooks.routes...)
		hooks.mu.Unlock()
		if len(routes) > 0 {
			break
		}
	}
	if len(routes) != 1 || routes[0] != "POST /v1/render/{format}" {
		t.Errorf("routes = %v", routes)
	}
}
