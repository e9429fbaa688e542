package httpx

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestChainOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mark("outer"), nil, mark("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got := strings.Join(order, ","); got != "outer,inner,handler" {
		t.Fatalf("order = %q", got)
	}
}

func TestChainNilHandler(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Chain(nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestRequireMethod(t *testing.T) {
	t.Parallel()

	h := RequireMethod(http.MethodGet, http.MethodHead)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	tests := map[string]int{
		http.MethodGet:  http.StatusNoContent,
		http.MethodHead: http.StatusNoContent,
		http.MethodPost: http.StatusMethodNotAllowed,
	}
	for method, want := range tests {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(method, "/static/site.css", nil))
		if rr.Code != want {
			t.Fatalf("%s status = %d, want %d", method, rr.Code, want)
		}
		if want == http.StatusMethodNotAllowed && rr.Header().Get("Allow") != "GET, HEAD" {
			t.Fatalf("Allow = %q", rr.Header().Get("Allow"))
		}
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "missing", incoming: "", keep: false},
		{name: "well formed", incoming: "edge-42.a_b", keep: true},
		{name: "injected", incoming: "id\" onload=x", keep: false},
		{name: "too long", incoming: strings.Repeat("a", 65), keep: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var seen string
			h := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				seen = RequestIDFrom(r)
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.incoming != "" {
				req.Header.Set(RequestIDHeader, tc.incoming)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			got := rr.Header().Get(RequestIDHeader)
			if got != seen {
				t.Fatalf("response id %q != request id %q", got, seen)
			}
			if tc.keep && got != tc.incoming {
				t.Fatalf("id = %q, want %q", got, tc.incoming)
			}
			if !tc.keep && (!strings.HasPrefix(got, "req-") || len(got) != len("req-")+16) {
				t.Fatalf("minted id = %q", got)
			}
		})
	}
}

func TestRecoverPanic(t *testing.T) {
	prev := log.Writer()
	defer log.SetOutput(prev)
	var logs bytes.Buffer
	log.SetOutput(&logs)

	h := RecoverPanic()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	line := logs.String()
	for _, marker := range []string{"method=POST", "path=/", "request_id=req-1", "panic=boom"} {
		if !strings.Contains(line, marker) {
			t.Fatalf("log missing %q: %q", marker, line)
		}
	}
}

func TestRecoverPanicRepanicsAbort(t *testing.T) {
	t.Parallel()

	h := RecoverPanic()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	defer func() {
		if recover() != http.ErrAbortHandler {
			t.Fatal("expected ErrAbortHandler to propagate")
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestCacheControl(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	CacheControl("no-store")(http.NotFoundHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := rr.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("Cache-Control = %q", got)
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	if err := WriteJSON(rr, http.StatusForbidden, map[string]any{"success": false}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json; charset=utf-8" {
		t.Fatalf("Content-Type = %q", got)
	}
	if got := rr.Body.String(); got != "{\"success\":false}\n" {
		t.Fatalf("body = %q", got)
	}
}

func TestWriteJSONUnencodable(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	if err := WriteJSON(rr, http.StatusOK, make(chan int)); err == nil {
		t.Fatal("expected error")
	}
	if rr.Body.Len() != 0 {
		t.Fatalf("body written: %q", rr.Body.String())
	}
}

func TestWantsJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers map[string]string
		want    bool
	}{
		{name: "form post", headers: map[string]string{"Accept": "text/html"}, want: false},
		{name: "json accept", headers: map[string]string{"Accept": "Application/JSON, text/plain"}, want: true},
		{name: "xhr", headers: map[string]string{"X-Requested-With": "XMLHttpRequest"}, want: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			for key, value := range tc.headers {
				req.Header.Set(key, value)
			}
			if got := WantsJSON(req); got != tc.want {
				t.Fatalf("WantsJSON() = %t, want %t", got, tc.want)
			}
		})
	}
	if WantsJSON(nil) {
		t.Fatal("WantsJSON(nil) = true")
	}
}

func TestRequestContextNil(t *testing.T) {
	t.Parallel()

	if RequestContext(nil) == nil {
		t.Fatal("RequestContext(nil) = nil")
	}
}
