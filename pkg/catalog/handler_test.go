package catalog

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

func TestHandlerSearch(t *testing.T) {
	h := Handler(New(sample()), WithLimits(1, 10))

	req := httptest.NewRequest(http.MethodGet, "/options?q=post", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff([]string{"1"}, ids(resp.Data)); diff != "" {
		t.Fatalf("data (-want +got):\n%s", diff)
	}
	if resp.Total != 4 {
		t.Fatalf("expected total 4, got %d", resp.Total)
	}
}

func TestHandlerLimitClamp(t *testing.T) {
	h := Handler(New(sample()), WithLimits(2, 3))
	req := httptest.NewRequest(http.MethodGet, "/options?limit=50", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 3 {
		t.Fatalf("expected 3 results, got %d", len(resp.Data))
	}
}

func TestHandlerMethodAndGuard(t *testing.T) {
	h := Handler(New(sample()), WithGuard(func(r *http.Request) error {
		if r.Header.Get("X-Token") == "" {
			return StatusError{Code: http.StatusUnauthorized, Err: errors.New("missing token")}
		}
		return nil
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/options", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/options", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodHead, "/options", nil)
	req.Header.Set("X-Token", "t")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Fatalf("expected empty 200 for HEAD, got %d (%d bytes)", rec.Code, rec.Body.Len())
	}
}
