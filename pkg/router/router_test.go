package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/luminabooks/lumina/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestNamedRouteURL(t *testing.T) {
	r := router.New()
	r.Get("/api/books/{id}", "books.show", ok)

	url, err := r.URL("books.show", map[string]string{"id": "abc123"})
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if url != "/api/books/abc123" {
		t.Errorf("url = %q", url)
	}

	if _, err := r.URL("books.show", nil); err == nil {
		t.Error("expected error for missing params")
	}
	if _, err := r.URL("nope", nil); err == nil {
		t.Error("expected error for unknown route")
	}
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	var order []string
	mw := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	api := r.Group("/api", mw("outer"))
	books := api.Group("/books", mw("inner"))
	books.Get("/{id}", "books.show", ok, mw("route"))

	req := httptest.NewRequest(http.MethodGet, "/api/books/1", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(order) != 3 || order[0] != "outer" || order[1] != "inner" || order[2] != "route" {
		t.Errorf("middleware order = %v", order)
	}
}

func TestRoutesSorted(t *testing.T) {
	r := router.New()
	r.Post("/b", "b.store", ok)
	r.Get("/a", "a.index", ok)
	r.Get("/b", "b.index", ok)

	infos := r.Routes()
	if len(infos) != 3 {
		t.Fatalf("len = %d", len(infos))
	}
	if infos[0].Path != "/a" {
		t.Errorf("first path = %q", infos[0].Path)
	}
	if infos[1].Method != http.MethodGet || infos[2].Method != http.MethodPost {
		t.Errorf("same-path routes not sorted by method: %v", infos[1:])
	}
}
