package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MohamedTawfiq30/dmorder/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestNamedRouteLookup(t *testing.T) {
	r := router.New()
	r.Get("/o/{slug}", "storefront.show", ok)

	path, found := r.Path("storefront.show")
	if !found {
		t.Fatal("expected storefront.show to be registered")
	}
	if path != "/o/{slug}" {
		t.Errorf("path = %q, want /o/{slug}", path)
	}

	if _, found := r.Path("nope"); found {
		t.Error("unknown route name should not resolve")
	}
}

func TestURLBuilder(t *testing.T) {
	r := router.New()
	r.Get("/api/products/{id}", "products.show", ok)

	url, err := r.URL("products.show", map[string]string{"id": "abc123"})
	if err != nil {
		t.Fatal(err)
	}
	if url != "/api/products/abc123" {
		t.Errorf("url = %q", url)
	}

	if _, err := r.URL("products.show", nil); err == nil {
		t.Error("expected error for missing param")
	}
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	var sawMiddleware bool
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sawMiddleware = true
			next.ServeHTTP(w, r)
		})
	}

	r := router.New()
	api := r.Group("/api", mw)
	api.Get("/orders", "orders.index", ok)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !sawMiddleware {
		t.Error("group middleware did not run")
	}
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	r.Get("/health", "health", ok)
	r.Post("/api/auth/login", "auth.login", ok)

	infos := r.Routes()
	if len(infos) != 2 {
		t.Fatalf("len(infos) = %d, want 2", len(infos))
	}

	byName := map[string]string{}
	for _, ri := range infos {
		byName[ri.Name] = ri.Method + " " + ri.Path
	}
	if byName["auth.login"] != "POST /api/auth/login" {
		t.Errorf("auth.login = %q", byName["auth.login"])
	}
}
