package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"nepmartadmin/internal/domain"
	"nepmartadmin/internal/remote"
	"nepmartadmin/internal/services"
)

// fakeCatalog serves the two product collections and records create bodies.
type fakeCatalog struct {
	mu       sync.Mutex
	data     []domain.Product
	custom   []domain.Product
	created  []domain.Product
	updated  []domain.Product
	requests int
	failAll  bool
}

func (f *fakeCatalog) serve() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.requests++
		if f.failAll {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/products/data":
			json.NewEncoder(w).Encode(f.data)
		case r.Method == http.MethodGet && r.URL.Path == "/api/products/custom":
			json.NewEncoder(w).Encode(f.custom)
		case r.Method == http.MethodPost:
			var p domain.Product
			json.NewDecoder(r.Body).Decode(&p)
			f.created = append(f.created, p)
			json.NewEncoder(w).Encode(p)
		case r.Method == http.MethodPut:
			var p domain.Product
			json.NewDecoder(r.Body).Decode(&p)
			f.updated = append(f.updated, p)
			json.NewEncoder(w).Encode(p)
		case r.Method == http.MethodDelete:
			w.Write([]byte(`{}`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func validInput() services.ProductInput {
	return services.ProductInput{
		Name:        "Keyboard",
		Description: "Mechanical",
		Price:       "2500",
		Category:    "tech",
		Stock:       "10",
	}
}

func TestCreateSubstitutesFallbackImage(t *testing.T) {
	f := &fakeCatalog{}
	srv := f.serve()
	defer srv.Close()

	cat := services.NewCatalog(remote.New(srv.URL))
	if err := cat.Create(context.Background(), domain.KindData, validInput()); err != nil {
		t.Fatal(err)
	}

	f.mu.Lock()
	created := f.created
	f.mu.Unlock()
	if len(created) != 1 {
		t.Fatalf("created %d products", len(created))
	}
	if created[0].ImageURL != domain.FallbackImageURL {
		t.Fatalf("url = %q, want fallback", created[0].ImageURL)
	}
	if created[0].Category != "tech" || created[0].Price != 2500 || created[0].Stock != 10 {
		t.Fatalf("record = %+v", created[0])
	}
}

func TestCreateCustomForcesCategory(t *testing.T) {
	f := &fakeCatalog{}
	srv := f.serve()
	defer srv.Close()

	cat := services.NewCatalog(remote.New(srv.URL))
	in := validInput()
	in.Category = "tech" // ignored for the custom kind
	in.ImageURL = "https://example.test/x.png"
	if err := cat.Create(context.Background(), domain.KindCustom, in); err != nil {
		t.Fatal(err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.created[0].Category != "custom" {
		t.Fatalf("category = %q, want custom", f.created[0].Category)
	}
	if f.created[0].ImageURL != "https://example.test/x.png" {
		t.Fatalf("supplied url replaced: %q", f.created[0].ImageURL)
	}
}

func TestCreateValidatesBeforeAnyRequest(t *testing.T) {
	f := &fakeCatalog{}
	srv := f.serve()
	defer srv.Close()

	cat := services.NewCatalog(remote.New(srv.URL))

	cases := []func(*services.ProductInput){
		func(in *services.ProductInput) { in.Name = "" },
		func(in *services.ProductInput) { in.Description = "" },
		func(in *services.ProductInput) { in.Price = "" },
		func(in *services.ProductInput) { in.Price = "-5" },
		func(in *services.ProductInput) { in.Stock = "lots" },
		func(in *services.ProductInput) { in.Category = "furniture" },
	}
	for i, mutate := range cases {
		in := validInput()
		mutate(&in)
		if err := cat.Create(context.Background(), domain.KindData, in); !errors.Is(err, services.ErrInvalidInput) {
			t.Fatalf("case %d: want ErrInvalidInput, got %v", i, err)
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.requests != 0 {
		t.Fatalf("%d requests issued for invalid input", f.requests)
	}
}

func TestLoadIndependentPerKind(t *testing.T) {
	f := &fakeCatalog{
		data: []domain.Product{{ID: "p1", Name: "Radio", Category: "tech"}},
	}
	srv := f.serve()
	defer srv.Close()

	cat := services.NewCatalog(remote.New(srv.URL))
	dataErr, customErr := cat.LoadAll(context.Background())
	if dataErr != nil || customErr != nil {
		t.Fatalf("load: %v / %v", dataErr, customErr)
	}
	if got := cat.Products(domain.KindData); len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("data = %+v", got)
	}
	if got := cat.Products(domain.KindCustom); len(got) != 0 {
		t.Fatalf("custom = %+v", got)
	}

	// A dead store fails both kinds but clears lists instead of panicking.
	srv.Close()
	dataErr, customErr = cat.LoadAll(context.Background())
	if dataErr == nil || customErr == nil {
		t.Fatal("want errors after server close")
	}
	if len(cat.Products(domain.KindData)) != 0 {
		t.Fatal("failed load should clear the list")
	}
}

func TestUpdateReplacesLocalRecord(t *testing.T) {
	f := &fakeCatalog{
		data: []domain.Product{
			{ID: "p1", Name: "Radio", Category: "tech"},
			{ID: "p2", Name: "Lamp", Category: "tech"},
		},
	}
	srv := f.serve()
	defer srv.Close()

	cat := services.NewCatalog(remote.New(srv.URL))
	if _, err := cat.Load(context.Background(), domain.KindData); err != nil {
		t.Fatal(err)
	}

	in := validInput()
	in.Name = "Radio v2"
	if err := cat.Update(context.Background(), domain.KindData, "p1", in); err != nil {
		t.Fatal(err)
	}

	got := cat.Products(domain.KindData)
	if got[0].Name != "Radio v2" {
		t.Fatalf("record not replaced: %+v", got[0])
	}
	if got[1].Name != "Lamp" {
		t.Fatalf("other record touched: %+v", got[1])
	}
}

func TestDeleteFailureLeavesCatalog(t *testing.T) {
	f := &fakeCatalog{
		data: []domain.Product{{ID: "p1", Name: "Radio", Category: "tech"}},
	}
	srv := f.serve()
	defer srv.Close()

	cat := services.NewCatalog(remote.New(srv.URL))
	if _, err := cat.Load(context.Background(), domain.KindData); err != nil {
		t.Fatal(err)
	}

	f.mu.Lock()
	f.failAll = true
	f.mu.Unlock()
	if err := cat.Delete(context.Background(), domain.KindData, "p1"); err == nil {
		t.Fatal("want error from failed delete")
	}
	if len(cat.Products(domain.KindData)) != 1 {
		t.Fatal("list changed after failed delete")
	}

	f.mu.Lock()
	f.failAll = false
	f.mu.Unlock()
	if err := cat.Delete(context.Background(), domain.KindData, "p1"); err != nil {
		t.Fatal(err)
	}
	if len(cat.Products(domain.KindData)) != 0 {
		t.Fatal("record not removed after successful delete")
	}
}
