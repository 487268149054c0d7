package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"nepmartadmin/internal/domain"
	"nepmartadmin/internal/remote"
	"nepmartadmin/internal/services"
)

func directoryServer(users []domain.User) (*httptest.Server, *int, *sync.Mutex) {
	deletes := 0
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/extra/users":
			json.NewEncoder(w).Encode(users)
		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/extra/users/"):
			mu.Lock()
			deletes++
			mu.Unlock()
			w.Write([]byte(`{}`))
		default:
			http.NotFound(w, r)
		}
	}))
	return srv, &deletes, &mu
}

func TestDeleteRequiresConfirmationPhrase(t *testing.T) {
	users := []domain.User{{ID: "u1", UserName: "Alice"}, {ID: "u2", UserName: "Bob"}}
	srv, deletes, mu := directoryServer(users)
	defer srv.Close()

	dir := services.NewDirectory(remote.New(srv.URL))
	if err := dir.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Anything but the phrase keeps the store untouched.
	for _, confirm := range []string{"", "remove", "del", "deletes"} {
		if err := dir.Delete(context.Background(), "u1", confirm); !errors.Is(err, services.ErrConfirmMismatch) {
			t.Fatalf("confirm %q: want ErrConfirmMismatch, got %v", confirm, err)
		}
	}
	mu.Lock()
	if *deletes != 0 {
		t.Fatalf("%d deletes issued without confirmation", *deletes)
	}
	mu.Unlock()

	// The phrase is case-insensitive and tolerant of whitespace.
	for i, confirm := range []string{"delete", "DELETE", " Delete "} {
		id := []string{"u1", "u2", "u2"}[i]
		if err := dir.Delete(context.Background(), id, confirm); err != nil {
			t.Fatalf("confirm %q: %v", confirm, err)
		}
	}

	if got := dir.Users(); len(got) != 0 {
		t.Fatalf("users remaining = %+v", got)
	}
}

func TestDirectoryLoadFailureClearsList(t *testing.T) {
	srv, _, _ := directoryServer([]domain.User{{ID: "u1", UserName: "Alice"}})

	dir := services.NewDirectory(remote.New(srv.URL))
	if err := dir.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(dir.Users()) != 1 {
		t.Fatal("expected one user")
	}

	srv.Close()
	if err := dir.Load(context.Background()); err == nil {
		t.Fatal("want error from dead store")
	}
	if len(dir.Users()) != 0 {
		t.Fatal("stale users kept after failed load")
	}
}
