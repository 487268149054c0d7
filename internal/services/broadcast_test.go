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

func broadcastServer() (*httptest.Server, *[]domain.UpdateMessage, *sync.Mutex) {
	var mu sync.Mutex
	msgs := []domain.UpdateMessage{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/extra/update":
			json.NewEncoder(w).Encode(msgs)
		case r.Method == http.MethodPost && r.URL.Path == "/api/extra/update":
			var body struct {
				Msg string `json:"msg"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			m := domain.UpdateMessage{ID: "m" + string(rune('1'+len(msgs))), Msg: body.Msg}
			msgs = append(msgs, m)
			json.NewEncoder(w).Encode(m)
		case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/api/extra/update/delete/"):
			id := strings.TrimPrefix(r.URL.Path, "/api/extra/update/delete/")
			for i := range msgs {
				if msgs[i].ID == id {
					msgs = append(msgs[:i], msgs[i+1:]...)
					break
				}
			}
			w.Write([]byte(`{}`))
		default:
			http.NotFound(w, r)
		}
	}))
	return srv, &msgs, &mu
}

func TestBroadcastPostAndOrdering(t *testing.T) {
	srv, _, _ := broadcastServer()
	defer srv.Close()

	b := services.NewBroadcast(remote.New(srv.URL))

	if err := b.Post(context.Background(), "   "); !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput for blank message, got %v", err)
	}

	if err := b.Post(context.Background(), "first"); err != nil {
		t.Fatal(err)
	}
	if err := b.Post(context.Background(), "second"); err != nil {
		t.Fatal(err)
	}

	got := b.Messages()
	if len(got) != 2 {
		t.Fatalf("messages = %+v", got)
	}
	// Feed renders newest first.
	if got[0].Msg != "second" || got[1].Msg != "first" {
		t.Fatalf("ordering = %q, %q", got[0].Msg, got[1].Msg)
	}
}

func TestBroadcastDeleteRemovesLocally(t *testing.T) {
	srv, _, _ := broadcastServer()
	defer srv.Close()

	b := services.NewBroadcast(remote.New(srv.URL))
	if err := b.Post(context.Background(), "only"); err != nil {
		t.Fatal(err)
	}
	id := b.Messages()[0].ID
	if err := b.Delete(context.Background(), id); err != nil {
		t.Fatal(err)
	}
	if len(b.Messages()) != 0 {
		t.Fatalf("messages = %+v", b.Messages())
	}
}
