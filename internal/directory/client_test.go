package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopline/order-system/internal/model"
)

func TestGetUserByID_OK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/api/users/100" {
			t.Fatalf("path = %s, want /api/users/100", r.URL.Path)
		}

		resp := model.User{
			ID:     100,
			Name:   "Alice",
			Email:  "alice@example.com",
			Status: model.UserStatusActive,
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer ts.Close()

	client := NewClient(ts.URL, time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	user, err := client.GetUserByID(ctx, 100)
	if err != nil {
		t.Fatalf("GetUserByID error: %v", err)
	}
	if user.ID != 100 || user.Name != "Alice" || user.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestGetUserByEmail_OK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/email/a@x.com" {
			t.Fatalf("path = %s, want /api/users/email/a@x.com", r.URL.Path)
		}

		resp := model.User{ID: 1, Name: "A", Email: "a@x.com"}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, time.Second)

	user, err := client.GetUserByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("GetUserByEmail error: %v", err)
	}
	if user.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestGetUserByID_NonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, time.Second)

	if _, err := client.GetUserByID(context.Background(), 5); err == nil {
		t.Fatalf("expected error for 404 response")
	}
}

func TestGetUserByID_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, 50*time.Millisecond)

	start := time.Now()
	_, err := client.GetUserByID(context.Background(), 5)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if elapsed > 250*time.Millisecond {
		t.Fatalf("call took %v, want bounded by the client timeout", elapsed)
	}
}

func TestGetUserByID_NotConfigured(t *testing.T) {
	var client *Client

	if _, err := client.GetUserByID(context.Background(), 1); err == nil {
		t.Fatalf("expected error for nil client")
	}
}

func TestFallbackDeterministic(t *testing.T) {
	a := FallbackUserByID(100)
	b := FallbackUserByID(100)

	if *a != *b {
		t.Fatalf("fallback by id must be deterministic: %+v vs %+v", a, b)
	}
	if a.ID != 100 || a.Name != UnknownUserName || a.Email != UnknownUserEmail {
		t.Fatalf("unexpected fallback profile: %+v", a)
	}

	e := FallbackUserByEmail("a@x.com")
	if e.ID != 0 || e.Name != UnknownUserName || e.Email != "a@x.com" {
		t.Fatalf("unexpected fallback profile by email: %+v", e)
	}
}
