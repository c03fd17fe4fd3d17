package cacheservice

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestClient_Clear(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != ClearPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer s3cret" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"deleted": 7, "took_ms": 12}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "s3cret", nil, 5*time.Second, nil)
	deleted, err := c.Clear(context.Background())
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if deleted != 7 {
		t.Errorf("expected 7, got %d", deleted)
	}
	if calls.Load() != 1 {
		t.Errorf("expected exactly one request, got %d", calls.Load())
	}
}

func TestClient_ClearFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		errMsg string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom", errMsg: "returned 500"},
		{name: "unauthorized", status: http.StatusUnauthorized, body: "", errMsg: "returned 401"},
		{name: "malformed json", status: http.StatusOK, body: "{deleted", errMsg: "decode"},
		{name: "negative count", status: http.StatusOK, body: `{"deleted": -1}`, errMsg: "invalid deleted count"},
		{name: "fractional count", status: http.StatusOK, body: `{"deleted": 1.5}`, errMsg: "invalid deleted count"},
		{name: "string count", status: http.StatusOK, body: `{"deleted": "7"}`, errMsg: "decode"},
		{name: "bool count", status: http.StatusOK, body: `{"deleted": true}`, errMsg: "decode"},
		{name: "overflowing count", status: http.StatusOK, body: `{"deleted": 1e30}`, errMsg: "invalid deleted count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, "", nil, time.Second, nil).Clear(context.Background())
			if err == nil {
				t.Fatalf("expected error containing %q", tt.errMsg)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
			}
			if calls.Load() != 1 {
				t.Errorf("expected no retries, got %d requests", calls.Load())
			}
		})
	}
}

func TestClient_MissingCountIsZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	deleted, err := NewClient(srv.URL, "", nil, time.Second, nil).Clear(context.Background())
	if err != nil || deleted != 0 {
		t.Errorf("expected 0, nil; got %d, %v", deleted, err)
	}
}

func TestClient_CountFormats(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"null count", `{"deleted": null}`, 0},
		{"whole float", `{"deleted": 12.0}`, 12},
		{"exponent", `{"deleted": 1e3}`, 1000},
		{"above int32", `{"deleted": 3000000000}`, 3000000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			deleted, err := NewClient(srv.URL, "", nil, time.Second, nil).Clear(context.Background())
			if err != nil {
				t.Fatalf("Clear failed: %v", err)
			}
			if deleted != tt.want {
				t.Errorf("got %d, want %d", deleted, tt.want)
			}
		})
	}
}

type failingDoer struct{}

func (failingDoer) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("dial tcp: connection refused")
}

func TestClient_TransportError(t *testing.T) {
	_, err := NewClient("http://deck.invalid", "", failingDoer{}, 0, nil).Clear(context.Background())
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("expected transport error, got %v", err)
	}
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("unexpected Authorization header")
		}
		w.Write([]byte(`{"deleted": 0}`))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL, "  ", nil, time.Second, nil).Clear(context.Background()); err != nil {
		t.Fatal(err)
	}
}
