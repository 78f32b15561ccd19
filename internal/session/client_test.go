package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_GetSession(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/session/ses_1" {
			t.Errorf("path = %s, want /session/ses_1", r.URL.Path)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("X-Request-Id header is empty")
		}
		_ = json.NewEncoder(w).Encode(Session{ID: "ses_1", ParentID: "ses_0", Title: "feature work"})
	}))
	defer srv.Close()

	sess, err := NewClient(srv.URL, nil).GetSession(context.Background(), "ses_1")
	if err != nil {
		t.Fatalf("GetSession() error: %v", err)
	}
	if sess.ID != "ses_1" || sess.ParentID != "ses_0" || sess.Title != "feature work" {
		t.Errorf("GetSession() = %+v", sess)
	}
}

func TestClient_GetSession_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil).GetSession(context.Background(), "ses_missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSession() error = %v, want ErrNotFound", err)
	}
}

func TestClient_ForkSession(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/session/ses_1/fork" {
			t.Errorf("path = %s, want /session/ses_1/fork", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(Session{ID: "ses_2", ParentID: "ses_1"})
	}))
	defer srv.Close()

	forked, err := NewClient(srv.URL, nil).ForkSession(context.Background(), "ses_1")
	if err != nil {
		t.Fatalf("ForkSession() error: %v", err)
	}
	if forked.ID != "ses_2" {
		t.Errorf("forked.ID = %q, want ses_2", forked.ID)
	}
}

func TestClient_DeleteSession(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL, nil).DeleteSession(context.Background(), "ses_1"); err != nil {
		t.Fatalf("DeleteSession() error: %v", err)
	}
}

func TestClient_DeleteSession_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL, nil).DeleteSession(context.Background(), "ses_1"); err == nil {
		t.Error("DeleteSession() = nil error, want failure")
	}
}

func TestClient_AppendLog(t *testing.T) {
	t.Parallel()

	var got struct {
		Level   string `json:"level"`
		Message string `json:"message"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/session/ses_1/log" {
			t.Errorf("path = %s, want /session/ses_1/log", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, nil).AppendLog(context.Background(), "ses_1", "worktree ready")
	if err != nil {
		t.Fatalf("AppendLog() error: %v", err)
	}
	if got.Level != "info" || got.Message != "worktree ready" {
		t.Errorf("log body = %+v", got)
	}
}

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		name        string
		hostEnv     string
		serverEnv   string
		settingsURL string
		want        string
	}{
		{"host env wins", "http://host:1", "http://server:2", "http://cfg:3", "http://host:1"},
		{"server env second", "", "http://server:2", "http://cfg:3", "http://server:2"},
		{"settings third", "", "", "http://cfg:3", "http://cfg:3"},
		{"default last", "", "", "", DefaultBaseURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvHostURL, tt.hostEnv)
			t.Setenv(EnvServerURL, tt.serverEnv)
			if got := ResolveBaseURL(tt.settingsURL); got != tt.want {
				t.Errorf("ResolveBaseURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
