package fetch

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestFromURL(t *testing.T) {
	body := "#EXTM3U\n#EXTINF:-1,Chan\nhttp://example.com/a.m3u8"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	text, err := FromURL(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != body {
		t.Errorf("expected body %q, got %q", body, text)
	}
}

func TestFromURLNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := FromURL(srv.URL); !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
}

func TestFromURLConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Refuses connections from here on

	if _, err := FromURL(srv.URL); !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
}

func TestIsRemote(t *testing.T) {
	tests := []struct {
		source   string
		expected bool
	}{
		{"http://example.com/list.m3u", true},
		{"https://example.com/list.m3u", true},
		{"/tmp/list.m3u", false},
		{"list.m3u", false},
		{"ftp://example.com/list.m3u", false},
	}
	for _, tt := range tests {
		if got := IsRemote(tt.source); got != tt.expected {
			t.Errorf("IsRemote(%q) = %v, expected %v", tt.source, got, tt.expected)
		}
	}
}

func TestLoadLocalFile(t *testing.T) {
	body := "#EXTM3U\n#EXTINF:-1,Chan\nhttp://example.com/a.m3u8"
	path := filepath.Join(t.TempDir(), "list.m3u")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	text, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != body {
		t.Errorf("expected file contents back, got %q", text)
	}
}
