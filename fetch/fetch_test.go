package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFetchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.obo")
	if err := os.WriteFile(path, []byte("format-version: 1.2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewClient()

	t.Run("absolute", func(t *testing.T) {
		data, err := c.Fetch(context.Background(), path, "")
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if !strings.Contains(string(data), "format-version") {
			t.Errorf("unexpected content: %q", data)
		}
	})

	t.Run("relative to baseDir", func(t *testing.T) {
		data, err := c.Fetch(context.Background(), "test.obo", dir)
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if len(data) == 0 {
			t.Error("empty content")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := c.Fetch(context.Background(), "missing.obo", dir); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestFetchHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"graphs":[]}`))
	}))
	defer srv.Close()

	c := NewClient()
	data, err := c.Fetch(context.Background(), srv.URL, "")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(data) != `{"graphs":[]}` {
		t.Errorf("unexpected body: %q", data)
	}
}

func TestFetchHTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient()
	if _, err := c.Fetch(context.Background(), srv.URL, ""); err == nil {
		t.Error("expected error for 404")
	}
}

func TestFetchHTTPHonorsContextDeadline(t *testing.T) {
	blocked := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer srv.Close()
	defer close(blocked)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := NewClient()
	if _, err := c.Fetch(ctx, srv.URL, ""); err == nil {
		t.Error("expected deadline error")
	}
}
