package fetch

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGet(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write([]byte("<html>ok</html>"))
	}))
	defer server.Close()

	client := NewWithDelay(0)
	body, err := client.Get(server.URL)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if body != "<html>ok</html>" {
		t.Errorf("unexpected body: %q", body)
	}
	if gotUserAgent != UserAgent {
		t.Errorf("expected User-Agent %q, got %q", UserAgent, gotUserAgent)
	}
}

func TestGetNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewWithDelay(0)
	if _, err := client.Get(server.URL); err == nil {
		t.Error("expected an error for a 404 response")
	}
}

func TestGetAppliesDelayBeforeRequest(t *testing.T) {
	requested := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = true
	}))
	defer server.Close()

	client := NewWithDelay(250 * time.Millisecond)
	var slept time.Duration
	client.sleep = func(d time.Duration) {
		if requested {
			t.Error("delay must be applied before the request, not after")
		}
		slept = d
	}

	if _, err := client.Get(server.URL); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if slept != 250*time.Millisecond {
		t.Errorf("expected a %v sleep, got %v", 250*time.Millisecond, slept)
	}
}
