package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"
)

type sleepRecorder struct {
	delays []time.Duration
}

func (r *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return nil
}

func TestFetchText_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET, got %s", r.Method)
		}
		if r.Header.Get("Cache-Control") != "no-store" {
			t.Errorf("Expected no-store cache header, got %q", r.Header.Get("Cache-Control"))
		}
		w.Write([]byte("hello"))
	}))
	defer srv.Close()

	rec := &sleepRecorder{}
	c := New(srv.URL, time.Second, WithSleep(rec.sleep))

	body, err := c.FetchText(context.Background(), srv.URL, 3)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if body != "hello" {
		t.Errorf("Expected body 'hello', got %q", body)
	}
	if len(rec.delays) != 0 {
		t.Errorf("Expected no backoff on first success, got %v", rec.delays)
	}
}

func TestFetchText_RetryExhaustion(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	rec := &sleepRecorder{}
	c := New(srv.URL, time.Second, WithSleep(rec.sleep))

	_, err := c.FetchText(context.Background(), srv.URL, 3)
	if err == nil {
		t.Fatal("Expected error after exhausting attempts, got nil")
	}

	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("Expected 3 attempts, got %d", got)
	}

	want := []time.Duration{400 * time.Millisecond, 800 * time.Millisecond}
	if len(rec.delays) != len(want) {
		t.Fatalf("Expected delays %v, got %v", want, rec.delays)
	}
	for i := range want {
		if rec.delays[i] != want[i] {
			t.Errorf("Delay %d = %v, want %v", i, rec.delays[i], want[i])
		}
	}

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("Expected NetworkError, got %T: %v", err, err)
	}
	if netErr.Attempts != 3 {
		t.Errorf("Expected 3 attempts recorded, got %d", netErr.Attempts)
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusInternalServerError {
		t.Errorf("Expected last error to be HTTP 500, got %v", err)
	}
}

func TestFetchText_RecoversAfterFailure(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	rec := &sleepRecorder{}
	c := New(srv.URL, time.Second, WithSleep(rec.sleep))

	body, err := c.FetchText(context.Background(), srv.URL, 2)
	if err != nil {
		t.Fatalf("Expected success on second attempt, got %v", err)
	}
	if body != "ok" {
		t.Errorf("Expected body 'ok', got %q", body)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("Expected 2 attempts, got %d", got)
	}
	if len(rec.delays) != 1 || rec.delays[0] != 400*time.Millisecond {
		t.Errorf("Expected a single 400ms delay, got %v", rec.delays)
	}
}

func TestFetchText_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	target := srv.URL
	srv.Close()

	rec := &sleepRecorder{}
	c := New(target, time.Second, WithSleep(rec.sleep))

	_, err := c.FetchText(context.Background(), target, 2)
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("Expected NetworkError for closed server, got %v", err)
	}
	if len(rec.delays) != 1 {
		t.Errorf("Expected one backoff delay, got %v", rec.delays)
	}
}

func TestFetchJSON_ParseErrorNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, WithSleep((&sleepRecorder{}).sleep))

	var v map[string]any
	err := c.FetchJSON(context.Background(), srv.URL, 3, &v)

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected ParseError, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("Expected a single request for malformed JSON, got %d", got)
	}
}

func TestSearchURL(t *testing.T) {
	c := New("https://hn.algolia.com/api/v1/search", time.Second)

	u, err := url.Parse(c.SearchURL("Claude 3"))
	if err != nil {
		t.Fatalf("Failed to parse search URL: %v", err)
	}

	q := u.Query()
	if q.Get("query") != "Claude 3" {
		t.Errorf("Expected query 'Claude 3', got %q", q.Get("query"))
	}
	if q.Get("tags") != "story" {
		t.Errorf("Expected tags 'story', got %q", q.Get("tags"))
	}
	if q.Get("hitsPerPage") != "100" {
		t.Errorf("Expected hitsPerPage 100, got %q", q.Get("hitsPerPage"))
	}
	if u.Host != "hn.algolia.com" || u.Path != "/api/v1/search" {
		t.Errorf("Unexpected base URL: %s", u.String())
	}
}

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") != "Gemini" {
			t.Errorf("Expected query Gemini, got %q", r.URL.Query().Get("query"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"hits":[{"title":"Gemini 2","url":"https://deepmind.google/gemini","objectID":"1"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	hits, err := c.Search(context.Background(), "Gemini", 2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(hits) != 1 || hits[0].Title != "Gemini 2" {
		t.Errorf("Unexpected hits: %+v", hits)
	}
}

func TestFetchText_ContextCancelledDuringBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	c := New(srv.URL, time.Second, WithSleep(func(ctx context.Context, d time.Duration) error {
		cancel()
		return sleepCtx(ctx, d)
	}))

	_, err := c.FetchText(ctx, srv.URL, 3)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
