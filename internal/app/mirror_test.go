package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/samvad-hq/todo-client/internal/config"
	"github.com/samvad-hq/todo-client/internal/domain"
	"github.com/samvad-hq/todo-client/pkg/todo/todotest"
)

// sink counts the events a webhook receives.
type sink struct {
	*httptest.Server
	mu     sync.Mutex
	bodies []string
}

func newSink() *sink {
	s := &sink{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.bodies = append(s.bodies, string(raw))
		s.mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	}))
	return s
}

func (s *sink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bodies)
}

func testConfig(t *testing.T, baseURL, sinkURL string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	pubFile := filepath.Join(dir, "publishers.yaml")
	content := "publishers:\n  - id: hook\n    type: http\n    http:\n      url: " + sinkURL + "\n"
	if err := os.WriteFile(pubFile, []byte(content), 0o644); err != nil {
		t.Fatalf("write publishers file: %v", err)
	}
	return &config.Config{
		AppName:                "todo-client",
		BaseURL:                baseURL,
		UserAgent:              "todo-client/test",
		HTTPTimeout:            5 * time.Second,
		PublishersFile:         pubFile,
		MirrorInterval:         time.Hour,
		StorageType:            "bbolt",
		BBoltPath:              filepath.Join(dir, "mirror.db"),
		StorageTTL:             time.Hour,
		StorageCleanupInterval: time.Hour,
	}
}

func TestMirrorRunOnceDeliversOnlyNewVersions(t *testing.T) {
	api := todotest.NewServer()
	defer api.Close()
	hook := newSink()
	defer hook.Close()

	m, err := NewMirror(context.Background(), testConfig(t, api.BaseURL(), hook.URL), nil)
	if err != nil {
		t.Fatalf("NewMirror: %v", err)
	}
	defer m.Close()

	res, err := m.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	if res.Fetched != todotest.FixtureSize || res.Published != todotest.FixtureSize {
		t.Fatalf("unexpected first pass %+v", res)
	}

	res, err = m.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if res.Published != 0 {
		t.Fatalf("expected nothing new on second pass, got %+v", res)
	}

	api.Set(domain.Todo{UserID: 1, ID: 1, Title: "delectus aut autem", Completed: true})
	res, err = m.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("third pass: %v", err)
	}
	if res.Published != 1 {
		t.Fatalf("expected the changed todo only, got %+v", res)
	}
	if hook.count() != todotest.FixtureSize+1 {
		t.Fatalf("sink received %d events", hook.count())
	}

	reqs := api.Requests()
	if got := reqs[0].Header.Get("User-Agent"); got != "todo-client/test" {
		t.Fatalf("User-Agent = %q", got)
	}
}

func TestMirrorRunStopsOnCancel(t *testing.T) {
	api := todotest.NewServer()
	defer api.Close()
	hook := newSink()
	defer hook.Close()

	m, err := NewMirror(context.Background(), testConfig(t, api.BaseURL(), hook.URL), nil)
	if err != nil {
		t.Fatalf("NewMirror: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for hook.count() < todotest.FixtureSize && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
	if hook.count() != todotest.FixtureSize {
		t.Fatalf("expected initial pass to deliver every todo, got %d", hook.count())
	}
}

func TestNewMirrorRequiresPublishers(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1/todos", "http://127.0.0.1:1/hook")
	cfg.PublishersFile = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := NewMirror(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected error for missing publishers file")
	}
	if _, err := NewMirror(context.Background(), nil, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}
