package session

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func meServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func waitSignal(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestStatusInitiallyLoading(t *testing.T) {
	c := NewClient(nil)
	st := c.Status()
	if !st.Loading {
		t.Error("new client should be loading")
	}
	if st.User != nil {
		t.Error("new client should have no user")
	}
}

func TestWatchResolvesIdentity(t *testing.T) {
	srv := meServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"username":"alice"}`)
	})

	c := NewClient(nil)
	c.base = srv.URL

	notified := make(chan struct{}, 1)
	stop := c.Watch("/", func() { notified <- struct{}{} })
	defer stop()

	waitSignal(t, notified, "status change")

	st := c.Status()
	if st.Loading {
		t.Error("still loading after resolution")
	}
	if st.User == nil || st.User.Username != "alice" {
		t.Errorf("user = %+v, want alice", st.User)
	}
}

func TestWatchDeniedRedirects(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"unauthorized", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		}},
		{"empty username", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"username":""}`)
		}},
		{"garbage body", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{`)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := meServer(t, tc.handler)

			navs := make(chan string, 1)
			c := NewClient(func(path string) { navs <- path })
			c.base = srv.URL

			notified := make(chan struct{}, 1)
			stop := c.Watch("/login", func() { notified <- struct{}{} })
			defer stop()

			waitSignal(t, notified, "status change")

			select {
			case path := <-navs:
				if path != "/login" {
					t.Errorf("redirected to %q, want /login", path)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("no redirect happened")
			}

			st := c.Status()
			if st.Loading || st.User != nil {
				t.Errorf("status = %+v, want settled denial", st)
			}
		})
	}
}

func TestConnectionErrorDenies(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // every request now fails to connect

	navs := make(chan string, 1)
	c := NewClient(func(path string) { navs <- path })
	c.base = srv.URL

	notified := make(chan struct{}, 1)
	stop := c.Watch("/", func() { notified <- struct{}{} })
	defer stop()

	waitSignal(t, notified, "status change")

	select {
	case path := <-navs:
		if path != "/" {
			t.Errorf("redirected to %q, want /", path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no redirect happened")
	}
}

func TestWatchCoalescesConcurrentMounts(t *testing.T) {
	release := make(chan struct{})
	var calls int32
	srv := meServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		<-release
		fmt.Fprint(w, `{"username":"alice"}`)
	})

	c := NewClient(nil)
	c.base = srv.URL

	first := make(chan struct{}, 1)
	second := make(chan struct{}, 1)
	stop1 := c.Watch("/", func() { first <- struct{}{} })
	defer stop1()
	stop2 := c.Watch("/", func() { second <- struct{}{} })
	defer stop2()

	close(release)
	waitSignal(t, first, "first watcher")
	waitSignal(t, second, "second watcher")

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("made %d requests, want 1", n)
	}
}

func TestStopSilencesWatcher(t *testing.T) {
	release := make(chan struct{})
	srv := meServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	})

	navs := make(chan string, 1)
	c := NewClient(func(path string) { navs <- path })
	c.base = srv.URL

	notified := make(chan struct{}, 1)
	stop := c.Watch("/", func() { notified <- struct{}{} })
	stop()
	close(release)

	// The redirect still runs; it signals that resolution is finished.
	select {
	case <-navs:
	case <-time.After(2 * time.Second):
		t.Fatal("resolution never finished")
	}

	select {
	case <-notified:
		t.Error("stopped watcher was notified")
	default:
	}
}

func TestRewatchAfterDenialRefetches(t *testing.T) {
	release := make(chan struct{})
	var calls int32
	srv := meServer(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		<-release
		fmt.Fprint(w, `{"username":"alice"}`)
	})

	c := NewClient(nil)
	c.base = srv.URL

	first := make(chan struct{}, 1)
	stop1 := c.Watch("/login", func() { first <- struct{}{} })
	waitSignal(t, first, "first resolution")
	stop1()

	if st := c.Status(); st.User != nil {
		t.Fatalf("expected denial, got %+v", st)
	}

	second := make(chan struct{}, 1)
	stop2 := c.Watch("/login", func() { second <- struct{}{} })
	defer stop2()

	if st := c.Status(); !st.Loading {
		t.Error("rewatch should resolve afresh")
	}

	close(release)
	waitSignal(t, second, "second resolution")

	st := c.Status()
	if st.User == nil || st.User.Username != "alice" {
		t.Errorf("user = %+v, want alice", st.User)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("made %d requests, want 2", n)
	}
}
