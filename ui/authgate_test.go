package ui

import (
	"testing"

	"github.com/maxence-charriere/go-app/v9/pkg/app"

	"gatehouse/session"
)

type fakeResolver struct {
	status   session.Status
	fallback string
	watches  int
	stops    int
	onChange func()
}

func (f *fakeResolver) Watch(fallback string, onChange func()) (stop func()) {
	f.watches++
	f.fallback = fallback
	f.onChange = onChange
	return func() { f.stops++ }
}

func (f *fakeResolver) Status() session.Status { return f.status }

func TestDecide(t *testing.T) {
	alice := &session.Identity{Username: "alice"}

	cases := []struct {
		name   string
		status session.Status
		want   Decision
	}{
		{"loading", session.Status{Loading: true}, DecisionResolving},
		{"loading with stale user", session.Status{User: alice, Loading: true}, DecisionResolving},
		{"nobody signed in", session.Status{}, DecisionDenied},
		{"signed in", session.Status{User: alice}, DecisionGranted},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Decide(c.status); got != c.want {
				t.Errorf("Decide(%+v) = %v, want %v", c.status, got, c.want)
			}
		})
	}
}

func TestGateRedirectTarget(t *testing.T) {
	g := &AuthGate{}
	if got := g.redirect(); got != DefaultRedirect {
		t.Errorf("empty RedirectTo resolved to %q, want %q", got, DefaultRedirect)
	}

	g.RedirectTo = "/login"
	if got := g.redirect(); got != "/login" {
		t.Errorf("redirect() = %q, want /login", got)
	}
}

func TestGateWatchPassesTarget(t *testing.T) {
	f := &fakeResolver{status: session.Status{Loading: true}}
	g := &AuthGate{Resolver: f, RedirectTo: "/login"}

	stop := g.watch(func() {})
	defer stop()

	if f.watches != 1 {
		t.Fatalf("resolver watched %d times, want 1", f.watches)
	}
	if f.fallback != "/login" {
		t.Errorf("resolver got fallback %q, want /login", f.fallback)
	}
}

func TestGateWatchDefaultsTarget(t *testing.T) {
	f := &fakeResolver{status: session.Status{Loading: true}}
	g := &AuthGate{Resolver: f}

	stop := g.watch(func() {})
	defer stop()

	if f.fallback != DefaultRedirect {
		t.Errorf("resolver got fallback %q, want %q", f.fallback, DefaultRedirect)
	}
}

func TestGateRenderResolving(t *testing.T) {
	f := &fakeResolver{status: session.Status{Loading: true}}
	g := &AuthGate{Resolver: f, Children: app.Div()}

	if _, ok := g.Render().(*Loader); !ok {
		t.Error("resolving gate should render the loader placeholder")
	}
}

func TestGateRenderDenied(t *testing.T) {
	f := &fakeResolver{}
	children := app.Div().Class("secret")
	g := &AuthGate{Resolver: f, Children: children}

	got := g.Render()
	if got == nil {
		t.Fatal("Render returned nil")
	}
	if got == app.UI(children) {
		t.Error("denied gate leaked its children")
	}
	if _, ok := got.(*Loader); ok {
		t.Error("denied gate should not show the loader")
	}
}

func TestGateRenderGranted(t *testing.T) {
	f := &fakeResolver{status: session.Status{User: &session.Identity{Username: "alice"}}}
	children := app.Div().Class("secret")
	g := &AuthGate{Resolver: f, Children: children}

	if got := g.Render(); got != app.UI(children) {
		t.Error("granted gate must render the children it was given")
	}
}

func TestGateRenderWithoutChildren(t *testing.T) {
	f := &fakeResolver{status: session.Status{User: &session.Identity{Username: "alice"}}}
	g := &AuthGate{Resolver: f}

	if got := g.Render(); got == nil {
		t.Error("gate without children must still render something")
	}
}

func TestGateRenderWithoutResolver(t *testing.T) {
	g := &AuthGate{Children: app.Div()}
	if got := g.Render(); got == nil {
		t.Error("gate without a resolver must still render something")
	}
}

func TestGateStopsWatchOnDismount(t *testing.T) {
	f := &fakeResolver{status: session.Status{Loading: true}}
	g := &AuthGate{Resolver: f}

	g.stop = g.watch(func() {})
	g.OnDismount()

	if f.stops != 1 {
		t.Fatalf("stop called %d times, want 1", f.stops)
	}

	// A second dismount must not stop twice.
	g.OnDismount()
	if f.stops != 1 {
		t.Errorf("stop called %d times after repeat dismount, want 1", f.stops)
	}
}
