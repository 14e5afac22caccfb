// Package session resolves who is signed in. The UI treats it as the
// single source of truth: components watch a Resolver instead of poking
// the auth API themselves.
package session

import (
	"github.com/maxence-charriere/go-app/v9/pkg/app"
)

// Identity describes the signed-in account.
type Identity struct {
	Username string `json:"username"`
}

// Status is a point-in-time view of the visitor's session. Loading is
// true while resolution is still in flight; a nil User afterwards means
// nobody is signed in.
type Status struct {
	User    *Identity
	Loading bool
}

// Resolver reports the visitor's identity asynchronously.
type Resolver interface {
	// Watch registers onChange and triggers resolution. onChange fires
	// when the status changes. When resolution concludes that nobody is
	// signed in, the resolver navigates to fallback. The returned stop
	// function unregisters the callback; stopped watchers are never
	// called again.
	Watch(fallback string, onChange func()) (stop func())
	// Status returns the current view.
	Status() Status
}

// NavigateFunc sends the browser somewhere else.
type NavigateFunc func(path string)

// BrowserNavigate is the NavigateFunc wired up in the wasm build.
func BrowserNavigate(path string) {
	app.Window().Get("location").Set("href", path)
}
