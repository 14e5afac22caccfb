package ui

import (
	"github.com/maxence-charriere/go-app/v9/pkg/app"

	"gatehouse/session"
)

// DefaultRedirect is where denied visitors land when the page does not
// say otherwise.
const DefaultRedirect = "/"

// Decision is what AuthGate does with its children.
type Decision int

const (
	// DecisionResolving keeps the session placeholder up.
	DecisionResolving Decision = iota
	// DecisionDenied renders nothing; the resolver handles the redirect.
	DecisionDenied
	// DecisionGranted renders the children untouched.
	DecisionGranted
)

// Decide maps a session status onto a render decision. Resolution in
// flight outranks everything else, an absent user denies, anything
// remaining grants.
func Decide(st session.Status) Decision {
	if st.Loading {
		return DecisionResolving
	}
	if st.User == nil {
		return DecisionDenied
	}
	return DecisionGranted
}

// AuthGate wraps a page only signed-in visitors may see. While the
// resolver works it shows a placeholder; when the visitor turns out to
// be anonymous it renders nothing and the resolver sends them to
// RedirectTo (DefaultRedirect when empty).
//
// Resolution has no timeout on purpose: an unreachable auth backend
// keeps the placeholder up instead of flashing a protected page or
// bouncing a signed-in visitor to the login screen.
type AuthGate struct {
	app.Compo

	Resolver   session.Resolver
	RedirectTo string
	Children   app.UI

	stop func()
}

func (g *AuthGate) OnMount(ctx app.Context) {
	if g.Resolver == nil {
		return
	}
	g.stop = g.watch(func() {
		ctx.Dispatch(func(ctx app.Context) {
			g.Update()
		})
	})
}

// watch subscribes to the resolver with the gate's redirect target.
func (g *AuthGate) watch(notify func()) (stop func()) {
	return g.Resolver.Watch(g.redirect(), notify)
}

func (g *AuthGate) redirect() string {
	if g.RedirectTo == "" {
		return DefaultRedirect
	}
	return g.RedirectTo
}

func (g *AuthGate) OnDismount() {
	if g.stop != nil {
		g.stop()
		g.stop = nil
	}
}

func (g *AuthGate) Render() app.UI {
	if g.Resolver == nil {
		return app.Text("")
	}

	switch Decide(g.Resolver.Status()) {
	case DecisionResolving:
		return &Loader{Message: "Checking session..."}
	case DecisionDenied:
		return app.Text("")
	default:
		if g.Children == nil {
			return app.Text("")
		}
		return g.Children
	}
}
