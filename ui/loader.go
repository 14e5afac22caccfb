package ui

import "github.com/maxence-charriere/go-app/v9/pkg/app"

// Loader is the fullscreen spinner with a short line under it.
type Loader struct {
	app.Compo
	Message string
}

func (l *Loader) Render() app.UI {
	msg := l.Message
	if msg == "" {
		msg = "Loading..."
	}
	return app.Div().Class("loader-container").Body(
		app.Div().Class("spinner").Body(
			app.Div().Class("double-bounce1"),
			app.Div().Class("double-bounce2"),
		),
		app.Div().Class("loader-text").Text(msg),
	)
}
