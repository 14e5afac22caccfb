package ui

import (
	"github.com/maxence-charriere/go-app/v9/pkg/app"
)

type StatCard struct {
	app.Compo
	Title    string
	Value    string
	SubKey   string
	SubValue string
	Icon     string
	Alert    bool
}

func (c *StatCard) Render() app.UI {
	subColor := ""
	if c.Alert {
		subColor = "var(--md-sys-color-error)"
	}

	return app.Div().Class("stat-card").Body(
		app.Div().Class("stat-card-icon").Body(
			app.Span().Class("material-symbols-rounded").Text(c.Icon),
		),
		app.Div().Class("stat-label").Text(c.Title),
		app.Div().Class("stat-value").Text(c.Value),
		app.Div().Class("stat-sub").
			Style("color", subColor).
			Text(c.SubKey+" "+c.SubValue),
	)
}
