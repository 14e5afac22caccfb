package ui

import (
	"encoding/json"
	"net/http"

	"github.com/maxence-charriere/go-app/v9/pkg/app"

	"gatehouse/logger"
	"gatehouse/monitor"
	"gatehouse/session"
)

type ActivityPage struct {
	app.Compo

	Resolver session.Resolver

	Entries     []logger.Entry
	Status      monitor.SystemStatus
	Loading     bool
	Error       string
	Theme       string
	SidebarOpen bool
}

func (p *ActivityPage) OnMount(ctx app.Context) {
	var theme string
	ctx.LocalStorage().Get("theme", &theme)
	if theme == "dark" {
		p.Theme = "dark"
		app.Window().Get("document").Get("body").Get("classList").Call("add", "dark-theme")
	} else {
		p.Theme = "light"
	}

	p.loadEntries(ctx)
	p.loadSystemStatus(ctx)
}

func (p *ActivityPage) loadEntries(ctx app.Context) {
	p.Loading = true
	p.Update()

	go func() {
		resp, err := http.Get("/api/logs")
		if err != nil {
			ctx.Dispatch(func(ctx app.Context) {
				p.Error = "Failed to fetch activity: " + err.Error()
				p.Loading = false
				p.Update()
			})
			return
		}
		defer resp.Body.Close()

		var entries []logger.Entry
		if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
			ctx.Dispatch(func(ctx app.Context) {
				p.Error = "Failed to decode activity: " + err.Error()
				p.Loading = false
				p.Update()
			})
			return
		}

		ctx.Dispatch(func(ctx app.Context) {
			p.Entries = entries
			p.Loading = false
			p.Update()
		})
	}()
}

func (p *ActivityPage) loadSystemStatus(ctx app.Context) {
	go func() {
		resp, err := http.Get("/api/status")
		if err != nil {
			return
		}
		defer resp.Body.Close()

		var status monitor.SystemStatus
		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			return
		}

		ctx.Dispatch(func(ctx app.Context) {
			p.Status = status
			p.Update()
		})
	}()
}

func (p *ActivityPage) logout(ctx app.Context, e app.Event) {
	go func() {
		http.Post("/api/auth/logout", "application/json", nil)
		ctx.Dispatch(func(ctx app.Context) {
			ctx.Navigate("/login")
		})
	}()
}

func (p *ActivityPage) toggleTheme(ctx app.Context, e app.Event) {
	if p.Theme == "dark" {
		p.Theme = "light"
		app.Window().Get("document").Get("body").Get("classList").Call("remove", "dark-theme")
		ctx.LocalStorage().Set("theme", "light")
	} else {
		p.Theme = "dark"
		app.Window().Get("document").Get("body").Get("classList").Call("add", "dark-theme")
		ctx.LocalStorage().Set("theme", "dark")
	}
	p.Update()
}

func (p *ActivityPage) toggleSidebar(ctx app.Context, e app.Event) {
	p.SidebarOpen = !p.SidebarOpen
	p.Update()
}

func (p *ActivityPage) closeSidebar(ctx app.Context, e app.Event) {
	if p.SidebarOpen {
		p.SidebarOpen = false
		p.Update()
	}
}

func (p *ActivityPage) username() string {
	if p.Resolver == nil {
		return ""
	}
	st := p.Resolver.Status()
	if st.User == nil {
		return ""
	}
	return st.User.Username
}

func levelColor(level string) string {
	switch level {
	case "ERROR":
		return "var(--md-sys-color-error)"
	case "WARN":
		return "#FBC02D"
	default:
		return "var(--md-sys-color-on-surface)"
	}
}

func (p *ActivityPage) Render() app.UI {
	return app.Div().Class("app-layout").Body(
		&Navbar{
			Username:      p.username(),
			Hostname:      p.Status.Hostname,
			Uptime:        p.Status.UptimeString,
			Active:        "activity",
			Theme:         p.Theme,
			IsOpen:        p.SidebarOpen,
			OnToggleTheme: p.toggleTheme,
			OnLogout:      p.logout,
		},
		app.If(p.SidebarOpen,
			app.Div().Class("sidebar-overlay").OnClick(p.closeSidebar),
		),

		app.Main().Class("main-content").Body(
			app.Header().Class("top-bar").Body(
				app.Div().Style("display", "flex").Style("align-items", "center").Style("gap", "12px").Body(
					app.Button().
						Class("btn-icon mobile-menu-btn").
						OnClick(p.toggleSidebar).
						Body(
							app.Span().Class("material-symbols-rounded").Text("menu"),
						),
					app.Div().Body(
						app.H1().Class("page-title").Text("Activity"),
						app.Span().Class("page-subtitle").Text("Recent sign-ins and server events"),
					),
				),
			),

			app.If(p.Loading,
				&LoadingView{Message: "Fetching activity..."},
			).ElseIf(p.Error != "",
				app.Div().Class("auth-error").Text(p.Error),
			).Else(
				app.Div().Class("repo-panel").Style("margin-top", "24px").Body(
					app.Table().Body(
						app.THead().Body(
							app.Tr().Body(
								app.Th().Style("width", "180px").Text("Time"),
								app.Th().Style("width", "80px").Text("Level"),
								app.Th().Text("Message"),
								app.Th().Style("width", "20%").Text("Details"),
							),
						),
						app.TBody().Body(
							app.Range(p.Entries).Slice(func(i int) app.UI {
								e := p.Entries[i]
								return app.Tr().Class("table-row").Style("display", "table-row").Body(
									app.Td().Text(e.CreatedAt.Format("2006-01-02 15:04:05")),
									app.Td().Style("color", levelColor(e.Level)).Style("font-weight", "500").Text(e.Level),
									app.Td().Text(e.Message),
									app.Td().Style("font-family", "monospace").Style("font-size", "12px").Text(e.Details),
								)
							}),
							app.If(len(p.Entries) == 0,
								app.Tr().Body(
									app.Td().ColSpan(4).Style("text-align", "center").Style("padding", "24px").Text("Nothing recorded yet"),
								),
							),
						),
					),
				),
			),
		),
	)
}
