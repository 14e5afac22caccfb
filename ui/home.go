package ui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/maxence-charriere/go-app/v9/pkg/app"

	"gatehouse/monitor"
	"gatehouse/session"
)

type HomePage struct {
	app.Compo

	Resolver session.Resolver

	Status      monitor.SystemStatus
	Loading     bool
	Error       string
	Theme       string
	SidebarOpen bool

	ticker   *time.Ticker
	stopTick chan bool
}

func (h *HomePage) OnMount(ctx app.Context) {
	h.Loading = true

	// Load Theme
	var theme string
	ctx.LocalStorage().Get("theme", &theme)
	if theme == "dark" {
		h.Theme = "dark"
		app.Window().Get("document").Get("body").Get("classList").Call("add", "dark-theme")
	} else {
		h.Theme = "light"
	}

	h.stopTick = make(chan bool)
	h.updateStatus(ctx)

	// Poll host metrics every 5 seconds
	h.ticker = time.NewTicker(5 * time.Second)
	go func() {
		for {
			select {
			case <-h.ticker.C:
				ctx.Dispatch(func(ctx app.Context) {
					h.updateStatus(ctx)
				})
			case <-h.stopTick:
				return
			}
		}
	}()
}

func (h *HomePage) OnDismount() {
	if h.ticker != nil {
		h.ticker.Stop()
		h.stopTick <- true
	}
}

func (h *HomePage) updateStatus(ctx app.Context) {
	go func() {
		resp, err := http.Get("/api/status")
		if err != nil {
			app.Log("Failed to fetch status:", err)
			ctx.Dispatch(func(ctx app.Context) {
				h.Loading = false
				h.Error = "Backend unreachable"
				h.Update()
			})
			return
		}
		defer resp.Body.Close()

		var status monitor.SystemStatus
		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			app.Log("Failed to decode status:", err)
			return
		}

		ctx.Dispatch(func(ctx app.Context) {
			h.Status = status
			h.Loading = false
			h.Error = ""
			h.Update()
		})
	}()
}

func (h *HomePage) logout(ctx app.Context, e app.Event) {
	go func() {
		http.Post("/api/auth/logout", "application/json", nil)
		ctx.Dispatch(func(ctx app.Context) {
			ctx.Navigate("/login")
		})
	}()
}

func (h *HomePage) toggleTheme(ctx app.Context, e app.Event) {
	if h.Theme == "dark" {
		h.Theme = "light"
		app.Window().Get("document").Get("body").Get("classList").Call("remove", "dark-theme")
		ctx.LocalStorage().Set("theme", "light")
	} else {
		h.Theme = "dark"
		app.Window().Get("document").Get("body").Get("classList").Call("add", "dark-theme")
		ctx.LocalStorage().Set("theme", "dark")
	}
	h.Update()
}

func (h *HomePage) toggleSidebar(ctx app.Context, e app.Event) {
	h.SidebarOpen = !h.SidebarOpen
	h.Update()
}

func (h *HomePage) closeSidebar(ctx app.Context, e app.Event) {
	if h.SidebarOpen {
		h.SidebarOpen = false
		h.Update()
	}
}

func (h *HomePage) username() string {
	if h.Resolver == nil {
		return ""
	}
	st := h.Resolver.Status()
	if st.User == nil {
		return ""
	}
	return st.User.Username
}

func (h *HomePage) Render() app.UI {
	return app.Div().Class("app-layout").Body(
		&Navbar{
			Username:      h.username(),
			Hostname:      h.Status.Hostname,
			Uptime:        h.Status.UptimeString,
			Active:        "dashboard",
			Theme:         h.Theme,
			IsOpen:        h.SidebarOpen,
			OnToggleTheme: h.toggleTheme,
			OnLogout:      h.logout,
		},
		app.If(h.SidebarOpen,
			app.Div().Class("sidebar-overlay").OnClick(h.closeSidebar),
		),

		app.Main().Class("main-content").Body(
			app.Header().Class("top-bar").Body(
				app.Div().Style("display", "flex").Style("align-items", "center").Style("gap", "12px").Body(
					app.Button().
						Class("btn-icon mobile-menu-btn").
						OnClick(h.toggleSidebar).
						Body(
							app.Span().Class("material-symbols-rounded").Text("menu"),
						),
					app.Div().Body(
						app.H1().Class("page-title").Text("System Dashboard"),
						app.Span().Class("page-subtitle").Text(h.Status.Platform),
					),
				),
			),

			app.If(h.Loading,
				&LoadingView{Message: "Contacting server..."},
			).ElseIf(h.Error != "",
				app.Div().Class("auth-error").Text(h.Error),
			).Else(
				app.Div().Class("stats-grid").Body(
					&StatCard{
						Title:    "CPU",
						Value:    fmt.Sprintf("%.1f%%", h.Status.CPUPercent),
						SubKey:   "Processes:",
						SubValue: fmt.Sprintf("%d", h.Status.Procs),
						Icon:     "speed",
						Alert:    h.Status.CPUPercent > 90,
					},
					&StatCard{
						Title:    "Memory",
						Value:    fmt.Sprintf("%.1f%%", h.Status.MemUsedPercent),
						SubKey:   "Used:",
						SubValue: formatSize(int64(h.Status.MemUsed)) + " of " + formatSize(int64(h.Status.MemTotal)),
						Icon:     "memory",
						Alert:    h.Status.MemUsedPercent > 90,
					},
					&StatCard{
						Title:    "Uptime",
						Value:    h.Status.UptimeString,
						SubKey:   "Host:",
						SubValue: h.Status.Hostname,
						Icon:     "schedule",
					},
				),
			),
		),
	)
}

func formatSize(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
