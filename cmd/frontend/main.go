package main

import (
	"github.com/maxence-charriere/go-app/v9/pkg/app"

	"gatehouse/session"
	"gatehouse/ui"
)

func main() {
	resolver := session.NewClient(session.BrowserNavigate)

	app.Route("/", &ui.AuthGate{
		Resolver:   resolver,
		RedirectTo: "/login",
		Children:   &ui.HomePage{Resolver: resolver},
	})
	app.Route("/activity", &ui.AuthGate{
		Resolver:   resolver,
		RedirectTo: "/login",
		Children:   &ui.ActivityPage{Resolver: resolver},
	})
	app.Route("/login", &ui.LoginPage{})
	app.Route("/register", &ui.RegisterPage{})

	app.RunWhenOnBrowser()
}
