package main

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/maxence-charriere/go-app/v9/pkg/app"

	"gatehouse/auth"
	"gatehouse/config"
	"gatehouse/logger"
	"gatehouse/monitor"
	"gatehouse/session"
	"gatehouse/ui"
)

func statusHandler(w http.ResponseWriter, r *http.Request) {
	status, err := monitor.CheckSystem()
	if err != nil {
		http.Error(w, "Failed to get system status: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

func logsHandler(w http.ResponseWriter, r *http.Request) {
	logger.Debug("activity requested by %s", auth.UserFrom(r))

	entries, err := logger.GetLogs(100)
	if err != nil {
		http.Error(w, "Failed to get activity: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("bad configuration: %v", err)
	}
	logger.Setup(cfg.LogLevel, nil)

	auth.Configure(cfg.JWTSecret, cfg.TokenTTL)
	if err := auth.InitDB(cfg); err != nil {
		logger.Fatal("failed to init database: %v", err)
	}
	logger.Init(auth.DB)

	// Routes must mirror the wasm build so prerendering resolves them.
	// The server-side resolver never navigates.
	resolver := session.NewClient(nil)
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

	handler := &app.Handler{
		Name:        "Gatehouse",
		Description: "Host dashboard behind a session gate",
		Version:     "v1",
		RawHeaders: []string{
			`<link href="https://fonts.googleapis.com/css2?family=Roboto:wght@400;500;700&display=swap" rel="stylesheet">`,
			`<link rel="stylesheet" href="https://fonts.googleapis.com/css2?family=Material+Symbols+Rounded:opsz,wght,FILL,GRAD@24,400,0,0" />`,
			`<link href="https://fonts.googleapis.com/css2?family=Outfit:wght@300;400;600&display=swap" rel="stylesheet">`,
		},
		LoadingLabel: "",
		Styles: []string{
			"/web/app.css",
		},
	}

	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/register", auth.HandleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", auth.HandleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", auth.HandleMe).Methods(http.MethodGet)
	api.HandleFunc("/auth/logout", auth.HandleLogout).Methods(http.MethodPost)
	api.HandleFunc("/auth/config", auth.HandleAuthConfig).Methods(http.MethodGet)

	api.HandleFunc("/status", auth.Protect(statusHandler)).Methods(http.MethodGet)
	api.HandleFunc("/logs", auth.Protect(logsHandler)).Methods(http.MethodGet)

	// Everything else is the PWA shell.
	r.PathPrefix("/").Handler(handler)

	logger.Info("starting gatehouse on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, logger.Requests(r)); err != nil {
		logger.Fatal("server stopped: %v", err)
	}
}
