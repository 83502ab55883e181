package main

import (
	"context"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/magcp/community/internal/attachments"
	"github.com/magcp/community/internal/auth"
	"github.com/magcp/community/internal/config"
	"github.com/magcp/community/internal/handlers"
	"github.com/magcp/community/internal/middleware"
	"github.com/magcp/community/internal/state"
	"github.com/magcp/community/internal/store/sqlstore"
	"github.com/magcp/community/internal/ws"
)

func main() {
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	auth.SetSecretKey(cfg.SessionKey)

	kv, err := sqlstore.New("sqlite3", cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	defer kv.Close()

	app := state.New(kv, log)
	registry := attachments.NewRegistry()

	hub := ws.NewHub(app, log)
	app.Subscribe(hub.Notify)
	go hub.Run()

	authHandler := &handlers.AuthHandler{App: app}
	chatHandler := &handlers.ChatHandler{App: app}
	adminHandler := &handlers.AdminHandler{App: app}
	routeHandler := &handlers.RouteHandler{App: app}
	attachmentHandler := &handlers.AttachmentHandler{Registry: registry}

	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware(log))

	// API Endpoints
	r.HandleFunc("/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	r.HandleFunc("/auth/oauth", authHandler.OAuth).Methods("POST")
	r.HandleFunc("/session", authHandler.Session).Methods("GET")

	r.HandleFunc("/users", adminHandler.ListUsers).Methods("GET")
	r.Handle("/users/{id}", middleware.AuthMiddleware(http.HandlerFunc(adminHandler.EditUser))).Methods("PATCH")
	r.Handle("/users/{id}", middleware.AuthMiddleware(http.HandlerFunc(adminHandler.DeleteUser))).Methods("DELETE")

	r.HandleFunc("/messages", chatHandler.GetMessages).Methods("GET")
	r.Handle("/messages", middleware.AuthMiddleware(http.HandlerFunc(chatHandler.SendMessage))).Methods("POST")

	r.HandleFunc("/route", routeHandler.GetRoute).Methods("GET")
	r.HandleFunc("/route", routeHandler.SetRoute).Methods("PUT")

	r.Handle("/attachments", middleware.AuthMiddleware(http.HandlerFunc(attachmentHandler.Upload))).Methods("POST")
	r.HandleFunc("/attachments/{id}", attachmentHandler.Serve).Methods("GET")

	// WebSocket Endpoint
	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(auth.CookieName)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		userID, err := auth.VerifySession(cookie.Value)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		ws.ServeWs(hub, w, r, userID)
	})

	// Serve the bundled frontend.
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir)))

	log.Info().Str("addr", cfg.Addr).Msg("starting server")
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
