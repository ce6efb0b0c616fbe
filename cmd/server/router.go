package main

import (
	"net/http"

	"github.com/akarpov/minesweeper-ai/internal/middleware"
)

func buildHandler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/register", handleRegister)
	mux.HandleFunc("POST /v1/login", handleLogin)
	mux.HandleFunc("POST /v1/logout", handleLogout)
	mux.HandleFunc("GET /v1/status", handleStatus)

	mux.HandleFunc("GET /v1/records", handleGetRecords)
	mux.HandleFunc("GET /v1/myrecords", handleGetOwnRecords)

	mux.HandleFunc("POST /v1/game", handleNewGame)
	mux.HandleFunc("GET /v1/game/{id}", handleGetGame)
	mux.HandleFunc("POST /v1/game/{id}/open", handleOpen)
	mux.HandleFunc("POST /v1/game/{id}/flag", handleFlag)
	mux.HandleFunc("GET /v1/game/{id}/hint", handleHint)
	mux.HandleFunc("POST /v1/game/{id}/step", handleStep)
	mux.HandleFunc("POST /v1/game/{id}/solve", handleSolve)

	mux.HandleFunc("/v1/game/{id}/connect", handleConnectWs)

	return middleware.Wrap(mux,
		middleware.Cors(),
		middleware.Auth(jwt),
		middleware.Logging(log),
	)
}
