package main

import (
	"net/http"

	"github.com/akarpov/minefield/internal/middleware"
)

func buildHandler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/status", handleStatus)

	mux.HandleFunc("POST /v1/game", handleNewGame)
	mux.HandleFunc("GET /v1/game/{id}", handleGetGame)
	mux.HandleFunc("POST /v1/game/{id}/open", handleOpen)
	mux.HandleFunc("POST /v1/game/{id}/flag", handleFlag)
	mux.HandleFunc("POST /v1/game/{id}/restart", handleRestart)

	mux.HandleFunc("/v1/game/{id}/connect", handleConnectWs)

	return middleware.Wrap(mux,
		middleware.Cors(),
		middleware.Logging(log),
	)
}
