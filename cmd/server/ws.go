package main

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/akarpov/minefield/internal/config"
)

var ws = config.NewWebSocket()

// handleConnectWs speaks the newline-separated text command protocol over a
// websocket; every message is a batch of commands answered with the updated
// session snapshot. A malformed command closes the connection.
func handleConnectWs(w http.ResponseWriter, r *http.Request) {
	session, ok := fetchSession(w, r)
	if !ok {
		return
	}
	c, err := ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("upgrade: ", err)
		return
	}
	defer c.Close()
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				log.Warn("read: ", err)
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		text := strings.TrimSpace(string(message))
		log.Debug("\t> ", text)

		session.mu.Lock()
		for _, line := range byPiece(text, "\n") {
			if err := executeCommand(session, line); err != nil {
				log.Error("command: ", err)
				session.mu.Unlock()
				return
			}
			if session.finishIfOver() {
				break
			}
		}
		err = c.WriteJSON(session)
		session.mu.Unlock()
		if err != nil {
			log.Error("write: ", err)
			break
		}
		log.Debug("\t< <session data>")
	}
}
