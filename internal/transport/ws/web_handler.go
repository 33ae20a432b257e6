package ws

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/gorilla/websocket"

	"github.com/favour-22/alx-polly/internal/logger"
	"github.com/favour-22/alx-polly/pkg"
)

type WebHandler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	log      logger.Logger

	secret         string
	allowedOrigins []string
}

func NewWebHandler(hub *Hub, log logger.Logger, secret string, allowedOrigins []string) *WebHandler {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}

			allowed := slices.Contains(allowedOrigins, origin)
			if !allowed {
				log.Warn("ws auth: origin rejected", "origin", origin)
			}

			return allowed
		},
	}

	return &WebHandler{
		hub:      hub,
		upgrader: upgrader,
		log:      log,

		secret:         secret,
		allowedOrigins: allowedOrigins,
	}
}

func (h *WebHandler) Serve(w http.ResponseWriter, r *http.Request) {
	var clientID string

	cookie, err := r.Cookie("access_token")
	if err == nil {
		claims, err := pkg.ValidateToken(cookie.Value, h.secret)
		if err == nil {
			if sub, ok := claims["sub"]; ok && sub != nil {
				clientID = fmt.Sprintf("%v", sub)
			}
		}
	}

	if clientID == "" {
		h.log.Warn("ws auth: no valid credentials")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("ws auth: upgrade failed", "error", err)
		return
	}

	c := NewClient(h.hub, conn, h.log, clientID)
	c.hub.register <- c

	go c.writePump()
	go c.readPump()
}
