package server

import (
	"encoding/json"
	"log"

	"agriconnect/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebsocketHandler returns a websocket handler that registers connections with
// the feed hub. Authentication is handled by route middleware and userID is
// read from connection locals. The feed socket is receive-only: clients get
// feed events (new posts, reaction updates, new comments) pushed to them and
// anything they send is ignored.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		middleware.ActiveWebSockets.Inc()
		defer middleware.ActiveWebSockets.Dec()

		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			if cerr := conn.Close(); cerr != nil {
				log.Printf("websocket close error: %v", cerr)
			}
			return
		}
		uid, ok := userIDVal.(uint)
		if !ok {
			if cerr := conn.Close(); cerr != nil {
				log.Printf("websocket close error: %v", cerr)
			}
			return
		}

		if s.hub == nil {
			_ = conn.Close()
			return
		}

		// Register connection with scaling guardrails
		client, err := s.hub.Register(uid, conn)
		if err != nil {
			log.Printf("WebSocket Feed: Failed to register user %d: %v", uid, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		defer s.hub.UnregisterClient(client)

		welcome, _ := json.Marshal(map[string]interface{}{
			"type":    "connected",
			"payload": map[string]interface{}{"user_id": uid},
		})
		client.TrySend(welcome)

		// Start pumps
		go client.WritePump()
		client.ReadPump()
	})
}
