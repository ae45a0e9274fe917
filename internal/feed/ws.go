package feed

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // OK for demo; restrict in production
	},
}

// WSHandler upgrades the connection and parks it on the hub. The feed is
// one-way: anything the client sends is drained and ignored.
func WSHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		hub.AddWS(ws)
		log.Println("[feed-ws] client connected")

		welcome, _ := json.Marshal(welcomeFrame{
			Type:      "welcome",
			Transport: "websocket",
			Clients:   hub.Stats().WSClients,
		})
		_ = ws.WriteMessage(websocket.TextMessage, append(welcome, '\n'))

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		hub.RemoveWS(ws)
		log.Println("[feed-ws] client disconnected")
	}
}
