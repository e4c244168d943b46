package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/sabordacasa/delivery-app/realtime"
	"github.com/sabordacasa/delivery-app/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSController struct{}

func NewWSController() *WSController {
	return &WSController{}
}

// Connect upgrades an authenticated dashboard session to a websocket and
// registers it for order and courier broadcasts.
func (wc *WSController) Connect(c *gin.Context) {
	role, _ := c.Get("role")
	roleStr, _ := role.(string)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("Websocket upgrade failed: %v", err)
		return
	}

	realtime.RegisterClient(conn, roleStr)
	utils.InfoLogger.Printf("Websocket client connected (role=%s)", roleStr)

	// Reader loop exists only to detect disconnects; clients never send.
	go func() {
		defer realtime.UnregisterClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
