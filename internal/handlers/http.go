package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"uctuuctu/internal/store"
	"uctuuctu/internal/ws"
)

// Handler holds shared HTTP dependencies
type Handler struct {
	Hub           *ws.Hub
	Store         *store.RoomStore
	ClientBaseURL string
}

// Health returns the fixed liveness payload
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "uctu-uctu",
		"status":  "ok",
	})
}

// RoomQR renders a QR code pointing a phone at the join page for a live room
func (h *Handler) RoomQR(c *gin.Context) {
	code := c.Param("code")
	if h.Store.GetRoom(code) == nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	joinURL := fmt.Sprintf("%s/join?code=%s", h.ClientBaseURL, code)
	png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// WebSocket hands the connection over to the hub
func (h *Handler) WebSocket(c *gin.Context) {
	h.Hub.HandleConnection(c.Writer, c.Request)
}

// Router builds the gin engine with CORS and all routes
func Router(h *Handler, allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = allowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", h.Health)
	r.GET("/rooms/:code/qr", h.RoomQR)
	r.GET("/ws", h.WebSocket)
	return r
}
