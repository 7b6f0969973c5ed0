package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/talentdesk/interview-signaling/internal/api/http/converter"
	"github.com/talentdesk/interview-signaling/internal/domain"
	"github.com/talentdesk/interview-signaling/internal/service"
	transportws "github.com/talentdesk/interview-signaling/internal/transport/ws"
)

type SignalingController struct {
	signaling service.SignalingInteractor
	hub       *transportws.Hub
	stun      []string
	upgrader  websocket.Upgrader
}

func NewSignalingController(signaling service.SignalingInteractor, hub *transportws.Hub, stunServers []string) *SignalingController {
	return &SignalingController{
		signaling: signaling,
		hub:       hub,
		stun:      stunServers,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// GetRoomInfo serves the read-only room snapshot used by dashboards.
func (c *SignalingController) GetRoomInfo(ctx *gin.Context) {
	info := c.signaling.RoomInfo(ctx.Param("roomID"))
	if info == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"room": converter.RoomInfoToAPI(info)})
}

// GetICEConfig hands clients the STUN servers to use for their peer
// connections; the coordinator itself never dials them.
func (c *SignalingController) GetICEConfig(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"stunServers": c.stun})
}

// Connect upgrades the request to a websocket, registers the connection and
// pumps decoded signal messages into the coordinator until the socket dies.
func (c *SignalingController) Connect(ctx *gin.Context) {
	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		ctx.String(http.StatusInternalServerError, "failed to upgrade connection")
		return
	}

	client := c.hub.Register(conn)

	// Tell the client its connection id first; peers address relay targets
	// by this handle.
	c.hub.SendToConnection(client.ID, "connected", gin.H{"connectionId": client.ID})

	for {
		var msg domain.SignalMessage
		if err := conn.ReadJSON(&msg); err != nil {
			c.hub.Unregister(client.ID)
			return
		}

		c.signaling.Dispatch(client.ID, &msg)
	}
}
