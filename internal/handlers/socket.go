package handlers

import (
	"context"
	"net/http"

	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"

	"github.com/Karann2002/SnapLink-backend/internal/services"
	"github.com/Karann2002/SnapLink-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

var (
	SocketServer *socketio.Server
	Connections  = NewRegistry()
)

// InitSocketServer builds the realtime gateway. Connections start
// anonymous; a join event binds them to their user's delivery channel
// in the registry. Delivery is best-effort and online-only.
func InitSocketServer() *socketio.Server {
	server := socketio.NewServer(&engineio.Options{
		Transports: []transport.Transport{
			&websocket.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
			&polling.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
		},
	})

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")
		return nil
	})

	server.OnEvent("/", "join", func(s socketio.Conn, userID string) {
		s.SetContext(userID)
		Connections.Join(userID, s)
		logger.Debug().Str("user_id", userID).Str("conn_id", s.ID()).Msg("Socket joined")
	})

	// Ephemeral activity relays: broadcast to everyone, nothing persisted.
	server.OnEvent("/", "likePost", func(s socketio.Conn, data map[string]interface{}) {
		Connections.Broadcast("postLiked", gin.H{
			"postId": data["postId"],
			"userId": data["userId"],
		})
	})

	server.OnEvent("/", "commentPost", func(s socketio.Conn, data map[string]interface{}) {
		Connections.Broadcast("postCommented", gin.H{
			"postId": data["postId"],
			"userId": data["userId"],
		})
	})

	// Same persistence path as POST /api/messages; the service pushes
	// receiveMessage to both participants once the write sticks.
	server.OnEvent("/", "privateMessage", func(s socketio.Conn, in services.SendInput) {
		if _, _, err := services.SendMessage(context.Background(), in); err != nil {
			logger.Error().Err(err).
				Str("sender", in.Sender).
				Str("receiver", in.Receiver).
				Msg("Socket message failed")
		}
	})

	server.OnEvent("/", "sendNotification", func(s socketio.Conn, data map[string]interface{}) {
		receiverID, _ := data["receiverId"].(string)
		if receiverID == "" {
			return
		}
		Connections.Push(receiverID, "getNotification", data["notification"])
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		Connections.Leave(s.ID())
		logger.Debug().Str("conn_id", s.ID()).Str("reason", reason).Msg("Socket closed")
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		logger.Warn().Err(e).Msg("Socket error")
	})

	// Hand the gateway to the messaging service for post-persist pushes.
	services.Push = func(userID, event string, payload interface{}) {
		Connections.Push(userID, event, payload)
	}

	go server.Serve()
	SocketServer = server
	return server
}

// SocketHandler wraps the socket.io server for Gin.
func SocketHandler(server *socketio.Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		server.ServeHTTP(c.Writer, c.Request)
	}
}
