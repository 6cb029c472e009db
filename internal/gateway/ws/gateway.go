// Package ws upgrades authenticated requests into websocket chat
// sessions backed by a MessageStream.
package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"juntos_server/internal/dto/request"
	"juntos_server/internal/dto/respond"
	"juntos_server/internal/service"
	"juntos_server/internal/service/stream"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// inboundFrame is what a connected client sends: one message for the
// group the session is bound to.
type inboundFrame struct {
	Conteudo       string `json:"conteudo"`
	Tipo           string `json:"tipo"`
	CaminhoArquivo string `json:"caminho_arquivo"`
}

// outboundFrame is what the session writes. Type is "history" exactly
// once, right after the upgrade, then "message" per live event.
type outboundFrame struct {
	Type     string                     `json:"type"`
	Message  *respond.GroupMessageInfo  `json:"message,omitempty"`
	Messages []respond.GroupMessageInfo `json:"messages,omitempty"`
}

// Gateway binds websocket sessions to the stream machinery.
type Gateway struct {
	broker   stream.Broker
	messages service.MessageService
}

func NewGateway(broker stream.Broker, messages service.MessageService) *Gateway {
	return &Gateway{
		broker:   broker,
		messages: messages,
	}
}

// Serve runs one chat session: upgrade, history snapshot, then live
// updates out and sends in, until either side closes.
func (g *Gateway) Serve(c *gin.Context, userUuid string, groupID uint) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error("websocket upgrade", zap.Error(err))
		return
	}

	st := stream.NewMessageStream(groupID, g.broker, g.messages)
	history, err := st.Open()
	if err != nil {
		zap.L().Error("open message stream",
			zap.Uint("group_id", groupID), zap.Error(err))
		_ = conn.Close()
		return
	}

	// Close is unconditional: whichever loop exits first tears the
	// session down and the other loop follows.
	defer func() {
		st.Close()
		_ = conn.Close()
	}()

	go g.writeLoop(conn, st, history)
	g.readLoop(conn, userUuid, groupID)
}

// writeLoop owns every write on the connection: the history frame, live
// message frames and keepalive pings.
func (g *Gateway) writeLoop(conn *websocket.Conn, st *stream.MessageStream, history []respond.GroupMessageInfo) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	if !g.writeFrame(conn, outboundFrame{Type: "history", Messages: history}) {
		return
	}

	for {
		select {
		case msg, ok := <-st.Updates():
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(writeWait))
				return
			}
			if !g.writeFrame(conn, outboundFrame{Type: "message", Message: &msg}) {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (g *Gateway) writeFrame(conn *websocket.Conn, frame outboundFrame) bool {
	data, err := json.Marshal(frame)
	if err != nil {
		zap.L().Error("encode websocket frame", zap.Error(err))
		return false
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return false
	}
	return true
}

// readLoop accepts sends from the client. A send failure is logged and
// the session continues; the client sees the outcome through the live
// feed.
func (g *Gateway) readLoop(conn *websocket.Conn, userUuid string, groupID uint) {
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				zap.L().Warn("websocket read", zap.Error(err))
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			zap.L().Warn("malformed websocket frame",
				zap.String("user_uuid", userUuid), zap.Error(err))
			continue
		}

		if _, err := g.messages.Send(userUuid, request.SendMessageRequest{
			GroupID:        groupID,
			Conteudo:       frame.Conteudo,
			Tipo:           frame.Tipo,
			CaminhoArquivo: frame.CaminhoArquivo,
		}); err != nil {
			zap.L().Warn("websocket send rejected",
				zap.String("user_uuid", userUuid),
				zap.Uint("group_id", groupID),
				zap.Error(err))
		}
	}
}
