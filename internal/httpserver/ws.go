package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hiddenwords/internal/game"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Frames buffered per client before new ones are dropped.
	sendBuffer = 16
)

// wsMessage is one frame on the state stream.
type wsMessage struct {
	Event  string    `json:"event"`
	GameID string    `json:"gameId"`
	State  game.View `json:"state"`
}

// handleWS upgrades the connection and streams a frame after every state
// change of the game, including countdown ticks.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.gameFor(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			o := r.Header.Get("Origin")
			return o == "" || o == s.cfg.ClientOrigin || o == "http://"+r.Host || o == "https://"+r.Host
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("gameId", id).Msg("websocket upgrade failed")
		return
	}

	send := make(chan []byte, sendBuffer)
	// Frames carry the whole view, so dropping one when the client lags only
	// skips an intermediate state.
	cancel := ctrl.Subscribe(func(v game.View) {
		data, err := json.Marshal(wsMessage{Event: "state", GameID: id, State: v})
		if err != nil {
			return
		}
		select {
		case send <- data:
		default:
		}
	})
	log.Debug().Str("gameId", id).Msg("websocket client connected")

	// writePump closes conn when the game goes away, which ends readPump.
	go writePump(conn, send, ctrl.Done())
	readPump(conn)

	// No listener call can happen after cancel returns.
	cancel()
	close(send)
	log.Debug().Str("gameId", id).Msg("websocket client disconnected")
}

// readPump discards client frames and returns when the connection closes.
func readPump(conn *websocket.Conn) {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Debug().Err(err).Msg("websocket read")
			}
			return
		}
	}
}

// writePump writes queued frames and keepalive pings until send is closed
// or the game is closed.
func writePump(conn *websocket.Conn, send <-chan []byte, gone <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case message, ok := <-send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			wr, err := conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			_, _ = wr.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(send)
			for i := 0; i < n; i++ {
				_, _ = wr.Write([]byte{'\n'})
				_, _ = wr.Write(<-send)
			}

			if err := wr.Close(); err != nil {
				return
			}

		case <-gone:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "game closed"))
			return

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
