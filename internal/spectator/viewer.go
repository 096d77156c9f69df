package spectator

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the viewer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the viewer
	pongWait = 60 * time.Second

	// Send pings with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Viewers only send control frames
	maxMessageSize = 512

	sendBuffer = 256
)

type viewer struct {
	conn   *websocket.Conn
	remote string
	send   chan []byte
	done   chan struct{}

	mu     sync.Mutex
	closed bool
}

func newViewer(conn *websocket.Conn, remote string) *viewer {
	return &viewer{
		conn:   conn,
		remote: remote,
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
	}
}

// enqueue reports false when the viewer cannot keep up.
func (v *viewer) enqueue(data []byte) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return true
	}
	select {
	case v.send <- data:
		return true
	default:
		return false
	}
}

func (v *viewer) close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.closed = true
	close(v.done)
	if v.conn != nil {
		_ = v.conn.Close()
	}
}

// readPump discards viewer messages and keeps the read deadline fresh.
func (v *viewer) readPump() {
	v.conn.SetReadLimit(maxMessageSize)
	_ = v.conn.SetReadDeadline(time.Now().Add(pongWait))
	v.conn.SetPongHandler(func(string) error {
		_ = v.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := v.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (v *viewer) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case data := <-v.send:
			_ = v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := v.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := v.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-v.done:
			_ = v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = v.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
