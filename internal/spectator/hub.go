// Package spectator publishes tournament snapshots to read-only websocket
// viewers. Hole cards are masked until showdown.
package spectator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/pokertourney/internal/game"
)

// Hub fans snapshots out to connected viewers. It implements game.Observer.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu      sync.RWMutex
	viewers map[*viewer]struct{}
	latest  []byte
	closed  bool
}

// NewHub creates a hub with no viewers.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			// viewers never send anything that changes state
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:  logger.WithPrefix("spectator"),
		viewers: make(map[*viewer]struct{}),
	}
}

// Observe publishes a masked copy of the snapshot to every viewer. Viewers
// whose send buffer is full are disconnected.
func (h *Hub) Observe(s game.Snapshot) {
	data, err := json.Marshal(s.Masked())
	if err != nil {
		h.logger.Error("Failed to encode snapshot", "error", err)
		return
	}

	h.mu.Lock()
	h.latest = data
	var slow []*viewer
	for v := range h.viewers {
		if !v.enqueue(data) {
			slow = append(slow, v)
		}
	}
	h.mu.Unlock()

	for _, v := range slow {
		h.logger.Warn("Dropping slow viewer", "remote", v.remote)
		h.remove(v)
	}
}

// Viewers returns the number of connected viewers.
func (h *Hub) Viewers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers)
}

// Handler serves /ws, /snapshot and /health.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.handleWebSocket)
	mux.HandleFunc("/snapshot", h.handleSnapshot)
	mux.HandleFunc("/health", h.handleHealth)
	return mux
}

// Serve listens on addr until ctx is cancelled, then disconnects viewers.
func (h *Hub) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: h.Handler(), ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("Spectator feed listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("spectator server: %w", err)
	case <-ctx.Done():
	}

	h.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("spectator shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close disconnects every viewer and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	viewers := make([]*viewer, 0, len(h.viewers))
	for v := range h.viewers {
		viewers = append(viewers, v)
	}
	h.viewers = make(map[*viewer]struct{})
	h.mu.Unlock()

	for _, v := range viewers {
		v.close()
	}
}

func (h *Hub) add(v *viewer) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.viewers[v] = struct{}{}
	if h.latest != nil {
		v.enqueue(h.latest)
	}
	h.logger.Info("Viewer connected", "remote", v.remote, "total", len(h.viewers))
	return true
}

func (h *Hub) remove(v *viewer) {
	h.mu.Lock()
	_, ok := h.viewers[v]
	delete(h.viewers, v)
	total := len(h.viewers)
	h.mu.Unlock()

	v.close()
	if ok {
		h.logger.Info("Viewer disconnected", "remote", v.remote, "total", total)
	}
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	v := newViewer(conn, r.RemoteAddr)
	if !h.add(v) {
		v.close()
		return
	}
	go v.writePump()
	go func() {
		v.readPump()
		h.remove(v)
	}()
}

func (h *Hub) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	data := h.latest
	h.mu.RUnlock()

	if data == nil {
		http.Error(w, "no snapshot yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (h *Hub) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}
