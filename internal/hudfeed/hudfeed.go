// Package hudfeed streams per-frame game snapshots to websocket clients. The
// feed is read-only: anything a client sends is discarded.
//
// Clients get JSON text frames by default; /ws?enc=msgpack switches that
// client to msgpack binary frames with the same field names.
package hudfeed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"rvcook/internal/game"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

type encoding int

const (
	encJSON encoding = iota
	encMsgpack
)

func (e encoding) messageType() int {
	if e == encMsgpack {
		return websocket.BinaryMessage
	}
	return websocket.TextMessage
}

type client struct {
	conn *websocket.Conn
	enc  encoding
	send chan []byte
}

// frame is one snapshot in every encoding some client asked for.
type frame [2][]byte

func encodeMsgpack(snap game.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Server fans snapshots out to every connected client. Publish never blocks:
// a client whose buffer is full misses that frame.
type Server struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	last    frame
	wanted  [2]int // connected clients per encoding

	upgrader websocket.Upgrader
	http     *http.Server
	log      zerolog.Logger
}

func New(log zerolog.Logger) *Server {
	s := &Server{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: log.With().Str("component", "hudfeed").Logger(),
	}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Listen starts serving on addr in the background and returns the bound
// address.
func (s *Server) Listen(addr string) (net.Addr, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("hud feed listen on %s: %w", addr, err)
	}
	s.http = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("hud feed stopped")
		}
	}()
	s.log.Info().Str("addr", ln.Addr().String()).Msg("hud feed listening")
	return ln.Addr(), nil
}

// Shutdown stops the listener and disconnects every client.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.http != nil {
		err = s.http.Shutdown(ctx)
	}
	s.mu.Lock()
	for c := range s.clients {
		close(c.send)
		delete(s.clients, c)
	}
	s.wanted = [2]int{}
	s.mu.Unlock()
	return err
}

func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Publish encodes snap once per encoding in use and queues it for every
// client. JSON is always kept so a late client has something to start from.
func (s *Server) Publish(snap game.Snapshot) {
	var f frame
	var err error
	if f[encJSON], err = json.Marshal(snap); err != nil {
		s.log.Warn().Err(err).Msg("encode snapshot")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wanted[encMsgpack] > 0 {
		if f[encMsgpack], err = encodeMsgpack(snap); err != nil {
			s.log.Warn().Err(err).Msg("encode snapshot as msgpack")
		}
	}
	s.last = f
	for c := range s.clients {
		data := f[c.enc]
		if data == nil {
			continue
		}
		select {
		case c.send <- data:
		default:
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("upgrade")
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	if r.URL.Query().Get("enc") == "msgpack" {
		c.enc = encMsgpack
	}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.wanted[c.enc]++
	if last := s.last[c.enc]; last != nil {
		c.send <- last
	}
	n := len(s.clients)
	s.mu.Unlock()
	s.log.Debug().
		Str("remote", r.RemoteAddr).
		Bool("msgpack", c.enc == encMsgpack).
		Int("clients", n).
		Msg("client connected")

	go s.writePump(c)
	go s.readPump(c)
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		s.wanted[c.enc]--
		close(c.send)
	}
	s.mu.Unlock()
}

// readPump only services control frames and detects disconnects.
func (s *Server) readPump(c *client) {
	defer func() {
		s.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug().Err(err).Msg("client read")
			}
			return
		}
	}
}

func (s *Server) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(c.enc.messageType(), msg); err != nil {
				s.log.Debug().Err(err).Msg("client write")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
