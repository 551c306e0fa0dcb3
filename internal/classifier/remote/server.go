// Package remote receives classifier frames over the network so an
// external pose model (a browser, a Python process, a phone) can steer
// the game.
//
// Frames arrive as JSON, either one per POST /predictions request or as
// a stream of messages on the /ws websocket:
//
//	{"predictions": [{"label": "left", "probability": 0.93}, ...]}
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/pose-catcher/internal/classifier"
)

var _ classifier.Classifier = (*Server)(nil)

// ErrClosed is returned by Predict after Close.
var ErrClosed = errors.New("remote: feed closed")

const (
	defaultBuffer = 16
	maxFrameBytes = 64 << 10
)

// Frame is the wire format of one classifier frame.
type Frame struct {
	Predictions []classifier.Prediction `json:"predictions"`
}

// Stats reports feed counters.
type Stats struct {
	Status   string `json:"status"`
	Received int64  `json:"received"`
	Dropped  int64  `json:"dropped"`
	Streams  int    `json:"streams"`
}

// Server is a classifier whose frames are pushed by network clients.
// Predict blocks until a frame arrives. When the consumer falls behind,
// the oldest buffered frame is dropped; producers never block.
type Server struct {
	logger   *log.Logger
	frames   chan []classifier.Prediction
	done     chan struct{}
	once     sync.Once
	upgrader websocket.Upgrader

	received atomic.Int64
	dropped  atomic.Int64

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewServer creates a feed server buffering up to buffer frames.
func NewServer(logger *log.Logger, buffer int) *Server {
	if buffer < 1 {
		buffer = defaultBuffer
	}
	return &Server{
		logger: logger,
		frames: make(chan []classifier.Prediction, buffer),
		done:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Handler returns the HTTP routes of the feed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Post("/predictions", s.handlePredictions)
	r.Get("/ws", s.handleStream)

	return r
}

// Predict waits for the next frame.
func (s *Server) Predict(ctx context.Context) ([]classifier.Prediction, error) {
	select {
	case preds := <-s.frames:
		return preds, nil
	case <-s.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Stats returns the current counters.
func (s *Server) Stats() Stats {
	s.mu.Lock()
	streams := len(s.conns)
	s.mu.Unlock()
	return Stats{
		Status:   "ok",
		Received: s.received.Load(),
		Dropped:  s.dropped.Load(),
		Streams:  streams,
	}
}

// Close stops the feed and disconnects every stream. Safe to call twice.
func (s *Server) Close() {
	s.once.Do(func() {
		close(s.done)
		s.mu.Lock()
		for conn := range s.conns {
			conn.Close()
		}
		s.mu.Unlock()
	})
}

// ListenAndServe serves the feed on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("remote: listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves the feed on ln until ctx is cancelled, then shuts down
// gracefully and closes the feed.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("classifier feed listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("remote: serve: %w", err)
	}

	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("remote: shutdown: %w", err)
	}
	return nil
}

// offer queues a frame, dropping the oldest one when the buffer is full.
func (s *Server) offer(preds []classifier.Prediction) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	s.received.Add(1)
	for {
		select {
		case s.frames <- preds:
			return true
		default:
		}
		select {
		case <-s.frames:
			s.dropped.Add(1)
		default:
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Stats())
}

func (s *Server) handlePredictions(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFrameBytes)

	var frame Frame
	if err := json.NewDecoder(r.Body).Decode(&frame); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid frame: " + err.Error()})
		return
	}
	if !s.offer(frame.Predictions) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": ErrClosed.Error()})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]int{"predictions": len(frame.Predictions)})
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	conn.SetReadLimit(maxFrameBytes)

	s.mu.Lock()
	select {
	case <-s.done:
		s.mu.Unlock()
		conn.Close()
		return
	default:
	}
	s.conns[conn] = struct{}{}
	s.mu.Unlock()

	s.logger.Info("classifier stream connected", "remote", r.RemoteAddr)
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()
		s.logger.Info("classifier stream closed", "remote", r.RemoteAddr)
	}()

	for {
		var frame Frame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("classifier stream read failed", "remote", r.RemoteAddr, "err", err)
			}
			return
		}
		if !s.offer(frame.Predictions) {
			return
		}
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
