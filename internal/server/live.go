package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vcrobe/nojs-clock/runtime"
	"github.com/vcrobe/nojs-clock/vdom"
)

// Frame types sent to live clients.
const (
	FrameMount = "mount"
	FramePatch = "patch"
	FrameClear = "clear"
)

const (
	frameWriteTimeout = 5 * time.Second
	teardownTimeout   = 5 * time.Second
	loopCapacity      = 64
)

// Frame is one JSON message of the live protocol. HTML carries the whole
// serialized tree; clear frames leave it empty.
type Frame struct {
	Type string `json:"type"`
	HTML string `json:"html,omitempty"`
}

// Compile-time assertion to ensure socketSurface implements runtime.Surface.
var _ runtime.Surface = (*socketSurface)(nil)

// socketSurface sends every render to a WebSocket client.
type socketSurface struct {
	conn *websocket.Conn
}

func (s *socketSurface) send(kind string, tree *vdom.VNode) error {
	frame := Frame{Type: kind}
	if tree != nil {
		body, err := vdom.HTML(tree)
		if err != nil {
			return err
		}
		frame.HTML = body
	}

	ctx, cancel := context.WithTimeout(context.Background(), frameWriteTimeout)
	defer cancel()
	if err := wsjson.Write(ctx, s.conn, frame); err != nil {
		return fmt.Errorf("failed to write %s frame: %w", kind, err)
	}
	return nil
}

func (s *socketSurface) Mount(tree *vdom.VNode) error {
	return s.send(FrameMount, tree)
}

func (s *socketSurface) Patch(_, next *vdom.VNode) error {
	return s.send(FramePatch, next)
}

func (s *socketSurface) Clear() error {
	return s.send(FrameClear, nil)
}

// session is one mounted App bound to one WebSocket connection. It owns
// its event loop, scheduler and engine; nothing is shared with other
// sessions except the metrics recorder.
type session struct {
	id        string
	conn      *websocket.Conn
	loop      *runtime.Loop
	scheduler *runtime.ClockScheduler
	engine    *runtime.Engine
	logger    *zap.Logger

	cancel    context.CancelFunc
	closeOnce sync.Once
}

func (s *Server) newSession(conn *websocket.Conn, cancel context.CancelFunc) *session {
	id := uuid.NewString()
	loop := runtime.NewLoop(loopCapacity)
	scheduler := runtime.NewScheduler(s.clock, loop, runtime.WithSchedulerObserver(s.recorder))
	engine := runtime.NewEngine(&socketSurface{conn: conn}, scheduler, runtime.WithObserver(s.recorder))
	engine.SetRoot(s.newApp(), "")

	return &session{
		id:        id,
		conn:      conn,
		loop:      loop,
		scheduler: scheduler,
		engine:    engine,
		logger:    s.logger.With(zap.String("session", id)),
		cancel:    cancel,
	}
}

// close asks the session to tear down. Safe to call more than once.
func (sess *session) close() {
	sess.closeOnce.Do(sess.cancel)
}

// run mounts the App and keeps it mounted until ctx is done or the peer
// closes the connection. The App is always unmounted before run returns,
// and when ctx ends first the connection is still open for the clear frame.
func (sess *session) run(ctx context.Context) error {
	// Incoming messages are discarded. CloseRead closes the connection once
	// its context ends, so it must not share ctx with shutdown.
	peerGone := sess.conn.CloseRead(context.Background())

	loopCtx, stopLoop := context.WithCancel(context.Background())
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		_ = sess.loop.Run(loopCtx)
	}()
	defer func() {
		sess.scheduler.Close()
		stopLoop()
		<-loopDone
	}()

	var renderErr error
	if err := sess.loop.Do(ctx, func() { renderErr = sess.engine.RenderRoot() }); err != nil {
		renderErr = err
	}

	if renderErr == nil {
		sess.logger.Debug("Live session mounted")
		select {
		case <-peerGone.Done():
		case <-ctx.Done():
		}
	}

	teardownCtx, cancel := context.WithTimeout(context.Background(), teardownTimeout)
	defer cancel()
	var unmountErr error
	if err := sess.loop.Do(teardownCtx, func() { unmountErr = sess.engine.Unmount() }); err != nil {
		unmountErr = err
	}
	if unmountErr != nil {
		// A peer that left first cannot receive the clear frame
		sess.logger.Debug("Live session teardown incomplete", zap.Error(unmountErr))
	}

	if renderErr != nil {
		return fmt.Errorf("failed to mount live session: %w", renderErr)
	}
	return nil
}

// handleLive upgrades the request and serves a live session on it.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	if s.isClosing() {
		http.Error(w, "Server shutting down", http.StatusServiceUnavailable)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.logger.Warn("Failed to accept websocket", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	sess := s.newSession(conn, cancel)

	if !s.track(sess) {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}
	defer s.untrack(sess)

	err = sess.run(ctx)
	switch {
	case err != nil:
		sess.logger.Error("Live session failed", zap.Error(err))
		conn.Close(websocket.StatusInternalError, "render failed")
	case s.isClosing():
		conn.Close(websocket.StatusGoingAway, "server shutting down")
	default:
		conn.Close(websocket.StatusNormalClosure, "")
	}
	sess.logger.Debug("Live session closed")
}

func (s *Server) track(sess *session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.sessions[sess.id] = sess
	s.wg.Add(1)
	s.recorder.SessionOpened()
	return true
}

func (s *Server) untrack(sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sess.id]; !ok {
		return
	}
	delete(s.sessions, sess.id)
	s.wg.Done()
	s.recorder.SessionClosed()
}

func (s *Server) isClosing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closing
}

