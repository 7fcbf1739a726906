// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wsinput feeds input samples received over websocket connections
// into a freehand.Mode.
//
// Every text message is one recording line (see package recording). The
// surface named in a record is private to its connection; the connection's
// surfaces are discarded when it closes. The display transform of the
// connection's surfaces may be given in the query string:
//
//	ws://host/input?scale=2&rotation=0.5&mirror=true
package wsinput

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/gorilla/websocket"
	"github.com/strokeworks/freehand/freehand"
	"github.com/strokeworks/freehand/recording"
	"github.com/strokeworks/freehand/sched"
	"go.uber.org/atomic"
	"golang.org/x/xerrors"
)

// DefaultSurface names the surface of records that do not name one.
const DefaultSurface = "main"

const maxMessageSize = 64 << 10

// Handler is an http.Handler upgrading requests to websocket input
// connections.
type Handler struct {
	mode     *freehand.Mode
	exec     sched.Executor
	log      logr.Logger
	upgrader websocket.Upgrader
	origins  []string

	conns    atomic.Int64 // upgrade attempts so far
	open     atomic.Int64
	received atomic.Int64
	rejected atomic.Int64
}

// NewHandler returns a Handler posting HandleEvent calls for mode to exec.
// exec must be the executor the Mode's own work runs on, or one ordered
// with it.
//
// Browsers may connect from the handler's own origin and from the listed
// origins ("https://host:port", or "*" for any). Clients that send no
// Origin header are always accepted.
func NewHandler(mode *freehand.Mode, exec sched.Executor, log logr.Logger, origins ...string) *Handler {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	h := &Handler{
		mode:    mode,
		exec:    exec,
		log:     log.WithName("wsinput"),
		origins: origins,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	for _, o := range h.origins {
		if o == "*" || strings.EqualFold(strings.TrimSuffix(o, "/"), origin) {
			return true
		}
	}
	h.log.Info("rejected cross-origin connection", "origin", origin, "remote", r.RemoteAddr)
	return false
}

// Stats reports connection and message counts.
type Stats struct {
	Connections int64 `json:"connections"`
	Open        int64 `json:"open"`
	Received    int64 `json:"received"`
	Rejected    int64 `json:"rejected"`
}

func (h *Handler) Stats() Stats {
	return Stats{
		Connections: h.conns.Load(),
		Open:        h.open.Load(),
		Received:    h.received.Load(),
		Rejected:    h.rejected.Load(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	t, err := transform(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	// Numbered before the handshake completes so IDs follow dial order.
	id := h.conns.Inc()
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied.
		h.log.V(1).Info("websocket upgrade failed", "remote", r.RemoteAddr, "err", err.Error())
		return
	}
	c := &connection{
		h:        h,
		conn:     conn,
		prefix:   "ws" + strconv.FormatInt(id, 10) + "/",
		t:        t,
		surfaces: make(map[string]*freehand.StaticSurface),
		log:      h.log.WithValues("conn", id, "remote", r.RemoteAddr),
	}
	h.open.Inc()
	defer h.open.Dec()
	c.serve()
}

// transform reads the display transform from the query string.
func transform(r *http.Request) (freehand.Transform, error) {
	var t freehand.Transform
	q := r.URL.Query()
	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"scale", &t.Scale},
		{"rotation", &t.Rotation},
		{"ox", &t.OffsetX},
		{"oy", &t.OffsetY},
	} {
		s := q.Get(f.name)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return t, xerrors.Errorf("wsinput: query %s: %w", f.name, err)
		}
		*f.dst = v
	}
	if s := q.Get("mirror"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return t, xerrors.Errorf("wsinput: query mirror: %w", err)
		}
		t.Mirror = v
	}
	return t, nil
}

type connection struct {
	h      *Handler
	conn   *websocket.Conn
	prefix string
	t      freehand.Transform
	log    logr.Logger

	// surfaces is only touched by the reading goroutine.
	surfaces map[string]*freehand.StaticSurface
}

func (c *connection) serve() {
	defer c.close()
	c.conn.SetReadLimit(maxMessageSize)
	c.log.Info("input connection opened")
	for {
		typ, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Error(err, "reading input")
			}
			return
		}
		if typ != websocket.TextMessage {
			continue
		}
		c.h.received.Inc()
		if err := c.handle(msg); err != nil {
			c.h.rejected.Inc()
			c.log.V(1).Info("rejected input message", "err", err.Error())
		}
	}
}

func (c *connection) handle(msg []byte) error {
	rec, err := recording.Unmarshal(msg)
	if err != nil {
		return err
	}
	raw, err := rec.Raw()
	if err != nil {
		return err
	}
	surf := c.surface(rec.Surface)
	mode := c.h.mode
	c.h.exec.Post(func() { mode.HandleEvent(surf, raw) })
	return nil
}

func (c *connection) surface(name string) *freehand.StaticSurface {
	if name == "" {
		name = DefaultSurface
	}
	if s, ok := c.surfaces[name]; ok {
		return s
	}
	s := freehand.NewStaticSurface(freehand.SurfaceID(c.prefix+name), c.t)
	c.surfaces[name] = s
	return s
}

func (c *connection) close() {
	c.conn.Close()
	mode := c.h.mode
	for _, s := range c.surfaces {
		id := s.ID()
		c.h.exec.Post(func() { mode.Discard(id) })
	}
	c.log.Info("input connection closed", "surfaces", len(c.surfaces))
}
