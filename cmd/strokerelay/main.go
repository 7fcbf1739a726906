// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The strokerelay command serves the freehand pipeline over websockets.
//
// Usage:
//
//	strokerelay [-config file] [-addr host:port]
//
// Clients connect to the configured relay path (default /input) and send
// one recording line per text message (see package recording). Samples are
// drained on a single scheduling loop and the resulting stroke calls are
// logged at debug level. GET /stats reports counters as JSON and
// GET /healthz reports liveness.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/strokeworks/freehand/config"
	"github.com/strokeworks/freehand/freehand"
	"github.com/strokeworks/freehand/logsink"
	"github.com/strokeworks/freehand/sched"
	"github.com/strokeworks/freehand/wsinput"
)

var (
	configFlag = flag.String("config", "", "YAML configuration `file`")
	addrFlag   = flag.String("addr", "", "listen `address`, overriding relay.addr")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: strokerelay [flags]\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 0 {
		usage()
	}
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			return err
		}
	}
	if *addrFlag != "" {
		cfg.Relay.Addr = *addrFlag
	}
	log, err := logsink.New(cfg.Log.Backend, os.Stderr, cfg.Verbosity())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, err := newRelay(cfg, log)
	if err != nil {
		return err
	}
	defer r.close()

	srv := &http.Server{Addr: cfg.Relay.Addr, Handler: r.router()}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.Info("serving input", "addr", cfg.Relay.Addr, "path", cfg.Relay.Path)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}

// relay ties the mode, its scheduling loop and the websocket input
// together.
type relay struct {
	path  string
	log   logr.Logger
	loop  *sched.Loop
	mode  *freehand.Mode
	input *wsinput.Handler
}

func newRelay(cfg *config.Config, log logr.Logger) (*relay, error) {
	opts, err := cfg.SanitizerOptions()
	if err != nil {
		return nil, err
	}
	loop := sched.NewLoop()
	mode := freehand.New(freehand.Options{
		Sanitizer:   opts,
		Executor:    loop.IdleExecutor(),
		Consumer:    strokeLogger{log.WithName("strokes")},
		CursorName:  cfg.Input.Cursor,
		Logger:      log,
		StaleWindow: cfg.StaleWindow(),
	})
	loop.Post(mode.Enter)
	return &relay{
		path:  cfg.Relay.Path,
		log:   log,
		loop:  loop,
		mode:  mode,
		input: wsinput.NewHandler(mode, loop, log, cfg.Relay.Origins...),
	}, nil
}

func (r *relay) close() {
	done := make(chan struct{})
	r.loop.Post(func() {
		r.mode.Leave()
		close(done)
	})
	select {
	case <-done:
	case <-time.After(time.Second):
		r.log.Info("scheduling loop did not stop in time")
	}
	r.loop.Close()
}

func (r *relay) router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	e := gin.New()
	e.Use(gin.Recovery(), r.logRequests)
	e.GET(r.path, gin.WrapH(r.input))
	e.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok\n")
	})
	e.GET("/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"motion":   r.mode.Stats(),
			"input":    r.input.Stats(),
			"surfaces": r.mode.Surfaces(),
		})
	})
	return e
}

func (r *relay) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	r.log.V(1).Info("request", "method", c.Request.Method, "path", c.Request.URL.Path,
		"status", c.Writer.Status(), "elapsed", time.Since(start).String())
}

// strokeLogger is the stroke consumer of the relay.
type strokeLogger struct {
	log logr.Logger
}

func (s strokeLogger) StrokeTo(dtime, x, y, pressure, tiltX, tiltY float64) {
	s.log.V(1).Info("stroke", "dtime", dtime, "x", x, "y", y,
		"pressure", pressure, "tiltX", tiltX, "tiltY", tiltY)
}
