// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The strokereplay command replays an input recording through the
// freehand pipeline and prints the stroke calls it produces.
//
// Usage:
//
//	strokereplay [-config file] [-rotation rad] [-mirror] [-scale s] [-drain-every n] [file]
//
// The recording is read from file, or from stdin if no file is named. It is
// a sequence of JSON lines as written by package recording. Queued motion is
// drained after every n events, or only once the recording ends if n is 0.
// One line is printed per stroke forwarded to the brush, followed by a
// summary of what happened to the samples.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/strokeworks/freehand/config"
	"github.com/strokeworks/freehand/freehand"
	"github.com/strokeworks/freehand/logsink"
	"github.com/strokeworks/freehand/motion"
	"github.com/strokeworks/freehand/recording"
	"github.com/strokeworks/freehand/sched"
	"golang.org/x/xerrors"
)

var (
	configFlag     = flag.String("config", "", "YAML configuration `file`")
	rotationFlag   = flag.Float64("rotation", 0, "canvas rotation in radians")
	mirrorFlag     = flag.Bool("mirror", false, "mirror the canvas horizontally")
	scaleFlag      = flag.Float64("scale", 1, "display pixels per canvas unit")
	drainEveryFlag = flag.Int("drain-every", 0, "drain queued motion after every `n` events (0 drains at the end)")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: strokereplay [flags] [file]\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() > 1 {
		usage()
	}

	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	log, err := logsink.New(cfg.Log.Backend, os.Stderr, cfg.Verbosity())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	in := io.Reader(os.Stdin)
	if flag.NArg() == 1 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	out := bufio.NewWriter(os.Stdout)
	r := replayer{
		cfg: cfg,
		transform: freehand.Transform{
			Scale:    *scaleFlag,
			Rotation: *rotationFlag,
			Mirror:   *mirrorFlag,
		},
		drainEvery: *drainEveryFlag,
		log:        log,
	}
	stats, err := r.run(in, out)
	if err == nil {
		err = printStats(out, stats)
	}
	if ferr := out.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type replayer struct {
	cfg        *config.Config
	transform  freehand.Transform
	drainEvery int
	log        logr.Logger
}

// printer is the stroke consumer; it writes one line per call.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) StrokeTo(dtime, x, y, pressure, tiltX, tiltY float64) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "stroke dt=%.4f x=%.2f y=%.2f p=%.3f tilt=%.3f,%.3f\n",
		dtime, x, y, pressure, tiltX, tiltY)
}

// run replays the recording read from in and returns the pipeline's
// counters.
func (r *replayer) run(in io.Reader, out io.Writer) (motion.Snapshot, error) {
	opts, err := r.cfg.SanitizerOptions()
	if err != nil {
		return motion.Snapshot{}, err
	}
	exec := sched.NewManual()
	p := &printer{w: out}
	mode := freehand.New(freehand.Options{
		Sanitizer:   opts,
		Executor:    exec,
		Consumer:    p,
		CursorName:  r.cfg.Input.Cursor,
		Logger:      r.log,
		StaleWindow: r.cfg.StaleWindow(),
	})
	mode.Enter()
	defer mode.Leave()

	surfaces := make(map[string]*freehand.StaticSurface)
	dec := recording.NewDecoder(in)
	for n := 1; ; n++ {
		rec, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return mode.Stats(), err
		}
		raw, err := rec.Raw()
		if err != nil {
			return mode.Stats(), xerrors.Errorf("event %d: %w", n, err)
		}
		id := rec.Surface
		if id == "" {
			id = "main"
		}
		surf, ok := surfaces[id]
		if !ok {
			surf = freehand.NewStaticSurface(freehand.SurfaceID(id), r.transform)
			surfaces[id] = surf
		}
		mode.HandleEvent(surf, raw)
		if r.drainEvery > 0 && n%r.drainEvery == 0 {
			exec.RunPending()
		}
		if p.err != nil {
			return mode.Stats(), p.err
		}
	}
	exec.RunPending()
	return mode.Stats(), p.err
}

func printStats(w io.Writer, s motion.Snapshot) error {
	_, err := fmt.Fprintf(w, "queued %d, interpolated %d, clamped %d, forwarded %d, seeded %d, skipped %d, discarded %d\n",
		s.Queued, s.Interpolated, s.Clamped, s.Forwarded, s.Seeded, s.Skipped, s.Discarded)
	return err
}
