// SPDX-License-Identifier: Unlicense OR MIT

// Command glctxinfo opens a window, creates an OpenGL or OpenGL ES context
// on it and prints the chosen config and the GL implementation strings.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/term"

	"gioui.org/glctx"
	"gioui.org/glctx/internal/gl"
)

var (
	configPath = flag.String("config", "", "read settings from a YAML file")
	profile    = flag.String("profile", "", "context profile (es, opengl, core, compat)")
	version    = flag.String("version", "", "context version, major.minor")
	backend    = flag.String("backend", "", "native API (egl, glx, wgl); empty selects the platform default")
	frames     = flag.Int("frames", -1, "number of buffer flips after activation")
	verbose    = flag.Bool("v", false, "log driver diagnostics")
)

// nativeWindow is a window opened by glctxinfo itself.
type nativeWindow interface {
	Display() glctx.Display
	Handle() glctx.Window
	Size() (int, int, error)
	// Poll reports whether the window is still open.
	Poll() bool
	Close()
}

func init() {
	// Contexts are bound to the thread that activates them.
	runtime.LockOSThread()
}

func main() {
	flag.Parse()
	if err := mainErr(); err != nil {
		fmt.Fprintf(os.Stderr, "glctxinfo: %v\n", err)
		os.Exit(1)
	}
}

func mainErr() error {
	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = LoadFromPath(*configPath)
		if err != nil {
			return err
		}
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer l.Sync()
		glctx.SetLogger(l)
	}
	w, err := openWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer w.Close()
	return run(cfg, w)
}

// applyFlags overrides cfg with the flags set on the command line.
func applyFlags(cfg *Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "profile":
			cfg.Profile = *profile
		case "version":
			cfg.Version = *version
		case "backend":
			cfg.Backend = *backend
		case "frames":
			cfg.Frames = *frames
		}
	})
}

func run(cfg *Config, w nativeWindow) error {
	p, _ := parseProfile(cfg.Profile)
	major, minor, _ := parseVersion(cfg.Version)
	b, _ := parseBackend(cfg.Backend)
	var opts []glctx.Option
	name := "default"
	if b != 0 {
		opts = append(opts, glctx.WithBackend(b))
		name = b.String()
	}
	ctx, err := glctx.Init(w.Display(), w.Handle(), p, major, minor, opts...)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer ctx.Terminate()
	c, err := ctx.ChooseConfig(cfg.Attributes.list())
	if err != nil {
		return fmt.Errorf("choose config: %w", err)
	}
	if err := ctx.Activate(c, w.Handle(), nil); err != nil {
		return fmt.Errorf("activate: %w", err)
	}
	f, err := gl.Load(ctx.ProcAddress)
	if err != nil {
		return err
	}
	styled := term.IsTerminal(int(os.Stdout.Fd()))
	title := fmt.Sprintf("%s %d.%d context", p, major, minor)
	if err := writeReport(os.Stdout, title, contextRows(ctx, name, gl.Query(f)), styled); err != nil {
		return err
	}
	return flip(ctx, f, w, cfg.Frames)
}

// flip clears and presents n frames, stopping early if the window closes.
func flip(ctx *glctx.Context, f *gl.Functions, w nativeWindow, n int) error {
	if n == 0 {
		return nil
	}
	pb := progressbar.Default(int64(n))
	defer pb.Close()
	for i := 0; i < n; i++ {
		if !w.Poll() {
			return errors.New("window closed")
		}
		if width, height, ok := ctx.Size(); ok {
			f.Viewport(0, 0, width, height)
		}
		shade := float32(i%60) / 60
		f.ClearColor(shade, 0, 1-shade, 1)
		f.Clear(gl.COLOR_BUFFER_BIT)
		ctx.Flip()
		pb.Add(1)
	}
	if e := f.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("GL error %#x", e)
	}
	return nil
}
