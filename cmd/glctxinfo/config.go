// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"gioui.org/glctx"
)

// Config describes the context glctxinfo creates.
type Config struct {
	// Profile is one of es, opengl, core or compat.
	Profile string `yaml:"profile"`
	// Version is the requested major.minor version.
	Version string `yaml:"version"`
	// Backend selects egl, glx or wgl. Empty means the platform default.
	Backend string `yaml:"backend"`
	// Frames is the number of buffer flips after activation.
	Frames     int          `yaml:"frames"`
	Window     WindowConfig `yaml:"window"`
	Attributes Attributes   `yaml:"attributes"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	// Display names the X11 display. Empty means $DISPLAY.
	Display string `yaml:"display"`
}

// Attributes are the portable config attributes. Unset sizes are left to
// the backend.
type Attributes struct {
	Red     *int `yaml:"red"`
	Green   *int `yaml:"green"`
	Blue    *int `yaml:"blue"`
	Alpha   *int `yaml:"alpha"`
	Depth   *int `yaml:"depth"`
	Stencil *int `yaml:"stencil"`
}

func DefaultConfig() *Config {
	eight := 8
	return &Config{
		Profile: "es",
		Version: "2.0",
		Window: WindowConfig{
			Title:  "glctxinfo",
			Width:  640,
			Height: 480,
		},
		Attributes: Attributes{Red: &eight, Green: &eight, Blue: &eight},
	}
}

// LoadFromPath reads a YAML file over the defaults. Unknown keys are
// errors.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := parseProfile(c.Profile); err != nil {
		return err
	}
	if _, _, err := parseVersion(c.Version); err != nil {
		return err
	}
	if _, err := parseBackend(c.Backend); err != nil {
		return err
	}
	if c.Frames < 0 {
		return fmt.Errorf("frames must be >= 0, got %d", c.Frames)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	for _, a := range c.Attributes.list() {
		if a.Value < 0 {
			return fmt.Errorf("negative size for attribute %d", a.Key)
		}
	}
	return nil
}

// list returns the attributes in glctx order, ending with AttrNone.
func (a Attributes) list() []glctx.Attr {
	var attrs []glctx.Attr
	for _, s := range []struct {
		key glctx.Attrib
		v   *int
	}{
		{glctx.AttrRedSize, a.Red},
		{glctx.AttrGreenSize, a.Green},
		{glctx.AttrBlueSize, a.Blue},
		{glctx.AttrAlphaSize, a.Alpha},
		{glctx.AttrDepthSize, a.Depth},
		{glctx.AttrStencilSize, a.Stencil},
	} {
		if s.v != nil {
			attrs = append(attrs, glctx.Attr{Key: s.key, Value: int32(*s.v)})
		}
	}
	return append(attrs, glctx.Attr{Key: glctx.AttrNone})
}

func parseProfile(s string) (glctx.Profile, error) {
	switch strings.ToLower(s) {
	case "es", "gles":
		return glctx.ProfileES, nil
	case "opengl", "gl":
		return glctx.ProfileOpenGL, nil
	case "core":
		return glctx.ProfileCore, nil
	case "compat", "compatibility":
		return glctx.ProfileCompat, nil
	}
	return 0, fmt.Errorf("unknown profile %q", s)
}

func parseVersion(s string) (major, minor int, err error) {
	if _, err := fmt.Sscanf(s, "%d.%d", &major, &minor); err != nil {
		return 0, 0, fmt.Errorf("invalid version %q", s)
	}
	if major < 1 || minor < 0 {
		return 0, 0, fmt.Errorf("invalid version %q", s)
	}
	return major, minor, nil
}

// parseBackend returns 0 for the platform default.
func parseBackend(s string) (glctx.Backend, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case "egl":
		return glctx.BackendEGL, nil
	case "glx":
		return glctx.BackendGLX, nil
	case "wgl":
		return glctx.BackendWGL, nil
	}
	return 0, fmt.Errorf("unknown backend %q", s)
}
