package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// canvasFlag is a pflag.Value accepting "WxH" (e.g. "600x400") to override a
// loaded config's canvas dimensions from the command line. Zero value means
// unset: loadState leaves the config's own dimensions alone.
type canvasFlag struct {
	width, height float64
	set           bool
}

var _ pflag.Value = (*canvasFlag)(nil)

func (c *canvasFlag) String() string {
	if !c.set {
		return ""
	}
	return fmt.Sprintf("%gx%g", c.width, c.height)
}

func (c *canvasFlag) Type() string { return "WxH" }

func (c *canvasFlag) Set(s string) error {
	w, h, found := strings.Cut(s, "x")
	if !found {
		return fmt.Errorf("canvas %q must be WxH, e.g. 600x400", s)
	}
	width, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return fmt.Errorf("canvas width %q: %w", w, err)
	}
	height, err := strconv.ParseFloat(h, 64)
	if err != nil {
		return fmt.Errorf("canvas height %q: %w", h, err)
	}
	c.width, c.height, c.set = width, height, true
	return nil
}
