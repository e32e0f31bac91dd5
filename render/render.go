// Package render draws dashboard chart specs as SVG or PNG images.
package render

import (
	"fmt"
	"io"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is an image encoding supported by the renderers.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// Default figure size in pixels.
const (
	DefaultWidth  = 900
	DefaultHeight = 450
)

// ParseFormat accepts "svg" or "png" in any case.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatSVG:
		return FormatSVG, nil
	case FormatPNG:
		return FormatPNG, nil
	}
	return "", fmt.Errorf("render: unsupported format %q", s)
}

// ContentType returns the MIME type of images in format f.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (f Format) provider() chart.RendererProvider {
	if f == FormatPNG {
		return chart.PNG
	}
	return chart.SVG
}

// Options sizes a rendered figure. Zero values fall back to the defaults.
type Options struct {
	Width  int
	Height int
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

func color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func titleStyle() chart.Style {
	return chart.Style{
		FontSize:  14,
		FontColor: color("#503D36"),
	}
}

func writeTo(w io.Writer, f Format, render func(chart.RendererProvider, io.Writer) error) error {
	if err := render(f.provider(), w); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
