package domain

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var ErrInvalidColor = errors.New("invalid color")

// ParseColor accepts CSS color names ("white"), hex forms ("#fff", "#ffffff")
// and "rgb(r, g, b)".
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return color.RGBA{}, fmt.Errorf("%w: empty", ErrInvalidColor)
	}

	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}

	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseRGB(s[len("rgb(") : len(s)-1])
	}

	return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func parseHex(h string) (color.RGBA, error) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: hex must have 3 or 6 digits", ErrInvalidColor)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %v", ErrInvalidColor, err)
	}

	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

func parseRGB(body string) (color.RGBA, error) {
	parts := strings.Split(strings.ReplaceAll(body, " ", ""), ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("%w: rgb() needs 3 components", ErrInvalidColor)
	}

	var rgb [3]uint8
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 255 {
			return color.RGBA{}, fmt.Errorf("%w: component %q", ErrInvalidColor, p)
		}
		rgb[i] = uint8(n)
	}

	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, nil
}

// NRGBA returns the tint as a non-premultiplied color with Alpha scaled to 0..255.
func (c OverlayColor) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: clampByte(c.Red),
		G: clampByte(c.Green),
		B: clampByte(c.Blue),
		A: uint8(math.Round(math.Max(0, math.Min(1, c.Alpha)) * 255)),
	}
}

// Transparent reports whether applying the tint leaves the image unchanged.
func (c OverlayColor) Transparent() bool {
	return c.Alpha <= 0
}

func clampByte(v int) uint8 {
	return uint8(max(0, min(255, v)))
}
