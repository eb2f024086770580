package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"strings"

	"memepop/internal/domain"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/wb-go/wbf/zlog"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"

	dpi = 72
)

var (
	ErrDecode        = errors.New("failed to decode image")
	ErrImageTooLarge = errors.New("image dimensions too large")
)

// Renderer draws a session's tint and text layers over an image. Font sizes
// are taken as pixels of the rendered image.
type Renderer struct {
	font        *truetype.Font
	maxWidth    int
	maxPixels   int64
	jpegQuality int
	logger      *zlog.Zerolog
}

// NewRenderer builds a renderer. maxPixels caps width*height of an upload
// before its pixels are decoded; zero or less disables the cap.
func NewRenderer(maxWidth int, maxPixels int64, jpegQuality int, logger *zlog.Zerolog) (*Renderer, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	return &Renderer{
		font:        f,
		maxWidth:    maxWidth,
		maxPixels:   maxPixels,
		jpegQuality: jpegQuality,
		logger:      logger,
	}, nil
}

// Layout returns the box text t occupies inside bounds. The box is centered
// on the point XPercent/YPercent of the way across and down.
func (r *Renderer) Layout(bounds image.Rectangle, t domain.Text) image.Rectangle {
	face := r.face(t.FontSize)
	defer face.Close()

	width := font.MeasureString(face, t.Text).Ceil()
	m := face.Metrics()
	height := (m.Ascent + m.Descent).Ceil()

	cx := bounds.Min.X + int(math.Round(float64(bounds.Dx())*t.XPercent/100))
	cy := bounds.Min.Y + int(math.Round(float64(bounds.Dy())*t.YPercent/100))

	minX := cx - width/2
	minY := cy - height/2
	return image.Rect(minX, minY, minX+width, minY+height)
}

// Compose copies img, washes it with tint and draws texts in order, so later
// layers end up on top. A nil or fully transparent tint leaves the pixels as
// they were.
func (r *Renderer) Compose(img image.Image, texts []domain.Text, tint *domain.OverlayColor) (*image.RGBA, error) {
	bounds := img.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, img, bounds.Min, draw.Src)

	if tint != nil && !tint.Transparent() {
		draw.Draw(result, bounds, image.NewUniform(tint.NRGBA()), image.Point{}, draw.Over)
	}

	for i, t := range texts {
		if t.Text == "" {
			continue
		}
		if err := r.drawText(result, t); err != nil {
			return nil, fmt.Errorf("failed to draw text %d: %w", i, err)
		}
	}

	return result, nil
}

// Render decodes src, scales it down to the configured max width, composes
// the layers and encodes the result. An empty format keeps the source format
// where it can be encoded and falls back to PNG.
func (r *Renderer) Render(ctx context.Context, src io.Reader, texts []domain.Text, tint *domain.OverlayColor, format string) (io.Reader, string, error) {
	// The header is read through a tee so the full decode can replay it.
	var head bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(src, &head))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := r.checkDimensions(cfg.Width, cfg.Height); err != nil {
		return nil, "", err
	}

	img, srcFormat, err := image.Decode(io.MultiReader(&head, src))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	if format == "" {
		format = srcFormat
	}

	img = r.fit(img)

	composed, err := r.Compose(img, texts, tint)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)

	switch strings.ToLower(format) {
	case "jpg", "jpeg":
		err = jpeg.Encode(buf, composed, &jpeg.Options{Quality: r.jpegQuality})
		format = FormatJPEG
	default:
		err = png.Encode(buf, composed)
		format = FormatPNG
	}

	if err != nil {
		return nil, "", fmt.Errorf("failed to encode preview: %w", err)
	}

	r.logger.Debug().
		Str("source_format", srcFormat).
		Str("format", format).
		Int("width", composed.Bounds().Dx()).
		Int("height", composed.Bounds().Dy()).
		Int("layers", len(texts)).
		Msg("Preview rendered")

	return buf, format, nil
}

func (r *Renderer) checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: empty image %dx%d", ErrDecode, width, height)
	}
	if r.maxPixels > 0 && int64(width)*int64(height) > r.maxPixels {
		r.logger.Warn().
			Int("width", width).
			Int("height", height).
			Int64("max_pixels", r.maxPixels).
			Msg("Upload rejected by pixel limit")
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrImageTooLarge, width, height, r.maxPixels)
	}
	return nil
}

func (r *Renderer) fit(img image.Image) image.Image {
	bounds := img.Bounds()
	if r.maxWidth <= 0 || bounds.Dx() <= r.maxWidth {
		return img
	}

	ratio := float64(bounds.Dx()) / float64(bounds.Dy())
	height := int(math.Round(float64(r.maxWidth) / ratio))
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, r.maxWidth, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}

func (r *Renderer) drawText(dst *image.RGBA, t domain.Text) error {
	col, err := domain.ParseColor(t.Color)
	if err != nil {
		return err
	}

	box := r.Layout(dst.Bounds(), t)

	face := r.face(t.FontSize)
	ascent := face.Metrics().Ascent.Ceil()
	face.Close()

	c := freetype.NewContext()
	c.SetDPI(dpi)
	c.SetFont(r.font)
	c.SetFontSize(t.FontSize)
	c.SetClip(dst.Bounds())
	c.SetDst(dst)
	c.SetSrc(image.NewUniform(col))
	c.SetHinting(font.HintingFull)

	if _, err := c.DrawString(t.Text, freetype.Pt(box.Min.X, box.Min.Y+ascent)); err != nil {
		return fmt.Errorf("failed to draw string: %w", err)
	}
	return nil
}

func (r *Renderer) face(size float64) font.Face {
	return truetype.NewFace(r.font, &truetype.Options{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
}

func ContentType(format string) string {
	switch format {
	case FormatJPEG:
		return "image/jpeg"
	default:
		return "image/png"
	}
}
