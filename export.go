package moodboard

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	_ "golang.org/x/image/webp"
)

// ErrImageUnavailable is wrapped by every failure to obtain an image for
// export: unreachable hosts, bad status codes, undecodable bytes.
var ErrImageUnavailable = errors.New("image unavailable")

// ExportError reports which item stopped an export. It matches
// ErrImageUnavailable with errors.Is.
type ExportError struct {
	ItemID string
	Src    string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export: item %s (%s): %v", e.ItemID, e.Src, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// Is reports whether target is ErrImageUnavailable.
func (e *ExportError) Is(target error) bool { return target == ErrImageUnavailable }

// ImageSource loads the picture behind an image item's src.
type ImageSource interface {
	Image(ctx context.Context, src string) (image.Image, error)
}

// ImageSourceFunc adapts a function to ImageSource.
type ImageSourceFunc func(ctx context.Context, src string) (image.Image, error)

// Image calls f(ctx, src).
func (f ImageSourceFunc) Image(ctx context.Context, src string) (image.Image, error) {
	return f(ctx, src)
}

// HTTPImageSource fetches http(s) URLs and reads anything else as a local
// file path. PNG, JPEG, GIF and WebP are decoded. Results are cached by src
// for the lifetime of the source.
type HTTPImageSource struct {
	Client *http.Client

	mu    sync.Mutex
	cache map[string]image.Image
}

// NewHTTPImageSource returns a source using client, or a client with a
// 15 second timeout when client is nil.
func NewHTTPImageSource(client *http.Client) *HTTPImageSource {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPImageSource{Client: client, cache: make(map[string]image.Image)}
}

// Image implements ImageSource.
func (s *HTTPImageSource) Image(ctx context.Context, src string) (image.Image, error) {
	s.mu.Lock()
	if img, ok := s.cache[src]; ok {
		s.mu.Unlock()
		return img, nil
	}
	s.mu.Unlock()

	img, err := s.load(ctx, src)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[src] = img
	s.mu.Unlock()
	return img, nil
}

func (s *HTTPImageSource) load(ctx context.Context, src string) (image.Image, error) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		f, err := os.Open(src)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImageUnavailable, err)
		}
		defer f.Close()
		return decodeImage(f)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageUnavailable, err)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %s", ErrImageUnavailable, resp.Status)
	}
	return decodeImage(resp.Body)
}

func decodeImage(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrImageUnavailable, err)
	}
	return img, nil
}

// CoverFit scales a srcW x srcH picture so it fills a dstW x dstH box while
// keeping its aspect ratio, centered and cropped. It returns the scale and
// the offset of the picture's top-left corner relative to the box.
func CoverFit(srcW, srcH, dstW, dstH float64) (scale, offX, offY float64) {
	if srcW <= 0 || srcH <= 0 {
		return 1, 0, 0
	}
	scale = math.Max(dstW/srcW, dstH/srcH)
	return scale, (dstW - srcW*scale) / 2, (dstH - srcH*scale) / 2
}

// Exporter renders a board to an image in paint order. Renders may run
// concurrently; drawing with Face is serialized.
type Exporter struct {
	Images     ImageSource
	Face       font.Face
	Background color.Color
	TextColor  color.Color

	faceMu sync.Mutex
}

// NewExporter returns an exporter drawing text in Go Regular on white.
func NewExporter(images ImageSource) (*Exporter, error) {
	face, err := NewGoRegularFace(DefaultFontSize)
	if err != nil {
		return nil, err
	}
	return &Exporter{
		Images:     images,
		Face:       face,
		Background: color.White,
		TextColor:  color.NRGBA{0x17, 0x17, 0x17, 0xff},
	}, nil
}

// Render draws state into a new image the size of the board. The state is
// only read. An image that cannot be loaded aborts the render with an
// *ExportError.
func (e *Exporter) Render(ctx context.Context, state *BoardState) (image.Image, error) {
	if state == nil {
		return nil, errors.New("export: nil state")
	}
	w := int(math.Ceil(state.Board.Width))
	h := int(math.Ceil(state.Board.Height))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("export: invalid board size %vx%v", state.Board.Width, state.Board.Height)
	}

	dc := gg.NewContext(w, h)
	bg := e.Background
	if bg == nil {
		bg = color.White
	}
	dc.SetColor(bg)
	dc.Clear()

	for _, item := range state.Board.ItemsByZ() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b := item.Base()
		switch v := item.(type) {
		case ColorItem:
			c, ok := ParseHexColor(v.Hex)
			if !ok {
				c = ColorNeutral
			}
			dc.SetColor(c.RGBA())
			dc.DrawRectangle(b.X, b.Y, v.Width, v.Height)
			dc.Fill()

		case TextItem:
			e.drawText(dc, v)

		case ImageItem:
			if e.Images == nil {
				return nil, &ExportError{ItemID: b.ID, Src: v.Src, Err: ErrImageUnavailable}
			}
			img, err := e.Images.Image(ctx, v.Src)
			if err != nil {
				return nil, &ExportError{ItemID: b.ID, Src: v.Src, Err: err}
			}
			size := img.Bounds().Size()
			scale, ox, oy := CoverFit(float64(size.X), float64(size.Y), v.Width, v.Height)
			dc.Push()
			dc.DrawRectangle(b.X, b.Y, v.Width, v.Height)
			dc.Clip()
			dc.Translate(b.X+ox, b.Y+oy)
			dc.Scale(scale, scale)
			dc.DrawImage(img, 0, 0)
			dc.Pop()
			dc.ResetClip()
		}
	}
	return dc.Image(), nil
}

func (e *Exporter) drawText(dc *gg.Context, v TextItem) {
	if e.Face == nil {
		return
	}
	// Font faces cache glyphs and are not safe for concurrent use.
	e.faceMu.Lock()
	defer e.faceMu.Unlock()

	dc.SetFontFace(e.Face)
	tc := e.TextColor
	if tc == nil {
		tc = color.Black
	}
	dc.SetColor(tc)
	m := e.Face.Metrics()
	ascent := float64(m.Ascent) / 64
	lineHeight := float64(m.Height) / 64
	for i, line := range strings.Split(v.Text, "\n") {
		dc.DrawString(line, v.X+TextPaddingX, v.Y+TextPaddingY+ascent+float64(i)*lineHeight)
	}
}

// WritePNG renders state and encodes it as PNG to w.
func (e *Exporter) WritePNG(ctx context.Context, w io.Writer, state *BoardState) error {
	img, err := e.Render(ctx, state)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG renders state to <dir>/<timestamp>_<label>.png and returns the
// path. Characters unsafe in file names are replaced in label. Nothing is
// written when rendering fails.
func (e *Exporter) SavePNG(ctx context.Context, dir, label string, state *BoardState) (string, error) {
	img, err := e.Render(ctx, state)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	stamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
	if err := writePNG(path, img); err != nil {
		return "", err
	}
	return path, nil
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "board" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "board"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
