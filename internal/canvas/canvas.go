// Package canvas holds the pixel buffer an editor session works on. Geometric
// operations are queued and only committed by Render, mirroring how the
// toolbar tools batch their work before repainting.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
)

// Axis selects the mirror direction for Flip.
type Axis int

const (
	// AxisX mirrors left to right.
	AxisX Axis = iota
	// AxisY mirrors top to bottom.
	AxisY
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

var (
	// ErrEmptyCrop is returned by Render when a queued crop does not overlap the image.
	ErrEmptyCrop = errors.New("crop rectangle does not overlap the image")
	// ErrBadAngle is returned by Render for rotations that are not a multiple of 90 degrees.
	ErrBadAngle = errors.New("rotation must be a multiple of 90 degrees")
	// ErrPixelLength is returned by Restore when the buffer does not match its dimensions.
	ErrPixelLength = errors.New("pixel buffer length does not match dimensions")
)

// PixelData is a raw, non-premultiplied RGBA buffer with its dimensions.
type PixelData struct {
	Width  int
	Height int
	Pix    []uint8
}

// Bounds returns the rectangle covered by the buffer.
func (p PixelData) Bounds() image.Rectangle { return image.Rect(0, 0, p.Width, p.Height) }

// Image wraps the buffer in an image without copying it.
func (p PixelData) Image() *image.NRGBA {
	return &image.NRGBA{Pix: p.Pix, Stride: p.Width * 4, Rect: p.Bounds()}
}

type op func(*image.NRGBA) (*image.NRGBA, error)

// Canvas is a mutable image with a queue of pending operations.
type Canvas struct {
	mu      sync.RWMutex
	img     *image.NRGBA
	pending []op
}

// New copies img into a fresh canvas anchored at the origin.
func New(img image.Image) *Canvas {
	return &Canvas{img: imaging.Clone(img)}
}

// Open decodes the image stored at path.
func Open(path string) (*Canvas, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return New(img), nil
}

// Decode reads an image from r.
func Decode(r io.Reader) (*Canvas, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, err
	}
	return New(img), nil
}

// Rotate queues a clockwise rotation. Negative values rotate counter clockwise.
func (c *Canvas) Rotate(degrees int) {
	c.enqueue(func(img *image.NRGBA) (*image.NRGBA, error) {
		switch ((degrees % 360) + 360) % 360 {
		case 0:
			return img, nil
		case 90:
			return imaging.Rotate270(img), nil
		case 180:
			return imaging.Rotate180(img), nil
		case 270:
			return imaging.Rotate90(img), nil
		}
		return nil, fmt.Errorf("rotate %d: %w", degrees, ErrBadAngle)
	})
}

// Flip queues a mirror along axis.
func (c *Canvas) Flip(axis Axis) {
	c.enqueue(func(img *image.NRGBA) (*image.NRGBA, error) {
		switch axis {
		case AxisX:
			return imaging.FlipH(img), nil
		case AxisY:
			return imaging.FlipV(img), nil
		}
		return nil, fmt.Errorf("flip: unknown axis %v", axis)
	})
}

// Crop queues a crop to the rectangle of the given size at (x, y). The
// rectangle is clipped to the image; a crop with no overlap fails on Render.
func (c *Canvas) Crop(width, height, x, y int) {
	c.enqueue(func(img *image.NRGBA) (*image.NRGBA, error) {
		rect := image.Rect(x, y, x+width, y+height)
		if width <= 0 || height <= 0 || rect.Intersect(img.Bounds()).Empty() {
			return nil, fmt.Errorf("crop %dx%d+%d+%d: %w", width, height, x, y, ErrEmptyCrop)
		}
		return imaging.Crop(img, rect), nil
	})
}

func (c *Canvas) enqueue(o op) {
	c.mu.Lock()
	c.pending = append(c.pending, o)
	c.mu.Unlock()
}

// Pending reports how many operations are waiting for Render.
func (c *Canvas) Pending() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pending)
}

// Render commits the pending operations in order. If any of them fails the
// image is left untouched and the queue is discarded.
func (c *Canvas) Render() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	ops := c.pending
	c.pending = nil
	img := c.img
	for _, o := range ops {
		next, err := o(img)
		if err != nil {
			return err
		}
		img = next
	}
	c.img = img
	return nil
}

// Bounds returns the committed image bounds.
func (c *Canvas) Bounds() image.Rectangle {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.img.Bounds()
}

// Snapshot returns a deep copy of the committed pixel buffer.
func (c *Canvas) Snapshot() PixelData {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b := c.img.Bounds()
	out := PixelData{Width: b.Dx(), Height: b.Dy(), Pix: make([]uint8, b.Dx()*b.Dy()*4)}
	for y := 0; y < b.Dy(); y++ {
		src := c.img.Pix[y*c.img.Stride : y*c.img.Stride+b.Dx()*4]
		copy(out.Pix[y*b.Dx()*4:], src)
	}
	return out
}

// Restore replaces the committed image with a copy of data and drops any
// pending operations.
func (c *Canvas) Restore(data PixelData) error {
	if data.Width <= 0 || data.Height <= 0 || len(data.Pix) != data.Width*data.Height*4 {
		return fmt.Errorf("restore %dx%d (%d bytes): %w", data.Width, data.Height, len(data.Pix), ErrPixelLength)
	}
	pix := make([]uint8, len(data.Pix))
	copy(pix, data.Pix)
	c.mu.Lock()
	c.img = &image.NRGBA{Pix: pix, Stride: data.Width * 4, Rect: data.Bounds()}
	c.pending = nil
	c.mu.Unlock()
	return nil
}

// NRGBA returns a copy of the committed image.
func (c *Canvas) NRGBA() *image.NRGBA {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return imaging.Clone(c.img)
}

// Encode writes the committed image to w. format is a file extension such
// as "png" or "jpg"; quality only applies to JPEG output.
func (c *Canvas) Encode(w io.Writer, format string, quality int) error {
	f, err := FormatFromName(format)
	if err != nil {
		return err
	}
	var opts []imaging.EncodeOption
	if quality > 0 {
		opts = append(opts, imaging.JPEGQuality(quality))
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return imaging.Encode(w, c.img, f, opts...)
}

// Save writes the committed image to path, picking the format from its extension.
func (c *Canvas) Save(path string, quality int) error {
	var opts []imaging.EncodeOption
	if quality > 0 {
		opts = append(opts, imaging.JPEGQuality(quality))
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if err := imaging.Save(c.img, path, opts...); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// FormatFromName resolves a format name or file name to an imaging format.
func FormatFromName(name string) (imaging.Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		ext = strings.ToLower(strings.TrimSpace(name))
	}
	return imaging.FormatFromExtension(ext)
}
