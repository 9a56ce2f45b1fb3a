//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"fmt"
	"image"

	"github.com/jezek/xgb/xproto"
)

// bitsPerPixel looks up the pixmap format for depth.
func bitsPerPixel(setup *xproto.SetupInfo, depth byte) int {
	for _, format := range setup.PixmapFormats {
		if format.Depth == depth {
			return int(format.BitsPerPixel)
		}
	}
	return 0
}

// xImageToRGBA converts a ZPixmap reply in BGR(A) byte order.
func xImageToRGBA(setup *xproto.SetupInfo, reply *xproto.GetImageReply, width, height int) (*image.RGBA, error) {
	switch {
	case setup == nil:
		return nil, fmt.Errorf("xproto setup unavailable")
	case width <= 0 || height <= 0:
		return nil, fmt.Errorf("screen has empty geometry")
	case reply == nil || len(reply.Data) == 0:
		return nil, fmt.Errorf("screen pixels: empty image data")
	}

	bpp := bitsPerPixel(setup, reply.Depth) / 8
	if bpp < 3 {
		return nil, fmt.Errorf("unsupported depth %d", reply.Depth)
	}
	stride := len(reply.Data) / height
	if stride*height != len(reply.Data) || stride < width*bpp {
		return nil, fmt.Errorf("screen pixels: unexpected stride")
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := reply.Data[y*stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			s, d := row[x*bpp:], dst[x*4:]
			d[0], d[1], d[2], d[3] = s[2], s[1], s[0], 0xFF
			// Depth 24 pads the fourth byte; only depth 32 carries alpha.
			if bpp == 4 && reply.Depth == 32 {
				d[3] = s[3]
			}
		}
	}
	return img, nil
}
