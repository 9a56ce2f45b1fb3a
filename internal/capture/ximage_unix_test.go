//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"image/color"
	"testing"

	"github.com/jezek/xgb/xproto"
)

func TestXImageToRGBA(t *testing.T) {
	setup := &xproto.SetupInfo{PixmapFormats: []xproto.Format{{Depth: 24, BitsPerPixel: 32}}}
	reply := &xproto.GetImageReply{
		Depth: 24,
		Data: []byte{
			1, 2, 3, 0, 4, 5, 6, 0,
		},
	}
	img, err := xImageToRGBA(setup, reply, 2, 1)
	if err != nil {
		t.Fatalf("xImageToRGBA: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{3, 2, 1, 255}) {
		t.Errorf("pixel 0 = %v", got)
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{6, 5, 4, 255}) {
		t.Errorf("pixel 1 = %v", got)
	}

	reply.Depth = 8
	if _, err := xImageToRGBA(setup, reply, 2, 1); err == nil {
		t.Error("expected unsupported depth error")
	}
}
