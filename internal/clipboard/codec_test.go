package clipboard

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestCodecKeepsPixels(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.SetNRGBA(2, 1, color.NRGBA{R: 200, G: 10, B: 30, A: 255})

	data, err := encode(src)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Bounds() != src.Bounds() {
		t.Fatalf("bounds = %v", got.Bounds())
	}
	r, g, b, _ := got.At(2, 1).RGBA()
	if r>>8 != 200 || g>>8 != 10 || b>>8 != 30 {
		t.Fatalf("pixel = %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestCodecRejectsEmpty(t *testing.T) {
	if _, err := encode(image.NewNRGBA(image.Rectangle{})); err == nil {
		t.Fatalf("expected error for empty image")
	}
	if _, err := decode(nil); !errors.Is(err, ErrNoImage) {
		t.Fatalf("expected ErrNoImage, got %v", err)
	}
	if _, err := decode([]byte("not a png")); err == nil {
		t.Fatalf("expected decode error")
	}
}
