// Package imaging turns uploaded image bytes into pixel tensors.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"leafd/internal/tensor"
)

// Channels is the channel count of decoded tensors (RGB).
const Channels = 3

// DefaultMaxPixels caps width x height before pixel data is decoded.
const DefaultMaxPixels = 2 * 89478485

var (
	// ErrEmptyImage is returned when no bytes were uploaded.
	ErrEmptyImage = errors.New("empty image data")
	// ErrTooManyPixels is returned for images above the pixel cap.
	ErrTooManyPixels = errors.New("image exceeds pixel limit")
)

// Options controls decoding. Zero Width/Height keep the native size.
type Options struct {
	Width  int
	Height int
	// MaxPixels limits width x height (0 = DefaultMaxPixels).
	MaxPixels int64
}

// Decoded is a decoded image with its tensor and source metadata.
type Decoded struct {
	Tensor tensor.Tensor
	Format string
	// Native dimensions before any resize.
	SrcWidth  int
	SrcHeight int
}

// Decode reads an encoded image and returns an H x W x 3 float32 tensor of
// raw 0..255 RGB values. Alpha is dropped; gray and paletted images are
// expanded to RGB.
func Decode(data []byte, opts Options) (Decoded, error) {
	if len(data) == 0 {
		return Decoded{}, ErrEmptyImage
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Decoded{}, fmt.Errorf("cannot identify image file: %w", err)
	}
	limit := opts.MaxPixels
	if limit <= 0 {
		limit = DefaultMaxPixels
	}
	if px := int64(cfg.Width) * int64(cfg.Height); px > limit {
		return Decoded{}, fmt.Errorf("%w: %dx%d is %d pixels, limit %d", ErrTooManyPixels, cfg.Width, cfg.Height, px, limit)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Decoded{}, fmt.Errorf("cannot identify image file: %w", err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return Decoded{}, fmt.Errorf("image has zero size %dx%d", b.Dx(), b.Dy())
	}
	out := Decoded{Format: format, SrcWidth: b.Dx(), SrcHeight: b.Dy()}
	if opts.Width > 0 && opts.Height > 0 && (opts.Width != b.Dx() || opts.Height != b.Dy()) {
		img = resize.Resize(uint(opts.Width), uint(opts.Height), img, resize.Bilinear)
	}
	out.Tensor = ToTensor(img)
	return out, nil
}

// ToTensor converts img into an H x W x 3 tensor.
func ToTensor(img image.Image) tensor.Tensor {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	data := make([]float32, h*w*Channels)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			data[i] = float32(c.R)
			data[i+1] = float32(c.G)
			data[i+2] = float32(c.B)
			i += Channels
		}
	}
	return tensor.Tensor{Shape: []int64{int64(h), int64(w), Channels}, Data: data}
}
