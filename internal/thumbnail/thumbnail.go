package thumbnail

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
)

// Ext is the extension of every generated thumbnail; thumbnails are
// always re-encoded as JPEG regardless of the source format.
const Ext = ".jpg"

const jpegQuality = 85

// Generate decodes the image from r and downscales it so its longest
// side is at most maxPx, preserving aspect ratio. Images already within
// bounds are re-encoded unscaled. Video payloads are not supported;
// callers gate on the media kind.
func Generate(r io.Reader, maxPx int) (bytes.Buffer, error) {
	var buf bytes.Buffer
	if maxPx <= 0 {
		return buf, fmt.Errorf("invalid thumbnail size %d", maxPx)
	}

	src, _, err := image.Decode(r)
	if err != nil {
		return buf, fmt.Errorf("decode image: %w", err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return buf, fmt.Errorf("empty image %dx%d", w, h)
	}

	tw, th := w, h
	if w > maxPx || h > maxPx {
		if w >= h {
			tw = maxPx
			th = h * maxPx / w
		} else {
			th = maxPx
			tw = w * maxPx / h
		}
		if tw < 1 {
			tw = 1
		}
		if th < 1 {
			th = 1
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return buf, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf, nil
}
