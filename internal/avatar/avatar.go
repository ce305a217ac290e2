// Package avatar normalizes uploaded avatar images to a fixed-size PNG.
package avatar

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/nfnt/resize"

	"hoppon-server/internal/domain"
)

// ParseDataURL extracts the raw image bytes from a base64 data URL as sent by
// the web client's file picker.
func ParseDataURL(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "data:image/") {
		return nil, fmt.Errorf("%w: invalid image data", domain.ErrInvalidInput)
	}
	idx := strings.Index(s, ";base64,")
	if idx < 0 {
		return nil, fmt.Errorf("%w: invalid image data", domain.ErrInvalidInput)
	}
	raw, err := base64.StdEncoding.DecodeString(s[idx+len(";base64,"):])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 image data", domain.ErrInvalidInput)
	}
	return raw, nil
}

// Normalize decodes the image, scales it so the shorter side matches size,
// center-crops to a size x size square, and re-encodes as PNG.
func Normalize(data []byte, size int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: undecodable image data", domain.ErrInvalidInput)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: empty image", domain.ErrInvalidInput)
	}

	// Scale so the shorter side lands exactly on size (cover fit).
	var scaled image.Image
	if w < h {
		scaled = resize.Resize(uint(size), 0, img, resize.Lanczos3)
	} else {
		scaled = resize.Resize(0, uint(size), img, resize.Lanczos3)
	}

	sb := scaled.Bounds()
	offX := sb.Min.X + (sb.Dx()-size)/2
	offY := sb.Min.Y + (sb.Dy()-size)/2

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), scaled, image.Pt(offX, offY), draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode avatar: %w", err)
	}
	return buf.Bytes(), nil
}
