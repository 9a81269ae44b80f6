package images

import (
	"bytes"
	"image"
	"image/jpeg"
	"io"

	_ "image/gif"
	_ "image/png"

	"github.com/nfnt/resize"

	"github.com/Sanushoffl/thelivostore/internal/apperr"
)

// MaxWidth bounds uploaded images before they are forwarded to storage.
const MaxWidth = 800

// Normalize decodes an uploaded image, scales it down to MaxWidth if it is
// wider, and re-encodes it as JPEG. Files that do not decode as images are
// rejected with a validation error.
func Normalize(r io.Reader) (io.Reader, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, apperr.Wrap(apperr.Validation, "uploaded file is not a valid image", err)
	}

	if img.Bounds().Dx() > MaxWidth {
		img = resize.Resize(MaxWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return nil, apperr.Wrap(apperr.Validation, "failed to encode image", err)
	}
	return &buf, nil
}
