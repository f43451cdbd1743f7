package artwork

import (
	"bytes"
	"image"
	"image/jpeg"

	"github.com/nfnt/resize"
)

const (
	previewSize        = 320
	previewJPEGQuality = 80
)

// Preview produces a small JPEG thumbnail of a cover, preserving
// aspect ratio, for use in result keyboards and share cards. Images
// already at or below the preview size are re-encoded unchanged.
func Preview(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &ImageError{Reason: "decode failed", Err: err}
	}

	thumb := resize.Thumbnail(previewSize, previewSize, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: previewJPEGQuality}); err != nil {
		return nil, &ImageError{Reason: "encode failed", Err: err}
	}
	return buf.Bytes(), nil
}
