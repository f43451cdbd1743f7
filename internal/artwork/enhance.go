package artwork

import (
	"bytes"
	"image/jpeg"

	"github.com/disintegration/imaging"
)

// Fixed enhancement deltas. Applied unconditionally when Enhance is
// invoked; purely cosmetic, with no guarantee of a tier improvement.
const (
	sharpenSigma    = 1.0
	contrastDelta   = 20
	saturationDelta = 10
	brightnessDelta = 5

	enhancedJPEGQuality = 90
)

// EnhanceResult carries the re-encoded image together with its
// before/after assessments so callers can report the delta.
type EnhanceResult struct {
	Data   []byte
	Before Assessment
	After  Assessment
}

// Enhance runs the fixed sharpen/contrast/saturation/brightness
// pipeline over an image and re-encodes it as JPEG. The result is
// re-assessed so callers can compare classified quality before and
// after.
func Enhance(data []byte) (*EnhanceResult, error) {
	before := Assess(data)
	if before.Quality == QualityNone {
		return nil, &ImageError{Reason: "decode failed"}
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &ImageError{Reason: "decode failed", Err: err}
	}

	img = imaging.Sharpen(img, sharpenSigma)
	img = imaging.AdjustContrast(img, contrastDelta)
	img = imaging.AdjustSaturation(img, saturationDelta)
	img = imaging.AdjustBrightness(img, brightnessDelta)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: enhancedJPEGQuality}); err != nil {
		return nil, &ImageError{Reason: "encode failed", Err: err}
	}

	return &EnhanceResult{
		Data:   buf.Bytes(),
		Before: before,
		After:  Assess(buf.Bytes()),
	}, nil
}
