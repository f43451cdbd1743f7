// Package artwork assesses, fetches and enhances cover images.
package artwork

import (
	"bytes"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Quality tiers for a decoded cover image. QualityNone is reserved for
// data that could not be decoded at all.
type Quality string

const (
	QualityNone   Quality = "none"
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

// Dimension thresholds in pixels and the near-square aspect gate.
// Album art is conventionally square; a rectangular cover is flagged
// invalid even at high resolution.
const (
	MinDimension       = 500
	PreferredDimension = 1000

	minAspectRatio = 0.9
	maxAspectRatio = 1.1
)

// Assessment describes a single image. It is derived and stateless,
// recomputed on demand, never cached beyond one operation.
type Assessment struct {
	Width       int
	Height      int
	AspectRatio float64
	Format      string
	FileSize    int
	Quality     Quality
	IsValid     bool
}

// ImageError reports a download, decode or validation failure.
type ImageError struct {
	Reason string
	Err    error
}

func (e *ImageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("image %s: %v", e.Reason, e.Err)
	}
	return "image " + e.Reason
}

func (e *ImageError) Unwrap() error { return e.Err }

// ValidationError reports an image that decoded cleanly but failed the
// dimension or aspect checks on every URL attempted.
type ValidationError struct {
	Assessment Assessment
}

func (e *ValidationError) Error() string {
	a := e.Assessment
	if a.Width < MinDimension || a.Height < MinDimension {
		return fmt.Sprintf("image too small (%dx%d, minimum %dpx)", a.Width, a.Height, MinDimension)
	}
	return fmt.Sprintf("image not square (%dx%d)", a.Width, a.Height)
}

// Assess decodes the image header and classifies its quality.
// Undecodable data yields Quality=none and IsValid=false rather than
// an error; the caller decides whether that is fatal.
func Assess(data []byte) Assessment {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Assessment{
			Quality:  QualityNone,
			FileSize: len(data),
		}
	}

	a := Assessment{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Format:   format,
		FileSize: len(data),
	}
	if cfg.Height > 0 {
		a.AspectRatio = float64(cfg.Width) / float64(cfg.Height)
	}

	a.Quality = classify(cfg.Width, cfg.Height)
	a.IsValid = cfg.Width >= MinDimension &&
		cfg.Height >= MinDimension &&
		a.AspectRatio >= minAspectRatio &&
		a.AspectRatio <= maxAspectRatio

	return a
}

// AssessEmbedded classifies embedded cover art. It reuses the same
// dimension thresholds as Assess but skips the aspect-ratio gate:
// art found inside an audio file is trusted to be square by convention.
func AssessEmbedded(data []byte) Assessment {
	a := Assess(data)
	if a.Quality == QualityNone {
		return a
	}
	a.IsValid = a.Width >= MinDimension && a.Height >= MinDimension
	return a
}

func classify(width, height int) Quality {
	switch {
	case width >= PreferredDimension && height >= PreferredDimension:
		return QualityHigh
	case width >= MinDimension && height >= MinDimension:
		return QualityMedium
	default:
		return QualityLow
	}
}
