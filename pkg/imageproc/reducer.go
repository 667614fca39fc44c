package imageproc

import (
	"fmt"
	"math"

	"github.com/disintegration/imaging"
)

const (
	// DefaultMaxImageSize is the largest payload the detection service accepts.
	DefaultMaxImageSize  = 5000000
	DefaultMaxIterations = 10
)

type Reducer struct {
	budget        int
	maxIterations int
	quality       int
}

func NewReducer(budget int, maxIterations int, quality int) *Reducer {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	return &Reducer{
		budget:        budget,
		maxIterations: maxIterations,
		quality:       quality,
	}
}

func (r *Reducer) Budget() int {
	return r.budget
}

// Reduce downsamples src until its encoded length is at most the budget,
// keeping the aspect ratio. Each step scales both sides by
// sqrt(budget/length) since encoded size tracks pixel area. An image that
// already fits is returned unchanged.
func (r *Reducer) Reduce(src *SourceImage) (*SourceImage, error) {
	if r.budget <= 0 {
		return nil, fmt.Errorf("%w: non-positive size budget %d", ErrInvalidImage, r.budget)
	}
	if src == nil || len(src.Data) == 0 {
		return nil, fmt.Errorf("%w: empty buffer", ErrInvalidImage)
	}
	if len(src.Data) <= r.budget {
		return src, nil
	}
	if src.pixels == nil || src.Width <= 0 || src.Height <= 0 {
		return nil, fmt.Errorf("%w: image is not decoded", ErrInvalidImage)
	}

	format, err := FormatFromMime(src.MimeType)
	if err != nil {
		return nil, err
	}

	current := src
	for i := 0; len(current.Data) > r.budget; i++ {
		if i >= r.maxIterations {
			return nil, fmt.Errorf("%w: %d bytes after %d iterations (budget %d)",
				ErrImageTooLarge, len(current.Data), i, r.budget)
		}

		scale := math.Sqrt(float64(r.budget) / float64(len(current.Data)))
		width := max(1, int(float64(current.Width)*scale))
		height := max(1, int(float64(current.Height)*scale))
		if width == current.Width && height == current.Height {
			return nil, fmt.Errorf("%w: %dx%d image is %d bytes (budget %d)",
				ErrImageTooLarge, width, height, len(current.Data), r.budget)
		}

		// always resample from the source pixels
		resized := imaging.Resize(src.pixels, width, height, imaging.Lanczos)
		data, err := encode(resized, format, r.quality)
		if err != nil {
			return nil, err
		}

		current = &SourceImage{
			Width:    width,
			Height:   height,
			Data:     data,
			MimeType: src.MimeType,
			pixels:   resized,
		}
	}

	return current, nil
}
