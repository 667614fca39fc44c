package imageproc

import (
	"fmt"
	"image"
	"math"

	"FaceReporter/internal/entity"

	"github.com/disintegration/imaging"
)

const DefaultThumbnailSize = 72

type Extractor struct {
	size    int
	quality int
}

func NewExtractor(size int, quality int) *Extractor {
	if size <= 0 {
		size = DefaultThumbnailSize
	}
	return &Extractor{size: size, quality: quality}
}

// PixelRect converts a normalized box into a pixel rectangle of a
// width x height image. The result is not clipped.
func PixelRect(box entity.BoundingBox, width int, height int) image.Rectangle {
	x := int(math.Round(box.Left * float64(width)))
	y := int(math.Round(box.Top * float64(height)))
	w := int(math.Round(box.Width * float64(width)))
	h := int(math.Round(box.Height * float64(height)))
	return image.Rect(x, y, x+w, y+h)
}

// FitSize scales width x height to fit inside a size x size square, keeping
// the aspect ratio. Small crops are scaled up.
func FitSize(width int, height int, size int) (int, int) {
	scale := math.Min(float64(size)/float64(width), float64(size)/float64(height))
	w := max(1, int(math.Round(float64(width)*scale)))
	h := max(1, int(math.Round(float64(height)*scale)))
	return w, h
}

// Extract crops the face described by box out of src and scales it to fit the
// thumbnail square, encoded in the source format. src is never modified, so
// sibling faces may be extracted concurrently.
func (e *Extractor) Extract(src *SourceImage, box entity.BoundingBox) ([]byte, error) {
	if src == nil || src.pixels == nil {
		return nil, fmt.Errorf("%w: image is not decoded", ErrInvalidImage)
	}

	format, err := FormatFromMime(src.MimeType)
	if err != nil {
		return nil, err
	}

	bounds := src.pixels.Bounds()
	rect := PixelRect(box, src.Width, src.Height).Add(bounds.Min).Intersect(bounds)
	if rect.Empty() {
		return nil, fmt.Errorf("%w: face box %+v lies outside the %dx%d image",
			ErrInvalidImage, box, src.Width, src.Height)
	}

	cropped := imaging.Crop(src.pixels, rect)
	w, h := FitSize(rect.Dx(), rect.Dy(), e.size)
	thumb := imaging.Resize(cropped, w, h, imaging.Lanczos)

	return encode(thumb, format, e.quality)
}
