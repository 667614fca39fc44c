package imageproc

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

var (
	ErrInvalidImage  = errors.New("invalid image")
	ErrImageTooLarge = errors.New("image exceeds size budget")
)

const DefaultJPEGQuality = 90

// SourceImage is an encoded image together with its decoded pixels.
// Width and Height always describe Data; operations return a new value
// instead of mutating an existing one.
type SourceImage struct {
	Width    int
	Height   int
	Data     []byte
	MimeType string

	pixels image.Image
}

// Decode parses data as mimeType. The encoded bytes are kept as-is so an image
// that already fits its budget is forwarded without re-encoding.
func Decode(data []byte, mimeType string) (*SourceImage, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty buffer", ErrInvalidImage)
	}
	if _, err := FormatFromMime(mimeType); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("%w: zero-sized image", ErrInvalidImage)
	}

	return &SourceImage{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Data:     data,
		MimeType: mimeType,
		pixels:   img,
	}, nil
}

// Pixels returns the decoded image. Callers must treat it as read-only.
func (s *SourceImage) Pixels() image.Image {
	return s.pixels
}

// FormatFromMime maps an image mimetype such as "image/jpeg" to an encoder format.
func FormatFromMime(mimeType string) (imaging.Format, error) {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return 0, fmt.Errorf("%w: unsupported mimetype %q", ErrInvalidImage, mimeType)
	}

	format, err := imaging.FormatFromExtension(strings.TrimPrefix(mimeType, "image/"))
	if err != nil {
		return 0, fmt.Errorf("%w: unsupported mimetype %q", ErrInvalidImage, mimeType)
	}
	return format, nil
}

func encode(img image.Image, format imaging.Format, quality int) ([]byte, error) {
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
