// Package asset validates uploaded image assets and derives cape previews.
package asset

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"

	"github.com/cosmostic/cosmostic-server/internal/model"
)

// Class identifies the validation rule applied to an uploaded image.
type Class string

const (
	// ClassCapeTexture requires a 46x22 PNG.
	ClassCapeTexture Class = "cape_texture"
	// ClassAccessoryTexture requires a PNG with both dimensions in [16,100].
	ClassAccessoryTexture Class = "accessory_texture"
	// ClassAccessoryPreview requires a 150x150 PNG.
	ClassAccessoryPreview Class = "accessory_preview"
)

// Cape texture dimensions fixed by the sprite sheet layout.
const (
	CapeTextureWidth  = 46
	CapeTextureHeight = 22
)

var (
	// ErrInvalidImage means the data does not decode as PNG.
	ErrInvalidImage = fmt.Errorf("%w: file must be an image (png)", model.ErrInvalidInput)
	// ErrWrongDimensions means the image decoded but its size violates the class rule.
	ErrWrongDimensions = fmt.Errorf("%w: wrong image dimensions", model.ErrInvalidInput)
)

// Validate checks that data decodes fully as PNG and that its dimensions
// satisfy the rule for the given class. The whole image is decoded before the
// dimension check so a truncated or corrupt stream fails as a format error,
// not a dimension error. Returns data unchanged on success.
func Validate(data []byte, class Class) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	switch class {
	case ClassCapeTexture:
		if width != CapeTextureWidth || height != CapeTextureHeight {
			return nil, fmt.Errorf("%w: dimensions must be %dx%d pixels", ErrWrongDimensions, CapeTextureWidth, CapeTextureHeight)
		}
	case ClassAccessoryTexture:
		if width < 16 || width > 100 || height < 16 || height > 100 {
			return nil, fmt.Errorf("%w: dimensions must be between 16x16 and 100x100 pixels", ErrWrongDimensions)
		}
	case ClassAccessoryPreview:
		if width != 150 || height != 150 {
			return nil, fmt.Errorf("%w: dimensions must be 150x150 pixels", ErrWrongDimensions)
		}
	default:
		return nil, errors.New("unknown asset class")
	}

	return data, nil
}
