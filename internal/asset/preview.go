package asset

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
)

// Preview crop box inside the cape sprite sheet: the back-panel icon.
// Top-left (1,1), bottom-right (11,16) exclusive, giving a 10x15 region.
var previewRect = image.Rect(1, 1, 11, 16)

// CapePreview derives the preview image for a cape texture by cropping the
// back-panel region and re-encoding it as PNG. The result is deterministic:
// identical texture bytes always produce identical preview bytes.
func CapePreview(texture []byte) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(texture))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	cropped := image.NewRGBA(image.Rect(0, 0, previewRect.Dx(), previewRect.Dy()))
	for y := 0; y < previewRect.Dy(); y++ {
		for x := 0; x < previewRect.Dx(); x++ {
			cropped.Set(x, y, img.At(previewRect.Min.X+x, previewRect.Min.Y+y))
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, cropped); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return buf.Bytes(), nil
}
