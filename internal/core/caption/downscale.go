package caption

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

// maxDim caps the longer image edge before upload. Phone captures are much
// larger than the caption model needs and inflate request latency.
const maxDim = 1024

// downscale shrinks oversized images and re-encodes them as JPEG. Anything
// that fails to decode is passed through untouched and left to the model
// backend to reject.
func downscale(img []byte, mime string) ([]byte, string) {
	decoded, _, err := image.Decode(bytes.NewReader(img))
	if err != nil {
		return img, mime
	}
	bounds := decoded.Bounds()
	if bounds.Dx() <= maxDim && bounds.Dy() <= maxDim {
		return img, mime
	}

	var scaled image.Image
	if bounds.Dx() >= bounds.Dy() {
		scaled = resize.Resize(maxDim, 0, decoded, resize.Lanczos3)
	} else {
		scaled = resize.Resize(0, maxDim, decoded, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: 85}); err != nil {
		return img, mime
	}
	return buf.Bytes(), "image/jpeg"
}
