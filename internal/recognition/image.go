package recognition

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/heic"
)

// Azure OCR rejects images larger than this on either side.
const maxImageSide = 4200

// decodeImage decodes JPEG, PNG, GIF, BMP, TIFF and HEIC/HEIF frames.
// EXIF orientation is applied so receipts shot sideways read upright.
func decodeImage(data []byte, contentType string) (image.Image, error) {
	if isHEIC(data, contentType) {
		img, err := heic.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decoding HEIC/HEIF image: %w", err)
		}
		return img, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding image: %v", ErrUnsupportedFrame, err)
	}
	return img, nil
}

// enhance makes printed text stand out: grayscale, more contrast,
// sharpening and a slight brightness and gamma lift.
func enhance(img image.Image) image.Image {
	out := imaging.Grayscale(img)
	out = imaging.AdjustContrast(out, 30)
	out = imaging.Sharpen(out, 1.5)
	out = imaging.AdjustBrightness(out, 10)
	return imaging.AdjustGamma(out, 1.2)
}

// prepareImage decodes a frame, optionally enhances it, shrinks it to fit
// OCR limits and re-encodes it in format.
func prepareImage(data []byte, contentType string, doEnhance bool, format imaging.Format) ([]byte, error) {
	img, err := decodeImage(data, contentType)
	if err != nil {
		return nil, err
	}
	if doEnhance {
		img = enhance(img)
	}
	if b := img.Bounds(); b.Dx() > maxImageSide || b.Dy() > maxImageSide {
		img = imaging.Fit(img, maxImageSide, maxImageSide, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	return buf.Bytes(), nil
}

// isHEIC checks the content type and the ftyp brand at offset 4.
func isHEIC(data []byte, contentType string) bool {
	if strings.Contains(contentType, "heic") || strings.Contains(contentType, "heif") {
		return true
	}
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	switch string(data[8:12]) {
	case "heic", "heix", "heif", "mif1", "msf1":
		return true
	}
	return false
}
