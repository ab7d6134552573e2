// Package logo ingests an uploaded logo image: it validates and decodes
// the file, samples a dominant color to drive the document theme, and
// encodes the bytes as a data URL for embedding in the draft.
package logo

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"

	"github.com/disintegration/imaging"
)

// MaxUploadBytes caps the accepted logo size.
const MaxUploadBytes = 2 << 20

var ErrTooLarge = errors.New("logo file too large")

// Ingest reads the upload, decodes it as an image and returns the data
// URL to store plus the sampled theme color. Either stage failing returns
// an error and nothing is stored; the caller clears its busy flag and
// keeps the previous theme.
func Ingest(r io.Reader) (dataURL, themeColor string, err error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return "", "", fmt.Errorf("read logo: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return "", "", ErrTooLarge
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", "", fmt.Errorf("decode logo: %w", err)
	}
	return EncodeDataURL(data), DominantColor(img), nil
}

// DominantColor downscales the image and averages the channels. Crude
// next to a full palette quantizer, but it lands on a usable brand-ish
// color and never fails.
func DominantColor(img image.Image) string {
	small := imaging.Resize(img, 32, 32, imaging.Lanczos)
	var r, g, b, n uint64
	for i := 0; i < len(small.Pix); i += 4 {
		r += uint64(small.Pix[i])
		g += uint64(small.Pix[i+1])
		b += uint64(small.Pix[i+2])
		n++
	}
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", uint8(r/n), uint8(g/n), uint8(b/n))
}

// EncodeDataURL wraps raw image bytes in a data URL with a sniffed MIME
// type, the encoding the draft stores and the preview renders.
func EncodeDataURL(data []byte) string {
	mime := http.DetectContentType(data)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
