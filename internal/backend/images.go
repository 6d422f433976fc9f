package backend

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

// Upload is an image ready to attach to a multipart request.
type Upload struct {
	Filename string
	Data     []byte
}

const uploadMaxWidth = 800

// PrepareImage decodes an uploaded product image, scales it down to the
// standard width and re-encodes it as jpeg before it is forwarded to the
// backend. Only PNG and JPEG inputs are accepted.
func PrepareImage(r io.Reader, filename string) (*Upload, error) {
	var img image.Image
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		img, err = png.Decode(r)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(r)
	default:
		return nil, fmt.Errorf("unsupported image format %q", filepath.Ext(filename))
	}
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	scaled := resize.Resize(uploadMaxWidth, 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return &Upload{
		Filename: uuid.New().String() + ".jpg",
		Data:     buf.Bytes(),
	}, nil
}
