package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/kokodio/tdd/pkg/errors"
)

func encodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func savePNG(path string, img image.Image) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := encodePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// PNG encodes r's current image into memory.
func PNG(r Renderer) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.WritePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
