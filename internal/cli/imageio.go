package cli

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	// Register decoders for destination images.
	_ "golang.org/x/image/webp"
)

// errUnknownFormat is returned for output paths with an unsupported extension.
var errUnknownFormat = errors.New("unknown output format")

// Output formats, keyed by lower-case file extension.
const (
	formatPNG  = "png"
	formatJPEG = "jpeg"
	formatBMP  = "bmp"
	formatTIFF = "tiff"
)

// outputFormat maps a file name to an output format.
func outputFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return formatPNG, nil
	case ".jpg", ".jpeg":
		return formatJPEG, nil
	case ".bmp":
		return formatBMP, nil
	case ".tif", ".tiff":
		return formatTIFF, nil
	default:
		return "", fmt.Errorf("%w: %q (use .png, .jpg, .bmp or .tiff)", errUnknownFormat, filepath.Ext(path))
	}
}

// encodeImage writes img to w in the given format.
func encodeImage(w io.Writer, img image.Image, format string) error {
	switch format {
	case formatPNG:
		return png.Encode(w, img)
	case formatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case formatBMP:
		return bmp.Encode(w, img)
	case formatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return fmt.Errorf("%w: %s", errUnknownFormat, format)
	}
}

// writeImage encodes img to path, choosing the format from the extension.
func writeImage(path string, img image.Image) (err error) {
	format, err := outputFormat(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()
	if err := encodeImage(f, img, format); err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return nil
}

// readImage decodes a PNG, JPEG, BMP, TIFF or WebP image.
func readImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open destination: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decode destination %s: %w", path, err)
	}
	return img, format, nil
}
