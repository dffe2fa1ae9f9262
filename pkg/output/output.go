// Package output writes rendered images as PPM, PNG, BMP or TIFF files.
package output

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnknownFormat is returned for file extensions with no encoder
var ErrUnknownFormat = errors.New("unknown image format")

// Format identifies an image encoding
type Format string

const (
	FormatPPM  Format = "ppm"
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// rgbImage is implemented by images that can report exact 8-bit channel values
type rgbImage interface {
	image.Image
	RGB(x, y int) [3]int
}

// FormatForPath picks the encoder from the file extension
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ppm":
		return FormatPPM, nil
	case ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPPM:
		return WritePPM(w, img)
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteImage encodes img into the file at path, choosing the format from its extension
func WriteImage(path string, img image.Image) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := Encode(file, img, format); err != nil {
		file.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// WritePPM writes img as a plain-text P3 pixmap: the header "P3", the dimensions and the
// maximum channel value 255, then one "r g b" line per pixel in row-major order from the top.
func WritePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy()); err != nil {
		return err
	}

	exact, hasRGB := img.(rgbImage)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var rgb [3]int
			if hasRGB {
				rgb = exact.RGB(x, y)
			} else {
				r, g, b, _ := img.At(x, y).RGBA()
				rgb = [3]int{int(r >> 8), int(g >> 8), int(b >> 8)}
			}
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", rgb[0], rgb[1], rgb[2]); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}
