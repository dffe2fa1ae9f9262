package renderer

import (
	"image"
	"image/color"
)

// Image is a tone-mapped render result. Rows are stored top to bottom, so row 0 holds the
// highest scanline index. Image implements image.Image.
type Image struct {
	Width  int
	Height int
	pixels [][3]int // row-major, top row first
}

// NewImage creates a black image of the given size
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		pixels: make([][3]int, width*height),
	}
}

// setScanline stores a rendered scanline. Scanline j sits at image row height-1-j.
func (img *Image) setScanline(j int, pixels []PixelStats) {
	row := img.Height - 1 - j
	for i, ps := range pixels {
		img.pixels[row*img.Width+i] = ToneMap(ps.ColorAccum, ps.SampleCount)
	}
}

// RGB returns the 8-bit channel values at column x of row y (top row is 0)
func (img *Image) RGB(x, y int) [3]int {
	return img.pixels[y*img.Width+x]
}

func (img *Image) ColorModel() color.Model {
	return color.RGBAModel
}

func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width, img.Height)
}

func (img *Image) At(x, y int) color.Color {
	if !image.Pt(x, y).In(img.Bounds()) {
		return color.RGBA{}
	}
	rgb := img.RGB(x, y)
	return color.RGBA{R: uint8(rgb[0]), G: uint8(rgb[1]), B: uint8(rgb[2]), A: 255}
}

// RGBA copies the image into a standard *image.RGBA
func (img *Image) RGBA() *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			rgb := img.RGB(x, y)
			offset := out.PixOffset(x, y)
			out.Pix[offset+0] = uint8(rgb[0])
			out.Pix[offset+1] = uint8(rgb[1])
			out.Pix[offset+2] = uint8(rgb[2])
			out.Pix[offset+3] = 255
		}
	}
	return out
}
