package renderer

import (
	"image"
	"math"
	"time"

	"github.com/df07/scanline-pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels  int           // Total number of pixels rendered
	TotalSamples int           // Total number of samples taken
	Rows         int           // Number of scanlines rendered
	NumWorkers   int           // Workers used for the render
	Elapsed      time.Duration // Wall time spent rendering
}

// AverageSamples returns the mean number of samples per pixel
func (s RenderStats) AverageSamples() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalSamples) / float64(s.TotalPixels)
}

// PixelStats accumulates the traced samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Color // Sum of all sample radiances
	SampleCount int        // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Color) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Color {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Divide(float64(ps.SampleCount))
}

// ToneMap converts a summed radiance into 8-bit channel values: average over samples,
// gamma-2 correct, clamp to [0, 0.999] and scale by 256. NaN channels map to 0.
func ToneMap(sum core.Color, samples int) [3]int {
	var rgb [3]int
	if samples <= 0 {
		return rgb
	}

	scale := 1.0 / float64(samples)
	for i := 0; i < 3; i++ {
		c := sum.Index(i) * scale
		if math.IsNaN(c) || c <= 0 {
			continue
		}
		rgb[i] = int(256 * math.Min(math.Sqrt(c), 0.999))
	}
	return rgb
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of img with channels scaled to [0,1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	if bounds.Empty() {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += core.NewVec3(float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff).Luminance()
		}
	}

	return total / float64(bounds.Dx()*bounds.Dy())
}
