package renderer

import (
	"errors"
	"fmt"
	"time"

	"github.com/df07/scanline-pathtracer/pkg/core"
	"github.com/df07/scanline-pathtracer/pkg/geometry"
)

// ErrInvalidConfig is returned when the image size or sample count is not positive
var ErrInvalidConfig = errors.New("invalid sampling configuration")

// RenderOptions contains configuration for the scanline render driver
type RenderOptions struct {
	NumWorkers int         // Number of parallel workers (0 = use CPU count)
	SeedOffset int64       // Added to each scanline index to form its seed
	Logger     core.Logger // Progress output; nil discards it
}

// ScanlineRenderer renders an image one scanline per task on a worker pool
type ScanlineRenderer struct {
	raytracer *Raytracer
	config    core.SamplingConfig
	options   RenderOptions
	logger    core.Logger
}

// NewScanlineRenderer creates a render driver for the given camera and world
func NewScanlineRenderer(camera *geometry.Camera, world core.Shape, config core.SamplingConfig, options RenderOptions) (*ScanlineRenderer, error) {
	if config.Width <= 0 || config.Height <= 0 || config.SamplesPerPixel <= 0 {
		return nil, fmt.Errorf("%w: %dx%d at %d samples per pixel", ErrInvalidConfig, config.Width, config.Height, config.SamplesPerPixel)
	}
	if config.MaxDepth < 0 {
		return nil, fmt.Errorf("%w: negative max depth %d", ErrInvalidConfig, config.MaxDepth)
	}

	logger := options.Logger
	if logger == nil {
		logger = discardLogger{}
	}

	return &ScanlineRenderer{
		raytracer: NewRaytracer(camera, world, config),
		config:    config,
		options:   options,
		logger:    logger,
	}, nil
}

// Raytracer returns the per-scanline sampler, e.g. to swap its integrator
func (sr *ScanlineRenderer) Raytracer() *Raytracer {
	return sr.raytracer
}

// Render traces every scanline and assembles the rows by index. Scanline j is seeded with
// j + SeedOffset, so the output does not depend on the number of workers. If any scanline
// fails, the error of the topmost failing scanline is returned and no image is produced.
func (sr *ScanlineRenderer) Render() (*Image, RenderStats, error) {
	start := time.Now()
	height := sr.config.Height

	workerPool := NewWorkerPool(sr.raytracer, height, sr.options.NumWorkers)
	workerPool.Start()

	for j := height - 1; j >= 0; j-- {
		workerPool.SubmitTask(ScanlineTask{Row: j, Seed: int64(j) + sr.options.SeedOffset})
	}

	sr.logger.Printf("Rendering %dx%d at %d samples per pixel (using %d workers)\n",
		sr.config.Width, height, sr.config.SamplesPerPixel, workerPool.GetNumWorkers())

	rows := make([][]PixelStats, height)
	errs := make([]error, height)
	for remaining := height; remaining > 0; remaining-- {
		result, ok := workerPool.GetResult()
		if !ok {
			break
		}
		rows[result.Row] = result.Pixels
		errs[result.Row] = result.Error
		sr.logger.Printf("\rScanlines remaining: %d ", remaining-1)
	}
	workerPool.Stop()
	sr.logger.Printf("\nDone.\n")

	for j := height - 1; j >= 0; j-- {
		if errs[j] != nil {
			return nil, RenderStats{}, errs[j]
		}
	}

	img := NewImage(sr.config.Width, height)
	stats := RenderStats{
		Rows:       height,
		NumWorkers: workerPool.GetNumWorkers(),
	}
	for j, pixels := range rows {
		img.setScanline(j, pixels)
		for _, ps := range pixels {
			stats.TotalPixels++
			stats.TotalSamples += ps.SampleCount
		}
	}
	stats.Elapsed = time.Since(start)

	return img, stats, nil
}
