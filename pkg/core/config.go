package core

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width in pixels
	Height          int // Image height in pixels
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// MergeSamplingConfig overlays the non-zero fields of override onto base
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	if override.Width > 0 {
		base.Width = override.Width
	}
	if override.Height > 0 {
		base.Height = override.Height
	}
	if override.SamplesPerPixel > 0 {
		base.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth > 0 {
		base.MaxDepth = override.MaxDepth
	}
	return base
}
