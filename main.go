package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/scanline-pathtracer/pkg/core"
	"github.com/df07/scanline-pathtracer/pkg/output"
	"github.com/df07/scanline-pathtracer/pkg/renderer"
	"github.com/df07/scanline-pathtracer/pkg/scene"
)

// Config holds the command line options
type Config struct {
	SceneName string
	Width     int
	Samples   int
	Depth     int
	Workers   int
	Seed      int64
	Output    string
	Help      bool
}

func main() {
	config, fs, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	if config.Help {
		showHelp(os.Stdout, fs)
		return
	}

	if err := run(config, os.Stdout, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags parses args into a Config. Zero-valued numeric options keep the scene's own settings.
func parseFlags(args []string, errOut io.Writer) (Config, *flag.FlagSet, error) {
	var config Config
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(errOut)

	fs.StringVar(&config.SceneName, "scene", "default", "Scene name or path to a JSON scene file")
	fs.IntVar(&config.Width, "width", 0, "Image width in pixels; height follows the camera aspect ratio (0 = scene default)")
	fs.IntVar(&config.Samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&config.Depth, "depth", 0, "Maximum bounce depth (0 = scene default)")
	fs.IntVar(&config.Workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	fs.Int64Var(&config.Seed, "seed", 0, "Offset added to every scanline seed")
	fs.StringVar(&config.Output, "output", "", "Output file (.ppm, .png, .bmp, .tif); '-' writes PPM to stdout (default output/<scene>/render_<timestamp>.png)")
	fs.BoolVar(&config.Help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return config, fs, err
	}
	return config, fs, nil
}

// showHelp displays help information
func showHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Scanline Path Tracer")
	fmt.Fprintln(w, "Usage: pathtracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListBuiltinScenes() {
		fmt.Fprintf(w, "  %-12s - %s\n", info.ID, info.Description)
	}
	if files, err := scene.ListSceneFiles("scenes", renderer.NewDefaultLogger()); err == nil {
		for _, info := range files {
			fmt.Fprintf(w, "  %-12s - %s\n", info.FilePath, info.DisplayName)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  pathtracer -scene=materials -samples=200")
	fmt.Fprintln(w, "  pathtracer -scene=random -width=1200 -output=random.png")
	fmt.Fprintln(w, "  pathtracer -scene=scenes/glass.json -output=- > glass.ppm")
}

// createScene resolves a built-in scene, a JSON file path, or a bare name under scenes/
func createScene(sceneName string) (*scene.Scene, error) {
	s, err := scene.NewNamedScene(sceneName)
	if err == nil {
		return s, nil
	}
	if sceneName != "" && !strings.ContainsAny(sceneName, `/\.`) {
		candidate := filepath.Join("scenes", sceneName+".json")
		if _, statErr := os.Stat(candidate); statErr == nil {
			return scene.LoadSceneFile(candidate)
		}
	}
	return nil, err
}

// applyOverrides lays the command line options over the scene's sampling config
func applyOverrides(s *scene.Scene, config Config) core.SamplingConfig {
	sampling := core.MergeSamplingConfig(s.SamplingConfig, core.SamplingConfig{
		SamplesPerPixel: config.Samples,
		MaxDepth:        config.Depth,
	})
	if config.Width > 0 {
		sampling.Width = config.Width
		sampling.Height = max(1, int(float64(config.Width)/s.CameraConfig.AspectRatio))
	}
	return sampling
}

// run renders the selected scene and writes the image
func run(config Config, stdout io.Writer, logger core.Logger) error {
	selectedScene, err := createScene(config.SceneName)
	if err != nil {
		return err
	}

	sampling := applyOverrides(selectedScene, config)
	logger.Printf("Scene %q: %d primitives\n", config.SceneName, selectedScene.GetPrimitiveCount())

	sr, err := renderer.NewScanlineRenderer(selectedScene.Camera, selectedScene, sampling, renderer.RenderOptions{
		NumWorkers: config.Workers,
		SeedOffset: config.Seed,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	sr.Raytracer().SetIntegrator(selectedScene.NewIntegrator())

	img, stats, err := sr.Render()
	if err != nil {
		return fmt.Errorf("render %s: %w", config.SceneName, err)
	}

	logger.Printf("Render completed in %v (%d samples, %.1f per pixel, average luminance %.3f)\n",
		stats.Elapsed.Round(time.Millisecond), stats.TotalSamples, stats.AverageSamples(), renderer.CalculateAverageLuminance(img))

	if config.Output == "-" {
		return output.WritePPM(stdout, img)
	}

	filename := config.Output
	if filename == "" {
		outputDir := filepath.Join("output", sceneDirName(config.SceneName))
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	}

	if err := output.WriteImage(filename, img); err != nil {
		return err
	}

	logger.Printf("Render saved as %s\n", filename)
	return nil
}

// sceneDirName turns a scene name or file path into an output directory name
func sceneDirName(sceneName string) string {
	base := filepath.Base(sceneName)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
