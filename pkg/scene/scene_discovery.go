package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/scanline-pathtracer/pkg/core"
	"github.com/df07/scanline-pathtracer/pkg/geometry"
)

// ErrUnknownScene is returned when a scene name matches neither a built-in scene nor a file
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Name passed to -scene
	DisplayName string `json:"displayName"` // Human readable name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the JSON file (file type only)
}

// builtinScene pairs listing metadata with the constructor
type builtinScene struct {
	info  SceneInfo
	build func(cameraOverrides ...geometry.CameraConfig) (*Scene, error)
}

var builtinScenes = []builtinScene{
	{
		info:  SceneInfo{ID: "default", DisplayName: "Default Scene", Description: "Diffuse sphere resting on a ground sphere"},
		build: NewDefaultScene,
	},
	{
		info:  SceneInfo{ID: "materials", DisplayName: "Materials", Description: "Lambertian, metal and hollow glass spheres"},
		build: NewMaterialsScene,
	},
	{
		info:  SceneInfo{ID: "random", DisplayName: "Random Field", Description: "Seeded field of small spheres, patches and boxes"},
		build: func(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
			return NewRandomScene(RandomSceneSeed, cameraOverrides...)
		},
	},
	{
		info:  SceneInfo{ID: "boxes", DisplayName: "Boxes", Description: "Rotated cubes of each material"},
		build: NewBoxesScene,
	},
	{
		info:  SceneInfo{ID: "sphere-grid", DisplayName: "Sphere Grid", Description: "10x10 grid of rainbow-colored metallic spheres"},
		build: NewSphereGridScene,
	},
}

// NewNamedScene resolves name to a built-in scene, or loads it as a JSON scene file when
// it ends in .json
func NewNamedScene(name string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.ID == name {
			return b.build(cameraOverrides...)
		}
	}
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return LoadSceneFile(name, cameraOverrides...)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownScene, name)
}

// ListBuiltinScenes returns the metadata of every built-in scene in registration order
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		info := b.info
		info.Group = "Built-in Scenes"
		info.Type = "builtin"
		scenes = append(scenes, info)
	}
	return scenes
}

// ListSceneFiles scans dir for *.json scene files and returns their metadata sorted by display name.
// A missing directory yields an empty list. Files whose metadata cannot be read are skipped
// with a warning to logger, which may be nil.
func ListSceneFiles(dir string, logger core.Logger) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		sceneInfo, err := ParseSceneFileMetadata(filePath)
		if err != nil {
			if logger != nil {
				logger.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			}
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneFileMetadata reads the name, description and group of a scene file.
// Missing fields fall back to values derived from the file name.
func ParseSceneFileMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:          filePath,
		DisplayName: titleCase(nameWithoutExt),
		Group:       "Scene Files",
		Type:        "file",
		FilePath:    filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return sceneInfo, fmt.Errorf("read %s: %w", filePath, err)
	}

	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Group       string `json:"group"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return sceneInfo, fmt.Errorf("parse %s: %w", filePath, err)
	}

	if header.Name != "" {
		sceneInfo.DisplayName = header.Name
	}
	if header.Group != "" {
		sceneInfo.Group = header.Group
	}
	sceneInfo.Description = header.Description

	return sceneInfo, nil
}

// titleCase converts a filename-style string to title case
// e.g., "glass-bubble" -> "Glass Bubble"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
