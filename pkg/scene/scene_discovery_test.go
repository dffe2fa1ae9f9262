package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"glass-bubble", "Glass Bubble"},
		{"metal_row", "Metal Row"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestParseSceneFileMetadata(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name:    "complete.json",
			content: `{"name": "Glass Row", "description": "Three glass spheres", "group": "Glass"}`,
			expected: SceneInfo{
				DisplayName: "Glass Row",
				Description: "Three glass spheres",
				Group:       "Glass",
				Type:        "file",
			},
		},
		{
			name:    "two-spheres.json",
			content: `{"spheres": []}`,
			expected: SceneInfo{
				DisplayName: "Two Spheres", // From filename
				Group:       "Scene Files",
				Type:        "file",
			},
		},
	}

	dir := t.TempDir()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name)
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("Failed to write scene file: %v", err)
			}

			result, err := ParseSceneFileMetadata(path)
			if err != nil {
				t.Fatalf("ParseSceneFileMetadata() error: %v", err)
			}

			if result.ID != path || result.FilePath != path {
				t.Errorf("ID/FilePath = %q/%q, want %q", result.ID, result.FilePath, path)
			}
			if result.DisplayName != tc.expected.DisplayName {
				t.Errorf("DisplayName = %q, want %q", result.DisplayName, tc.expected.DisplayName)
			}
			if result.Description != tc.expected.Description {
				t.Errorf("Description = %q, want %q", result.Description, tc.expected.Description)
			}
			if result.Group != tc.expected.Group {
				t.Errorf("Group = %q, want %q", result.Group, tc.expected.Group)
			}
			if result.Type != tc.expected.Type {
				t.Errorf("Type = %q, want %q", result.Type, tc.expected.Type)
			}
		})
	}
}

func TestParseSceneFileMetadata_Errors(t *testing.T) {
	if _, err := ParseSceneFileMetadata(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte(`{"name": `), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseSceneFileMetadata(path); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

func TestListSceneFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.json":     `{"name": "Bravo"}`,
		"a.json":     `{"name": "Alpha"}`,
		"notes.txt":  `not a scene`,
		"zulu.json":  `{}`,
		"extra.yaml": `name: ignored`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	scenes, err := ListSceneFiles(dir, nil)
	if err != nil {
		t.Fatalf("ListSceneFiles() error: %v", err)
	}

	want := []string{"Alpha", "Bravo", "Zulu"}
	if len(scenes) != len(want) {
		t.Fatalf("Expected %d scenes, got %d", len(want), len(scenes))
	}
	for i, name := range want {
		if scenes[i].DisplayName != name {
			t.Errorf("scenes[%d].DisplayName = %q, want %q", i, scenes[i].DisplayName, name)
		}
	}
}

func TestListSceneFiles_MissingDirectory(t *testing.T) {
	scenes, err := ListSceneFiles(filepath.Join(t.TempDir(), "nope"), nil)
	if err != nil {
		t.Errorf("ListSceneFiles() error: %v", err)
	}
	if scenes == nil || len(scenes) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", scenes)
	}
}

func TestListBuiltinScenes(t *testing.T) {
	scenes := ListBuiltinScenes()

	expected := []string{"default", "materials", "random", "boxes", "sphere-grid"}
	if len(scenes) != len(expected) {
		t.Fatalf("Built-in scenes count = %d, want %d", len(scenes), len(expected))
	}
	for i, id := range expected {
		if scenes[i].ID != id {
			t.Errorf("scenes[%d].ID = %q, want %q", i, scenes[i].ID, id)
		}
		if scenes[i].Type != "builtin" || scenes[i].DisplayName == "" {
			t.Errorf("Scene %q missing metadata: %+v", id, scenes[i])
		}
	}
}

func TestNewNamedScene(t *testing.T) {
	for _, info := range ListBuiltinScenes() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := NewNamedScene(info.ID)
			if err != nil {
				t.Fatalf("NewNamedScene(%q) error: %v", info.ID, err)
			}
			if s.Camera == nil {
				t.Error("Scene has no camera")
			}
			if len(s.Shapes) == 0 {
				t.Error("Scene has no shapes")
			}
			if s.SamplingConfig.Width <= 0 || s.SamplingConfig.Height <= 0 {
				t.Errorf("Invalid image size %dx%d", s.SamplingConfig.Width, s.SamplingConfig.Height)
			}
		})
	}

	if _, err := NewNamedScene("no-such-scene"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "one.json")
	content := `{"materials": {"m": {"type": "lambertian", "albedo": "gray"}}, "spheres": [{"center": [0,0,-1], "radius": 0.5, "material": "m"}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := NewNamedScene(path)
	if err != nil {
		t.Fatalf("NewNamedScene(file) error: %v", err)
	}
	if len(s.Shapes) != 1 {
		t.Errorf("Expected 1 shape from file, got %d", len(s.Shapes))
	}
}

// warningLogger collects formatted log lines
type warningLogger struct {
	lines []string
}

func (l *warningLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestListSceneFiles_SkipsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"good.json":   `{"name": "Good"}`,
		"broken.json": `{"name": `,
		"other.json":  `{"name": "Other"}`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	logger := &warningLogger{}
	scenes, err := ListSceneFiles(dir, logger)
	if err != nil {
		t.Fatalf("ListSceneFiles() error: %v", err)
	}

	want := []string{"Good", "Other"}
	if len(scenes) != len(want) {
		t.Fatalf("Expected %d scenes, got %d", len(want), len(scenes))
	}
	for i, name := range want {
		if scenes[i].DisplayName != name {
			t.Errorf("scenes[%d].DisplayName = %q, want %q", i, scenes[i].DisplayName, name)
		}
	}
	if len(logger.lines) != 1 || !strings.Contains(logger.lines[0], "broken.json") {
		t.Errorf("Expected one warning naming broken.json, got %q", logger.lines)
	}

	if _, err := ListSceneFiles(dir, nil); err != nil {
		t.Errorf("ListSceneFiles() with nil logger error: %v", err)
	}
}
