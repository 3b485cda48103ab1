package scene

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ioreshnikov/rtrace/pkg/renderer"
)

// SceneInfo describes one selectable scene for the web UI picker
type SceneInfo struct {
	ID          string `json:"id"`   // "default" or the scene file name without extension
	Name        string `json:"name"` // Display name derived from the file name
	Description string `json:"description,omitempty"`
	Width       int    `json:"width"`   // Effective render width after defaults
	Height      int    `json:"height"`  // Effective render height after defaults
	Samples     int    `json:"samples"` // Effective samples per pixel after defaults
	Spheres     int    `json:"spheres"` // Number of spheres in the world
}

// ListScenes returns the built-in default scene followed by every scene
// file found in dir, sorted by display name. Files that fail to parse
// are skipped with a warning so one bad file does not hide the rest.
func ListScenes(dir string) ([]SceneInfo, error) {
	builtin := describeConfig("default", "Default Scene", DefaultConfig())
	builtin.Description = "Two diffuse spheres under the sky gradient"
	scenes := []SceneInfo{builtin}

	pattern := filepath.Join(dir, "*.json")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %v", err)
	}

	var fromFiles []SceneInfo
	for _, path := range files {
		cfg, err := LoadConfig(path)
		if err != nil {
			fmt.Printf("Warning: skipping scene file %s: %v\n", path, err)
			continue
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		fromFiles = append(fromFiles, describeConfig(name, titleCase(name), *cfg))
	}

	// Sort file scenes by display name, keeping the default first
	sort.Slice(fromFiles, func(i, j int) bool {
		return fromFiles[i].Name < fromFiles[j].Name
	})

	return append(scenes, fromFiles...), nil
}

// describeConfig reports the effective render settings of a scene
// description, applying the same defaults Build would
func describeConfig(id, name string, cfg Config) SceneInfo {
	sampling := renderer.DefaultSamplingConfig()
	info := SceneInfo{
		ID:          id,
		Name:        name,
		Description: cfg.Description,
		Width:       sampling.Width,
		Height:      sampling.Height,
		Samples:     sampling.SamplesPerPixel,
		Spheres:     len(cfg.Spheres),
	}
	if cfg.Width != 0 {
		info.Width = cfg.Width
	}
	if cfg.Height != 0 {
		info.Height = cfg.Height
	}
	if cfg.SamplesPerPixel != 0 {
		info.Samples = cfg.SamplesPerPixel
	}
	return info
}

// titleCase converts a filename-style string to title case
// e.g., "two-spheres" -> "Two Spheres"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
