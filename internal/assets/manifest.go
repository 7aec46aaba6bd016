package assets

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Model is one model entry in the scene manifest. Rotation is Euler XYZ in radians.
type Model struct {
	Name        string     `yaml:"name"`
	File        string     `yaml:"file"`
	Position    mgl32.Vec3 `yaml:"position"`
	Scale       mgl32.Vec3 `yaml:"scale"`
	Rotation    mgl32.Vec3 `yaml:"rotation,omitempty"`
	Interactive bool       `yaml:"interactive,omitempty"`
}

// PointLight is a positional light with an intensity multiplier.
type PointLight struct {
	Position  mgl32.Vec3 `yaml:"position"`
	Intensity float32    `yaml:"intensity"`
}

// SpotLight is a cone light; Angle is the half-angle in radians.
type SpotLight struct {
	Position  mgl32.Vec3 `yaml:"position"`
	Target    mgl32.Vec3 `yaml:"target"`
	Intensity float32    `yaml:"intensity"`
	Angle     float32    `yaml:"angle"`
	Penumbra  float32    `yaml:"penumbra"`
	Distance  float32    `yaml:"distance"`
}

// Lights describes the fixed lighting rig.
type Lights struct {
	Ambient float32    `yaml:"ambient"`
	Point   PointLight `yaml:"point"`
	Spot    SpotLight  `yaml:"spot"`
}

// Fog is exponential-squared fog.
type Fog struct {
	Color   string  `yaml:"color"`
	Density float32 `yaml:"density"`
}

// Carpet is the textured disc under the desk.
type Carpet struct {
	Radius    float32 `yaml:"radius"`
	Sides     int     `yaml:"sides"`
	Repeat    float32 `yaml:"repeat"`
	BaseColor string  `yaml:"base_color"`
	// Normal is a tangent-space normal map (OpenGL convention, green up).
	Normal string `yaml:"normal"`
	// ORM packs occlusion, roughness and metalness in the R, G and B channels.
	ORM string `yaml:"orm"`
}

// Background is a vertical gradient behind the scene.
type Background struct {
	Top    string `yaml:"top"`
	Bottom string `yaml:"bottom"`
}

// Manifest is the static description of everything the scene assembler builds.
type Manifest struct {
	Models     []Model    `yaml:"models"`
	Lights     Lights     `yaml:"lights"`
	Fog        Fog        `yaml:"fog"`
	Carpet     Carpet     `yaml:"carpet"`
	Background Background `yaml:"background"`
}

// LoadManifest reads and validates a manifest file.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes and validates manifest YAML.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Validate checks every model has a file and exactly one is interactive.
// A zero scale component is treated as 1 so partial entries stay visible.
func (m *Manifest) Validate() error {
	interactive := 0
	for i := range m.Models {
		mod := &m.Models[i]
		if mod.File == "" {
			return fmt.Errorf("manifest: model %d (%s) has no file", i, mod.Name)
		}
		if mod.Name == "" {
			mod.Name = mod.File
		}
		for a := 0; a < 3; a++ {
			if mod.Scale[a] == 0 {
				mod.Scale[a] = 1
			}
		}
		if mod.Interactive {
			interactive++
		}
	}
	if interactive != 1 {
		return fmt.Errorf("manifest: %d interactive models, want exactly one", interactive)
	}
	return nil
}

// Interactive returns the interactive model entry, if any.
func (m Manifest) Interactive() (Model, bool) {
	for _, mod := range m.Models {
		if mod.Interactive {
			return mod, true
		}
	}
	return Model{}, false
}
