package scene

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"desk-portfolio/internal/assets"
	"desk-portfolio/internal/camera"
	"desk-portfolio/internal/hittest"
	"desk-portfolio/internal/overlay"
	"desk-portfolio/internal/primitives"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// carpetLift keeps the carpet just above the floor plane of the furniture.
const carpetLift = 0.001

var (
	defaultTop    = color.RGBA{0x95, 0x95, 0x95, 0xff}
	defaultBottom = color.RGBA{0xc1, 0xc1, 0xc1, 0xff}
	defaultAnchor = color.RGBA{0xaa, 0xaa, 0xaa, 0xff}
	white         = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// loaded is a model on the GPU.
type loaded struct {
	name  string
	model rl.Model
}

// Scene holds the camera and everything drawn in 3D: the furniture models, the carpet,
// the gradient backdrop and, while the camera is panned, the nav anchor panel.
// All methods must run on the goroutine that owns the window.
type Scene struct {
	Camera rl.Camera3D

	prims     *primitives.Registry
	models    []loaded
	carpet    assets.Carpet
	carpetTex rl.Texture2D

	top, bottom rl.Color

	anchor        overlay.Anchor
	anchorTint    rl.Color
	anchorVisible bool
}

// New returns an empty scene lit as the manifest describes. Models arrive later through Upload.
func New(m assets.Manifest, anchor overlay.Anchor, anchorColor string) *Scene {
	s := &Scene{
		prims:      primitives.NewRegistry(Lighting(m)),
		carpet:     m.Carpet,
		top:        rgba(assets.ColorOr(m.Background.Top, defaultTop)),
		bottom:     rgba(assets.ColorOr(m.Background.Bottom, defaultBottom)),
		anchor:     anchor,
		anchorTint: rgba(assets.ColorOr(anchorColor, defaultAnchor)),
	}
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Projection = rl.CameraPerspective
	return s
}

// Lighting converts the manifest's light rig and fog for the lit shader.
func Lighting(m assets.Manifest) primitives.Lighting {
	fog := assets.ColorOr(m.Fog.Color, color.RGBA{A: 0xff})
	return primitives.Lighting{
		Ambient: m.Lights.Ambient,
		Point: primitives.PointLight{
			Position:  m.Lights.Point.Position,
			Color:     [3]float32{1, 1, 1},
			Intensity: m.Lights.Point.Intensity,
		},
		Spot: primitives.SpotLight{
			Position:  m.Lights.Spot.Position,
			Target:    m.Lights.Spot.Target,
			Color:     [3]float32{1, 1, 1},
			Intensity: m.Lights.Spot.Intensity,
			Angle:     m.Lights.Spot.Angle,
			Penumbra:  m.Lights.Spot.Penumbra,
			Distance:  m.Lights.Spot.Distance,
		},
		FogColor:   [3]float32{float32(fog.R) / 255, float32(fog.G) / 255, float32(fog.B) / 255},
		FogDensity: m.Fog.Density,
	}
}

// Upload loads a resolved model onto the GPU and places it. For the interactive model it
// returns the hit target built from its mesh bounds; otherwise the target is nil.
func (s *Scene) Upload(p assets.Placement) (hittest.Target, error) {
	m := rl.LoadModel(p.Path)
	if !rl.IsModelValid(m) || m.MeshCount == 0 {
		return nil, fmt.Errorf("scene: %s: no meshes", p.Path)
	}
	shader := s.prims.Shader()
	if rl.IsShaderValid(shader) {
		for i := range m.GetMaterials() {
			m.GetMaterials()[i].Shader = shader
		}
	}
	world := p.Transform()
	m.Transform = Matrix(world)
	s.models = append(s.models, loaded{name: p.Name, model: m})

	if !p.Interactive {
		return nil, nil
	}
	meshes := m.GetMeshes()
	boxes := make(hittest.Boxes, 0, len(meshes))
	for _, mesh := range meshes {
		bb := rl.GetMeshBoundingBox(mesh)
		local := hittest.Box{
			Min: mgl32.Vec3{bb.Min.X, bb.Min.Y, bb.Min.Z},
			Max: mgl32.Vec3{bb.Max.X, bb.Max.Y, bb.Max.Z},
		}
		boxes = append(boxes, hittest.TransformBox(local, world))
	}
	if len(boxes) == 0 {
		return nil, errors.New("scene: interactive model has no bounds")
	}
	return boxes, nil
}

// Models returns the names of the uploaded models in upload order.
func (s *Scene) Models() []string {
	names := make([]string, len(s.models))
	for i, m := range s.models {
		names[i] = m.name
	}
	return names
}

// SetCarpet uploads the carpet texture. It repeats across the disc with trilinear filtering.
func (s *Scene) SetCarpet(img image.Image) {
	if rl.IsTextureValid(s.carpetTex) {
		rl.UnloadTexture(s.carpetTex)
	}
	cpu := rl.NewImageFromImage(img)
	s.carpetTex = rl.LoadTextureFromImage(cpu)
	rl.UnloadImage(cpu)
	if !rl.IsTextureValid(s.carpetTex) {
		return
	}
	rl.GenTextureMipmaps(&s.carpetTex)
	rl.SetTextureWrap(s.carpetTex, rl.WrapRepeat)
	rl.SetTextureFilter(s.carpetTex, rl.FilterTrilinear)
}

// SetAnchorVisible adds or removes the nav anchor panel.
func (s *Scene) SetAnchorVisible(visible bool) { s.anchorVisible = visible }

// AnchorVisible reports whether the anchor panel is drawn.
func (s *Scene) AnchorVisible() bool { return s.anchorVisible }

// Sync copies the camera pose and lens into the raylib camera.
func (s *Scene) Sync(pose camera.Pose, lens camera.Lens) {
	s.Camera.Position = vec3(pose.Position)
	s.Camera.Target = vec3(pose.Look)
	s.Camera.Fovy = lens.FovY
}

// Draw renders the backdrop and the 3D world into the current target of width x height.
func (s *Scene) Draw(width, height int32) {
	rl.ClearBackground(s.bottom)
	rl.DrawRectangleGradientV(0, 0, width, height, s.top, s.bottom)

	rl.BeginMode3D(s.Camera)
	p := s.Camera.Position
	s.prims.SetView([3]float32{p.X, p.Y, p.Z})
	for _, m := range s.models {
		rl.DrawModel(m.model, rl.Vector3{}, 1, rl.White)
	}
	if s.carpet.Radius > 0 {
		r := s.carpet.Radius
		carpet := mgl32.Translate3D(0, carpetLift, 0).Mul4(mgl32.Scale3D(r, 1, r))
		s.prims.DrawTextured(primitives.Disc, Matrix(carpet), s.carpetTex, s.carpet.Repeat, rgba(white))
	}
	if s.anchorVisible {
		panel := s.anchor.Transform().Mul4(mgl32.Scale3D(s.anchor.Width, s.anchor.Height, 1))
		s.prims.Draw(primitives.Panel, Matrix(panel), s.anchorTint)
	}
	rl.EndMode3D()
}

// Unload releases every GPU resource the scene owns.
func (s *Scene) Unload() {
	for _, m := range s.models {
		rl.UnloadModel(m.model)
	}
	s.models = nil
	if rl.IsTextureValid(s.carpetTex) {
		rl.UnloadTexture(s.carpetTex)
	}
	s.prims.Unload()
}

// Matrix converts a column-major mgl32 matrix to raylib's layout. Both index elements
// column-major, so element k maps to field Mk.
func Matrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func vec3(v mgl32.Vec3) rl.Vector3 { return rl.NewVector3(v[0], v[1], v[2]) }

func rgba(c color.RGBA) rl.Color { return rl.NewColor(c.R, c.G, c.B, c.A) }
