package primitives

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Kinds of decoration mesh the registry can draw.
const (
	// Disc is a unit-radius polygon in the XZ plane facing +Y (the carpet).
	Disc = "disc"
	// Panel is a unit quad in the XY plane facing +Z (the nav anchor).
	Panel = "panel"
)

// discSides matches the carpet's circle resolution.
const discSides = 64

// PointLight is a positional light.
type PointLight struct {
	Position  [3]float32
	Color     [3]float32
	Intensity float32
}

// SpotLight is a cone light aimed from Position at Target. Angle is the half-angle in radians;
// Penumbra is the fraction of the cone that fades out.
type SpotLight struct {
	Position  [3]float32
	Target    [3]float32
	Color     [3]float32
	Intensity float32
	Angle     float32
	Penumbra  float32
	Distance  float32
}

// Lighting is the fixed light rig shared by every lit draw.
type Lighting struct {
	Ambient    float32
	Point      PointLight
	Spot       SpotLight
	FogColor   [3]float32
	FogDensity float32
}

// cached holds the mesh for a decoration kind. Created lazily on first Draw.
type cached struct {
	mesh rl.Mesh
	mtl  rl.Material
}

// Registry owns the lit shader and the decoration meshes. GPU resources are created on
// first use so that they are allocated after the window/OpenGL context exists.
type Registry struct {
	cache    map[string]cached
	lighting Lighting
	viewPos  [3]float32
	shader   rl.Shader
	loaded   bool
	tiling   float32
}

// NewRegistry returns a registry for the given light rig.
func NewRegistry(l Lighting) *Registry {
	return &Registry{cache: make(map[string]cached), lighting: l, tiling: 1}
}

// Shader returns the lit shader, creating it on first call. Models loaded by the scene
// use it for every material so they share lighting and fog with the decorations.
func (r *Registry) Shader() rl.Shader {
	if !r.loaded {
		r.shader = rl.LoadShaderFromMemory(litVS, litFS)
		r.loaded = true
	}
	return r.shader
}

// SetView sets the camera position for this frame and uploads the light uniforms.
// Call once per frame before any lit draw.
func (r *Registry) SetView(viewPos [3]float32) {
	r.viewPos = viewPos
	r.setUniforms()
	r.setTiling(1)
}

func (r *Registry) ensure(kind string) (cached, bool) {
	if c, ok := r.cache[kind]; ok {
		return c, true
	}
	var mesh rl.Mesh
	switch kind {
	case Disc:
		mesh = rl.GenMeshPoly(discSides, 1)
	case Panel:
		mesh = rl.GenMeshPlane(1, 1, 1, 1)
	default:
		return cached{}, false
	}
	mtl := rl.LoadMaterialDefault()
	if s := r.Shader(); rl.IsShaderValid(s) {
		mtl.Shader = s
	}
	c := cached{mesh: mesh, mtl: mtl}
	r.cache[kind] = c
	return c, true
}

// meshBasis returns the fixed model-space correction for kind: raylib builds both meshes
// in the XZ plane, and the panel must stand up to face +Z.
func meshBasis(kind string) rl.Matrix {
	if kind == Panel {
		return rl.MatrixRotateX(rl.Pi / 2)
	}
	return rl.MatrixIdentity()
}

// Draw draws one decoration with the given world transform and flat tint.
// Must be called between BeginMode3D and EndMode3D, after SetView.
// Unknown kinds are skipped.
func (r *Registry) Draw(kind string, transform rl.Matrix, tint rl.Color) {
	c, ok := r.ensure(kind)
	if !ok {
		return
	}
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint
	}
	r.setTiling(1)
	rl.DisableBackfaceCulling()
	rl.DrawMesh(c.mesh, c.mtl, rl.MatrixMultiply(meshBasis(kind), transform))
	rl.EnableBackfaceCulling()
}

// DrawTextured draws one decoration sampling tex as albedo, repeated tiling times across
// the mesh. An invalid texture falls back to a flat tint.
func (r *Registry) DrawTextured(kind string, transform rl.Matrix, tex rl.Texture2D, tiling float32, tint rl.Color) {
	if !rl.IsTextureValid(tex) {
		r.Draw(kind, transform, tint)
		return
	}
	c, ok := r.ensure(kind)
	if !ok {
		return
	}
	rl.SetMaterialTexture(&c.mtl, rl.MapAlbedo, tex)
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint
	}
	r.setTiling(tiling)
	rl.DrawMesh(c.mesh, c.mtl, rl.MatrixMultiply(meshBasis(kind), transform))
	r.setTiling(1)
}

// Unload frees the meshes and the shared shader.
func (r *Registry) Unload() {
	for k, c := range r.cache {
		rl.UnloadMesh(&c.mesh)
		delete(r.cache, k)
	}
	if r.loaded && rl.IsShaderValid(r.shader) {
		rl.UnloadShader(r.shader)
	}
	r.loaded = false
}

func (r *Registry) setTiling(t float32) {
	if !r.loaded || r.tiling == t {
		return
	}
	r.tiling = t
	if loc := rl.GetShaderLocation(r.shader, "tiling"); loc >= 0 {
		rl.SetShaderValue(r.shader, loc, []float32{t}, rl.ShaderUniformFloat)
	}
}

// setUniforms uploads the view and light rig (cgo-safe: local arrays).
func (r *Registry) setUniforms() {
	s := r.Shader()
	if !rl.IsShaderValid(s) {
		return
	}
	l := r.lighting
	vec3 := func(name string, v [3]float32) {
		if loc := rl.GetShaderLocation(s, name); loc >= 0 {
			rl.SetShaderValueV(s, loc, []float32{v[0], v[1], v[2]}, rl.ShaderUniformVec3, 1)
		}
	}
	float := func(name string, v float32) {
		if loc := rl.GetShaderLocation(s, name); loc >= 0 {
			rl.SetShaderValue(s, loc, []float32{v}, rl.ShaderUniformFloat)
		}
	}
	vec3("viewPos", r.viewPos)
	float("ambient", l.Ambient)
	vec3("pointPos", l.Point.Position)
	vec3("pointColor", l.Point.Color)
	float("pointIntensity", l.Point.Intensity)
	vec3("spotPos", l.Spot.Position)
	vec3("spotTarget", l.Spot.Target)
	vec3("spotColor", l.Spot.Color)
	float("spotIntensity", l.Spot.Intensity)
	float("spotAngle", l.Spot.Angle)
	float("spotPenumbra", l.Spot.Penumbra)
	float("spotDistance", l.Spot.Distance)
	vec3("fogColor", l.FogColor)
	float("fogDensity", l.FogDensity)
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 mvp;
uniform mat4 matModel;
uniform mat4 matNormal;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  fragPosition = vec3(matModel * vec4(vertexPosition, 1.0));
  fragTexCoord = vertexTexCoord;
  fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 0.0)));
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	// litFS: texture0 * colDiffuse lit by ambient + point + spot, then exp2 fog by eye distance.
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform float tiling;
uniform vec3 viewPos;
uniform float ambient;
uniform vec3 pointPos;
uniform vec3 pointColor;
uniform float pointIntensity;
uniform vec3 spotPos;
uniform vec3 spotTarget;
uniform vec3 spotColor;
uniform float spotIntensity;
uniform float spotAngle;
uniform float spotPenumbra;
uniform float spotDistance;
uniform vec3 fogColor;
uniform float fogDensity;
out vec4 finalColor;
void main() {
  vec4 tint = texture(texture0, fragTexCoord * max(tiling, 1.0)) * colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 light = vec3(ambient);

  vec3 Lp = normalize(pointPos - fragPosition);
  light += pointColor * pointIntensity * max(dot(N, Lp), 0.0);

  vec3 Ls = spotPos - fragPosition;
  float dist = length(Ls);
  Ls /= dist;
  float cosTheta = dot(-Ls, normalize(spotTarget - spotPos));
  float outer = cos(spotAngle);
  float inner = cos(spotAngle * (1.0 - spotPenumbra));
  float cone = smoothstep(outer, inner, cosTheta);
  float falloff = spotDistance > 0.0 ? clamp(1.0 - dist / spotDistance, 0.0, 1.0) : 1.0;
  light += spotColor * spotIntensity * cone * falloff * max(dot(N, Ls), 0.0);

  vec3 color = tint.rgb * light;
  float d = length(viewPos - fragPosition);
  float fog = 1.0 - exp(-fogDensity * fogDensity * d * d);
  finalColor = vec4(mix(color, fogColor, clamp(fog, 0.0, 1.0)), tint.a);
}
`
)
