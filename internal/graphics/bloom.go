package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// bloomPass draws the low-res target to the screen with a single-pass bright-pass blur
// added on top.
type bloomPass struct {
	opts   Bloom
	shader rl.Shader
	locs   struct{ strength, radius, threshold, texel int32 }
}

func newBloomPass(opts Bloom) *bloomPass {
	b := &bloomPass{opts: opts}
	if opts.Strength <= 0 {
		return b
	}
	b.shader = rl.LoadShaderFromMemory(bloomVS, bloomFS)
	if !rl.IsShaderValid(b.shader) {
		return b
	}
	b.locs.strength = rl.GetShaderLocation(b.shader, "strength")
	b.locs.radius = rl.GetShaderLocation(b.shader, "radius")
	b.locs.threshold = rl.GetShaderLocation(b.shader, "threshold")
	b.locs.texel = rl.GetShaderLocation(b.shader, "texel")
	return b
}

func (b *bloomPass) enabled() bool {
	return b.opts.Strength > 0 && rl.IsShaderValid(b.shader)
}

// composite draws t stretched over the screen. Render textures are stored upside down,
// hence the negative source height.
func (b *bloomPass) composite(t *pixelTarget, screenW, screenH int32) {
	src := rl.NewRectangle(0, 0, float32(t.width), -float32(t.height))
	dst := rl.NewRectangle(0, 0, float32(screenW), float32(screenH))
	if !b.enabled() {
		rl.DrawTexturePro(t.rt.Texture, src, dst, rl.Vector2{}, 0, rl.White)
		return
	}
	texel := []float32{1 / float32(t.width), 1 / float32(t.height)}
	rl.SetShaderValue(b.shader, b.locs.strength, []float32{b.opts.Strength}, rl.ShaderUniformFloat)
	rl.SetShaderValue(b.shader, b.locs.radius, []float32{b.opts.Radius}, rl.ShaderUniformFloat)
	rl.SetShaderValue(b.shader, b.locs.threshold, []float32{b.opts.Threshold}, rl.ShaderUniformFloat)
	rl.SetShaderValue(b.shader, b.locs.texel, texel, rl.ShaderUniformVec2)
	rl.BeginShaderMode(b.shader)
	rl.DrawTexturePro(t.rt.Texture, src, dst, rl.Vector2{}, 0, rl.White)
	rl.EndShaderMode()
}

func (b *bloomPass) unload() {
	if rl.IsShaderValid(b.shader) {
		rl.UnloadShader(b.shader)
	}
}

// bloomVS is raylib's default 2D vertex stage.
const bloomVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec4 vertexColor;
uniform mat4 mvp;
out vec2 fragTexCoord;
out vec4 fragColor;
void main() {
  fragTexCoord = vertexTexCoord;
  fragColor = vertexColor;
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

// bloomFS samples a 9x9 grid spread over radius (in units of target height), keeps what is
// above threshold and adds it back scaled by strength.
const bloomFS = `#version 330
in vec2 fragTexCoord;
in vec4 fragColor;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform float strength;
uniform float radius;
uniform float threshold;
uniform vec2 texel;
out vec4 finalColor;
vec3 bright(vec3 c) {
  float l = dot(c, vec3(0.2126, 0.7152, 0.0722));
  return c * smoothstep(threshold, threshold + 0.1, l);
}
void main() {
  vec4 base = texture(texture0, fragTexCoord);
  float reach = max(radius / texel.y, 1.0) / 4.0;
  vec3 glow = vec3(0.0);
  float total = 0.0;
  for (int x = -4; x <= 4; x++) {
    for (int y = -4; y <= 4; y++) {
      float w = exp(-float(x * x + y * y) / 8.0);
      glow += bright(texture(texture0, fragTexCoord + vec2(x, y) * texel * reach).rgb) * w;
      total += w;
    }
  }
  finalColor = vec4(base.rgb + glow / total * strength, base.a) * colDiffuse * fragColor;
}
`
