package world

import (
	"fmt"
	"os"
	"path/filepath"

	"portfolio3d/internal/components"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const ShadowMapResolution = 2048

// Renderer draws the room with one directional light and a shadow map.
type Renderer struct {
	Shader      rl.Shader
	DepthShader rl.Shader
	ShadowMap   rl.RenderTexture2D
	Light       *components.DirectionalLight
	LightCamera rl.Camera3D
	MatLightVP  rl.Matrix

	locViewPos   int32
	locLightVP   int32
	locShadowMap int32
	locEmissive  int32
	locRoughness int32
	locMetalness int32

	loaded bool
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Initialize loads the lighting and depth shaders from dir and creates the
// shadow map. It needs a GL context.
func (r *Renderer) Initialize(dir string) error {
	files := []string{"lighting.vs", "lighting.fs", "depth.vs", "depth.fs"}
	for _, f := range files {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			return fmt.Errorf("renderer: shader %s: %w", f, err)
		}
	}

	r.Shader = rl.LoadShader(filepath.Join(dir, "lighting.vs"), filepath.Join(dir, "lighting.fs"))
	r.DepthShader = rl.LoadShader(filepath.Join(dir, "depth.vs"), filepath.Join(dir, "depth.fs"))

	r.locViewPos = rl.GetShaderLocation(r.Shader, "viewPos")
	r.locLightVP = rl.GetShaderLocation(r.Shader, "matLightVP")
	r.locShadowMap = rl.GetShaderLocation(r.Shader, "shadowMap")
	r.locEmissive = rl.GetShaderLocation(r.Shader, "emissive")
	r.locRoughness = rl.GetShaderLocation(r.Shader, "roughness")
	r.locMetalness = rl.GetShaderLocation(r.Shader, "metalness")

	resLoc := rl.GetShaderLocation(r.Shader, "shadowMapResolution")
	rl.SetShaderValue(r.Shader, resLoc, []float32{ShadowMapResolution}, rl.ShaderUniformFloat)

	r.ShadowMap = loadShadowmapRenderTexture(ShadowMapResolution, ShadowMapResolution)
	r.loaded = true
	return nil
}

func (r *Renderer) SetLight(light *components.DirectionalLight) {
	r.Light = light
	if light == nil || !r.loaded {
		return
	}
	r.LightCamera = light.LightCamera()

	dir := light.Direction()
	rl.SetShaderValue(r.Shader, rl.GetShaderLocation(r.Shader, "lightDir"), []float32{dir.X, dir.Y, dir.Z}, rl.ShaderUniformVec3)
	rl.SetShaderValue(r.Shader, rl.GetShaderLocation(r.Shader, "lightColor"), light.ColorFloat(), rl.ShaderUniformVec4)
	rl.SetShaderValue(r.Shader, rl.GetShaderLocation(r.Shader, "ambient"), light.AmbientFloat(), rl.ShaderUniformVec4)
}

// DrawShadowMap renders depth from the light's point of view.
func (r *Renderer) DrawShadowMap(renderers []*components.MeshRenderer) {
	if !r.loaded || r.Light == nil {
		return
	}
	rl.BeginTextureMode(r.ShadowMap)
	rl.ClearBackground(rl.White)

	rl.BeginMode3D(r.LightCamera)

	half := r.Light.ShadowExtent
	rl.SetMatrixProjection(rl.MatrixOrtho(-half, half, -half, half, r.Light.ShadowNear, r.Light.ShadowFar))

	lightView := rl.GetMatrixModelview()
	lightProj := rl.GetMatrixProjection()

	rl.SetCullFace(0)
	for _, mr := range renderers {
		mr.DrawWithShader(r.DepthShader)
	}
	rl.SetCullFace(1)

	rl.EndMode3D()
	rl.EndTextureMode()

	rl.Viewport(0, 0, int32(rl.GetRenderWidth()), int32(rl.GetRenderHeight()))

	r.MatLightVP = rl.MatrixMultiply(lightView, lightProj)
}

// DrawWithShadows draws every renderer with lighting. It must run between
// BeginMode3D and EndMode3D.
func (r *Renderer) DrawWithShadows(cameraPos rl.Vector3, renderers []*components.MeshRenderer) {
	if !r.loaded {
		for _, mr := range renderers {
			mr.Draw()
		}
		return
	}
	rl.SetShaderValue(r.Shader, r.locViewPos, []float32{cameraPos.X, cameraPos.Y, cameraPos.Z}, rl.ShaderUniformVec3)
	rl.SetShaderValueMatrix(r.Shader, r.locLightVP, r.MatLightVP)

	rl.EnableShader(r.Shader.ID)
	textureSlot := int32(10)
	rl.ActiveTextureSlot(textureSlot)
	rl.EnableTexture(r.ShadowMap.Depth.ID)
	rl.SetUniform(r.locShadowMap, []int32{textureSlot}, int32(rl.ShaderUniformInt), 1)

	for _, mr := range renderers {
		rl.SetShaderValue(r.Shader, r.locEmissive, []float32{mr.Emissive}, rl.ShaderUniformFloat)
		rl.SetShaderValue(r.Shader, r.locRoughness, []float32{mr.Roughness}, rl.ShaderUniformFloat)
		rl.SetShaderValue(r.Shader, r.locMetalness, []float32{mr.Metalness}, rl.ShaderUniformFloat)
		mr.Draw()
	}
}

func (r *Renderer) Unload() {
	if !r.loaded {
		return
	}
	r.loaded = false
	rl.UnloadShader(r.Shader)
	rl.UnloadShader(r.DepthShader)
	rl.UnloadRenderTexture(r.ShadowMap)
}

func loadShadowmapRenderTexture(width, height int32) rl.RenderTexture2D {
	target := rl.RenderTexture2D{}

	target.ID = rl.LoadFramebuffer()
	target.Texture.Width = width
	target.Texture.Height = height

	if target.ID > 0 {
		rl.EnableFramebuffer(target.ID)

		target.Depth.ID = rl.LoadTextureDepth(width, height, false)
		target.Depth.Width = width
		target.Depth.Height = height
		target.Depth.Format = 19
		target.Depth.Mipmaps = 1

		rl.FramebufferAttach(target.ID, target.Depth.ID, rl.AttachmentDepth, rl.AttachmentTexture2d, 0)

		rl.DisableFramebuffer()
	}

	return target
}
