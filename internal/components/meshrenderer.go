package components

import (
	"portfolio3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// MeshRenderer draws the meshes a GameObject owns inside a shared model.
// Room meshes are baked in world space, so the object's delta matrix is
// applied on top of them.
type MeshRenderer struct {
	engine.BaseComponent
	FirstMesh int
	MeshCount int

	Emissive  float32
	Roughness float32
	Metalness float32

	meshes    []rl.Mesh
	materials []rl.Material
}

func NewMeshRenderer(firstMesh, meshCount int) *MeshRenderer {
	return &MeshRenderer{
		FirstMesh: firstMesh,
		MeshCount: meshCount,
		Roughness: 0.7,
		Metalness: 0.1,
	}
}

// Bind points the renderer at its slice of the model's meshes and one
// material per mesh.
func (m *MeshRenderer) Bind(meshes []rl.Mesh, materials []rl.Material) {
	m.meshes = meshes
	m.materials = materials
}

func (m *MeshRenderer) Bound() bool {
	return len(m.meshes) > 0
}

func (m *MeshRenderer) Draw() {
	g := m.GetGameObject()
	if g == nil || !g.Active || len(m.meshes) == 0 {
		return
	}
	transform := g.Matrix()
	for i, mesh := range m.meshes {
		rl.DrawMesh(mesh, m.materials[i], transform)
	}
}

// DrawWithShader draws with every material temporarily using shader, for
// depth-only passes.
func (m *MeshRenderer) DrawWithShader(shader rl.Shader) {
	g := m.GetGameObject()
	if g == nil || !g.Active || len(m.meshes) == 0 {
		return
	}
	transform := g.Matrix()
	for i, mesh := range m.meshes {
		mat := m.materials[i]
		mat.Shader = shader
		rl.DrawMesh(mesh, mat, transform)
	}
}

// RayHit is the nearest triangle of the bound meshes hit by ray, with the
// object's live pose applied.
func (m *MeshRenderer) RayHit(ray rl.Ray) (rl.RayCollision, bool) {
	g := m.GetGameObject()
	if g == nil || len(m.meshes) == 0 {
		return rl.RayCollision{}, false
	}
	transform := g.Matrix()
	var best rl.RayCollision
	for _, mesh := range m.meshes {
		hit := rl.GetRayCollisionMesh(ray, mesh, transform)
		if hit.Hit && (!best.Hit || hit.Distance < best.Distance) {
			best = hit
		}
	}
	return best, best.Hit
}

func (m *MeshRenderer) Unbind() {
	m.meshes = nil
	m.materials = nil
}
