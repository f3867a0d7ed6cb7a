package assets

import (
	"portfolio3d/internal/components"
	"portfolio3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/hashicorp/go-hclog"
)

// Room is the loaded scene: one GameObject per container node, the
// interactive lookup, and the GPU resources once uploaded.
type Room struct {
	Scene        *engine.Scene
	Interactives *engine.Interactives
	Nodes        []Node
	Stats        Stats

	objects   []*engine.GameObject // by node index
	classes   []MaterialClass      // by node index
	renderers []*components.MeshRenderer

	model     rl.Model
	hasModel  bool
	textures  map[TextureRole]rl.Texture2D
	materials []rl.Material
	disposed  bool
}

// BuildRoom turns the node table into a scene. It touches no GPU state.
func BuildRoom(nodes []Node, logger hclog.Logger) *Room {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	r := &Room{
		Scene:    engine.NewScene("room"),
		Nodes:    nodes,
		objects:  make([]*engine.GameObject, len(nodes)),
		classes:  make([]MaterialClass, len(nodes)),
		textures: make(map[TextureRole]rl.Texture2D),
	}

	for i, n := range nodes {
		g := engine.NewGameObject(n.Name)
		g.SetRest(n.Rest)
		g.Bounds = n.Bounds
		r.objects[i] = g
		r.Scene.AddGameObject(g)

		if n.MeshCount == 0 {
			continue
		}
		class := Classify(n.Name)
		r.classes[i] = class
		r.Stats.add(class)

		mr := components.NewMeshRenderer(n.FirstMesh, n.MeshCount)
		s := SurfaceFor(class)
		mr.Emissive, mr.Roughness, mr.Metalness = s.Emissive, s.Roughness, s.Metalness
		g.AddComponent(mr)
		r.renderers = append(r.renderers, mr)
	}
	for i, n := range nodes {
		if n.Parent >= 0 && n.Parent < len(r.objects) {
			r.objects[n.Parent].AddChild(r.objects[i])
		}
	}

	logger.Debug("materials applied",
		"textured", r.Stats.Textured,
		"target", r.Stats.Target,
		"screen", r.Stats.Screen,
		"other", r.Stats.Other,
		"total", r.Stats.Total())

	r.Interactives = BuildInteractives(r.Scene, logger)
	return r
}

// BuildInteractives tags every mesh node whose name is exactly one of the
// targets. Absent targets are logged and otherwise ignored.
func BuildInteractives(scene *engine.Scene, logger hclog.Logger) *engine.Interactives {
	out := engine.NewInteractives()
	scene.Traverse(func(g *engine.GameObject) {
		if engine.GetComponent[*components.MeshRenderer](g) == nil {
			return
		}
		target, ok := engine.ParseTarget(g.Name)
		if !ok {
			return
		}
		g.AddTag(engine.TagInteractive)
		out.Add(&engine.InteractiveObject{Object: g, Name: g.Name, Target: target})
	})
	for _, t := range out.Missing() {
		logger.Warn("interactive target not found in model", "target", t)
	}
	return out
}

// Class returns the material class a node received.
func (r *Room) Class(g *engine.GameObject) MaterialClass {
	if g == nil || g.Handle == 0 || int(g.Handle) > len(r.classes) {
		return ClassDefault
	}
	return r.classes[g.Handle-1]
}

// Renderers lists the mesh renderers in node order.
func (r *Room) Renderers() []*components.MeshRenderer {
	return r.renderers
}

// Uploaded reports whether the room has GPU resources to draw with.
func (r *Room) Uploaded() bool {
	return r.hasModel && !r.disposed
}

// Dispose releases GPU resources and tears the scene down. It is safe on a
// room that was never uploaded and safe to call twice.
func (r *Room) Dispose() {
	if r == nil || r.disposed {
		return
	}
	r.disposed = true
	for _, mr := range r.renderers {
		mr.Unbind()
	}
	r.release()
	if r.Scene != nil {
		r.Scene.Clear()
	}
}
