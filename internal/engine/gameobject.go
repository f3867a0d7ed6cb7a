package engine

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Handle identifies a GameObject inside its Scene. Handles are assigned in
// insertion order starting at 1 and stay valid for the lifetime of the scene.
type Handle uint32

type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in degrees
	Scale    rl.Vector3
}

func IdentityTransform() Transform {
	return Transform{Scale: rl.Vector3{X: 1, Y: 1, Z: 1}}
}

// GameObject is one node of the room. Room meshes are baked in world space,
// so Transform is expressed in world space too: Rest is the pose the vertex
// data was baked at and Transform is the live pose animations write to.
type GameObject struct {
	Handle     Handle
	Name       string
	Tags       []string
	Transform  Transform
	Rest       Transform
	Bounds     rl.BoundingBox // world-space bounds at the rest pose
	Active     bool
	Scene      *Scene
	Parent     *GameObject
	Children   []*GameObject
	components []Component
	started    bool
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		Name:       name,
		Active:     true,
		Transform:  IdentityTransform(),
		Rest:       IdentityTransform(),
		components: make([]Component, 0),
		Children:   make([]*GameObject, 0),
	}
}

// SetRest places the object at pose t and records it as the baked pose.
func (g *GameObject) SetRest(t Transform) {
	g.Rest = t
	g.Transform = t
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
}

// GetComponent returns the first component of type T, or the zero value.
func GetComponent[T Component](g *GameObject) T {
	var zero T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

func (g *GameObject) Start() {
	if g.started {
		return
	}
	for _, c := range g.components {
		c.Start()
	}
	g.started = true
}

func (g *GameObject) Update(deltaTime float32) {
	if !g.Active {
		return
	}
	for _, c := range g.components {
		c.Update(deltaTime)
	}
}

func (g *GameObject) Components() []Component {
	return g.components
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddTag appends tag unless the object already carries it.
func (g *GameObject) AddTag(tag string) {
	if g.HasTag(tag) {
		return
	}
	g.Tags = append(g.Tags, tag)
}

func (g *GameObject) AddChild(child *GameObject) {
	child.Parent = g
	g.Children = append(g.Children, child)
}

func (g *GameObject) RemoveChild(child *GameObject) {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

func (g *GameObject) WorldPosition() rl.Vector3 {
	return g.Transform.Position
}

// Matrix maps rest-pose (baked) vertices to the live pose: the geometry is
// moved to the origin around its rest pivot, scaled and rotated by the delta
// between Transform and Rest, then placed at the live position.
func (g *GameObject) Matrix() rl.Matrix {
	rest := g.Rest.Position
	toOrigin := rl.MatrixTranslate(-rest.X, -rest.Y, -rest.Z)

	scale := rl.Vector3{
		X: ratio(g.Transform.Scale.X, g.Rest.Scale.X),
		Y: ratio(g.Transform.Scale.Y, g.Rest.Scale.Y),
		Z: ratio(g.Transform.Scale.Z, g.Rest.Scale.Z),
	}
	scaleMatrix := rl.MatrixScale(scale.X, scale.Y, scale.Z)

	rot := rl.Vector3Subtract(g.Transform.Rotation, g.Rest.Rotation)
	rotX := rl.MatrixRotateX(rot.X * rl.Deg2rad)
	rotY := rl.MatrixRotateY(rot.Y * rl.Deg2rad)
	rotZ := rl.MatrixRotateZ(rot.Z * rl.Deg2rad)
	rotMatrix := rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)

	pos := g.Transform.Position
	transMatrix := rl.MatrixTranslate(pos.X, pos.Y, pos.Z)

	// origin -> scale -> rotate -> translate
	m := rl.MatrixMultiply(toOrigin, scaleMatrix)
	m = rl.MatrixMultiply(m, rotMatrix)
	return rl.MatrixMultiply(m, transMatrix)
}

// WorldBounds returns the axis-aligned box enclosing Bounds after Matrix is
// applied.
func (g *GameObject) WorldBounds() rl.BoundingBox {
	m := g.Matrix()
	lo, hi := g.Bounds.Min, g.Bounds.Max
	corners := [8]rl.Vector3{
		{X: lo.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z},
	}
	out := rl.BoundingBox{Min: rl.Vector3Transform(corners[0], m)}
	out.Max = out.Min
	for _, c := range corners[1:] {
		p := rl.Vector3Transform(c, m)
		out.Min = minVec(out.Min, p)
		out.Max = maxVec(out.Max, p)
	}
	return out
}

func ratio(v, base float32) float32 {
	if base == 0 {
		return v
	}
	return v / base
}

func minVec(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)}
}

func maxVec(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)}
}
