package assets

import (
	"errors"
	"fmt"
	"math"

	"portfolio3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/qmuntal/gltf"
)

// Node is one entry of the container's node table. raylib's loader drops
// node names, so the table is read separately and matched to the loaded
// model by position: raylib emits one mesh per triangle primitive, walking
// nodes in index order.
type Node struct {
	Index  int
	Name   string
	Parent int // -1 for roots
	Mesh   int // -1 when the node has no mesh

	// FirstMesh and MeshCount locate the node's meshes in the loaded model.
	FirstMesh int
	MeshCount int

	Rest      engine.Transform
	Bounds    rl.BoundingBox
	HasBounds bool
}

// Unsupported required extensions. Draco needs a native decoder that the
// raylib build does not carry.
var unsupportedExtensions = map[string]bool{
	"KHR_draco_mesh_compression": true,
	"EXT_meshopt_compression":    true,
}

// ReadNodes opens a GLB or glTF file and returns its node table.
func ReadNodes(path string) ([]Node, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, &LoadError{Stage: StageMesh, Path: path, Err: err}
	}
	nodes, err := NodesFromDocument(doc)
	if err != nil {
		return nil, &LoadError{Stage: StageMesh, Path: path, Err: err}
	}
	return nodes, nil
}

// MeshCount is the number of meshes raylib will produce for the table.
func MeshCount(nodes []Node) int {
	n := 0
	for _, node := range nodes {
		n += node.MeshCount
	}
	return n
}

func NodesFromDocument(doc *gltf.Document) ([]Node, error) {
	for _, ext := range doc.ExtensionsRequired {
		if unsupportedExtensions[ext] {
			return nil, fmt.Errorf("required extension %s is not supported, export the model uncompressed", ext)
		}
	}

	parents := make([]int, len(doc.Nodes))
	for i := range parents {
		parents[i] = -1
	}
	for i, n := range doc.Nodes {
		for _, c := range n.Children {
			if int(c) >= len(doc.Nodes) {
				return nil, fmt.Errorf("node %d: child %d out of range", i, c)
			}
			parents[int(c)] = i
		}
	}

	world, err := worldMatrices(doc, parents)
	if err != nil {
		return nil, err
	}

	nodes := make([]Node, len(doc.Nodes))
	next := 0
	for i, n := range doc.Nodes {
		node := Node{
			Index:     i,
			Name:      n.Name,
			Parent:    parents[i],
			Mesh:      -1,
			FirstMesh: -1,
			Rest:      decompose(world[i]),
		}
		if n.Mesh != nil {
			if int(*n.Mesh) >= len(doc.Meshes) {
				return nil, fmt.Errorf("node %d: mesh %d out of range", i, *n.Mesh)
			}
			node.Mesh = int(*n.Mesh)
			for _, p := range doc.Meshes[*n.Mesh].Primitives {
				if p.Mode != gltf.PrimitiveTriangles {
					continue
				}
				node.MeshCount++
				if box, ok := primitiveBounds(doc, p, world[i]); ok {
					node.Bounds = unionBounds(node.Bounds, box, node.HasBounds)
					node.HasBounds = true
				}
			}
			if node.MeshCount > 0 {
				node.FirstMesh = next
				next += node.MeshCount
			}
		}
		nodes[i] = node
	}
	return nodes, nil
}

func worldMatrices(doc *gltf.Document, parents []int) ([]rl.Matrix, error) {
	world := make([]rl.Matrix, len(doc.Nodes))
	state := make([]uint8, len(doc.Nodes)) // 0 unvisited, 1 visiting, 2 done

	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case 2:
			return nil
		case 1:
			return errors.New("node hierarchy has a cycle")
		}
		state[i] = 1
		local := localMatrix(doc.Nodes[i])
		if p := parents[i]; p >= 0 {
			if err := visit(p); err != nil {
				return err
			}
			// raylib multiplies left to right: child first, then parent.
			local = rl.MatrixMultiply(local, world[p])
		}
		world[i] = local
		state[i] = 2
		return nil
	}

	for i := range doc.Nodes {
		if err := visit(i); err != nil {
			return nil, err
		}
	}
	return world, nil
}

func localMatrix(n *gltf.Node) rl.Matrix {
	if m := n.MatrixOrDefault(); m != gltf.DefaultMatrix {
		return rl.Matrix{
			M0: float32(m[0]), M1: float32(m[1]), M2: float32(m[2]), M3: float32(m[3]),
			M4: float32(m[4]), M5: float32(m[5]), M6: float32(m[6]), M7: float32(m[7]),
			M8: float32(m[8]), M9: float32(m[9]), M10: float32(m[10]), M11: float32(m[11]),
			M12: float32(m[12]), M13: float32(m[13]), M14: float32(m[14]), M15: float32(m[15]),
		}
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()

	scale := rl.MatrixScale(float32(s[0]), float32(s[1]), float32(s[2]))
	rot := rl.QuaternionToMatrix(rl.Quaternion{X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3])})
	trans := rl.MatrixTranslate(float32(t[0]), float32(t[1]), float32(t[2]))
	return rl.MatrixMultiply(rl.MatrixMultiply(scale, rot), trans)
}

// decompose splits an affine matrix into position, Euler rotation in degrees
// and scale.
func decompose(m rl.Matrix) engine.Transform {
	sx := length(m.M0, m.M1, m.M2)
	sy := length(m.M4, m.M5, m.M6)
	sz := length(m.M8, m.M9, m.M10)

	rot := m
	rot.M12, rot.M13, rot.M14 = 0, 0, 0
	if sx != 0 {
		rot.M0, rot.M1, rot.M2 = m.M0/sx, m.M1/sx, m.M2/sx
	}
	if sy != 0 {
		rot.M4, rot.M5, rot.M6 = m.M4/sy, m.M5/sy, m.M6/sy
	}
	if sz != 0 {
		rot.M8, rot.M9, rot.M10 = m.M8/sz, m.M9/sz, m.M10/sz
	}
	euler := rl.QuaternionToEuler(rl.QuaternionFromMatrix(rot))

	return engine.Transform{
		Position: rl.Vector3{X: m.M12, Y: m.M13, Z: m.M14},
		Rotation: rl.Vector3Scale(euler, rl.Rad2deg),
		Scale:    rl.Vector3{X: sx, Y: sy, Z: sz},
	}
}

func length(x, y, z float32) float32 {
	return float32(math.Sqrt(float64(x*x + y*y + z*z)))
}

// primitiveBounds uses the POSITION accessor's min and max, which glTF
// requires writers to fill in.
func primitiveBounds(doc *gltf.Document, p *gltf.Primitive, world rl.Matrix) (rl.BoundingBox, bool) {
	idx, ok := p.Attributes[gltf.POSITION]
	if !ok || int(idx) >= len(doc.Accessors) {
		return rl.BoundingBox{}, false
	}
	acc := doc.Accessors[idx]
	if len(acc.Min) < 3 || len(acc.Max) < 3 {
		return rl.BoundingBox{}, false
	}
	lo := rl.Vector3{X: float32(acc.Min[0]), Y: float32(acc.Min[1]), Z: float32(acc.Min[2])}
	hi := rl.Vector3{X: float32(acc.Max[0]), Y: float32(acc.Max[1]), Z: float32(acc.Max[2])}
	return transformBounds(rl.BoundingBox{Min: lo, Max: hi}, world), true
}

func transformBounds(b rl.BoundingBox, m rl.Matrix) rl.BoundingBox {
	lo, hi := b.Min, b.Max
	corners := [8]rl.Vector3{
		{X: lo.X, Y: lo.Y, Z: lo.Z}, {X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z}, {X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z}, {X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z}, {X: hi.X, Y: hi.Y, Z: hi.Z},
	}
	out := rl.BoundingBox{Min: rl.Vector3Transform(corners[0], m)}
	out.Max = out.Min
	for _, c := range corners[1:] {
		out = unionBounds(out, rl.BoundingBox{Min: rl.Vector3Transform(c, m), Max: rl.Vector3Transform(c, m)}, true)
	}
	return out
}

func unionBounds(a, b rl.BoundingBox, haveA bool) rl.BoundingBox {
	if !haveA {
		return b
	}
	return rl.BoundingBox{
		Min: rl.Vector3{X: min(a.Min.X, b.Min.X), Y: min(a.Min.Y, b.Min.Y), Z: min(a.Min.Z, b.Min.Z)},
		Max: rl.Vector3{X: max(a.Max.X, b.Max.X), Y: max(a.Max.Y, b.Max.Y), Z: max(a.Max.Z, b.Max.Z)},
	}
}
