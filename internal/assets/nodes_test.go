package assets

import (
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/qmuntal/gltf"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func approxVec(a, b rl.Vector3) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z)
}

func triangle(position int) *gltf.Primitive {
	return &gltf.Primitive{
		Mode:       gltf.PrimitiveTriangles,
		Attributes: map[string]int{gltf.POSITION: position},
	}
}

// testDocument is a room root with a structure node (two primitives) and a
// Contact button (one triangle primitive and one line primitive).
func testDocument() *gltf.Document {
	lines := triangle(0)
	lines.Mode = gltf.PrimitiveLines
	return &gltf.Document{
		Accessors: []*gltf.Accessor{
			{Min: []float64{-1, -1, -1}, Max: []float64{1, 1, 1}},
		},
		Meshes: []*gltf.Mesh{
			{Name: "structure", Primitives: []*gltf.Primitive{triangle(0), triangle(0)}},
			{Name: "button", Primitives: []*gltf.Primitive{triangle(0), lines}},
		},
		Nodes: []*gltf.Node{
			{Name: "Room", Children: []int{1, 2}, Translation: [3]float64{0, 1, 0}},
			{Name: "Structure", Mesh: gltf.Index(0)},
			{Name: "Contact-btn", Mesh: gltf.Index(1), Translation: [3]float64{1, 2, 3}},
		},
	}
}

func TestNodeTableFollowsMeshOrder(t *testing.T) {
	nodes, err := NodesFromDocument(testDocument())
	if err != nil {
		t.Fatalf("NodesFromDocument: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(nodes))
	}

	room, structure, contact := nodes[0], nodes[1], nodes[2]
	if room.Mesh != -1 || room.MeshCount != 0 || room.FirstMesh != -1 {
		t.Errorf("root should carry no mesh, got %+v", room)
	}
	if structure.FirstMesh != 0 || structure.MeshCount != 2 {
		t.Errorf("structure meshes = [%d,+%d), want [0,+2)", structure.FirstMesh, structure.MeshCount)
	}
	if contact.FirstMesh != 2 || contact.MeshCount != 1 {
		t.Errorf("line primitives must not count, got [%d,+%d)", contact.FirstMesh, contact.MeshCount)
	}
	if MeshCount(nodes) != 3 {
		t.Errorf("MeshCount = %d, want 3", MeshCount(nodes))
	}
	if structure.Parent != 0 || contact.Parent != 0 || room.Parent != -1 {
		t.Errorf("unexpected parents %d %d %d", room.Parent, structure.Parent, contact.Parent)
	}
}

func TestNodeTableBakesWorldTransform(t *testing.T) {
	nodes, err := NodesFromDocument(testDocument())
	if err != nil {
		t.Fatalf("NodesFromDocument: %v", err)
	}
	contact := nodes[2]

	if want := (rl.Vector3{X: 1, Y: 3, Z: 3}); !approxVec(contact.Rest.Position, want) {
		t.Errorf("world position = %v, want %v", contact.Rest.Position, want)
	}
	if want := (rl.Vector3{X: 1, Y: 1, Z: 1}); !approxVec(contact.Rest.Scale, want) {
		t.Errorf("scale = %v, want %v", contact.Rest.Scale, want)
	}
	if !contact.HasBounds {
		t.Fatal("contact should have bounds from its accessor")
	}
	if want := (rl.Vector3{X: 0, Y: 2, Z: 2}); !approxVec(contact.Bounds.Min, want) {
		t.Errorf("bounds min = %v, want %v", contact.Bounds.Min, want)
	}
	if want := (rl.Vector3{X: 2, Y: 4, Z: 4}); !approxVec(contact.Bounds.Max, want) {
		t.Errorf("bounds max = %v, want %v", contact.Bounds.Max, want)
	}
}

func TestNodeTableDecomposesRotationAndScale(t *testing.T) {
	half := math.Pi / 8 // 45 degrees about Y
	doc := &gltf.Document{
		Nodes: []*gltf.Node{{
			Name:     "Lamp",
			Rotation: [4]float64{0, math.Sin(half), 0, math.Cos(half)},
			Scale:    [3]float64{2, 2, 2},
		}},
	}
	nodes, err := NodesFromDocument(doc)
	if err != nil {
		t.Fatalf("NodesFromDocument: %v", err)
	}
	rest := nodes[0].Rest
	if !approx(rest.Rotation.Y, 45) || !approx(rest.Rotation.X, 0) || !approx(rest.Rotation.Z, 0) {
		t.Errorf("rotation = %v, want (0, 45, 0)", rest.Rotation)
	}
	if want := (rl.Vector3{X: 2, Y: 2, Z: 2}); !approxVec(rest.Scale, want) {
		t.Errorf("scale = %v, want %v", rest.Scale, want)
	}
}

func TestCompressedContainersAreRejected(t *testing.T) {
	for _, ext := range []string{"KHR_draco_mesh_compression", "EXT_meshopt_compression"} {
		doc := testDocument()
		doc.ExtensionsRequired = []string{ext}
		_, err := NodesFromDocument(doc)
		if err == nil {
			t.Errorf("%s: expected an error", ext)
			continue
		}
		if !strings.Contains(err.Error(), ext) {
			t.Errorf("error should name %s, got %v", ext, err)
		}
	}
}

func TestOptionalExtensionsAreAccepted(t *testing.T) {
	doc := testDocument()
	doc.ExtensionsUsed = []string{"KHR_materials_emissive_strength"}
	doc.ExtensionsRequired = []string{"KHR_texture_transform"}
	if _, err := NodesFromDocument(doc); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNodeTableRejectsBadIndices(t *testing.T) {
	doc := testDocument()
	doc.Nodes[0].Children = []int{1, 7}
	if _, err := NodesFromDocument(doc); err == nil {
		t.Error("expected an error for an out of range child")
	}

	doc = testDocument()
	doc.Nodes[1].Mesh = gltf.Index(9)
	if _, err := NodesFromDocument(doc); err == nil {
		t.Error("expected an error for an out of range mesh")
	}
}

func TestReadNodesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.glb")
	_, err := ReadNodes(path)
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if le.Stage != StageMesh || le.Path != path {
		t.Errorf("got stage %q path %q", le.Stage, le.Path)
	}
}

func TestReadNodesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "room.gltf")
	if err := gltf.Save(testDocument(), path); err != nil {
		t.Fatalf("save: %v", err)
	}
	nodes, err := ReadNodes(path)
	if err != nil {
		t.Fatalf("ReadNodes: %v", err)
	}
	if len(nodes) != 3 || nodes[2].Name != "Contact-btn" {
		t.Errorf("unexpected node table %+v", nodes)
	}
}
