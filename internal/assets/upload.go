package assets

import (
	"errors"
	"fmt"
	"image"
	"unsafe"

	"portfolio3d/internal/components"
	"portfolio3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/hashicorp/go-hclog"
)

// Upload loads the model and textures onto the GPU and binds every mesh
// renderer. It must run on the thread that owns the GL context. On failure
// everything uploaded so far is released.
func (r *Room) Upload(p *Prepared, shader rl.Shader, logger hclog.Logger) error {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if r.disposed {
		return &LoadError{Stage: StageUpload, Err: errors.New("room already disposed")}
	}
	if err := r.upload(p, shader); err != nil {
		r.release()
		return err
	}
	logger.Info("room uploaded", "meshes", r.model.MeshCount, "materials", len(r.materials), "interactive", r.Interactives.Len())
	return nil
}

func (r *Room) upload(p *Prepared, shader rl.Shader) error {
	path := p.Manifest.Model
	r.model = rl.LoadModel(path)
	r.hasModel = true
	if r.model.MeshCount == 0 {
		return &LoadError{Stage: StageUpload, Path: path, Err: errors.New("model has no meshes")}
	}
	if want := MeshCount(r.Nodes); int(r.model.MeshCount) != want {
		return &LoadError{Stage: StageUpload, Path: path,
			Err: fmt.Errorf("model has %d meshes, node table expects %d", r.model.MeshCount, want)}
	}

	// One material per texture role. The material owns its texture.
	roleMaterials := make(map[TextureRole]rl.Material, len(TextureRoles))
	for _, role := range TextureRoles {
		img := p.Images[role]
		if img == nil {
			return &LoadError{Stage: StageUpload, Path: p.Manifest.Textures[role], Err: fmt.Errorf("%s texture was not prepared", role)}
		}
		tex := uploadTexture(img)
		if tex.ID == 0 {
			return &LoadError{Stage: StageUpload, Path: p.Manifest.Textures[role], Err: errors.New("texture upload failed")}
		}
		r.textures[role] = tex

		mat := rl.LoadMaterialDefault()
		rl.SetMaterialTexture(&mat, rl.MapAlbedo, tex)
		roleMaterials[role] = mat
		r.materials = append(r.materials, mat)
	}

	meshes := unsafe.Slice(r.model.Meshes, r.model.MeshCount)
	modelMaterials := unsafe.Slice(r.model.Materials, r.model.MaterialCount)
	meshMaterial := unsafe.Slice(r.model.MeshMaterial, r.model.MeshCount)

	for i, n := range r.Nodes {
		if n.MeshCount == 0 {
			continue
		}
		g := r.objects[i]
		class := r.classes[i]
		mats := make([]rl.Material, n.MeshCount)
		for k := range mats {
			var mat rl.Material
			if role, ok := TextureFor(class, n.Name); ok {
				mat = roleMaterials[role]
			} else {
				mat = modelMaterials[meshMaterial[n.FirstMesh+k]]
			}
			mat.Shader = shader
			mats[k] = mat
		}
		mr := rendererOf(g)
		mr.Bind(meshes[n.FirstMesh:n.FirstMesh+n.MeshCount], mats)
	}
	return nil
}

func uploadTexture(img *image.NRGBA) rl.Texture2D {
	cpu := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(cpu)
	rl.UnloadImage(cpu)
	if tex.ID == 0 {
		return tex
	}
	rl.GenTextureMipmaps(&tex)
	rl.SetTextureFilter(tex, rl.FilterTrilinear)
	return tex
}

func rendererOf(g *engine.GameObject) *components.MeshRenderer {
	return engine.GetComponent[*components.MeshRenderer](g)
}

// release frees GPU resources. Role materials own their textures; copies
// handed to renderers share the model's maps, which UnloadModel frees.
func (r *Room) release() {
	for _, mr := range r.renderers {
		mr.Unbind()
	}
	for _, mat := range r.materials {
		rl.UnloadMaterial(mat)
	}
	r.materials = nil
	clear(r.textures)
	if r.hasModel {
		rl.UnloadModel(r.model)
		r.model = rl.Model{}
		r.hasModel = false
	}
}
