package assets

import (
	"errors"
	"fmt"
	"path/filepath"

	"portfolio3d/internal/config"
)

// TextureRole identifies one of the baked or photo textures of the room.
type TextureRole int

const (
	Environment TextureRole = iota
	Structure
	Items
	Targets
	ComputerScreen
	TVScreen
)

// TextureRoles lists every role in declaration order.
var TextureRoles = []TextureRole{Environment, Structure, Items, Targets, ComputerScreen, TVScreen}

var roleKeys = map[TextureRole]string{
	Environment:    "environment",
	Structure:      "structure",
	Items:          "items",
	Targets:        "targets",
	ComputerScreen: "computerscreen",
	TVScreen:       "tvscreen",
}

func (r TextureRole) String() string {
	if k, ok := roleKeys[r]; ok {
		return k
	}
	return fmt.Sprintf("TextureRole(%d)", int(r))
}

// Manifest names the mesh container and one texture per role.
type Manifest struct {
	Model    string
	Textures map[TextureRole]string
}

// ManifestFromConfig resolves relative paths against root.
func ManifestFromConfig(cfg config.AssetsConfig, root string) (Manifest, error) {
	m := Manifest{
		Model:    resolve(root, cfg.Model),
		Textures: make(map[TextureRole]string, len(TextureRoles)),
	}
	for _, role := range TextureRoles {
		if path, ok := cfg.Textures[role.String()]; ok && path != "" {
			m.Textures[role] = resolve(root, path)
		}
	}
	return m, m.Validate()
}

func resolve(root, path string) string {
	if path == "" || root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// Validate rejects a manifest that does not name every texture role.
func (m Manifest) Validate() error {
	var errs []error
	if m.Model == "" {
		errs = append(errs, errors.New("no model path"))
	}
	for _, role := range TextureRoles {
		if m.Textures[role] == "" {
			errs = append(errs, fmt.Errorf("no %s texture", role))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return &LoadError{Stage: StageManifest, Err: err}
	}
	return nil
}
