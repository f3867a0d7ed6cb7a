package assets

import (
	"errors"
	"path/filepath"
	"testing"

	"portfolio3d/internal/config"
)

func TestManifestFromConfigResolvesPaths(t *testing.T) {
	cfg := config.Default().Assets
	m, err := ManifestFromConfig(cfg, "/srv/site")
	if err != nil {
		t.Fatalf("ManifestFromConfig: %v", err)
	}
	if want := filepath.Join("/srv/site", cfg.Model); m.Model != want {
		t.Errorf("model = %q, want %q", m.Model, want)
	}
	if len(m.Textures) != len(TextureRoles) {
		t.Errorf("expected %d textures, got %d", len(TextureRoles), len(m.Textures))
	}
	for _, role := range TextureRoles {
		if !filepath.IsAbs(m.Textures[role]) {
			t.Errorf("%s texture not resolved: %q", role, m.Textures[role])
		}
	}
}

func TestManifestKeepsAbsolutePaths(t *testing.T) {
	cfg := config.Default().Assets
	cfg.Model = "/opt/room.glb"
	m, err := ManifestFromConfig(cfg, "/srv/site")
	if err != nil {
		t.Fatalf("ManifestFromConfig: %v", err)
	}
	if m.Model != "/opt/room.glb" {
		t.Errorf("model = %q", m.Model)
	}
}

func TestIncompleteManifestIsALoadError(t *testing.T) {
	cfg := config.Default().Assets
	textures := make(map[string]string)
	for k, v := range cfg.Textures {
		textures[k] = v
	}
	delete(textures, "tvscreen")
	cfg.Textures = textures

	_, err := ManifestFromConfig(cfg, "")
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if le.Stage != StageManifest {
		t.Errorf("stage = %q", le.Stage)
	}
}

func TestTextureRoleString(t *testing.T) {
	for i, role := range TextureRoles {
		if role.String() != config.TextureRoles[i] {
			t.Errorf("role %d is %q, config expects %q", i, role, config.TextureRoles[i])
		}
	}
}
