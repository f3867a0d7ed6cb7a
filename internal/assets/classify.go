package assets

import (
	"strings"

	"portfolio3d/internal/engine"
)

// MaterialClass is the material a node receives from its name.
type MaterialClass int

const (
	// ClassDefault keeps whatever material the container carries.
	ClassDefault MaterialClass = iota
	ClassStructure
	ClassItems
	ClassEnvironment
	ClassScreen
	ClassTargets
)

func (c MaterialClass) String() string {
	switch c {
	case ClassStructure:
		return "structure"
	case ClassItems:
		return "items"
	case ClassEnvironment:
		return "environment"
	case ClassScreen:
		return "screen"
	case ClassTargets:
		return "targets"
	default:
		return "default"
	}
}

// ButtonSuffix marks nodes that get the shared targets texture.
const ButtonSuffix = "-btn"

// Classify applies the naming rules in priority order. Screen names are
// matched exactly before the suffix rule because they end in "-btn" too.
func Classify(name string) MaterialClass {
	switch {
	case strings.Contains(name, "Structure"):
		return ClassStructure
	case strings.Contains(name, "Items"):
		return ClassItems
	case strings.Contains(name, "Env"):
		return ClassEnvironment
	case name == string(engine.TargetComputerScreen), name == string(engine.TargetTVScreen):
		return ClassScreen
	case strings.HasSuffix(name, ButtonSuffix):
		return ClassTargets
	}
	return ClassDefault
}

// TextureFor returns the texture role a class samples and the role for
// screens, which depends on the node.
func TextureFor(class MaterialClass, name string) (TextureRole, bool) {
	switch class {
	case ClassStructure:
		return Structure, true
	case ClassItems:
		return Items, true
	case ClassEnvironment:
		return Environment, true
	case ClassTargets:
		return Targets, true
	case ClassScreen:
		if name == string(engine.TargetTVScreen) {
			return TVScreen, true
		}
		return ComputerScreen, true
	}
	return 0, false
}

// Surface holds the shading parameters for a class.
type Surface struct {
	Emissive  float32
	Roughness float32
	Metalness float32
}

func SurfaceFor(class MaterialClass) Surface {
	switch class {
	case ClassScreen:
		return Surface{Emissive: 2.0, Roughness: 0.2}
	case ClassTargets:
		return Surface{Roughness: 0.4, Metalness: 0.2}
	}
	return Surface{Roughness: 0.7, Metalness: 0.1}
}

// Stats counts how many mesh nodes landed in each group.
type Stats struct {
	Textured int
	Target   int
	Screen   int
	Other    int
}

func (s Stats) Total() int {
	return s.Textured + s.Target + s.Screen + s.Other
}

func (s *Stats) add(class MaterialClass) {
	switch class {
	case ClassStructure, ClassItems, ClassEnvironment:
		s.Textured++
	case ClassTargets:
		s.Target++
	case ClassScreen:
		s.Screen++
	default:
		s.Other++
	}
}
