package components

import (
	"math"

	"portfolio3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DirectionalLight is the room's sun. Position is where the shadow camera
// sits; the light shines from there towards Target.
type DirectionalLight struct {
	engine.BaseComponent
	Position  rl.Vector3
	Target    rl.Vector3
	Color     rl.Color
	Intensity float32
	Ambient   float32

	// Orthographic shadow volume.
	ShadowExtent float32
	ShadowNear   float32
	ShadowFar    float32
}

func NewDirectionalLight() *DirectionalLight {
	return &DirectionalLight{
		Position:     rl.Vector3{X: 5, Y: 10, Z: 7.5},
		Color:        rl.White,
		Intensity:    0.8,
		Ambient:      0.6,
		ShadowExtent: 10,
		ShadowNear:   0.1,
		ShadowFar:    50,
	}
}

// Direction is the unit vector the light travels along.
func (l *DirectionalLight) Direction() rl.Vector3 {
	return rl.Vector3Normalize(rl.Vector3Subtract(l.Target, l.Position))
}

// LightCamera is the orthographic camera for the shadow pass. Fovy carries
// the full height of the shadow volume.
func (l *DirectionalLight) LightCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   l.Position,
		Target:     l.Target,
		Up:         l.lightCameraUp(),
		Fovy:       l.ShadowExtent * 2,
		Projection: rl.CameraOrthographic,
	}
}

func (l *DirectionalLight) ColorFloat() []float32 {
	return []float32{
		float32(l.Color.R) / 255.0 * l.Intensity,
		float32(l.Color.G) / 255.0 * l.Intensity,
		float32(l.Color.B) / 255.0 * l.Intensity,
		1.0,
	}
}

func (l *DirectionalLight) AmbientFloat() []float32 {
	return []float32{l.Ambient, l.Ambient, l.Ambient, 1.0}
}

func (l *DirectionalLight) lightCameraUp() rl.Vector3 {
	if math.Abs(float64(l.Direction().Y)) > 0.9 {
		return rl.Vector3{X: 0, Y: 0, Z: 1}
	}
	return rl.Vector3{X: 0, Y: 1, Z: 0}
}
