// Package config holds the site configuration. Every field has a compiled-in
// default; a YAML file only needs to name what it changes.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// Vec3 is written as a three element sequence in YAML.
type Vec3 [3]float32

func (v Vec3) V() rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

type Pose struct {
	Position Vec3 `yaml:"position"`
	Target   Vec3 `yaml:"target"`
}

type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Assets  AssetsConfig  `yaml:"assets"`
	Camera  CameraConfig  `yaml:"camera"`
	Orbit   OrbitConfig   `yaml:"orbit"`
	Links   LinksConfig   `yaml:"links"`
	Content ContentConfig `yaml:"content"`
	Capture CaptureConfig `yaml:"capture"`
}

type WindowConfig struct {
	Width      int32  `yaml:"width"`
	Height     int32  `yaml:"height"`
	Title      string `yaml:"title"`
	FPS        int32  `yaml:"fps"`
	Background string `yaml:"background"`
	MSAA       bool   `yaml:"msaa"`
}

type AssetsConfig struct {
	Model    string            `yaml:"model"`
	Textures map[string]string `yaml:"textures"`
	Shaders  string            `yaml:"shaders"`
}

type CameraConfig struct {
	MobileBreakpoint int32   `yaml:"mobile_breakpoint"`
	DesktopFOV       float32 `yaml:"desktop_fov"`
	MobileFOV        float32 `yaml:"mobile_fov"`
	Near             float32 `yaml:"near"`
	Far              float32 `yaml:"far"`
	DesktopHome      Pose    `yaml:"desktop_home"`
	MobileHome       Pose    `yaml:"mobile_home"`
}

type DistanceBounds struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
}

type OrbitConfig struct {
	Desktop DistanceBounds `yaml:"desktop"`
	Mobile  DistanceBounds `yaml:"mobile"`
	// Angles in degrees.
	MinPolar   float32 `yaml:"min_polar"`
	MaxPolar   float32 `yaml:"max_polar"`
	MinAzimuth float32 `yaml:"min_azimuth"`
	MaxAzimuth float32 `yaml:"max_azimuth"`
	// Spring parameters for damping.
	DampingFrequency float64 `yaml:"damping_frequency"`
	DampingRatio     float64 `yaml:"damping_ratio"`
	RotateSpeed      float32 `yaml:"rotate_speed"`
	ZoomSpeed        float32 `yaml:"zoom_speed"`
}

type Link struct {
	URL      string `yaml:"url"`
	SiteName string `yaml:"site_name"`
}

type LinksConfig struct {
	GitHub   Link `yaml:"github"`
	LinkedIn Link `yaml:"linkedin"`
}

type Content struct {
	Title string   `yaml:"title"`
	Body  []string `yaml:"body"`
}

type ContentConfig struct {
	About   Content `yaml:"about"`
	CV      Content `yaml:"cv"`
	Contact Content `yaml:"contact"`
}

type CaptureConfig struct {
	Dir string `yaml:"dir"`
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Title:      "Johannes Brannelid | Portfolio",
			FPS:        60,
			Background: "#D9CAD1",
			MSAA:       true,
		},
		Assets: AssetsConfig{
			Model: "assets/models/Room_Portfolio.glb",
			Textures: map[string]string{
				"environment":    "assets/textures/TextureEnv.webp",
				"structure":      "assets/textures/TextureStructureDenoise.webp",
				"items":          "assets/textures/TextureItemsDenoise.webp",
				"targets":        "assets/textures/TargetsTextureDenoise.webp",
				"computerscreen": "assets/images/MaxiElina.jpg",
				"tvscreen":       "assets/images/IMG_3211.jpg",
			},
			Shaders: "assets/shaders",
		},
		Camera: CameraConfig{
			MobileBreakpoint: 768,
			DesktopFOV:       35,
			MobileFOV:        50,
			Near:             0.1,
			Far:              200,
			DesktopHome:      Pose{Position: Vec3{12, 5, 12}, Target: Vec3{0.4, 1.9, -0.8}},
			MobileHome:       Pose{Position: Vec3{20, 16, 35}, Target: Vec3{0, 3, 0}},
		},
		Orbit: OrbitConfig{
			Desktop:          DistanceBounds{Min: 5, Max: 18},
			Mobile:           DistanceBounds{Min: 10, Max: 45},
			MinPolar:         0,
			MaxPolar:         90,
			MinAzimuth:       0,
			MaxAzimuth:       90,
			DampingFrequency: 6,
			DampingRatio:     1,
			RotateSpeed:      0.005,
			ZoomSpeed:        0.1,
		},
		Links: LinksConfig{
			GitHub:   Link{URL: "https://github.com/JBrannelid", SiteName: "GitHub"},
			LinkedIn: Link{URL: "https://www.linkedin.com/in/johannes-brannelid/", SiteName: "LinkedIn"},
		},
		Content: ContentConfig{
			About: Content{
				Title: "About me",
				Body: []string{
					"Hi, I'm Johannes, a fullstack developer based in Stockholm.",
					"I moved into software from healthcare, where I worked as a radiographer.",
					"I like building interfaces that feel calm and physical, like this room.",
				},
			},
			CV: Content{
				Title: "CV",
				Body: []string{
					"Fullstack development: .NET, React, Next.js, TypeScript.",
					"Cloud: Azure.",
					"Previously: radiographer, Swedish healthcare.",
				},
			},
			Contact: Content{
				Title: "Contact",
				Body: []string{
					"Email: J.Brannelid@icloud.com",
					"Stockholm, Sweden",
				},
			},
		},
		Capture: CaptureConfig{Dir: "captures"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, leaving fields the document does not mention
// untouched, and validates the result.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	return cfg.Validate()
}

// TextureRoles lists the keys assets.textures must carry.
var TextureRoles = []string{"environment", "structure", "items", "targets", "computerscreen", "tvscreen"}

func (c *Config) Validate() error {
	var errs []error
	if c.Assets.Model == "" {
		errs = append(errs, errors.New("assets.model is empty"))
	}
	for _, role := range TextureRoles {
		if c.Assets.Textures[role] == "" {
			errs = append(errs, fmt.Errorf("assets.textures.%s is missing", role))
		}
	}
	for key := range c.Assets.Textures {
		if !isTextureRole(key) {
			errs = append(errs, fmt.Errorf("assets.textures.%s is not a texture role", key))
		}
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d is invalid", c.Window.Width, c.Window.Height))
	}
	if _, err := ParseHexColor(c.Window.Background); err != nil {
		errs = append(errs, fmt.Errorf("window.background: %w", err))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera near/far %v/%v is invalid", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.DesktopFOV <= 0 || c.Camera.MobileFOV <= 0 {
		errs = append(errs, errors.New("camera fov must be positive"))
	}
	for name, b := range map[string]DistanceBounds{"desktop": c.Orbit.Desktop, "mobile": c.Orbit.Mobile} {
		if b.Min <= 0 || b.Max < b.Min {
			errs = append(errs, fmt.Errorf("orbit.%s distance [%v, %v] is invalid", name, b.Min, b.Max))
		}
	}
	if c.Orbit.MaxPolar < c.Orbit.MinPolar || c.Orbit.MinPolar < 0 || c.Orbit.MaxPolar > 180 {
		errs = append(errs, fmt.Errorf("orbit polar [%v, %v] is invalid", c.Orbit.MinPolar, c.Orbit.MaxPolar))
	}
	if c.Orbit.MaxAzimuth < c.Orbit.MinAzimuth {
		errs = append(errs, fmt.Errorf("orbit azimuth [%v, %v] is invalid", c.Orbit.MinAzimuth, c.Orbit.MaxAzimuth))
	}
	for name, l := range map[string]Link{"github": c.Links.GitHub, "linkedin": c.Links.LinkedIn} {
		if !strings.HasPrefix(l.URL, "https://") && !strings.HasPrefix(l.URL, "http://") {
			errs = append(errs, fmt.Errorf("links.%s url %q is not http(s)", name, l.URL))
		}
	}
	return errors.Join(errs...)
}

func isTextureRole(key string) bool {
	for _, role := range TextureRoles {
		if role == key {
			return true
		}
	}
	return false
}

// ParseHexColor reads "#RRGGBB" or "#RRGGBBAA".
func ParseHexColor(s string) (rl.Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 && len(s) != 8 {
		return rl.Color{}, fmt.Errorf("color %q: want #RRGGBB", s)
	}
	var v [4]uint8
	v[3] = 255
	for i := 0; i < len(s)/2; i++ {
		hi, ok1 := hexDigit(s[2*i])
		lo, ok2 := hexDigit(s[2*i+1])
		if !ok1 || !ok2 {
			return rl.Color{}, fmt.Errorf("color %q: bad hex digit", s)
		}
		v[i] = hi<<4 | lo
	}
	return rl.Color{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Background is the validated window background colour.
func (c *Config) Background() rl.Color {
	col, err := ParseHexColor(c.Window.Background)
	if err != nil {
		return rl.RayWhite
	}
	return col
}
