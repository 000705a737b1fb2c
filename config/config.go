package config

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mogaika/figure_viewer/figure"
	"github.com/mogaika/figure_viewer/utils"
)

const (
	DefaultAddr         = ":8000"
	DefaultRotationStep = 10
)

// Camera places the live orbit camera, angles in degrees
type Camera struct {
	Target   mgl32.Vec3 `yaml:"target" json:"target"`
	Distance float32    `yaml:"distance" json:"distance"`
	Pitch    float32    `yaml:"pitch" json:"pitch"`
	Yaw      float32    `yaml:"yaw" json:"yaw"`
	Aspect   float32    `yaml:"aspect" json:"aspect"`
}

// Settings are the values of the parameter panel.
// Translate and Rotate place the figure root, Rotate in degrees.
type Settings struct {
	Near      float32    `yaml:"near" json:"near"`
	Far       float32    `yaml:"far" json:"far"`
	Fov       float32    `yaml:"fov" json:"fov"`
	Translate mgl32.Vec3 `yaml:"translate" json:"translate"`
	Rotate    mgl32.Vec3 `yaml:"rotate" json:"rotate"`
	Planes    []string   `yaml:"planes" json:"planes"`
}

type Materials struct {
	Default  string `yaml:"default"`
	Selected string `yaml:"selected"`
}

type Config struct {
	Addr string `yaml:"addr"`
	// figure layout file, embedded layout if empty
	Layout string `yaml:"layout"`
	// degrees per arrow key press
	RotationStep float32           `yaml:"rotation_step"`
	Camera       Camera            `yaml:"camera"`
	Settings     Settings          `yaml:"settings"`
	Materials    Materials         `yaml:"materials"`
	Keys         map[string]string `yaml:"keys"`
}

func (m Materials) Palette() (figure.Palette, error) {
	def, err := utils.ParseHexColor(m.Default)
	if err != nil {
		return figure.Palette{}, errors.Wrapf(err, "Default material")
	}
	sel, err := utils.ParseHexColor(m.Selected)
	if err != nil {
		return figure.Palette{}, errors.Wrapf(err, "Selected material")
	}
	return figure.Palette{Default: def, Selected: sel}, nil
}

func DefaultSettings() Settings {
	return Settings{
		Near:   1,
		Far:    5,
		Fov:    40,
		Planes: []string{"x0", "x1", "y0", "y1", "z0", "z1"},
	}
}

func Default() *Config {
	return &Config{
		Addr:         DefaultAddr,
		RotationStep: DefaultRotationStep,
		Camera: Camera{
			Distance: 4,
			Pitch:    10,
			Yaw:      30,
			Aspect:   1,
		},
		Settings: DefaultSettings(),
		Materials: Materials{
			Default:  "#FD5DA8",
			Selected: "#AF69EE",
		},
	}
}

func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrapf(err, "Failed to unmarshal config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Cannot read config %q", path)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "Config %q", path)
	}
	return c, nil
}

func (s *Settings) Validate() error {
	if s.Near <= 0 || s.Far <= s.Near {
		return errors.Errorf("Invalid clipping range near %v far %v", s.Near, s.Far)
	}
	if s.Fov <= 0 || s.Fov >= 180 {
		return errors.Errorf("Invalid fov %v", s.Fov)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.RotationStep <= 0 {
		return errors.Errorf("Invalid rotation step %v", c.RotationStep)
	}
	if c.Camera.Distance <= 0 {
		return errors.Errorf("Invalid camera distance %v", c.Camera.Distance)
	}
	if _, err := c.Materials.Palette(); err != nil {
		return err
	}
	return c.Settings.Validate()
}

// KeyBindings returns key name to script line, defaults overridden by Keys.
// Empty script in Keys unbinds the key.
func (c *Config) KeyBindings() map[string]string {
	step := c.RotationStep
	bindings := map[string]string{
		"w":          "parent",
		"s":          "child",
		"a":          "prev",
		"d":          "next",
		"c":          "overlay",
		"r":          "reset",
		"p":          "project",
		"ArrowUp":    fmt.Sprintf("rotate x %v", -step),
		"ArrowDown":  fmt.Sprintf("rotate x %v", step),
		"ArrowLeft":  fmt.Sprintf("rotate z %v", step),
		"ArrowRight": fmt.Sprintf("rotate z %v", -step),
	}
	for key, script := range c.Keys {
		if script == "" {
			delete(bindings, key)
		} else {
			bindings[key] = script
		}
	}
	return bindings
}
