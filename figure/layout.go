package figure

import (
	_ "embed"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	SHAPE_BOX    = "box"
	SHAPE_SPHERE = "sphere"
)

//go:embed layout.yaml
var defaultLayoutData []byte

type PartLayout struct {
	Name   string     `yaml:"name"`
	Title  string     `yaml:"title,omitempty"`
	Parent string     `yaml:"parent,omitempty"`
	Joint  mgl32.Vec3 `yaml:"joint,omitempty,flow"`
	Offset mgl32.Vec3 `yaml:"offset,omitempty,flow"`
	Shape  string     `yaml:"shape"`
	Size   mgl32.Vec3 `yaml:"size,flow"`
}

type Layout struct {
	Parts []PartLayout `yaml:"parts"`
}

func ParseLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, errors.Wrapf(err, "Failed to unmarshal layout")
	}
	return &l, nil
}

func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read layout %q", path)
	}
	return ParseLayout(data)
}

func DefaultLayout() *Layout {
	l, err := ParseLayout(defaultLayoutData)
	if err != nil {
		panic(err)
	}
	return l
}

// JointName is the name of the joint node that positions part
func JointName(part string) string {
	return part + "_joint"
}
