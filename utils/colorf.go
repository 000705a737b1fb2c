package utils

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type ColorFloat [4]float32

func (c ColorFloat) RGBA() (r, g, b, a uint32) {
	const mf = float32(256*256 - 1)
	r = uint32(c[0] * c[3] * mf)
	g = uint32(c[1] * c[3] * mf)
	b = uint32(c[2] * c[3] * mf)
	a = uint32(c[3] * mf)
	return
}

// ParseHexColor accepts #RRGGBB and #RRGGBBAA
func ParseHexColor(s string) (ColorFloat, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return ColorFloat{}, errors.Errorf("Invalid color %q", s)
	}

	c := ColorFloat{0, 0, 0, 1}
	for i := 0; i < len(hex)/2; i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return ColorFloat{}, errors.Wrapf(err, "Invalid color %q", s)
		}
		c[i] = float32(v) / 255
	}
	return c, nil
}

func MustParseHexColor(s string) ColorFloat {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
