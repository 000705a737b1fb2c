package utils

import (
	"fmt"
	"math/rand"

	"github.com/Pallinder/go-randomdata"
)

// RandomNameGenerator hands out unique display names, zero value is ready to use
type RandomNameGenerator struct {
	used map[string]struct{}
}

func (rng *RandomNameGenerator) RandomName() string {
	if rng.used == nil {
		rng.used = make(map[string]struct{})
		randomdata.CustomRand(rand.New(rand.NewSource(0)))
	}
	for attempt := 0; ; attempt++ {
		name := randomdata.SillyName()
		if attempt > 16 {
			name = fmt.Sprintf("%s%d", name, len(rng.used))
		}
		if _, exists := rng.used[name]; !exists {
			rng.used[name] = struct{}{}
			return name
		}
	}
}

// Release makes name available again
func (rng *RandomNameGenerator) Release(name string) {
	delete(rng.used, name)
}
