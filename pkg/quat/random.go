package quat

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
)

// Random returns a rotation drawn uniformly from SO(3) (Shoemake's method).
// A nil r uses the package-level source.
func Random(r *rand.Rand) Quat {
	float := rand.Float32
	if r != nil {
		float = r.Float32
	}
	u1, u2, u3 := float(), float(), float()

	s1 := math32.Sqrt(1 - u1)
	s2 := math32.Sqrt(u1)
	sin2, cos2 := math32.Sincos(2 * math32.Pi * u2)
	sin3, cos3 := math32.Sincos(2 * math32.Pi * u3)

	return Quat{s2 * cos3, s1 * sin2, s1 * cos2, s2 * sin3}
}
