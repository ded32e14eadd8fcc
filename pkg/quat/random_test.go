package quat

import (
	"math/rand/v2"
	"testing"

	"github.com/chewxy/math32"
)

func TestRandom(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 42))
	var meanW float32
	const n = 2000
	for range n {
		q := Random(r)
		if math32.Abs(q.Mag()-1) > tol {
			t.Fatalf("not unit: %v (|q| = %v)", q, q.Mag())
		}
		meanW += math32.Abs(q.W)
	}
	// w of a uniform point on the 3-sphere has density ∝ sqrt(1-w²), so
	// E|w| = 4/(3π) ≈ 0.424.
	meanW /= n
	if math32.Abs(meanW-4/(3*math32.Pi)) > 0.02 {
		t.Errorf("mean |w| = %v, want about 0.424", meanW)
	}
}

func TestRandomDeterministic(t *testing.T) {
	a := Random(rand.New(rand.NewPCG(1, 2)))
	b := Random(rand.New(rand.NewPCG(1, 2)))
	if a != b {
		t.Errorf("same seed gave %v and %v", a, b)
	}
	if q := Random(nil); math32.Abs(q.Mag()-1) > tol {
		t.Errorf("nil source: not unit: %v", q)
	}
}
