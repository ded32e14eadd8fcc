package quat

import (
	"math/rand/v2"
	"testing"

	"github.com/chewxy/math32"
	"github.com/taigrr/orient/pkg/math3d"
)

func TestProject(t *testing.T) {
	twist := FromAngleAxis(0.9, math3d.UnitZ())
	swing := FromAngleAxis(0.4, math3d.UnitX())

	tests := []struct {
		name     string
		q        Quat
		axis     math3d.Vec3
		expected Quat
	}{
		{"pure twist", twist, math3d.UnitZ(), twist},
		{"unnormalized axis", twist, math3d.V3(0, 0, 3), twist},
		{"perpendicular", twist, math3d.UnitX(), New(twist.W, 0, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.q.Project(tc.axis); !got.ApproxEqual(tc.expected, tol) {
				t.Errorf("got %v, want %v", got, tc.expected)
			}
		})
	}

	// swing*twist with swing perpendicular to z keeps exactly twist about z.
	if got := swing.Mul(twist).ProjectUnit(math3d.UnitZ()); !got.SameRotation(twist, tol) {
		t.Errorf("ProjectUnit = %v, want %v", got, twist)
	}
}

func TestProjectedAngle(t *testing.T) {
	q := FromAngleAxis(0.7, math3d.UnitZ())

	if got := q.ProjectedAngle(math3d.UnitZ()); math32.Abs(got-0.7) > tol {
		t.Errorf("about +z = %v, want 0.7", got)
	}
	if got := q.ProjectedAngle(math3d.V3(0, 0, -2)); math32.Abs(got+0.7) > tol {
		t.Errorf("about -z = %v, want -0.7", got)
	}
	if got := q.ProjectedAngle(math3d.UnitX()); math32.Abs(got) > tol {
		t.Errorf("about x = %v, want 0", got)
	}

	// ProjectedAngle is a full rotation angle, AngleBetween a half-angle.
	for _, angle := range []float32{0.2, 1.3, 2.9} {
		twist := FromAngleAxis(angle, math3d.UnitY())
		full := twist.ProjectedAngle(math3d.UnitY())
		half := AngleBetween(Identity(), twist)
		if math32.Abs(full-2*half) > tol {
			t.Errorf("angle %v: ProjectedAngle = %v, 2*AngleBetween = %v", angle, full, 2*half)
		}
	}
}

func TestAlign(t *testing.T) {
	got := Identity().Align(math3d.UnitX(), math3d.UnitY())
	if !got.ApproxEqual(New(1, 0, 0, 1), tol) {
		t.Errorf("Align(x, y) = %v, want (1, 0, 0, 1)", got)
	}
	if v := got.Sandwich(math3d.UnitX()); !vecNear(v, math3d.UnitY(), tol) {
		t.Errorf("aligned x = %v, want y", v)
	}
}

func TestAlignUnit(t *testing.T) {
	r := rand.New(rand.NewPCG(13, 17))
	for i := range 32 {
		q := Random(r)
		a := math3d.V3(r.Float32()*2-1, r.Float32()*2-1, r.Float32()*2-1)
		b := math3d.V3(r.Float32()*2-1, r.Float32()*2-1, r.Float32()*2-1).Scale(3)

		// Skip near-antipodal inputs, where no minimal rotation exists.
		if q.Sandwich(a).Normalize().Dot(b.Normalize()) < -0.99 {
			continue
		}

		got := q.AlignUnit(a, b)
		if math32.Abs(got.Mag()-1) > tol {
			t.Errorf("sample %d: not unit: %v", i, got.Mag())
		}
		if dir := got.Sandwich(a).Normalize(); !vecNear(dir, b.Normalize(), 1e-4) {
			t.Errorf("sample %d: R*q*a direction = %v, want %v", i, dir, b.Normalize())
		}
	}
}

func TestAlignKeepsAxisTwist(t *testing.T) {
	// Already aligned: the result is q itself, up to scale.
	q := FromAngleAxis(1.1, math3d.V3(1, 2, 0))
	a := math3d.V3(0, 0, 1)
	b := q.Sandwich(a)
	if got := q.AlignUnit(a, b); !got.SameRotation(q, tol) {
		t.Errorf("got %v, want %v", got, q)
	}
}
