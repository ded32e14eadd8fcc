package main

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/chewxy/math32"
	"github.com/taigrr/orient/pkg/math3d"
	"github.com/taigrr/orient/pkg/models"
	"github.com/taigrr/orient/pkg/quat"
	"github.com/taigrr/orient/pkg/render"
	"github.com/taigrr/orient/pkg/track"
	"go.uber.org/zap"
)

var errNoTrack = errors.New("nothing to sample: pass -track or a glTF model with a rotation animation")

const (
	pngWidth  = 320
	pngHeight = 240
)

var meshColor = render.RGB(0, 255, 128)

// sampleTimes spreads steps samples over the track, ends included.
func sampleTimes(t *track.Track, steps int) []float32 {
	if steps < 1 {
		steps = 1
	}
	start, d := t.Start(), t.Duration()
	if steps == 1 || d == 0 {
		return []float32{start}
	}

	times := make([]float32, steps)
	for i := range times {
		times[i] = start + d*float32(i)/float32(steps-1)
	}
	return times
}

// dump prints the track sampled at steps evenly spaced times, or writes the
// samples back as a keyframe track when asYAML is set.
func dump(w io.Writer, sc *scene, order quat.EulerOrder, steps int, asYAML bool) error {
	if sc.track == nil {
		return errNoTrack
	}

	times := sampleTimes(sc.track, steps)
	if asYAML {
		out := track.New(sc.track.Name, track.Nearest)
		for _, tm := range times {
			if err := out.Append(tm, sc.track.Sample(tm)); err != nil {
				return fmt.Errorf("resample: %w", err)
			}
		}
		return track.Encode(w, out)
	}

	for _, tm := range times {
		q := sc.track.Sample(tm)
		if _, err := fmt.Fprintf(w, "t=%.3f\n", tm); err != nil {
			return err
		}
		for _, line := range describe(q, order) {
			if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
				return err
			}
		}
	}
	return nil
}

func deg(rad float32) float32 {
	return rad * 180 / math32.Pi
}

func fmtVec(v math3d.Vec3) string {
	return fmt.Sprintf("(%+.3f, %+.3f, %+.3f)", v.X, v.Y, v.Z)
}

// describe renders q in each representation, one per line.
func describe(q quat.Quat, order quat.EulerOrder) []string {
	e := q.ToEuler(order)
	angle, axis := q.ToAngleAxis()
	return []string{
		fmt.Sprintf("quat   %+.4f %+.4fi %+.4fj %+.4fk", q.W, q.X, q.Y, q.Z),
		fmt.Sprintf("euler  %s (%+.1f°, %+.1f°, %+.1f°)", order, deg(e[0]), deg(e[1]), deg(e[2])),
		fmt.Sprintf("axis   %s angle %.1f°", fmtVec(axis), deg(angle)),
		fmt.Sprintf("rotvec %s", fmtVec(q.ToRotationVector())),
	}
}

// newCamera looks at the origin from +Z with the aspect of a width x height
// framebuffer.
func newCamera(width, height int) *render.Camera {
	cam := render.NewCamera()
	cam.SetAspectRatio(float32(width) / float32(height))
	cam.LookAt(math3d.Zero3(), math3d.UnitY())
	return cam
}

// drawFrame draws mesh at orientation q with its body axes and rotation axis.
func drawFrame(fb *render.Framebuffer, cam *render.Camera, mesh *models.Mesh, q quat.Quat, bg color.RGBA) {
	fb.Clear(bg)
	wf := render.NewWireframe(cam, fb)
	wf.DrawMesh(mesh, q, meshColor)
	wf.DrawAxis(q, 2, render.ColorYellow)
	wf.DrawAxes(q, 1.5)
}

// renderPNG draws the scene at the start of its track.
func renderPNG(path string, sc *scene, bg color.RGBA, logger *zap.Logger) error {
	q := quat.Identity()
	if sc.track != nil {
		q = sc.track.Sample(sc.track.Start())
	}

	fb := render.NewFramebuffer(pngWidth, pngHeight)
	drawFrame(fb, newCamera(pngWidth, pngHeight), sc.mesh, q, bg)
	if err := fb.SavePNG(path); err != nil {
		return err
	}

	logger.Info("wrote frame", zap.String("path", path), zap.Stringer("orientation", q))
	return nil
}
