package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/orient/pkg/math3d"
	"github.com/taigrr/orient/pkg/models"
	"github.com/taigrr/orient/pkg/quat"
	"github.com/taigrr/orient/pkg/render"
	"github.com/taigrr/orient/pkg/track"
	"go.uber.org/zap"
)

func quarterTurnScene(t *testing.T) *scene {
	t.Helper()

	tr := track.New("spin", track.Slerp)
	require.NoError(t, tr.Append(0, quat.Identity()))
	require.NoError(t, tr.Append(1, quat.FromAngleAxis(math32.Pi/2, math3d.UnitZ())))
	return &scene{name: "cube", mesh: models.NewCube(2), track: tr}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    render.Color
		wantErr bool
	}{
		{"30,30,40", render.RGB(30, 30, 40), false},
		{" 255, 0 ,7", render.RGB(255, 0, 7), false},
		{"1,2", render.Color{}, true},
		{"1,2,256", render.Color{}, true},
		{"a,b,c", render.Color{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseColor(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSelectTrack(t *testing.T) {
	tracks := []*track.Track{
		track.New("walk/hips", track.Nearest),
		track.New("spin/top", track.Nearest),
	}

	got, err := selectTrack(tracks, "")
	require.NoError(t, err)
	assert.Same(t, tracks[0], got)

	got, err = selectTrack(tracks, "spin")
	require.NoError(t, err)
	assert.Same(t, tracks[1], got)

	got, err = selectTrack(tracks, "spin/top")
	require.NoError(t, err)
	assert.Same(t, tracks[1], got)

	_, err = selectTrack(tracks, "jump")
	require.Error(t, err)

	got, err = selectTrack(nil, "")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSampleTimes(t *testing.T) {
	sc := quarterTurnScene(t)

	assert.Equal(t, []float32{0, 0.25, 0.5, 0.75, 1}, sampleTimes(sc.track, 5))
	assert.Equal(t, []float32{0}, sampleTimes(sc.track, 1))
	assert.Equal(t, []float32{0}, sampleTimes(sc.track, 0))
}

func TestDumpText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dump(&buf, quarterTurnScene(t), quat.ZYX, 3, false))

	out := buf.String()
	assert.Contains(t, out, "t=0.000\n")
	assert.Contains(t, out, "t=0.500\n")
	assert.Contains(t, out, "t=1.000\n")
	assert.Contains(t, out, "quat   +1.0000 +0.0000i +0.0000j +0.0000k")
	// Halfway through a quarter turn about Z is 45° of yaw.
	assert.Contains(t, out, "euler  ZYX (+45.0°, +0.0°, +0.0°)")
	assert.Contains(t, out, "euler  ZYX (+90.0°, +0.0°, +0.0°)")
	assert.Contains(t, out, "angle 90.0°")
}

func TestDumpYAML(t *testing.T) {
	sc := quarterTurnScene(t)

	var buf bytes.Buffer
	require.NoError(t, dump(&buf, sc, quat.XYZ, 4, true))

	got, err := track.Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "spin", got.Name)
	require.Len(t, got.Keys, 4)
	for _, k := range got.Keys {
		want := sc.track.Sample(k.Time)
		assert.True(t, k.Rotation.SameRotation(want, 1e-5), "t=%v got %v want %v", k.Time, k.Rotation, want)
	}
}

func TestDumpNoTrack(t *testing.T) {
	err := dump(&bytes.Buffer{}, &scene{mesh: models.NewCube(1)}, quat.XYZ, 3, false)
	require.ErrorIs(t, err, errNoTrack)
}

func TestLoadScene(t *testing.T) {
	logger := zap.NewNop()

	t.Run("Default Cube", func(t *testing.T) {
		sc, err := loadScene(options{}, logger)
		require.NoError(t, err)
		assert.Equal(t, "cube", sc.name)
		assert.Equal(t, 12, sc.mesh.TriangleCount())
		assert.Nil(t, sc.track)
	})

	t.Run("Track File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tilt.yaml")
		src := "name: tilt\nkeys:\n  - time: 0\n    euler: [0, 0, 0]\n  - time: 2\n    axis: [1, 0, 0]\n    angle: 1\n"
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

		sc, err := loadScene(options{track: path}, logger)
		require.NoError(t, err)
		require.NotNil(t, sc.track)
		assert.Equal(t, "tilt", sc.track.Name)
		assert.Equal(t, float32(2), sc.track.Duration())
	})

	t.Run("Unsupported Model", func(t *testing.T) {
		_, err := loadScene(options{model: "teapot.obj"}, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported format")
	})

	t.Run("Anim Without Model", func(t *testing.T) {
		_, err := loadScene(options{anim: "spin"}, logger)
		require.Error(t, err)
	})

	t.Run("Missing Track", func(t *testing.T) {
		_, err := loadScene(options{track: filepath.Join(t.TempDir(), "none.yaml")}, logger)
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestRunRejectsBadOptions(t *testing.T) {
	base := options{order: "XYZ", fps: 60, bg: "0,0,0", dump: true}

	bad := base
	bad.fps = 0
	require.Error(t, run(t.Context(), bad))

	bad = base
	bad.order = "XYX"
	require.Error(t, run(t.Context(), bad))

	bad = base
	bad.bg = "red"
	require.Error(t, run(t.Context(), bad))
}

func TestRenderPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, renderPNG(path, quarterTurnScene(t), render.RGB(0, 0, 0), zap.NewNop()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestViewerKeys(t *testing.T) {
	v := newViewer(quarterTurnScene(t), quat.XYZ, 60, render.RGB(0, 0, 0), zap.NewNop())

	assert.True(t, v.handle(uv.KeyPressEvent{Code: 'w'}))
	assert.Equal(t, float32(-torqueStrength), v.torque.X)
	v.handle(uv.KeyReleaseEvent{Code: 'w'})
	assert.Zero(t, v.torque.X)

	v.handle(uv.KeyPressEvent{Code: 'o'})
	assert.Equal(t, quat.XZY, v.order)
	for range len(quat.EulerOrders) - 1 {
		v.handle(uv.KeyPressEvent{Code: 'o'})
	}
	assert.Equal(t, quat.XYZ, v.order)

	v.handle(uv.KeyPressEvent{Code: 'p'})
	assert.True(t, v.paused)

	v.handle(uv.KeyPressEvent{Code: uv.KeySpace})
	assert.True(t, v.following)

	assert.False(t, v.handle(uv.KeyPressEvent{Code: uv.KeyEscape}))
}

func TestViewerStep(t *testing.T) {
	v := newViewer(quarterTurnScene(t), quat.XYZ, 60, render.RGB(0, 0, 0), zap.NewNop())

	// At rest the viewer plays the track: after one second the quarter turn
	// is complete.
	var q quat.Quat
	for range 61 {
		q = v.step()
	}
	want := quat.FromAngleAxis(math32.Pi/2, math3d.UnitZ())
	assert.True(t, q.SameRotation(want, 1e-4), "got %v", q)

	v.handle(uv.KeyPressEvent{Code: 'd'})
	for range 30 {
		q = v.step()
	}
	assert.InDelta(t, 1, q.Mag(), 1e-5)
	assert.False(t, q.SameRotation(want, 1e-2), "yaw impulse had no effect")

	v.handle(uv.KeyPressEvent{Code: 'r'})
	assert.True(t, v.step().SameRotation(quat.Identity(), 1e-6))
}

func TestViewerFollowsRandomTarget(t *testing.T) {
	v := newViewer(&scene{name: "cube", mesh: models.NewCube(2)}, quat.XYZ, 60, render.RGB(0, 0, 0), zap.NewNop())

	v.handle(uv.KeyPressEvent{Code: uv.KeySpace})
	target := v.follow.Target()
	for i := 0; i < 600 && v.following; i++ {
		v.step()
	}

	assert.False(t, v.following, "slerp did not arrive")
	assert.True(t, v.spin.Orientation.SameRotation(target, 1e-2))
}

func TestViewerHUD(t *testing.T) {
	v := newViewer(quarterTurnScene(t), quat.ZYX, 60, render.RGB(0, 0, 0), zap.NewNop())
	scr := uv.NewScreenBuffer(80, 24)

	v.drawHUD(scr, quat.Identity())

	var row strings.Builder
	for x := range 40 {
		if c := scr.CellAt(x, 1); c != nil {
			row.WriteString(c.Content)
		}
	}
	assert.Contains(t, row.String(), "euler  ZYX")

	v.handle(uv.KeyPressEvent{Code: '?'})
	scr = uv.NewScreenBuffer(80, 24)
	v.drawHUD(scr, quat.Identity())
	c := scr.CellAt(2, 0)
	assert.True(t, c == nil || c.Content != "q", "HUD drawn while hidden")
}
