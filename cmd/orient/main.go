// orient - Terminal orientation viewer
// Spin a model with spring-damped impulses, play keyframe tracks and glTF
// rotation animations, and read the orientation back as a quaternion, Euler
// angles and angle-axis.
//
// Controls:
//
//	Mouse drag  - Spin model
//	W/S         - Pitch impulse
//	A/D         - Yaw impulse
//	Q/E         - Roll impulse
//	Space       - Slerp to a random orientation
//	R           - Reset rotation and playback
//	O           - Cycle the Euler order shown in the HUD
//	P           - Pause track playback
//	?           - Toggle HUD overlay
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/orient/pkg/models"
	"github.com/taigrr/orient/pkg/quat"
	"github.com/taigrr/orient/pkg/render"
	"github.com/taigrr/orient/pkg/track"
	"go.uber.org/zap"
)

var (
	trackPath = flag.String("track", "", "Keyframe track to play (YAML)")
	animName  = flag.String("anim", "", "glTF animation track to play (default: first)")
	orderName = flag.String("order", "XYZ", "Euler order shown in the HUD and used by -dump")
	targetFPS = flag.Int("fps", 60, "Target FPS")
	bgColor   = flag.String("bg", "30,30,40", "Background color (R,G,B)")
	dumpMode  = flag.Bool("dump", false, "Print sampled orientations instead of opening the viewer")
	dumpSteps = flag.Int("steps", 10, "Samples printed by -dump")
	dumpYAML  = flag.Bool("yaml", false, "With -dump, write the samples as a keyframe track")
	pngPath   = flag.String("png", "", "Render one frame to a PNG file and exit")
	logPath   = flag.String("log", "", "Write structured logs to this file")
)

// options is the parsed command line.
type options struct {
	model   string
	track   string
	anim    string
	order   string
	fps     int
	bg      string
	dump    bool
	steps   int
	yaml    bool
	png     string
	logPath string
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "orient - Terminal orientation viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: orient [options] [model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Without a model a cube is shown.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Spin model\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Pitch and yaw\n")
		fmt.Fprintf(os.Stderr, "  Q/E         - Roll left/right\n")
		fmt.Fprintf(os.Stderr, "  Space       - Slerp to a random orientation\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset\n")
		fmt.Fprintf(os.Stderr, "  O           - Cycle Euler order\n")
		fmt.Fprintf(os.Stderr, "  P           - Pause playback\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}

	opts := options{
		model:   flag.Arg(0),
		track:   *trackPath,
		anim:    *animName,
		order:   *orderName,
		fps:     *targetFPS,
		bg:      *bgColor,
		dump:    *dumpMode,
		steps:   *dumpSteps,
		yaml:    *dumpYAML,
		png:     *pngPath,
		logPath: *logPath,
	}

	if err := run(context.Background(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	if opts.fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", opts.fps)
	}
	order, err := quat.ParseEulerOrder(opts.order)
	if err != nil {
		return err
	}
	bg, err := parseColor(opts.bg)
	if err != nil {
		return err
	}

	batch := opts.dump || opts.png != ""
	logger, err := newLogger(opts.logPath, batch)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	sc, err := loadScene(opts, logger)
	if err != nil {
		return err
	}

	switch {
	case opts.dump:
		return dump(os.Stdout, sc, order, opts.steps, opts.yaml)
	case opts.png != "":
		return renderPNG(opts.png, sc, bg, logger)
	}
	return runViewer(ctx, sc, order, opts.fps, bg, logger)
}

// newLogger writes JSON to path when set. Without a path, batch modes log to
// stderr and the viewer, which owns the terminal, logs nowhere.
func newLogger(path string, batch bool) (*zap.Logger, error) {
	if path != "" {
		config := zap.Config{
			Level:            zap.NewAtomicLevelAt(zap.DebugLevel),
			Encoding:         "json",
			EncoderConfig:    zap.NewProductionEncoderConfig(),
			OutputPaths:      []string{path},
			ErrorOutputPaths: []string{path},
			DisableCaller:    true,
		}
		return config.Build()
	}
	if batch {
		return zap.NewDevelopment()
	}
	return zap.NewNop(), nil
}

// parseColor parses "R,G,B" with each channel in 0..255.
func parseColor(s string) (color.RGBA, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("background color %q: want R,G,B", s)
	}

	var c [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("background color %q: %w", s, err)
		}
		c[i] = uint8(v)
	}
	return render.RGB(c[0], c[1], c[2]), nil
}

// scene is what the viewer shows: a mesh and an optional rotation track.
type scene struct {
	name  string
	mesh  *models.Mesh
	track *track.Track
}

func loadScene(opts options, logger *zap.Logger) (*scene, error) {
	sc := &scene{name: "cube", mesh: models.NewCube(2)}

	gltfModel := false
	if opts.model != "" {
		ext := strings.ToLower(filepath.Ext(opts.model))
		if ext != ".glb" && ext != ".gltf" {
			return nil, fmt.Errorf("unsupported format: %s (use .glb or .gltf)", ext)
		}

		mesh, err := (&models.GLTFLoader{FitSize: 2}).Load(opts.model)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		sc.name, sc.mesh, gltfModel = mesh.Name, mesh, true
		logger.Info("loaded model",
			zap.String("path", opts.model),
			zap.Int("vertices", mesh.VertexCount()),
			zap.Int("triangles", mesh.TriangleCount()),
		)
	}

	switch {
	case opts.track != "":
		t, err := track.Load(opts.track)
		if err != nil {
			return nil, err
		}
		sc.track = t
	case gltfModel:
		tracks, err := models.LoadRotationTracks(opts.model)
		if err != nil {
			return nil, fmt.Errorf("load animation: %w", err)
		}
		t, err := selectTrack(tracks, opts.anim)
		if err != nil {
			return nil, err
		}
		sc.track = t
	case opts.anim != "":
		return nil, fmt.Errorf("-anim %q needs a glTF model", opts.anim)
	}

	if sc.track != nil {
		logger.Info("playing track",
			zap.String("name", sc.track.Name),
			zap.Int("keys", len(sc.track.Keys)),
			zap.Stringer("interpolation", sc.track.Interpolation),
			zap.Float32("duration", sc.track.Duration()),
		)
	}
	return sc, nil
}

// selectTrack picks the track named name, or whose animation is name. An
// empty name picks the first track, or none when there are no tracks.
func selectTrack(tracks []*track.Track, name string) (*track.Track, error) {
	if name == "" {
		if len(tracks) == 0 {
			return nil, nil
		}
		return tracks[0], nil
	}

	for _, t := range tracks {
		if t.Name == name || strings.HasPrefix(t.Name, name+"/") {
			return t, nil
		}
	}
	return nil, fmt.Errorf("animation %q not found", name)
}
