package main

import (
	"context"
	"fmt"
	"image/color"
	"math/rand/v2"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/orient/pkg/math3d"
	"github.com/taigrr/orient/pkg/motion"
	"github.com/taigrr/orient/pkg/quat"
	"github.com/taigrr/orient/pkg/render"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// torqueStrength is the angular acceleration of a held key in rad/s².
	torqueStrength = 12.0
	// dragGain is the spin in rad/s added per cell of mouse drag.
	dragGain = 1.5
	// arrived is the remaining angle at which a slerp to a random target ends.
	arrived = 1e-3
)

var (
	hudFg = render.ColorWhite
	hudBg = render.RGB(0, 0, 0)
)

// viewer holds the interactive state. It is owned by the render loop.
type viewer struct {
	scene *scene
	bg    color.RGBA
	order quat.EulerOrder
	fps   int
	log   *zap.Logger

	spin      *motion.Spinner
	follow    *motion.Follower
	following bool
	torque    math3d.Vec3
	rng       *rand.Rand

	clock  float32
	paused bool

	showHUD    bool
	mouseDown  bool
	lastX      int
	lastY      int
	width      int
	height     int
	fb         *render.Framebuffer
	cam        *render.Camera
	frameCount int
}

func newViewer(sc *scene, order quat.EulerOrder, fps int, bg color.RGBA, logger *zap.Logger) *viewer {
	v := &viewer{
		scene:   sc,
		bg:      bg,
		order:   order,
		fps:     fps,
		log:     logger,
		spin:    motion.NewSpinner(fps),
		follow:  motion.NewFollower(fps, 3.0, 1.0),
		rng:     rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		showHUD: true,
	}
	v.resize(80, 24)
	return v
}

// resize rebuilds the framebuffer for a width x height cell terminal.
func (v *viewer) resize(width, height int) {
	v.width, v.height = width, height
	fbHeight := max(height*2, 2)
	v.fb = render.NewFramebuffer(max(width, 1), fbHeight)
	v.cam = newCamera(v.fb.Width, v.fb.Height)
}

// handle applies one input event. It reports false when the viewer should
// quit.
func (v *viewer) handle(ev uv.Event) bool {
	switch ev := ev.(type) {
	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("escape", "ctrl+c"):
			return false
		case ev.MatchString("w", "up"):
			v.torque.X = -torqueStrength
		case ev.MatchString("s", "down"):
			v.torque.X = torqueStrength
		case ev.MatchString("a", "left"):
			v.torque.Y = -torqueStrength
		case ev.MatchString("d", "right"):
			v.torque.Y = torqueStrength
		case ev.MatchString("q"):
			v.torque.Z = torqueStrength
		case ev.MatchString("e"):
			v.torque.Z = -torqueStrength
		case ev.MatchString("space"):
			target := quat.Random(v.rng)
			v.follow.Jump(v.spin.Orientation)
			v.follow.SetTarget(target)
			v.spin.Velocity = math3d.Vec3{}
			v.following = true
			v.log.Debug("slerp to random orientation", zap.Stringer("target", target))
		case ev.MatchString("r"):
			v.reset()
		case ev.MatchString("o"):
			i := slices.Index(quat.EulerOrders, v.order)
			v.order = quat.EulerOrders[(i+1)%len(quat.EulerOrders)]
		case ev.MatchString("p"):
			v.paused = !v.paused
		case ev.MatchString("?"), ev.MatchString("shift+/"):
			v.showHUD = !v.showHUD
		}

	case uv.KeyReleaseEvent:
		switch {
		case ev.MatchString("w", "up", "s", "down"):
			v.torque.X = 0
		case ev.MatchString("a", "left", "d", "right"):
			v.torque.Y = 0
		case ev.MatchString("q", "e"):
			v.torque.Z = 0
		}

	case uv.MouseClickEvent:
		v.mouseDown = true
		v.lastX, v.lastY = ev.X, ev.Y

	case uv.MouseReleaseEvent:
		v.mouseDown = false

	case uv.MouseMotionEvent:
		if v.mouseDown {
			dx := float32(ev.X - v.lastX)
			dy := float32(ev.Y - v.lastY)
			// Dragging right turns the front toward the right: +Y. Dragging
			// down tips the top toward the viewer: +X.
			v.spin.ApplyImpulse(math3d.V3(dy*dragGain, dx*dragGain, 0))
			v.lastX, v.lastY = ev.X, ev.Y
		}
	}
	return true
}

func (v *viewer) reset() {
	v.spin.Reset()
	v.follow.Jump(quat.Identity())
	v.following = false
	v.torque = math3d.Vec3{}
	v.clock = 0
}

// step advances one frame and returns the orientation to draw: the user's
// spin applied after the track's orientation.
func (v *viewer) step() quat.Quat {
	dt := 1 / float32(v.fps)

	// Key release events are unreliable, so held torque decays.
	v.spin.ApplyImpulse(v.torque.Scale(dt))
	v.torque = v.torque.Scale(0.9)
	v.spin.Update()

	if v.following {
		v.spin.Orientation = v.follow.Update()
		if v.follow.Remaining() < arrived {
			v.following = false
		}
	}

	base := quat.Identity()
	if t := v.scene.track; t != nil {
		base = t.Sample(t.Start() + v.clock)
		if !v.paused {
			v.clock += dt
		}
	}
	return v.spin.Orientation.Mul(base)
}

// drawHUD writes the orientation readout over the top rows and the scene
// name on the bottom row.
func (v *viewer) drawHUD(scr uv.Screen, q quat.Quat) {
	if !v.showHUD {
		return
	}

	for i, line := range describe(q, v.order) {
		render.DrawText(scr, 1, i, " "+line+" ", hudFg, hudBg)
	}
	if v.scene.track != nil {
		other := v.spin.Orientation.Mul(v.scene.track.Sample(v.scene.track.Start()))
		line := fmt.Sprintf(" from start %.1f° ", deg(2*quat.AngleBetween(other, q)))
		render.DrawText(scr, 1, 4, line, hudFg, hudBg)
	}

	status := fmt.Sprintf(" %s  %d tris ", v.scene.name, v.scene.mesh.TriangleCount())
	if v.paused {
		status += "[paused] "
	}
	render.DrawText(scr, 1, v.height-1, status, render.ColorYellow, hudBg)
}

// runViewer drives the terminal until Esc, Ctrl+C or a signal.
func runViewer(ctx context.Context, sc *scene, order quat.EulerOrder, fps int, bg color.RGBA, logger *zap.Logger) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	if err := term.Resize(width, height); err != nil {
		return fmt.Errorf("resize terminal: %w", err)
	}

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	defer func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		if err := term.Shutdown(context.Background()); err != nil {
			logger.Warn("shutdown terminal", zap.Error(err))
		}
	}()

	v := newViewer(sc, order, fps, bg, logger)
	v.resize(width, height)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan uv.Event, 64)
	g, ctx := errgroup.WithContext(ctx)

	// Input: forward terminal events to the render loop.
	g.Go(func() error {
		src := term.Events()
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-src:
				if !ok {
					return nil
				}
				select {
				case events <- ev:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})

	// Render loop
	g.Go(func() error {
		defer cancel()
		return v.loop(ctx, term, events)
	})

	logger.Info("viewer started", zap.Int("width", width), zap.Int("height", height), zap.Int("fps", fps))
	err = g.Wait()
	logger.Info("viewer stopped", zap.Int("frames", v.frameCount))
	return err
}

func (v *viewer) loop(ctx context.Context, term *uv.Terminal, events <-chan uv.Event) error {
	ticker := time.NewTicker(time.Second / time.Duration(v.fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if size, ok := ev.(uv.WindowSizeEvent); ok {
				term.Erase()
				if err := term.Resize(size.Width, size.Height); err != nil {
					return fmt.Errorf("resize terminal: %w", err)
				}
				v.resize(size.Width, size.Height)
				continue
			}
			if !v.handle(ev) {
				return nil
			}

		case <-ticker.C:
			q := v.step()
			drawFrame(v.fb, v.cam, v.scene.mesh, q, v.bg)
			v.fb.Draw(term, term.Bounds())
			v.drawHUD(term, q)
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
			v.frameCount++
		}
	}
}
