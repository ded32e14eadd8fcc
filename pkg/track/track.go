// Package track holds keyframed orientation tracks and samples them with
// quaternion interpolation.
package track

import (
	"fmt"
	"slices"
	"strings"

	"github.com/chewxy/math32"
	"github.com/taigrr/orient/pkg/quat"
)

// Interpolation selects how a track blends between neighbouring keys.
type Interpolation int

const (
	// Nearest slerps along the shorter arc between keys.
	Nearest Interpolation = iota
	// Slerp slerps between the stored key quaternions as given, so a key
	// stored with the opposite sign takes the long way round.
	Slerp
	// Step holds each key until the next one.
	Step
)

func (i Interpolation) String() string {
	switch i {
	case Nearest:
		return "nearest"
	case Slerp:
		return "slerp"
	case Step:
		return "step"
	default:
		return fmt.Sprintf("Interpolation(%d)", int(i))
	}
}

// ParseInterpolation parses "nearest", "slerp" or "step". The empty string
// is Nearest.
func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nearest":
		return Nearest, nil
	case "slerp":
		return Slerp, nil
	case "step":
		return Step, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInterpolation, s)
	}
}

// Key is an orientation at a point in time (seconds).
type Key struct {
	Time     float32
	Rotation quat.Quat
}

// Track is an ordered list of keys. The zero value is an empty, clamped,
// nearest-interpolated track.
type Track struct {
	Name          string
	Interpolation Interpolation
	Loop          bool
	Keys          []Key
}

// New creates an empty track.
func New(name string, interp Interpolation) *Track {
	return &Track{
		Name:          name,
		Interpolation: interp,
		Keys:          make([]Key, 0),
	}
}

// Append adds a key at the end of the track. The rotation is normalized.
// time must not be earlier than the last key.
func (t *Track) Append(time float32, q quat.Quat) error {
	if n := len(t.Keys); n > 0 && time < t.Keys[n-1].Time {
		return fmt.Errorf("%w: %g after %g", ErrUnsorted, time, t.Keys[n-1].Time)
	}
	t.Keys = append(t.Keys, Key{Time: time, Rotation: q.Unit()})
	return nil
}

// Start returns the time of the first key.
func (t *Track) Start() float32 {
	if len(t.Keys) == 0 {
		return 0
	}
	return t.Keys[0].Time
}

// Duration returns the time between the first and last keys.
func (t *Track) Duration() float32 {
	if len(t.Keys) == 0 {
		return 0
	}
	return t.Keys[len(t.Keys)-1].Time - t.Keys[0].Time
}

// Sample returns the orientation at time. Outside the key range the track
// clamps to the end keys, or wraps when Loop is set. An empty track samples
// as the identity.
func (t *Track) Sample(time float32) quat.Quat {
	n := len(t.Keys)
	switch n {
	case 0:
		return quat.Identity()
	case 1:
		return t.Keys[0].Rotation
	}

	start, d := t.Start(), t.Duration()
	if t.Loop && d > 0 {
		time = start + math32.Mod(time-start, d)
		if time < start {
			time += d
		}
	}

	if time <= start {
		return t.Keys[0].Rotation
	}
	if time >= t.Keys[n-1].Time {
		return t.Keys[n-1].Rotation
	}

	// First key strictly after time; 0 < i < n here.
	i, _ := slices.BinarySearchFunc(t.Keys, time, func(k Key, tm float32) int {
		if k.Time <= tm {
			return -1
		}
		return 1
	})
	a, b := t.Keys[i-1], t.Keys[i]

	span := b.Time - a.Time
	if span <= 0 {
		return b.Rotation
	}
	u := (time - a.Time) / span

	switch t.Interpolation {
	case Step:
		return a.Rotation
	case Slerp:
		return quat.Slerp(a.Rotation, b.Rotation, u)
	default:
		return quat.SlerpNearest(a.Rotation, b.Rotation, u)
	}
}

// Validate checks that the track has keys in time order.
func (t *Track) Validate() error {
	if len(t.Keys) == 0 {
		return ErrNoKeys
	}
	for i := 1; i < len(t.Keys); i++ {
		if t.Keys[i].Time < t.Keys[i-1].Time {
			return fmt.Errorf("key %d: %w", i, ErrUnsorted)
		}
	}
	return nil
}
