package reader

import (
	"math"
	"time"
)

// SwipeAction is the navigation outcome of a completed gesture.
type SwipeAction int

const (
	SwipeNone SwipeAction = iota
	SwipeNextPage
	SwipePrevPage
)

// SwipeConfig holds the gesture recognition thresholds. Distances are
// in terminal cells, velocity in cells per millisecond.
type SwipeConfig struct {
	// Threshold is the minimum horizontal travel for a full swipe.
	Threshold float64 `yaml:"threshold"`
	// EdgeZone is the fraction of the viewport width, from either
	// edge, inside which a swipe qualifies at the reduced threshold.
	EdgeZone float64 `yaml:"edge_zone"`
	// TapZone is the fraction of the viewport width, from either
	// edge, inside which a tap turns the page.
	TapZone float64 `yaml:"tap_zone"`
	// MinVelocity is the slowest travel speed still counted as a
	// deliberate swipe when total travel is short.
	MinVelocity float64 `yaml:"min_velocity"`
}

// DefaultSwipeConfig returns the stock gesture thresholds.
func DefaultSwipeConfig() SwipeConfig {
	return SwipeConfig{
		Threshold:   40,
		EdgeZone:    0.15,
		TapZone:     0.12,
		MinVelocity: 0.1,
	}
}

func (c SwipeConfig) normalize() SwipeConfig {
	if c.Threshold <= 0 {
		c.Threshold = 40
	}
	if c.EdgeZone <= 0 || c.EdgeZone >= 0.5 {
		c.EdgeZone = 0.15
	}
	if c.TapZone <= 0 || c.TapZone >= 0.5 {
		c.TapZone = 0.12
	}
	if c.MinVelocity <= 0 {
		c.MinVelocity = 0.1
	}
	return c
}

// SwipeTracker interprets press/release coordinate pairs as page-turn
// gestures. One tracker serves one reading surface; Start begins a
// gesture and End classifies it.
type SwipeTracker struct {
	cfg       SwipeConfig
	active    bool
	startX    float64
	startY    float64
	startAt   time.Time
	fromLeft  bool
	fromRight bool
}

// NewSwipeTracker returns a tracker using the given thresholds.
func NewSwipeTracker(cfg SwipeConfig) *SwipeTracker {
	return &SwipeTracker{cfg: cfg.normalize()}
}

// Start records the press that begins a gesture. surfaceWidth is the
// current width of the reading surface, used for edge-zone checks.
func (t *SwipeTracker) Start(x, y int, surfaceWidth int, at time.Time) {
	t.active = true
	t.startX = float64(x)
	t.startY = float64(y)
	t.startAt = at
	t.fromLeft = false
	t.fromRight = false
	if surfaceWidth > 0 {
		zone := float64(surfaceWidth) * t.cfg.EdgeZone
		t.fromLeft = t.startX < zone
		t.fromRight = t.startX > float64(surfaceWidth)-zone
	}
}

// Active reports whether a gesture is in progress.
func (t *SwipeTracker) Active() bool { return t.active }

// Cancel abandons the gesture in progress.
func (t *SwipeTracker) Cancel() { t.active = false }

// End classifies the gesture completed by a release at (x, y).
//
// A gesture is rejected when its vertical travel dominates (more than
// twice the horizontal travel, the user is scrolling), or when it is
// both slow and short (below the minimum velocity with travel under
// twice the threshold, an accidental drag). A swipe that begins inside
// an edge zone and travels inward qualifies at sixty percent of the
// full threshold; anywhere else the full threshold applies and the
// travel must be horizontally dominant. Leftward travel advances,
// rightward travel goes back.
func (t *SwipeTracker) End(x, y int, at time.Time) SwipeAction {
	if !t.active {
		return SwipeNone
	}
	t.active = false

	dx := float64(x) - t.startX
	dy := float64(y) - t.startY
	absX := math.Abs(dx)
	absY := math.Abs(dy)

	if absY > 2*absX {
		return SwipeNone
	}

	elapsed := at.Sub(t.startAt)
	ms := float64(elapsed.Milliseconds())
	if ms <= 0 {
		ms = 1
	}
	velocity := absX / ms
	if velocity < t.cfg.MinVelocity && absX < 2*t.cfg.Threshold {
		return SwipeNone
	}

	// Edge swipe: reduced threshold, inward direction only.
	edge := t.cfg.Threshold * 0.6
	if t.fromLeft && dx > edge {
		return SwipePrevPage
	}
	if t.fromRight && dx < -edge {
		return SwipeNextPage
	}

	// Full swipe anywhere: higher threshold, horizontal dominance.
	if absX > t.cfg.Threshold && absX > absY {
		if dx < 0 {
			return SwipeNextPage
		}
		return SwipePrevPage
	}
	return SwipeNone
}

// TapAction classifies a tap (press and release without travel) by
// position: taps in the outer tap zones turn the page, taps elsewhere
// do nothing.
func (t *SwipeTracker) TapAction(x int, surfaceWidth int) SwipeAction {
	if surfaceWidth <= 0 {
		return SwipeNone
	}
	zone := float64(surfaceWidth) * t.cfg.TapZone
	fx := float64(x)
	switch {
	case fx < zone:
		return SwipePrevPage
	case fx > float64(surfaceWidth)-zone:
		return SwipeNextPage
	default:
		return SwipeNone
	}
}
