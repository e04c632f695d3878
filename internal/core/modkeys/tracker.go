package modkeys

import (
	"sync"

	"github.com/rs/zerolog"
)

// Surface applies the document-wide range-selection mode: while Shift is
// held, text selection is suppressed and a range cursor is shown.
// Implementations must tolerate repeated calls with the same value.
type Surface interface {
	SetRangeMode(on bool)
}

// Tracker observes Shift key state on a Target.
type Tracker struct {
	mu      sync.RWMutex
	shift   bool
	surface Surface
	logger  zerolog.Logger

	subsMu  sync.Mutex
	nextSub uint64
	subs    map[uint64]func(bool)

	attachMu sync.Mutex
	target   Target
	detach   func()
	gen      uint64
}

// NewTracker returns a tracker that drives surface. A nil surface is allowed.
func NewTracker(surface Surface, logger zerolog.Logger) *Tracker {
	return &Tracker{
		surface: surface,
		logger:  logger,
		subs:    make(map[uint64]func(bool)),
	}
}

// ShiftActive reports whether Shift is currently held.
func (t *Tracker) ShiftActive() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.shift
}

// Subscribe registers fn to be called whenever the Shift state changes. The
// returned function removes the subscription and may be called repeatedly.
func (t *Tracker) Subscribe(fn func(bool)) func() {
	t.subsMu.Lock()
	t.nextSub++
	id := t.nextSub
	t.subs[id] = fn
	t.subsMu.Unlock()

	return func() {
		t.subsMu.Lock()
		delete(t.subs, id)
		t.subsMu.Unlock()
	}
}

// Attach registers the key-down, key-up and blur listeners on target and
// returns the function that removes them. A detach function only ever
// removes its own registration, so calling one after a later Attach leaves
// the newer listeners in place. Attaching again while attached to
// the same target returns the existing detach function without registering
// twice; attaching to a different target moves the listeners.
func (t *Tracker) Attach(target Target) func() {
	t.attachMu.Lock()
	defer t.attachMu.Unlock()

	if t.detach != nil {
		if t.target == target {
			return t.detach
		}
		t.detachLocked()
	}

	downID := target.Listen(KeyDown, func(ev Event) {
		if ev.Key == KeyShift {
			t.set(true, "keydown")
		}
	})
	upID := target.Listen(KeyUp, func(ev Event) {
		if ev.Key == KeyShift {
			t.set(false, "keyup")
		}
	})
	blurID := target.Listen(Blur, func(Event) {
		// The key-up for a Shift held while focus left never arrives.
		t.set(false, "blur")
	})

	var once sync.Once
	t.gen++
	gen := t.gen
	t.target = target
	t.detach = func() {
		once.Do(func() {
			target.Unlisten(KeyDown, downID)
			target.Unlisten(KeyUp, upID)
			target.Unlisten(Blur, blurID)
			t.set(false, "detach")
		})

		t.attachMu.Lock()
		if t.gen == gen && t.detach != nil {
			t.target = nil
			t.detach = nil
		}
		t.attachMu.Unlock()
	}

	return t.detach
}

// detachLocked runs the current detach while attachMu is held.
func (t *Tracker) detachLocked() {
	fn := t.detach
	t.detach = nil
	t.target = nil
	t.attachMu.Unlock()
	fn()
	t.attachMu.Lock()
}

// Press records Shift as held. It is equivalent to a Shift key-down event.
func (t *Tracker) Press() {
	t.set(true, "press")
}

// Release records Shift as released.
func (t *Tracker) Release() {
	t.set(false, "release")
}

func (t *Tracker) set(on bool, cause string) {
	t.mu.Lock()
	changed := t.shift != on
	t.shift = on
	t.mu.Unlock()

	// The surface is driven on every event so a missed transition is
	// corrected by the next one.
	if t.surface != nil {
		t.surface.SetRangeMode(on)
	}

	if !changed {
		return
	}

	t.logger.Debug().Bool("shift", on).Str("cause", cause).Msg("modifier state changed")

	t.subsMu.Lock()
	fns := make([]func(bool), 0, len(t.subs))
	for _, fn := range t.subs {
		fns = append(fns, fn)
	}
	t.subsMu.Unlock()

	for _, fn := range fns {
		fn(on)
	}
}
