package tui

import (
	"sync/atomic"

	tea "charm.land/bubbletea/v2"

	"github.com/hay-kot/tvconsole/internal/core/modkeys"
)

// rangeSurface is the console-wide range-selection mode. While on, the status
// bar shows the range badge.
type rangeSurface struct {
	on atomic.Bool
}

func (s *rangeSurface) SetRangeMode(on bool) {
	s.on.Store(on)
}

func (s *rangeSurface) Active() bool {
	return s.on.Load()
}

func isShiftKey(k tea.Key) bool {
	return k.Code == tea.KeyLeftShift || k.Code == tea.KeyRightShift
}

// dispatchModifiers forwards key and focus messages to the hub. It reports
// whether msg was a bare Shift event that tables should not see.
func dispatchModifiers(hub *modkeys.Hub, tracker *modkeys.Tracker, msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		k := msg.Key()
		if isShiftKey(k) {
			hub.Dispatch(modkeys.Event{Kind: modkeys.KeyDown, Key: modkeys.KeyShift})
			return true
		}
		// Terminals without release events never send the key-up, so any
		// later key pressed without Shift ends the held state.
		if tracker.ShiftActive() && !k.Mod.Contains(tea.ModShift) {
			hub.Dispatch(modkeys.Event{Kind: modkeys.KeyUp, Key: modkeys.KeyShift})
		}
	case tea.KeyReleaseMsg:
		if isShiftKey(msg.Key()) {
			hub.Dispatch(modkeys.Event{Kind: modkeys.KeyUp, Key: modkeys.KeyShift})
			return true
		}
	case tea.BlurMsg:
		hub.Dispatch(modkeys.Event{Kind: modkeys.Blur})
	}
	return false
}
