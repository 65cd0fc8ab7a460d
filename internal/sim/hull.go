package sim

import (
	"log/slog"
	"sync"

	"hostile-sim/internal/hostile"
)

const (
	hullDamagedPct    = 50
	hullCriticalPct   = 25
	hullSafeDistanceM = 30
)

// Hull is the player's armour. It is the DamageSink the drones shoot at.
type Hull struct {
	mu       sync.Mutex
	max      float64
	value    float64
	regen    float64 // per second
	speech   hostile.Speaker
	log      *slog.Logger
	breached bool
	announce int // last threshold spoken: 0, 50 or 25
}

// NewHull returns a full hull.
func NewHull(max, regenPerSec float64, speech hostile.Speaker, log *slog.Logger) *Hull {
	if max <= 0 {
		max = 100
	}
	if regenPerSec < 0 {
		regenPerSec = 0
	}
	if log == nil {
		log = slog.Default()
	}
	return &Hull{max: max, value: max, regen: regenPerSec, speech: speech, log: log}
}

// ApplyDamage implements hostile.DamageSink. It reports whether the player
// is still alive.
func (h *Hull) ApplyDamage(amount float64, nowMs int64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.breached {
		return false
	}
	if amount <= 0 {
		return true
	}
	h.value -= amount
	if h.value <= 0 {
		h.value = 0
		h.breached = true
		h.say("Hull breach. Mech destroyed.")
		h.log.Warn("hull breached", "at_ms", nowMs)
		return false
	}
	pct := h.value / h.max * 100
	switch {
	case pct <= hullCriticalPct && h.announce != hullCriticalPct:
		h.announce = hullCriticalPct
		h.say("Hull critical")
	case pct <= hullDamagedPct && pct > hullCriticalPct && h.announce == 0:
		h.announce = hullDamagedPct
		h.say("Hull damaged")
	}
	return true
}

// Regenerate restores hull while no drone is within 30 m.
func (h *Hull) Regenerate(dt, closest float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.breached || closest <= hullSafeDistanceM || h.value >= h.max {
		return
	}
	h.value += h.regen * dt
	if h.value > h.max {
		h.value = h.max
	}
	pct := h.value / h.max * 100
	if pct > hullDamagedPct {
		h.announce = 0
	} else if pct > hullCriticalPct && h.announce == hullCriticalPct {
		h.announce = hullDamagedPct
	}
}

func (h *Hull) say(s string) {
	if h.speech != nil {
		h.speech.Speak(s)
	}
}

// Value is the current hull.
func (h *Hull) Value() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.value
}

// Max is the full hull.
func (h *Hull) Max() float64 { return h.max }

// Percent is the hull as 0..100.
func (h *Hull) Percent() float64 {
	return h.Value() / h.max * 100
}

// Breached reports game over.
func (h *Hull) Breached() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.breached
}
