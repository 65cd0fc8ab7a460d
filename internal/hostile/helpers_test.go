package hostile

import (
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"hostile-sim/internal/personality"
)

type audioKey struct {
	id int
	ch Channel
}

type played struct {
	id    int
	ch    Channel
	sound Sound
}

type fakeAudio struct {
	busy map[audioKey]bool
	// sticky channels stay busy after Play until released by the test
	sticky  map[Channel]bool
	plays   []played
	cues    []Sound
	missing map[Sound]bool
}

func newFakeAudio() *fakeAudio {
	return &fakeAudio{busy: map[audioKey]bool{}, sticky: map[Channel]bool{}, missing: map[Sound]bool{}}
}

func (f *fakeAudio) Play(id int, ch Channel, s Sound, _ Emitter) bool {
	if f.missing[s] {
		return false
	}
	f.plays = append(f.plays, played{id, ch, s})
	if f.sticky[ch] {
		f.busy[audioKey{id, ch}] = true
	}
	return true
}

func (f *fakeAudio) SetPosition(int, Channel, Emitter) {}

func (f *fakeAudio) IsBusy(id int, ch Channel) bool { return f.busy[audioKey{id, ch}] }

func (f *fakeAudio) Stop(id int, ch Channel) { delete(f.busy, audioKey{id, ch}) }

func (f *fakeAudio) Cue(s Sound) { f.cues = append(f.cues, s) }

func (f *fakeAudio) count(s Sound) int {
	n := 0
	for _, p := range f.plays {
		if p.sound == s {
			n++
		}
	}
	return n
}

type fakeSpeaker struct{ lines []string }

func (f *fakeSpeaker) Speak(text string) { f.lines = append(f.lines, text) }

type fakeHull struct {
	hits  []float64
	alive bool
}

func (f *fakeHull) ApplyDamage(amount float64, _ int64) bool {
	f.hits = append(f.hits, amount)
	return f.alive
}

// quietTuning never spawns on its own and never false-starts.
func quietTuning() Tuning {
	t := DefaultTuning()
	t.MaxDrones = MaxDronesConfigurable
	t.SpawnIntervalMs = 1 << 40
	t.FalseStartChance = -1
	return t
}

func newTestManager(t *testing.T, seed int64, tune Tuning) (*Manager, *fakeAudio, *fakeSpeaker) {
	t.Helper()
	audio := newFakeAudio()
	sp := &fakeSpeaker{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := NewManager(personality.DefaultCatalog(), tune, audio, sp, rand.New(rand.NewSource(seed)), logger)
	return m, audio, sp
}

var origin = Player{X: 0, Y: 0, Altitude: 50, Facing: 0}

// place puts a drone straight into the collection in state s and stops the
// manager from spawning on its first update.
func place(t *testing.T, m *Manager, profile string, x, y float64, s State, now int64) *Drone {
	t.Helper()
	p, ok := m.catalog.Lookup(profile)
	if !ok {
		t.Fatalf("unknown profile %s", profile)
	}
	d := newDrone(m.nextID, p, x, y, 50, 5, 15, 100, now)
	m.nextID++
	d.State = s
	d.StateStart = now
	d.StateDuration = 1 << 30
	updateSpatial(d, m.player, 0)
	m.drones = append(m.drones, d)
	m.activeValid = false
	m.spawnPrimed = true
	m.spawnTimer = now
	return d
}

func frame(now int64, p Player) Frame {
	return Frame{Now: now, DT: 0.016, Player: p}
}

func eventsOf(evs []Event, typ EventType) []Event {
	var out []Event
	for _, e := range evs {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}
