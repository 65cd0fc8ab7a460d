package sim

import (
	"log/slog"
	"strings"

	"hostile-sim/internal/hostile"
)

// soundDurations is how long each category occupies its channel, in ms.
// Zero means the sound loops until stopped.
var soundDurations = map[hostile.Sound]int64{
	hostile.SoundHum:          0,
	hostile.SoundTakeoff:      2200,
	hostile.SoundBeacon:       400,
	hostile.SoundScan:         900,
	hostile.SoundPassby:       1800,
	hostile.SoundSupersonic:   1200,
	hostile.SoundWindUp:       300,
	hostile.SoundExplosion:    1600,
	hostile.SoundDebris:       2400,
	hostile.SoundCoordination: 350,
}

const weaponShotMs = 90

type channelKey struct {
	id int
	ch hostile.Channel
}

type playing struct {
	sound hostile.Sound
	until int64 // zero while looping
	pos   hostile.Emitter
}

// TimedAudio is an in-memory AudioSink for headless runs. Channels are busy
// for the nominal length of the sound they play, measured on the simulation
// clock.
type TimedAudio struct {
	now      int64
	channels map[channelKey]playing
	cues     map[hostile.Sound]int
	plays    int
}

// NewTimedAudio returns an idle sink.
func NewTimedAudio() *TimedAudio {
	return &TimedAudio{
		channels: make(map[channelKey]playing),
		cues:     make(map[hostile.Sound]int),
	}
}

// Advance moves the sink's clock and releases finished channels.
func (a *TimedAudio) Advance(now int64) {
	a.now = now
	for k, p := range a.channels {
		if p.until != 0 && now >= p.until {
			delete(a.channels, k)
		}
	}
}

func (a *TimedAudio) length(s hostile.Sound) (int64, bool) {
	if d, ok := soundDurations[s]; ok {
		return d, true
	}
	if strings.HasPrefix(string(s), "weapon_") {
		return weaponShotMs, true
	}
	return 0, false
}

func (a *TimedAudio) Play(id int, ch hostile.Channel, s hostile.Sound, e hostile.Emitter) bool {
	d, ok := a.length(s)
	if !ok {
		return false
	}
	p := playing{sound: s, pos: e}
	if d > 0 {
		p.until = a.now + d
	}
	a.channels[channelKey{id, ch}] = p
	a.plays++
	return true
}

func (a *TimedAudio) SetPosition(id int, ch hostile.Channel, e hostile.Emitter) {
	k := channelKey{id, ch}
	if p, ok := a.channels[k]; ok {
		p.pos = e
		a.channels[k] = p
	}
}

func (a *TimedAudio) IsBusy(id int, ch hostile.Channel) bool {
	p, ok := a.channels[channelKey{id, ch}]
	return ok && (p.until == 0 || a.now < p.until)
}

func (a *TimedAudio) Stop(id int, ch hostile.Channel) {
	delete(a.channels, channelKey{id, ch})
}

func (a *TimedAudio) Cue(s hostile.Sound) { a.cues[s]++ }

// Cues reports how often an interface sound was cued.
func (a *TimedAudio) Cues(s hostile.Sound) int { return a.cues[s] }

// Busy counts channels currently playing.
func (a *TimedAudio) Busy() int { return len(a.channels) }

// LogSpeaker speaks through the logger.
type LogSpeaker struct {
	Log *slog.Logger
}

func (s LogSpeaker) Speak(text string) {
	log := s.Log
	if log == nil {
		log = slog.Default()
	}
	log.Info("announce", "text", text)
}
