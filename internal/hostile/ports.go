package hostile

// Channel is a per-drone audio channel category.
type Channel uint8

const (
	ChannelAmbient Channel = iota
	ChannelCombat
	ChannelTakeoff
	ChannelPassby
	ChannelSupersonic
	ChannelExplosion
	ChannelDebris
)

// Channels lists every per-drone channel.
var Channels = []Channel{
	ChannelAmbient, ChannelCombat, ChannelTakeoff, ChannelPassby,
	ChannelSupersonic, ChannelExplosion, ChannelDebris,
}

var channelNames = [...]string{"ambient", "combat", "takeoff", "passby", "supersonic", "explosion", "debris"}

func (c Channel) String() string {
	if int(c) < len(channelNames) {
		return channelNames[c]
	}
	return "unknown"
}

// Sound names a category of sound. The sink decides which asset plays.
type Sound string

const (
	SoundHum          Sound = "hum"
	SoundTakeoff      Sound = "takeoff"
	SoundBeacon       Sound = "beacon"
	SoundScan         Sound = "scan"
	SoundPassby       Sound = "passby"
	SoundSupersonic   Sound = "supersonic"
	SoundWindUp       Sound = "windup"
	SoundExplosion    Sound = "explosion"
	SoundDebris       Sound = "debris"
	SoundCoordination Sound = "coordination"
	SoundHitConfirm   Sound = "interfaces"
	SoundProjectile   Sound = "projectile_hit"
	SoundTargetLock   Sound = "target_lock"
	SoundAimBeacon    Sound = "aim_beacon"
)

// WeaponSound is the firing sound of a weapon.
func WeaponSound(weapon string) Sound { return Sound("weapon_" + weapon) }

// Vec3 is a metric vector.
type Vec3 struct {
	X, Y, Z float64
}

// Emitter is everything the sink needs to place a drone sound: the cached
// spatial values of the current tick. The sink never derives them itself.
type Emitter struct {
	Distance     float64 // metres, 2D
	Bearing      float64 // degrees, -180..180, 0 = in front of the player
	AltitudeDiff float64 // feet, drone minus player
	Position     Vec3    // metres, world space
	Velocity     Vec3    // metres per second
}

// AudioSink renders drone sounds. Play returns false when no sound exists for
// the category, which callers treat as a no-op.
type AudioSink interface {
	Play(droneID int, ch Channel, s Sound, e Emitter) bool
	SetPosition(droneID int, ch Channel, e Emitter)
	IsBusy(droneID int, ch Channel) bool
	Stop(droneID int, ch Channel)
	// Cue plays a non-positional interface sound.
	Cue(s Sound)
}

// Speaker announces short phrases. Fire and forget.
type Speaker interface {
	Speak(text string)
}

// DamageSink receives drone hits on the player and reports whether the
// player is still alive.
type DamageSink interface {
	ApplyDamage(amount float64, nowMs int64) bool
}

type nopAudio struct{}

func (nopAudio) Play(int, Channel, Sound, Emitter) bool { return false }
func (nopAudio) SetPosition(int, Channel, Emitter)       {}
func (nopAudio) IsBusy(int, Channel) bool                { return false }
func (nopAudio) Stop(int, Channel)                       {}
func (nopAudio) Cue(Sound)                               {}

type nopSpeaker struct{}

func (nopSpeaker) Speak(string) {}

type nopDamage struct{}

func (nopDamage) ApplyDamage(float64, int64) bool { return true }
