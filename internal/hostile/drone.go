package hostile

import (
	"slices"

	"hostile-sim/internal/personality"
)

// State is the closed set of drone behaviour states.
type State uint8

const (
	StateSpawning State = iota
	StatePatrol
	StateDetecting
	StateEngaging
	StateWindingUp
	StateAttacking
	StateCooldown
	StateSearching
	StateDestroyed
)

var stateNames = [...]string{
	"spawning", "patrol", "detecting", "engaging", "winding_up",
	"attacking", "cooldown", "searching", "destroyed",
}

func (s State) String() string {
	if s.Valid() {
		return stateNames[s]
	}
	return "invalid"
}

// Valid reports whether s is one of the defined states.
func (s State) Valid() bool { return int(s) < len(stateNames) }

// combat reports whether the drone is committed to the player.
func (s State) combat() bool {
	return s == StateEngaging || s == StateWindingUp || s == StateAttacking
}

// Role is the tactical role the squad coordinator assigned.
type Role uint8

const (
	RoleNone Role = iota
	RolePrimary
	RoleFlanker
	RoleSupport
	RoleCrossfire
)

var roleNames = [...]string{"none", "primary", "flanker", "support", "crossfire"}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "invalid"
}

// SearchPattern is the waypoint layout used after losing the player.
type SearchPattern uint8

const (
	SearchSpiral SearchPattern = iota
	SearchZigzag
	SearchWander
)

func (p SearchPattern) String() string {
	switch p {
	case SearchSpiral:
		return "spiral"
	case SearchZigzag:
		return "zigzag"
	case SearchWander:
		return "wander"
	}
	return "invalid"
}

// Point is a 2D position in metres.
type Point struct {
	X, Y float64
}

// BurstOutcome records one finished burst.
type BurstOutcome struct {
	Weapon   string
	Shots    int
	Hits     int
	Distance float64
}

// HitRate is hits per shot, zero for an empty burst.
func (b BurstOutcome) HitRate() float64 {
	if b.Shots == 0 {
		return 0
	}
	return float64(b.Hits) / float64(b.Shots)
}

type damageMark struct {
	at     int64
	amount float64
}

// Drone is one hostile entity. It is owned by a Manager and must only be
// mutated during that manager's update pass.
type Drone struct {
	ID          int
	Personality personality.Profile

	X, Y       float64
	Altitude   float64 // feet
	VX, VY, VZ float64 // m/s
	Speed      float64 // base m/s, personality applied
	ClimbRate  float64
	Health     float64

	State         State
	StateStart    int64
	StateDuration int64

	// Spatial cache, refreshed once per tick.
	Distance     float64
	AltitudeDiff float64
	Bearing      float64

	Aggression    float64
	AccuracySkill float64
	EvasionSkill  float64
	Role          Role

	LastKnown     Point
	PatrolTarget  Point
	SearchPattern SearchPattern
	Waypoints     []Point
	waypointIdx   int
	searchRadius  float64
	lastExpand    int64

	EvasionDir      float64
	evasionSwitchAt int64
	feintReturnAt   int64 // zero unless a feint is pending
	AssaultAngle    float64
	HoldFireUntil   int64

	History        []BurstOutcome
	PreferredRange float64 // zero until learned

	AttackWeapon     string
	ShotsToFire      int
	ShotsFired       int
	HitsThisBurst    int
	HitChance        float64
	NextShotAt       int64
	attackDistance   float64
	lastAttackPlayer Point
	nextReassess     int64

	Wounded                bool
	Suppressed             bool
	SuppressedUntil        int64
	SuppressionImmuneUntil int64
	DistressActive         bool
	distressUntil          int64
	distressSent           bool
	BoostUntil             int64
	recentDamage           []damageMark

	falseStartUsed bool
	lastSquad      int64
	squadRan       bool
	prevX, prevY   float64
	prevAlt        float64
	DestroyedAt    int64
}

func newDrone(id int, p personality.Profile, x, y, alt, speed, climb, health float64, now int64) *Drone {
	return &Drone{
		ID:            id,
		Personality:   p,
		X:             x,
		Y:             y,
		Altitude:      alt,
		Speed:         speed,
		ClimbRate:     climb,
		Health:        health,
		State:         StateSpawning,
		StateStart:    now,
		Aggression:    p.Aggression,
		AccuracySkill: p.AccuracyMult,
		EvasionSkill:  p.EvasionSkill,
		Role:          RoleNone,
		LastKnown:     Point{x, y},
		PatrolTarget:  Point{x, y},
		EvasionDir:    1,
		prevX:         x,
		prevY:         y,
		prevAlt:       alt,
	}
}

// Alive reports whether the drone has not been destroyed.
func (d *Drone) Alive() bool { return d.State != StateDestroyed }

// Emitter returns the spatial values cached for this tick.
func (d *Drone) Emitter() Emitter {
	return Emitter{
		Distance:     d.Distance,
		Bearing:      d.Bearing,
		AltitudeDiff: d.AltitudeDiff,
		Position:     Vec3{X: d.X, Y: d.Y, Z: d.Altitude / feetPerMetre},
		Velocity:     Vec3{X: d.VX, Y: d.VY, Z: d.VZ},
	}
}

func (d *Drone) expired(now int64) bool { return now-d.StateStart >= d.StateDuration }

func (d *Drone) setRole(r Role) (changed bool) {
	if d.Role == r {
		return false
	}
	d.Role = r
	return true
}

// clearTactics drops squad state when a drone leaves combat.
func (d *Drone) clearTactics() {
	d.Role = RoleNone
	d.AssaultAngle = 0
	d.HoldFireUntil = 0
	d.squadRan = false
}

// snapshot is a copy of d that shares no slices or maps with it.
func (d *Drone) snapshot() Drone {
	out := *d
	out.Personality = d.Personality.Clone()
	out.Waypoints = slices.Clone(d.Waypoints)
	out.History = slices.Clone(d.History)
	out.recentDamage = slices.Clone(d.recentDamage)
	return out
}

func (d *Drone) beginAssault(angle float64, holdUntil int64) {
	d.AssaultAngle = angle
	d.HoldFireUntil = holdUntil
}

func (d *Drone) refreshLastKnown(p Player) {
	d.LastKnown = Point{p.X, p.Y}
}

// recordBurst appends an outcome to the bounded history and relearns the
// preferred range from bursts that went well.
func (d *Drone) recordBurst(o BurstOutcome, size int, goodRate float64) {
	d.History = append(d.History, o)
	if over := len(d.History) - size; over > 0 {
		d.History = append(d.History[:0], d.History[over:]...)
	}
	var sum float64
	var n int
	for _, h := range d.History {
		if h.Shots > 0 && h.HitRate() >= goodRate {
			sum += h.Distance
			n++
		}
	}
	if n > 0 {
		d.PreferredRange = sum / float64(n)
	}
}
