package hostile

// Population limits for SetMaxDrones.
const (
	MinDrones             = 1
	MaxDronesConfigurable = 6
	DefaultMaxDrones      = 2
)

// NoDrone is the closest-distance value reported when nothing is alive.
const NoDrone = 999.0

const feetPerMetre = 3.28

// Span is an inclusive range of milliseconds a duration is drawn from.
type Span struct {
	Min int64
	Max int64
}

// SquadTuning controls multi-drone coordination.
type SquadTuning struct {
	ThrottleMs           int64
	CrossfireWindowMs    int64
	CoordinationWindowMs int64
	AssaultRange         float64
	AssaultAngle         float64
	AssaultHoldMs        int64
	SupportHoldChance    float64
	SupportHold          Span
}

// Tuning holds every constant of the drone AI. Zero fields take the value
// of DefaultTuning when passed to NewManager; a negative probability
// disables the behaviour.
type Tuning struct {
	MaxDrones int

	DetectRange    float64
	LoseTrackRange float64
	ReacquireRange float64
	AttackRange    float64
	// StealthFactor scales detect, lose-track and reacquire ranges while the
	// player's camouflage is effective.
	StealthFactor float64

	SpawnIntervalMs  int64
	SpawnDistanceMin float64
	SpawnDistanceMax float64
	SpawnAltitudeMin float64
	SpawnAltitudeMax float64
	AltitudeMax      float64
	ClimbRate        float64 // ft/s
	BaseSpeed        float64 // m/s
	SpeedJitter      float64
	EngageSpeedMult  float64
	EvasionSpeed     float64
	EvasionAngle     float64
	FlankDistance    float64
	PatrolRadiusMin  float64
	PatrolRadiusMax  float64

	Spawning   Span
	Detecting  Span
	Hesitation Span
	WindUp     Span
	AttackCap  Span
	Cooldown   Span
	// DisableWindUp sends engaging drones straight to attacking.
	DisableWindUp bool

	CooldownReassessMs  int64
	ReengageDistance    float64
	PlayerMovedDistance float64
	FalseStartChance    float64

	SearchTimeoutMs    int64
	SearchExpandMs     int64
	SearchRadius       float64
	SearchRadiusMax    float64
	SearchExpandFactor float64

	Squad SquadTuning

	HealthMax             float64
	WoundedThreshold      float64
	WoundedEvasionMult    float64
	WoundedAggressionMult float64

	SuppressionDamage     float64
	SuppressionWindowMs   int64
	Suppression           Span
	SuppressionImmunityMs int64

	DistressHit        float64
	DistressHealth     float64
	DistressRadius     float64
	DistressSpeedBoost float64
	DistressBoostMs    int64

	FeintChanceScale float64
	FeintDelay       Span

	FrustrationMinShots int
	FrustrationHitRate  float64

	HistorySize      int
	PreferredHitRate float64
	PreferredBlend   float64

	AimAssistRange       float64
	TargetLockAngle      float64
	AimBeaconAngle       float64
	TargetLockCooldownMs int64
	AimBeaconCooldownMs  int64
}

// DefaultTuning returns the stock constants.
func DefaultTuning() Tuning {
	return Tuning{
		MaxDrones: DefaultMaxDrones,

		DetectRange:    25,
		LoseTrackRange: 50,
		ReacquireRange: 35,
		AttackRange:    40,
		StealthFactor:  0.5,

		SpawnIntervalMs:  10000,
		SpawnDistanceMin: 30,
		SpawnDistanceMax: 50,
		SpawnAltitudeMin: 30,
		SpawnAltitudeMax: 80,
		AltitudeMax:      200,
		ClimbRate:        15,
		BaseSpeed:        5,
		SpeedJitter:      1,
		EngageSpeedMult:  2,
		EvasionSpeed:     8,
		EvasionAngle:     30,
		FlankDistance:    20,
		PatrolRadiusMin:  25,
		PatrolRadiusMax:  35,

		Spawning:   Span{1500, 2500},
		Detecting:  Span{800, 1500},
		Hesitation: Span{300, 900},
		WindUp:     Span{150, 300},
		AttackCap:  Span{1800, 2600},
		Cooldown:   Span{800, 2000},

		CooldownReassessMs:  250,
		ReengageDistance:    10,
		PlayerMovedDistance: 10,
		FalseStartChance:    0.08,

		SearchTimeoutMs:    8000,
		SearchExpandMs:     2500,
		SearchRadius:       8,
		SearchRadiusMax:    30,
		SearchExpandFactor: 1.5,

		Squad: SquadTuning{
			ThrottleMs:           200,
			CrossfireWindowMs:    500,
			CoordinationWindowMs: 1500,
			AssaultRange:         30,
			AssaultAngle:         35,
			AssaultHoldMs:        600,
			SupportHoldChance:    0.4,
			SupportHold:          Span{800, 1400},
		},

		HealthMax:             100,
		WoundedThreshold:      25,
		WoundedEvasionMult:    1.5,
		WoundedAggressionMult: 0.6,

		SuppressionDamage:     20,
		SuppressionWindowMs:   2000,
		Suppression:           Span{2000, 3500},
		SuppressionImmunityMs: 5000,

		DistressHit:        15,
		DistressHealth:     20,
		DistressRadius:     60,
		DistressSpeedBoost: 1.3,
		DistressBoostMs:    5000,

		FeintChanceScale: 0.35,
		FeintDelay:       Span{150, 300},

		FrustrationMinShots: 3,
		FrustrationHitRate:  0.2,

		HistorySize:      10,
		PreferredHitRate: 0.3,
		PreferredBlend:   0.3,

		AimAssistRange:       40,
		TargetLockAngle:      5,
		AimBeaconAngle:       45,
		TargetLockCooldownMs: 300,
		AimBeaconCooldownMs:  500,
	}
}

// ClampDrones bounds a configured population cap.
func ClampDrones(n int) int {
	switch {
	case n < MinDrones:
		return MinDrones
	case n > MaxDronesConfigurable:
		return MaxDronesConfigurable
	}
	return n
}

func orF(v *float64, d float64) {
	if *v <= 0 {
		*v = d
	}
}

func orI(v *int64, d int64) {
	if *v <= 0 {
		*v = d
	}
}

// orChance treats zero as unset and any negative value as disabled.
func orChance(v, d float64) float64 {
	switch {
	case v < 0:
		return 0
	case v == 0:
		return d
	case v > 1:
		return 1
	}
	return v
}

func orSpan(v *Span, d Span) {
	if v.Min <= 0 && v.Max <= 0 {
		*v = d
		return
	}
	if v.Max < v.Min {
		v.Min, v.Max = v.Max, v.Min
	}
}

// normalized fills unset fields from the defaults and clamps the rest.
func (t Tuning) normalized() Tuning {
	d := DefaultTuning()
	if t.MaxDrones == 0 {
		t.MaxDrones = d.MaxDrones
	}
	t.MaxDrones = ClampDrones(t.MaxDrones)

	orF(&t.DetectRange, d.DetectRange)
	orF(&t.LoseTrackRange, d.LoseTrackRange)
	orF(&t.ReacquireRange, d.ReacquireRange)
	orF(&t.AttackRange, d.AttackRange)
	orF(&t.StealthFactor, d.StealthFactor)
	if t.StealthFactor > 1 {
		t.StealthFactor = 1
	}
	if t.LoseTrackRange < t.DetectRange {
		t.LoseTrackRange = t.DetectRange
	}

	orI(&t.SpawnIntervalMs, d.SpawnIntervalMs)
	orF(&t.SpawnDistanceMin, d.SpawnDistanceMin)
	orF(&t.SpawnDistanceMax, d.SpawnDistanceMax)
	if t.SpawnDistanceMax < t.SpawnDistanceMin {
		t.SpawnDistanceMin, t.SpawnDistanceMax = t.SpawnDistanceMax, t.SpawnDistanceMin
	}
	orF(&t.SpawnAltitudeMin, d.SpawnAltitudeMin)
	orF(&t.SpawnAltitudeMax, d.SpawnAltitudeMax)
	orF(&t.AltitudeMax, d.AltitudeMax)
	orF(&t.ClimbRate, d.ClimbRate)
	orF(&t.BaseSpeed, d.BaseSpeed)
	if t.SpeedJitter < 0 {
		t.SpeedJitter = 0
	}
	orF(&t.EngageSpeedMult, d.EngageSpeedMult)
	orF(&t.EvasionSpeed, d.EvasionSpeed)
	orF(&t.EvasionAngle, d.EvasionAngle)
	orF(&t.FlankDistance, d.FlankDistance)
	orF(&t.PatrolRadiusMin, d.PatrolRadiusMin)
	orF(&t.PatrolRadiusMax, d.PatrolRadiusMax)

	orSpan(&t.Spawning, d.Spawning)
	orSpan(&t.Detecting, d.Detecting)
	orSpan(&t.Hesitation, d.Hesitation)
	orSpan(&t.WindUp, d.WindUp)
	orSpan(&t.AttackCap, d.AttackCap)
	orSpan(&t.Cooldown, d.Cooldown)

	orI(&t.CooldownReassessMs, d.CooldownReassessMs)
	orF(&t.ReengageDistance, d.ReengageDistance)
	orF(&t.PlayerMovedDistance, d.PlayerMovedDistance)
	t.FalseStartChance = orChance(t.FalseStartChance, d.FalseStartChance)

	orI(&t.SearchTimeoutMs, d.SearchTimeoutMs)
	orI(&t.SearchExpandMs, d.SearchExpandMs)
	orF(&t.SearchRadius, d.SearchRadius)
	orF(&t.SearchRadiusMax, d.SearchRadiusMax)
	orF(&t.SearchExpandFactor, d.SearchExpandFactor)

	orI(&t.Squad.ThrottleMs, d.Squad.ThrottleMs)
	orI(&t.Squad.CrossfireWindowMs, d.Squad.CrossfireWindowMs)
	orI(&t.Squad.CoordinationWindowMs, d.Squad.CoordinationWindowMs)
	orF(&t.Squad.AssaultRange, d.Squad.AssaultRange)
	orF(&t.Squad.AssaultAngle, d.Squad.AssaultAngle)
	orI(&t.Squad.AssaultHoldMs, d.Squad.AssaultHoldMs)
	t.Squad.SupportHoldChance = orChance(t.Squad.SupportHoldChance, d.Squad.SupportHoldChance)
	orSpan(&t.Squad.SupportHold, d.Squad.SupportHold)

	orF(&t.HealthMax, d.HealthMax)
	orF(&t.WoundedThreshold, d.WoundedThreshold)
	orF(&t.WoundedEvasionMult, d.WoundedEvasionMult)
	orF(&t.WoundedAggressionMult, d.WoundedAggressionMult)

	orF(&t.SuppressionDamage, d.SuppressionDamage)
	orI(&t.SuppressionWindowMs, d.SuppressionWindowMs)
	orSpan(&t.Suppression, d.Suppression)
	orI(&t.SuppressionImmunityMs, d.SuppressionImmunityMs)

	orF(&t.DistressHit, d.DistressHit)
	orF(&t.DistressHealth, d.DistressHealth)
	orF(&t.DistressRadius, d.DistressRadius)
	orF(&t.DistressSpeedBoost, d.DistressSpeedBoost)
	orI(&t.DistressBoostMs, d.DistressBoostMs)

	orF(&t.FeintChanceScale, d.FeintChanceScale)
	orSpan(&t.FeintDelay, d.FeintDelay)

	if t.FrustrationMinShots <= 0 {
		t.FrustrationMinShots = d.FrustrationMinShots
	}
	orF(&t.FrustrationHitRate, d.FrustrationHitRate)

	if t.HistorySize <= 0 {
		t.HistorySize = d.HistorySize
	}
	orF(&t.PreferredHitRate, d.PreferredHitRate)
	orF(&t.PreferredBlend, d.PreferredBlend)

	orF(&t.AimAssistRange, d.AimAssistRange)
	orF(&t.TargetLockAngle, d.TargetLockAngle)
	orF(&t.AimBeaconAngle, d.AimBeaconAngle)
	orI(&t.TargetLockCooldownMs, d.TargetLockCooldownMs)
	orI(&t.AimBeaconCooldownMs, d.AimBeaconCooldownMs)
	return t
}
