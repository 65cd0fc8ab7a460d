package scenario

// BuiltIn returns predefined player scripts.
func BuiltIn() map[string]Scenario {
	return map[string]Scenario{
		"ambush": {
			Name:        "Ambush",
			Description: "The player cruises a patrol loop, gets jumped by a hostile pair, and fights back once the first drone falls.",
			Phases: []Phase{
				{
					Name:        "cruise",
					Description: "Slow orbit at low altitude, guns cold.",
					Player:      PlayerScript{Speed: 3, TurnRate: 6, Altitude: 40},
					Triggers:    []Trigger{{Event: EventTimeElapsed, Value: 20, Next: "contact"}},
				},
				{
					Name:        "contact",
					Description: "Hold position and return fire at anything in front.",
					Player:      PlayerScript{Speed: 1, TurnRate: 20, Altitude: 40, FireRange: 35, FireArc: 25, FireDamage: 12, FireIntervalMs: 400},
					Triggers: []Trigger{
						{Event: EventDronesDestroyed, Value: 2, Next: "mop-up"},
						{Event: EventHullBelow, Value: 30, Next: "withdraw"},
					},
				},
				{
					Name:        "withdraw",
					Description: "Break away at speed under camouflage.",
					Player:      PlayerScript{Speed: 9, TurnRate: 4, Altitude: 60, Camo: true},
					Triggers:    []Trigger{{Event: EventTimeElapsed, Value: 15, Next: "contact"}},
				},
				{
					Name:        "mop-up",
					Description: "Sweep the area with a wide firing arc.",
					Player:      PlayerScript{Speed: 4, TurnRate: 15, Altitude: 50, FireRange: 40, FireArc: 40, FireDamage: 10, FireIntervalMs: 350},
				},
			},
		},
		"stealth-run": {
			Name:        "Stealth Run",
			Description: "The player crosses hostile airspace under camouflage, breaking stealth only to clear a blocking drone.",
			Phases: []Phase{
				{
					Name:        "infiltrate",
					Description: "Straight line at high speed, camouflage on.",
					Player:      PlayerScript{Speed: 7, TurnRate: 1, Altitude: 30, Camo: true},
					Triggers:    []Trigger{{Event: EventTimeElapsed, Value: 30, Next: "exposed"}},
				},
				{
					Name:        "exposed",
					Description: "Camouflage drops and the player shoots its way through.",
					Player:      PlayerScript{Speed: 3, TurnRate: 25, Altitude: 30, FireRange: 30, FireArc: 20, FireDamage: 15, FireIntervalMs: 500},
					Triggers: []Trigger{
						{Event: EventDronesDestroyed, Value: 1, Next: "exfil"},
						{Event: EventTimeElapsed, Value: 25, Next: "exfil"},
					},
				},
				{
					Name:        "exfil",
					Description: "Back under camouflage and out.",
					Player:      PlayerScript{Speed: 8, TurnRate: 2, Altitude: 70, Camo: true},
				},
			},
		},
		"last-stand": {
			Name:        "Last Stand",
			Description: "The player holds a fixed position against waves of hostiles at full population.",
			Phases: []Phase{
				{
					Name:        "dig-in",
					Description: "Stationary, slow traverse, light fire.",
					Player:      PlayerScript{TurnRate: 30, Altitude: 20, FireRange: 30, FireArc: 15, FireDamage: 8, FireIntervalMs: 600},
					Triggers:    []Trigger{{Event: EventTimeElapsed, Value: 30, Next: "swarm"}},
				},
				{
					Name:        "swarm",
					Description: "Maximum hostile population; fast traverse.",
					Player:      PlayerScript{TurnRate: 60, Altitude: 20, FireRange: 35, FireArc: 20, FireDamage: 10, FireIntervalMs: 300},
					MaxDrones:   6,
					Triggers:    []Trigger{{Event: EventHullBelow, Value: 20, Next: "overrun"}},
				},
				{
					Name:        "overrun",
					Description: "Hull failing; fire everything.",
					Player:      PlayerScript{TurnRate: 90, Altitude: 20, FireRange: 40, FireArc: 45, FireDamage: 12, FireIntervalMs: 200},
					MaxDrones:   6,
				},
			},
		},
	}
}
