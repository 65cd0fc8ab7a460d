package scenario

import "testing"

func TestScenarioTransition(t *testing.T) {
	s := Scenario{
		Phases: []Phase{{
			Name:     "patrol",
			Triggers: []Trigger{{Event: EventTimeElapsed, Value: 10, Next: "attack"}},
		}, {
			Name: "attack",
		}},
	}

	if _, ok := s.NextPhase("patrol", Event{Type: EventTimeElapsed, Value: 9}); ok {
		t.Fatal("transition fired early")
	}
	next, ok := s.NextPhase("patrol", Event{Type: EventTimeElapsed, Value: 10})
	if !ok || next != "attack" {
		t.Fatalf("expected transition to attack, got %s", next)
	}
}

func TestHullBelowFiresUnderThreshold(t *testing.T) {
	s := Scenario{Phases: []Phase{
		{Name: "a", Triggers: []Trigger{{Event: EventHullBelow, Value: 30, Next: "b"}}},
		{Name: "b"},
	}}
	if _, ok := s.NextPhase("a", Event{Type: EventHullBelow, Value: 30}); ok {
		t.Fatal("hull at threshold should not trigger")
	}
	if next, ok := s.NextPhase("a", Event{Type: EventHullBelow, Value: 29}); !ok || next != "b" {
		t.Fatalf("expected b, got %q", next)
	}
}

func TestLoadScenario(t *testing.T) {
	sc, err := Load("testdata/simple.yaml")
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if sc.Name != "example" {
		t.Fatalf("unexpected name %s", sc.Name)
	}
	if sc.Description != "basic test scenario" {
		t.Fatalf("unexpected description %s", sc.Description)
	}
	if len(sc.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(sc.Phases))
	}
	if sc.Phases[0].Player.Speed != 4 {
		t.Fatalf("unexpected player speed %v", sc.Phases[0].Player.Speed)
	}
	fight := sc.Phases[1]
	if !fight.Player.Fires() || fight.MaxDrones != 4 {
		t.Fatalf("unexpected fight phase %+v", fight)
	}
}

func TestLoadRejectsDanglingTrigger(t *testing.T) {
	if _, err := Load("testdata/broken.yaml"); err == nil {
		t.Fatal("expected error for trigger to unknown phase")
	}
}

func TestResolve(t *testing.T) {
	sc, err := Resolve("ambush")
	if err != nil || sc.Name != "Ambush" {
		t.Fatalf("resolve built-in: %v %+v", err, sc)
	}
	if sc, err = Resolve("testdata/simple.yaml"); err != nil || sc.Name != "example" {
		t.Fatalf("resolve file: %v", err)
	}
	if _, err := Resolve("no-such-arc"); err == nil {
		t.Fatal("expected error for unknown arc")
	}
}

func TestBuiltInArcs(t *testing.T) {
	for name, arc := range BuiltIn() {
		if arc.Description == "" {
			t.Fatalf("arc %s missing description", name)
		}
		if err := arc.Validate(); err != nil {
			t.Fatalf("arc %s invalid: %v", name, err)
		}
	}
	for _, n := range []string{"ambush", "stealth-run", "last-stand"} {
		if _, ok := BuiltIn()[n]; !ok {
			t.Fatalf("arc %s not found", n)
		}
	}
}
