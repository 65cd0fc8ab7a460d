package hostile

// EventType classifies something that happened during an update.
type EventType string

const (
	EventSpawned            EventType = "spawned"
	EventDetected           EventType = "detected"
	EventFalseStart         EventType = "false_start"
	EventEngaged            EventType = "engaged"
	EventLost               EventType = "lost"
	EventReacquired         EventType = "reacquired"
	EventWindUp             EventType = "wind_up"
	EventBurstStarted       EventType = "burst_started"
	EventShot               EventType = "shot"
	EventBurstComplete      EventType = "burst_complete"
	EventBurstAborted       EventType = "burst_aborted"
	EventDestroyed          EventType = "destroyed"
	EventRemoved            EventType = "removed"
	EventWounded            EventType = "wounded"
	EventSuppressed         EventType = "suppressed"
	EventSuppressionEnded   EventType = "suppression_ended"
	EventDistress           EventType = "distress"
	EventAlerted            EventType = "alerted"
	EventRoleChanged        EventType = "role_changed"
	EventCoordinatedAssault EventType = "coordinated_assault"
	EventSearchExpanded     EventType = "search_expanded"
	EventForcedSearch       EventType = "forced_search"
	EventPatrol             EventType = "patrol"
)

// Event is emitted for external handling: telemetry, UI, scoring.
type Event struct {
	Type        EventType
	DroneID     int
	At          int64
	Personality string
	State       State
	Weapon      string
	Role        Role
	Shots       int
	Hits        int
	Damage      float64
	Distance    float64
	// Hit is set on shot events that landed.
	Hit bool
	// Other is the partner drone of a pairwise event, or -1.
	Other int
}
