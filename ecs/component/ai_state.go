package component

// StateID identifies an AI FSM state.
type StateID string

const (
	StatePatrolling StateID = "patrolling"
	StateFollowing  StateID = "following"
	StateAttacking  StateID = "attacking"
)

// AIState stores the current FSM state.
type AIState struct {
	Current StateID
}

// AIContext stores per-agent AI runtime data.
type AIContext struct {
	// LostTimer counts seconds the target has been out of sight while
	// following.
	LostTimer float64
	// ResetArmed is set once the attack reset has been scheduled.
	ResetArmed bool
}

// Patrol is the patrol router's cursor and dwell flag.
type Patrol struct {
	Index   int
	Waiting bool
}
