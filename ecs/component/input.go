package component

// Input is the frame's control state for the player-driven target. Move
// axes are in [-1, 1] on the ground plane.
type Input struct {
	MoveX float64
	MoveZ float64

	ResetPressed     bool
	NextLevelPressed bool
	DebugPressed     bool
}
