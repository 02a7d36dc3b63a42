package component

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidConfig = errors.New("ai: invalid config")

// AI holds the tuning of a guard. Distances are world units, times are
// seconds and ViewAngle is the full cone width in degrees.
type AI struct {
	PatrolWaitTime     float64
	StopAtDistance     float64
	DetectionRange     float64
	ViewAngle          float64
	LosePlayerTime     float64
	AttackRange        float64
	AttackToResetDelay float64
}

// DefaultAI mirrors the stock guard prefab.
func DefaultAI() AI {
	return AI{
		PatrolWaitTime:     2,
		StopAtDistance:     0.5,
		DetectionRange:     10,
		ViewAngle:          90,
		LosePlayerTime:     3,
		AttackRange:        1.5,
		AttackToResetDelay: 2,
	}
}

// Validate rejects negative or non-finite values and view angles outside
// [0, 360].
func (a AI) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"patrol_wait_time", a.PatrolWaitTime},
		{"stop_at_distance", a.StopAtDistance},
		{"detection_range", a.DetectionRange},
		{"view_angle", a.ViewAngle},
		{"lose_player_time", a.LosePlayerTime},
		{"attack_range", a.AttackRange},
		{"attack_to_reset_delay", a.AttackToResetDelay},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidConfig, f.name)
		}
		if f.value < 0 {
			return fmt.Errorf("%w: %s is negative (%g)", ErrInvalidConfig, f.name, f.value)
		}
	}
	if a.ViewAngle > 360 {
		return fmt.Errorf("%w: view_angle %g exceeds 360", ErrInvalidConfig, a.ViewAngle)
	}
	return nil
}
