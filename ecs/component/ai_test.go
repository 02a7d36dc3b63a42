package component

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAIValidate(t *testing.T) {
	require.NoError(t, DefaultAI().Validate())
	require.NoError(t, AI{}.Validate(), "all-zero config is legal")

	cases := []struct {
		name   string
		mutate func(a *AI)
		field  string
	}{
		{"negative_wait", func(a *AI) { a.PatrolWaitTime = -1 }, "patrol_wait_time"},
		{"negative_range", func(a *AI) { a.DetectionRange = -0.1 }, "detection_range"},
		{"view_too_wide", func(a *AI) { a.ViewAngle = 361 }, "view_angle"},
		{"nan_attack", func(a *AI) { a.AttackRange = math.NaN() }, "attack_range"},
		{"inf_delay", func(a *AI) { a.AttackToResetDelay = math.Inf(1) }, "attack_to_reset_delay"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := DefaultAI()
			c.mutate(&a)
			err := a.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), c.field)
		})
	}

	full := DefaultAI()
	full.ViewAngle = 360
	assert.NoError(t, full.Validate())
}

func TestAnimatorParams(t *testing.T) {
	var nilParams *AnimatorParams
	nilParams.SetBool(AnimParamWalking, true)
	assert.False(t, nilParams.Bool(AnimParamWalking))

	p := &AnimatorParams{}
	p.SetBool(AnimParamWalking, true)
	assert.True(t, p.Bool(AnimParamWalking))
	p.SetBool(AnimParamWalking, false)
	assert.False(t, NewAnimatorParams().Bool("missing"))
	assert.False(t, p.Bool(AnimParamWalking))
}
