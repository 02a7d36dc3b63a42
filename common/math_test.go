package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAngleBetween(t *testing.T) {
	cases := []struct {
		name string
		a, b mgl64.Vec3
		want float64
	}{
		{"same", mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, 5}, 0},
		{"right_angle", mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}, 90},
		{"opposite", mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, -2}, 180},
		{"diagonal", mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 1}, 45},
		{"zero_a", mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 0},
		{"zero_b", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{}, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := AngleBetween(c.a, c.b)
			assert.False(t, math.IsNaN(got))
			assert.InDelta(t, c.want, got, 1e-9)
		})
	}
}

func TestSafeNormalize(t *testing.T) {
	n, ok := SafeNormalize(mgl64.Vec3{3, 0, 4})
	require.True(t, ok)
	assert.InDelta(t, 1, n.Len(), 1e-12)
	assert.InDelta(t, 0.6, n.X(), 1e-12)

	n, ok = SafeNormalize(mgl64.Vec3{})
	require.False(t, ok)
	assert.Equal(t, mgl64.Vec3{}, n)
}

func TestDistanceAndFlatten(t *testing.T) {
	assert.InDelta(t, 5, Distance(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{3, 0, 4}), 1e-12)
	assert.Equal(t, mgl64.Vec3{1, 0, 3}, Flatten(mgl64.Vec3{1, 2, 3}))
	assert.InDelta(t, 5, Lerp(0, 10, 0.5), 1e-12)
}
