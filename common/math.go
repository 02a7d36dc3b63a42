package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the length below which a vector is treated as zero.
const Epsilon = 1e-9

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Distance returns the straight-line distance between two points.
func Distance(a, b mgl64.Vec3) float64 {
	return b.Sub(a).Len()
}

// SafeNormalize returns v scaled to unit length. The second result is false
// when v is too short to have a direction, in which case the zero vector is
// returned instead of NaNs.
func SafeNormalize(v mgl64.Vec3) (mgl64.Vec3, bool) {
	l := v.Len()
	if l < Epsilon || math.IsNaN(l) || math.IsInf(l, 0) {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1 / l), true
}

// AngleBetween returns the unsigned angle between a and b in degrees, in
// [0, 180]. Zero-length inputs report 0.
func AngleBetween(a, b mgl64.Vec3) float64 {
	na, ok := SafeNormalize(a)
	if !ok {
		return 0
	}
	nb, ok := SafeNormalize(b)
	if !ok {
		return 0
	}
	cos := mgl64.Clamp(na.Dot(nb), -1, 1)
	return mgl64.RadToDeg(math.Acos(cos))
}

// Flatten drops the vertical component so ground-plane math ignores height.
func Flatten(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}
