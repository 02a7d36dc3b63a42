package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// segmentClear reports whether the ground-plane segment a->b misses every
// box.
func segmentClear(a, b mgl64.Vec3, boxes []AABB) bool {
	dx := b.X() - a.X()
	dy := b.Z() - a.Z()
	for _, box := range boxes {
		if hit, _ := segmentAABBHit(a.X(), a.Z(), dx, dy, box.Min.X(), box.Min.Z(), box.Max.X(), box.Max.Z()); hit {
			return false
		}
	}
	return true
}

// smoothPath drops grid corners that can be skipped with a straight, clear
// segment, so agents do not zigzag along cell centres.
func smoothPath(start mgl64.Vec3, points []mgl64.Vec3, boxes []AABB) []mgl64.Vec3 {
	if len(points) <= 1 {
		return points
	}
	out := make([]mgl64.Vec3, 0, len(points))
	anchor := start
	i := 0
	for i < len(points) {
		next := i
		for j := len(points) - 1; j > i; j-- {
			if segmentClear(anchor, points[j], boxes) {
				next = j
				break
			}
		}
		out = append(out, points[next])
		anchor = points[next]
		i = next + 1
	}
	return out
}

func segmentAABBHit(x0, y0, dx, dy, minX, minY, maxX, maxY float64) (bool, float64) {
	tmin := 0.0
	tmax := 1.0

	if dx != 0 {
		invD := 1.0 / dx
		t1 := (minX - x0) * invD
		t2 := (maxX - x0) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	} else if x0 < minX || x0 > maxX {
		return false, 0
	}

	if dy != 0 {
		invD := 1.0 / dy
		t1 := (minY - y0) * invD
		t2 := (maxY - y0) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	} else if y0 < minY || y0 > maxY {
		return false, 0
	}

	if tmax >= tmin {
		return true, tmin
	}
	return false, 0
}
