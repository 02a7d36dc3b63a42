package ecs

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhysicsWorldRaycast(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld()
	w.SetPhysicsWorld(pw)

	guard := w.CreateEntity()
	target := w.CreateEntity()
	wall := w.CreateEntity()

	pw.AddBody(guard, mgl64.Vec3{0, 0, 0}, 0.5)
	pw.AddBody(target, mgl64.Vec3{0, 0, 10}, 0.5)

	caster := pw.Caster(guard)

	t.Run("clear_line_hits_target", func(t *testing.T) {
		hit, ok := caster.Raycast(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}, 10)
		require.True(t, ok)
		assert.Equal(t, target, hit)
	})

	t.Run("short_ray_hits_nothing", func(t *testing.T) {
		_, ok := caster.Raycast(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}, 5)
		assert.False(t, ok)
	})

	t.Run("wall_blocks_target", func(t *testing.T) {
		pw.AddObstacle(wall, mgl64.Vec3{-2, 0, 4}, mgl64.Vec3{2, 0, 5})
		hit, ok := caster.Raycast(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}, 10)
		require.True(t, ok)
		assert.Equal(t, wall, hit)
	})

	t.Run("moved_target_is_reindexed_after_step", func(t *testing.T) {
		pw.MoveBody(target, mgl64.Vec3{10, 0, 0})
		w.Update(1.0 / 60)

		pos, ok := pw.BodyPosition(target)
		require.True(t, ok)
		assert.InDelta(t, 10, pos.X(), 1e-9)

		hit, ok := caster.Raycast(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 10)
		require.True(t, ok)
		assert.Equal(t, target, hit)
	})

	t.Run("zero_direction", func(t *testing.T) {
		_, ok := caster.Raycast(mgl64.Vec3{}, mgl64.Vec3{}, 10)
		assert.False(t, ok)
	})

	t.Run("unowned_ray_starts_inside_guard", func(t *testing.T) {
		hit, ok := pw.Raycast(0, mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 10)
		require.True(t, ok)
		assert.Equal(t, guard, hit)
	})
}

func TestPhysicsWorldAnonymousObstacle(t *testing.T) {
	pw := NewPhysicsWorld()
	pw.AddObstacle(0, mgl64.Vec3{3, 0, -1}, mgl64.Vec3{1, 0, 1})

	hit, ok := pw.Raycast(0, mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 5)
	require.True(t, ok)
	assert.Equal(t, Entity(0), hit)
}
