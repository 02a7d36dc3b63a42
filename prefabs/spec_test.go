package prefabs

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/sentry/ecs/component"
)

func TestLoadGuardSpec(t *testing.T) {
	spec, err := LoadGuardSpec()
	require.NoError(t, err)
	assert.Equal(t, "guard", spec.Name)
	assert.Greater(t, spec.MoveSpeed, 0.0)

	cfg, err := spec.AI()
	require.NoError(t, err)
	assert.Equal(t, 90.0, cfg.ViewAngle)
	assert.Equal(t, 10.0, cfg.DetectionRange)
}

func TestLoadTargetSpec(t *testing.T) {
	spec, err := LoadTargetSpec()
	require.NoError(t, err)
	assert.Equal(t, "player", spec.Name)
	assert.Equal(t, color.NRGBA{R: 0xdc, G: 0x14, B: 0x3c, A: 0xff}, spec.Color.Color)
}

func TestLoadSpecMissing(t *testing.T) {
	_, err := LoadSpec[GuardSpec]("nope.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prefabs: load nope.yaml")
}

func TestGuardSpecAI(t *testing.T) {
	t.Run("omitted_fields_keep_defaults", func(t *testing.T) {
		var spec GuardSpec
		require.NoError(t, yaml.Unmarshal([]byte("name: g\nai:\n  view_angle: 0\n  attack_range: 3\n"), &spec))
		cfg, err := spec.AI()
		require.NoError(t, err)

		want := component.DefaultAI()
		want.ViewAngle = 0
		want.AttackRange = 3
		assert.Equal(t, want, cfg)
	})

	t.Run("invalid", func(t *testing.T) {
		var spec GuardSpec
		require.NoError(t, yaml.Unmarshal([]byte("name: g\nai:\n  lose_player_time: -1\n"), &spec))
		_, err := spec.AI()
		require.ErrorIs(t, err, component.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "lose_player_time")
	})
}

func TestYAMLColor(t *testing.T) {
	var c struct {
		A *YAMLColor `yaml:"a"`
		B *YAMLColor `yaml:"b"`
		C *YAMLColor `yaml:"c"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: \"#102030\"\nb: \"10203040\"\n"), &c))
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, c.A.Color)
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, c.B.Color)
	assert.Equal(t, color.White, c.C.Or(color.White))

	var bad struct {
		A *YAMLColor `yaml:"a"`
	}
	assert.Error(t, yaml.Unmarshal([]byte("a: \"#12\"\n"), &bad))
	assert.Error(t, yaml.Unmarshal([]byte("a: [1]\n"), &bad))
}
