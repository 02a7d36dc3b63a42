package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/sentry/ecs/component"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// GuardSpec is the guard archetype: how it moves, how big it is and how it
// behaves.
type GuardSpec struct {
	Name      string     `yaml:"name"`
	MoveSpeed float64    `yaml:"move_speed"`
	Radius    float64    `yaml:"radius"`
	Color     *YAMLColor `yaml:"color"`
	ConeColor *YAMLColor `yaml:"cone_color"`
	AIConfig  AISpec     `yaml:"ai"`
}

// AISpec mirrors component.AI. Omitted fields keep the stock value.
type AISpec struct {
	PatrolWaitTime     *float64 `yaml:"patrol_wait_time"`
	StopAtDistance     *float64 `yaml:"stop_at_distance"`
	DetectionRange     *float64 `yaml:"detection_range"`
	ViewAngle          *float64 `yaml:"view_angle"`
	LosePlayerTime     *float64 `yaml:"lose_player_time"`
	AttackRange        *float64 `yaml:"attack_range"`
	AttackToResetDelay *float64 `yaml:"attack_to_reset_delay"`
}

// AI builds and validates the controller configuration.
func (s GuardSpec) AI() (component.AI, error) {
	cfg := component.DefaultAI()
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&cfg.PatrolWaitTime, s.AIConfig.PatrolWaitTime)
	set(&cfg.StopAtDistance, s.AIConfig.StopAtDistance)
	set(&cfg.DetectionRange, s.AIConfig.DetectionRange)
	set(&cfg.ViewAngle, s.AIConfig.ViewAngle)
	set(&cfg.LosePlayerTime, s.AIConfig.LosePlayerTime)
	set(&cfg.AttackRange, s.AIConfig.AttackRange)
	set(&cfg.AttackToResetDelay, s.AIConfig.AttackToResetDelay)

	if err := cfg.Validate(); err != nil {
		return component.AI{}, fmt.Errorf("prefabs: guard %q: %w", s.Name, err)
	}
	return cfg, nil
}

func LoadGuardSpec() (*GuardSpec, error) {
	spec, err := LoadSpec[GuardSpec]("guard.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// TargetSpec is the player-controlled target the guard hunts.
type TargetSpec struct {
	Name      string     `yaml:"name"`
	MoveSpeed float64    `yaml:"move_speed"`
	Radius    float64    `yaml:"radius"`
	Color     *YAMLColor `yaml:"color"`
}

func LoadTargetSpec() (*TargetSpec, error) {
	spec, err := LoadSpec[TargetSpec]("target.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

// Or returns c, or fallback when the color was never set.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
