package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

var ErrInvalidLevel = errors.New("levels: invalid level")

const DefaultLevel = "courtyard"

// Level is a flat arena on the ground plane: walls the guard must path and
// look around, the guard's patrol route and where both actors start.
type Level struct {
	Name      string  `yaml:"name"`
	Bounds    Box     `yaml:"bounds"`
	GridSize  float64 `yaml:"grid_size"`
	Clearance float64 `yaml:"clearance"`
	Obstacles []Box   `yaml:"obstacles"`
	Waypoints []Point `yaml:"waypoints"`
	Guard     Spawn   `yaml:"guard"`
	Player    Spawn   `yaml:"player"`
}

// Point is a ground-plane position. Height is always zero.
type Point struct {
	X float64 `yaml:"x"`
	Z float64 `yaml:"z"`
}

func (p Point) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{p.X, 0, p.Z}
}

type Box struct {
	Min Point `yaml:"min"`
	Max Point `yaml:"max"`
}

func (b Box) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

type Spawn struct {
	Position Point `yaml:"position"`
	Forward  Point `yaml:"forward"`
}

// WaypointVecs returns the patrol route in authored order.
func (l *Level) WaypointVecs() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, 0, len(l.Waypoints))
	for _, w := range l.Waypoints {
		out = append(out, w.Vec3())
	}
	return out
}

// Validate checks the level is playable. Waypoints may be empty.
func (l *Level) Validate() error {
	if l.Bounds.Max.X <= l.Bounds.Min.X || l.Bounds.Max.Z <= l.Bounds.Min.Z {
		return fmt.Errorf("%w: %s: empty bounds", ErrInvalidLevel, l.Name)
	}
	if l.GridSize < 0 || l.Clearance < 0 {
		return fmt.Errorf("%w: %s: negative grid_size or clearance", ErrInvalidLevel, l.Name)
	}
	for i, o := range l.Obstacles {
		if o.Max.X < o.Min.X || o.Max.Z < o.Min.Z {
			return fmt.Errorf("%w: %s: obstacle %d is inverted", ErrInvalidLevel, l.Name, i)
		}
	}
	for i, w := range l.Waypoints {
		if !l.Bounds.Contains(w) {
			return fmt.Errorf("%w: %s: waypoint %d outside bounds", ErrInvalidLevel, l.Name, i)
		}
	}
	if !l.Bounds.Contains(l.Guard.Position) || !l.Bounds.Contains(l.Player.Position) {
		return fmt.Errorf("%w: %s: spawn outside bounds", ErrInvalidLevel, l.Name)
	}
	return nil
}

// Load reads levels/<name>.yaml from disk when present, falling back to the
// embedded copy. The extension is optional.
func Load(name string) (*Level, error) {
	clean := cleanLevelName(name)
	data, err := os.ReadFile(filepath.Join("levels", clean))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, clean)
	}
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", clean, err)
	}

	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", clean, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(clean, ".yaml")
	}
	if lvl.GridSize == 0 {
		lvl.GridSize = 1
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// Names lists the embedded levels, sorted.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(out)
	return out
}

func cleanLevelName(name string) string {
	if name == "" {
		name = DefaultLevel
	}
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if filepath.Ext(s) != ".yaml" {
		s += ".yaml"
	}
	return s
}
