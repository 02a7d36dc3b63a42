package main

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/sentry/ecs"
	"github.com/milk9111/sentry/ecs/component"
	"github.com/milk9111/sentry/ecs/system"
	"github.com/milk9111/sentry/levels"
	"github.com/milk9111/sentry/prefabs"
)

// scene is everything one run of a level owns. A reset throws it away,
// along with any deferred tasks still queued on its world.
type scene struct {
	level  *levels.Level
	world  *ecs.World
	grid   *system.NavGrid
	guard  *Guard
	player *Player
	ai     *system.AISystem
	anim   *component.AnimatorParams

	lastChange system.AIStateChange
}

func buildScene(levelName string, g *Game, logger *log.Logger) (*scene, error) {
	lvl, err := levels.Load(levelName)
	if err != nil {
		return nil, err
	}
	guardSpec, err := prefabs.LoadGuardSpec()
	if err != nil {
		return nil, err
	}
	targetSpec, err := prefabs.LoadTargetSpec()
	if err != nil {
		return nil, err
	}
	cfg, err := guardSpec.AI()
	if err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	pw := ecs.NewPhysicsWorld()
	w.SetPhysicsWorld(pw)

	obstacles := make([]system.AABB, 0, len(lvl.Obstacles))
	for _, o := range lvl.Obstacles {
		box := system.AABB{Min: o.Min.Vec3(), Max: o.Max.Vec3()}
		pw.AddObstacle(w.CreateEntity(), box.Min, box.Max)
		obstacles = append(obstacles, box)
	}
	bounds := system.AABB{Min: lvl.Bounds.Min.Vec3(), Max: lvl.Bounds.Max.Vec3()}
	clearance := math.Max(lvl.Clearance, guardSpec.Radius)
	grid := system.NewNavGrid(bounds, lvl.GridSize, clearance, obstacles)

	guardEnt := w.CreateEntity()
	guardPos := lvl.Guard.Position.Vec3()
	pw.AddBody(guardEnt, guardPos, guardSpec.Radius)
	agent := system.NewNavAgent(grid, guardPos, lvl.Guard.Forward.Vec3(), guardSpec.MoveSpeed)

	playerEnt := w.CreateEntity()
	playerPos := lvl.Player.Position.Vec3()
	pw.AddBody(playerEnt, playerPos, targetSpec.Radius)
	target := system.NewTargetBody(playerEnt, playerPos, targetSpec.MoveSpeed)

	anim := component.NewAnimatorParams()
	ctrl, err := system.NewController(cfg, lvl.WaypointVecs(), system.ControllerDeps{
		Agent:  agent,
		Target: target,
		Nav:    agent,
		Ray:    pw.Caster(guardEnt),
		Anim:   anim,
		Reset:  g,
		Timers: w.Scheduler(),
		Logger: logger.WithPrefix("ai").With("guard", guardEnt.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", lvl.Name, err)
	}

	nav := system.NewNavigationSystem()
	nav.Add(guardEnt, agent)
	ai := system.NewAISystem(guardEnt, ctrl)

	w.AddSystem(NewInputSystem(&g.input))
	w.AddSystem(system.NewTargetControlSystem(target, &g.input, system.NewNavGrid(bounds, lvl.GridSize, targetSpec.Radius, obstacles)))
	w.AddSystem(ai)
	w.AddSystem(nav)

	return &scene{
		level: lvl,
		world: w,
		grid:  grid,
		guard: &Guard{
			agent:     agent,
			cfg:       cfg,
			radius:    guardSpec.Radius,
			color:     guardSpec.Color.Or(colornames.Royalblue),
			coneColor: guardSpec.ConeColor.Or(colornames.Gold),
		},
		player: &Player{
			body:   target,
			radius: targetSpec.Radius,
			color:  targetSpec.Color.Or(colornames.Crimson),
		},
		ai:   ai,
		anim: anim,
	}, nil
}

func (s *scene) draw(screen *ebiten.Image, cam camera, debug bool) {
	screen.Fill(colornames.Darkslategray)

	lo := cam.project(s.level.Bounds.Min.Vec3())
	hi := cam.project(s.level.Bounds.Max.Vec3())
	vector.FillRect(screen, lo[0], hi[1], hi[0]-lo[0], lo[1]-hi[1], colornames.Dimgray, false)

	for _, o := range s.level.Obstacles {
		a := cam.project(o.Min.Vec3())
		b := cam.project(o.Max.Vec3())
		vector.FillRect(screen, a[0], b[1], b[0]-a[0], a[1]-b[1], colornames.Slategray, false)
		vector.StrokeRect(screen, a[0], b[1], b[0]-a[0], a[1]-b[1], 1, colornames.Lightslategray, false)
	}

	wps := s.level.WaypointVecs()
	for i, wp := range wps {
		p := cam.project(wp)
		next := cam.project(wps[(i+1)%len(wps)])
		vector.StrokeLine(screen, p[0], p[1], next[0], next[1], 1, colornames.Darkkhaki, true)
		vector.FillCircle(screen, p[0], p[1], 4, colornames.Khaki, true)
	}

	s.guard.Draw(screen, cam, debug)
	s.player.Draw(screen, cam)
}

// camera maps the ground plane onto the screen, +Z up, fitting the level
// bounds with a margin.
type camera struct {
	scale  float64
	center mgl64.Vec3
	width  float64
	height float64
}

func newCamera(bounds levels.Box, width, height float64) camera {
	w := bounds.Max.X - bounds.Min.X
	h := bounds.Max.Z - bounds.Min.Z
	scale := 1.0
	if w > 0 && h > 0 {
		scale = 0.9 * math.Min(width/w, height/h)
	}
	return camera{
		scale:  scale,
		center: mgl64.Vec3{(bounds.Min.X + bounds.Max.X) / 2, 0, (bounds.Min.Z + bounds.Max.Z) / 2},
		width:  width,
		height: height,
	}
}

func (c camera) project(p mgl64.Vec3) [2]float32 {
	x := (p.X()-c.center.X())*c.scale + c.width/2
	y := c.height/2 - (p.Z()-c.center.Z())*c.scale
	return [2]float32{float32(x), float32(y)}
}

func (c camera) length(d float64) float32 {
	return float32(d * c.scale)
}
