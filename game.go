package main

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/milk9111/sentry/ecs"
	"github.com/milk9111/sentry/ecs/component"
	"github.com/milk9111/sentry/ecs/system"
	"github.com/milk9111/sentry/levels"
	"github.com/milk9111/sentry/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

// Game hosts one level at a time. Every reset, from the guard's attack or
// the player, rebuilds the level from the current YAML.
type Game struct {
	levelName string
	debug     bool
	logger    *log.Logger
	watcher   *prefabs.Watcher

	input  component.Input
	scene  *scene
	resets int

	resetPending bool
	nextLevel    bool
	stale        bool
	// resetErr is the last failed rebuild. It stays set, and the old scene
	// stays up, until a reset succeeds.
	resetErr error
}

func NewGame(levelName string, debug bool, logger *log.Logger) (*Game, error) {
	if logger == nil {
		logger = log.Default()
	}
	if levelName == "" {
		levelName = levels.DefaultLevel
	}
	g := &Game{
		levelName: levelName,
		debug:     debug,
		logger:    logger,
	}
	s, err := buildScene(levelName, g, logger)
	if err != nil {
		return nil, err
	}
	g.scene = s
	return g, nil
}

// Watch starts reporting edits to YAML under dirs. Missing directories only
// disable watching.
func (g *Game) Watch(dirs ...string) {
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		g.logger.Warn("hot reload disabled", "err", err)
		return
	}
	g.watcher = w
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

// ResetCurrentLevel rebuilds the level after the current tick finishes.
func (g *Game) ResetCurrentLevel() {
	g.resetPending = true
}

func (g *Game) Update() error {
	g.noteChanges(g.watcher.Drain())

	g.scene.world.Update(1 / float64(ebiten.TPS()))

	for _, ev := range g.scene.world.Events().Drain() {
		if ev.Type != ecs.EventAIStateChanged {
			continue
		}
		if change, ok := ev.Data.(system.AIStateChange); ok {
			g.scene.lastChange = change
		}
	}

	if g.input.DebugPressed {
		g.debug = !g.debug
	}
	if g.input.NextLevelPressed {
		g.nextLevel = true
	}
	if g.input.ResetPressed || g.nextLevel {
		g.resetPending = true
	}
	if g.resetPending {
		g.reload()
	}
	return nil
}

// noteChanges marks the scene stale for edited files. After a failed reset
// an edit schedules another attempt, since it may be the fix.
func (g *Game) noteChanges(files []string) {
	for _, name := range files {
		g.logger.Info("changed, applied on next reset", "file", filepath.Base(name))
		g.stale = true
	}
	if g.stale && g.resetErr != nil {
		g.resetPending = true
	}
}

func (g *Game) reload() {
	name := g.levelName
	if g.nextLevel {
		name = nextLevelName(g.levelName)
	}
	g.resetPending = false
	g.nextLevel = false

	s, err := buildScene(name, g, g.logger)
	if err != nil {
		// keep the old scene up; R or the next YAML edit tries again
		g.logger.Error("reset failed", "level", name, "err", err)
		g.resetErr = err
		g.stale = false
		return
	}
	g.levelName = name
	g.scene = s
	g.stale = false
	g.resetErr = nil
	g.resets++
	g.logger.Info("level reset", "level", name, "resets", g.resets)
}

func nextLevelName(current string) string {
	names := levels.Names()
	if len(names) == 0 {
		return current
	}
	for i, n := range names {
		if n == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

func (g *Game) Draw(screen *ebiten.Image) {
	s := g.scene
	cam := newCamera(s.level.Bounds, baseWidth, baseHeight)
	s.draw(screen, cam, g.debug)
	ebitenutil.DebugPrint(screen, g.hud(ebiten.ActualFPS()))
}

func (g *Game) hud(fps float64) string {
	s := g.scene
	ctrl := s.ai.Controller()
	hud := fmt.Sprintf("level: %s  resets: %d  FPS: %.0f\nstate: %s  lost: %.2fs  walking: %t",
		g.levelName, g.resets, fps,
		ctrl.State(), ctrl.LostTimer(), s.anim.Bool(component.AnimParamWalking))
	if g.debug {
		hud += fmt.Sprintf("\nrun: %s  dist: %.2f  sees: %t  patrol: %d/%d",
			ctrl.RunID().String()[:8], ctrl.DistanceToTarget(), ctrl.CanSeeTarget(),
			ctrl.Patrol().Index(), ctrl.Patrol().Len())
		if s.lastChange.To != "" {
			hud += fmt.Sprintf("\nlast change: %s -> %s", s.lastChange.From, s.lastChange.To)
		}
	}
	if g.resetErr != nil {
		hud += fmt.Sprintf("\nRESET FAILED: %v\nfix the YAML, then R to retry", g.resetErr)
	} else if g.stale {
		hud += "\nprefabs changed: R to reload"
	}
	hud += "\nWASD/arrows move  R reset  N next level  F1 debug"
	return hud
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
