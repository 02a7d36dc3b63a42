package system

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/milk9111/sentry/common"
	"github.com/milk9111/sentry/ecs"
	"github.com/milk9111/sentry/ecs/component"
)

var ErrMissingCollaborator = errors.New("ai: missing collaborator")

// movingSpeedSqr is the squared speed above which the agent counts as walking.
const movingSpeedSqr = 0.01

type AgentBody interface {
	Position() mgl64.Vec3
	Forward() mgl64.Vec3
}

type TargetRef interface {
	Entity() ecs.Entity
	Position() mgl64.Vec3
}

type Navigator interface {
	SetDestination(p mgl64.Vec3)
	PathPending() bool
	RemainingDistance() float64
	Velocity() mgl64.Vec3
	SetStopped(stopped bool)
}

type Raycaster interface {
	Raycast(origin, dir mgl64.Vec3, maxDistance float64) (ecs.Entity, bool)
}

type Animator interface {
	SetBool(name string, value bool)
}

type LevelResetter interface {
	ResetCurrentLevel()
}

type Deferrer interface {
	After(delay float64, fn func())
}

// ControllerDeps are the collaborators a Controller drives. Anim and Logger
// may be nil.
type ControllerDeps struct {
	Agent  AgentBody
	Target TargetRef
	Nav    Navigator
	Ray    Raycaster
	Anim   Animator
	Reset  LevelResetter
	Timers Deferrer
	Logger *log.Logger
}

var transitions = map[component.StateID][]component.StateID{
	component.StatePatrolling: {component.StateFollowing},
	component.StateFollowing:  {component.StateAttacking, component.StatePatrolling},
	component.StateAttacking:  nil,
}

// Controller is the guard's behavior state machine. Call Tick once per
// simulation step; it never blocks and never returns an error.
type Controller struct {
	cfg   component.AI
	runID uuid.UUID

	agent  AgentBody
	target TargetRef
	nav    Navigator
	anim   Animator
	reset  LevelResetter
	timers Deferrer
	logger *log.Logger

	perception Perception
	patrol     *PatrolRouter

	state   component.AIState
	ctx     component.AIContext
	started bool
}

func NewController(cfg component.AI, waypoints []mgl64.Vec3, deps ControllerDeps) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch {
	case deps.Agent == nil:
		return nil, fmt.Errorf("ai: agent: %w", ErrMissingCollaborator)
	case deps.Target == nil:
		return nil, fmt.Errorf("ai: target: %w", ErrMissingCollaborator)
	case deps.Nav == nil:
		return nil, fmt.Errorf("ai: navigator: %w", ErrMissingCollaborator)
	case deps.Ray == nil:
		return nil, fmt.Errorf("ai: raycaster: %w", ErrMissingCollaborator)
	case deps.Reset == nil:
		return nil, fmt.Errorf("ai: level resetter: %w", ErrMissingCollaborator)
	case deps.Timers == nil:
		return nil, fmt.Errorf("ai: timers: %w", ErrMissingCollaborator)
	}

	logger := deps.Logger
	if logger == nil {
		logger = log.Default().WithPrefix("ai")
	}
	runID := uuid.New()

	return &Controller{
		cfg:        cfg,
		runID:      runID,
		agent:      deps.Agent,
		target:     deps.Target,
		nav:        deps.Nav,
		anim:       deps.Anim,
		reset:      deps.Reset,
		timers:     deps.Timers,
		logger:     logger.With("run", runID.String()),
		perception: Perception{ViewAngle: cfg.ViewAngle, Ray: deps.Ray},
		patrol:     NewPatrolRouter(waypoints, deps.Nav, deps.Timers, cfg.PatrolWaitTime, cfg.StopAtDistance),
		state:      component.AIState{Current: component.StatePatrolling},
	}, nil
}

// Start sends the agent to its first waypoint. Tick calls it on first use;
// calling it again does nothing.
func (c *Controller) Start() {
	if c.started {
		return
	}
	c.started = true
	c.patrol.AdvanceToNext()
}

func (c *Controller) Tick(dt float64) {
	c.Start()

	switch c.state.Current {
	case component.StatePatrolling:
		c.tickPatrolling()
	case component.StateFollowing:
		c.tickFollowing(dt)
	case component.StateAttacking:
	}

	if c.anim != nil {
		c.anim.SetBool(component.AnimParamWalking, c.nav.Velocity().LenSqr() > movingSpeedSqr)
	}
}

func (c *Controller) tickPatrolling() {
	c.patrol.Update()
	if c.detectsTarget() {
		c.transition(component.StateFollowing)
	}
}

func (c *Controller) tickFollowing(dt float64) {
	if c.DistanceToTarget() <= c.cfg.AttackRange {
		c.transition(component.StateAttacking)
		return
	}

	c.nav.SetDestination(c.target.Position())

	if c.CanSeeTarget() {
		c.ctx.LostTimer = 0
		return
	}
	c.ctx.LostTimer += dt
	if c.ctx.LostTimer >= c.cfg.LosePlayerTime-common.Epsilon {
		c.transition(component.StatePatrolling)
	}
}

func (c *Controller) transition(to component.StateID) {
	from := c.state.Current
	if !allowed(from, to) {
		return
	}
	c.state.Current = to
	c.logger.Debug("state change", "from", from, "to", to)

	switch to {
	case component.StateFollowing:
		c.enterFollowing()
	case component.StatePatrolling:
		c.enterPatrolling()
	case component.StateAttacking:
		c.enterAttacking()
	}
}

func allowed(from, to component.StateID) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (c *Controller) enterFollowing() {
	c.patrol.CancelDwell()
	c.nav.SetStopped(false)
	c.ctx.LostTimer = 0
	c.nav.SetDestination(c.target.Position())
}

func (c *Controller) enterPatrolling() {
	c.ctx.LostTimer = 0
	c.patrol.RetargetToNearest(c.agent.Position())
}

func (c *Controller) enterAttacking() {
	c.nav.SetStopped(true)
	if c.ctx.ResetArmed {
		return
	}
	c.ctx.ResetArmed = true
	c.timers.After(c.cfg.AttackToResetDelay, func() {
		c.logger.Info("resetting level", "delay", c.cfg.AttackToResetDelay)
		c.reset.ResetCurrentLevel()
	})
}

func (c *Controller) State() component.StateID {
	return c.state.Current
}

func (c *Controller) LostTimer() float64 {
	return c.ctx.LostTimer
}

// ResetArmed reports whether the deferred level reset has been scheduled.
func (c *Controller) ResetArmed() bool {
	return c.ctx.ResetArmed
}

func (c *Controller) Patrol() *PatrolRouter {
	return c.patrol
}

func (c *Controller) RunID() uuid.UUID {
	return c.runID
}

func (c *Controller) Config() component.AI {
	return c.cfg
}
