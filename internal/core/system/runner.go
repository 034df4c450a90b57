package system

import (
	"sort"
	"time"

	"github.com/l1jgo/engine/internal/core/command"
	"github.com/l1jgo/engine/internal/core/ecs"
	"github.com/l1jgo/engine/internal/core/event"
	"go.uber.org/zap"
)

// FlushPolicy selects where the command buffer is flushed.
type FlushPolicy int

const (
	FlushPerPhase FlushPolicy = iota // at the end of every phase
	FlushPerFrame                    // once, after the last phase
)

// FlushPoint identifies one flush for observers.
type FlushPoint struct {
	Frame uint64
	Phase Phase // last phase run before the flush
	Stats command.FlushStats
}

// FlushObserver is told about every command flush, e.g. to journal it.
type FlushObserver interface {
	OnFlush(p FlushPoint)
}

type Option func(*Runner)

func WithFlushPolicy(p FlushPolicy) Option {
	return func(r *Runner) { r.policy = p }
}

func WithFlushObserver(o FlushObserver) Option {
	return func(r *Runner) { r.observers = append(r.observers, o) }
}

// Runner executes systems in phase order each frame and drives the event
// scopes and the command buffer:
//
//   - after each pass of a phase: swap the pass bus (commit point)
//   - after the last pass: clear the pass bus, flush commands under
//     FlushPerPhase, swap the phase bus
//   - after the last phase: flush commands under FlushPerFrame, swap the
//     frame bus
//
// Every phase runs each frame, even one with no systems, so the phase bus
// cadence does not depend on which systems are registered.
type Runner struct {
	systems []System
	sorted  bool
	// phases[p][pass] lists systems in registration order
	phases [phaseCount][][]System

	ctx       *Context
	policy    FlushPolicy
	observers []FlushObserver
	log       *zap.Logger
	frame     uint64
	lastPhase Phase
}

func NewRunner(world *ecs.World, scopes *event.Scopes, commands *command.Buffer, log *zap.Logger, opts ...Option) *Runner {
	r := &Runner{
		systems: make([]System, 0, 16),
		ctx: &Context{
			scopes:   scopes,
			commands: commands,
			world:    world,
		},
		log: log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Context returns the capability provider for system constructors.
func (r *Runner) Context() *Context { return r.ctx }

// Frame reports how many frames have completed.
func (r *Runner) Frame() uint64 { return r.frame }

func (r *Runner) Register(s System) {
	if p := s.Phase(); p < 0 || p >= phaseCount {
		panic("system: phase out of range: " + p.String())
	}
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Tick runs one frame.
func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	for p := Phase(0); p < phaseCount; p++ {
		r.runPhase(p, dt)
	}
	if r.policy == FlushPerFrame {
		r.flush()
	}
	r.ctx.scopes.Frame.SwapBuffers()
	r.frame++

	if ce := r.log.Check(zap.DebugLevel, "frame complete"); ce != nil {
		ce.Write(
			zap.Uint64("frame", r.frame),
			zap.Any("frame_events", r.ctx.scopes.Frame.Stats()),
		)
	}
}

// TickPhase runs a single phase with the same commit, flush and swap rules
// as inside Tick. It does not advance the frame bus.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.ensureSorted()
	r.runPhase(phase, dt)
}

func (r *Runner) runPhase(phase Phase, dt time.Duration) {
	scopes := r.ctx.scopes
	r.lastPhase = phase
	for _, pass := range r.phases[phase] {
		for _, s := range pass {
			s.Update(dt)
		}
		scopes.Pass.SwapBuffers()
	}
	scopes.Pass.ClearAll()
	if r.policy == FlushPerPhase {
		r.flush()
	}
	scopes.Phase.SwapBuffers()
}

func (r *Runner) flush() {
	stats := r.ctx.commands.Flush(r.ctx.world)
	if stats == (command.FlushStats{}) {
		return
	}
	p := FlushPoint{Frame: r.frame, Phase: r.lastPhase, Stats: stats}
	for _, o := range r.observers {
		o.OnFlush(p)
	}
}

func (r *Runner) ensureSorted() {
	if r.sorted {
		return
	}
	sort.SliceStable(r.systems, func(i, j int) bool {
		return r.systems[i].Phase() < r.systems[j].Phase()
	})
	for p := range r.phases {
		r.phases[p] = r.phases[p][:0]
	}
	for _, s := range r.systems {
		p, pass := s.Phase(), passOf(s)
		for len(r.phases[p]) <= pass {
			r.phases[p] = append(r.phases[p], nil)
		}
		r.phases[p][pass] = append(r.phases[p][pass], s)
	}
	r.sorted = true
}
