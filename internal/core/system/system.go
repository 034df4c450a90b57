package system

import "time"

// Phase defines execution ordering within a single frame.
type Phase int

const (
	PhaseInput      Phase = iota // 0: gather input, spawn requests
	PhasePreUpdate               // 1: react to last phase's events
	PhaseUpdate                  // 2: game logic
	PhasePostUpdate              // 3: consequences of game logic
	PhaseOutput                  // 4: publish results
	PhaseCleanup                 // 5: destroy queued entities

	phaseCount
)

var phaseNames = [phaseCount]string{
	"input", "pre_update", "update", "post_update", "output", "cleanup",
}

func (p Phase) String() string {
	if p < 0 || p >= phaseCount {
		return "unknown"
	}
	return phaseNames[p]
}

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}

// PassSystem is a System that runs in a specific pass of its phase. Systems
// that do not implement it run in pass 0. Events a system pushes on the pass
// bus are readable by systems in later passes of the same phase.
type PassSystem interface {
	System
	Pass() int
}

func passOf(s System) int {
	if ps, ok := s.(PassSystem); ok && ps.Pass() > 0 {
		return ps.Pass()
	}
	return 0
}
