package system

import (
	"time"

	"github.com/l1jgo/engine/internal/core/command"
	"github.com/l1jgo/engine/internal/core/event"
	coresys "github.com/l1jgo/engine/internal/core/system"
)

// DeathSystem reads the deaths of the previous phase, queues each victim for
// destruction and republishes the death on the frame bus so the next frame
// can react. Phase 3 (PostUpdate).
type DeathSystem struct {
	died     event.Source[event.EntityDied]
	obituary event.Sink[event.EntityDied]
	commands *command.Buffer
}

func NewDeathSystem(died event.Source[event.EntityDied], obituary event.Sink[event.EntityDied], commands *command.Buffer) *DeathSystem {
	return &DeathSystem{died: died, obituary: obituary, commands: commands}
}

func (s *DeathSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *DeathSystem) Update(_ time.Duration) {
	for _, d := range s.died.Read() {
		command.AddTo(s.commands, d.ID, command.Destroy{})
		s.obituary.Push(d)
	}
}
