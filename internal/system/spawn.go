package system

import (
	"time"

	"github.com/l1jgo/engine/internal/core/command"
	coresys "github.com/l1jgo/engine/internal/core/system"
	"github.com/l1jgo/engine/internal/data"
	"github.com/l1jgo/engine/internal/spawn"
)

// SpawnSystem turns due spawn-list entries into SpawnCommands. Phase 0
// (Input). The entities exist after the command flush that ends the phase.
type SpawnSystem struct {
	list     *data.SpawnList
	commands *command.Buffer
	frame    uint64
}

func NewSpawnSystem(list *data.SpawnList, commands *command.Buffer) *SpawnSystem {
	return &SpawnSystem{list: list, commands: commands}
}

func (s *SpawnSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *SpawnSystem) Update(_ time.Duration) {
	for _, e := range s.list.Due(s.frame) {
		for _, c := range spawn.FromEntry(e) {
			command.Add(s.commands, c)
		}
	}
	s.frame++
}
