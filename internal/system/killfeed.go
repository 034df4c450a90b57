package system

import (
	"time"

	"github.com/l1jgo/engine/internal/core/event"
	coresys "github.com/l1jgo/engine/internal/core/system"
	"go.uber.org/zap"
)

// KillFeedSystem reports last frame's deaths and contacts. Phase 0 (Input).
type KillFeedSystem struct {
	deaths   event.Source[event.EntityDied]
	contacts event.Source[event.Collision]
	log      *zap.Logger

	kills        int
	lastContacts int
}

func NewKillFeedSystem(deaths event.Source[event.EntityDied], contacts event.Source[event.Collision], log *zap.Logger) *KillFeedSystem {
	return &KillFeedSystem{deaths: deaths, contacts: contacts, log: log}
}

func (s *KillFeedSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *KillFeedSystem) Update(_ time.Duration) {
	s.lastContacts = len(s.contacts.Read())
	for _, d := range s.deaths.Read() {
		s.kills++
		s.log.Info("entity died", zap.Stringer("id", d.ID), zap.Stringer("killer", d.Killer))
	}
}

// Kills is the running total of deaths seen.
func (s *KillFeedSystem) Kills() int { return s.kills }

// LastContacts is the number of collisions in the previous frame.
func (s *KillFeedSystem) LastContacts() int { return s.lastContacts }
