package data

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// SpawnEntry describes a batch of entities to spawn at a given frame.
type SpawnEntry struct {
	Frame    uint64  `yaml:"frame"`
	Template string  `yaml:"template"`
	Count    int     `yaml:"count"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	SpreadX  float64 `yaml:"spread_x"` // x offset between consecutive entities
	VX       float64 `yaml:"vx"`
	VY       float64 `yaml:"vy"`
	HP       int     `yaml:"hp"`
	Radius   float64 `yaml:"radius"`
	Damage   int     `yaml:"damage"`
}

type spawnListFile struct {
	Spawns []SpawnEntry `yaml:"spawns"`
}

// SpawnList holds spawn entries ordered by frame.
type SpawnList struct {
	entries []SpawnEntry
	next    int
}

func LoadSpawnList(path string) (*SpawnList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spawn list %s: %w", path, err)
	}
	return ParseSpawnList(data)
}

func ParseSpawnList(data []byte) (*SpawnList, error) {
	var f spawnListFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse spawn list: %w", err)
	}
	for i := range f.Spawns {
		e := &f.Spawns[i]
		if e.Template == "" {
			return nil, fmt.Errorf("spawn entry %d: template is required", i)
		}
		if e.Count <= 0 {
			e.Count = 1
		}
		if e.HP <= 0 {
			e.HP = 1
		}
	}
	sort.SliceStable(f.Spawns, func(i, j int) bool {
		return f.Spawns[i].Frame < f.Spawns[j].Frame
	})
	return &SpawnList{entries: f.Spawns}, nil
}

func (l *SpawnList) Count() int { return len(l.entries) }

// Due returns the entries scheduled at or before frame that have not been
// returned yet.
func (l *SpawnList) Due(frame uint64) []SpawnEntry {
	start := l.next
	for l.next < len(l.entries) && l.entries[l.next].Frame <= frame {
		l.next++
	}
	return l.entries[start:l.next]
}

// Done reports whether every entry has been handed out.
func (l *SpawnList) Done() bool { return l.next >= len(l.entries) }
