package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/l1jgo/engine/internal/core/system"
	"go.uber.org/zap"
)

// JournalEntry is one non-empty command flush.
type JournalEntry struct {
	RunID      uuid.UUID
	Frame      uint64
	Phase      string
	World      int
	Target     int
	Executed   int
	Dispatched int
	Skipped    int
	RecordedAt time.Time
}

// JournalWriter stores a batch of entries atomically.
type JournalWriter interface {
	WriteBatch(ctx context.Context, entries []JournalEntry) error
}

type JournalRepo struct {
	db *DB
}

func NewJournalRepo(db *DB) *JournalRepo {
	return &JournalRepo{db: db}
}

// WriteBatch writes entries in a single transaction.
func (r *JournalRepo) WriteBatch(ctx context.Context, entries []JournalEntry) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("journal begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range entries {
		if _, err := tx.Exec(ctx,
			`INSERT INTO flush_journal (run_id, frame, phase, world_cmds, target_cmds, executed, dispatched, skipped, recorded_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			e.RunID, int64(e.Frame), e.Phase, e.World, e.Target, e.Executed, e.Dispatched, e.Skipped, e.RecordedAt,
		); err != nil {
			return fmt.Errorf("journal insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// Journal records command flushes from the runner and writes them in
// batches. A failed write is logged and the batch dropped; the game loop
// never waits on the database for longer than the write timeout.
type Journal struct {
	w       JournalWriter
	runID   uuid.UUID
	batch   int
	timeout time.Duration
	log     *zap.Logger
	now     func() time.Time

	pending []JournalEntry
	written int
}

func NewJournal(w JournalWriter, batch int, log *zap.Logger) *Journal {
	if batch <= 0 {
		batch = 1
	}
	return &Journal{
		w:       w,
		runID:   uuid.New(),
		batch:   batch,
		timeout: 5 * time.Second,
		log:     log,
		now:     time.Now,
		pending: make([]JournalEntry, 0, batch),
	}
}

// RunID identifies this process's entries.
func (j *Journal) RunID() uuid.UUID { return j.runID }

// Written reports how many entries reached the writer.
func (j *Journal) Written() int { return j.written }

func (j *Journal) OnFlush(p system.FlushPoint) {
	j.pending = append(j.pending, JournalEntry{
		RunID:      j.runID,
		Frame:      p.Frame,
		Phase:      p.Phase.String(),
		World:      p.Stats.World,
		Target:     p.Stats.Target,
		Executed:   p.Stats.Executed,
		Dispatched: p.Stats.Dispatched,
		Skipped:    p.Stats.Skipped,
		RecordedAt: j.now(),
	})
	if len(j.pending) >= j.batch {
		if err := j.Flush(context.Background()); err != nil {
			j.log.Error("journal write failed", zap.Error(err))
		}
	}
}

// Flush writes whatever is pending. The pending batch is discarded either
// way.
func (j *Journal) Flush(ctx context.Context) error {
	if len(j.pending) == 0 {
		return nil
	}
	entries := j.pending
	j.pending = make([]JournalEntry, 0, j.batch)

	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()
	if err := j.w.WriteBatch(ctx, entries); err != nil {
		return fmt.Errorf("write %d journal entries: %w", len(entries), err)
	}
	j.written += len(entries)
	return nil
}

// Close writes the remaining entries.
func (j *Journal) Close(ctx context.Context) error {
	return j.Flush(ctx)
}
