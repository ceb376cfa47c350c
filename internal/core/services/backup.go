package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atticware/ghattic/internal/core/domain"
	"github.com/atticware/ghattic/internal/core/ports/driven"
	"github.com/atticware/ghattic/internal/core/ports/driving"
)

// issuesEpochFloor is the since bound for a full issues walk. The API
// returns an empty result for 1970-01-01T00:00:00Z exactly, so full
// walks ask from one day later instead.
var issuesEpochFloor = time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC)

// Ensure Backup implements the interface.
var _ driving.Backup = (*Backup)(nil)

// Backup mirrors one repository's issues and pull requests into the
// record store, kind by kind. Each kind keeps its own cursor: the walk
// resumes from it, and it advances only once the kind's walk finished
// cleanly with every yielded item on disk.
type Backup struct {
	source  driven.ItemSource
	records driven.RecordStore
	state   driven.StateStore
	log     *zap.Logger
}

// NewBackup creates the backup service.
func NewBackup(
	source driven.ItemSource,
	records driven.RecordStore,
	state driven.StateStore,
	log *zap.Logger,
) *Backup {
	return &Backup{
		source:  source,
		records: records,
		state:   state,
		log:     log,
	}
}

// Run performs one backup pass over every item kind in order. The
// first failure aborts the run; kinds already checkpointed stay
// checkpointed, so the next run resumes where this one stopped.
func (s *Backup) Run(ctx context.Context) (*domain.RunSummary, error) {
	started := time.Now()
	runID := uuid.NewString()
	log := s.log.With(zap.String("run_id", runID))

	summary := &domain.RunSummary{
		RunID: runID,
		Kinds: make(map[domain.ItemKind]domain.KindSummary),
	}

	state, err := s.state.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrStateNotFound):
		log.Info("no previous backup state, starting full backup")
		state = domain.NewBackupState()
	case err != nil:
		return summary, fmt.Errorf("load backup state: %w", err)
	}

	for _, kind := range domain.AllItemKinds() {
		kindSummary, err := s.backupKind(ctx, log, state, kind)
		if err != nil {
			summary.Duration = time.Since(started)
			return summary, fmt.Errorf("backup %s: %w", kind, err)
		}
		summary.Kinds[kind] = *kindSummary

		// Checkpoint after each kind, so a failure later in the run
		// does not throw away this kind's finished walk.
		if err := s.state.Save(ctx, state); err != nil {
			summary.Duration = time.Since(started)
			return summary, fmt.Errorf("checkpoint %s: %w", kind, err)
		}
	}

	summary.Duration = time.Since(started)
	log.Info("backup complete",
		zap.Int("fetched", summary.TotalFetched()),
		zap.Duration("duration", summary.Duration))
	return summary, nil
}

// backupKind walks one kind and stores every yielded item. The cursor
// advances to the newest update instant seen, and only when the walk
// ran to clean exhaustion.
func (s *Backup) backupKind(ctx context.Context, log *zap.Logger, state *domain.BackupState, kind domain.ItemKind) (*domain.KindSummary, error) {
	since, incremental := state.Cursor(kind)
	if !incremental && kind == domain.KindIssues {
		since = issuesEpochFloor
	}

	log.Info("walk started",
		zap.String("kind", kind.String()),
		zap.Bool("incremental", incremental),
		zap.Time("since", since))

	// A private context lets the consumer stop the producer mid-page
	// when a store operation fails.
	walkCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	items, errs := s.source.Items(walkCtx, kind, since)

	var (
		summary  domain.KindSummary
		maxSeen  time.Time
		storeErr error
	)

	for item := range items {
		if storeErr != nil {
			continue // drain so the producer can exit
		}
		if storeErr = s.storeItem(ctx, log, item, &summary, &maxSeen); storeErr != nil {
			cancel()
		}
	}
	walkErr := <-errs

	if storeErr != nil {
		return nil, storeErr
	}
	if walkErr != nil {
		return nil, walkErr
	}

	if state.Advance(kind, maxSeen) {
		log.Info("cursor advanced",
			zap.String("kind", kind.String()),
			zap.Time("cursor", maxSeen))
	}
	summary.Cursor, _ = state.Cursor(kind)

	log.Info("walk complete",
		zap.String("kind", kind.String()),
		zap.Int("fetched", summary.Fetched),
		zap.Int("created", summary.Created),
		zap.Int("updated", summary.Updated))
	return &summary, nil
}

// storeItem writes one item to the record store and updates the
// running counters.
func (s *Backup) storeItem(ctx context.Context, log *zap.Logger, item domain.Item, summary *domain.KindSummary, maxSeen *time.Time) error {
	exists, err := s.records.Exists(ctx, item.Kind, item.Number)
	if err != nil {
		return err
	}
	if err := s.records.Upsert(ctx, item); err != nil {
		return err
	}

	summary.Fetched++
	if exists {
		summary.Updated++
	} else {
		summary.Created++
	}
	if item.UpdatedAt.After(*maxSeen) {
		*maxSeen = item.UpdatedAt
	}

	log.Debug("stored",
		zap.String("kind", item.Kind.String()),
		zap.Int("number", item.Number),
		zap.Time("updated_at", item.UpdatedAt),
		zap.Bool("created", !exists))
	return nil
}
