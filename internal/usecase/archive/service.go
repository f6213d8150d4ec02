package archive

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-archive/internal/domain/entities"
	ucerrors "github.com/johnquangdev/meeting-archive/internal/usecase/errors"
	"github.com/johnquangdev/meeting-archive/internal/usecase/ingest"
	"github.com/johnquangdev/meeting-archive/pkg/jobcontext"
)

const jobTypeReload = "archive.reload"

// Source yields the raw archive document
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	Name() string
}

// EventPublisher announces swapped-in snapshots
type EventPublisher interface {
	PublishReloaded(ctx context.Context, event entities.ReloadedEvent) error
}

// Service defines the interface for the archive hosting use case
type Service interface {
	// Reload fetches, normalizes and swaps in a new snapshot. On failure the
	// previous snapshot stays current.
	Reload(ctx context.Context, trigger Trigger) (*Snapshot, error)

	// Current returns the live snapshot
	Current() (*Snapshot, error)

	// Status reports the outcome of the latest reload attempt
	Status() ReloadStatus

	// StartAutoReload reloads every interval until ctx ends or Stop is called
	StartAutoReload(ctx context.Context, interval time.Duration) error

	// Stop halts auto reload and waits for an in-flight tick to finish
	Stop()
}

// Options tunes ArchiveService
type Options struct {
	ReloadTimeout time.Duration
	MaxAttempts   int
	RetryDelay    time.Duration
}

// ReloadStatus is the last reload attempt as seen by health checks
type ReloadStatus struct {
	Generation    uuid.UUID `json:"generation"`
	LoadedAt      time.Time `json:"loaded_at"`
	LastAttemptAt time.Time `json:"last_attempt_at"`
	LastError     string    `json:"last_error,omitempty"`
	AutoReload    bool      `json:"auto_reload"`
}

// Ensure ArchiveService implements Service interface
var _ Service = (*ArchiveService)(nil)

// ArchiveService owns the single swappable snapshot
type ArchiveService struct {
	source    Source
	publisher EventPublisher
	parser    *ingest.Parser
	logger    *zap.Logger
	opts      Options

	current  atomic.Pointer[Snapshot]
	reloadMu sync.Mutex

	statusMu sync.RWMutex
	status   ReloadStatus

	autoMu sync.Mutex
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewArchiveService creates a new archive service
func NewArchiveService(source Source, publisher EventPublisher, logger *zap.Logger, opts Options) *ArchiveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	return &ArchiveService{
		source:    source,
		publisher: publisher,
		parser:    ingest.NewParser(logger),
		logger:    logger,
		opts:      opts,
	}
}

// invalidator is implemented by sources that cache the raw document
type invalidator interface {
	Invalidate(ctx context.Context) error
}

func (s *ArchiveService) Reload(ctx context.Context, trigger Trigger) (*Snapshot, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	jobCtx, cancel := jobcontext.JobBegin(ctx, uuid.New(), jobTypeReload, string(trigger), s.opts.ReloadTimeout)
	defer cancel()
	jobCtx = jobcontext.SetMaxRetries(jobCtx, s.opts.MaxAttempts)
	if s.opts.RetryDelay > 0 {
		jobCtx = jobcontext.SetBaseDelay(jobCtx, s.opts.RetryDelay)
	}
	meta := jobcontext.GetJobMetadata(jobCtx)

	if inv, ok := s.source.(invalidator); ok && (trigger == TriggerManual || trigger == TriggerWebhook) {
		if err := inv.Invalidate(jobCtx); err != nil {
			s.logger.Warn("archive.cache.invalidate_failed", zap.String("job_id", meta.JobID.String()), zap.Error(err))
		}
	}

	var snap *Snapshot
	err := jobcontext.JobEnd(jobCtx, func(ctx context.Context) error {
		data, err := s.source.Fetch(ctx)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", s.source.Name(), err)
		}
		snap, err = BuildSnapshot(data, s.parser, s.source.Name(), trigger)
		return err
	})

	attemptAt := time.Now().UTC()
	if err != nil {
		s.setStatus(func(st *ReloadStatus) {
			st.LastAttemptAt = attemptAt
			st.LastError = err.Error()
		})
		s.logger.Error("archive.reload.failed",
			zap.String("job_id", meta.JobID.String()),
			zap.String("source", s.source.Name()),
			zap.String("trigger", string(trigger)),
			zap.Error(err),
		)
		return nil, err
	}

	s.current.Store(snap)
	s.setStatus(func(st *ReloadStatus) {
		st.Generation = snap.Generation
		st.LoadedAt = snap.LoadedAt
		st.LastAttemptAt = attemptAt
		st.LastError = ""
	})

	s.logger.Info("archive.reload.completed",
		zap.String("job_id", meta.JobID.String()),
		zap.String("generation", snap.Generation.String()),
		zap.String("source", snap.Source),
		zap.String("trigger", string(trigger)),
		zap.Int("meetings", len(snap.Meetings)),
		zap.Int("diagnostics", len(snap.Diagnostics)),
		zap.Int("persons", snap.Entities.Persons.Len()),
		zap.Int("topics", snap.Entities.Topics.Len()),
		zap.Duration("duration", time.Since(meta.StartTime)),
	)

	if s.publisher != nil {
		if err := s.publisher.PublishReloaded(jobCtx, snap.Event()); err != nil {
			s.logger.Warn("archive.reload.publish_failed",
				zap.String("generation", snap.Generation.String()),
				zap.Error(err),
			)
		}
	}

	return snap, nil
}

func (s *ArchiveService) Current() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ucerrors.ErrSnapshotNotLoaded
	}
	return snap, nil
}

func (s *ArchiveService) Status() ReloadStatus {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.status
}

func (s *ArchiveService) setStatus(update func(*ReloadStatus)) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	update(&s.status)
}

func (s *ArchiveService) StartAutoReload(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w: reload interval must be positive", ucerrors.ErrInvalidInput)
	}

	s.autoMu.Lock()
	defer s.autoMu.Unlock()
	if s.stopCh != nil {
		return ucerrors.ErrAutoReloadRunning
	}
	stopCh := make(chan struct{})
	s.stopCh = stopCh
	s.setStatus(func(st *ReloadStatus) { st.AutoReload = true })

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		s.logger.Info("archive.auto_reload.started", zap.Duration("interval", interval))
		for {
			select {
			case <-ctx.Done():
				s.logger.Info("archive.auto_reload.stopped", zap.Error(ctx.Err()))
				s.releaseAutoReload(stopCh)
				return
			case <-stopCh:
				s.logger.Info("archive.auto_reload.stopped")
				return
			case <-ticker.C:
				// failures are logged by Reload and keep the previous snapshot
				_, _ = s.Reload(ctx, TriggerSchedule)
			}
		}
	}()
	return nil
}

// releaseAutoReload clears the running loop when stopCh still belongs to it
func (s *ArchiveService) releaseAutoReload(stopCh chan struct{}) {
	s.autoMu.Lock()
	defer s.autoMu.Unlock()
	if s.stopCh != stopCh {
		return
	}
	s.stopCh = nil
	s.setStatus(func(st *ReloadStatus) { st.AutoReload = false })
}

func (s *ArchiveService) Stop() {
	s.autoMu.Lock()
	if s.stopCh != nil {
		close(s.stopCh)
		s.stopCh = nil
	}
	s.autoMu.Unlock()

	s.wg.Wait()
	s.setStatus(func(st *ReloadStatus) { st.AutoReload = false })
}
