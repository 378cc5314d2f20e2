package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/support-kit/analytics-service/internal/classify"
	"github.com/support-kit/analytics-service/internal/events"
	"github.com/support-kit/analytics-service/internal/repository"
	"github.com/support-kit/analytics-service/internal/zendesk"
)

// SyncState labels the orchestrator's position in a rebuild epoch.
type SyncState string

const (
	SyncStateIdle         SyncState = "idle"
	SyncStateFetching     SyncState = "fetching"
	SyncStateTransforming SyncState = "transforming"
	SyncStateRebuilding   SyncState = "rebuilding"
	SyncStateFailed       SyncState = "failed"
)

// ErrSyncInProgress is returned when a run is triggered while another is
// still going. The scheduler skips the tick; rebuilds racing on
// delete-all+insert would interleave destructively.
var ErrSyncInProgress = errors.New("sync already in progress")

// TicketSource pulls the full raw ticket history from the upstream helpdesk.
type TicketSource interface {
	FetchAllSince(ctx context.Context, checkpoint int64) (*zendesk.Export, error)
}

// SyncService orchestrates one rebuild epoch: fetch every export page,
// classify the batch into the four view sets in memory, then replace each
// collection. All candidate sets are fully computed before the store is
// touched, so a fetch or transform failure leaves every view untouched.
// Collections already replaced before a store failure keep their new rows;
// that consistency window is accepted, not transactional.
type SyncService struct {
	source     TicketSource
	tickets    repository.TicketViewRepository
	clients    repository.ClientViewRepository
	companies  repository.CompanyViewRepository
	activities repository.ActivityViewRepository
	dispatcher events.Dispatcher
	status     SyncStatusStore
	logger     *zap.Logger
	running    atomic.Bool
}

// SyncDependencies bundles collaborators for the sync service.
type SyncDependencies struct {
	Source       TicketSource
	TicketRepo   repository.TicketViewRepository
	ClientRepo   repository.ClientViewRepository
	CompanyRepo  repository.CompanyViewRepository
	ActivityRepo repository.ActivityViewRepository
	Dispatcher   events.Dispatcher
	StatusStore  SyncStatusStore
}

// NewSyncService constructs the orchestrator.
func NewSyncService(deps SyncDependencies, logger *zap.Logger) *SyncService {
	return &SyncService{
		source:     deps.Source,
		tickets:    deps.TicketRepo,
		clients:    deps.ClientRepo,
		companies:  deps.CompanyRepo,
		activities: deps.ActivityRepo,
		dispatcher: deps.Dispatcher,
		status:     deps.StatusStore,
		logger:     logger,
	}
}

// Run executes one full sync. It is safe to call from a multi-threaded
// scheduler: overlapping invocations beyond the first return
// ErrSyncInProgress immediately.
func (s *SyncService) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrSyncInProgress
	}
	defer s.running.Store(false)

	started := time.Now()
	s.logger.Info("sync run started")
	s.publish(ctx, events.EventSyncStarted, nil)

	status := RunStatus{State: string(SyncStateFetching), StartedAt: started}
	s.recordStatus(ctx, status)

	export, err := s.source.FetchAllSince(ctx, 0)
	if err != nil {
		return s.fail(ctx, status, SyncStateFetching, 0, err)
	}
	status.Pages = export.Pages
	status.RawTickets = len(export.Tickets)

	status.State = string(SyncStateTransforming)
	s.recordStatus(ctx, status)
	result := classify.Batch(export.Tickets)
	status.Tickets = len(result.Tickets)
	status.Clients = len(result.Clients)
	status.Companies = len(result.Companies)
	status.Activities = len(result.Activities)

	status.State = string(SyncStateRebuilding)
	s.recordStatus(ctx, status)
	if err := s.rebuild(ctx, result); err != nil {
		return s.fail(ctx, status, SyncStateRebuilding, len(export.Tickets), err)
	}

	status.State = string(SyncStateIdle)
	status.FinishedAt = time.Now()
	s.recordStatus(ctx, status)

	duration := time.Since(started)
	s.logger.Info("sync run completed",
		zap.Int("pages", export.Pages),
		zap.Int("raw_tickets", len(export.Tickets)),
		zap.Int("tickets", len(result.Tickets)),
		zap.Int("clients", len(result.Clients)),
		zap.Int("companies", len(result.Companies)),
		zap.Int("activities", len(result.Activities)),
		zap.Duration("duration", duration))
	s.publish(ctx, events.EventSyncCompleted, events.SyncCompletedPayload{
		Pages:      export.Pages,
		RawTickets: len(export.Tickets),
		Tickets:    len(result.Tickets),
		Clients:    len(result.Clients),
		Companies:  len(result.Companies),
		Activities: len(result.Activities),
		Duration:   duration,
	})
	return nil
}

// rebuild replaces the four collections in dependency order so activity
// client references always point at rows written in the same epoch.
func (s *SyncService) rebuild(ctx context.Context, result classify.Result) error {
	if err := s.tickets.ReplaceAll(ctx, result.Tickets); err != nil {
		return fmt.Errorf("rebuild tickets view: %w", err)
	}
	if err := s.clients.ReplaceAll(ctx, result.Clients); err != nil {
		return fmt.Errorf("rebuild clients view: %w", err)
	}
	if err := s.companies.ReplaceAll(ctx, result.Companies); err != nil {
		return fmt.Errorf("rebuild companies view: %w", err)
	}
	if err := s.activities.ReplaceAll(ctx, result.Activities); err != nil {
		return fmt.Errorf("rebuild activities view: %w", err)
	}
	return nil
}

func (s *SyncService) fail(ctx context.Context, status RunStatus, stage SyncState, rawCount int, err error) error {
	s.logger.Error("sync run aborted",
		zap.String("stage", string(stage)),
		zap.Int("pages", status.Pages),
		zap.Int("raw_tickets", rawCount),
		zap.Error(err))

	status.State = string(SyncStateFailed)
	status.FinishedAt = time.Now()
	status.Error = err.Error()
	s.recordStatus(ctx, status)

	s.publish(ctx, events.EventSyncFailed, events.SyncFailedPayload{
		Stage:      string(stage),
		RawTickets: rawCount,
		Reason:     err.Error(),
	})
	return err
}

func (s *SyncService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func (s *SyncService) recordStatus(ctx context.Context, status RunStatus) {
	if s.status == nil {
		return
	}
	if err := s.status.Record(ctx, status); err != nil {
		s.logger.Warn("unable to record sync status", zap.Error(err))
	}
}

// Running reports whether a run is currently in flight.
func (s *SyncService) Running() bool {
	return s.running.Load()
}
