package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/support-kit/analytics-service/internal/persistence"
)

const (
	syncStatusKey = "sync:last_run"
	syncStatusTTL = 7 * 24 * time.Hour
)

// ErrNoSyncStatus is returned before the first sync run has been recorded.
var ErrNoSyncStatus = errors.New("no sync run recorded")

// RunStatus is the persisted record of the most recent sync run, served by
// the /sync/status endpoint.
type RunStatus struct {
	State      string    `json:"state"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty"`
	Pages      int       `json:"pages"`
	RawTickets int       `json:"raw_tickets"`
	Tickets    int       `json:"tickets"`
	Clients    int       `json:"clients"`
	Companies  int       `json:"companies"`
	Activities int       `json:"activities"`
	Error      string    `json:"error,omitempty"`
}

// SyncStatusStore records and serves the last sync run status.
type SyncStatusStore interface {
	Record(ctx context.Context, status RunStatus) error
	Last(ctx context.Context) (*RunStatus, error)
}

type redisSyncStatusStore struct {
	redis *persistence.Redis
}

// NewSyncStatusStore builds a Redis-backed status store.
func NewSyncStatusStore(r *persistence.Redis) SyncStatusStore {
	return &redisSyncStatusStore{redis: r}
}

func (s *redisSyncStatusStore) Record(ctx context.Context, status RunStatus) error {
	if s.redis == nil || s.redis.Client == nil {
		return nil
	}
	payload, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return s.redis.Client.Set(ctx, syncStatusKey, payload, syncStatusTTL).Err()
}

func (s *redisSyncStatusStore) Last(ctx context.Context) (*RunStatus, error) {
	if s.redis == nil || s.redis.Client == nil {
		return nil, ErrNoSyncStatus
	}
	payload, err := s.redis.Client.Get(ctx, syncStatusKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSyncStatus
	}
	if err != nil {
		return nil, err
	}
	var status RunStatus
	if err := json.Unmarshal(payload, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
