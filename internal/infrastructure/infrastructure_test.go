package infrastructure_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"plenario/internal/events"
	"plenario/internal/infrastructure"
	"plenario/pkg/lifecycle"
	"plenario/pkg/storage"
)

type stubDatabase struct{}

func (stubDatabase) Connection() *sql.DB                   { return nil }
func (stubDatabase) Start(lc *lifecycle.Coordinator) error { return nil }

type stubStorage struct{}

func (stubStorage) Start(lc *lifecycle.Coordinator) error { return nil }
func (stubStorage) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	return nil
}
func (stubStorage) Download(ctx context.Context, key string) (*storage.DownloadResult, error) {
	return nil, storage.ErrNotFound
}
func (stubStorage) Delete(ctx context.Context, key string) error { return nil }
func (stubStorage) Exists(ctx context.Context, key string) (bool, error) {
	return false, nil
}

// The event bus must stay live for the whole process: subscriptions made at
// wiring time have to receive events published long after Start, and the bus
// stops only once the lifecycle context is cancelled.
func TestStartKeepsEventBusRunning(t *testing.T) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := events.NewBus(nil, logger)

	infra := &infrastructure.Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  stubDatabase{},
		Storage:   stubStorage{},
		Events:    bus,
	}

	_, ch := bus.Subscribe(events.TypeDecisionPublished)

	if err := infra.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	// Give any misregistered shutdown hook time to run before publishing.
	time.Sleep(50 * time.Millisecond)

	bus.Publish(events.New(events.TypeDecisionPublished, events.DecisionPublished{
		CaseID:      uuid.New(),
		DecisionID:  uuid.New(),
		PublishedAt: time.Now(),
	}))

	select {
	case evt, ok := <-ch:
		if !ok {
			t.Fatal("subscriber channel closed before shutdown")
		}
		if evt.Type != events.TypeDecisionPublished {
			t.Fatalf("event type = %s, want %s", evt.Type, events.TypeDecisionPublished)
		}
	case <-time.After(time.Second):
		t.Fatal("event not delivered after startup")
	}

	if err := lc.Shutdown(time.Second); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected channel closed after shutdown")
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber channel not closed by shutdown")
	}
}
