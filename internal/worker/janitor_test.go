package worker

import (
	"context"
	"testing"
	"time"

	"github.com/parley-labs/parley-core/internal/core/ports/driven/mocks"
	"github.com/parley-labs/parley-core/internal/core/services"
)

func TestJanitor_Sweep(t *testing.T) {
	store := mocks.NewMockContextStore()
	contexts := services.NewContextService(services.ContextServiceConfig{
		Commerce: mocks.NewMockCommerceFetcher(),
		Helpdesk: mocks.NewMockHelpdeskFetcher(),
		Store:    store,
	})
	janitor := NewJanitor(JanitorConfig{Contexts: contexts})

	// Sweep on an empty store is a no-op.
	janitor.Sweep(context.Background())
	if store.Len() != 0 {
		t.Errorf("expected empty store, got %d entries", store.Len())
	}

	// A fresh entry survives the sweep.
	if _, err := contexts.GetContext(context.Background(), "ada@example.com", "conv-1", false); err != nil {
		t.Fatalf("seed context: %v", err)
	}
	janitor.Sweep(context.Background())
	if store.Len() != 1 {
		t.Errorf("expected fresh entry to survive, got %d entries", store.Len())
	}
}

func TestJanitor_Sweep_LockDenied(t *testing.T) {
	store := mocks.NewMockContextStore()
	contexts := services.NewContextService(services.ContextServiceConfig{
		Commerce: mocks.NewMockCommerceFetcher(),
		Helpdesk: mocks.NewMockHelpdeskFetcher(),
		Store:    store,
	})
	lock := mocks.NewMockLock()
	lock.Denied = true
	janitor := NewJanitor(JanitorConfig{Contexts: contexts, Lock: lock})

	janitor.Sweep(context.Background())
	if lock.Acquires() != 1 {
		t.Errorf("expected one acquire attempt, got %d", lock.Acquires())
	}
}

func TestJanitor_Sweep_WithLock(t *testing.T) {
	store := mocks.NewMockContextStore()
	contexts := services.NewContextService(services.ContextServiceConfig{
		Commerce: mocks.NewMockCommerceFetcher(),
		Helpdesk: mocks.NewMockHelpdeskFetcher(),
		Store:    store,
	})
	lock := mocks.NewMockLock()
	janitor := NewJanitor(JanitorConfig{Contexts: contexts, Lock: lock})

	janitor.Sweep(context.Background())
	if lock.Acquires() != 1 {
		t.Errorf("expected one acquire, got %d", lock.Acquires())
	}

	// The lock must be released so the next pass can acquire again.
	janitor.Sweep(context.Background())
	if lock.Acquires() != 2 {
		t.Errorf("expected a second successful pass, got %d acquires", lock.Acquires())
	}
}

func TestJanitor_StartStop(t *testing.T) {
	store := mocks.NewMockContextStore()
	contexts := services.NewContextService(services.ContextServiceConfig{
		Commerce: mocks.NewMockCommerceFetcher(),
		Helpdesk: mocks.NewMockHelpdeskFetcher(),
		Store:    store,
	})
	janitor := NewJanitor(JanitorConfig{Contexts: contexts, Interval: 50 * time.Millisecond})

	if err := janitor.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	// Double start is a no-op.
	if err := janitor.Start(context.Background()); err != nil {
		t.Fatalf("second start: %v", err)
	}

	time.Sleep(120 * time.Millisecond)
	janitor.Stop()
	// Double stop is a no-op.
	janitor.Stop()
}
