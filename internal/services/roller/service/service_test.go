package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	apperrors "github.com/Kartagia/diceodel/internal/platform/errors"
	"github.com/Kartagia/diceodel/internal/services/roller/domain"
	"github.com/Kartagia/diceodel/internal/services/roller/storage"
)

// fakeStore records saved rolls in memory.
type fakeStore struct {
	saved   []storage.KeptRoll
	saveErr error
	listErr error
}

func (f *fakeStore) SaveKeptRoll(ctx context.Context, roll storage.KeptRoll) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, roll)
	return nil
}

func (f *fakeStore) GetKeptRoll(ctx context.Context, rollID string) (storage.KeptRoll, error) {
	for _, roll := range f.saved {
		if roll.ID == rollID {
			return roll, nil
		}
	}
	return storage.KeptRoll{}, apperrors.New(apperrors.CodeNotFound, "kept roll not found")
}

func (f *fakeStore) ListKeptRolls(ctx context.Context, limit int) ([]storage.KeptRoll, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if limit > 0 && limit < len(f.saved) {
		return f.saved[:limit], nil
	}
	return f.saved, nil
}

// newTestService pins the clock and id generator for assertions.
func newTestService(store storage.Store) *Service {
	svc := New(store)
	svc.now = func() time.Time { return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC) }
	svc.newID = func() (string, error) { return "roll-fixed", nil }
	return svc
}

// TestRollAndKeepPersistsOutcome ensures the evaluation is saved with id,
// timestamp, and both value sequences.
func TestRollAndKeepPersistsOutcome(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	record, err := svc.RollAndKeep(context.Background(), domain.KeepRequest{
		Sides: 6, Count: 4, Policy: domain.KeepPolicyBest, Keep: 2, Seed: 9,
	})
	if err != nil {
		t.Fatalf("RollAndKeep: %v", err)
	}
	if record.ID != "roll-fixed" {
		t.Fatalf("record id = %q", record.ID)
	}
	if len(record.Rolled) != 4 || len(record.Kept) != 2 {
		t.Fatalf("unexpected record shape: %+v", record)
	}
	if len(store.saved) != 1 || !reflect.DeepEqual(store.saved[0], record) {
		t.Fatalf("saved %+v, want %+v", store.saved, record)
	}
}

// TestRollAndKeepWithoutStore ensures evaluation works with persistence
// disabled.
func TestRollAndKeepWithoutStore(t *testing.T) {
	svc := newTestService(nil)

	record, err := svc.RollAndKeep(context.Background(), domain.KeepRequest{
		Sides: 8, Count: 3, Policy: domain.KeepPolicyLast, Keep: 1, Seed: 2,
	})
	if err != nil {
		t.Fatalf("RollAndKeep: %v", err)
	}
	if record.ID != "" {
		t.Fatalf("expected empty id without store, got %q", record.ID)
	}
	if len(record.Kept) != 1 {
		t.Fatalf("expected 1 kept value, got %v", record.Kept)
	}
}

// TestRollAndKeepDomainErrorSkipsSave ensures invalid requests never reach
// the store.
func TestRollAndKeepDomainErrorSkipsSave(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	_, err := svc.RollAndKeep(context.Background(), domain.KeepRequest{
		Sides: 6, Count: 2, Policy: domain.KeepPolicyBest, Keep: -1, Seed: 1,
	})
	if !errors.Is(err, apperrors.New(apperrors.CodeKeepNegativeCount, "")) {
		t.Fatalf("error = %v, want %s", err, apperrors.CodeKeepNegativeCount)
	}
	if len(store.saved) != 0 {
		t.Fatalf("expected no saved rolls, got %d", len(store.saved))
	}
}

// TestRollAndKeepSurfacesSaveError ensures storage failures fail the call.
func TestRollAndKeepSurfacesSaveError(t *testing.T) {
	store := &fakeStore{saveErr: apperrors.New(apperrors.CodeStorage, "save kept roll")}
	svc := newTestService(store)

	_, err := svc.RollAndKeep(context.Background(), domain.KeepRequest{
		Sides: 6, Count: 2, Policy: domain.KeepPolicyBest, Keep: 1, Seed: 1,
	})
	if !errors.Is(err, apperrors.New(apperrors.CodeStorage, "")) {
		t.Fatalf("error = %v, want %s", err, apperrors.CodeStorage)
	}
}

// TestHistoryRequiresStore ensures history fails without persistence with a
// structured domain error.
func TestHistoryRequiresStore(t *testing.T) {
	svc := newTestService(nil)
	_, err := svc.History(context.Background(), 10)
	if !errors.Is(err, apperrors.New(apperrors.CodeHistoryDisabled, "")) {
		t.Fatalf("error = %v, want %s", err, apperrors.CodeHistoryDisabled)
	}
}

// TestHistoryListsRolls ensures history delegates to the store.
func TestHistoryListsRolls(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	for seed := int64(0); seed < 3; seed++ {
		if _, err := svc.RollAndKeep(context.Background(), domain.KeepRequest{
			Sides: 6, Count: 2, Policy: domain.KeepPolicyWorst, Keep: 1, Seed: seed,
		}); err != nil {
			t.Fatalf("RollAndKeep seed %d: %v", seed, err)
		}
	}

	rolls, err := svc.History(context.Background(), 2)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(rolls) != 2 {
		t.Fatalf("expected 2 rolls, got %d", len(rolls))
	}
}
