package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type account struct {
	id         uuid.UUID
	createdAt  time.Time
	preStudent bool
}

type fakeAccounts struct {
	accounts []account
	cutoffs  []time.Time
}

func (f *fakeAccounts) ExpiredPreStudents(_ context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	f.cutoffs = append(f.cutoffs, cutoff)
	var ids []uuid.UUID
	for _, a := range f.accounts {
		if a.preStudent && a.createdAt.Before(cutoff) {
			ids = append(ids, a.id)
		}
	}
	return ids, nil
}

func (f *fakeAccounts) DeleteByIDs(_ context.Context, ids []uuid.UUID) (int64, error) {
	drop := map[uuid.UUID]bool{}
	for _, id := range ids {
		drop[id] = true
	}
	kept := f.accounts[:0]
	var n int64
	for _, a := range f.accounts {
		if drop[a.id] {
			n++
			continue
		}
		kept = append(kept, a)
	}
	f.accounts = kept
	return n, nil
}

func TestPruneService_Prune(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour
	expired := account{id: uuid.New(), createdAt: now.Add(-31 * day), preStudent: true}
	fresh := account{id: uuid.New(), createdAt: now.Add(-29 * day), preStudent: true}
	verified := account{id: uuid.New(), createdAt: now.Add(-90 * day)}

	store := &fakeAccounts{accounts: []account{expired, fresh, verified}}
	svc := NewPruneService(store, 30*day, zap.NewNop())
	ctx := context.Background()

	t.Run("dry run keeps accounts", func(t *testing.T) {
		res, err := svc.Prune(ctx, now, true)
		require.NoError(t, err)
		assert.Equal(t, now.Add(-30*day), res.Cutoff)
		assert.Equal(t, []uuid.UUID{expired.id}, res.Expired)
		assert.Zero(t, res.Deleted)
		assert.Len(t, store.accounts, 3)
	})

	t.Run("deletes expired pre-students only", func(t *testing.T) {
		res, err := svc.Prune(ctx, now, false)
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.Deleted)
		assert.Len(t, store.accounts, 2)
	})

	t.Run("nothing left to prune", func(t *testing.T) {
		res, err := svc.Prune(ctx, now, false)
		require.NoError(t, err)
		assert.Empty(t, res.Expired)
		assert.Zero(t, res.Deleted)
	})
}

func TestPruneService_RunDisabled(t *testing.T) {
	svc := NewPruneService(&fakeAccounts{}, time.Hour, zap.NewNop())
	done := make(chan struct{})
	go func() {
		svc.Run(context.Background(), 0)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run with zero interval did not return")
	}
}
