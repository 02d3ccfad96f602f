package service

import (
	"context"
	"time"

	"campus-hub/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PreStudentStore interface {
	ExpiredPreStudents(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}

// PruneResult reports one prune pass.
type PruneResult struct {
	Cutoff  time.Time
	Expired []uuid.UUID
	Deleted int64
}

// PruneService removes pre-student accounts that never verified within the
// retention window.
type PruneService struct {
	users     PreStudentStore
	retention time.Duration
	logger    *zap.Logger
}

func NewPruneService(users PreStudentStore, retention time.Duration, logger *zap.Logger) *PruneService {
	return &PruneService{users: users, retention: retention, logger: logger}
}

// Prune deletes pre-students created before now minus the retention. With
// dryRun the expired accounts are reported but kept.
func (s *PruneService) Prune(ctx context.Context, now time.Time, dryRun bool) (*PruneResult, error) {
	res := &PruneResult{Cutoff: now.Add(-s.retention)}
	ids, err := s.users.ExpiredPreStudents(ctx, res.Cutoff)
	if err != nil {
		return nil, err
	}
	res.Expired = ids
	if dryRun || len(ids) == 0 {
		return res, nil
	}

	res.Deleted, err = s.users.DeleteByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	metrics.PrunedAccounts.Add(float64(res.Deleted))
	s.logger.Info("Pruned expired pre-students",
		zap.Time("cutoff", res.Cutoff),
		zap.Int64("deleted", res.Deleted),
	)
	return res, nil
}

// Run prunes every interval until ctx is done.
func (s *PruneService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		s.logger.Info("Pre-student pruning disabled")
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if _, err := s.Prune(ctx, now, false); err != nil {
				s.logger.Error("Pre-student prune failed", zap.Error(err))
			}
		}
	}
}
