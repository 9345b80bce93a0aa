// Package archiver sweeps accepted quotes whose contact window has
// elapsed and moves them to archived. Reads also archive lazily, the
// sweep just keeps listings honest between reads.
package archiver

import (
	"context"
	"log/slog"
	"time"

	"github.com/bventy/platform/internal/lib/sl"
)

// SweepInterval is how often the background sweep runs.
const SweepInterval = time.Hour

// Repository is the storage side of the sweep.
type Repository interface {
	ArchiveExpiredQuotes(ctx context.Context, now time.Time) (int64, error)
}

// Service runs the periodic archival sweep.
type Service struct {
	repo     Repository
	log      *slog.Logger
	interval time.Duration
	now      func() time.Time
}

// New creates an archiver Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		log:      log,
		interval: SweepInterval,
		now:      time.Now,
	}
}

// Run sweeps immediately, then every interval until the context is
// cancelled.
func (s *Service) Run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Service) sweep(ctx context.Context) {
	archived, err := s.repo.ArchiveExpiredQuotes(ctx, s.now().UTC())
	if err != nil {
		s.log.Error("quote archival sweep failed", sl.Err(err))
		return
	}
	if archived > 0 {
		s.log.Info("archived expired quotes", slog.Int64("count", archived))
	}
}
