package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldtrack/dashboard-api/internal/core/domain"
	"github.com/fieldtrack/dashboard-api/internal/core/ports"
)

// SnapshotScheduler records the daily aggregate snapshot shortly after
// midnight UTC, giving the evolution deltas a fresh baseline each day.
type SnapshotScheduler struct {
	stats   ports.StatsService
	sectors []string
	log     zerolog.Logger
}

func NewSnapshotScheduler(stats ports.StatsService, sectors []string, log zerolog.Logger) *SnapshotScheduler {
	return &SnapshotScheduler{stats: stats, sectors: sectors, log: log}
}

// Start launches the scheduler goroutine. It stops when ctx is cancelled.
func (s *SnapshotScheduler) Start(ctx context.Context) {
	if len(s.sectors) == 0 {
		s.log.Warn().Msg("snapshot scheduler disabled: no sectors configured")
		return
	}
	go s.run(ctx)
}

func (s *SnapshotScheduler) run(ctx context.Context) {
	for {
		timer := time.NewTimer(time.Until(nextMidnightUTC(time.Now())))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if _, err := s.stats.RecordSnapshot(ctx, s.sectors); err != nil {
			if errors.Is(err, domain.ErrSnapshotExists) {
				s.log.Debug().Msg("snapshot already recorded for period")
				continue
			}
			s.log.Error().Err(err).Msg("scheduled snapshot failed")
		}
	}
}

func nextMidnightUTC(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
}
