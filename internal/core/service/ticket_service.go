package service

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/fieldtrack/dashboard-api/internal/api/metrics"
	"github.com/fieldtrack/dashboard-api/internal/core/domain"
	"github.com/fieldtrack/dashboard-api/internal/core/ports"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

// TicketService merges bounded per-sector reads into a single recent-tickets
// view. Each sector read is independent and may observe a different snapshot
// in time; no read-after-write consistency is assumed across partitions.
type TicketService struct {
	repo ports.TicketRepository
	log  zerolog.Logger
}

func NewTicketService(repo ports.TicketRepository, log zerolog.Logger) *TicketService {
	return &TicketService{repo: repo, log: log}
}

// Recent issues one bounded read per accessible sector in parallel, tags
// every ticket with its source sector, re-sorts the merged set by created_at
// descending (per-sector bounding does not guarantee global order), and
// truncates to limit. A failing sector contributes an empty slice instead of
// failing the whole call.
func (s *TicketService) Recent(ctx context.Context, sectors []string, limit int) ([]domain.Ticket, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	if len(sectors) == 0 {
		return []domain.Ticket{}, nil
	}

	perSector := make([][]domain.Ticket, len(sectors))
	var wg sync.WaitGroup
	for i, sector := range sectors {
		wg.Add(1)
		go func(i int, sector string) {
			defer wg.Done()
			tickets, err := s.repo.RecentBySector(ctx, sector, limit)
			if err != nil {
				metrics.SectorReadFailuresTotal.WithLabelValues("tickets", sector).Inc()
				s.log.Warn().Err(err).Str("sector", sector).Msg("sector ticket read failed")
				return
			}
			for j := range tickets {
				tickets[j].Sector = sector
			}
			perSector[i] = tickets
		}(i, sector)
	}
	wg.Wait()

	merged := make([]domain.Ticket, 0, len(sectors)*limit)
	for _, tickets := range perSector {
		merged = append(merged, tickets...)
	}

	// Ties on the timestamp are broken by ID descending so the merged order
	// is deterministic across calls.
	sort.SliceStable(merged, func(a, b int) bool {
		if !merged[a].CreatedAt.Equal(merged[b].CreatedAt) {
			return merged[a].CreatedAt.After(merged[b].CreatedAt)
		}
		return merged[a].ID > merged[b].ID
	})

	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}
