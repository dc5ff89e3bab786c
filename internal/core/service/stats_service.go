package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldtrack/dashboard-api/internal/api/metrics"
	"github.com/fieldtrack/dashboard-api/internal/core/domain"
	"github.com/fieldtrack/dashboard-api/internal/core/ports"
)

// StatsService computes the dashboard overview: live counts summed across
// the caller's accessible sectors, plus evolution deltas against the latest
// recorded snapshot.
type StatsService struct {
	tickets   ports.TicketRepository
	shipments ports.ShipmentRepository
	snapshots ports.SnapshotRepository
	log       zerolog.Logger
}

func NewStatsService(
	tickets ports.TicketRepository,
	shipments ports.ShipmentRepository,
	snapshots ports.SnapshotRepository,
	log zerolog.Logger,
) *StatsService {
	return &StatsService{tickets: tickets, shipments: shipments, snapshots: snapshots, log: log}
}

// Overview returns live counts and per-metric deltas. A failed snapshot read
// degrades to "no baseline" (delta 0) rather than failing the dashboard.
func (s *StatsService) Overview(ctx context.Context, sectors []string) (*ports.Overview, error) {
	liveTickets := s.sumCounts(ctx, "tickets", sectors, s.tickets.CountBySector)
	liveShipments := s.sumCounts(ctx, "shipments", sectors, s.shipments.CountBySector)
	liveClients := s.countClients(ctx, sectors)

	snap, err := s.snapshots.Latest(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("latest snapshot read failed")
		snap = nil
	}

	var ticketBase, shipmentBase, clientBase *int64
	ov := &ports.Overview{}
	if snap != nil {
		ticketBase = &snap.TicketCount
		shipmentBase = &snap.ShipmentCount
		clientBase = &snap.ClientCount
		ts := snap.Timestamp
		ov.SnapshotAt = &ts
	}

	ov.Tickets = ports.Metric{Live: liveTickets, Delta: computeDelta(liveTickets, ticketBase)}
	ov.Shipments = ports.Metric{Live: liveShipments, Delta: computeDelta(liveShipments, shipmentBase)}
	ov.Clients = ports.Metric{Live: liveClients, Delta: computeDelta(liveClients, clientBase)}
	return ov, nil
}

// RecordSnapshot persists today's aggregates over the given sectors. All
// three counts must be computable; a snapshot with made-up figures would
// poison every later delta.
func (s *StatsService) RecordSnapshot(ctx context.Context, sectors []string) (*domain.StatsSnapshot, error) {
	liveTickets := s.sumCounts(ctx, "tickets", sectors, s.tickets.CountBySector)
	liveShipments := s.sumCounts(ctx, "shipments", sectors, s.shipments.CountBySector)
	liveClients := s.countClients(ctx, sectors)
	if liveTickets == nil || liveShipments == nil || liveClients == nil {
		return nil, fmt.Errorf("record snapshot: live counts unavailable")
	}

	now := time.Now().UTC()
	snap := &domain.StatsSnapshot{
		ID:            domain.PeriodKey(now),
		Timestamp:     now,
		TicketCount:   *liveTickets,
		ShipmentCount: *liveShipments,
		ClientCount:   *liveClients,
	}
	if err := s.snapshots.Insert(ctx, snap); err != nil {
		return nil, fmt.Errorf("record snapshot: %w", err)
	}

	metrics.SnapshotsRecordedTotal.Inc()
	s.log.Info().
		Str("period", snap.ID).
		Int64("tickets", snap.TicketCount).
		Int64("shipments", snap.ShipmentCount).
		Int64("clients", snap.ClientCount).
		Msg("snapshot recorded")
	return snap, nil
}

// computeDelta applies the evolution convention. With no live value the
// delta is unknowable (nil). With a live value but no baseline the delta is
// 0: "no baseline" renders as "no change", not as unknown.
func computeDelta(live, baseline *int64) *int64 {
	if live == nil {
		return nil
	}
	d := int64(0)
	if baseline != nil {
		d = *live - *baseline
	}
	return &d
}

// sumCounts issues one server-side count per sector in parallel and sums the
// successes. A failing sector is logged and skipped; when every sector of a
// non-empty list fails the total is unknowable and nil is returned.
func (s *StatsService) sumCounts(
	ctx context.Context,
	entity string,
	sectors []string,
	count func(context.Context, string) (int64, error),
) *int64 {
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int64
		ok    int
	)
	for _, sector := range sectors {
		wg.Add(1)
		go func(sector string) {
			defer wg.Done()
			n, err := count(ctx, sector)
			if err != nil {
				metrics.SectorReadFailuresTotal.WithLabelValues(entity, sector).Inc()
				s.log.Warn().Err(err).Str("entity", entity).Str("sector", sector).Msg("sector count failed")
				return
			}
			mu.Lock()
			total += n
			ok++
			mu.Unlock()
		}(sector)
	}
	wg.Wait()

	if len(sectors) > 0 && ok == 0 {
		return nil
	}
	return &total
}

// countClients computes the number of distinct client identities across all
// accessible shipment sectors. The "unknown" bucket is not a client and is
// excluded from the figure.
func (s *StatsService) countClients(ctx context.Context, sectors []string) *int64 {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		keys = make(map[string]struct{})
		ok   int
	)
	for _, sector := range sectors {
		wg.Add(1)
		go func(sector string) {
			defer wg.Done()
			shipments, err := s.shipments.AllBySector(ctx, sector)
			if err != nil {
				metrics.SectorReadFailuresTotal.WithLabelValues("shipments", sector).Inc()
				s.log.Warn().Err(err).Str("sector", sector).Msg("sector client scan failed")
				return
			}
			mu.Lock()
			for _, sh := range shipments {
				if key := sh.ClientKey(); key != domain.UnknownClientKey {
					keys[key] = struct{}{}
				}
			}
			ok++
			mu.Unlock()
		}(sector)
	}
	wg.Wait()

	if len(sectors) > 0 && ok == 0 {
		return nil
	}
	n := int64(len(keys))
	return &n
}
