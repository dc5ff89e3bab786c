package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/fieldtrack/dashboard-api/internal/api/metrics"
	"github.com/fieldtrack/dashboard-api/internal/core/domain"
	"github.com/fieldtrack/dashboard-api/internal/core/ports"
)

// ShipmentService builds the grouped shipment board: the full collection of
// the caller's accessible sectors is fetched into memory, filtered, and
// grouped by client identity.
type ShipmentService struct {
	repo ports.ShipmentRepository
	log  zerolog.Logger
}

func NewShipmentService(repo ports.ShipmentRepository, log zerolog.Logger) *ShipmentService {
	return &ShipmentService{repo: repo, log: log}
}

// Board fetches each accessible sector in parallel, tagging shipments with
// their source sector, then applies the display filters. The distinct sector
// values offered to the filter control always come from the unfiltered
// collection, so narrowing never hides the other options.
func (s *ShipmentService) Board(ctx context.Context, sectors []string, filter ports.BoardFilter) (*ports.BoardResult, error) {
	all := s.fetchAll(ctx, sectors)

	available := distinctSectors(all)
	filtered := filterShipments(all, filter)
	groups := groupByClient(filtered)

	return &ports.BoardResult{
		Groups:  groups,
		Sectors: available,
		Total:   len(filtered),
	}, nil
}

// fetchAll reads all accessible sectors concurrently and concatenates the
// results in accessible-sector order. A failing sector degrades to empty.
func (s *ShipmentService) fetchAll(ctx context.Context, sectors []string) []domain.Shipment {
	if len(sectors) == 0 {
		return nil
	}

	perSector := make([][]domain.Shipment, len(sectors))
	var wg sync.WaitGroup
	for i, sector := range sectors {
		wg.Add(1)
		go func(i int, sector string) {
			defer wg.Done()
			shipments, err := s.repo.AllBySector(ctx, sector)
			if err != nil {
				metrics.SectorReadFailuresTotal.WithLabelValues("shipments", sector).Inc()
				s.log.Warn().Err(err).Str("sector", sector).Msg("sector shipment read failed")
				return
			}
			for j := range shipments {
				shipments[j].Sector = sector
			}
			perSector[i] = shipments
		}(i, sector)
	}
	wg.Wait()

	var all []domain.Shipment
	for _, shipments := range perSector {
		all = append(all, shipments...)
	}
	return all
}

// filterShipments applies the sector filter first, then the trimmed
// case-insensitive text filter over client name OR client code.
func filterShipments(all []domain.Shipment, filter ports.BoardFilter) []domain.Shipment {
	out := all
	if filter.Sector != "" {
		out = make([]domain.Shipment, 0, len(all))
		for _, sh := range all {
			if sh.Sector == filter.Sector {
				out = append(out, sh)
			}
		}
	}

	q := strings.ToLower(strings.TrimSpace(filter.Search))
	if q == "" {
		return out
	}

	matched := make([]domain.Shipment, 0, len(out))
	for _, sh := range out {
		if strings.Contains(strings.ToLower(sh.ClientName), q) ||
			strings.Contains(strings.ToLower(sh.ClientCode), q) {
			matched = append(matched, sh)
		}
	}
	return matched
}

// groupByClient buckets shipments by their client identity key, preserving
// first-seen member order within each group, and orders the groups
// alphabetically by key for deterministic display.
func groupByClient(shipments []domain.Shipment) []ports.ClientGroup {
	index := make(map[string]int, len(shipments))
	groups := make([]ports.ClientGroup, 0, len(shipments))

	for _, sh := range shipments {
		key := sh.ClientKey()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, ports.ClientGroup{Key: key})
		}
		groups[i].Shipments = append(groups[i].Shipments, sh)
	}

	sort.Slice(groups, func(a, b int) bool { return groups[a].Key < groups[b].Key })
	return groups
}

// distinctSectors lists the sector values present in the collection, sorted.
func distinctSectors(shipments []domain.Shipment) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, sh := range shipments {
		if _, ok := seen[sh.Sector]; ok {
			continue
		}
		seen[sh.Sector] = struct{}{}
		out = append(out, sh.Sector)
	}
	sort.Strings(out)
	return out
}
