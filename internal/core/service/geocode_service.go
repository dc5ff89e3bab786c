package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldtrack/dashboard-api/internal/api/metrics"
	"github.com/fieldtrack/dashboard-api/internal/core/domain"
	"github.com/fieldtrack/dashboard-api/internal/core/ports"
)

// GeocodeOrchestrator resolves batches of raw addresses to coordinates.
//
// Resolved coordinates and confirmed not-founds are memoized for the process
// lifetime; failed lookups are not, so transient errors are retried on the
// next batch. The in-flight registry guarantees a single concurrent external
// call per normalized address across all batches. A newer batch supersedes
// the previous one: its context is cancelled and its late completions are
// discarded instead of overwriting fresher state.
type GeocodeOrchestrator struct {
	cache    ports.GeocodeCache
	geocoder ports.Geocoder
	inflight *Inflight
	log      zerolog.Logger

	mu         sync.Mutex
	resolved   map[string]*domain.Coordinates // nil value = confirmed not-found
	generation uint64
	cancel     context.CancelFunc
	pending    int
}

func NewGeocodeOrchestrator(cache ports.GeocodeCache, geocoder ports.Geocoder, log zerolog.Logger) *GeocodeOrchestrator {
	return &GeocodeOrchestrator{
		cache:    cache,
		geocoder: geocoder,
		inflight: NewInflight(),
		log:      log,
		resolved: make(map[string]*domain.Coordinates),
	}
}

// batchState collects the per-batch outcome that must not leak into the
// orchestrator's long-lived result map: unrecoverable failures and the
// distinct error messages shown to the user.
type batchState struct {
	mu     sync.Mutex
	failed map[string]struct{}
	seen   map[string]struct{}
	msgs   []string
}

func newBatchState() *batchState {
	return &batchState{
		failed: make(map[string]struct{}),
		seen:   make(map[string]struct{}),
	}
}

// fail records key as unrecoverable for this batch. A non-empty msg is
// appended to the aggregate error string once, however many addresses
// produced it.
func (b *batchState) fail(key, msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failed[key] = struct{}{}
	if msg == "" {
		return
	}
	if _, dup := b.seen[msg]; dup {
		return
	}
	b.seen[msg] = struct{}{}
	b.msgs = append(b.msgs, msg)
}

func (b *batchState) errorMessage() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Join(b.msgs, ", ")
}

// Resolve blocks until every lookup of this batch completes or is superseded
// by a newer batch.
func (o *GeocodeOrchestrator) Resolve(ctx context.Context, addresses []string) (*ports.GeocodeResult, error) {
	// Normalize, drop empties, and dedupe while keeping the first raw
	// spelling per key: the external API is called with the raw string for
	// best provider-side matching.
	keys := make([]string, 0, len(addresses))
	raws := make(map[string]string, len(addresses))
	for _, raw := range addresses {
		key := domain.NormalizeAddress(raw)
		if key == "" {
			continue
		}
		if _, dup := raws[key]; dup {
			continue
		}
		raws[key] = raw
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return &ports.GeocodeResult{Coordinates: map[string]*domain.Coordinates{}}, nil
	}

	// Supersede the previous batch. Its outstanding lookups are cancelled
	// and their generation token keeps them from mutating the result map.
	o.mu.Lock()
	o.generation++
	gen := o.generation
	if o.cancel != nil {
		o.cancel()
	}
	batchCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel
	o.mu.Unlock()
	// All of this batch's goroutines are joined before return, so releasing
	// the batch context here is safe; a newer batch cancelling it again is
	// a no-op.
	defer cancel()

	batch := newBatchState()
	var wg sync.WaitGroup

	for _, key := range keys {
		o.mu.Lock()
		_, have := o.resolved[key]
		o.mu.Unlock()
		if have {
			continue
		}

		wg.Add(1)
		go func(key, raw string) {
			defer wg.Done()
			o.resolveKey(batchCtx, gen, key, raw, batch)
		}(key, raws[key])
	}

	wg.Wait()

	// Snapshot only the requested keys. A key this batch never got to
	// resolve (superseded mid-flight) is absent from the output entirely.
	out := make(map[string]*domain.Coordinates, len(keys))
	o.mu.Lock()
	for _, key := range keys {
		if coords, ok := o.resolved[key]; ok {
			out[key] = coords
		}
	}
	o.mu.Unlock()
	for key := range batch.failed {
		if _, ok := out[key]; !ok {
			out[key] = nil
		}
	}

	return &ports.GeocodeResult{Coordinates: out, ErrorMessage: batch.errorMessage()}, nil
}

// resolveKey drives one key to an outcome for this batch. When another batch
// already holds the key, it waits for that owner and re-checks: if the owner
// was superseded and stored nothing, this batch is the newest generation and
// performs the lookup itself rather than reporting a phantom failure.
func (o *GeocodeOrchestrator) resolveKey(ctx context.Context, gen uint64, key, raw string, batch *batchState) {
	for {
		o.mu.Lock()
		_, have := o.resolved[key]
		o.mu.Unlock()
		if have {
			return
		}

		token, acquired := o.inflight.TryAcquire(key)
		if !acquired {
			select {
			case <-token.Done():
				continue
			case <-ctx.Done():
				return
			}
		}

		o.trackStart()
		o.lookup(ctx, gen, key, raw, batch)
		o.trackEnd()
		o.inflight.Release(token)
		return
	}
}

// Busy reports whether any external lookup is outstanding.
func (o *GeocodeOrchestrator) Busy() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.pending > 0
}

func (o *GeocodeOrchestrator) trackStart() {
	o.mu.Lock()
	o.pending++
	o.mu.Unlock()
	metrics.GeocodeInFlight.Inc()
}

func (o *GeocodeOrchestrator) trackEnd() {
	o.mu.Lock()
	o.pending--
	o.mu.Unlock()
	metrics.GeocodeInFlight.Dec()
}

// lookup resolves one key: cache first, external API on miss. Outcomes land
// in the shared result map unless the batch was superseded in the meantime.
func (o *GeocodeOrchestrator) lookup(ctx context.Context, gen uint64, key, raw string, batch *batchState) {
	if entry, ok := o.cache.Get(ctx, key); ok {
		coords := entry.Coordinates
		o.store(gen, key, &coords)
		metrics.GeocodeLookupsTotal.WithLabelValues("cache_hit").Inc()
		return
	}

	start := time.Now()
	coords, err := o.geocoder.Geocode(ctx, raw)
	metrics.GeocodeLookupDuration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		// Persisting the fresh result is best effort: the coordinates are
		// returned to the caller even when the cache write fails.
		go func() {
			if putErr := o.cache.Put(context.WithoutCancel(ctx), key, coords); putErr != nil {
				o.log.Warn().Err(putErr).Str("key", key).Msg("geocode cache write failed")
			}
		}()
		c := coords
		o.store(gen, key, &c)
		metrics.GeocodeLookupsTotal.WithLabelValues("resolved").Inc()

	case errors.Is(err, domain.ErrGeocodeNoResults):
		// Confirmed not-found: rendered as null, never surfaced as an error.
		o.store(gen, key, nil)
		metrics.GeocodeLookupsTotal.WithLabelValues("not_found").Inc()

	case errors.Is(err, context.Canceled):
		// Superseded batch; drop silently so the address can be retried.
		metrics.GeocodeLookupsTotal.WithLabelValues("cancelled").Inc()

	default:
		batch.fail(key, classifyGeocodeError(err))
		o.log.Warn().Err(err).Str("address", raw).Msg("geocode lookup failed")
		metrics.GeocodeLookupsTotal.WithLabelValues("error").Inc()
	}
}

// store records a lookup outcome unless a newer batch has superseded gen;
// stale completions are discarded rather than applied.
func (o *GeocodeOrchestrator) store(gen uint64, key string, coords *domain.Coordinates) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.generation {
		return
	}
	o.resolved[key] = coords
}

// classifyGeocodeError maps a lookup failure to the short message shown
// inline next to otherwise-available map data.
func classifyGeocodeError(err error) string {
	switch {
	case errors.Is(err, domain.ErrGeocodeInvalidKey):
		return "invalid key"
	case errors.Is(err, domain.ErrGeocodeQuotaExceeded):
		return "quota exceeded"
	case errors.Is(err, domain.ErrGeocodeNoResponse):
		return "no response"
	default:
		return "geocoding failed"
	}
}
