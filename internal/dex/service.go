package dex

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"pokedex-service/internal/cache"
	"pokedex-service/internal/pokeapi"
)

// DefaultTTL is the cache window for all keys.
const DefaultTTL = 5 * time.Minute

// fanOutLimit bounds concurrent per-item upstream fetches for one page.
const fanOutLimit = 8

// Service is the read-through aggregation layer: it turns the upstream's
// paginated listing into a searchable, sortable, paginated local view with
// per-key time-boxed caching.
type Service struct {
	client pokeapi.Client
	store  cache.Store
	ttl    time.Duration
	logger *zap.Logger
	flight singleflight.Group
}

// NewService creates a Service. The cache store is injected so each logical
// session (and each test) owns its own store.
func NewService(client pokeapi.Client, store cache.Store, ttl time.Duration, logger *zap.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client: client,
		store:  store,
		ttl:    ttl,
		logger: logger.Named("dex"),
	}
}

// ListIndex applies q to the cached full index and resolves the resulting
// window to summary records.
func (s *Service) ListIndex(ctx context.Context, q Query) (*PageResult, error) {
	entries, err := s.index(ctx)
	if err != nil {
		return nil, err
	}

	window, pg := applyQuery(entries, q)

	items, err := s.resolveEntries(ctx, window)
	if err != nil {
		return nil, err
	}

	return &PageResult{Results: items, Pagination: pg}, nil
}

// ListByNumbers resolves a caller-supplied number sequence to summary
// records. Numbers are used directly as upstream detail keys and the result
// order mirrors the requested order, not ascending numeric order. An empty
// sequence yields an empty result, not an error.
func (s *Service) ListByNumbers(ctx context.Context, numbers []int, limit, offset int) (*PageResult, error) {
	limit, offset = clampPage(limit, offset)

	if len(numbers) == 0 {
		return &PageResult{
			Results:    []SummaryItem{},
			Pagination: Pagination{Limit: limit, Offset: offset},
		}, nil
	}

	window, pg := windowNumbers(numbers, limit, offset)

	items, err := s.resolveNumbers(ctx, window)
	if err != nil {
		return nil, err
	}

	return &PageResult{Results: items, Pagination: pg}, nil
}

// GetDetail returns the enriched record for one id. A missing primary
// record propagates as pokeapi.ErrNotFound; a missing species record only
// degrades the enriched fields.
func (s *Service) GetDetail(ctx context.Context, id int) (*DetailItem, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	key := cache.KeyFullDetail(id)
	if raw, ok, err := s.store.Get(ctx, key); err == nil && ok {
		var cached DetailItem
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
		s.logger.Warn("corrupt cached detail, refetching", zap.String("key", key))
	}

	p, err := s.client.GetPokemon(ctx, strconv.Itoa(id))
	if err != nil {
		return nil, err
	}

	detail := detailFromPokemon(p, s.resolveSpecies(ctx, id, p))

	if raw, err := json.Marshal(detail); err == nil {
		if err := s.store.Set(ctx, key, raw, s.ttl); err != nil {
			s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		}
	}

	return detail, nil
}

// index returns the full IndexEntry list, read through the cache. Cold
// misses on the index key are coalesced into a single in-flight upstream
// call shared by all waiters.
func (s *Service) index(ctx context.Context) ([]IndexEntry, error) {
	if raw, ok, err := s.store.Get(ctx, cache.KeyIndex); err == nil && ok {
		var entries []IndexEntry
		if err := json.Unmarshal(raw, &entries); err == nil {
			return entries, nil
		}
		s.logger.Warn("corrupt cached index, refetching")
	}

	v, err, _ := s.flight.Do(cache.KeyIndex, func() (any, error) {
		return s.fetchIndex(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]IndexEntry), nil
}

// fetchIndex fetches the upstream listing and assigns 1-based positional
// numbers. An empty result is never cached, so the next request retries.
func (s *Service) fetchIndex(ctx context.Context) ([]IndexEntry, error) {
	resources, err := s.client.ListPokemon(ctx, 0)
	if err != nil {
		return nil, err
	}

	entries := make([]IndexEntry, len(resources))
	for i, res := range resources {
		entries[i] = IndexEntry{
			Name:      res.Name,
			Number:    i + 1,
			SourceRef: res.URL,
		}
	}

	if len(entries) > 0 {
		if raw, err := json.Marshal(entries); err == nil {
			if err := s.store.Set(ctx, cache.KeyIndex, raw, s.ttl); err != nil {
				s.logger.Warn("cache set failed", zap.String("key", cache.KeyIndex), zap.Error(err))
			}
		}
	}

	s.logger.Info("index refreshed", zap.Int("entries", len(entries)))
	return entries, nil
}

// resolveEntries fans out summary resolution for one window and joins the
// results positionally, so output order matches the window order
// regardless of completion order.
func (s *Service) resolveEntries(ctx context.Context, window []IndexEntry) ([]SummaryItem, error) {
	items := make([]SummaryItem, len(window))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)

	for i, entry := range window {
		i, entry := i, entry
		g.Go(func() error {
			item, err := s.summary(ctx, entry.Name)
			if err != nil {
				return err
			}
			item.Number = entry.Number
			items[i] = *item
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) resolveNumbers(ctx context.Context, window []int) ([]SummaryItem, error) {
	items := make([]SummaryItem, len(window))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)

	for i, number := range window {
		i, number := i, number
		g.Go(func() error {
			item, err := s.summary(ctx, strconv.Itoa(number))
			if err != nil {
				return err
			}
			item.Number = number
			items[i] = *item
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

// summary returns one summary record, read through its per-key cache entry.
func (s *Service) summary(ctx context.Context, nameOrID string) (*SummaryItem, error) {
	key := cache.KeyDetail(nameOrID)
	if raw, ok, err := s.store.Get(ctx, key); err == nil && ok {
		var cached SummaryItem
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
		s.logger.Warn("corrupt cached summary, refetching", zap.String("key", key))
	}

	p, err := s.client.GetPokemon(ctx, nameOrID)
	if err != nil {
		return nil, err
	}

	item := summaryFromPokemon(p)

	if raw, err := json.Marshal(item); err == nil {
		if err := s.store.Set(ctx, key, raw, s.ttl); err != nil {
			s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		}
	}

	return &item, nil
}

// resolveSpecies tries the species endpoint at the primary record's id
// first. Alternate forms have no species record of their own and answer
// not-found; for those the redirect reference embedded in the primary
// record is followed instead. Failure by both paths degrades, it never
// aborts the request.
func (s *Service) resolveSpecies(ctx context.Context, id int, p *pokeapi.Pokemon) speciesResult {
	sp, err := s.client.GetSpecies(ctx, id)
	if err == nil {
		return speciesResult{ok: true, record: sp}
	}

	if errors.Is(err, pokeapi.ErrNotFound) && p.Species.URL != "" {
		sp, err = s.client.GetSpeciesByURL(ctx, p.Species.URL)
		if err == nil {
			return speciesResult{ok: true, record: sp}
		}
	}

	s.logger.Warn("species record unavailable, degrading",
		zap.Int("id", id),
		zap.Error(err),
	)
	return speciesResult{}
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
