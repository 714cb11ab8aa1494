package tarkovdev

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/errgroup"

	"github.com/raidledger/raidledger/internal/domain/catalog"
)

const (
	datasetTasks    = "tasks"
	datasetStations = "hideoutStations"
	datasetWiki     = "hideoutWiki"

	DefaultTTL = 24 * time.Hour
	// staleRetry bounds how often a failing upstream is retried while a
	// fallback copy is being served.
	staleRetry = 5 * time.Minute
	memorySize = 8
)

type Config struct {
	Endpoint string
	WikiURL  string
	CacheDir string
	TTL      time.Duration
	Timeout  time.Duration
}

type memoryEntry struct {
	value   any
	expires time.Time
}

// Provider serves catalog snapshots. Each dataset is looked up in order: a
// fresh local file, the upstream API, the stale local file and finally the
// mirror. Parsed snapshots are kept in memory until they expire.
type Provider struct {
	client  *Client
	cache   *FileCache
	mirror  Mirror
	memory  *lru.Cache
	ttl     time.Duration
	wikiURL string
	now     func() time.Time

	mu sync.Mutex
}

// NewProvider creates a provider. mirror may be nil.
func NewProvider(cfg Config, mirror Mirror) *Provider {
	memory, _ := lru.New(memorySize)
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Provider{
		client:  NewClient(cfg.Endpoint, cfg.Timeout),
		cache:   NewFileCache(cfg.CacheDir),
		mirror:  mirror,
		memory:  memory,
		ttl:     ttl,
		wikiURL: cfg.WikiURL,
		now:     time.Now,
	}
}

type loaded struct {
	data      []byte
	fetchedAt time.Time
	stale     bool
}

// Snapshot returns the current catalog. It fails with ErrDataUnavailable only
// when neither the API nor any fallback copy can be read.
func (p *Provider) Snapshot(ctx context.Context) (*catalog.Snapshot, error) {
	if snap, ok := p.fromMemory("snapshot"); ok {
		return snap.(*catalog.Snapshot), nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if snap, ok := p.fromMemory("snapshot"); ok {
		return snap.(*catalog.Snapshot), nil
	}
	return p.loadSnapshot(ctx, false)
}

// Refresh refetches every dataset from the API regardless of cache age.
func (p *Provider) Refresh(ctx context.Context) (*catalog.Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadSnapshot(ctx, true)
}

func (p *Provider) loadSnapshot(ctx context.Context, force bool) (*catalog.Snapshot, error) {
	var tasks, stations loaded

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = p.load(gctx, datasetTasks, p.client.FetchTasks, force)
		return err
	})
	g.Go(func() error {
		var err error
		stations, err = p.load(gctx, datasetStations, p.client.FetchStations, force)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var rawTasks []catalog.RawTask
	if err := json.Unmarshal(tasks.data, &rawTasks); err != nil {
		return nil, fmt.Errorf("%w: decode tasks: %v", ErrDataUnavailable, err)
	}
	var rawStations []catalog.RawStation
	if err := json.Unmarshal(stations.data, &rawStations); err != nil {
		return nil, fmt.Errorf("%w: decode stations: %v", ErrDataUnavailable, err)
	}

	quests, taskSkips := catalog.ParseTasks(rawTasks)
	parsedStations, stationSkips := catalog.ParseStations(rawStations)

	fetchedAt := tasks.fetchedAt
	if stations.fetchedAt.Before(fetchedAt) {
		fetchedAt = stations.fetchedAt
	}
	snap := catalog.NewSnapshot(quests, parsedStations, fetchedAt)
	snap.Skips = append(taskSkips, stationSkips...)
	snap.Stale = tasks.stale || stations.stale

	if len(snap.Skips) > 0 {
		slog.Warn("Catalog records skipped",
			slog.String("type", "cat"),
			slog.Int("count", len(snap.Skips)),
			slog.String("first", snap.Skips[0].String()),
		)
	}
	for _, cycle := range catalog.Cycles(quests) {
		slog.Warn("Quest prerequisite cycle",
			slog.String("type", "cat"),
			slog.Any("quests", cycle),
		)
	}

	expires := fetchedAt.Add(p.ttl)
	if snap.Stale || !expires.After(p.now()) {
		expires = p.now().Add(staleRetry)
	}
	p.memory.Add("snapshot", memoryEntry{value: snap, expires: expires})

	slog.Info("Catalog loaded",
		slog.String("type", "cat"),
		slog.Int("quests", len(quests)),
		slog.Int("stations", len(parsedStations)),
		slog.Bool("stale", snap.Stale),
		slog.Time("fetched_at", fetchedAt),
	)
	return snap, nil
}

// HideoutWiki returns the data scraped from the hideout wiki page, with the
// same caching and fallback rules as the API datasets.
func (p *Provider) HideoutWiki(ctx context.Context) (*HideoutWiki, error) {
	if w, ok := p.fromMemory("wiki"); ok {
		return w.(*HideoutWiki), nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if w, ok := p.fromMemory("wiki"); ok {
		return w.(*HideoutWiki), nil
	}

	fetch := func(ctx context.Context) ([]byte, error) {
		return p.client.FetchHideoutWiki(ctx, p.wikiURL)
	}
	res, err := p.load(ctx, datasetWiki, fetch, false)
	if err != nil {
		return nil, err
	}

	var wiki HideoutWiki
	if err := json.Unmarshal(res.data, &wiki); err != nil {
		return nil, fmt.Errorf("%w: decode wiki: %v", ErrDataUnavailable, err)
	}

	expires := res.fetchedAt.Add(p.ttl)
	if res.stale || !expires.After(p.now()) {
		expires = p.now().Add(staleRetry)
	}
	p.memory.Add("wiki", memoryEntry{value: &wiki, expires: expires})
	return &wiki, nil
}

// Invalidate drops the parsed snapshots held in memory.
func (p *Provider) Invalidate() {
	p.memory.Purge()
}

func (p *Provider) fromMemory(key string) (any, bool) {
	v, ok := p.memory.Get(key)
	if !ok {
		return nil, false
	}
	e, ok := v.(memoryEntry)
	if !ok || !p.now().Before(e.expires) {
		return nil, false
	}
	return e.value, true
}

func (p *Provider) load(ctx context.Context, name string, fetch func(context.Context) ([]byte, error), force bool) (loaded, error) {
	cached, modified, cacheErr := p.cache.Read(name)
	if cacheErr == nil && !force && p.now().Sub(modified) < p.ttl {
		return loaded{data: cached, fetchedAt: modified}, nil
	}

	start := time.Now()
	fresh, fetchErr := fetch(ctx)
	if fetchErr == nil {
		slog.Debug("Catalog dataset fetched",
			slog.String("type", "cat"),
			slog.String("dataset", name),
			slog.Int("bytes", len(fresh)),
			slog.Duration("took", time.Since(start)),
		)
		if err := p.cache.Write(name, fresh); err != nil {
			slog.Warn("Failed to write catalog cache",
				slog.String("type", "cat"),
				slog.String("dataset", name),
				slog.String("error", err.Error()),
			)
		}
		if p.mirror != nil {
			if err := p.mirror.Store(ctx, name, fresh); err != nil {
				slog.Warn("Failed to update catalog mirror",
					slog.String("type", "cat"),
					slog.String("dataset", name),
					slog.String("error", err.Error()),
				)
			}
		}
		return loaded{data: fresh, fetchedAt: p.now()}, nil
	}

	slog.Warn("Catalog fetch failed, using fallback",
		slog.String("type", "cat"),
		slog.String("dataset", name),
		slog.String("error", fetchErr.Error()),
	)

	if cacheErr == nil {
		return loaded{data: cached, fetchedAt: modified, stale: true}, nil
	}

	if p.mirror != nil {
		data, mirrored, err := p.mirror.Load(ctx, name)
		if err == nil {
			if werr := p.cache.Write(name, data); werr == nil && !mirrored.IsZero() {
				_ = p.cache.Touch(name, mirrored)
			}
			return loaded{data: data, fetchedAt: mirrored, stale: true}, nil
		}
		slog.Warn("Catalog mirror unavailable",
			slog.String("type", "cat"),
			slog.String("dataset", name),
			slog.String("error", err.Error()),
		)
	}

	return loaded{}, fmt.Errorf("%w: %s: %v", ErrDataUnavailable, name, fetchErr)
}
