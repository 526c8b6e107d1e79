// Package cache wraps a search provider with a two-tier cache: L1 in memory, L2 Redis.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Vizlook/youtube-search/internal/config"
	"github.com/Vizlook/youtube-search/internal/core/model"
	"github.com/Vizlook/youtube-search/internal/core/retrieval"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// Provider caches successful provider responses. Errors are never cached.
type Provider struct {
	next       retrieval.Provider
	l1         sync.Map // key -> *entry
	rdb        *redis.Client
	ttl        time.Duration
	maxEntries int
	log        logrus.FieldLogger

	hits   atomic.Int64
	misses atomic.Int64
}

var _ retrieval.Provider = (*Provider)(nil)

// New wraps next. An empty or unreachable redis url leaves L2 disabled.
func New(ctx context.Context, next retrieval.Provider, cfg config.CacheConfig, log logrus.FieldLogger) *Provider {
	ttl := cfg.TTL.Duration
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	p := &Provider{next: next, ttl: ttl, maxEntries: cfg.MaxEntries, log: log}

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.WithError(err).Warn("cache: invalid redis url, L2 disabled")
		} else {
			rdb := redis.NewClient(opts)
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()
			if err := rdb.Ping(pingCtx).Err(); err != nil {
				log.WithError(err).Warn("cache: redis unreachable, L2 disabled")
				_ = rdb.Close()
			} else {
				p.rdb = rdb
				log.WithField("addr", opts.Addr).Info("cache: L2 redis connected")
			}
		}
	}

	log.WithFields(logrus.Fields{
		"ttl":         ttl.String(),
		"redis":       p.rdb != nil,
		"max_entries": cfg.MaxEntries,
	}).Info("cache: initialized")
	return p
}

// Key is a deterministic digest of everything that shapes a provider response.
func Key(q model.ProviderQuery) string {
	joined := strings.Join([]string{
		q.Query,
		q.ContainSpokenText,
		q.ContainScreenText,
		strconv.Itoa(q.MaxResults),
		strconv.FormatBool(q.IncludeTranscription),
		strconv.FormatBool(q.IncludeSummary),
	}, "|")
	hash := sha256.Sum256([]byte(joined))
	return fmt.Sprintf("yts:%x", hash[:12])
}

func (p *Provider) Search(ctx context.Context, q model.ProviderQuery) ([]model.ResultItem, error) {
	key := Key(q)
	if items, ok := p.get(ctx, key); ok {
		p.hits.Add(1)
		return items, nil
	}
	p.misses.Add(1)

	items, err := p.next.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	p.set(ctx, key, items)
	return items, nil
}

// Stats returns hit and miss counters.
func (p *Provider) Stats() (hits, misses int64) {
	return p.hits.Load(), p.misses.Load()
}

func (p *Provider) Close() error {
	if p.rdb != nil {
		return p.rdb.Close()
	}
	return nil
}

func (p *Provider) get(ctx context.Context, key string) ([]model.ResultItem, bool) {
	if val, ok := p.l1.Load(key); ok {
		e := val.(*entry)
		if time.Now().Before(e.expiresAt) {
			var items []model.ResultItem
			if json.Unmarshal(e.data, &items) == nil {
				p.log.WithField("key", key).Debug("cache: L1 hit")
				return items, true
			}
		}
		p.l1.Delete(key)
	}

	if p.rdb != nil {
		data, err := p.rdb.Get(ctx, key).Bytes()
		if err == nil {
			var items []model.ResultItem
			if json.Unmarshal(data, &items) == nil {
				p.log.WithField("key", key).Debug("cache: L2 hit")
				p.l1.Store(key, &entry{data: data, expiresAt: time.Now().Add(p.ttl)})
				return items, true
			}
		}
	}
	return nil, false
}

func (p *Provider) set(ctx context.Context, key string, items []model.ResultItem) {
	data, err := json.Marshal(items)
	if err != nil {
		return
	}

	p.evictIfNeeded()
	p.l1.Store(key, &entry{data: data, expiresAt: time.Now().Add(p.ttl)})

	if p.rdb != nil {
		if err := p.rdb.Set(ctx, key, data, p.ttl).Err(); err != nil {
			p.log.WithError(err).Debug("cache: L2 set failed")
		}
	}
}

// evictIfNeeded drops expired entries, then the ones closest to expiry, until L1 has room.
func (p *Provider) evictIfNeeded() {
	if p.maxEntries <= 0 {
		return
	}

	count := 0
	p.l1.Range(func(_, _ any) bool {
		count++
		return true
	})
	if count < p.maxEntries {
		return
	}

	now := time.Now()
	p.l1.Range(func(key, val any) bool {
		if e, ok := val.(*entry); ok && now.After(e.expiresAt) {
			p.l1.Delete(key)
			count--
		}
		return true
	})

	for count >= p.maxEntries {
		var oldestKey any
		var oldestAt time.Time
		p.l1.Range(func(key, val any) bool {
			e := val.(*entry)
			if oldestKey == nil || e.expiresAt.Before(oldestAt) {
				oldestKey, oldestAt = key, e.expiresAt
			}
			return true
		})
		if oldestKey == nil {
			return
		}
		p.l1.Delete(oldestKey)
		count--
	}
}
