package notify

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Deduper tracks transactions that were already announced, so the return
// handler and the status poller never double-announce the same payment.
type Deduper interface {
	Seen(ctx context.Context, transID string) (bool, error)
}

type redisDeduper struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func (d *redisDeduper) Seen(ctx context.Context, transID string) (bool, error) {
	ok, err := d.client.SetNX(ctx, d.prefix+":"+transID, "1", d.ttl).Result()
	if err != nil {
		return false, err
	}
	// false => key existed => already announced
	return !ok, nil
}

type memoryDeduper struct {
	mu     sync.Mutex
	seen   map[string]time.Time
	ttl    time.Duration
	nextGC time.Time
}

func newMemoryDeduper(ttl time.Duration) *memoryDeduper {
	now := time.Now()
	return &memoryDeduper{
		seen:   make(map[string]time.Time),
		ttl:    ttl,
		nextGC: now.Add(ttl),
	}
}

func (d *memoryDeduper) Seen(_ context.Context, transID string) (bool, error) {
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if exp, ok := d.seen[transID]; ok && exp.After(now) {
		return true, nil
	}

	d.seen[transID] = now.Add(d.ttl)
	if now.After(d.nextGC) {
		for id, exp := range d.seen {
			if exp.Before(now) {
				delete(d.seen, id)
			}
		}
		d.nextGC = now.Add(d.ttl)
	}

	return false, nil
}

// NewDeduper builds a Redis deduper and falls back to in-memory on
// failure. The returned error reports the fallback; the deduper is usable
// either way.
func NewDeduper(addr, pass string, db int, ttl time.Duration) (Deduper, error) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if addr == "" {
		return newMemoryDeduper(ttl), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pass,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return newMemoryDeduper(ttl), err
	}

	return &redisDeduper{
		client: client,
		prefix: "pay:notified",
		ttl:    ttl,
	}, nil
}
