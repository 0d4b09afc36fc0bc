package cache

import (
	"context"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestCache(capacity int) (*LRUCache, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRUCache(capacity)
	c.now = clock.now
	return c, clock
}

func TestLRUCache(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		capacity int
		actions  func(c *LRUCache, clock *fakeClock, t *testing.T)
	}{
		{
			name:     "set and get within TTL",
			capacity: 2,
			actions: func(c *LRUCache, _ *fakeClock, t *testing.T) {
				c.Set(ctx, "a", []byte("1"), time.Second)
				if v, ok := c.Get(ctx, "a"); !ok || string(v) != "1" {
					t.Errorf("expected value=1, got=%v, ok=%v", v, ok)
				}
			},
		},
		{
			name:     "get after expiration",
			capacity: 2,
			actions: func(c *LRUCache, clock *fakeClock, t *testing.T) {
				c.Set(ctx, "a", []byte("1"), 50*time.Millisecond)
				clock.advance(60 * time.Millisecond)
				if _, ok := c.Get(ctx, "a"); ok {
					t.Errorf("expected key to be expired")
				}
			},
		},
		{
			name:     "entries keep their own TTL",
			capacity: 3,
			actions: func(c *LRUCache, clock *fakeClock, t *testing.T) {
				c.Set(ctx, "area", []byte("1"), 24*time.Hour)
				c.Set(ctx, "rates", []byte("2"), 5*time.Minute)
				clock.advance(6 * time.Minute)
				if _, ok := c.Get(ctx, "rates"); ok {
					t.Errorf("expected rates to expire")
				}
				if v, ok := c.Get(ctx, "area"); !ok || string(v) != "1" {
					t.Errorf("expected area to survive, got %v", v)
				}
			},
		},
		{
			name:     "evict oldest when over capacity",
			capacity: 2,
			actions: func(c *LRUCache, _ *fakeClock, t *testing.T) {
				c.Set(ctx, "a", []byte("1"), time.Second)
				c.Set(ctx, "b", []byte("2"), time.Second)
				c.Set(ctx, "c", []byte("3"), time.Second)
				if _, ok := c.Get(ctx, "a"); ok {
					t.Errorf("expected key 'a' to be evicted")
				}
				if v, ok := c.Get(ctx, "b"); !ok || string(v) != "2" {
					t.Errorf("expected b=2, got %v", v)
				}
				if v, ok := c.Get(ctx, "c"); !ok || string(v) != "3" {
					t.Errorf("expected c=3, got %v", v)
				}
			},
		},
		{
			name:     "update value resets TTL",
			capacity: 2,
			actions: func(c *LRUCache, clock *fakeClock, t *testing.T) {
				c.Set(ctx, "a", []byte("1"), 50*time.Millisecond)
				clock.advance(30 * time.Millisecond)
				c.Set(ctx, "a", []byte("2"), 50*time.Millisecond)
				clock.advance(30 * time.Millisecond)
				if v, ok := c.Get(ctx, "a"); !ok || string(v) != "2" {
					t.Errorf("expected updated value=2, got=%v", v)
				}
			},
		},
		{
			name:     "delete removes key",
			capacity: 2,
			actions: func(c *LRUCache, _ *fakeClock, t *testing.T) {
				c.Set(ctx, "a", []byte("1"), time.Second)
				c.Delete(ctx, "a")
				if _, ok := c.Get(ctx, "a"); ok {
					t.Errorf("expected key to be deleted")
				}
				if c.Size() != 0 {
					t.Errorf("expected empty cache, got %d", c.Size())
				}
			},
		},
		{
			name:     "cleanup removes expired",
			capacity: 2,
			actions: func(c *LRUCache, clock *fakeClock, t *testing.T) {
				c.Set(ctx, "a", []byte("1"), 50*time.Millisecond)
				c.Set(ctx, "b", []byte("2"), time.Hour)
				clock.advance(60 * time.Millisecond)

				c.cleanup()

				if c.Size() != 1 {
					t.Errorf("expected cleanup to leave one key, got %d", c.Size())
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, clock := newTestCache(tt.capacity)
			tt.actions(c, clock, t)
		})
	}
}
