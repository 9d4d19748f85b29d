package ratelimit

import (
	"sync"
	"testing"
	"time"
)

func TestKeyedRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name     string
		rps      float64
		burst    int
		calls    int
		wantPass int
	}{
		{
			name:     "burst allows initial requests",
			rps:      1,
			burst:    3,
			calls:    3,
			wantPass: 3,
		},
		{
			name:     "exceeding burst blocks",
			rps:      1,
			burst:    2,
			calls:    5,
			wantPass: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := New(tt.rps, tt.burst)
			defer rl.Stop()

			passed := 0
			for i := 0; i < tt.calls; i++ {
				if rl.Allow("test") {
					passed++
				}
			}

			if passed != tt.wantPass {
				t.Errorf("Allow() passed %d, want %d", passed, tt.wantPass)
			}
		})
	}
}

func TestKeyedRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := New(0.001, 1)
	defer rl.Stop()

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first request for key1 should pass")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("second request for key1 should be limited")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("key2 must have its own bucket")
	}
}

func TestKeyedRateLimiter_Refill(t *testing.T) {
	rl := New(1, 1)
	defer rl.Stop()

	current := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return current }

	if !rl.Allow("k") {
		t.Fatal("first request should pass")
	}
	if rl.Allow("k") {
		t.Fatal("bucket should be empty")
	}

	current = current.Add(1100 * time.Millisecond)
	if !rl.Allow("k") {
		t.Error("bucket should refill after one second")
	}
}

func TestKeyedRateLimiter_EvictsIdleKeys(t *testing.T) {
	rl := NewWithTTL(1, 1, time.Minute)
	defer rl.Stop()

	current := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return current }

	rl.Allow("old")
	current = current.Add(50 * time.Second)
	rl.Allow("fresh")

	current = current.Add(20 * time.Second)
	rl.evictIdle()

	if got := rl.Len(); got != 1 {
		t.Fatalf("expected 1 key after eviction, got %d", got)
	}
	rl.mu.Lock()
	_, ok := rl.limiters["fresh"]
	rl.mu.Unlock()
	if !ok {
		t.Error("recently used key must survive")
	}
}

func TestKeyedRateLimiter_PerMinute(t *testing.T) {
	rl := PerMinute(30, 2)
	defer rl.Stop()

	if rl.limit != 0.5 {
		t.Errorf("expected 0.5 rps, got %v", rl.limit)
	}
}

func TestKeyedRateLimiter_ConcurrentAccess(t *testing.T) {
	rl := New(1000, 1000)
	defer rl.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				rl.Allow("shared")
			}
		}()
	}
	wg.Wait()
}

func TestKeyedRateLimiter_StopIdempotent(t *testing.T) {
	rl := New(1, 1)
	rl.Stop()
	rl.Stop()
}
