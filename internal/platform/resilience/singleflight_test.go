package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlightRunsOnce(t *testing.T) {
	var g SingleFlight
	var counter int32

	const workers = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			val, err, _ := g.Do("season-2025", func() (any, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "fetched", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
			if val != "fetched" {
				t.Errorf("val = %v, want fetched", val)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestSingleFlightDistinctKeys(t *testing.T) {
	var g SingleFlight
	var counter int32

	var wg sync.WaitGroup
	for _, key := range []string{"season-a", "season-b"} {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			_, _, _ = g.Do(key, func() (any, error) {
				atomic.AddInt32(&counter, 1)
				return nil, nil
			})
		}(key)
	}
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 2 {
		t.Fatalf("expected function to run per key, got %d", got)
	}
}
