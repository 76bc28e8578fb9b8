package exchange

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"skytraffic/internal/domain/airspace"

	"github.com/google/go-cmp/cmp"
)

func TestRequestTimesOutWithoutPublisher(t *testing.T) {
	ex := New(Config{Timeout: 30 * time.Millisecond})

	start := time.Now()
	snap, ok := ex.Request(context.Background())
	elapsed := time.Since(start)

	if ok {
		t.Fatalf("expected timeout, got snapshot with %d flights", snap.Len())
	}
	if elapsed < 30*time.Millisecond {
		t.Fatalf("returned before timeout: %s", elapsed)
	}
	if elapsed > time.Second {
		t.Fatalf("timeout not honoured: %s", elapsed)
	}
}

func TestPendingIsFalseWithoutRequests(t *testing.T) {
	ex := New(Config{})
	if ex.Pending() {
		t.Fatalf("expected no pending request")
	}
	if ex.Timeout() != DefaultTimeout {
		t.Fatalf("expected default timeout %s, got %s", DefaultTimeout, ex.Timeout())
	}
}

func TestRequestReceivesPublishedSnapshot(t *testing.T) {
	ex := New(Config{Timeout: time.Second})
	want := airspace.NewSnapshot(5, []airspace.Flight{
		{ID: "AB12", X: 1, Y: 2, Direction: airspace.DirectionNE},
		{ID: "CD345", X: 3, Y: 4, Direction: airspace.DirectionW},
	})

	type result struct {
		snap airspace.Snapshot
		ok   bool
	}
	done := make(chan result, 1)
	go func() {
		snap, ok := ex.Request(context.Background())
		done <- result{snap: snap, ok: ok}
	}()

	waitPending(t, ex)
	ex.Publish(want)

	got := <-done
	if !got.ok {
		t.Fatalf("expected snapshot, got timeout")
	}
	if diff := cmp.Diff(want, got.snap); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestIntentSignalsCoalesce(t *testing.T) {
	ex := New(Config{Timeout: 200 * time.Millisecond})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = ex.Request(context.Background())
		}()
	}

	waitPending(t, ex)
	time.Sleep(20 * time.Millisecond)
	ex.Publish(airspace.NewSnapshot(1, nil))
	wg.Wait()

	// At most one extra signal can be left behind by callers that raced the publication.
	ex.Pending()
	if ex.Pending() {
		t.Fatalf("expected intent signals to collapse into a single slot")
	}
}

func TestConcurrentRequestsAreServedOrTimeOut(t *testing.T) {
	const (
		callers = 50
		tick    = 15 * time.Millisecond
		timeout = 100 * time.Millisecond
	)
	ex := New(Config{Timeout: timeout})
	fleet := []airspace.Flight{
		{ID: "AA10", X: 0, Y: 0, Direction: airspace.DirectionE},
		{ID: "BB20", X: 1, Y: 1, Direction: airspace.DirectionS},
		{ID: "CC30", X: 2, Y: 2, Direction: airspace.DirectionSW},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		ticker := time.NewTicker(tick)
		defer ticker.Stop()
		var n uint64
		for {
			if ex.Pending() {
				ex.Publish(airspace.NewSnapshot(n, fleet))
			}
			n++
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		served int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			snap, ok := ex.Request(context.Background())
			if elapsed := time.Since(start); elapsed > timeout+tick+200*time.Millisecond {
				t.Errorf("request took %s", elapsed)
			}
			if !ok {
				return
			}
			if snap.Len() != len(fleet) {
				t.Errorf("expected %d flights, got %d", len(fleet), snap.Len())
			}
			mu.Lock()
			served++
			mu.Unlock()
		}()
	}
	wg.Wait()

	if served == 0 {
		t.Fatalf("expected at least one caller to be served")
	}
}

func TestFetchReturnsErrUnavailableOnTimeout(t *testing.T) {
	ex := New(Config{Timeout: 10 * time.Millisecond})
	if _, err := ex.Fetch(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestRequestStopsOnContextCancel(t *testing.T) {
	ex := New(Config{Timeout: 5 * time.Second})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	if _, ok := ex.Request(ctx); ok {
		t.Fatalf("expected no snapshot after cancel")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("cancel not honoured: %s", elapsed)
	}
}

func waitPending(t *testing.T, ex *Exchange) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if ex.Pending() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("request never signalled intent")
}
