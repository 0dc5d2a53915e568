// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package github

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	crabbyerrors "github.com/travisbrown/octocrabby/internal/errors"
)

// fakeClock records requested sleeps without actually sleeping.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2021, 2, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func instrument[T any](p *Paginator[T], clock *fakeClock) *Paginator[T] {
	p.sleep = clock.Sleep
	p.now = clock.Now
	return p
}

func TestPaginatorCollectMultiplePages(t *testing.T) {
	pages := [][]int{{1, 2, 3}, {4, 5}, {6}}
	calls := 0

	fetch := func(ctx context.Context, page int) ([]int, int, error) {
		calls++
		records := pages[page-1]
		next := page + 1
		if page == len(pages) {
			next = 0
		}
		return records, next, nil
	}

	got, err := NewPaginator(fetch).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	want := []int{1, 2, 3, 4, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("Collect() returned %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d = %d, want %d", i, got[i], want[i])
		}
	}
	if calls != 3 {
		t.Errorf("fetch called %d times, want 3", calls)
	}
}

func TestPaginatorEmptyListing(t *testing.T) {
	fetch := func(ctx context.Context, page int) ([]int, int, error) {
		return nil, 0, nil
	}

	got, err := NewPaginator(fetch).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Collect() returned %d records, want 0", len(got))
	}
}

func TestPaginatorRetriesTransportFailures(t *testing.T) {
	clock := newFakeClock()
	calls := 0

	fetch := func(ctx context.Context, page int) ([]string, int, error) {
		calls++
		if calls <= 2 {
			return nil, 0, fmt.Errorf("dial tcp: %w", crabbyerrors.ErrTransport)
		}
		return []string{"ok"}, 0, nil
	}

	p := instrument(NewPaginator(fetch), clock)
	got, err := p.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(got) != 1 || got[0] != "ok" {
		t.Errorf("Collect() = %v, want [ok]", got)
	}
	if calls != 3 {
		t.Errorf("fetch called %d times, want 3", calls)
	}
	if len(clock.sleeps) != 2 {
		t.Errorf("slept %d times, want 2", len(clock.sleeps))
	}
}

func TestPaginatorTransportRetryExhaustion(t *testing.T) {
	clock := newFakeClock()
	calls := 0

	fetch := func(ctx context.Context, page int) ([]string, int, error) {
		calls++
		return nil, 0, fmt.Errorf("dial tcp: %w", crabbyerrors.ErrTransport)
	}

	retry := DefaultRetryConfig()
	retry.MaxRetries = 2

	p := instrument(NewPaginator(fetch, WithRetryConfig[string](retry)), clock)
	_, err := p.Collect(context.Background())
	if err == nil {
		t.Fatal("Collect() error = nil, want transport failure")
	}
	if !errors.Is(err, crabbyerrors.ErrTransport) {
		t.Errorf("error %v does not wrap ErrTransport", err)
	}
	if calls != 3 {
		t.Errorf("fetch called %d times, want 3 (initial + 2 retries)", calls)
	}
}

func TestPaginatorBackoffIsExponential(t *testing.T) {
	clock := newFakeClock()
	calls := 0

	fetch := func(ctx context.Context, page int) ([]string, int, error) {
		calls++
		if calls <= 3 {
			return nil, 0, fmt.Errorf("reset by peer: %w", crabbyerrors.ErrTransport)
		}
		return nil, 0, nil
	}

	p := instrument(NewPaginator(fetch), clock)
	if _, err := p.Collect(context.Background()); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if len(clock.sleeps) != 3 {
		t.Fatalf("slept %d times, want 3", len(clock.sleeps))
	}
	// Jitter is ±10%, so each backoff stays within a band around 1s, 2s, 4s.
	wants := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}
	for i, want := range wants {
		lo := time.Duration(float64(want) * 0.89)
		hi := time.Duration(float64(want) * 1.11)
		if clock.sleeps[i] < lo || clock.sleeps[i] > hi {
			t.Errorf("backoff %d = %v, want within [%v, %v]", i, clock.sleeps[i], lo, hi)
		}
	}
}

func TestPaginatorBackoffDeterministicUnderFakeClock(t *testing.T) {
	run := func() []time.Duration {
		clock := newFakeClock()
		calls := 0
		fetch := func(ctx context.Context, page int) ([]string, int, error) {
			calls++
			if calls <= 3 {
				return nil, 0, fmt.Errorf("reset by peer: %w", crabbyerrors.ErrTransport)
			}
			return nil, 0, nil
		}
		p := instrument(NewPaginator(fetch), clock)
		if _, err := p.Collect(context.Background()); err != nil {
			t.Fatalf("Collect() error = %v", err)
		}
		return clock.sleeps
	}

	first, second := run(), run()
	if len(first) != len(second) {
		t.Fatalf("runs slept %d vs %d times", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("backoff %d = %v vs %v, want identical sleeps from identical clocks", i, first[i], second[i])
		}
	}
}

func TestPaginatorUnauthorizedNeverRetried(t *testing.T) {
	clock := newFakeClock()
	calls := 0

	fetch := func(ctx context.Context, page int) ([]string, int, error) {
		calls++
		return nil, 0, fmt.Errorf("bad credentials: %w", crabbyerrors.ErrUnauthorized)
	}

	p := instrument(NewPaginator(fetch), clock)
	_, err := p.Collect(context.Background())
	if !errors.Is(err, crabbyerrors.ErrUnauthorized) {
		t.Fatalf("Collect() error = %v, want ErrUnauthorized", err)
	}
	if calls != 1 {
		t.Errorf("fetch called %d times, want 1", calls)
	}
	if len(clock.sleeps) != 0 {
		t.Errorf("slept %d times, want 0", len(clock.sleeps))
	}
}

func TestPaginatorRateLimitWaitsUntilResetThenRetriesOnce(t *testing.T) {
	clock := newFakeClock()
	reset := clock.Now().Add(90 * time.Second)
	calls := 0

	fetch := func(ctx context.Context, page int) ([]string, int, error) {
		calls++
		if calls == 1 {
			return nil, 0, &RateLimitError{ResetAt: reset}
		}
		return []string{"after-reset"}, 0, nil
	}

	p := instrument(NewPaginator(fetch), clock)
	got, err := p.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(got) != 1 || got[0] != "after-reset" {
		t.Errorf("Collect() = %v, want [after-reset]", got)
	}
	if len(clock.sleeps) != 1 || clock.sleeps[0] != 90*time.Second {
		t.Errorf("sleeps = %v, want [90s]", clock.sleeps)
	}
}

func TestPaginatorSecondRateLimitOnSamePageFails(t *testing.T) {
	clock := newFakeClock()
	calls := 0

	fetch := func(ctx context.Context, page int) ([]string, int, error) {
		calls++
		return nil, 0, &RateLimitError{ResetAt: clock.Now().Add(time.Second)}
	}

	p := instrument(NewPaginator(fetch), clock)
	_, err := p.Collect(context.Background())
	if !errors.Is(err, crabbyerrors.ErrRateLimited) {
		t.Fatalf("Collect() error = %v, want ErrRateLimited", err)
	}
	if calls != 2 {
		t.Errorf("fetch called %d times, want 2 (initial + one post-reset retry)", calls)
	}
}

func TestPaginatorRateLimitPreservesEarlierPages(t *testing.T) {
	clock := newFakeClock()

	fetch := func(ctx context.Context, page int) ([]string, int, error) {
		if page == 1 {
			return []string{"a", "b"}, 2, nil
		}
		return nil, 0, &RateLimitError{ResetAt: clock.Now()}
	}

	p := instrument(NewPaginator(fetch), clock)
	got, err := p.Collect(context.Background())
	if err == nil {
		t.Fatal("Collect() error = nil, want rate limit failure")
	}
	if len(got) != 2 {
		t.Errorf("Collect() preserved %d records, want 2", len(got))
	}
}

func TestPaginatorAutoWaitDisabledFailsImmediately(t *testing.T) {
	clock := newFakeClock()
	calls := 0

	fetch := func(ctx context.Context, page int) ([]string, int, error) {
		calls++
		return nil, 0, &RateLimitError{ResetAt: clock.Now().Add(time.Hour)}
	}

	p := instrument(NewPaginator(fetch, WithAutoWait[string](false)), clock)
	_, err := p.Collect(context.Background())
	if !errors.Is(err, crabbyerrors.ErrRateLimited) {
		t.Fatalf("Collect() error = %v, want ErrRateLimited", err)
	}
	if calls != 1 {
		t.Errorf("fetch called %d times, want 1", calls)
	}
	if len(clock.sleeps) != 0 {
		t.Errorf("slept %d times, want 0", len(clock.sleeps))
	}
}

func TestPaginatorMaxPagesBound(t *testing.T) {
	calls := 0

	fetch := func(ctx context.Context, page int) ([]int, int, error) {
		calls++
		return []int{page}, page + 1, nil
	}

	got, err := NewPaginator(fetch, WithMaxPages[int](3)).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("fetch called %d times, want 3", calls)
	}
	if len(got) != 3 {
		t.Errorf("Collect() returned %d records, want 3", len(got))
	}
}

func TestPaginatorEachStopsOnCallbackError(t *testing.T) {
	fetch := func(ctx context.Context, page int) ([]int, int, error) {
		return []int{1, 2, 3}, 0, nil
	}

	stop := errors.New("stop")
	seen := 0
	err := NewPaginator(fetch).Each(context.Background(), func(int) error {
		seen++
		if seen == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Fatalf("Each() error = %v, want stop", err)
	}
	if seen != 2 {
		t.Errorf("callback ran %d times, want 2", seen)
	}
}

func TestPaginatorContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetch := func(ctx context.Context, page int) ([]int, int, error) {
		return nil, 0, ctx.Err()
	}

	_, err := NewPaginator(fetch).Collect(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Collect() error = %v, want context.Canceled", err)
	}
}
