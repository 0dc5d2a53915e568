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
	"math"
	"time"

	crabbyerrors "github.com/travisbrown/octocrabby/internal/errors"
	"github.com/travisbrown/octocrabby/internal/events"
)

// RetryConfig configures the retry behavior for transport failures.
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts per page
	MaxRetries int
	// InitialBackoff is the initial backoff duration
	InitialBackoff time.Duration
	// MaxBackoff is the maximum backoff duration
	MaxBackoff time.Duration
	// BackoffMultiplier is the multiplier for exponential backoff
	BackoffMultiplier float64
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:        3,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// PageFetch fetches one page of records. It returns the records, the next
// page number (zero when the listing is exhausted) and an error.
type PageFetch[T any] func(ctx context.Context, page int) ([]T, int, error)

// Paginator drives repeated page fetches against a listing endpoint until
// exhaustion. Pages are fetched strictly sequentially; ordering of records
// is the fetch order.
//
// Per-page failure policy:
//   - transport failures are retried up to RetryConfig.MaxRetries with
//     exponential backoff, then fail the stream;
//   - a rate limit blocks the stream until the indicated reset, then the
//     same page is retried once; a second rate limit fails the stream
//     (or, with auto-wait disabled, the first one fails it immediately);
//   - authentication failures fail the stream immediately, never retried.
//
// A failed stream is restartable from scratch only; it is not resumable
// mid-stream.
type Paginator[T any] struct {
	fetch    PageFetch[T]
	retry    *RetryConfig
	sink     events.Sink
	maxPages int
	autoWait bool

	// sleep and now are injected for testability.
	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

// PaginatorOption configures a Paginator.
type PaginatorOption[T any] func(*Paginator[T])

// WithRetryConfig overrides the default retry configuration.
func WithRetryConfig[T any](cfg *RetryConfig) PaginatorOption[T] {
	return func(p *Paginator[T]) {
		if cfg != nil {
			p.retry = cfg
		}
	}
}

// WithSink attaches an event sink.
func WithSink[T any](sink events.Sink) PaginatorOption[T] {
	return func(p *Paginator[T]) {
		if sink != nil {
			p.sink = sink
		}
	}
}

// WithMaxPages bounds the number of pages fetched. Zero means unbounded.
func WithMaxPages[T any](n int) PaginatorOption[T] {
	return func(p *Paginator[T]) {
		p.maxPages = n
	}
}

// WithAutoWait controls whether the paginator sleeps through rate limit
// resets. When disabled, the first rate limit fails the stream.
func WithAutoWait[T any](enabled bool) PaginatorOption[T] {
	return func(p *Paginator[T]) {
		p.autoWait = enabled
	}
}

// NewPaginator creates a paginator over the given page-fetch capability.
func NewPaginator[T any](fetch PageFetch[T], opts ...PaginatorOption[T]) *Paginator[T] {
	p := &Paginator[T]{
		fetch:    fetch,
		retry:    DefaultRetryConfig(),
		sink:     events.Nop(),
		autoWait: true,
		sleep:    sleepCtx,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Each streams every record to fn in fetch order. Records from pages that
// completed before a failure are always delivered; the error reports why
// the stream stopped. fn returning an error halts consumption.
func (p *Paginator[T]) Each(ctx context.Context, fn func(T) error) error {
	page := 1
	fetched := 0

	for {
		records, next, err := p.fetchPage(ctx, page)
		if err != nil {
			return err
		}

		for _, record := range records {
			if err := fn(record); err != nil {
				return err
			}
		}

		p.sink.Emit(events.Event{Kind: events.KindPageFetched, Page: page, Count: len(records)})

		fetched++
		if next == 0 || (p.maxPages > 0 && fetched >= p.maxPages) {
			return nil
		}
		page = next
	}
}

// Collect materializes the whole stream. On failure the records gathered
// before the failing page are returned alongside the error; callers must
// treat a non-nil error as an incomplete result, never as an empty one.
func (p *Paginator[T]) Collect(ctx context.Context) ([]T, error) {
	var out []T
	err := p.Each(ctx, func(record T) error {
		out = append(out, record)
		return nil
	})
	return out, err
}

// fetchPage fetches a single page, applying the retry policy.
func (p *Paginator[T]) fetchPage(ctx context.Context, page int) ([]T, int, error) {
	var lastErr error
	rateLimitRetried := false

	for attempt := 0; ; attempt++ {
		records, next, err := p.fetch(ctx, page)
		if err == nil {
			return records, next, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, 0, ctx.Err()
		}

		// Auth failures are never retried.
		if errors.Is(err, crabbyerrors.ErrUnauthorized) {
			return nil, 0, err
		}

		// Rate limits get a single wait-until-reset retry for this page.
		var rateErr *RateLimitError
		if errors.As(err, &rateErr) {
			if rateLimitRetried || !p.autoWait {
				return nil, 0, err
			}
			rateLimitRetried = true

			wait := rateErr.ResetAt.Sub(p.now())
			if wait < 0 {
				wait = 0
			}
			p.sink.Emit(events.Event{Kind: events.KindRateLimitWait, Page: page, Wait: wait})
			if err := p.sleep(ctx, wait); err != nil {
				return nil, 0, err
			}
			continue
		}

		// Transport failures are retried up to the bound.
		if errors.Is(err, crabbyerrors.ErrTransport) {
			if attempt >= p.retry.MaxRetries {
				return nil, 0, fmt.Errorf("failed after %d retries: %w", p.retry.MaxRetries, lastErr)
			}
			backoff := p.calculateBackoff(attempt)
			p.sink.Emit(events.Event{Kind: events.KindRetryAttempted, Page: page, Attempt: attempt + 1, Wait: backoff})
			if err := p.sleep(ctx, backoff); err != nil {
				return nil, 0, err
			}
			continue
		}

		// Anything else fails the stream as-is.
		return nil, 0, err
	}
}

// calculateBackoff calculates the backoff duration for the given attempt
func (p *Paginator[T]) calculateBackoff(attempt int) time.Duration {
	backoff := float64(p.retry.InitialBackoff) * math.Pow(p.retry.BackoffMultiplier, float64(attempt))

	if backoff > float64(p.retry.MaxBackoff) {
		backoff = float64(p.retry.MaxBackoff)
	}

	// Add jitter (±10%) to prevent thundering herd. Derived from the
	// injected clock so backoff is reproducible under a fake clock.
	jitter := backoff * 0.1 * (2*float64(p.now().UnixNano()%100)/100 - 1)
	backoff += jitter

	return time.Duration(backoff)
}

// sleepCtx waits for d with context cancellation support.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
