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

// Package blocklist applies a block action to a target list with duplicate
// suppression against the current block-set snapshot.
package blocklist

import (
	"context"
	"fmt"

	"github.com/travisbrown/octocrabby/internal/events"
	"github.com/travisbrown/octocrabby/internal/github"
)

// Result classifies the outcome for a single target.
type Result int

const (
	// Blocked means the block request succeeded.
	Blocked Result = iota
	// SkippedAlreadyBlocked means the target was already blocked, either
	// per the snapshot or per the remote response.
	SkippedAlreadyBlocked
	// Failed means the target could not be resolved or the block request
	// errored; Outcome.Err carries the reason.
	Failed
)

// String returns a human-readable form of the result.
func (r Result) String() string {
	switch r {
	case Blocked:
		return "blocked"
	case SkippedAlreadyBlocked:
		return "skipped_already_blocked"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the per-target result of a run. Identity.ID is zero when the
// target never resolved to an account.
type Outcome struct {
	Identity github.Identity
	Result   Result
	Err      error
}

// Summary aggregates a run's outcomes for one-line reporting.
type Summary struct {
	Blocked int
	Skipped int
	Failed  int
}

// Syncer executes mass block runs. Requests are issued strictly
// sequentially; the emitted outcome sequence mirrors the target order
// exactly, which keeps runs reproducible and diffable.
type Syncer struct {
	client   github.Client
	org      string
	pageSize int
	retry    *github.RetryConfig
	sink     events.Sink
}

// NewSyncer creates a syncer. org scopes both the snapshot fetch and the
// block requests to an organization's block list when non-empty; routing
// only, the algorithm is unchanged.
func NewSyncer(client github.Client, org string, pageSize int, retry *github.RetryConfig, sink events.Sink) *Syncer {
	if sink == nil {
		sink = events.Nop()
	}
	return &Syncer{client: client, org: org, pageSize: pageSize, retry: retry, sink: sink}
}

// Run blocks each target login in order and returns one outcome per input,
// in input order.
//
// With force disabled, the current block-set snapshot is fetched first and
// targets found in it are emitted as SkippedAlreadyBlocked without any
// network call; the skips are reported once as an aggregate count. With
// force enabled the snapshot fetch is skipped entirely and every target
// gets a block request — the remote is idempotent on already-blocked
// accounts, so this trades one guaranteed call per target for the snapshot
// round trip.
//
// Failures scoped to a single target (unresolvable login, rejected block
// request) are recorded as Failed outcomes and never abort the batch. Only
// the snapshot fetch can fail the run as a whole.
func (s *Syncer) Run(ctx context.Context, targets []string, force bool) ([]Outcome, Summary, error) {
	var snapshot *github.Snapshot
	if !force {
		var err error
		snapshot, err = github.TakeSnapshot(ctx, github.Blocked(s.client, s.org, s.pageSize,
			github.WithRetryConfig[github.Identity](s.retry), github.WithSink[github.Identity](s.sink)))
		if err != nil {
			return nil, Summary{}, fmt.Errorf("failed to fetch block list: %w", err)
		}
	}

	outcomes := make([]Outcome, 0, len(targets))
	var summary Summary

	if snapshot != nil {
		known := 0
		for _, login := range targets {
			if _, ok := snapshot.ByLogin(login); ok {
				known++
			}
		}
		if known > 0 {
			s.sink.Emit(events.Event{Kind: events.KindSkippedKnownBlocked, Count: known})
		}
	}

	for _, login := range targets {
		if err := ctx.Err(); err != nil {
			return outcomes, summary, err
		}

		if snapshot != nil {
			if identity, ok := snapshot.ByLogin(login); ok {
				summary.Skipped++
				outcomes = append(outcomes, Outcome{Identity: identity, Result: SkippedAlreadyBlocked})
				continue
			}
		}

		outcome := s.blockOne(ctx, login)
		switch outcome.Result {
		case Blocked:
			summary.Blocked++
		case SkippedAlreadyBlocked:
			summary.Skipped++
		case Failed:
			summary.Failed++
		}
		s.sink.Emit(events.Event{
			Kind:   events.KindBlockOutcome,
			Login:  login,
			Detail: outcome.Result.String(),
			Err:    outcome.Err,
		})
		outcomes = append(outcomes, outcome)
	}

	return outcomes, summary, nil
}

// blockOne resolves and blocks a single target. All errors are absorbed
// into the outcome.
func (s *Syncer) blockOne(ctx context.Context, login string) Outcome {
	identity, err := s.client.ResolveUser(ctx, login)
	if err != nil {
		return Outcome{
			Identity: github.Identity{Login: login},
			Result:   Failed,
			Err:      fmt.Errorf("unresolved identity: %w", err),
		}
	}

	status, err := s.client.BlockUser(ctx, s.org, identity.Login)
	if err != nil {
		return Outcome{Identity: *identity, Result: Failed, Err: err}
	}
	if status == github.BlockAlreadyPresent {
		return Outcome{Identity: *identity, Result: SkippedAlreadyBlocked}
	}
	return Outcome{Identity: *identity, Result: Blocked}
}
