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

package contrib

import (
	"context"
	"fmt"
	"math"

	"github.com/travisbrown/octocrabby/internal/events"
	"github.com/travisbrown/octocrabby/internal/github"
)

// Enricher joins contributor records with profile data and follow
// relationships. It requires an authenticated client.
//
// The follow flags come from two full snapshots (following and followers)
// rather than a membership probe per contributor; that costs two paginated
// listings up front and makes every flag an O(1) set lookup afterwards.
// Profile detail has no bulk endpoint, so it is fetched per identity in an
// explicit sequential loop with per-item failure isolation.
type Enricher struct {
	client   github.Client
	pageSize int
	retry    *github.RetryConfig
	sink     events.Sink
}

// NewEnricher creates an enricher over the given client.
func NewEnricher(client github.Client, pageSize int, retry *github.RetryConfig, sink events.Sink) *Enricher {
	if sink == nil {
		sink = events.Nop()
	}
	return &Enricher{client: client, pageSize: pageSize, retry: retry, sink: sink}
}

// Enrich augments the records in order. A failure fetching either of the
// two relationship snapshots is fatal: every flag depends on them. A
// failure fetching one contributor's profile is not: that record keeps
// empty profile fields and the batch continues.
func (e *Enricher) Enrich(ctx context.Context, records []ContributorRecord) ([]EnrichedRecord, error) {
	following, err := github.TakeSnapshot(ctx, github.Following(e.client, e.pageSize,
		github.WithRetryConfig[github.Identity](e.retry), github.WithSink[github.Identity](e.sink)))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch following set: %w", err)
	}

	followers, err := github.TakeSnapshot(ctx, github.Followers(e.client, e.pageSize,
		github.WithRetryConfig[github.Identity](e.retry), github.WithSink[github.Identity](e.sink)))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch follower set: %w", err)
	}

	out := make([]EnrichedRecord, 0, len(records))
	for _, record := range records {
		enriched := EnrichedRecord{
			ContributorRecord: record,
			IFollowThem:       following.ContainsID(record.Identity.ID),
			TheyFollowMe:      followers.ContainsID(record.Identity.ID),
		}

		profile, err := e.client.FetchProfile(ctx, record.Identity.Login)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			e.sink.Emit(events.Event{Kind: events.KindProfileFetchFailed, Login: record.Identity.Login, Err: err})
		} else {
			enriched.DisplayName = profile.Name
			enriched.ExternalHandle = profile.TwitterUsername
			if profile.CreatedAt != nil {
				// Floor, not truncation: a first PR before account creation
				// yields a negative age and must round down.
				age := int64(math.Floor(record.FirstPRAt.Sub(*profile.CreatedAt).Hours() / 24))
				enriched.AccountAgeDays = &age
			}
		}

		out = append(out, enriched)
	}

	return out, nil
}
