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

// Package contrib turns a raw pull request stream into a per-contributor
// aggregate and optionally enriches it with profile and follow data.
package contrib

import (
	"sort"
	"time"

	"github.com/travisbrown/octocrabby/internal/github"
)

// ContributorRecord accumulates what is known about one contributor from
// the pull request stream alone: how many PRs they opened and when the
// earliest one was created.
type ContributorRecord struct {
	Identity  github.Identity
	PRCount   int
	FirstPRAt time.Time
}

// EnrichedRecord extends a ContributorRecord with profile detail and
// follow-relationship flags. Optional fields stay empty (nil) when the
// data was unavailable.
type EnrichedRecord struct {
	ContributorRecord
	DisplayName    string
	ExternalHandle string
	AccountAgeDays *int64
	IFollowThem    bool
	TheyFollowMe   bool
}

// Aggregator deduplicates the pull request stream by author identity.
// Authors are joined on the numeric account ID: a contributor who renamed
// their login between PRs is still one contributor.
type Aggregator struct {
	records   map[int64]*ContributorRecord
	discarded int
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{records: make(map[int64]*ContributorRecord)}
}

// Add consumes one pull request record. Records without an author are
// dropped and tallied, never absorbed into the aggregate counts.
func (a *Aggregator) Add(pr github.PullRequest) {
	if pr.Author == nil {
		a.discarded++
		return
	}

	record, ok := a.records[pr.Author.ID]
	if !ok {
		a.records[pr.Author.ID] = &ContributorRecord{
			Identity:  *pr.Author,
			PRCount:   1,
			FirstPRAt: pr.CreatedAt,
		}
		return
	}

	record.PRCount++
	if pr.CreatedAt.Before(record.FirstPRAt) {
		record.FirstPRAt = pr.CreatedAt
	}
}

// Discarded returns how many input records carried no author.
func (a *Aggregator) Discarded() int {
	return a.discarded
}

// Len returns the number of distinct contributors seen.
func (a *Aggregator) Len() int {
	return len(a.records)
}

// Records returns the aggregate sorted by login, case-sensitive ascending.
// The ordering is part of the output contract: it keeps reports
// deterministic and diffable across runs.
func (a *Aggregator) Records() []ContributorRecord {
	out := make([]ContributorRecord, 0, len(a.records))
	for _, record := range a.records {
		out = append(out, *record)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Identity.Login < out[j].Identity.Login
	})
	return out
}
