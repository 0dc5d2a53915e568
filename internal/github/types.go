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

import "time"

// Identity is the canonical (login, numeric id) pair for a GitHub account.
// The numeric ID is the join and equality key everywhere identities from
// independent fetches are compared: logins can be renamed, IDs cannot.
// The login is denormalized for display only.
type Identity struct {
	Login string
	ID    int64
}

// PullRequest carries the minimal pull request metadata the pipeline needs:
// who opened it and when. Author is nil when the account has been deleted
// or the API returned no author for the record.
type PullRequest struct {
	Number    int
	Author    *Identity
	CreatedAt time.Time
}

// Profile is the per-account detail available from a profile lookup.
// CreatedAt is nil when the API did not report an account creation time.
type Profile struct {
	Identity
	Name            string
	TwitterUsername string
	CreatedAt       *time.Time
}

// PullRequestPage is one page of pull requests. NextPage is zero when the
// listing is exhausted.
type PullRequestPage struct {
	Records  []PullRequest
	NextPage int
}

// UserPage is one page of account identities. NextPage is zero when the
// listing is exhausted.
type UserPage struct {
	Records  []Identity
	NextPage int
}

// BlockStatus reports the remote result of a single block request.
type BlockStatus int

const (
	// BlockApplied means the account was newly blocked.
	BlockApplied BlockStatus = iota
	// BlockAlreadyPresent means the remote reported the account as already blocked.
	BlockAlreadyPresent
)

// String returns a human-readable form of the status.
func (s BlockStatus) String() string {
	switch s {
	case BlockApplied:
		return "blocked"
	case BlockAlreadyPresent:
		return "already blocked"
	default:
		return "unknown"
	}
}
