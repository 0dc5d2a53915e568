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

import "context"

// Client defines the interface for interacting with GitHub's API.
// It is the remote API capability the core pipeline consumes: page fetches
// for the paginated listings, per-account lookups, and block requests.
// HTTP framing, auth headers and JSON parsing stay behind this interface,
// which also allows for easy mocking in tests.
type Client interface {
	// FetchPullRequestPage retrieves one page of pull requests (all states)
	// for the repository. A zero NextPage in the result marks exhaustion.
	FetchPullRequestPage(ctx context.Context, owner, repo string, page, perPage int) (*PullRequestPage, error)

	// FetchFollowerPage retrieves one page of the authenticated user's followers.
	FetchFollowerPage(ctx context.Context, page, perPage int) (*UserPage, error)

	// FetchFollowingPage retrieves one page of accounts the authenticated user follows.
	FetchFollowingPage(ctx context.Context, page, perPage int) (*UserPage, error)

	// FetchBlockedPage retrieves one page of the accounts blocked by the
	// authenticated user, or by the organization when org is non-empty.
	FetchBlockedPage(ctx context.Context, org string, page, perPage int) (*UserPage, error)

	// FetchProfile retrieves extended profile detail for one account.
	FetchProfile(ctx context.Context, login string) (*Profile, error)

	// ResolveUser resolves a login to its canonical identity.
	ResolveUser(ctx context.Context, login string) (*Identity, error)

	// BlockUser blocks the named account for the authenticated user, or for
	// the organization when org is non-empty.
	BlockUser(ctx context.Context, org, login string) (BlockStatus, error)

	// CheckFollowing reports whether follower follows target. An empty
	// follower means the authenticated user.
	CheckFollowing(ctx context.Context, follower, target string) (bool, error)

	// AuthenticatedUser returns the identity behind the supplied credential.
	AuthenticatedUser(ctx context.Context) (*Identity, error)
}
