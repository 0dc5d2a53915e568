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
	"fmt"

	crabbyerrors "github.com/travisbrown/octocrabby/internal/errors"
)

// MockClient is a mock implementation of the Client interface for testing.
// Listings are served from the configured slices, honoring the requested
// page size; per-login error injection simulates partial failures. Call
// counters allow tests to assert which endpoints were (not) hit.
type MockClient struct {
	PullRequests []PullRequest
	Followers    []Identity
	Following    []Identity
	Blocked      []Identity
	Profiles     map[string]*Profile
	Resolved     map[string]Identity
	AuthUser     *Identity

	// Errors to inject
	PullRequestErr error
	FollowerErr    error
	FollowingErr   error
	BlockedErr     error
	AuthErr        error
	ProfileErrs    map[string]error
	ResolveErrs    map[string]error
	BlockErrs      map[string]error

	// Logins the remote reports as already blocked on a block request
	AlreadyBlocked map[string]bool

	// Track calls for verification
	PullRequestPageCalls int
	FollowerPageCalls    int
	FollowingPageCalls   int
	BlockedPageCalls     int
	ProfileCalls         []string
	ResolveCalls         []string
	BlockCalls           []string
	LastBlockOrg         string
}

// FetchPullRequestPage implements the Client interface.
func (m *MockClient) FetchPullRequestPage(ctx context.Context, owner, repo string, page, perPage int) (*PullRequestPage, error) {
	m.PullRequestPageCalls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.PullRequestErr != nil {
		return nil, m.PullRequestErr
	}
	records, next := pageSlice(m.PullRequests, page, perPage)
	return &PullRequestPage{Records: records, NextPage: next}, nil
}

// FetchFollowerPage implements the Client interface.
func (m *MockClient) FetchFollowerPage(ctx context.Context, page, perPage int) (*UserPage, error) {
	m.FollowerPageCalls++
	if m.FollowerErr != nil {
		return nil, m.FollowerErr
	}
	records, next := pageSlice(m.Followers, page, perPage)
	return &UserPage{Records: records, NextPage: next}, nil
}

// FetchFollowingPage implements the Client interface.
func (m *MockClient) FetchFollowingPage(ctx context.Context, page, perPage int) (*UserPage, error) {
	m.FollowingPageCalls++
	if m.FollowingErr != nil {
		return nil, m.FollowingErr
	}
	records, next := pageSlice(m.Following, page, perPage)
	return &UserPage{Records: records, NextPage: next}, nil
}

// FetchBlockedPage implements the Client interface.
func (m *MockClient) FetchBlockedPage(ctx context.Context, org string, page, perPage int) (*UserPage, error) {
	m.BlockedPageCalls++
	m.LastBlockOrg = org
	if m.BlockedErr != nil {
		return nil, m.BlockedErr
	}
	records, next := pageSlice(m.Blocked, page, perPage)
	return &UserPage{Records: records, NextPage: next}, nil
}

// FetchProfile implements the Client interface.
func (m *MockClient) FetchProfile(ctx context.Context, login string) (*Profile, error) {
	m.ProfileCalls = append(m.ProfileCalls, login)
	if err, ok := m.ProfileErrs[login]; ok {
		return nil, err
	}
	if profile, ok := m.Profiles[login]; ok {
		return profile, nil
	}
	return nil, fmt.Errorf("no profile for %s: %w", login, crabbyerrors.ErrUserNotFound)
}

// ResolveUser implements the Client interface.
func (m *MockClient) ResolveUser(ctx context.Context, login string) (*Identity, error) {
	m.ResolveCalls = append(m.ResolveCalls, login)
	if err, ok := m.ResolveErrs[login]; ok {
		return nil, err
	}
	if identity, ok := m.Resolved[login]; ok {
		return &identity, nil
	}
	if profile, ok := m.Profiles[login]; ok {
		return &Identity{Login: profile.Login, ID: profile.ID}, nil
	}
	return nil, fmt.Errorf("cannot resolve %s: %w", login, crabbyerrors.ErrUserNotFound)
}

// BlockUser implements the Client interface.
func (m *MockClient) BlockUser(ctx context.Context, org, login string) (BlockStatus, error) {
	m.BlockCalls = append(m.BlockCalls, login)
	m.LastBlockOrg = org
	if err, ok := m.BlockErrs[login]; ok {
		return 0, err
	}
	if m.AlreadyBlocked[login] {
		return BlockAlreadyPresent, nil
	}
	return BlockApplied, nil
}

// CheckFollowing implements the Client interface.
func (m *MockClient) CheckFollowing(ctx context.Context, follower, target string) (bool, error) {
	for _, id := range m.Following {
		if id.Login == target {
			return true, nil
		}
	}
	return false, nil
}

// AuthenticatedUser implements the Client interface.
func (m *MockClient) AuthenticatedUser(ctx context.Context) (*Identity, error) {
	if m.AuthErr != nil {
		return nil, m.AuthErr
	}
	if m.AuthUser != nil {
		return m.AuthUser, nil
	}
	return nil, fmt.Errorf("no credential: %w", crabbyerrors.ErrUnauthorized)
}

// pageSlice cuts one page out of records. Page numbers start at 1; the
// returned next page is zero on the final page, matching the REST client.
func pageSlice[T any](records []T, page, perPage int) ([]T, int) {
	if perPage <= 0 {
		perPage = 100
	}
	if page <= 0 {
		page = 1
	}

	start := (page - 1) * perPage
	if start >= len(records) {
		return nil, 0
	}

	end := start + perPage
	next := page + 1
	if end >= len(records) {
		end = len(records)
		next = 0
	}
	return records[start:end], next
}
