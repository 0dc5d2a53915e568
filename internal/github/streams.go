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

// PullRequests returns a paginator over every pull request (all states) of
// the repository.
func PullRequests(client Client, owner, repo string, pageSize int, opts ...PaginatorOption[PullRequest]) *Paginator[PullRequest] {
	fetch := func(ctx context.Context, page int) ([]PullRequest, int, error) {
		result, err := client.FetchPullRequestPage(ctx, owner, repo, page, pageSize)
		if err != nil {
			return nil, 0, err
		}
		return result.Records, result.NextPage, nil
	}
	return NewPaginator(fetch, opts...)
}

// Followers returns a paginator over the authenticated user's followers.
func Followers(client Client, pageSize int, opts ...PaginatorOption[Identity]) *Paginator[Identity] {
	fetch := func(ctx context.Context, page int) ([]Identity, int, error) {
		result, err := client.FetchFollowerPage(ctx, page, pageSize)
		if err != nil {
			return nil, 0, err
		}
		return result.Records, result.NextPage, nil
	}
	return NewPaginator(fetch, opts...)
}

// Following returns a paginator over the accounts the authenticated user follows.
func Following(client Client, pageSize int, opts ...PaginatorOption[Identity]) *Paginator[Identity] {
	fetch := func(ctx context.Context, page int) ([]Identity, int, error) {
		result, err := client.FetchFollowingPage(ctx, page, pageSize)
		if err != nil {
			return nil, 0, err
		}
		return result.Records, result.NextPage, nil
	}
	return NewPaginator(fetch, opts...)
}

// Blocked returns a paginator over the block list of the authenticated
// user, or of the organization when org is non-empty.
func Blocked(client Client, org string, pageSize int, opts ...PaginatorOption[Identity]) *Paginator[Identity] {
	fetch := func(ctx context.Context, page int) ([]Identity, int, error) {
		result, err := client.FetchBlockedPage(ctx, org, page, pageSize)
		if err != nil {
			return nil, 0, err
		}
		return result.Records, result.NextPage, nil
	}
	return NewPaginator(fetch, opts...)
}
