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
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	crabbyerrors "github.com/travisbrown/octocrabby/internal/errors"
	"github.com/travisbrown/octocrabby/internal/giterror"
)

const userAgent = "crabby/" + Version

// Version is the client version reported in the User-Agent header.
const Version = "0.3.0"

// RESTClient implements the Client interface over the GitHub REST API.
// An empty token produces an unauthenticated client, which is sufficient
// for the public pull request listing but not for enrichment or blocking.
type RESTClient struct {
	gh        *gh.Client
	inspector giterror.Inspector
}

// NewRESTClient creates a GitHub REST client. endpoint overrides the API
// base URL when non-empty (e.g. for GitHub Enterprise); it must include a
// trailing slash or one is added.
func NewRESTClient(token, endpoint string) (*RESTClient, error) {
	httpClient := http.DefaultClient
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := gh.NewClient(httpClient)
	client.UserAgent = userAgent

	if endpoint != "" {
		if !strings.HasSuffix(endpoint, "/") {
			endpoint += "/"
		}
		base, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("invalid API endpoint %q: %w", endpoint, err)
		}
		client.BaseURL = base
	}

	return &RESTClient{
		gh:        client,
		inspector: giterror.NewErrorChainInspector(giterror.NewInspector()),
	}, nil
}

// FetchPullRequestPage implements Client.
func (c *RESTClient) FetchPullRequestPage(ctx context.Context, owner, repo string, page, perPage int) (*PullRequestPage, error) {
	opts := &gh.PullRequestListOptions{
		State:       "all",
		ListOptions: gh.ListOptions{Page: page, PerPage: perPage},
	}

	prs, resp, err := c.gh.PullRequests.List(ctx, owner, repo, opts)
	if err != nil {
		return nil, c.mapError(err, crabbyerrors.ErrRepoNotFound)
	}

	result := &PullRequestPage{
		Records:  make([]PullRequest, 0, len(prs)),
		NextPage: resp.NextPage,
	}
	for _, pr := range prs {
		result.Records = append(result.Records, convertPullRequest(pr))
	}
	return result, nil
}

// FetchFollowerPage implements Client.
func (c *RESTClient) FetchFollowerPage(ctx context.Context, page, perPage int) (*UserPage, error) {
	opts := &gh.ListOptions{Page: page, PerPage: perPage}
	users, resp, err := c.gh.Users.ListFollowers(ctx, "", opts)
	if err != nil {
		return nil, c.mapError(err, crabbyerrors.ErrUserNotFound)
	}
	return convertUserPage(users, resp.NextPage), nil
}

// FetchFollowingPage implements Client.
func (c *RESTClient) FetchFollowingPage(ctx context.Context, page, perPage int) (*UserPage, error) {
	opts := &gh.ListOptions{Page: page, PerPage: perPage}
	users, resp, err := c.gh.Users.ListFollowing(ctx, "", opts)
	if err != nil {
		return nil, c.mapError(err, crabbyerrors.ErrUserNotFound)
	}
	return convertUserPage(users, resp.NextPage), nil
}

// FetchBlockedPage implements Client. The organization block list is used
// instead of the authenticated user's when org is non-empty; this is a
// routing choice only, the page shape is identical.
func (c *RESTClient) FetchBlockedPage(ctx context.Context, org string, page, perPage int) (*UserPage, error) {
	opts := &gh.ListOptions{Page: page, PerPage: perPage}

	var (
		users []*gh.User
		resp  *gh.Response
		err   error
	)
	if org != "" {
		users, resp, err = c.gh.Organizations.ListBlockedUsers(ctx, org, opts)
	} else {
		users, resp, err = c.gh.Users.ListBlockedUsers(ctx, opts)
	}
	if err != nil {
		return nil, c.mapError(err, crabbyerrors.ErrUserNotFound)
	}
	return convertUserPage(users, resp.NextPage), nil
}

// FetchProfile implements Client.
func (c *RESTClient) FetchProfile(ctx context.Context, login string) (*Profile, error) {
	user, _, err := c.gh.Users.Get(ctx, login)
	if err != nil {
		return nil, c.mapError(err, crabbyerrors.ErrUserNotFound)
	}

	profile := &Profile{
		Identity:        Identity{Login: user.GetLogin(), ID: user.GetID()},
		Name:            user.GetName(),
		TwitterUsername: user.GetTwitterUsername(),
	}
	if user.CreatedAt != nil {
		created := user.CreatedAt.Time
		profile.CreatedAt = &created
	}
	return profile, nil
}

// ResolveUser implements Client.
func (c *RESTClient) ResolveUser(ctx context.Context, login string) (*Identity, error) {
	user, _, err := c.gh.Users.Get(ctx, login)
	if err != nil {
		return nil, c.mapError(err, crabbyerrors.ErrUserNotFound)
	}
	return &Identity{Login: user.GetLogin(), ID: user.GetID()}, nil
}

// BlockUser implements Client.
func (c *RESTClient) BlockUser(ctx context.Context, org, login string) (BlockStatus, error) {
	var err error
	if org != "" {
		_, err = c.gh.Organizations.BlockUser(ctx, org, login)
	} else {
		_, err = c.gh.Users.BlockUser(ctx, login)
	}
	if err != nil {
		// The API reports re-blocking an already blocked account as an
		// error with a fixed message rather than a distinct status.
		if strings.Contains(err.Error(), "already been blocked") {
			return BlockAlreadyPresent, nil
		}
		return 0, c.mapError(err, crabbyerrors.ErrUserNotFound)
	}
	return BlockApplied, nil
}

// CheckFollowing implements Client.
func (c *RESTClient) CheckFollowing(ctx context.Context, follower, target string) (bool, error) {
	follows, _, err := c.gh.Users.IsFollowing(ctx, follower, target)
	if err != nil {
		return false, c.mapError(err, crabbyerrors.ErrUserNotFound)
	}
	return follows, nil
}

// AuthenticatedUser implements Client.
func (c *RESTClient) AuthenticatedUser(ctx context.Context) (*Identity, error) {
	user, _, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return nil, c.mapError(err, crabbyerrors.ErrUserNotFound)
	}
	return &Identity{Login: user.GetLogin(), ID: user.GetID()}, nil
}

// mapError translates go-github errors into the sentinel taxonomy.
// notFound is the sentinel to use for 404s, which depend on what the call
// was addressing (a repository vs. an account).
func (c *RESTClient) mapError(err error, notFound error) error {
	if err == nil {
		return nil
	}

	// Typed rate limit errors carry the reset time; check them before the
	// status-code cases because primary limits arrive as 403s.
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return &RateLimitError{ResetAt: rateErr.Rate.Reset.Time}
	}
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		resetAt := time.Now()
		if abuseErr.RetryAfter != nil {
			resetAt = resetAt.Add(*abuseErr.RetryAfter)
		}
		return &RateLimitError{ResetAt: resetAt}
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch code := respErr.Response.StatusCode; {
		case code == http.StatusUnauthorized || code == http.StatusForbidden:
			return fmt.Errorf("%s: %w", respErr.Message, crabbyerrors.ErrUnauthorized)
		case code == http.StatusNotFound:
			return fmt.Errorf("%s: %w", respErr.Message, notFound)
		case code >= 500:
			return fmt.Errorf("server error (%d): %w", code, crabbyerrors.ErrTransport)
		}
	}

	// Untyped errors (dial failures, timeouts) fall back to inspection.
	switch {
	case c.inspector.IsRateLimitError(err):
		return fmt.Errorf("%v: %w", err, crabbyerrors.ErrRateLimited)
	case c.inspector.IsAuthError(err):
		return fmt.Errorf("%v: %w", err, crabbyerrors.ErrUnauthorized)
	case c.inspector.IsNotFoundError(err):
		return fmt.Errorf("%v: %w", err, notFound)
	case c.inspector.IsNetworkError(err):
		return fmt.Errorf("%v: %w", err, crabbyerrors.ErrTransport)
	}

	return fmt.Errorf("github request failed: %w", err)
}

func convertUserPage(users []*gh.User, nextPage int) *UserPage {
	page := &UserPage{
		Records:  make([]Identity, 0, len(users)),
		NextPage: nextPage,
	}
	for _, u := range users {
		page.Records = append(page.Records, Identity{Login: u.GetLogin(), ID: u.GetID()})
	}
	return page
}

func convertPullRequest(pr *gh.PullRequest) PullRequest {
	record := PullRequest{
		Number:    pr.GetNumber(),
		CreatedAt: pr.GetCreatedAt().Time,
	}
	if pr.User != nil && pr.User.Login != nil {
		record.Author = &Identity{Login: pr.User.GetLogin(), ID: pr.User.GetID()}
	}
	return record
}
