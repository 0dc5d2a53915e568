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

package main

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/travisbrown/octocrabby/internal/github"
)

// newListFollowersCommand lists the authenticated user's followers.
func newListFollowersCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list-followers",
		Short: "List the authenticated user's followers in CSV format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIdentityListing(cmd.Context(), opts, func(app *app) *github.Paginator[github.Identity] {
				return github.Followers(app.client, app.cfg.Defaults.PageSize, identityStreamOptions(app)...)
			})
		},
	}
}

// newListFollowingCommand lists the accounts the authenticated user follows.
func newListFollowingCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list-following",
		Short: "List the accounts the authenticated user follows in CSV format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIdentityListing(cmd.Context(), opts, func(app *app) *github.Paginator[github.Identity] {
				return github.Following(app.client, app.cfg.Defaults.PageSize, identityStreamOptions(app)...)
			})
		},
	}
}

// newListBlocksCommand lists the accounts blocked by the authenticated user
// or by an organization.
func newListBlocksCommand(opts *globalOptions) *cobra.Command {
	var org string

	cmd := &cobra.Command{
		Use:   "list-blocks",
		Short: "List blocked accounts in CSV format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIdentityListing(cmd.Context(), opts, func(app *app) *github.Paginator[github.Identity] {
				return github.Blocked(app.client, org, app.cfg.Defaults.PageSize, identityStreamOptions(app)...)
			})
		},
	}

	cmd.Flags().StringVar(&org, "org", "", "The organization whose block list to read (instead of the authenticated user)")

	return cmd
}

// runIdentityListing streams an identity listing to stdout as username,id
// rows. There is no header; rows arrive in API order.
func runIdentityListing(ctx context.Context, opts *globalOptions, stream func(*app) *github.Paginator[github.Identity]) error {
	app, err := buildApp(opts)
	if err != nil {
		return err
	}

	return writeIdentities(ctx, os.Stdout, stream(app))
}

func writeIdentities(ctx context.Context, w io.Writer, paginator *github.Paginator[github.Identity]) error {
	writer := csv.NewWriter(w)

	if err := paginator.Each(ctx, func(identity github.Identity) error {
		return writer.Write([]string{identity.Login, strconv.FormatInt(identity.ID, 10)})
	}); err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}

func identityStreamOptions(app *app) []github.PaginatorOption[github.Identity] {
	return []github.PaginatorOption[github.Identity]{
		github.WithRetryConfig[github.Identity](app.retryConfig()),
		github.WithSink[github.Identity](app.sink),
		github.WithAutoWait[github.Identity](app.cfg.RateLimit.AutoWait),
	}
}
