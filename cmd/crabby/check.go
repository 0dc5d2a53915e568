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
	"fmt"

	"github.com/spf13/cobra"
)

// newCheckFollowCommand reports whether one account follows another.
func newCheckFollowCommand(opts *globalOptions) *cobra.Command {
	var (
		follower string
		target   string
	)

	cmd := &cobra.Command{
		Use:   "check-follow",
		Short: "Check whether one account follows another",
		Long: `Print "true" or "false" depending on whether the follower account
follows the target. The target defaults to the authenticated user.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckFollow(cmd.Context(), opts, follower, target)
		},
	}

	cmd.Flags().StringVar(&follower, "follower", "", "The account whose follow relationship to check")
	cmd.Flags().StringVar(&target, "user", "", "The account being followed (default: the authenticated user)")
	_ = cmd.MarkFlagRequired("follower")

	return cmd
}

func runCheckFollow(ctx context.Context, opts *globalOptions, follower, target string) error {
	app, err := buildApp(opts)
	if err != nil {
		return err
	}

	if target == "" {
		me, err := app.client.AuthenticatedUser(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve the authenticated user: %w", err)
		}
		target = me.Login
	}

	follows, err := app.client.CheckFollowing(ctx, follower, target)
	if err != nil {
		return err
	}

	fmt.Println(follows)
	return nil
}
