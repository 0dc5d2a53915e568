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
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/travisbrown/octocrabby/internal/blocklist"
)

// newBlockUsersCommand blocks a list of users provided as CSV on stdin.
func newBlockUsersCommand(opts *globalOptions) *cobra.Command {
	var (
		org   string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "block-users",
		Short: "Block a list of users provided in CSV format on stdin",
		Long: `Read target usernames from stdin (the first CSV cell of each row; all
other cells are ignored) and block each one. Unless --force is given, the
current block list is fetched first and already-blocked accounts are
skipped without a request. Failures for individual accounts are recorded
and the run continues.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBlockUsers(cmd.Context(), opts, os.Stdin, org, force)
		},
	}

	cmd.Flags().StringVar(&org, "org", "", "The organization to block users from (instead of the authenticated user)")
	cmd.Flags().BoolVar(&force, "force", false, "Force block requests for all provided accounts (skip checking the current block list)")

	return cmd
}

func runBlockUsers(ctx context.Context, opts *globalOptions, input io.Reader, org string, force bool) error {
	app, err := buildApp(opts)
	if err != nil {
		return err
	}

	targets, err := readTargets(input)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		app.logger.Warn("no target usernames on stdin, nothing to do")
		return nil
	}

	syncer := blocklist.NewSyncer(app.client, org, app.cfg.Defaults.PageSize, app.retryConfig(), app.sink)
	_, summary, err := syncer.Run(ctx, targets, force)
	if err != nil {
		return err
	}

	app.logger.Warnf("blocked %d, skipped %d already blocked, %d failed",
		summary.Blocked, summary.Skipped, summary.Failed)
	return nil
}

// readTargets extracts the username from the first cell of each CSV row.
// Rows are kept in input order; duplicates are passed through untouched.
func readTargets(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var targets []string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse target list: %w", err)
		}
		if len(row) == 0 || row[0] == "" {
			continue
		}
		targets = append(targets, row[0])
	}
	return targets, nil
}
