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
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/travisbrown/octocrabby/internal/contrib"
	"github.com/travisbrown/octocrabby/internal/events"
	"github.com/travisbrown/octocrabby/internal/exclude"
	"github.com/travisbrown/octocrabby/internal/github"
	"github.com/travisbrown/octocrabby/internal/report"
)

// newContributorsCommand lists the pull request contributors of a repository.
func newContributorsCommand(opts *globalOptions) *cobra.Command {
	var (
		repoPath         string
		omitTwitter      bool
		exclusionsFile   string
		ignoreExclusions bool
	)

	cmd := &cobra.Command{
		Use:   "list-pr-contributors",
		Short: "List PR contributors for the given repository in CSV format",
		Long: `List every account that has opened a pull request against the repository,
with PR counts, ordered by username. When the supplied token authenticates,
each row is enriched with profile detail (display name, Twitter handle,
account age at first PR) and follow-relationship flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContributors(cmd.Context(), opts, repoPath, omitTwitter, exclusionsFile, ignoreExclusions)
		},
	}

	cmd.Flags().StringVarP(&repoPath, "repo", "r", "", "The repository to check for pull requests (owner/repo)")
	cmd.Flags().BoolVar(&omitTwitter, "omit-twitter", false, "Omit the Twitter handle column (the handle is not verified)")
	cmd.Flags().StringVar(&exclusionsFile, "exclusions-file", "", "Exclusions file (CSV of repo,username pairs)")
	cmd.Flags().BoolVar(&ignoreExclusions, "ignore-exclusions", false, "Ignore the exclusions file")
	_ = cmd.MarkFlagRequired("repo")

	return cmd
}

func runContributors(ctx context.Context, opts *globalOptions, repoPath string, omitTwitter bool, exclusionsFile string, ignoreExclusions bool) error {
	owner, repo, err := parseRepository(repoPath)
	if err != nil {
		return err
	}

	app, err := buildApp(opts)
	if err != nil {
		return err
	}

	exclusions, err := loadExclusions(app, exclusionsFile, ignoreExclusions)
	if err != nil {
		return err
	}

	app.logger.Info("loading pull requests")
	aggregator := contrib.NewAggregator()
	prStream := github.PullRequests(app.client, owner, repo, app.cfg.Defaults.PageSize,
		github.WithRetryConfig[github.PullRequest](app.retryConfig()),
		github.WithSink[github.PullRequest](app.sink),
		github.WithAutoWait[github.PullRequest](app.cfg.RateLimit.AutoWait))

	if err := prStream.Each(ctx, func(pr github.PullRequest) error {
		aggregator.Add(pr)
		return nil
	}); err != nil {
		return err
	}

	if discarded := aggregator.Discarded(); discarded > 0 {
		app.sink.Emit(events.Event{Kind: events.KindRecordDiscarded, Count: discarded})
	}

	records := aggregator.Records()

	// Enrichment needs a working credential; silently fall back to the
	// plain report when the token is absent or does not authenticate.
	enrich := false
	if app.token != "" {
		if _, err := app.client.AuthenticatedUser(ctx); err == nil {
			enrich = true
		}
	}

	codecOpts := report.Options{Enriched: enrich, OmitExternalHandle: omitTwitter}
	writer := report.NewWriter(os.Stdout, codecOpts)

	if !enrich {
		filtered := make([]contrib.ContributorRecord, 0, len(records))
		for _, record := range records {
			if excluded(app, exclusions, repoPath, record.Identity.Login) {
				continue
			}
			filtered = append(filtered, record)
		}
		return writer.WriteAll(report.EncodePlain(filtered))
	}

	enricher := contrib.NewEnricher(app.client, app.cfg.Defaults.PageSize, app.retryConfig(), app.sink)
	enriched, err := enricher.Enrich(ctx, records)
	if err != nil {
		return err
	}

	filtered := make([]contrib.EnrichedRecord, 0, len(enriched))
	for _, record := range enriched {
		if excluded(app, exclusions, repoPath, record.Identity.Login) {
			continue
		}
		filtered = append(filtered, record)
	}
	return writer.WriteAll(report.EncodeEnriched(filtered, codecOpts))
}

// loadExclusions opens the exclusions file. An explicitly-flagged file must
// exist; the configured default is optional.
func loadExclusions(app *app, flagPath string, ignore bool) (*exclude.Exclusions, error) {
	if ignore {
		return nil, nil
	}

	path := flagPath
	explicit := flagPath != ""
	if !explicit {
		path = app.cfg.Defaults.ExclusionsFile
	}

	file, err := os.Open(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open exclusions file: %w", err)
	}
	defer file.Close()

	return exclude.Load(file)
}

func excluded(app *app, exclusions *exclude.Exclusions, repoPath, login string) bool {
	if !exclusions.IsExcluded(repoPath, login) {
		return false
	}
	app.sink.Emit(events.Event{Kind: events.KindUserExcluded, Login: login})
	return true
}

// parseRepository parses an owner/repo string into its components
func parseRepository(repoArg string) (owner, repo string, err error) {
	parts := strings.Split(repoArg, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid repository format. Expected: <owner>/<repo>, got: %s", repoArg)
	}

	owner = strings.TrimSpace(parts[0])
	repo = strings.TrimSpace(parts[1])

	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("invalid repository format. Expected: <owner>/<repo>, got: %s", repoArg)
	}

	return owner, repo, nil
}
