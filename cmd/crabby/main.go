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
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/travisbrown/octocrabby/internal/config"
	crabbyerrors "github.com/travisbrown/octocrabby/internal/errors"
	"github.com/travisbrown/octocrabby/internal/events"
	"github.com/travisbrown/octocrabby/internal/github"
)

var version = "dev"

func main() {
	// A .env file is optional; environment wins when both are set.
	_ = godotenv.Load()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "crabby",
		Short: "Report on pull request contributors and manage GitHub block lists",
		Long: `Crabby turns paginated GitHub listings into contributor reports and
mass-block runs. It can list the pull request contributors of a repository
as CSV (optionally enriched with profile and follow data), list follower,
following and block sets, and block every account named in a CSV target
list while skipping accounts that are already blocked.`,
		Version:       version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	rootCmd.PersistentFlags().StringVar(&opts.token, "token", "", "GitHub personal access token (overrides the configured token env var)")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file path (default: .crabby.yaml, ~/.crabby/config.yaml)")
	rootCmd.PersistentFlags().CountVarP(&opts.verbose, "verbose", "v", "Increase logging verbosity (repeatable)")

	rootCmd.AddCommand(
		newContributorsCommand(opts),
		newBlockUsersCommand(opts),
		newListFollowersCommand(opts),
		newListFollowingCommand(opts),
		newListBlocksCommand(opts),
		newCheckFollowCommand(opts),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

// globalOptions carries the persistent flags shared by every subcommand.
type globalOptions struct {
	token      string
	configPath string
	verbose    int
}

// app bundles the wired-up collaborators a subcommand runs against.
type app struct {
	cfg    *config.Config
	logger *logrus.Logger
	sink   events.Sink
	client github.Client
	token  string
}

// buildApp loads configuration, sets up logging and creates the API client.
func buildApp(opts *globalOptions) (*app, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	switch {
	case opts.verbose <= 0:
		logger.SetLevel(logrus.WarnLevel)
	case opts.verbose == 1:
		logger.SetLevel(logrus.InfoLevel)
	default:
		logger.SetLevel(logrus.DebugLevel)
	}

	token := opts.token
	if token == "" {
		token = cfg.Token()
	}

	client, err := github.NewRESTClient(token, cfg.GitHub.APIEndpoint)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		sink:   events.NewLogSink(logger),
		client: client,
		token:  token,
	}, nil
}

// retryConfig derives the paginator retry settings from configuration.
func (a *app) retryConfig() *github.RetryConfig {
	retry := github.DefaultRetryConfig()
	retry.MaxRetries = a.cfg.Retry.MaxRetries
	return retry
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, crabbyerrors.ErrUnauthorized) ||
		errors.Is(err, crabbyerrors.ErrRateLimited) ||
		errors.Is(err, crabbyerrors.ErrRepoNotFound) ||
		errors.Is(err, crabbyerrors.ErrUserNotFound) {
		return 2 // Authentication/authorization errors
	}

	if errors.Is(err, crabbyerrors.ErrTransport) {
		return 3 // Network errors
	}

	return 1 // General error
}
