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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrUnauthorized indicates GitHub authentication or authorization failed.
	// Never retried. Maps to exit code 2.
	ErrUnauthorized = errors.New("github authentication failed")

	// ErrRateLimited indicates the GitHub API rate limit was exhausted after
	// the bounded wait-and-retry. Maps to exit code 2.
	ErrRateLimited = errors.New("github rate limit exceeded")

	// ErrTransport indicates a network or server-side (5xx) failure.
	// Retryable up to a bound, then fatal to the current stream.
	// Maps to exit code 3.
	ErrTransport = errors.New("network connection failed")

	// ErrUserNotFound indicates the named account does not exist. Scoped to a
	// single target, it is absorbed as a failed outcome rather than aborting
	// the batch.
	ErrUserNotFound = errors.New("user not found")

	// ErrRepoNotFound indicates the specified repository does not exist or is not accessible.
	// Maps to exit code 2.
	ErrRepoNotFound = errors.New("repository not found")
)
