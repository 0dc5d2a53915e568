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
	"fmt"
	"time"

	crabbyerrors "github.com/travisbrown/octocrabby/internal/errors"
)

// RateLimitError signals that the API refused a call due to rate limiting.
// ResetAt is the time the quota window resets; callers deciding whether to
// wait should sleep until then. It unwraps to errors.ErrRateLimited so the
// usual sentinel checks apply.
type RateLimitError struct {
	ResetAt time.Time
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("github rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// Unwrap ties the typed error into the sentinel taxonomy.
func (e *RateLimitError) Unwrap() error {
	return crabbyerrors.ErrRateLimited
}

// IsRateLimitError marks the error for chain-based inspection.
func (e *RateLimitError) IsRateLimitError() bool {
	return true
}
