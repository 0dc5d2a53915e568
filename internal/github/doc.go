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

// Package github wraps the GitHub REST API behind a small Client interface
// and provides the paginated fetching machinery built on top of it.
//
// The package exposes:
//   - Client: the remote API capability (page fetches, profile lookups,
//     block requests). RESTClient implements it over google/go-github;
//     MockClient provides a configurable test double.
//   - Paginator: a sequential page driver with bounded retry for transport
//     failures and wait-then-retry-once handling for rate limits.
//   - Snapshot: a fully-materialized, immutable set of identities obtained
//     by exhausting a paginated listing.
//
// All errors returned by this package are mapped to the sentinel taxonomy
// in internal/errors before they cross the package boundary.
package github
