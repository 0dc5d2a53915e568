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

// Snapshot is a fully-materialized, point-in-time set of identities
// obtained by exhausting a paginated listing. It is immutable once built;
// the remote state may drift afterwards, which callers accept for the
// duration of one run. Membership is keyed by the numeric ID; a login
// index is kept for resolving display names against the same point in time.
type Snapshot struct {
	byID    map[int64]Identity
	byLogin map[string]Identity
}

// NewSnapshot builds a snapshot from a materialized identity list.
func NewSnapshot(identities []Identity) *Snapshot {
	s := &Snapshot{
		byID:    make(map[int64]Identity, len(identities)),
		byLogin: make(map[string]Identity, len(identities)),
	}
	for _, id := range identities {
		s.byID[id.ID] = id
		s.byLogin[id.Login] = id
	}
	return s
}

// TakeSnapshot exhausts the paginator and materializes the result.
// A partial fetch is never returned as a snapshot: any stream failure
// fails the whole snapshot, since set-membership answers derived from a
// partial set would be silently wrong.
func TakeSnapshot(ctx context.Context, p *Paginator[Identity]) (*Snapshot, error) {
	identities, err := p.Collect(ctx)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(identities), nil
}

// ContainsID reports membership by the canonical numeric key.
func (s *Snapshot) ContainsID(id int64) bool {
	_, ok := s.byID[id]
	return ok
}

// ByLogin looks up the identity recorded for a login at snapshot time.
func (s *Snapshot) ByLogin(login string) (Identity, bool) {
	id, ok := s.byLogin[login]
	return id, ok
}

// Len returns the number of identities in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.byID)
}
