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
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	crabbyerrors "github.com/travisbrown/octocrabby/internal/errors"
	"github.com/travisbrown/octocrabby/internal/github"
)

func TestParseRepository(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{"valid", "octocat/hello-world", "octocat", "hello-world", false},
		{"whitespace trimmed", " octocat / hello-world ", "octocat", "hello-world", false},
		{"missing slash", "octocat", "", "", true},
		{"too many parts", "a/b/c", "", "", true},
		{"empty owner", "/repo", "", "", true},
		{"empty repo", "owner/", "", "", true},
		{"empty input", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := parseRepository(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseRepository(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("parseRepository(%q) = (%q, %q), want (%q, %q)",
					tt.input, owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}

func TestMapErrorToExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"unauthorized", fmt.Errorf("wrapped: %w", crabbyerrors.ErrUnauthorized), 2},
		{"rate limited", fmt.Errorf("wrapped: %w", crabbyerrors.ErrRateLimited), 2},
		{"repo not found", fmt.Errorf("wrapped: %w", crabbyerrors.ErrRepoNotFound), 2},
		{"user not found", fmt.Errorf("wrapped: %w", crabbyerrors.ErrUserNotFound), 2},
		{"transport", fmt.Errorf("wrapped: %w", crabbyerrors.ErrTransport), 3},
		{"generic", errors.New("something else"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapErrorToExitCode(tt.err); got != tt.want {
				t.Errorf("mapErrorToExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReadTargets(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "single column",
			input: "alice\nbob\ncarol\n",
			want:  []string{"alice", "bob", "carol"},
		},
		{
			name:  "extra columns ignored",
			input: "alice,1\nbob,2,extra\n",
			want:  []string{"alice", "bob"},
		},
		{
			name:  "duplicates preserved",
			input: "alice\nalice\n",
			want:  []string{"alice", "alice"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readTargets(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("readTargets() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("readTargets() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWriteIdentities(t *testing.T) {
	mock := &github.MockClient{
		Followers: []github.Identity{
			{Login: "alice", ID: 1},
			{Login: "bob", ID: 22},
		},
	}

	var buf bytes.Buffer
	if err := writeIdentities(context.Background(), &buf, github.Followers(mock, 100)); err != nil {
		t.Fatalf("writeIdentities() error = %v", err)
	}

	want := "alice,1\nbob,22\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
