// Package exclude holds repository-scoped exclusion lists for contributor
// reports.
package exclude

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Exclusions maps a repository path ("owner/repo") to the set of excluded
// logins, matched case-insensitively. The zero value excludes only the
// hardcoded special accounts.
type Exclusions struct {
	byRepo map[string]map[string]struct{}
}

// Load parses exclusions from CSV rows of (repository, login) pairs with
// no header.
func Load(r io.Reader) (*Exclusions, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2

	byRepo := make(map[string]map[string]struct{})
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse exclusions: %w", err)
		}

		repo := row[0]
		logins, ok := byRepo[repo]
		if !ok {
			logins = make(map[string]struct{})
			byRepo[repo] = logins
		}
		logins[strings.ToLower(row[1])] = struct{}{}
	}

	return &Exclusions{byRepo: byRepo}, nil
}

// IsExcluded reports whether the login is excluded for the repository.
// Only accounts that are treated specially by GitHub are hardcoded here;
// all other exclusions belong in an exclusions file.
func (e *Exclusions) IsExcluded(repo, login string) bool {
	if login == "ghost" || login == "dependabot[bot]" {
		return true
	}
	if e == nil || e.byRepo == nil {
		return false
	}
	logins, ok := e.byRepo[repo]
	if !ok {
		return false
	}
	_, ok = logins[strings.ToLower(login)]
	return ok
}
