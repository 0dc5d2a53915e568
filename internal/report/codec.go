// Package report maps contributor records to ordered tabular rows and back.
// The codec is pure and deterministic; CSV framing is confined to Writer.
package report

import (
	"fmt"
	"strconv"

	"github.com/travisbrown/octocrabby/internal/contrib"
	"github.com/travisbrown/octocrabby/internal/github"
)

// Options selects the active column set.
type Options struct {
	// Enriched selects the extended column set produced by enrichment.
	Enriched bool
	// OmitExternalHandle drops the external_handle column entirely.
	// Only meaningful when Enriched is set.
	OmitExternalHandle bool
}

// Header returns the header row for the active column set.
func Header(opts Options) []string {
	if !opts.Enriched {
		return []string{"username", "id", "pr_count"}
	}
	header := []string{"username", "id", "pr_count", "account_age_days", "display_name"}
	if !opts.OmitExternalHandle {
		header = append(header, "external_handle")
	}
	return append(header, "i_follow_them", "they_follow_me")
}

// EncodePlain maps unenriched records to rows, one per record, in input order.
func EncodePlain(records []contrib.ContributorRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Identity.Login,
			strconv.FormatInt(r.Identity.ID, 10),
			strconv.Itoa(r.PRCount),
		})
	}
	return rows
}

// EncodeEnriched maps enriched records to rows, one per record, in input
// order. Missing optional values render as empty cells, booleans as
// literal true/false.
func EncodeEnriched(records []contrib.EnrichedRecord, opts Options) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		age := ""
		if r.AccountAgeDays != nil {
			age = strconv.FormatInt(*r.AccountAgeDays, 10)
		}

		row := []string{
			r.Identity.Login,
			strconv.FormatInt(r.Identity.ID, 10),
			strconv.Itoa(r.PRCount),
			age,
			r.DisplayName,
		}
		if !opts.OmitExternalHandle {
			row = append(row, r.ExternalHandle)
		}
		row = append(row,
			strconv.FormatBool(r.IFollowThem),
			strconv.FormatBool(r.TheyFollowMe),
		)
		rows = append(rows, row)
	}
	return rows
}

// DecodePlain is the inverse of EncodePlain.
func DecodePlain(rows [][]string) ([]contrib.ContributorRecord, error) {
	records := make([]contrib.ContributorRecord, 0, len(rows))
	for i, row := range rows {
		if len(row) != 3 {
			return nil, fmt.Errorf("row %d: expected 3 cells, got %d", i, len(row))
		}
		record, err := decodeBase(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// DecodeEnriched is the inverse of EncodeEnriched under the same options.
// The timestamp behind the age derivation is not part of the row format,
// so only the encoded fields round-trip.
func DecodeEnriched(rows [][]string, opts Options) ([]contrib.EnrichedRecord, error) {
	want := 8
	if opts.OmitExternalHandle {
		want = 7
	}

	records := make([]contrib.EnrichedRecord, 0, len(rows))
	for i, row := range rows {
		if len(row) != want {
			return nil, fmt.Errorf("row %d: expected %d cells, got %d", i, want, len(row))
		}

		base, err := decodeBase(row[:3])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		record := contrib.EnrichedRecord{ContributorRecord: base}

		if row[3] != "" {
			age, err := strconv.ParseInt(row[3], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad account_age_days: %w", i, err)
			}
			record.AccountAgeDays = &age
		}
		record.DisplayName = row[4]

		next := 5
		if !opts.OmitExternalHandle {
			record.ExternalHandle = row[next]
			next++
		}
		if record.IFollowThem, err = strconv.ParseBool(row[next]); err != nil {
			return nil, fmt.Errorf("row %d: bad i_follow_them: %w", i, err)
		}
		if record.TheyFollowMe, err = strconv.ParseBool(row[next+1]); err != nil {
			return nil, fmt.Errorf("row %d: bad they_follow_me: %w", i, err)
		}

		records = append(records, record)
	}
	return records, nil
}

func decodeBase(cells []string) (contrib.ContributorRecord, error) {
	id, err := strconv.ParseInt(cells[1], 10, 64)
	if err != nil {
		return contrib.ContributorRecord{}, fmt.Errorf("bad id: %w", err)
	}
	count, err := strconv.Atoi(cells[2])
	if err != nil {
		return contrib.ContributorRecord{}, fmt.Errorf("bad pr_count: %w", err)
	}
	return contrib.ContributorRecord{
		Identity: github.Identity{Login: cells[0], ID: id},
		PRCount:  count,
	}, nil
}
