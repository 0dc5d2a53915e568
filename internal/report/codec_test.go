package report

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/travisbrown/octocrabby/internal/contrib"
	"github.com/travisbrown/octocrabby/internal/github"
)

func int64p(v int64) *int64 {
	return &v
}

func TestHeader(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "plain",
			opts: Options{},
			want: []string{"username", "id", "pr_count"},
		},
		{
			name: "enriched",
			opts: Options{Enriched: true},
			want: []string{"username", "id", "pr_count", "account_age_days", "display_name", "external_handle", "i_follow_them", "they_follow_me"},
		},
		{
			name: "enriched without external handle",
			opts: Options{Enriched: true, OmitExternalHandle: true},
			want: []string{"username", "id", "pr_count", "account_age_days", "display_name", "i_follow_them", "they_follow_me"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Header(tt.opts); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Header() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlainRoundTrip(t *testing.T) {
	records := []contrib.ContributorRecord{
		{Identity: github.Identity{Login: "alice", ID: 1}, PRCount: 2},
		{Identity: github.Identity{Login: "bob", ID: 22}, PRCount: 1},
	}

	rows := EncodePlain(records)
	want := [][]string{
		{"alice", "1", "2"},
		{"bob", "22", "1"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("EncodePlain() = %v, want %v", rows, want)
	}

	decoded, err := DecodePlain(rows)
	if err != nil {
		t.Fatalf("DecodePlain() error = %v", err)
	}
	if !reflect.DeepEqual(decoded, records) {
		t.Errorf("round trip = %+v, want %+v", decoded, records)
	}
}

func TestEnrichedEncoding(t *testing.T) {
	records := []contrib.EnrichedRecord{
		{
			ContributorRecord: contrib.ContributorRecord{
				Identity: github.Identity{Login: "alice", ID: 1},
				PRCount:  2,
			},
			DisplayName:    "Alice",
			ExternalHandle: "alicetweets",
			AccountAgeDays: int64p(120),
			IFollowThem:    true,
			TheyFollowMe:   false,
		},
		{
			// Profile fetch failed: every optional field empty.
			ContributorRecord: contrib.ContributorRecord{
				Identity: github.Identity{Login: "bob", ID: 2},
				PRCount:  1,
			},
		},
	}

	t.Run("full column set", func(t *testing.T) {
		rows := EncodeEnriched(records, Options{Enriched: true})
		want := [][]string{
			{"alice", "1", "2", "120", "Alice", "alicetweets", "true", "false"},
			{"bob", "2", "1", "", "", "", "false", "false"},
		}
		if !reflect.DeepEqual(rows, want) {
			t.Errorf("EncodeEnriched() = %v, want %v", rows, want)
		}
	})

	t.Run("external handle omitted", func(t *testing.T) {
		rows := EncodeEnriched(records, Options{Enriched: true, OmitExternalHandle: true})
		want := [][]string{
			{"alice", "1", "2", "120", "Alice", "true", "false"},
			{"bob", "2", "1", "", "", "false", "false"},
		}
		if !reflect.DeepEqual(rows, want) {
			t.Errorf("EncodeEnriched() = %v, want %v", rows, want)
		}
	})
}

func TestEnrichedRoundTrip(t *testing.T) {
	records := []contrib.EnrichedRecord{
		{
			ContributorRecord: contrib.ContributorRecord{
				Identity: github.Identity{Login: "alice", ID: 1},
				PRCount:  3,
			},
			DisplayName:    "Alice",
			ExternalHandle: "alicetweets",
			AccountAgeDays: int64p(-4),
			IFollowThem:    true,
			TheyFollowMe:   true,
		},
	}

	for _, opts := range []Options{
		{Enriched: true},
		{Enriched: true, OmitExternalHandle: true},
	} {
		decoded, err := DecodeEnriched(EncodeEnriched(records, opts), opts)
		if err != nil {
			t.Fatalf("DecodeEnriched(%+v) error = %v", opts, err)
		}
		if len(decoded) != 1 {
			t.Fatalf("got %d records, want 1", len(decoded))
		}
		got := decoded[0]
		if got.Identity != records[0].Identity || got.PRCount != 3 {
			t.Errorf("opts %+v: base = %+v, want %+v", opts, got.ContributorRecord, records[0].ContributorRecord)
		}
		if got.AccountAgeDays == nil || *got.AccountAgeDays != -4 {
			t.Errorf("opts %+v: age = %v, want -4 (negative ages are legal)", opts, got.AccountAgeDays)
		}
		if opts.OmitExternalHandle && got.ExternalHandle != "" {
			t.Errorf("handle = %q, want empty when the column is omitted", got.ExternalHandle)
		}
		if !got.IFollowThem || !got.TheyFollowMe {
			t.Errorf("opts %+v: flags = (%v, %v), want (true, true)", opts, got.IFollowThem, got.TheyFollowMe)
		}
	}
}

func TestDecodeRejectsMalformedRows(t *testing.T) {
	tests := []struct {
		name   string
		decode func() error
	}{
		{
			name: "plain wrong width",
			decode: func() error {
				_, err := DecodePlain([][]string{{"alice", "1"}})
				return err
			},
		},
		{
			name: "plain bad id",
			decode: func() error {
				_, err := DecodePlain([][]string{{"alice", "x", "1"}})
				return err
			},
		},
		{
			name: "enriched truncated row",
			decode: func() error {
				rows := [][]string{{"alice", "1", "2", "", "", "true", "false"}}
				_, err := DecodeEnriched(rows, Options{Enriched: true})
				return err
			},
		},
		{
			name: "enriched wrong width for options",
			decode: func() error {
				rows := [][]string{{"alice", "1", "2", "", "", "", "true", "false"}}
				_, err := DecodeEnriched(rows, Options{Enriched: true, OmitExternalHandle: true})
				return err
			},
		},
		{
			name: "enriched bad age",
			decode: func() error {
				rows := [][]string{{"alice", "1", "2", "soon", "", "", "true", "false"}}
				_, err := DecodeEnriched(rows, Options{Enriched: true})
				return err
			},
		},
		{
			name: "enriched bad bool",
			decode: func() error {
				rows := [][]string{{"alice", "1", "2", "", "", "", "maybe", "false"}}
				_, err := DecodeEnriched(rows, Options{Enriched: true})
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.decode(); err == nil {
				t.Error("decode succeeded, want error")
			}
		})
	}
}

func TestDecodeAcceptsEncoderWidth(t *testing.T) {
	// Every row the encoder emits must decode under the same options: the
	// full column set is 8 cells, 7 with the handle column omitted.
	record := contrib.EnrichedRecord{
		ContributorRecord: contrib.ContributorRecord{
			Identity: github.Identity{Login: "alice", ID: 1},
			PRCount:  2,
		},
		DisplayName:    "Alice",
		ExternalHandle: "alicetweets",
		AccountAgeDays: int64p(120),
		IFollowThem:    true,
	}

	tests := []struct {
		name      string
		opts      Options
		wantCells int
	}{
		{"full column set", Options{Enriched: true}, 8},
		{"handle omitted", Options{Enriched: true, OmitExternalHandle: true}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := EncodeEnriched([]contrib.EnrichedRecord{record}, tt.opts)
			if len(rows[0]) != tt.wantCells {
				t.Fatalf("encoded row has %d cells, want %d", len(rows[0]), tt.wantCells)
			}
			if len(rows[0]) != len(Header(tt.opts)) {
				t.Errorf("row width %d does not match header width %d", len(rows[0]), len(Header(tt.opts)))
			}
			if _, err := DecodeEnriched(rows, tt.opts); err != nil {
				t.Errorf("DecodeEnriched() rejected the encoder's own output: %v", err)
			}
		})
	}
}

func TestEncodingIgnoresTimestamp(t *testing.T) {
	// FirstPRAt feeds the age derivation upstream but is not a column.
	a := contrib.ContributorRecord{Identity: github.Identity{Login: "x", ID: 9}, PRCount: 1}
	b := a
	b.FirstPRAt = time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)

	rowsA := EncodePlain([]contrib.ContributorRecord{a})
	rowsB := EncodePlain([]contrib.ContributorRecord{b})
	if !reflect.DeepEqual(rowsA, rowsB) {
		t.Errorf("rows differ on timestamp alone: %v vs %v", rowsA, rowsB)
	}
}

func TestWriterEmitsHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, Options{})

	rows := [][]string{
		{"alice", "1", "2"},
		{"bob", "2", "1"},
	}
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if w.Count() != 2 {
		t.Errorf("Count() = %d, want 2", w.Count())
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{
		"username,id,pr_count",
		"alice,1,2",
		"bob,2,1",
	}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("output = %v, want %v", lines, want)
	}
}

func TestWriterEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, Options{})

	if err := w.WriteAll(nil); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	// No rows means no header either; the output is empty.
	if buf.Len() != 0 {
		t.Errorf("output = %q, want empty", buf.String())
	}
}
