package trip

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/tripplanner/backend/internal/model"
)

// utf8BOM lets spreadsheet apps detect the encoding of exported files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExportHeader is the column order of exported itineraries.
var ExportHeader = []string{"day", "time", "description", "note"}

// ItineraryStore holds the ordered trip table of one session.
type ItineraryStore struct {
	entries []model.ItineraryEntry
}

// NewItineraryStore returns a store holding a copy of entries.
func NewItineraryStore(entries []model.ItineraryEntry) *ItineraryStore {
	s := &ItineraryStore{}
	s.Replace(entries)
	return s
}

// List returns the entries in order. The slice is a copy.
func (s *ItineraryStore) List() []model.ItineraryEntry {
	out := make([]model.ItineraryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of rows.
func (s *ItineraryStore) Len() int { return len(s.entries) }

// Replace swaps the whole table for seq. Rows are accepted as given,
// including blank fields; see BlankFields.
func (s *ItineraryStore) Replace(seq []model.ItineraryEntry) {
	entries := make([]model.ItineraryEntry, len(seq))
	copy(entries, seq)
	s.entries = entries
}

// WriteCSV writes the BOM, a header row and one row per entry to w.
func (s *ItineraryStore) WriteCSV(w io.Writer) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return err
	}
	for _, e := range s.entries {
		if err := cw.Write([]string{e.Day, e.Time, e.Description, e.Note}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Export returns the CSV serialisation of the table.
func (s *ItineraryStore) Export() []byte {
	var buf bytes.Buffer
	// bytes.Buffer writes do not fail
	_ = s.WriteCSV(&buf)
	return buf.Bytes()
}

// FieldGap marks a row whose day or time is blank.
type FieldGap struct {
	Row   int    `json:"row"`
	Field string `json:"field"`
}

// BlankFields lists rows with a blank day or time. Replace does not reject
// such rows; this only lets a client point them out.
func (s *ItineraryStore) BlankFields() []FieldGap {
	var gaps []FieldGap
	for i, e := range s.entries {
		if strings.TrimSpace(e.Day) == "" {
			gaps = append(gaps, FieldGap{Row: i, Field: "day"})
		}
		if strings.TrimSpace(e.Time) == "" {
			gaps = append(gaps, FieldGap{Row: i, Field: "time"})
		}
	}
	return gaps
}
